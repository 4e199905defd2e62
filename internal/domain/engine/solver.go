package engine

import (
	"sort"

	"github.com/okian/rolecall/internal/domain/model"
)

// candidate is one scored (participant, role) pair in the candidate matrix.
type candidate struct {
	participantID string
	name          string
	role          model.Role
	score         float64
}

// solve greedily commits the highest-scoring candidates, skipping any whose
// participant is already assigned or whose role is already filled, and stops
// early once roleCount roles are filled.
//
// Ties on score break by ascending participant name so equal inputs always
// produce equal output; the stable sort preserves candidate generation order
// (participant order, then catalogue role order) for full ties. This is a
// deliberate greedy approximation, not an optimal weighted matching.
func solve(candidates []candidate, roleCount int) []candidate {
	pool := make([]candidate, len(candidates))
	copy(pool, candidates)

	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].score != pool[j].score {
			return pool[i].score > pool[j].score
		}
		return pool[i].name < pool[j].name
	})

	assignedParticipants := make(map[string]struct{}, roleCount)
	filledRoles := make(map[model.Role]struct{}, roleCount)
	result := make([]candidate, 0, roleCount)

	for _, c := range pool {
		if _, ok := assignedParticipants[c.participantID]; ok {
			continue
		}
		if _, ok := filledRoles[c.role]; ok {
			continue
		}

		result = append(result, c)
		assignedParticipants[c.participantID] = struct{}{}
		filledRoles[c.role] = struct{}{}

		if len(filledRoles) == roleCount {
			break
		}
	}

	return result
}
