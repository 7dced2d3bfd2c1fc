package category

import "github.com/google/uuid"

// matchDescription scores a description against a compiled pattern set and
// returns the best category, or nil when nothing matches.
//
// Every non-exclusion pattern that matches adds priority+1 to its category's
// score (the +1 keeps a zero-priority match above "no match"). A matching
// exclusion vetoes its category outright. The winner is the highest-scoring
// non-excluded category; ties go to the category that reached the score
// first, which is well defined because patterns arrive in (priority desc,
// id asc) order.
func matchDescription(patterns []compiledPattern, description string) *Match {
	scores := make(map[uuid.UUID]int)
	names := make(map[uuid.UUID]string)
	excluded := make(map[uuid.UUID]bool)

	var order []uuid.UUID

	for _, p := range patterns {
		if !p.re.MatchString(description) {
			continue
		}

		if p.exclude {
			excluded[p.categoryID] = true
			continue
		}

		if _, seen := scores[p.categoryID]; !seen {
			order = append(order, p.categoryID)
			names[p.categoryID] = p.categoryName
		}

		scores[p.categoryID] += p.priority + 1
	}

	var (
		best      *Match
		bestScore int
	)

	for _, id := range order {
		if excluded[id] {
			continue
		}

		// Strictly greater keeps the first-seen category on ties.
		if scores[id] > bestScore {
			bestScore = scores[id]
			best = &Match{CategoryID: id, CategoryName: names[id]}
		}
	}

	return best
}
