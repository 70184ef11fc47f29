package views

import (
	"sort"
	"strings"

	"compdash/pkg/schema"
)

// Sort returns a copy of the requirements ordered by the given field.
// Priority, status, and maturity order by semantic rank rather than
// lexicographically. Ties always break by ID ascending regardless of
// direction, so ordering is total and deterministic. An unknown field
// falls back to ID order.
func Sort(reqs []schema.Requirement, field string, direction Direction) []schema.Requirement {
	out := make([]schema.Requirement, len(reqs))
	copy(out, reqs)

	desc := direction == Descending
	sort.SliceStable(out, func(i, j int) bool {
		c := compareBy(field, out[i], out[j])
		if c == 0 {
			return out[i].ID < out[j].ID
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func compareBy(field string, a, b schema.Requirement) int {
	switch field {
	case SortByTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case SortByCategory:
		return strings.Compare(string(a.Category), string(b.Category))
	case SortByPriority:
		return compareInt(schema.PriorityRank(a.Priority), schema.PriorityRank(b.Priority))
	case SortByStatus:
		return compareInt(schema.StatusRank(a.Status), schema.StatusRank(b.Status))
	case SortByBusinessValue:
		return compareFloat(a.BusinessValueScore, b.BusinessValueScore)
	case SortByCost:
		return compareFloat(a.CostEstimate, b.CostEstimate)
	case SortByMaturity:
		return compareFloat(a.Maturity.Score, b.Maturity.Score)
	case SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case SortByUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return strings.Compare(a.ID, b.ID)
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
