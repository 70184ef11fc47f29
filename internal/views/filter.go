package views

import (
	"strings"

	"compdash/pkg/schema"
)

// Filter returns the requirements whose fields equal every constrained filter
// value. An empty or "all" value imposes no constraint; multiple filters
// compose by logical AND. Unknown filter keys impose no constraint. The input
// slice is never mutated.
func Filter(reqs []schema.Requirement, filters map[string]string) []schema.Requirement {
	out := make([]schema.Requirement, 0, len(reqs))
	for _, r := range reqs {
		if matchesFilters(r, filters) {
			out = append(out, r)
		}
	}
	return out
}

func matchesFilters(r schema.Requirement, filters map[string]string) bool {
	for field, want := range filters {
		if want == "" || want == FilterAll {
			continue
		}
		switch field {
		case FieldCategory:
			if string(r.Category) != want {
				return false
			}
		case FieldPriority:
			if string(r.Priority) != want {
				return false
			}
		case FieldStatus:
			if string(r.Status) != want {
				return false
			}
		case FieldFramework:
			if r.Framework != want {
				return false
			}
		}
	}
	return true
}

// Search returns the requirements containing the term as a case-insensitive
// substring of any searchable text field (title, description, category,
// rationale, in that order). An empty term passes everything through. The
// input slice is never mutated.
func Search(reqs []schema.Requirement, term string) []schema.Requirement {
	term = strings.TrimSpace(term)
	if term == "" {
		out := make([]schema.Requirement, len(reqs))
		copy(out, reqs)
		return out
	}

	needle := strings.ToLower(term)
	out := make([]schema.Requirement, 0, len(reqs))
	for _, r := range reqs {
		if matchesSearch(r, needle) {
			out = append(out, r)
		}
	}
	return out
}

func matchesSearch(r schema.Requirement, needle string) bool {
	for _, field := range []string{r.Title, r.Description, string(r.Category), r.Rationale} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Apply computes the full derived list: filter, then search, then sort.
// Search runs after filter; both are predicates so the order is
// observationally commutative, but this is the documented order.
func Apply(reqs []schema.Requirement, c Criteria) []schema.Requirement {
	return Sort(Search(Filter(reqs, c.Filters), c.SearchTerm), c.Sort.Field, c.Sort.Direction)
}
