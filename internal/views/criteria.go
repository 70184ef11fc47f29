package views

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Filterable field names.
const (
	FieldCategory  = "category"
	FieldPriority  = "priority"
	FieldStatus    = "status"
	FieldFramework = "framework"
)

// Sortable field names.
const (
	SortByTitle         = "title"
	SortByCategory      = "category"
	SortByPriority      = "priority"
	SortByStatus        = "status"
	SortByBusinessValue = "businessValue"
	SortByCost          = "cost"
	SortByMaturity      = "maturity"
	SortByCreatedAt     = "createdAt"
	SortByUpdatedAt     = "updatedAt"
)

// FilterAll is the filter value that imposes no constraint, matching the
// empty string.
const FilterAll = "all"

// IsFilterField reports whether name is a recognized filter field.
func IsFilterField(name string) bool {
	switch name {
	case FieldCategory, FieldPriority, FieldStatus, FieldFramework:
		return true
	}
	return false
}

// SortSpec names a sort field and direction.
type SortSpec struct {
	Field     string    `json:"field" yaml:"field"`
	Direction Direction `json:"direction" yaml:"direction"`
}

// Criteria is the transient UI state the derived view is computed from.
// It is adjusted by the set-filter/set-search/set-sort actions and never
// persisted with the record collections.
type Criteria struct {
	Filters    map[string]string `json:"filters" yaml:"filters"`
	SearchTerm string            `json:"search_term" yaml:"search_term"`
	Sort       SortSpec          `json:"sort" yaml:"sort"`
}

// DefaultCriteria returns the unconstrained criteria: no filters, no search,
// updatedAt descending (most recently touched first).
func DefaultCriteria() Criteria {
	return Criteria{
		Filters: map[string]string{},
		Sort:    SortSpec{Field: SortByUpdatedAt, Direction: Descending},
	}
}

// Clone returns an independent copy.
func (c Criteria) Clone() Criteria {
	out := c
	out.Filters = make(map[string]string, len(c.Filters))
	for k, v := range c.Filters {
		out.Filters[k] = v
	}
	return out
}

// Equal reports whether two criteria would produce the same derived view.
func (c Criteria) Equal(other Criteria) bool {
	if c.SearchTerm != other.SearchTerm || c.Sort != other.Sort {
		return false
	}
	if len(c.Filters) != len(other.Filters) {
		return false
	}
	for k, v := range c.Filters {
		if other.Filters[k] != v {
			return false
		}
	}
	return true
}
