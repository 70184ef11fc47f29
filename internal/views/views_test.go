package views

import (
	"testing"
	"time"

	"compdash/pkg/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() []schema.Requirement {
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	return []schema.Requirement{
		{
			ID:                 "REQ-a",
			Title:              "Encrypt data at rest",
			Description:        "All customer data encrypted with AES-256",
			Category:           schema.CategoryTechnical,
			Priority:           schema.PriorityHigh,
			Status:             schema.StatusActive,
			Framework:          "SOC2",
			Maturity:           schema.MaturityLevel{Level: "defined", Score: 3},
			BusinessValueScore: 80,
			CostEstimate:       12000,
			CreatedAt:          base,
			UpdatedAt:          base,
		},
		{
			ID:                 "REQ-b",
			Title:              "Quarterly access review",
			Description:        "Review privileged accounts every quarter",
			Category:           schema.CategoryOperational,
			Priority:           schema.PriorityMedium,
			Status:             schema.StatusActive,
			Framework:          "ISO27001",
			Maturity:           schema.MaturityLevel{Level: "managed", Score: 4},
			BusinessValueScore: 60,
			CostEstimate:       3000,
			CreatedAt:          base.Add(time.Hour),
			UpdatedAt:          base.Add(time.Hour),
		},
		{
			ID:                 "REQ-c",
			Title:              "Incident response plan",
			Description:        "Documented and tested IR playbook",
			Category:           schema.CategoryGovernance,
			Priority:           schema.PriorityHigh,
			Status:             schema.StatusImplemented,
			Framework:          "SOC2",
			Maturity:           schema.MaturityLevel{Level: "defined", Score: 3},
			BusinessValueScore: 90,
			CostEstimate:       8000,
			CreatedAt:          base.Add(2 * time.Hour),
			UpdatedAt:          base.Add(2 * time.Hour),
		},
	}
}

func ids(reqs []schema.Requirement) []string {
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = r.ID
	}
	return out
}

func TestFilterSingleField(t *testing.T) {
	reqs := fixture()
	got := Filter(reqs, map[string]string{FieldStatus: "active"})
	assert.Equal(t, []string{"REQ-a", "REQ-b"}, ids(got))
}

func TestIsFilterField(t *testing.T) {
	for _, name := range []string{FieldCategory, FieldPriority, FieldStatus, FieldFramework} {
		assert.True(t, IsFilterField(name), name)
	}
	assert.False(t, IsFilterField("staus"))
	assert.False(t, IsFilterField(""))
	assert.False(t, IsFilterField("title"))
}

func TestFilterComposesByAND(t *testing.T) {
	reqs := fixture()
	got := Filter(reqs, map[string]string{
		FieldStatus:    "active",
		FieldFramework: "SOC2",
	})
	assert.Equal(t, []string{"REQ-a"}, ids(got))
}

func TestFilterAllAndEmptyImposeNoConstraint(t *testing.T) {
	reqs := fixture()
	got := Filter(reqs, map[string]string{
		FieldStatus:   FilterAll,
		FieldCategory: "",
	})
	assert.Len(t, got, 3)
}

func TestFilterComposition(t *testing.T) {
	// filter(filter(C,F1),F2) == filter(C, F1 union F2)
	reqs := fixture()
	f1 := map[string]string{FieldStatus: "active"}
	f2 := map[string]string{FieldFramework: "SOC2"}
	union := map[string]string{FieldStatus: "active", FieldFramework: "SOC2"}

	chained := Filter(Filter(reqs, f1), f2)
	direct := Filter(reqs, union)
	assert.Equal(t, ids(direct), ids(chained))

	// Order-independent
	reversed := Filter(Filter(reqs, f2), f1)
	assert.Equal(t, ids(direct), ids(reversed))
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	reqs := fixture()
	assert.Equal(t, []string{"REQ-a"}, ids(Search(reqs, "ENCRYPT")))
	assert.Equal(t, []string{"REQ-b"}, ids(Search(reqs, "privileged")))
	// Matches category text too
	assert.Equal(t, []string{"REQ-c"}, ids(Search(reqs, "governance")))
}

func TestSearchEmptyTermPassesThrough(t *testing.T) {
	reqs := fixture()
	assert.Len(t, Search(reqs, ""), 3)
	assert.Len(t, Search(reqs, "   "), 3)
}

func TestFilterSearchCommute(t *testing.T) {
	reqs := fixture()
	f := map[string]string{FieldStatus: "active"}
	a := Search(Filter(reqs, f), "review")
	b := Filter(Search(reqs, "review"), f)
	assert.Equal(t, ids(a), ids(b))
}

func TestSortByPriorityRank(t *testing.T) {
	reqs := fixture()
	got := Sort(reqs, SortByPriority, Ascending)
	// medium < high; high ties break by id ascending
	assert.Equal(t, []string{"REQ-b", "REQ-a", "REQ-c"}, ids(got))
}

func TestSortDescendingReversesExceptTieGroups(t *testing.T) {
	reqs := fixture()
	asc := Sort(reqs, SortByPriority, Ascending)
	desc := Sort(reqs, SortByPriority, Descending)

	// high group first in desc, still id-ascending within the group
	assert.Equal(t, []string{"REQ-a", "REQ-c", "REQ-b"}, ids(desc))
	assert.Equal(t, []string{"REQ-b", "REQ-a", "REQ-c"}, ids(asc))
}

func TestSortUnknownFieldFallsBackToID(t *testing.T) {
	reqs := fixture()
	got := Sort(reqs, "nonsense", Ascending)
	assert.Equal(t, []string{"REQ-a", "REQ-b", "REQ-c"}, ids(got))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	reqs := fixture()
	before := ids(reqs)
	_ = Sort(reqs, SortByCost, Descending)
	assert.Equal(t, before, ids(reqs))
}

func TestSortIdempotent(t *testing.T) {
	reqs := fixture()
	once := Sort(reqs, SortByCost, Ascending)
	twice := Sort(once, SortByCost, Ascending)
	assert.Equal(t, ids(once), ids(twice))
}

func TestAggregateStatusPercentages(t *testing.T) {
	reqs := fixture() // active, active, implemented
	agg := Aggregate(reqs)

	require.Len(t, agg.ByStatus, 2)
	assert.Equal(t, schema.StatusActive, agg.ByStatus[0].Status)
	assert.Equal(t, 2, agg.ByStatus[0].Count)
	assert.InDelta(t, 66.7, agg.ByStatus[0].Percent, 0.001)
	assert.Equal(t, schema.StatusImplemented, agg.ByStatus[1].Status)
	assert.Equal(t, 1, agg.ByStatus[1].Count)
	assert.InDelta(t, 33.3, agg.ByStatus[1].Percent, 0.001)
}

func TestAggregateMaturityAndScatter(t *testing.T) {
	agg := Aggregate(fixture())

	require.Len(t, agg.ByMaturity, 2)
	assert.Equal(t, MaturityCount{Level: "defined", Count: 2}, agg.ByMaturity[0])
	assert.Equal(t, MaturityCount{Level: "managed", Count: 1}, agg.ByMaturity[1])

	require.Len(t, agg.Scatter, 3)
	assert.Equal(t, "REQ-a", agg.Scatter[0].ID)
	assert.InDelta(t, 12.0, agg.Scatter[0].CostK, 0.001)
	assert.Equal(t, schema.CategoryTechnical, agg.Scatter[0].Category)
}

func TestAggregateEmptyInput(t *testing.T) {
	agg := Aggregate(nil)
	assert.NotNil(t, agg.ByStatus)
	assert.NotNil(t, agg.ByMaturity)
	assert.NotNil(t, agg.Scatter)
	assert.Empty(t, agg.ByStatus)
	assert.Empty(t, agg.ByMaturity)
	assert.Empty(t, agg.Scatter)
}

func TestApplyPipeline(t *testing.T) {
	c := Criteria{
		Filters:    map[string]string{FieldStatus: "active"},
		SearchTerm: "",
		Sort:       SortSpec{Field: SortByCost, Direction: Descending},
	}
	got := Apply(fixture(), c)
	assert.Equal(t, []string{"REQ-a", "REQ-b"}, ids(got))
}

func TestCriteriaEqualAndClone(t *testing.T) {
	a := DefaultCriteria()
	a.Filters[FieldStatus] = "active"

	b := a.Clone()
	assert.True(t, a.Equal(b))

	b.Filters[FieldStatus] = "draft"
	assert.False(t, a.Equal(b))
	// Clone must not share the filter map
	assert.Equal(t, "active", a.Filters[FieldStatus])
}
