package views

import (
	"math"
	"sort"

	"compdash/pkg/schema"
)

// StatusCount is one status group with its share of the total.
type StatusCount struct {
	Status  schema.Status `json:"status" yaml:"status"`
	Count   int           `json:"count" yaml:"count"`
	Percent float64       `json:"percent" yaml:"percent"` // Rounded to one decimal
}

// MaturityCount is one maturity-level group.
type MaturityCount struct {
	Level string `json:"level" yaml:"level"`
	Count int    `json:"count" yaml:"count"`
}

// ScatterPoint is one value-vs-cost plot entry. CostK is the cost estimate
// in thousands.
type ScatterPoint struct {
	ID            string          `json:"id" yaml:"id"`
	BusinessValue float64         `json:"business_value" yaml:"business_value"`
	CostK         float64         `json:"cost_k" yaml:"cost_k"`
	Category      schema.Category `json:"category" yaml:"category"`
}

// Aggregates holds the dashboard statistics computed from a collection.
type Aggregates struct {
	ByStatus   []StatusCount   `json:"by_status" yaml:"by_status"`
	ByMaturity []MaturityCount `json:"by_maturity" yaml:"by_maturity"`
	Scatter    []ScatterPoint  `json:"scatter" yaml:"scatter"`
}

// Aggregate computes all dashboard statistics in one pass over the
// collection. Empty input yields empty (non-nil) groups; percentages are
// never computed against a zero total. The input is never mutated.
func Aggregate(reqs []schema.Requirement) Aggregates {
	statusCounts := make(map[schema.Status]int)
	maturityCounts := make(map[string]int)
	scatter := make([]ScatterPoint, 0, len(reqs))

	for _, r := range reqs {
		statusCounts[r.Status]++
		maturityCounts[r.Maturity.Level]++
		scatter = append(scatter, ScatterPoint{
			ID:            r.ID,
			BusinessValue: r.BusinessValueScore,
			CostK:         r.CostEstimate / 1000,
			Category:      r.Category,
		})
	}

	byStatus := make([]StatusCount, 0, len(statusCounts))
	total := len(reqs)
	for status, count := range statusCounts {
		byStatus = append(byStatus, StatusCount{
			Status:  status,
			Count:   count,
			Percent: roundOneDecimal(float64(count) / float64(total) * 100),
		})
	}
	sort.Slice(byStatus, func(i, j int) bool {
		return schema.StatusRank(byStatus[i].Status) < schema.StatusRank(byStatus[j].Status)
	})

	byMaturity := make([]MaturityCount, 0, len(maturityCounts))
	for level, count := range maturityCounts {
		byMaturity = append(byMaturity, MaturityCount{Level: level, Count: count})
	}
	sort.Slice(byMaturity, func(i, j int) bool {
		return byMaturity[i].Level < byMaturity[j].Level
	})

	return Aggregates{
		ByStatus:   byStatus,
		ByMaturity: byMaturity,
		Scatter:    scatter,
	}
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
