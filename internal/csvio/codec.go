// Package csvio serializes requirement collections to and from CSV text.
//
// Export writes a stable, documented header followed by one row per record.
// Import is partial-success: valid rows are admitted, invalid rows are
// reported with their 1-based data-row number, and one bad row never aborts
// the batch. Supplied ids are preserved; blank ids get a freshly minted one.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"compdash/internal/core"
	"compdash/pkg/schema"
)

// Header is the stable column order for export and the recognized column set
// for import. Unknown columns on import are ignored; missing optional columns
// default per the entity model.
var Header = []string{
	"id",
	"title",
	"description",
	"category",
	"priority",
	"status",
	"framework",
	"framework_id",
	"capability_ids",
	"evidence_ids",
	"tags",
	"rationale",
	"maturity_level",
	"maturity_score",
	"business_value_score",
	"cost_estimate",
	"created_at",
	"updated_at",
}

// listSeparator joins multi-value columns (capability ids, evidence ids,
// tags) inside a single CSV field.
const listSeparator = ";"

// Export writes the collection as CSV. Line endings are LF; fields containing
// the delimiter, quotes, or newlines are quoted with doubled embedded quotes
// (standard CSV quoting via encoding/csv).
func Export(w io.Writer, reqs []schema.Requirement) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range reqs {
		if err := cw.Write(recordToRow(r)); err != nil {
			return fmt.Errorf("write row for %s: %w", r.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// ExportString renders the collection as CSV text.
func ExportString(reqs []schema.Requirement) (string, error) {
	var sb strings.Builder
	if err := Export(&sb, reqs); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func recordToRow(r schema.Requirement) []string {
	return []string{
		r.ID,
		r.Title,
		r.Description,
		string(r.Category),
		string(r.Priority),
		string(r.Status),
		r.Framework,
		r.FrameworkID,
		strings.Join(r.CapabilityIDs, listSeparator),
		strings.Join(r.EvidenceIDs, listSeparator),
		strings.Join(r.Tags, listSeparator),
		r.Rationale,
		r.Maturity.Level,
		formatFloat(r.Maturity.Score),
		formatFloat(r.BusinessValueScore),
		formatFloat(r.CostEstimate),
		formatTime(r.CreatedAt),
		formatTime(r.UpdatedAt),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// ImportResult holds the admitted records and the per-row rejects of one
// import batch. Rows runs parallel to Records with each record's 1-based
// data-row number, so later validation stages can report against the same
// numbering.
type ImportResult struct {
	Records []schema.Requirement
	Rows    []int
	Rejects []core.ImportRowError
}

// Import parses CSV text into candidate records. The header row is required;
// a missing or unusable header fails the whole import, anything after that
// is per-row. CRLF and LF line endings are both accepted. Capability
// references are parsed verbatim; referential checks happen in the store.
func Import(text string) (*ImportResult, error) {
	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1 // Ragged rows are a per-row error, not a batch error

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["title"]; !ok {
		return nil, fmt.Errorf("header missing required column %q", "title")
	}

	result := &ImportResult{
		Records: []schema.Requirement{},
		Rows:    []int{},
		Rejects: []core.ImportRowError{},
	}
	seen := make(map[string]bool)

	for rowNum := 1; ; rowNum++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Rejects = append(result.Rejects, core.ImportRowError{Row: rowNum, Reason: err.Error()})
			continue
		}

		rec, err := rowToRecord(cols, row)
		if err != nil {
			result.Rejects = append(result.Rejects, core.ImportRowError{Row: rowNum, Reason: err.Error()})
			continue
		}

		if seen[rec.ID] {
			result.Rejects = append(result.Rejects, core.ImportRowError{
				Row:    rowNum,
				Reason: fmt.Sprintf("duplicate id %s in batch", rec.ID),
			})
			continue
		}
		seen[rec.ID] = true

		result.Records = append(result.Records, rec)
		result.Rows = append(result.Rows, rowNum)
	}

	return result, nil
}

func rowToRecord(cols map[string]int, row []string) (schema.Requirement, error) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var r schema.Requirement
	var err error

	r.ID = get("id")
	if r.ID == "" {
		r.ID, err = schema.NewRequirementID()
		if err != nil {
			return r, fmt.Errorf("mint id: %w", err)
		}
	}

	r.Title = get("title")
	if r.Title == "" {
		return r, fmt.Errorf("title is required")
	}

	r.Description = get("description")
	r.Framework = get("framework")
	r.FrameworkID = get("framework_id")
	r.Rationale = get("rationale")
	r.Maturity.Level = get("maturity_level")

	r.Category, err = parseCategory(get("category"))
	if err != nil {
		return r, err
	}
	r.Priority, err = parsePriority(get("priority"))
	if err != nil {
		return r, err
	}
	r.Status, err = parseStatus(get("status"))
	if err != nil {
		return r, err
	}

	r.CapabilityIDs = splitList(get("capability_ids"))
	r.EvidenceIDs = splitList(get("evidence_ids"))
	r.Tags = splitList(get("tags"))

	if r.Maturity.Score, err = parseFloat("maturity_score", get("maturity_score")); err != nil {
		return r, err
	}
	if r.BusinessValueScore, err = parseFloat("business_value_score", get("business_value_score")); err != nil {
		return r, err
	}
	if r.CostEstimate, err = parseFloat("cost_estimate", get("cost_estimate")); err != nil {
		return r, err
	}

	if r.CreatedAt, err = parseTime("created_at", get("created_at")); err != nil {
		return r, err
	}
	if r.UpdatedAt, err = parseTime("updated_at", get("updated_at")); err != nil {
		return r, err
	}

	if err := schema.ValidateRequirement(&r); err != nil {
		return r, err
	}

	return r, nil
}

func parseCategory(v string) (schema.Category, error) {
	if v == "" {
		return schema.CategoryTechnical, nil
	}
	c := schema.Category(strings.ToLower(v))
	switch c {
	case schema.CategoryTechnical, schema.CategoryOperational, schema.CategoryGovernance, schema.CategoryCompliance:
		return c, nil
	}
	return "", fmt.Errorf("invalid category: %q", v)
}

func parsePriority(v string) (schema.Priority, error) {
	if v == "" {
		return schema.PriorityMedium, nil
	}
	p := schema.Priority(strings.ToLower(v))
	switch p {
	case schema.PriorityLow, schema.PriorityMedium, schema.PriorityHigh, schema.PriorityCritical:
		return p, nil
	}
	return "", fmt.Errorf("invalid priority: %q", v)
}

func parseStatus(v string) (schema.Status, error) {
	if v == "" {
		return schema.StatusDraft, nil
	}
	s := schema.Status(strings.ToLower(v))
	switch s {
	case schema.StatusDraft, schema.StatusActive, schema.StatusImplemented, schema.StatusDeprecated:
		return s, nil
	}
	return "", fmt.Errorf("invalid status: %q", v)
}

func parseFloat(name, v string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, v)
	}
	return f, nil
}

func parseTime(name, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %q", name, v)
	}
	return t, nil
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, listSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
