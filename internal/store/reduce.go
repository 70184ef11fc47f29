package store

import (
	"fmt"
	"sort"
	"time"

	"compdash/internal/core"
	"compdash/internal/csvio"
	"compdash/internal/storage"
	"compdash/internal/views"
	"compdash/pkg/schema"
)

// reduce applies a single action to the (private) next state and returns the
// slices that must be mirrored to storage. Any returned error leaves the
// committed snapshot untouched.
func (s *Store) reduce(next *State, action Action, result *Result) ([]persistOp, error) {
	switch a := action.(type) {
	case LoadCollections:
		return s.applyLoad(next, result)
	case CreateRequirement:
		return applyCreateRequirement(next, a)
	case UpdateRequirement:
		return applyUpdateRequirement(next, a)
	case DeleteRequirement:
		return applyDeleteRequirement(next, a)
	case CreateCapability:
		return applyCreateCapability(next, a)
	case UpdateCapability:
		return applyUpdateCapability(next, a)
	case DeleteCapability:
		return applyDeleteCapability(next, a)
	case LinkCapabilities:
		return applyLinkCapabilities(next, a)
	case SetFilters:
		return applySetFilters(next, a)
	case SetSearchTerm:
		next.Criteria.SearchTerm = a.Term
		return nil, nil
	case SetSort:
		return applySetSort(next, a)
	case ImportCSV:
		return applyImportCSV(next, a, result)
	case ExportCSV:
		return applyExportCSV(next, a, result)
	case UpdateCompanyProfile:
		next.Profile = a.Profile
		next.Profile.UpdatedAt = time.Now().UTC()
		return []persistOp{{key: storage.KeyCompanyProfile}}, nil
	case UpdateSettings:
		next.Settings = a.Settings
		return []persistOp{{key: storage.KeySettings}}, nil
	case SetTheme:
		if err := schema.ValidateTheme(a.Theme); err != nil {
			return nil, &core.ValidationError{Field: "theme", Message: err.Error(), Err: err}
		}
		next.UI.Theme = a.Theme
		return []persistOp{{key: storage.KeyTheme}}, nil
	case SetSidebarOpen:
		next.UI.SidebarOpen = a.Open
		return []persistOp{{key: storage.KeySidebar}}, nil
	case PurgeAll:
		return applyPurgeAll(next, a)
	default:
		return nil, fmt.Errorf("unknown action type: %T", action)
	}
}

func (s *Store) applyLoad(next *State, result *Result) ([]persistOp, error) {
	if s.adapter == nil {
		return nil, nil
	}

	reqs := []schema.Requirement{}
	if s.loadSlice(storage.KeyRequirements, &reqs, result) {
		next.Requirements = reqs
	} else {
		next.Requirements = []schema.Requirement{}
	}

	caps := []schema.Capability{}
	if s.loadSlice(storage.KeyCapabilities, &caps, result) {
		next.Capabilities = caps
	} else {
		next.Capabilities = []schema.Capability{}
	}

	var profile schema.CompanyProfile
	if s.loadSlice(storage.KeyCompanyProfile, &profile, result) {
		next.Profile = profile
	} else {
		next.Profile = schema.CompanyProfile{}
	}

	settings := schema.DefaultSettings()
	if !s.loadSlice(storage.KeySettings, &settings, result) {
		settings = schema.DefaultSettings()
	}
	next.Settings = settings

	next.UI = schema.DefaultUIState()
	var theme schema.Theme
	if s.loadSlice(storage.KeyTheme, &theme, result) && schema.ValidateTheme(theme) == nil {
		next.UI.Theme = theme
	}
	var sidebar bool
	if s.loadSlice(storage.KeySidebar, &sidebar, result) {
		next.UI.SidebarOpen = sidebar
	}

	s.scrubDanglingLinks(next)
	return nil, nil
}

// scrubDanglingLinks drops capability references that no longer resolve.
// Loaded data is outside the store's control; every snapshot it publishes
// still upholds the no-dangling-reference invariant.
func (s *Store) scrubDanglingLinks(next *State) {
	for i := range next.Requirements {
		r := &next.Requirements[i]
		kept := r.CapabilityIDs[:0]
		for _, capID := range r.CapabilityIDs {
			if next.capabilityIndex(capID) >= 0 {
				kept = append(kept, capID)
			} else {
				s.logger.Warn("dropping dangling capability link",
					"requirement", r.ID, "capability", capID)
			}
		}
		r.CapabilityIDs = kept
	}
}

func applyCreateRequirement(next *State, a CreateRequirement) ([]persistOp, error) {
	id, err := schema.NewRequirementID()
	if err != nil {
		return nil, fmt.Errorf("mint requirement id: %w", err)
	}

	now := time.Now().UTC()
	d := a.Draft
	r := schema.Requirement{
		ID:                 id,
		Title:              d.Title,
		Description:        d.Description,
		Category:           d.Category,
		Priority:           d.Priority,
		Status:             d.Status,
		Framework:          d.Framework,
		FrameworkID:        d.FrameworkID,
		EvidenceIDs:        append([]string(nil), d.EvidenceIDs...),
		Tags:               append([]string(nil), d.Tags...),
		Rationale:          d.Rationale,
		Maturity:           d.Maturity,
		BusinessValueScore: d.BusinessValueScore,
		CostEstimate:       d.CostEstimate,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := schema.ValidateRequirement(&r); err != nil {
		return nil, &core.ValidationError{Message: err.Error(), Err: err}
	}

	next.Requirements = append(next.Requirements, r)
	return []persistOp{{key: storage.KeyRequirements}}, nil
}

func applyUpdateRequirement(next *State, a UpdateRequirement) ([]persistOp, error) {
	idx := next.requirementIndex(a.ID)
	if idx < 0 {
		return nil, &core.NotFoundError{Kind: "requirement", ID: a.ID}
	}

	merged := a.Patch.Apply(next.Requirements[idx])
	if err := schema.ValidateRequirement(&merged); err != nil {
		return nil, &core.ValidationError{Message: err.Error(), Err: err}
	}
	merged.UpdatedAt = time.Now().UTC()

	next.Requirements[idx] = merged
	return []persistOp{{key: storage.KeyRequirements}}, nil
}

func applyDeleteRequirement(next *State, a DeleteRequirement) ([]persistOp, error) {
	idx := next.requirementIndex(a.ID)
	if idx < 0 {
		return nil, &core.NotFoundError{Kind: "requirement", ID: a.ID}
	}

	next.Requirements = append(next.Requirements[:idx], next.Requirements[idx+1:]...)
	return []persistOp{{key: storage.KeyRequirements}}, nil
}

func applyCreateCapability(next *State, a CreateCapability) ([]persistOp, error) {
	id, err := schema.NewCapabilityID()
	if err != nil {
		return nil, fmt.Errorf("mint capability id: %w", err)
	}

	now := time.Now().UTC()
	c := schema.Capability{
		ID:          id,
		Name:        a.Draft.Name,
		Description: a.Draft.Description,
		Owner:       a.Draft.Owner,
		Tags:        append([]string(nil), a.Draft.Tags...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := schema.ValidateCapability(&c); err != nil {
		return nil, &core.ValidationError{Message: err.Error(), Err: err}
	}

	next.Capabilities = append(next.Capabilities, c)
	return []persistOp{{key: storage.KeyCapabilities}}, nil
}

func applyUpdateCapability(next *State, a UpdateCapability) ([]persistOp, error) {
	idx := next.capabilityIndex(a.ID)
	if idx < 0 {
		return nil, &core.NotFoundError{Kind: "capability", ID: a.ID}
	}

	merged := a.Patch.Apply(next.Capabilities[idx])
	if err := schema.ValidateCapability(&merged); err != nil {
		return nil, &core.ValidationError{Message: err.Error(), Err: err}
	}
	merged.UpdatedAt = time.Now().UTC()

	next.Capabilities[idx] = merged
	return []persistOp{{key: storage.KeyCapabilities}}, nil
}

// applyDeleteCapability rejects deletion while any requirement still
// references the capability. Rejection (rather than cascade-clearing the
// references) keeps every successful mutation integrity-preserving without
// silently editing records the caller never named.
func applyDeleteCapability(next *State, a DeleteCapability) ([]persistOp, error) {
	idx := next.capabilityIndex(a.ID)
	if idx < 0 {
		return nil, &core.NotFoundError{Kind: "capability", ID: a.ID}
	}

	if refBy := next.capabilityReferencedBy(a.ID); refBy != "" {
		return nil, &core.LinkIntegrityError{
			RequirementID: refBy,
			CapabilityID:  a.ID,
			Message:       "capability still referenced; unlink before deleting",
		}
	}

	next.Capabilities = append(next.Capabilities[:idx], next.Capabilities[idx+1:]...)
	return []persistOp{{key: storage.KeyCapabilities}}, nil
}

func applyLinkCapabilities(next *State, a LinkCapabilities) ([]persistOp, error) {
	idx := next.requirementIndex(a.RequirementID)
	if idx < 0 {
		return nil, &core.NotFoundError{Kind: "requirement", ID: a.RequirementID}
	}

	// Every id must resolve before anything changes.
	for _, capID := range a.CapabilityIDs {
		if next.capabilityIndex(capID) < 0 {
			return nil, &core.LinkIntegrityError{
				RequirementID: a.RequirementID,
				CapabilityID:  capID,
			}
		}
	}

	var linked []string
	if a.Replace {
		linked = dedupe(a.CapabilityIDs)
	} else {
		linked = dedupe(append(append([]string{}, next.Requirements[idx].CapabilityIDs...), a.CapabilityIDs...))
	}

	next.Requirements[idx].CapabilityIDs = linked
	next.Requirements[idx].UpdatedAt = time.Now().UTC()
	return []persistOp{{key: storage.KeyRequirements}}, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// applySetFilters rejects unknown field names rather than merging them; a
// typo'd field would otherwise match every record and look like a cleared
// filter.
func applySetFilters(next *State, a SetFilters) ([]persistOp, error) {
	for field := range a.Filters {
		if !views.IsFilterField(field) {
			return nil, &core.ValidationError{
				Field:   "filters",
				Message: fmt.Sprintf("unknown filter field %q", field),
			}
		}
	}

	if next.Criteria.Filters == nil {
		next.Criteria.Filters = make(map[string]string, len(a.Filters))
	}
	for field, value := range a.Filters {
		next.Criteria.Filters[field] = value
	}
	return nil, nil
}

func applySetSort(next *State, a SetSort) ([]persistOp, error) {
	switch a.Direction {
	case views.Ascending, views.Descending:
		// Valid
	default:
		return nil, &core.ValidationError{
			Field:   "direction",
			Message: fmt.Sprintf("invalid sort direction: %q", a.Direction),
		}
	}
	next.Criteria.Sort = views.SortSpec{Field: a.Field, Direction: a.Direction}
	return nil, nil
}

func applyImportCSV(next *State, a ImportCSV, result *Result) ([]persistOp, error) {
	parsed, err := csvio.Import(a.Text)
	if err != nil {
		return nil, &core.ValidationError{Field: "csv", Message: err.Error(), Err: err}
	}

	report := &ImportReport{
		Rejects: append([]core.ImportRowError{}, parsed.Rejects...),
	}

	now := time.Now().UTC()
	for i, rec := range parsed.Records {
		row := parsed.Rows[i]

		if next.requirementIndex(rec.ID) >= 0 {
			report.Rejects = append(report.Rejects, core.ImportRowError{
				Row:    row,
				Reason: fmt.Sprintf("id %s already exists", rec.ID),
			})
			continue
		}

		if missing := firstUnresolvable(next, rec.CapabilityIDs); missing != "" {
			report.Rejects = append(report.Rejects, core.ImportRowError{
				Row:    row,
				Reason: fmt.Sprintf("unknown capability %s", missing),
			})
			continue
		}

		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		if rec.UpdatedAt.IsZero() {
			rec.UpdatedAt = now
		}

		next.Requirements = append(next.Requirements, rec)
		report.Admitted++
	}

	sort.Slice(report.Rejects, func(i, j int) bool {
		return report.Rejects[i].Row < report.Rejects[j].Row
	})
	result.Import = report

	if report.Admitted == 0 {
		return nil, nil
	}
	return []persistOp{{key: storage.KeyRequirements}}, nil
}

func firstUnresolvable(next *State, capIDs []string) string {
	for _, capID := range capIDs {
		if next.capabilityIndex(capID) < 0 {
			return capID
		}
	}
	return ""
}

func applyExportCSV(next *State, a ExportCSV, result *Result) ([]persistOp, error) {
	reqs := next.Requirements
	if a.FilteredOnly {
		reqs = views.Apply(next.Requirements, next.Criteria)
	}

	out, err := csvio.ExportString(reqs)
	if err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}
	result.CSV = out
	return nil, nil
}

func applyPurgeAll(next *State, a PurgeAll) ([]persistOp, error) {
	if a.Confirmation != schema.PurgeConfirmation {
		return nil, &core.ValidationError{
			Field:   "confirmation",
			Message: fmt.Sprintf("purge requires the confirmation phrase %q", schema.PurgeConfirmation),
		}
	}

	next.Requirements = []schema.Requirement{}
	next.Capabilities = []schema.Capability{}
	return []persistOp{
		{key: storage.KeyRequirements, delete: true},
		{key: storage.KeyCapabilities, delete: true},
	}, nil
}
