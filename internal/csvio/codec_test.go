package csvio

import (
	"strings"
	"testing"
	"time"

	"compdash/pkg/schema"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goldenFixture() []schema.Requirement {
	return []schema.Requirement{
		{
			ID:                 "REQ-0000000001",
			Title:              "Encrypt data at rest",
			Description:        "Customer data is encrypted using AES-256, including backups",
			Category:           schema.CategoryTechnical,
			Priority:           schema.PriorityHigh,
			Status:             schema.StatusActive,
			Framework:          "SOC2",
			FrameworkID:        "CC6.1",
			CapabilityIDs:      []string{"CAP-0000000001", "CAP-0000000002"},
			EvidenceIDs:        []string{"EVD-0000000001"},
			Tags:               []string{"encryption", "storage"},
			Rationale:          `Required by "SOC2" trust criteria`,
			Maturity:           schema.MaturityLevel{Level: "defined", Score: 3},
			BusinessValueScore: 80,
			CostEstimate:       12000,
			CreatedAt:          time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC),
			UpdatedAt:          time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:                 "REQ-0000000002",
			Title:              "Quarterly access review",
			Description:        "Review privileged accounts",
			Category:           schema.CategoryOperational,
			Priority:           schema.PriorityMedium,
			Status:             schema.StatusImplemented,
			Framework:          "ISO27001",
			FrameworkID:        "A.9.2",
			Maturity:           schema.MaturityLevel{Level: "initial", Score: 1.5},
			BusinessValueScore: 55.5,
			CostEstimate:       3000,
			CreatedAt:          time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
			UpdatedAt:          time.Date(2026, 2, 2, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestExportGolden(t *testing.T) {
	out, err := ExportString(goldenFixture())
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "export", []byte(out))
}

func TestRoundTrip(t *testing.T) {
	original := goldenFixture()

	out, err := ExportString(original)
	require.NoError(t, err)

	result, err := Import(out)
	require.NoError(t, err)
	require.Empty(t, result.Rejects)
	require.Len(t, result.Records, len(original))

	// Ids are preserved, so the re-export must be byte-identical.
	again, err := ExportString(result.Records)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestImportPartialSuccess(t *testing.T) {
	csvText := strings.Join([]string{
		"id,title,status",
		"REQ-1,First,active",
		"REQ-2,Second,draft",
		"REQ-3,Third,Bogus",
		"REQ-4,Fourth,implemented",
		"REQ-5,Fifth,deprecated",
	}, "\n")

	result, err := Import(csvText)
	require.NoError(t, err)

	assert.Len(t, result.Records, 4)
	require.Len(t, result.Rejects, 1)
	assert.Equal(t, 3, result.Rejects[0].Row)
	assert.Contains(t, result.Rejects[0].Reason, "invalid status")
}

func TestImportDefaultsForMissingColumns(t *testing.T) {
	result, err := Import("title\nAccess logging\n")
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	r := result.Records[0]
	assert.Equal(t, schema.CategoryTechnical, r.Category)
	assert.Equal(t, schema.PriorityMedium, r.Priority)
	assert.Equal(t, schema.StatusDraft, r.Status)
	assert.True(t, strings.HasPrefix(r.ID, "REQ-"), "blank id should be minted, got %q", r.ID)
}

func TestImportIgnoresUnknownColumns(t *testing.T) {
	result, err := Import("title,owner_email,status\nPatch management,ops@example.com,active\n")
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Patch management", result.Records[0].Title)
	assert.Equal(t, schema.StatusActive, result.Records[0].Status)
}

func TestImportRejectsMissingTitle(t *testing.T) {
	result, err := Import("id,title\nREQ-1,\n")
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	require.Len(t, result.Rejects, 1)
	assert.Contains(t, result.Rejects[0].Reason, "title")
}

func TestImportRejectsDuplicateIDInBatch(t *testing.T) {
	result, err := Import("id,title\nREQ-1,First\nREQ-1,Shadow\n")
	require.NoError(t, err)
	assert.Len(t, result.Records, 1)
	require.Len(t, result.Rejects, 1)
	assert.Equal(t, 2, result.Rejects[0].Row)
	assert.Contains(t, result.Rejects[0].Reason, "duplicate id")
}

func TestImportRejectsBadNumber(t *testing.T) {
	result, err := Import("title,cost_estimate\nGood,1200\nBad,lots\n")
	require.NoError(t, err)
	assert.Len(t, result.Records, 1)
	require.Len(t, result.Rejects, 1)
	assert.Equal(t, 2, result.Rejects[0].Row)
	assert.Contains(t, result.Rejects[0].Reason, "cost_estimate")
}

func TestImportAcceptsCRLF(t *testing.T) {
	result, err := Import("title,status\r\nWindows export,active\r\n")
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Windows export", result.Records[0].Title)
}

func TestImportQuotedFields(t *testing.T) {
	csvText := "title,description\n" +
		`"Logging, monitoring","She said ""keep everything"""` + "\n"

	result, err := Import(csvText)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Logging, monitoring", result.Records[0].Title)
	assert.Equal(t, `She said "keep everything"`, result.Records[0].Description)
}

func TestImportFailsWithoutHeader(t *testing.T) {
	_, err := Import("")
	assert.Error(t, err)

	_, err = Import("id,name\nREQ-1,whatever\n")
	assert.Error(t, err, "header without a title column is unusable")
}

func TestImportRaggedRowIsPerRowError(t *testing.T) {
	result, err := Import("title,status,cost_estimate\nComplete,active,100\nShort\n")
	require.NoError(t, err)
	// The short row still has a title, and absent columns default.
	assert.Len(t, result.Records, 2)
	assert.Empty(t, result.Rejects)
}
