package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compdash/pkg/schema"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "compdash", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"list", "stats", "export", "import", "purge"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	dataDirFlag := cmd.PersistentFlags().Lookup("data-dir")
	require.NotNil(t, dataDirFlag)

	storageFlag := cmd.PersistentFlags().Lookup("storage")
	require.NotNil(t, storageFlag)
}

func TestExportCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	exportCmd, _, err := cmd.Find([]string{"export"})
	require.NoError(t, err)

	outputFlag := exportCmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)
}

// execute runs the CLI against a temp data directory and returns stdout.
func execute(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--data-dir", dataDir}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func writeCSV(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportThenList(t *testing.T) {
	dataDir := t.TempDir()
	csvPath := writeCSV(t, t.TempDir(), "id,title,status,priority\nREQ-1,Encrypt backups,active,high\nREQ-2,Review access,draft,medium\n")

	out, err := execute(t, dataDir, "import", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "admitted 2 row(s)")

	out, err = execute(t, dataDir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "REQ-1")
	assert.Contains(t, out, "Encrypt backups")
	assert.Contains(t, out, "REQ-2")

	out, err = execute(t, dataDir, "list", "--status", "active")
	require.NoError(t, err)
	assert.Contains(t, out, "REQ-1")
	assert.NotContains(t, out, "REQ-2")

	out, err = execute(t, dataDir, "list", "--search", "access")
	require.NoError(t, err)
	assert.Contains(t, out, "REQ-2")
	assert.NotContains(t, out, "REQ-1")
}

func TestImportReportsRejects(t *testing.T) {
	dataDir := t.TempDir()
	csvPath := writeCSV(t, t.TempDir(), "id,title,status\nREQ-1,Good,active\nREQ-2,Bad,nonsense\n")

	out, err := execute(t, dataDir, "import", csvPath)
	require.NoError(t, err, "partial success is not a command failure")
	assert.Contains(t, out, "admitted 1 row(s)")
	// Row numbers are 1-based over data rows; the bad line is the second one.
	assert.Contains(t, out, "rejected row 2")
	assert.Contains(t, out, "invalid status")
}

func TestImportAllRejectedFails(t *testing.T) {
	dataDir := t.TempDir()
	csvPath := writeCSV(t, t.TempDir(), "id,title,status\nREQ-1,Bad,nonsense\n")

	_, err := execute(t, dataDir, "import", csvPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rows admitted")
}

func TestExportRoundTrip(t *testing.T) {
	dataDir := t.TempDir()
	workDir := t.TempDir()
	csvPath := writeCSV(t, workDir, "id,title,status\nREQ-1,Exported,active\n")

	_, err := execute(t, dataDir, "import", csvPath)
	require.NoError(t, err)

	out, err := execute(t, dataDir, "export")
	require.NoError(t, err)
	assert.Contains(t, out, "REQ-1")
	assert.Contains(t, out, "Exported")

	outFile := filepath.Join(workDir, "out.csv")
	out, err = execute(t, dataDir, "export", "-o", outFile)
	require.NoError(t, err)
	assert.Contains(t, out, "exported 1 requirement(s)")

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "REQ-1")
}

func TestStats(t *testing.T) {
	dataDir := t.TempDir()
	csvPath := writeCSV(t, t.TempDir(), "id,title,status\nREQ-1,A,active\nREQ-2,B,active\nREQ-3,C,implemented\n")

	_, err := execute(t, dataDir, "import", csvPath)
	require.NoError(t, err)

	out, err := execute(t, dataDir, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "3 requirement(s)")
	assert.Contains(t, out, "66.7%")
	assert.Contains(t, out, "33.3%")
}

func TestPurgeRequiresPhrase(t *testing.T) {
	dataDir := t.TempDir()
	csvPath := writeCSV(t, t.TempDir(), "id,title\nREQ-1,Sensitive\n")

	_, err := execute(t, dataDir, "import", csvPath)
	require.NoError(t, err)

	_, err = execute(t, dataDir, "purge")
	require.Error(t, err)

	out, err := execute(t, dataDir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "REQ-1", "failed purge must not change anything")

	_, err = execute(t, dataDir, "purge", "--confirm", schema.PurgeConfirmation)
	require.NoError(t, err)

	out, err = execute(t, dataDir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no requirements match")
}

func TestInvalidStorageFlag(t *testing.T) {
	_, err := execute(t, t.TempDir(), "--storage", "postgres", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid storage")
}
