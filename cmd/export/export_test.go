package export_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rayslava/camt053/cmd/export"
	"github.com/rayslava/camt053/cmd/root"
	internalcommon "github.com/rayslava/camt053/internal/common"
	"github.com/rayslava/camt053/internal/config"
	"github.com/rayslava/camt053/internal/container"
	"github.com/rayslava/camt053/internal/logging"
	"github.com/rayslava/camt053/internal/store"
	mock_store "github.com/rayslava/camt053/internal/store/mocks"
	"github.com/rayslava/camt053/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, cfg *config.Config) {
	t.Helper()
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	root.SetContainer(c)
	t.Cleanup(root.Reset)
}

func execute(args ...string) (string, error) {
	cmd := export.NewCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExportCommand_CSVToFile(t *testing.T) {
	setup(t, config.Default())
	dir := t.TempDir()
	file := testutil.WriteStatement(t, dir, "statement.xml")
	out := filepath.Join(dir, "entries.csv")

	_, err := execute("-i", file, "-o", out)
	require.NoError(t, err)

	rows, err := internalcommon.ReadCSVFile[internalcommon.EntryRow](out, logging.NewMockLogger())
	require.NoError(t, err)
	require.Len(t, rows, 5, "one row per transaction detail")
	assert.Equal(t, "600.00", rows[0].TransactionAmount)
	assert.Equal(t, "Main Street 1, 10115 Berlin", rows[0].DebtorAddress)
	assert.Equal(t, "-1500.00", rows[4].SignedAmount)
	assert.Equal(t, "Insurance", rows[4].Creditor)
}

func TestExportCommand_CSVStdoutOptions(t *testing.T) {
	setup(t, config.Default())
	file := testutil.WriteStatement(t, t.TempDir(), "statement.xml")

	out, err := execute("-i", file, "--delimiter", ";", "--date-format", "DD.MM.YYYY", "--no-headers")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "msg123;01;DE89370400440532013000;16.05.2024;16.05.2024;CRDT;"), lines[0])
}

func TestExportCommand_ConfigDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.CSV.Delimiter = "|"
	setup(t, cfg)
	file := testutil.WriteStatement(t, t.TempDir(), "statement.xml")

	out, err := execute("-i", file)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "MessageId|StatementId|"))
}

func TestExportCommand_YAML(t *testing.T) {
	setup(t, config.Default())
	dir := t.TempDir()
	file := testutil.WriteStatement(t, dir, "statement.xml")
	out := filepath.Join(dir, "statement.yaml")

	_, err := execute("-i", file, "-o", out, "--format", "yaml")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	doc, err := store.ParseDefinition(data)
	require.NoError(t, err)
	assert.Equal(t, testutil.Document(t), doc)
}

func TestExportCommand_Errors(t *testing.T) {
	setup(t, config.Default())
	file := testutil.WriteStatement(t, t.TempDir(), "statement.xml")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown format", args: []string{"-i", file, "-f", "xlsx"}, want: "unsupported export format"},
		{name: "bad delimiter", args: []string{"-i", file, "--delimiter", "ab"}, want: "single character"},
		{name: "bad date format", args: []string{"-i", file, "--date-format", "MM/DD/YYYY"}, want: "unsupported date format"},
		{name: "yaml to stdout", args: []string{"-i", file, "-f", "yaml"}, want: "needs an output file"},
		{name: "missing input", args: []string{"-i", "missing.xml"}, want: "path does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(tt.args...)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestExportCommand_YAMLThroughStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, err := container.NewContainerWithLogger(config.Default(), logging.NewMockLogger())
	require.NoError(t, err)
	definitions := mock_store.NewMockDefinitionStore(ctrl)
	root.SetContainer(c.WithStore(definitions))
	t.Cleanup(root.Reset)

	file := testutil.WriteStatement(t, t.TempDir(), "statement.xml")
	definitions.EXPECT().SaveDefinition("may.yaml", testutil.Document(t)).Return(nil)
	definitions.EXPECT().SaveDefinition("june.yaml", gomock.Any()).Return(errors.New("read-only"))

	_, err = execute("-i", file, "-f", "yaml", "-o", "may.yaml")
	require.NoError(t, err)

	_, err = execute("-i", file, "-f", "yaml", "-o", "june.yaml")
	assert.ErrorContains(t, err, "error saving definition: read-only")
}
