package root_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rayslava/camt053/cmd/root"
	"github.com/rayslava/camt053/internal/config"
	"github.com/rayslava/camt053/internal/container"
	"github.com/rayslava/camt053/internal/logging"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with no config or .env in
// reach and restores the global root state afterwards.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	for _, key := range []string{"CAMT053_LOG_LEVEL", "CAMT053_LOG_FORMAT", "CAMT053_CSV_DELIMITER"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	saved := root.Flags
	t.Cleanup(func() {
		root.Flags = saved
		root.Reset()
	})
	root.Reset()
	return dir
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "camt053", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "camt.053")
	assert.NotNil(t, root.Cmd.RunE)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRun)
}

func TestRootCommand_Flags(t *testing.T) {
	for _, name := range []string{"config", "log-level", "log-format"} {
		assert.NotNil(t, root.Cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestAddCommonFlags(t *testing.T) {
	var flags root.CommonFlags
	cmd := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	root.AddCommonFlags(cmd, &flags, "in", "out")

	cmd.SetArgs([]string{"-i", "a.xml", "-o", "a.csv", "-v"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, root.CommonFlags{Input: "a.xml", Output: "a.csv", Validate: true}, flags)
	assert.Equal(t, "i", cmd.Flags().Lookup("input").Shorthand)
	assert.Equal(t, "o", cmd.Flags().Lookup("output").Shorthand)
	assert.Equal(t, "v", cmd.Flags().Lookup("validate").Shorthand)
}

func TestRootCommand_RunShowsHelp(t *testing.T) {
	isolate(t)
	cmd := root.NewCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "camt053")
}

func TestInitialize_Defaults(t *testing.T) {
	isolate(t)

	require.NoError(t, root.Initialize())
	c := root.GetContainer()
	assert.Equal(t, "info", c.GetConfig().Log.Level)
}

func TestInitialize_FlagOverrides(t *testing.T) {
	isolate(t)
	root.Flags.LogLevel = "debug"
	root.Flags.LogFormat = "json"

	require.NoError(t, root.Initialize())
	cfg := root.GetContainer().GetConfig()
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestInitialize_ConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("csv:\n  delimiter: \";\"\n"), 0600))
	root.Flags.ConfigFile = path

	require.NoError(t, root.Initialize())
	assert.Equal(t, ';', root.GetContainer().CSVOptions().Delimiter)
}

func TestInitialize_InvalidConfig(t *testing.T) {
	isolate(t)
	root.Flags.LogLevel = "loud"

	err := root.Initialize()
	assert.ErrorContains(t, err, "failed to initialize application")
}

func TestInitialize_MissingConfigFile(t *testing.T) {
	dir := isolate(t)
	root.Flags.ConfigFile = filepath.Join(dir, "missing.yaml")

	assert.Error(t, root.Initialize())
}

func TestSetContainer(t *testing.T) {
	isolate(t)
	logger := logging.NewMockLogger()
	c, err := container.NewContainerWithLogger(config.Default(), logger)
	require.NoError(t, err)

	root.SetContainer(c)
	assert.Same(t, c, root.GetContainer())
	assert.Same(t, logger, root.Log)

	// An injected container survives the pre-run hook.
	require.NoError(t, root.Initialize())
	assert.Same(t, c, root.GetContainer())
}

func TestGetContainer_Default(t *testing.T) {
	isolate(t)
	assert.NotPanics(t, func() {
		assert.NotNil(t, root.GetContainer())
	})
}
