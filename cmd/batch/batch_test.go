package batch_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rayslava/camt053/cmd/batch"
	"github.com/rayslava/camt053/cmd/root"
	"github.com/rayslava/camt053/internal/config"
	"github.com/rayslava/camt053/internal/container"
	"github.com/rayslava/camt053/internal/logging"
	"github.com/rayslava/camt053/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) {
	t.Helper()
	c, err := container.NewContainerWithLogger(config.Default(), logging.NewMockLogger())
	require.NoError(t, err)
	root.SetContainer(c)
	t.Cleanup(root.Reset)
}

func execute(args ...string) (string, error) {
	cmd := batch.NewCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBatchCommand_CommandMetadata(t *testing.T) {
	assert.Equal(t, "batch", batch.Cmd.Use)
	assert.Contains(t, batch.Cmd.Short, "Batch process")
	assert.Contains(t, batch.Cmd.Long, "input directory")
	assert.Contains(t, batch.Cmd.Long, "Example")
	assert.NotNil(t, batch.Cmd.RunE)
}

func TestBatchCommand_PerFile(t *testing.T) {
	setup(t)
	in, out := t.TempDir(), t.TempDir()
	testutil.WriteStatement(t, in, "may.xml")
	testutil.WriteStatement(t, in, "june.xml")

	stdout, err := execute("-i", in, "-o", out, "-w", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 converted, 0 failed")

	for _, name := range []string{"may.csv", "june.csv"} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}
}

func TestBatchCommand_Consolidate(t *testing.T) {
	setup(t)
	in, out := t.TempDir(), t.TempDir()
	testutil.WriteStatement(t, in, "a.xml")
	testutil.WriteStatement(t, in, "b.xml")

	stdout, err := execute("-i", in, "-o", out, "--consolidate")
	require.NoError(t, err)

	want := filepath.Join(out, "DE89370400440532013000_2024-05-16_2024-05-16.csv")
	assert.Contains(t, stdout, "wrote  "+want)
	_, err = os.Stat(want)
	assert.NoError(t, err)
}

func TestBatchCommand_Failures(t *testing.T) {
	setup(t)
	in, out := t.TempDir(), t.TempDir()
	testutil.WriteStatement(t, in, "good.xml")
	require.NoError(t, os.WriteFile(filepath.Join(in, "bad.xml"), []byte("<Document/>"), 0600))

	stdout, err := execute("-i", in, "-o", out)
	assert.EqualError(t, err, "1 of 2 files failed")
	assert.Contains(t, stdout, "FAILED "+filepath.Join(in, "bad.xml"))

	_, err = execute("-i", in, "-o", out, "--fail-fast", "-w", "1")
	assert.ErrorContains(t, err, "error during batch conversion")
}

func TestBatchCommand_Pattern(t *testing.T) {
	setup(t)
	in, out := t.TempDir(), t.TempDir()
	testutil.WriteStatement(t, in, "a.camt")
	testutil.WriteStatement(t, in, "b.xml")

	stdout, err := execute("-i", in, "-o", out, "--pattern", "*.camt")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 converted, 0 failed")
}

func TestBatchCommand_MissingDirectories(t *testing.T) {
	setup(t)
	_, err := execute("-i", t.TempDir())
	assert.EqualError(t, err, "input and output directories must be specified")
}
