package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Commands(t *testing.T) {
	root := newRootCmd()

	gen, _, err := root.Find([]string{"generate"})
	require.NoError(t, err)
	assert.Equal(t, "generate", gen.Name())
	assert.NotEmpty(t, gen.Long)

	for _, name := range []string{"output", "dry-run", "watch"} {
		assert.NotNil(t, gen.Flags().Lookup(name), name)
	}
	for _, name := range []string{"config", "verbose"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, defaultOutput, gen.Flags().Lookup("output").DefValue)
}

func TestGenerateCmd_DryRun(t *testing.T) {
	cfg := fixture(t)
	t.Chdir(cfg.Root)

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"generate", "--dry-run", "./report"})

	require.NoError(t, root.Execute())

	path := filepath.Join(cfg.Root, "report", defaultOutput)
	assert.Contains(t, stdout.String(), "// === "+path+" ===")
	assert.Contains(t, stdout.String(), `func (*Reporter) DocHooks() map[string]string`)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Removed")
}

func TestGenerateCmd_InvalidOutput(t *testing.T) {
	cfg := fixture(t)
	t.Chdir(cfg.Root)

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"generate", "--output", "hooks.txt"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-test .go file")
}
