package dochooks_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/iVampireSP/dochooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDumpCommand(t *testing.T) {
	reg, _ := registered(t, &Reporter{}, &Blog{})
	core, observed := observer.New(zapcore.InfoLevel)

	path := filepath.Join(t.TempDir(), "hooks.txt")
	cmd := dochooks.NewDumpCommand(reg, zap.New(core))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())

	want := dochooks.ClassName(&Reporter{}) + " added 1 hooks\n" +
		dochooks.ClassName(&Blog{}) + " added 4 hooks\n" +
		"Success: All the hooks dumped!\n"
	assert.Equal(t, want, out.String())

	_, err := os.Stat(path)
	assert.NoError(t, err)

	logs := observed.FilterMessage("hooks dumped").All()
	require.Len(t, logs, 1)
	assert.Equal(t, int64(5), logs[0].ContextMap()["hooks"])
}

func TestDumpCommand_MissingPath(t *testing.T) {
	reg, _ := registered(t, &Reporter{})
	cmd := dochooks.NewDumpCommand(reg, nil)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	assert.ErrorIs(t, err, dochooks.ErrNoOutputFile)
}
