package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRun_Usage(t *testing.T) {
	log := zaptest.NewLogger(t)

	tests := map[string][]string{
		"no command":           nil,
		"unknown command":      {"sideways"},
		"create without name":  {"create"},
		"step without count":   {"step"},
		"goto without version": {"goto"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, run(args, t.TempDir(), log), errUsage)
		})
	}
}

func TestRun_CreateAndList(t *testing.T) {
	log := zaptest.NewLogger(t)
	dir := t.TempDir()

	require.NoError(t, run([]string{"create", "add_complement_flags", "Adds display flags"}, dir, log))
	require.NoError(t, run([]string{"create", "add item sku"}, dir, log))
	require.NoError(t, run([]string{"list"}, dir, log))

	for _, name := range []string{"000001_add_complement_flags.up.sql", "000002_add_item_sku.down.sql"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestDBCommands_ArgCounts(t *testing.T) {
	for name, cmd := range dbCommands {
		assert.NotEmpty(t, cmd.usage, name)
		assert.NotNil(t, cmd.run, name)
	}
	assert.Equal(t, 1, dbCommands["force"].nargs)
	assert.Zero(t, dbCommands["up"].nargs)
}
