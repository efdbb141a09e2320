package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfigPathAbsolute(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "plot.yaml")
	assert.Equal(t, abs, resolveConfigPath(abs))
}

func TestResolveConfigPathRelativeExists(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "local.yaml"), []byte("output: x.png\n"), 0o644))
	assert.Equal(t, "local.yaml", resolveConfigPath("local.yaml"))
}

func TestResolveConfigPathFallsBackToProjectRoot(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	// etc/plot.yaml does not exist in the temp working directory but does
	// exist at the repository root.
	got := resolveConfigPath("etc/plot.yaml")
	assert.True(t, filepath.IsAbs(got), "expected repo-root path, got %q", got)
	_, statErr := os.Stat(got)
	assert.NoError(t, statErr)
}

func TestResolveConfigPathMissingEverywhere(t *testing.T) {
	assert.Equal(t, "no/such/file.yaml", resolveConfigPath("no/such/file.yaml"))
}
