package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yml")
	data := `
types: phone,id_card
jobs: 4
min_confidence: 0.6
no_cache: true
languages: chi_sim+eng
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Types)
	require.Equal(t, "phone,id_card", *cfg.Types)
	require.NotNil(t, cfg.Jobs)
	require.Equal(t, 4, *cfg.Jobs)
	require.NotNil(t, cfg.MinConfidence)
	require.Equal(t, 0.6, *cfg.MinConfidence)
	require.NotNil(t, cfg.NoCache)
	require.True(t, *cfg.NoCache)
	require.NotNil(t, cfg.Languages)
	require.Equal(t, "chi_sim+eng", *cfg.Languages)

	// Absent keys stay nil so merging can tell them apart from zero values.
	require.Nil(t, cfg.MaxBytes)
	require.Nil(t, cfg.Output)
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yml")
	require.NoError(t, os.WriteFile(path, []byte("types: [unterminated"), 0644))
	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".sensiscan.yml"), []byte("jobs: 2\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sensiscan.yml"), []byte("jobs: 8\n"), 0644))

	cfg, err := LoadLocal(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg.Jobs)
	require.Equal(t, 2, *cfg.Jobs)
}

func TestLoadLocal_None(t *testing.T) {
	_, err := LoadLocal(t.TempDir())
	require.Error(t, err)
}

func TestLoadGlobal_XDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	_, err := LoadGlobal()
	require.Error(t, err, "no file yet")

	dir := filepath.Join(base, "sensiscan")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("no_color: true\n"), 0644))

	cfg, err := LoadGlobal()
	require.NoError(t, err)
	require.NotNil(t, cfg.NoColor)
	require.True(t, *cfg.NoColor)
}
