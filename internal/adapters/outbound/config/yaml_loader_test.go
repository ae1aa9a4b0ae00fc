package config_test

import (
	"os"
	"path/filepath"
	"testing"

	appconfig "github.com/openkraft/licensekit/internal/adapters/outbound/config"
	"github.com/openkraft/licensekit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".licensekit.yaml"), []byte(content), 0644))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
ignore_debian: true
include_vcs_ignored: true
log_level: debug
`)
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.True(t, cfg.IgnoreDebian)
	assert.True(t, cfg.IncludeVCSIgnored)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, domain.DebianFallbackOff, cfg.DebianFallback())
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{{{invalid yaml`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .licensekit.yaml")
}

func TestYAMLLoader_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `log_level: loud`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .licensekit.yaml")
	assert.Contains(t, err.Error(), "loud")
}

func TestYAMLLoader_ExcludePaths(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
exclude_paths:
  - generated/
  - third_party/proto
`)
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"generated/", "third_party/proto"}, cfg.ExcludePaths)
}

func TestYAMLLoader_EmptyFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "")
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_WriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	loader := appconfig.New()

	path, err := loader.Write(dir, domain.ProjectConfig{IgnoreDebian: true, ExcludePaths: []string{"build"}}, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, appconfig.FileName), path)

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.True(t, cfg.IgnoreDebian)
	assert.Equal(t, []string{"build"}, cfg.ExcludePaths)
}

func TestYAMLLoader_WriteRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "ignore_debian: false\n")
	loader := appconfig.New()

	_, err := loader.Write(dir, domain.DefaultConfig(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestYAMLLoader_WriteOverwrite(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "ignore_debian: false\n")
	loader := appconfig.New()

	_, err := loader.Write(dir, domain.ProjectConfig{IgnoreDebian: true}, true)
	require.NoError(t, err)

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.True(t, cfg.IgnoreDebian)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary files should be left behind")
}

func TestYAMLLoader_FailedOverwriteKeepsExistingFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	dir := t.TempDir()
	writeConfig(t, dir, "ignore_debian: true\n")
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	_, err := appconfig.New().Write(dir, domain.DefaultConfig(), true)
	require.Error(t, err)

	data, err := os.ReadFile(filepath.Join(dir, appconfig.FileName))
	require.NoError(t, err)
	assert.Equal(t, "ignore_debian: true\n", string(data))
}
