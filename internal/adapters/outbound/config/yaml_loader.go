package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openkraft/licensekit/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the project-level configuration file read from the project root.
const FileName = ".licensekit.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .licensekit.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .licensekit.yaml from projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	cfg := domain.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}

	return cfg, nil
}

// Write stores cfg as .licensekit.yaml under projectPath. An existing file is
// only replaced when overwrite is set, and is left untouched if writing fails.
func (l *YAMLLoader) Write(projectPath string, cfg domain.ProjectConfig, overwrite bool) (string, error) {
	path := filepath.Join(projectPath, FileName)
	if _, err := os.Stat(path); err == nil && !overwrite {
		return "", fmt.Errorf("%s already exists", FileName)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", FileName, err)
	}

	tmp, err := os.CreateTemp(projectPath, FileName+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("writing %s: %w", FileName, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing %s: %w", FileName, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing %s: %w", FileName, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("writing %s: %w", FileName, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("writing %s: %w", FileName, err)
	}
	return path, nil
}
