package domain

import (
	"fmt"
	"strings"
)

// ValidLogLevels enumerates the accepted log_level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ProjectConfig holds project-level configuration loaded from .licensekit.yaml.
type ProjectConfig struct {
	IgnoreDebian      bool     `yaml:"ignore_debian"       json:"ignore_debian"`
	IncludeVCSIgnored bool     `yaml:"include_vcs_ignored" json:"include_vcs_ignored"`
	ExcludePaths      []string `yaml:"exclude_paths"       json:"exclude_paths,omitempty"`
	LogLevel          string   `yaml:"log_level,omitempty" json:"log_level,omitempty"`
}

// DefaultConfig returns the zero-value config: DEP5 fallback on, VCS ignores honored.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{}
}

// DebianFallback maps ignore_debian onto the extractor toggle.
func (c ProjectConfig) DebianFallback() DebianFallback {
	if c.IgnoreDebian {
		return DebianFallbackOff
	}
	return DebianFallbackOn
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if c.LogLevel != "" && !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("unknown log_level %q (valid: %s)", c.LogLevel, strings.Join(ValidLogLevels, ", "))
	}

	for i, p := range c.ExcludePaths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("exclude_paths[%d] must not be empty", i)
		}
		if strings.HasPrefix(p, "/") || strings.Contains(p, "..") {
			return fmt.Errorf("exclude_paths[%d] = %q must be relative to the project root", i, p)
		}
	}

	return nil
}

func isValidLogLevel(level string) bool {
	for _, l := range ValidLogLevels {
		if l == level {
			return true
		}
	}
	return false
}
