package domain_test

import (
	"testing"

	"github.com/openkraft/licensekit/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_ChangesNothing(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.False(t, cfg.IgnoreDebian)
	assert.False(t, cfg.IncludeVCSIgnored)
	assert.Empty(t, cfg.ExcludePaths)
	assert.Empty(t, cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestProjectConfig_DebianFallback(t *testing.T) {
	assert.Equal(t, domain.DebianFallbackOn, domain.DefaultConfig().DebianFallback())

	cfg := domain.ProjectConfig{IgnoreDebian: true}
	assert.Equal(t, domain.DebianFallbackOff, cfg.DebianFallback())
}

func TestValidate_UnknownLogLevel(t *testing.T) {
	cfg := domain.ProjectConfig{LogLevel: "verbose"}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "verbose")
}

func TestValidate_KnownLogLevels(t *testing.T) {
	for _, level := range domain.ValidLogLevels {
		cfg := domain.ProjectConfig{LogLevel: level}
		assert.NoError(t, cfg.Validate(), "level %s", level)
	}
}

func TestValidate_ExcludePaths(t *testing.T) {
	tests := []struct {
		name    string
		paths   []string
		wantErr bool
	}{
		{"relative", []string{"vendor", "build/"}, false},
		{"empty entry", []string{""}, true},
		{"absolute", []string{"/etc"}, true},
		{"escapes root", []string{"../other"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.ProjectConfig{ExcludePaths: tt.paths}
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}
