// Package config provides layered settings for c2rust-init using koanf.
// Settings are loaded with priority: environment variables (C2RUST_INIT_*)
// > user config (~/.config/c2rust-init/config.yml) > defaults. A config.json in
// the same directory is read when no YAML file exists.
//
// The project template seeded into .c2rust/config.toml also lives here; its
// contents are never parsed by the init procedure.
package config

import (
	"fmt"
	"strings"

	"github.com/c2rust/c2rust-init/internal/git"
	"github.com/c2rust/c2rust-init/internal/workspace"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "C2RUST_INIT_"

// Settings represents the c2rust-init tool configuration
type Settings struct {
	// InitializeRepository runs `git init` inside .c2rust.
	InitializeRepository bool `koanf:"initialize_repository"`
	// SeedConfig writes .c2rust/config.toml when absent.
	SeedConfig bool `koanf:"seed_config"`
	// ExportEnvironment prints shell commands for C2RUST_PROJECT_ROOT.
	ExportEnvironment bool `koanf:"export_environment"`
	// ExistingDirPolicy is "strict" (fail if .c2rust exists) or "idempotent".
	ExistingDirPolicy string `koanf:"existing_dir_policy" validate:"required,oneof=idempotent strict"`

	GitUserName  string `koanf:"git_user_name"`
	GitUserEmail string `koanf:"git_user_email" validate:"omitempty,email"`

	Debug bool `koanf:"debug"`
}

// LoadOptions configures how settings are loaded
type LoadOptions struct {
	// ConfigDir overrides the user config directory (default: os.UserConfigDir()/c2rust-init).
	ConfigDir string
	// SkipUserConfig ignores user config files entirely.
	SkipUserConfig bool
}

// Load loads settings from the default locations.
func Load() (*Settings, error) {
	return LoadWithOptions(LoadOptions{})
}

// LoadWithOptions loads settings with custom options
func LoadWithOptions(opts LoadOptions) (*Settings, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k, opts.ConfigDir); err != nil {
			return nil, err
		}
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeSettings(k)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads config.yml, or config.json when no YAML file exists.
func loadUserConfig(k *koanf.Koanf, dir string) error {
	if dir == "" {
		var err error
		dir, err = UserConfigDir()
		if err != nil {
			// No resolvable home; defaults and env still apply.
			return nil
		}
	}

	yamlPath := UserConfigPathIn(dir)
	jsonPath := UserJSONConfigPathIn(dir)

	switch {
	case fileExists(yamlPath):
		if err := ValidateYAMLSyntax(yamlPath); err != nil {
			return fmt.Errorf("validating YAML syntax for user config: %w", err)
		}
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading user config %s: %w", yamlPath, err)
		}
	case fileExists(jsonPath):
		if err := k.Load(file.Provider(jsonPath), json.Parser()); err != nil {
			return fmt.Errorf("loading user config %s: %w", jsonPath, err)
		}
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeSettings unmarshals and validates
func finalizeSettings(k *koanf.Koanf) (*Settings, error) {
	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	s.ExistingDirPolicy = strings.ToLower(strings.TrimSpace(s.ExistingDirPolicy))
	if err := ValidateSettings(&s, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &s, nil
}

// envTransform converts environment variable names to config keys
// Example: C2RUST_INIT_SEED_CONFIG -> seed_config
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// WorkspaceOptions converts settings into options for workspace.Initialize,
// including the project template.
func (s *Settings) WorkspaceOptions() workspace.Options {
	return workspace.Options{
		InitializeRepository: s.InitializeRepository,
		SeedConfig:           s.SeedConfig,
		ExportEnvironment:    s.ExportEnvironment,
		ExistingDirPolicy:    workspace.ExistingDirPolicy(s.ExistingDirPolicy),
		Identity: git.Identity{
			Name:  s.GitUserName,
			Email: s.GitUserEmail,
		},
		Template: DefaultProjectTemplate(),
	}
}
