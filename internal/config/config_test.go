// Package config tests settings loading, validation and the project template.
// Related: internal/config/config.go, internal/config/template.go
// Tags: config, koanf, yaml, toml, validation

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/c2rust/c2rust-init/internal/workspace"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := LoadWithOptions(LoadOptions{ConfigDir: t.TempDir()})
	require.NoError(t, err)

	assert.True(t, s.InitializeRepository)
	assert.True(t, s.SeedConfig)
	assert.True(t, s.ExportEnvironment)
	assert.Equal(t, "strict", s.ExistingDirPolicy)
	assert.Equal(t, "c2rust", s.GitUserName)
	assert.Equal(t, "c2rust@localhost.localdomain", s.GitUserEmail)
	assert.False(t, s.Debug)
}

func TestLoad_Sources(t *testing.T) {
	tests := map[string]struct {
		files    map[string]string
		env      map[string]string
		validate func(t *testing.T, s *Settings)
	}{
		"yaml user config": {
			files: map[string]string{
				"config.yml": "existing_dir_policy: idempotent\nseed_config: false\n",
			},
			validate: func(t *testing.T, s *Settings) {
				assert.Equal(t, "idempotent", s.ExistingDirPolicy)
				assert.False(t, s.SeedConfig)
				assert.True(t, s.InitializeRepository)
			},
		},
		"json used when no yaml": {
			files: map[string]string{
				"config.json": `{"initialize_repository": false, "git_user_name": "bot"}`,
			},
			validate: func(t *testing.T, s *Settings) {
				assert.False(t, s.InitializeRepository)
				assert.Equal(t, "bot", s.GitUserName)
			},
		},
		"yaml preferred over json": {
			files: map[string]string{
				"config.yml":  "git_user_name: from-yaml\n",
				"config.json": `{"git_user_name": "from-json"}`,
			},
			validate: func(t *testing.T, s *Settings) {
				assert.Equal(t, "from-yaml", s.GitUserName)
			},
		},
		"env overrides file": {
			files: map[string]string{
				"config.yml": "existing_dir_policy: strict\n",
			},
			env: map[string]string{
				"C2RUST_INIT_EXISTING_DIR_POLICY": "idempotent",
				"C2RUST_INIT_EXPORT_ENVIRONMENT":  "false",
				"C2RUST_INIT_DEBUG":               "true",
			},
			validate: func(t *testing.T, s *Settings) {
				assert.Equal(t, "idempotent", s.ExistingDirPolicy)
				assert.False(t, s.ExportEnvironment)
				assert.True(t, s.Debug)
			},
		},
		"policy is normalized": {
			env: map[string]string{"C2RUST_INIT_EXISTING_DIR_POLICY": " Idempotent "},
			validate: func(t *testing.T, s *Settings) {
				assert.Equal(t, "idempotent", s.ExistingDirPolicy)
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			for file, content := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644))
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			s, err := LoadWithOptions(LoadOptions{ConfigDir: dir})
			require.NoError(t, err)
			tt.validate(t, s)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]struct {
		yaml        string
		env         map[string]string
		errContains string
	}{
		"invalid yaml syntax": {
			yaml:        "seed_config: [unclosed\n",
			errContains: "validating YAML syntax",
		},
		"unknown policy": {
			yaml:        "existing_dir_policy: sometimes\n",
			errContains: "existing_dir_policy",
		},
		"invalid email from env": {
			env:         map[string]string{"C2RUST_INIT_GIT_USER_EMAIL": "not-an-email"},
			errContains: "git_user_email",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.yaml != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(tt.yaml), 0o644))
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithOptions(LoadOptions{ConfigDir: dir})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestLoad_SkipUserConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("seed_config: false\n"), 0o644))

	s, err := LoadWithOptions(LoadOptions{ConfigDir: dir, SkipUserConfig: true})
	require.NoError(t, err)
	assert.True(t, s.SeedConfig)
}

func TestSettings_WorkspaceOptions(t *testing.T) {
	t.Parallel()

	s := &Settings{
		InitializeRepository: true,
		SeedConfig:           true,
		ExistingDirPolicy:    "idempotent",
		GitUserName:          "c2rust",
		GitUserEmail:         "c2rust@localhost.localdomain",
	}
	opts := s.WorkspaceOptions()

	assert.True(t, opts.InitializeRepository)
	assert.True(t, opts.SeedConfig)
	assert.False(t, opts.ExportEnvironment)
	assert.Equal(t, workspace.PolicyIdempotent, opts.ExistingDirPolicy)
	assert.Equal(t, "c2rust", opts.Identity.Name)
	assert.Equal(t, "c2rust@localhost.localdomain", opts.Identity.Email)
	assert.Equal(t, DefaultProjectTemplate(), opts.Template)
}

func TestDefaultProjectTemplate(t *testing.T) {
	t.Parallel()
	tmpl := DefaultProjectTemplate()

	assert.True(t, strings.Contains(tmpl, "[global]"))
	assert.True(t, strings.Contains(tmpl, "[model]"))

	var doc map[string]any
	require.NoError(t, toml.Unmarshal([]byte(tmpl), &doc))
	for _, section := range []string{"global", "model", "feature"} {
		assert.Contains(t, doc, section)
	}

	feature, ok := doc["feature"].(map[string]any)
	require.True(t, ok)
	def, ok := feature["default"].(map[string]any)
	require.True(t, ok)
	for _, action := range []string{"clean", "test", "build"} {
		group, ok := def[action].(map[string]any)
		require.True(t, ok, "feature.default.%s should be a table", action)
		assert.NotEmpty(t, group["dir"])
		assert.NotEmpty(t, group["cmd"])
	}
}

func TestValidateYAMLSyntax(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content  *string
		wantErr  bool
		wantLine bool
	}{
		"missing file":   {content: nil},
		"empty file":     {content: ptr("  \n")},
		"valid":          {content: ptr("debug: true\n")},
		"bad indent":     {content: ptr("a: b\n  c: d\n"), wantErr: true, wantLine: true},
		"unclosed array": {content: ptr("a: [1, 2\n"), wantErr: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "config.yml")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o644))
			}

			err := ValidateYAMLSyntax(path)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, path, vErr.FilePath)
			if tt.wantLine {
				assert.Positive(t, vErr.Line)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "c.yml:3:2: bad", (&ValidationError{FilePath: "c.yml", Line: 3, Column: 2, Message: "bad"}).Error())
	assert.Equal(t, "c.yml: field 'debug': bad", (&ValidationError{FilePath: "c.yml", Field: "debug", Message: "bad"}).Error())
	assert.Equal(t, "c.yml: bad", (&ValidationError{FilePath: "c.yml", Message: "bad"}).Error())
}

func TestToSnakeCase(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "existing_dir_policy", toSnakeCase("ExistingDirPolicy"))
	assert.Equal(t, "git_user_email", toSnakeCase("GitUserEmail"))
}

func ptr(s string) *string { return &s }

func TestGetDefaults_PassValidation(t *testing.T) {
	t.Parallel()

	d := GetDefaults()
	s := &Settings{
		ExistingDirPolicy: d["existing_dir_policy"].(string),
		GitUserName:       d["git_user_name"].(string),
		GitUserEmail:      d["git_user_email"].(string),
	}
	require.NoError(t, ValidateSettings(s, "defaults"))
}

func TestValidateSettings_Email(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		email   string
		wantErr bool
	}{
		"default identity": {email: "c2rust@localhost.localdomain"},
		"empty is skipped": {email: ""},
		"regular address":  {email: "dev@example.com"},
		"missing domain":   {email: "c2rust", wantErr: true},
		"missing user":     {email: "@example.com", wantErr: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := ValidateSettings(&Settings{ExistingDirPolicy: "strict", GitUserEmail: tt.email}, "config")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "git_user_email", vErr.Field)
		})
	}
}

func TestYAMLErrorPosition(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		msg      string
		wantLine int
		wantCol  int
		wantMsg  string
	}{
		"with line": {
			msg:      "yaml: line 2: mapping values are not allowed in this context",
			wantLine: 2,
			wantCol:  1,
			wantMsg:  "mapping values are not allowed in this context",
		},
		"without line": {
			msg:     "yaml: control characters are not allowed",
			wantMsg: "control characters are not allowed",
		},
		"not a yaml message": {
			msg:     "boom",
			wantMsg: "boom",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			line, col := yamlErrorPosition(tt.msg)
			assert.Equal(t, tt.wantLine, line)
			assert.Equal(t, tt.wantCol, col)
			assert.Equal(t, tt.wantMsg, yamlErrorMessage(tt.msg))
		})
	}
}
