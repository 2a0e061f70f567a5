package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	// Test default values
	assert.Equal(t, "json", cfg.InputFormat)
	assert.Equal(t, "", cfg.Output.Indent)
	assert.True(t, cfg.Output.TrailingNewline)
	assert.False(t, cfg.Transform.SortArrays)
	assert.Equal(t, "", cfg.Transform.KeyCase)
	assert.Empty(t, cfg.Transform.DropKeys)
	assert.False(t, cfg.Dev.Debug)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromYAML(t *testing.T) {
	yamlContent := `
input_format: yaml
output:
  indent: "  "
  trailing_newline: false
transform:
  sort_arrays: true
  key_case: snake
  key_mappings:
    "userID": "user_id"
  drop_keys:
    - pattern: "^_"
      comment: "internal bookkeeping"
dev:
  debug: true
`

	cfg, err := LoadConfig(writeConfig(t, yamlContent))
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.InputFormat)
	assert.Equal(t, "  ", cfg.Output.Indent)
	assert.False(t, cfg.Output.TrailingNewline)
	assert.True(t, cfg.Transform.SortArrays)
	assert.Equal(t, "snake", cfg.Transform.KeyCase)
	assert.Equal(t, "user_id", cfg.Transform.KeyMappings["userID"])
	assert.True(t, cfg.Dev.Debug)

	require.Len(t, cfg.Transform.DropKeys, 1)
	pattern := cfg.Transform.DropKeys[0]
	assert.Equal(t, "^_", pattern.Pattern)
	assert.Equal(t, "internal bookkeeping", pattern.Comment)
}

func TestConfig_LoadNonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/config.yml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no such file or directory")
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	invalidYAML := `
input_format: json
invalid_yaml: [unclosed array
`

	_, err := LoadConfig(writeConfig(t, invalidYAML))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_LoadInvalidValues(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"bad format", "input_format: toml\n", "invalid input_format"},
		{"bad key case", "transform:\n  key_case: title\n", "invalid key_case"},
		{"bad pattern", "transform:\n  drop_keys:\n    - pattern: \"[oops\"\n", "invalid drop_keys pattern"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestConfig_FindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	// Create nested directory
	nestedDir := filepath.Join(tmpDir, "project", "subdir")
	require.NoError(t, os.MkdirAll(nestedDir, 0o755))

	// Create config file in project root
	configPath := filepath.Join(tmpDir, "project", ".jsonv.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(`input_format: "yaml"`), 0o644))

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()

	require.NoError(t, os.Chdir(nestedDir))

	// Find config file - should find it in parent directory
	foundPath := FindConfigFile()
	require.NotEmpty(t, foundPath, "Should find config file")

	foundContent, err := os.ReadFile(foundPath)
	require.NoError(t, err)
	assert.Contains(t, string(foundContent), `input_format: "yaml"`)
}

func TestConfig_FindConfigFileNotFound(t *testing.T) {
	tmpDir := t.TempDir()

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()

	require.NoError(t, os.Chdir(tmpDir))

	assert.Empty(t, FindConfigFile())
}

func TestKeyPattern_MatchesKey(t *testing.T) {
	pattern := KeyPattern{Pattern: "^_|_internal$"}

	assert.True(t, pattern.MatchesKey("_rev"))
	assert.True(t, pattern.MatchesKey("cache_internal"))
	assert.False(t, pattern.MatchesKey("name"))
	assert.False(t, pattern.MatchesKey("internal_id"))
}

func TestKeyPattern_InvalidPattern(t *testing.T) {
	pattern := KeyPattern{Pattern: "[invalid regex"}

	// Should not panic and should return false for invalid regex
	assert.False(t, pattern.MatchesKey("anything"))
}

func TestConfig_TransformOptions(t *testing.T) {
	cfg := NewConfig()
	opts := cfg.TransformOptions()
	assert.Nil(t, opts.Drop)

	cfg.Transform.KeyCase = "kebab"
	cfg.Transform.SortArrays = true
	cfg.Transform.DropKeys = []KeyPattern{{Pattern: "^tmp"}}

	opts = cfg.TransformOptions()
	assert.Equal(t, "kebab", opts.KeyCase)
	assert.True(t, opts.SortArrays)
	require.NotNil(t, opts.Drop)
	assert.True(t, opts.Drop("tmpValue"))
	assert.False(t, opts.Drop("value"))
}

func TestConfig_MergeWithCLI(t *testing.T) {
	baseConfig := NewConfig()
	baseConfig.Output.Indent = "\t"
	baseConfig.Transform.KeyCase = "snake"

	merged := MergeConfigs(baseConfig, Overrides{
		InputFormat: "yaml",
		KeyCase:     "camel",
		SortArrays:  true,
	})

	assert.Equal(t, "yaml", merged.InputFormat)            // Overridden by CLI
	assert.Equal(t, "\t", merged.Output.Indent)            // Kept from base (CLI was empty)
	assert.Equal(t, "camel", merged.Transform.KeyCase)     // Overridden by CLI
	assert.True(t, merged.Transform.SortArrays)            // Switched on by CLI
	assert.False(t, merged.Dev.Debug)                      // Left alone
	assert.Equal(t, "snake", baseConfig.Transform.KeyCase) // Base is not modified
}

func TestLoadConfigWithPrecedence(t *testing.T) {
	configYAML := `
input_format: json
output:
  indent: "    "
transform:
  key_case: kebab
`

	cfg, err := LoadConfigWithCLI(writeConfig(t, configYAML), Overrides{Indent: "  ", Debug: true})
	require.NoError(t, err)

	// Verify precedence: CLI > config file > defaults
	assert.Equal(t, "  ", cfg.Output.Indent)        // From CLI
	assert.True(t, cfg.Dev.Debug)                   // From CLI
	assert.Equal(t, "kebab", cfg.Transform.KeyCase) // From config file
	assert.True(t, cfg.Output.TrailingNewline)      // Default value
}

func TestLoadConfigWithPrecedence_NoConfigFile(t *testing.T) {
	cfg, err := LoadConfigWithCLI("", Overrides{})
	require.NoError(t, err)
	assert.Equal(t, NewConfig(), cfg)

	_, err = LoadConfigWithCLI("", Overrides{KeyCase: "upside_down"})
	assert.Error(t, err)
}
