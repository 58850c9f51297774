package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, homeDir string, content string) {
	t.Helper()

	path := ConfigFilePath(homeDir)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		homeDir := t.TempDir()

		cfg, err := Load(homeDir)
		require.NoError(t, err)

		assert.Equal(t, &Config{
			FilePath:       filepath.Join(homeDir, ".flowx", "config.yaml"),
			Extensions:     StringList{".gox"},
			SupportPackage: "github.com/samber/lo",
		}, cfg)
	})

	t.Run("File", func(t *testing.T) {
		homeDir := t.TempDir()

		writeConfig(t, homeDir, `
extensions:
  - GOX
  - .flowx
  - .gox
support_package: example.com/tuple
template_dirs: templates
`)

		cfg, err := Load(homeDir)
		require.NoError(t, err)

		assert.Equal(t, StringList{".gox", ".flowx"}, cfg.Extensions)
		assert.Equal(t, "example.com/tuple", cfg.SupportPackage)
		assert.Equal(t, StringList{"templates"}, cfg.TemplateDirs)
		assert.Equal(t, ConfigFilePath(homeDir), cfg.FilePath)
	})

	t.Run("Defaults", func(t *testing.T) {
		homeDir := t.TempDir()

		writeConfig(t, homeDir, "template_dirs: [a, b]\n")

		cfg, err := Load(homeDir)
		require.NoError(t, err)

		assert.Equal(t, StringList{".gox"}, cfg.Extensions)
		assert.Equal(t, "github.com/samber/lo", cfg.SupportPackage)
		assert.Equal(t, StringList{"a", "b"}, cfg.TemplateDirs)
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		homeDir := t.TempDir()

		writeConfig(t, homeDir, "support_package: example.com/tuple\n")

		t.Setenv("FLOWX_EXTENSIONS", "gox, .go2")
		t.Setenv("FLOWX_SUPPORT_PACKAGE", "example.com/other")

		cfg, err := Load(homeDir)
		require.NoError(t, err)

		assert.Equal(t, StringList{".gox", ".go2"}, cfg.Extensions)
		assert.Equal(t, "example.com/other", cfg.SupportPackage)
	})

	t.Run("Invalid", func(t *testing.T) {
		homeDir := t.TempDir()

		writeConfig(t, homeDir, "extensions: {a: b}\n")

		_, err := Load(homeDir)
		assert.ErrorContains(t, err, "unable to decode config from YAML")
	})
}

func TestStringList(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected StringList
	}{
		{
			name:     "single",
			input:    "value: one",
			expected: StringList{"one"},
		},
		{
			name:     "comma separated",
			input:    "value: one, two",
			expected: StringList{"one", "two"},
		},
		{
			name:     "sequence",
			input:    "value:\n  - one\n  - two",
			expected: StringList{"one", "two"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var actual struct {
				Value StringList `yaml:"value"`
			}

			err := yaml.Unmarshal([]byte(testCase.input), &actual)
			require.NoError(t, err)

			assert.Equal(t, testCase.expected, actual.Value)
		})
	}

	t.Run("non-string element", func(t *testing.T) {
		var actual struct {
			Value StringList `yaml:"value"`
		}

		err := yaml.Unmarshal([]byte("value:\n  - one\n  - 2"), &actual)
		assert.Error(t, err)
	})
}
