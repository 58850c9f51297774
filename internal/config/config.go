package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/samber/lo"
)

const defaultSupportPackage = "github.com/samber/lo"

var defaultExtensions = StringList{".gox"}

type Config struct {
	FilePath string `yaml:"-"`

	// Extensions of source files to expand.
	Extensions StringList `yaml:"extensions"`

	// SupportPackage provides the helpers referenced by expanded code.
	SupportPackage string `yaml:"support_package"`

	// TemplateDirs override the built-in construct templates.
	TemplateDirs StringList `yaml:"template_dirs"`
}

func ConfigFilePath(homeDir string) string {
	return filepath.Join(homeDir, ".flowx", "config.yaml")
}

func Default(homeDir string) *Config {
	cfg := &Config{
		FilePath:       ConfigFilePath(homeDir),
		Extensions:     defaultExtensions,
		SupportPackage: defaultSupportPackage,
	}

	applyEnvOverrides(cfg)

	return cfg
}

func Load(homeDir string) (*Config, error) {
	path := ConfigFilePath(homeDir)

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return Default(homeDir), nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open config file: %s", err)
	}
	defer file.Close()

	var cfg Config
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config from YAML: %s", err)
	}

	if len(cfg.Extensions) == 0 {
		cfg.Extensions = defaultExtensions
	}
	if cfg.SupportPackage == "" {
		cfg.SupportPackage = defaultSupportPackage
	}

	cfg.Extensions = NormalizeExtensions(cfg.Extensions)

	applyEnvOverrides(&cfg)

	cfg.FilePath = path

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if extensions := os.Getenv("FLOWX_EXTENSIONS"); extensions != "" {
		cfg.Extensions = NormalizeExtensions(strings.Split(extensions, ","))
	}
	if supportPackage := os.Getenv("FLOWX_SUPPORT_PACKAGE"); supportPackage != "" {
		cfg.SupportPackage = supportPackage
	}
}

// NormalizeExtensions lowercases extensions and adds the leading dot.
func NormalizeExtensions(extensions []string) StringList {
	extensions = lo.FilterMap(extensions, func(ext string, _ int) (string, bool) {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			return "", false
		}

		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		return ext, true
	})

	return lo.Uniq(extensions)
}
