// Package config loads reportgen configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KosukeOnishi/reportgen/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits. Config files travel between machines; bounding the
// fields keeps a corrupted file from ballooning generated documents.
const (
	MaxTitleLength    = 200 // report title
	MaxAuthorLength   = 100 // author name
	MaxDateLength     = 30  // "2025-12-31" or "auto:MMMM D, YYYY"
	MaxStyleLength    = 100 // style name or path
	MaxTOCTitleLength = 100 // TOC heading
	MaxDirLength      = 512 // directory paths
)

// Config holds all configuration for report generation.
type Config struct {
	Report ReportConfig `yaml:"report"`
	TOC    TOCConfig    `yaml:"toc"`
	Style  StyleConfig  `yaml:"style"`
	Output OutputConfig `yaml:"output"`
}

// ReportConfig defines report metadata defaults.
type ReportConfig struct {
	Author string `yaml:"author"` // default author name
	Date   string `yaml:"date"`   // literal date or "auto" syntax
}

// TOCConfig defines table-of-contents options.
type TOCConfig struct {
	Disabled bool   `yaml:"disabled"`
	Title    string `yaml:"title"` // TOC heading (default 目次)
}

// StyleConfig defines stylesheet options.
type StyleConfig struct {
	Name      string `yaml:"name"`      // embedded style name (default "report")
	AssetPath string `yaml:"assetPath"` // directory overriding embedded styles
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // default output directory
	HTMLOnly   bool   `yaml:"htmlOnly"`   // skip PDF rendering
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{
		Report: ReportConfig{Date: "auto"},
	}
}

// Validate checks field lengths.
func (c *Config) Validate() error {
	checks := []struct {
		name  string
		value string
		max   int
	}{
		{"report.author", c.Report.Author, MaxAuthorLength},
		{"report.date", c.Report.Date, MaxDateLength},
		{"toc.title", c.TOC.Title, MaxTOCTitleLength},
		{"style.name", c.Style.Name, MaxStyleLength},
		{"style.assetPath", c.Style.AssetPath, MaxDirLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxDirLength},
	}
	for _, check := range checks {
		if err := validateFieldLength(check.name, check.value, check.max); err != nil {
			return err
		}
	}
	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d > %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads a config by name or path. Names resolve via the
// standard search locations; paths load directly.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard
// locations. Extensions tried in order: .yaml, .yml. Locations tried in
// order: current directory, then ~/.config/reportgen/.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "reportgen", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
