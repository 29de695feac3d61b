package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file name looked up in the
// current directory.
const DefaultConfigFile = ".passforge.yaml"

// xdgConfigFile is the configuration file name inside XDGConfigDir.
const xdgConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// LoadConfigFile loads a configuration file.
// A relative strength.referenceList is resolved against the directory
// of path.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers decide whether that is an error based on whether the path
// was given explicitly.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	if ref := cf.Strength.ReferenceList; ref != "" && !filepath.IsAbs(ref) {
		cf.Strength.ReferenceList = filepath.Join(filepath.Dir(path), ref)
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .passforge.yaml in the current directory
// 3. Look for config.yaml in XDGConfigDir
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	xdgConfig := filepath.Join(XDGConfigDir(), xdgConfigFile)
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}

// ApplyFile layers the configuration file onto c. Fields already changed
// from their defaults by flags are not overwritten; flag precedence for
// generator settings is handled by GeneratorConfig.
func (c *Config) ApplyFile(f *File, languageFromFlag, concurrencyFromFlag bool) {
	if f == nil {
		return
	}
	c.File = f
	if f.Language != "" && !languageFromFlag {
		c.Language = f.Language
	}
	if f.Audit.Concurrency != 0 && !concurrencyFromFlag {
		c.Concurrency = f.Audit.Concurrency
	}
}
