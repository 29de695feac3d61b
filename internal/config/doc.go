// Package config provides the runtime configuration of passforge.
// It merges command-line flags with an optional YAML configuration file
// holding generator defaults, estimator tuning and audit settings.
package config
