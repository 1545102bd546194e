package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Validate checks if the configuration is valid
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validatePaths()...)
	errors = append(errors, c.validatePluginUUID()...)
	errors = append(errors, c.validatePool()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validatePaths() []ValidationError {
	var errors []ValidationError

	if c.PluginsPath == "" {
		errors = append(errors, ValidationError{
			Path:    "plugins_path",
			Message: "must not be empty",
		})
	} else if !filepath.IsAbs(c.PluginsPath) {
		errors = append(errors, ValidationError{
			Path:    "plugins_path",
			Message: fmt.Sprintf("must be an absolute path, got '%s'", c.PluginsPath),
		})
	}

	if c.ReportPath != "" && !filepath.IsAbs(c.ReportPath) {
		errors = append(errors, ValidationError{
			Path:    "report_path",
			Message: fmt.Sprintf("must be an absolute path, got '%s'", c.ReportPath),
		})
	}

	return errors
}

func (c *Config) validatePluginUUID() []ValidationError {
	if isValidUUIDFormat(c.PluginUUID) {
		return nil
	}

	return []ValidationError{{
		Path:    "plugin_uuid",
		Message: fmt.Sprintf("invalid UUID format: '%s'", c.PluginUUID),
	}}
}

func (c *Config) validatePool() []ValidationError {
	var errors []ValidationError

	if c.Pool.Port < 0 || c.Pool.Port > 65535 {
		errors = append(errors, ValidationError{
			Path:    "pool.port",
			Message: fmt.Sprintf("must be between 0 and 65535, got %d", c.Pool.Port),
		})
	}

	if c.Pool.APIPort < 0 || c.Pool.APIPort > 65535 {
		errors = append(errors, ValidationError{
			Path:    "pool.api_port",
			Message: fmt.Sprintf("must be between 0 and 65535, got %d", c.Pool.APIPort),
		})
	}

	if c.Pool.Host != "" && c.Pool.Port == 0 {
		errors = append(errors, ValidationError{
			Path:    "pool.port",
			Message: "must be set when pool.host is set",
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	validLevels := []string{"debug", "info", "warn", "error"}
	if contains(validLevels, c.Logging.Level) {
		return nil
	}

	return []ValidationError{{
		Path:    "logging.level",
		Message: fmt.Sprintf("must be one of %v, got '%s'", validLevels, c.Logging.Level),
	}}
}

// contains checks if a string is in a slice
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// isValidUUIDFormat checks for the canonical 8-4-4-4-12 hex layout
func isValidUUIDFormat(s string) bool {
	parts := strings.Split(s, "-")
	if len(parts) != 5 {
		return false
	}
	lengths := []int{8, 4, 4, 4, 12}
	for i, part := range parts {
		if len(part) != lengths[i] {
			return false
		}
		for _, c := range part {
			if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
				return false
			}
		}
	}
	return true
}
