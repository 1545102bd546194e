package config

import "ewbf/internal/launch"

// Config represents the complete plugin host configuration
type Config struct {
	PluginsPath           string        `yaml:"plugins_path"`
	PluginUUID            string        `yaml:"plugin_uuid"`
	ReportPath            string        `yaml:"report_path"`
	ExtraLaunchParameters string        `yaml:"extra_launch_parameters"`
	Pool                  launch.Pool   `yaml:"pool"`
	Logging               LoggingConfig `yaml:"logging"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	return e.Path + ": " + e.Message
}
