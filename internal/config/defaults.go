package config

import (
	"ewbf/internal/configdir"
	"ewbf/internal/launch"
	"ewbf/internal/plugin"
)

// DefaultPluginUUID identifies the EWBF plugin
const DefaultPluginUUID = plugin.UUID

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		PluginsPath: configdir.PluginsDir(),
		PluginUUID:  DefaultPluginUUID,
		ReportPath:  "/tmp/ewbf_gpu_report.json",
		Pool: launch.Pool{
			APIPort: 42000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
