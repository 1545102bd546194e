package configdir

import (
	"os"
	"path/filepath"
)

const (
	defaultConfigDir  = "/etc/ewbf"
	defaultPluginsDir = "/var/lib/ewbf/miner_plugins"
)

// ConfigDir resolves the configuration directory respecting EWBF_CONFIG_DIR
func ConfigDir() string {
	return fromEnv("EWBF_CONFIG_DIR", defaultConfigDir)
}

// PluginsDir resolves the root under which each plugin keeps <uuid>/bins and <uuid>/internals
func PluginsDir() string {
	return fromEnv("EWBF_PLUGINS_DIR", defaultPluginsDir)
}

func fromEnv(key, fallback string) string {
	if env := os.Getenv(key); env != "" {
		if abs, err := filepath.Abs(env); err == nil {
			return abs
		}
		return env
	}
	return fallback
}
