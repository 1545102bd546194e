package plugin

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"ewbf/internal/fsutil"
	"ewbf/internal/launch"
	"ewbf/internal/options"
)

const (
	optionsFile     = "miner_options.yaml"
	environmentFile = "environment.yaml"
	systemEnvFile   = "system.env"
)

// InitInternals loads setting overrides from the internals directory.
// A present file replaces the built-in settings as a whole; a missing one is
// written with the current settings so operators have a template to edit.
// On a broken file the built-in settings stay active and the error is returned.
func (p *Plugin) InitInternals() error {
	dir := p.InternalsPath()
	if err := fsutil.EnsureDirectory(dir); err != nil {
		return fmt.Errorf("failed to create internals directory: %w", err)
	}

	var errs []error

	pkg, err := p.loadOptions(filepath.Join(dir, optionsFile))
	if err != nil {
		errs = append(errs, err)
	} else {
		p.options = pkg
	}

	env, err := p.loadEnvironment(filepath.Join(dir, environmentFile))
	if err != nil {
		errs = append(errs, err)
	} else {
		p.env = env
	}

	if err := p.applySystemEnv(filepath.Join(dir, systemEnvFile)); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		p.logger.Warn("plugin.internals.failed", "Falling back to built-in settings", map[string]interface{}{
			"path":  dir,
			"error": err.Error(),
		})
		return err
	}

	p.logger.Info("plugin.internals.loaded", "Plugin settings loaded", map[string]interface{}{
		"path":    dir,
		"options": len(p.options.All()),
	})
	return nil
}

func (p *Plugin) loadOptions(path string) (options.Package, error) {
	data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 -- path is under the plugin root
	if os.IsNotExist(err) {
		return p.options, p.writeDefaults(path, p.options)
	}
	if err != nil {
		return options.Package{}, fmt.Errorf("failed to read %s: %w", optionsFile, err)
	}

	var pkg options.Package
	if err := yaml.Unmarshal(data, &pkg); err != nil {
		return options.Package{}, fmt.Errorf("failed to parse %s: %w", optionsFile, err)
	}
	if err := pkg.Validate(); err != nil {
		return options.Package{}, fmt.Errorf("invalid %s: %w", optionsFile, err)
	}
	return pkg, nil
}

func (p *Plugin) loadEnvironment(path string) (launch.Environment, error) {
	data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 -- path is under the plugin root
	if os.IsNotExist(err) {
		return p.env, p.writeDefaults(path, p.env)
	}
	if err != nil {
		return launch.Environment{}, fmt.Errorf("failed to read %s: %w", environmentFile, err)
	}

	var env launch.Environment
	if err := yaml.Unmarshal(data, &env); err != nil {
		return launch.Environment{}, fmt.Errorf("failed to parse %s: %w", environmentFile, err)
	}
	if env.Default == nil {
		env.Default = map[string]string{}
	}
	return env, nil
}

// applySystemEnv merges a dotenv file into the default environment variables.
// The file is optional and never generated.
func (p *Plugin) applySystemEnv(path string) error {
	if !fsutil.FileExists(path) {
		return nil
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", systemEnvFile, err)
	}

	merged := make(map[string]string, len(p.env.Default)+len(vars))
	for k, v := range p.env.Default {
		merged[k] = v
	}
	for k, v := range vars {
		merged[k] = v
	}
	p.env.Default = merged
	return nil
}

func (p *Plugin) writeDefaults(path string, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := fsutil.AtomicWriteFile(path, data, fsutil.DefaultFilePermissions, p.logger); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	p.logger.Info("plugin.internals.written", "Wrote default settings file", map[string]interface{}{
		"path": path,
	})
	return nil
}
