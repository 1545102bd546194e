// Package plugin wires the EWBF worker's capability rules, option catalogue and
// binary package checks behind one descriptor.
package plugin

import (
	"fmt"
	"path/filepath"

	"ewbf/internal/algorithm"
	"ewbf/internal/binpkg"
	"ewbf/internal/capability"
	"ewbf/internal/device"
	"ewbf/internal/launch"
	"ewbf/internal/logging"
	"ewbf/internal/options"
	"ewbf/internal/version"
)

const (
	// UUID is the default plugin identity
	UUID = "3e627d60-4bfa-11e9-a481-e144ccd86993"
	// Name is the display name of the plugin
	Name = "Ewbf"
	// Author is the plugin maintainer contact
	Author = "stanko@nicehash.com"

	binsDir      = "bins"
	internalsDir = "internals"
	binaryName   = "miner.exe"
)

// Version is the plugin release
var Version = version.New(1, 1)

// Plugin is the EWBF plugin bound to one install root (<pluginsPath>/<uuid>).
// Settings are loaded once by InitInternals and only read afterwards.
type Plugin struct {
	uuid     string
	root     string
	options  options.Package
	env      launch.Environment
	resolver *capability.Resolver
	logger   *logging.Logger
}

// New creates a plugin rooted at <pluginsPath>/<uuid> with built-in settings.
// An empty uuid selects UUID.
func New(pluginsPath, uuid string, logger *logging.Logger) *Plugin {
	if uuid == "" {
		uuid = UUID
	}
	return &Plugin{
		uuid:     uuid,
		root:     filepath.Join(pluginsPath, uuid),
		options:  options.DefaultPackage(),
		env:      launch.DefaultEnvironment(),
		resolver: capability.NewResolver(uuid, logger),
		logger:   logger,
	}
}

// PluginUUID returns the identity this instance was created with
func (p *Plugin) PluginUUID() string {
	return p.uuid
}

// Root returns the plugin install root
func (p *Plugin) Root() string {
	return p.root
}

// BinsPath returns the directory holding the worker binary package
func (p *Plugin) BinsPath() string {
	return filepath.Join(p.root, binsDir)
}

// InternalsPath returns the directory holding settings overrides
func (p *Plugin) InternalsPath() string {
	return filepath.Join(p.root, internalsDir)
}

// BinaryPath returns the worker executable path
func (p *Plugin) BinaryPath() string {
	return filepath.Join(p.BinsPath(), binaryName)
}

// Options returns a copy of the active option catalogue
func (p *Plugin) Options() options.Package {
	return p.options.Clone()
}

// Environment returns the active environment settings
func (p *Plugin) Environment() launch.Environment {
	return p.env
}

// GetSupportedAlgorithms resolves the algorithms each device can run given the
// installed NVIDIA driver version.
func (p *Plugin) GetSupportedAlgorithms(installedDriver string, devices []device.Device) capability.Supported {
	return p.resolver.Resolve(installedDriver, devices)
}

// CanGroup reports whether two mining assignments may share one worker process
func (p *Plugin) CanGroup(a, b algorithm.Algorithm) bool {
	return algorithm.CanGroup(a, b)
}

// CreateCommand assembles the worker command line: pool connection, device
// selection, then the catalogue options bound from extraParams.
func (p *Plugin) CreateCommand(algo algorithm.Algorithm, devices []device.Device, pool launch.Pool, extraParams string) (launch.Command, error) {
	values, err := launch.ParseExtraLaunchParameters(p.options, extraParams)
	if err != nil {
		return launch.Command{}, err
	}
	return p.CreateCommandWithValues(algo, devices, pool, values), nil
}

// CreateCommandWithValues is CreateCommand with option bindings already resolved
func (p *Plugin) CreateCommandWithValues(algo algorithm.Algorithm, devices []device.Device, pool launch.Pool, values launch.Values) launch.Command {
	args := launch.PoolArguments(pool)
	args = append(args, launch.DeviceArguments(devices)...)
	args = append(args, launch.Build(p.options, values)...)

	env := p.env.For(algo.Type)
	if len(devices) > 0 {
		env = p.env.ForDevices(algo.Type)
	}
	cmd := launch.NewCommand(p.BinaryPath(), p.BinsPath(), args, env)

	p.logger.Debug("plugin.command.created", "Worker command assembled", map[string]interface{}{
		"algorithm": algo.ID(),
		"devices":   len(devices),
		"args":      len(cmd.Args),
	})

	return cmd
}

// CheckBinaryPackageMissingFiles lists required worker files absent from the bins directory
func (p *Plugin) CheckBinaryPackageMissingFiles() []string {
	return binpkg.Missing(p.BinsPath(), binpkg.RequiredFiles)
}

// VerifyBinaryPackage checks the bins directory against a digest manifest
func (p *Plugin) VerifyBinaryPackage(manifest binpkg.Manifest) ([]binpkg.Mismatch, error) {
	mismatches, err := binpkg.VerifyDigests(p.BinsPath(), manifest)
	if err != nil {
		return mismatches, fmt.Errorf("failed to verify binary package: %w", err)
	}
	return mismatches, nil
}
