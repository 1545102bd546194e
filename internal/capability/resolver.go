// Package capability maps devices to the algorithms this plugin can run on them.
package capability

import (
	"sort"

	"ewbf/internal/algorithm"
	"ewbf/internal/device"
	"ewbf/internal/logging"
	"ewbf/internal/version"
)

// MinimumDriverVersion is the oldest NVIDIA driver shipping CUDA 9.1
var MinimumDriverVersion = version.New(391, 29)

// MinimumComputeMajor is the lowest supported compute capability major (SM 5.0)
const MinimumComputeMajor = 5

// Supported maps each eligible device to its non-empty algorithm list
type Supported map[device.Device][]algorithm.Algorithm

// Devices returns the mapped devices ordered by ID
func (s Supported) Devices() []device.Device {
	devices := make([]device.Device, 0, len(s))
	for d := range s {
		devices = append(devices, d)
	}
	sort.Slice(devices, func(i, j int) bool {
		if devices[i].ID != devices[j].ID {
			return devices[i].ID < devices[j].ID
		}
		return devices[i].UUID < devices[j].UUID
	})
	return devices
}

// Resolver decides which algorithms each device supports.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	pluginUUID   string
	minDriver    version.Version
	eligible     device.Predicate
	requirements algorithm.Requirements
	logger       *logging.Logger
}

// NewResolver creates a resolver using the built-in memory requirement table
func NewResolver(pluginUUID string, logger *logging.Logger) *Resolver {
	return NewResolverWithRequirements(pluginUUID, algorithm.DefaultRequirements(), logger)
}

// NewResolverWithRequirements creates a resolver with a custom requirement table (for testing)
func NewResolverWithRequirements(pluginUUID string, req algorithm.Requirements, logger *logging.Logger) *Resolver {
	return &Resolver{
		pluginUUID:   pluginUUID,
		minDriver:    MinimumDriverVersion,
		eligible:     device.All(device.IsKind(device.KindCUDA), device.MinComputeMajor(MinimumComputeMajor)),
		requirements: req,
		logger:       logger,
	}
}

// Candidates returns the fixed algorithm list this plugin offers per device
func (r *Resolver) Candidates() []algorithm.Algorithm {
	return []algorithm.Algorithm{
		algorithm.New(r.pluginUUID, algorithm.TypeZHash),
	}
}

// Resolve returns the supported algorithms per device. The installed driver
// version is checked once for the whole pool; an old or unknown driver yields an
// empty result.
func (r *Resolver) Resolve(installedDriver string, devices []device.Device) Supported {
	supported := make(Supported)

	if !version.MeetsMinimum(installedDriver, r.minDriver) {
		r.logger.Debug("capability.driver.unsupported", "Installed driver below minimum", map[string]interface{}{
			"installed": installedDriver,
			"required":  r.minDriver.String(),
		})
		return supported
	}

	for _, d := range device.Select(devices, r.eligible) {
		algorithms := algorithm.FilterInsufficientMemory(d.MemoryBytes, r.Candidates(), r.requirements)
		if len(algorithms) == 0 {
			r.logger.Debug("capability.device.insufficient_memory", "No algorithm fits device memory", map[string]interface{}{
				"device":       d.ID,
				"memory_bytes": d.MemoryBytes,
			})
			continue
		}
		supported[d] = algorithms
	}

	r.logger.Debug("capability.resolve.done", "Resolved supported algorithms", map[string]interface{}{
		"devices_in":        len(devices),
		"devices_supported": len(supported),
	})

	return supported
}
