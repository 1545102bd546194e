package launch

import (
	"sort"

	"ewbf/internal/algorithm"
)

// CUDA enumerates fastest device first unless told otherwise, while
// --cuda_devices indices come from NVML, which numbers devices by PCI bus.
const (
	DeviceOrderVariable = "CUDA_DEVICE_ORDER"
	DeviceOrderPCIBus   = "PCI_BUS_ID"
)

// Environment holds environment variables for the worker process. The values
// are opaque here and passed through unchanged.
type Environment struct {
	Default map[string]string                    `json:"default_system_environment_variables" yaml:"default_system_environment_variables"`
	Custom  map[algorithm.Type]map[string]string `json:"custom_system_environment_variables,omitempty" yaml:"custom_system_environment_variables,omitempty"`
}

// DefaultEnvironment returns the built-in environment settings
func DefaultEnvironment() Environment {
	return Environment{
		Default: map[string]string{
			DeviceOrderVariable: DeviceOrderPCIBus,
		},
		Custom: map[algorithm.Type]map[string]string{},
	}
}

// For returns KEY=VALUE pairs for running algo, sorted by key.
// Custom entries for the algorithm override defaults with the same key.
func (e Environment) For(algo algorithm.Type) []string {
	return pairs(e.merged(algo))
}

// ForDevices is For with CUDA_DEVICE_ORDER pinned to PCI bus order, so the
// indices passed in --cuda_devices name the devices the inventory reported.
func (e Environment) ForDevices(algo algorithm.Type) []string {
	merged := e.merged(algo)
	merged[DeviceOrderVariable] = DeviceOrderPCIBus
	return pairs(merged)
}

func (e Environment) merged(algo algorithm.Type) map[string]string {
	merged := make(map[string]string, len(e.Default)+1)
	for k, v := range e.Default {
		merged[k] = v
	}
	for k, v := range e.Custom[algo] {
		merged[k] = v
	}
	return merged
}

func pairs(vars map[string]string) []string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+vars[k])
	}
	return env
}
