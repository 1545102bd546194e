//go:build cuda

package gpu

import (
	"fmt"

	"ewbf/internal/device"
	"ewbf/internal/logging"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// Inventory enumerates CUDA devices through NVML
type Inventory struct {
	nvml   NVMLInterface
	logger *logging.Logger
}

// NewInventory creates an inventory backed by the system NVML library
func NewInventory(logger *logging.Logger) *Inventory {
	return &Inventory{
		nvml:   NewRealNVML(),
		logger: logger,
	}
}

// NewInventoryWithNVML creates an inventory with a custom NVML interface (for testing)
func NewInventoryWithNVML(nvmlInterface NVMLInterface, logger *logging.Logger) *Inventory {
	return &Inventory{
		nvml:   nvmlInterface,
		logger: logger,
	}
}

// Detect reads the driver version once and snapshots every device NVML reports.
// Devices whose handle cannot be obtained are skipped; unreadable attributes stay zero,
// which keeps such devices out of capability resolution.
func (inv *Inventory) Detect() Report {
	inv.logger.Info("gpu.detect.start", "Starting GPU inventory", nil)

	report := Report{
		Devices: make([]device.Device, 0),
	}

	ret := inv.nvml.Init()
	if ret != nvml.SUCCESS {
		report.ErrorMessage = fmt.Sprintf("Failed to initialize NVML: %v", nvml.ErrorString(ret))
		inv.logger.Warn("gpu.nvml.init.failed", "NVML initialization failed", map[string]interface{}{
			"error": report.ErrorMessage,
		})
		return report
	}
	defer inv.nvml.Shutdown()

	report.NVMLOk = true

	driverVersion, ret := inv.nvml.SystemGetDriverVersion()
	if ret != nvml.SUCCESS {
		inv.logger.Warn("gpu.driver.version.failed", "Failed to get driver version", map[string]interface{}{
			"error": nvml.ErrorString(ret),
		})
	} else {
		report.DriverVersion = driverVersion
	}

	cudaVersion, ret := inv.nvml.SystemGetCudaDriverVersion()
	if ret == nvml.SUCCESS {
		report.CUDAVersion = cudaVersion
	}

	count, ret := inv.nvml.DeviceGetCount()
	if ret != nvml.SUCCESS {
		report.ErrorMessage = fmt.Sprintf("Failed to get device count: %v", nvml.ErrorString(ret))
		inv.logger.Error("gpu.device.count.failed", "Failed to get GPU count", map[string]interface{}{
			"error": report.ErrorMessage,
		})
		return report
	}

	for i := 0; i < count; i++ {
		handle, ret := inv.nvml.DeviceGetHandleByIndex(i)
		if ret != nvml.SUCCESS {
			inv.logger.Warn("gpu.device.handle.failed", "Failed to get device handle", map[string]interface{}{
				"index": i,
				"error": nvml.ErrorString(ret),
			})
			continue
		}

		d := snapshot(i, handle)
		report.Devices = append(report.Devices, d)

		inv.logger.Info("gpu.device.detected", "GPU device detected", map[string]interface{}{
			"index":        d.ID,
			"name":         d.Name,
			"uuid":         d.UUID,
			"compute":      d.Compute.String(),
			"memory_bytes": d.MemoryBytes,
		})
	}

	return report
}

func snapshot(index int, handle DeviceInterface) device.Device {
	d := device.Device{
		ID:   index,
		Kind: device.KindCUDA,
	}

	if name, ret := handle.GetName(); ret == nvml.SUCCESS {
		d.Name = name
	}
	if uuid, ret := handle.GetUUID(); ret == nvml.SUCCESS {
		d.UUID = uuid
	}
	if mem, ret := handle.GetMemoryInfo(); ret == nvml.SUCCESS {
		d.MemoryBytes = mem.Total
	}
	if major, minor, ret := handle.GetCudaComputeCapability(); ret == nvml.SUCCESS {
		d.Compute = device.ComputeCapability{Major: major, Minor: minor}
	}

	return d
}

// SaveReport saves the report as JSON
func (inv *Inventory) SaveReport(report Report, path string) error {
	return saveReportToFile(inv.logger, report, path)
}
