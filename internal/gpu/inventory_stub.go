//go:build !cuda

package gpu

import (
	"ewbf/internal/device"
	"ewbf/internal/logging"
)

// Inventory provides an empty device inventory when NVML is unavailable.
type Inventory struct {
	logger *logging.Logger
}

// NewInventory creates an inventory that skips NVML when CUDA support is disabled.
func NewInventory(logger *logging.Logger) *Inventory {
	return &Inventory{logger: logger}
}

// NewInventoryWithNVML is provided for API compatibility; NVML is ignored when CUDA is disabled.
func NewInventoryWithNVML(_ NVMLInterface, logger *logging.Logger) *Inventory {
	return NewInventory(logger)
}

// Detect returns a report indicating that NVML is unavailable in the current build.
func (inv *Inventory) Detect() Report {
	inv.logger.Info("gpu.detect.disabled", "Skipping NVML inventory (built without cuda tag)", nil)

	return Report{
		Devices:      []device.Device{},
		ErrorMessage: "NVML disabled: rebuild with -tags cuda",
	}
}

// SaveReport persists a report to disk.
func (inv *Inventory) SaveReport(report Report, path string) error {
	return saveReportToFile(inv.logger, report, path)
}
