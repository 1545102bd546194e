package gpu

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"ewbf/internal/device"
	"ewbf/internal/fsutil"
	"ewbf/internal/logging"
)

// ErrDetectionFailed is returned when saving a report whose NVML pass failed;
// the report on disk is left untouched.
var ErrDetectionFailed = errors.New("gpu detection failed, report not saved")

func saveReportToFile(logger *logging.Logger, report Report, path string) error {
	if !report.NVMLOk {
		logger.Warn("gpu.report.skipped", "Not overwriting saved report with a failed detection", map[string]interface{}{
			"filepath": path,
			"error":    report.ErrorMessage,
		})
		return ErrDetectionFailed
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := fsutil.AtomicWriteFile(path, data, fsutil.DefaultFilePermissions, logger); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	logger.Info("gpu.report.saved", "GPU report saved", map[string]interface{}{
		"filepath": path,
	})

	return nil
}

// LoadReport reads a report previously written by SaveReport, so launch
// arguments can be built on hosts where NVML is not linked in.
func LoadReport(path string) (Report, error) {
	data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 -- path comes from configuration
	if err != nil {
		return Report{}, fmt.Errorf("failed to read report: %w", err)
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return Report{}, fmt.Errorf("failed to parse report: %w", err)
	}
	if report.Devices == nil {
		report.Devices = []device.Device{}
	}
	return report, nil
}
