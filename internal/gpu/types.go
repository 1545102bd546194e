package gpu

import "ewbf/internal/device"

// Report is the result of one inventory pass, persisted as gpu_report.json
type Report struct {
	DriverVersion string          `json:"driver_version"`
	CUDAVersion   int             `json:"cuda_version"`
	NVMLOk        bool            `json:"nvml_ok"`
	Devices       []device.Device `json:"devices"`
	ErrorMessage  string          `json:"error_message,omitempty"`
}
