//go:build cuda

package gpu

import (
	"testing"

	"ewbf/internal/device"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

const mockDriverVersion = "418.56"

func healthyDevice(name, uuid string, memGB uint64, major, minor int) MockDevice {
	return MockDevice{
		Name:             name,
		NameReturn:       nvml.SUCCESS,
		UUID:             uuid,
		UUIDReturn:       nvml.SUCCESS,
		MemoryTotal:      memGB * 1024 * 1024 * 1024,
		MemoryInfoReturn: nvml.SUCCESS,
		ComputeMajor:     major,
		ComputeMinor:     minor,
		ComputeReturn:    nvml.SUCCESS,
	}
}

func TestInventory_Detect_Success(t *testing.T) {
	mockNVML := NewMockNVML()
	mockNVML.DriverVersion = mockDriverVersion
	mockNVML.CudaVersion = 10010
	mockNVML.DeviceCount = 2
	mockNVML.Devices = []MockDevice{
		healthyDevice("GeForce GTX 1070", "GPU-1111", 8, 6, 1),
		healthyDevice("GeForce GTX 780", "GPU-2222", 3, 3, 5),
	}

	inv := NewInventoryWithNVML(mockNVML, nil)
	report := inv.Detect()

	if !report.NVMLOk {
		t.Fatal("Expected NVML to be OK")
	}
	if report.DriverVersion != mockDriverVersion {
		t.Errorf("DriverVersion = %s, want %s", report.DriverVersion, mockDriverVersion)
	}
	if report.CUDAVersion != 10010 {
		t.Errorf("CUDAVersion = %d, want 10010", report.CUDAVersion)
	}
	if len(report.Devices) != 2 {
		t.Fatalf("len(Devices) = %d, want 2", len(report.Devices))
	}

	want := device.Device{
		ID:          0,
		UUID:        "GPU-1111",
		Name:        "GeForce GTX 1070",
		Kind:        device.KindCUDA,
		Compute:     device.ComputeCapability{Major: 6, Minor: 1},
		MemoryBytes: 8 * 1024 * 1024 * 1024,
	}
	if report.Devices[0] != want {
		t.Errorf("Devices[0] = %+v, want %+v", report.Devices[0], want)
	}
	if report.Devices[1].ID != 1 || report.Devices[1].Compute.Major != 3 {
		t.Errorf("Devices[1] = %+v, want index 1 with SM 3.x", report.Devices[1])
	}
	if mockNVML.ShutdownCalls != 1 {
		t.Errorf("Shutdown called %d times, want 1", mockNVML.ShutdownCalls)
	}
}

func TestInventory_Detect_InitFailure(t *testing.T) {
	mockNVML := NewMockNVML()
	mockNVML.InitReturn = nvml.ERROR_LIBRARY_NOT_FOUND

	report := NewInventoryWithNVML(mockNVML, nil).Detect()

	if report.NVMLOk {
		t.Error("Expected NVMLOk false when Init fails")
	}
	if report.ErrorMessage == "" {
		t.Error("Expected error message when Init fails")
	}
	if report.Devices == nil || len(report.Devices) != 0 {
		t.Errorf("Devices = %v, want empty non-nil slice", report.Devices)
	}
	if mockNVML.ShutdownCalls != 0 {
		t.Error("Shutdown must not be called when Init fails")
	}
}

func TestInventory_Detect_DeviceCountFailure(t *testing.T) {
	mockNVML := NewMockNVML()
	mockNVML.DriverVersion = mockDriverVersion
	mockNVML.DeviceCountReturn = nvml.ERROR_UNKNOWN

	report := NewInventoryWithNVML(mockNVML, nil).Detect()

	if !report.NVMLOk {
		t.Error("NVML itself initialized, NVMLOk should be true")
	}
	if report.DriverVersion != mockDriverVersion {
		t.Errorf("DriverVersion = %s, want %s", report.DriverVersion, mockDriverVersion)
	}
	if report.ErrorMessage == "" {
		t.Error("Expected error message when device count fails")
	}
}

func TestInventory_Detect_SkipsBadHandles(t *testing.T) {
	mockNVML := NewMockNVML()
	mockNVML.DeviceCount = 3 // one more than the mock holds
	mockNVML.Devices = []MockDevice{
		healthyDevice("A", "GPU-A", 4, 6, 1),
		healthyDevice("B", "GPU-B", 4, 7, 5),
	}

	report := NewInventoryWithNVML(mockNVML, nil).Detect()

	if len(report.Devices) != 2 {
		t.Errorf("len(Devices) = %d, want 2", len(report.Devices))
	}
}

func TestInventory_Detect_UnreadableAttributesStayZero(t *testing.T) {
	mockNVML := NewMockNVML()
	mockNVML.DeviceCount = 1
	mockNVML.Devices = []MockDevice{{
		Name:             "Mystery",
		NameReturn:       nvml.SUCCESS,
		UUIDReturn:       nvml.ERROR_NOT_SUPPORTED,
		MemoryInfoReturn: nvml.ERROR_NOT_SUPPORTED,
		ComputeReturn:    nvml.ERROR_NOT_SUPPORTED,
		MemoryTotal:      1 << 40,
		ComputeMajor:     9,
	}}

	report := NewInventoryWithNVML(mockNVML, nil).Detect()
	if len(report.Devices) != 1 {
		t.Fatalf("len(Devices) = %d, want 1", len(report.Devices))
	}

	d := report.Devices[0]
	if d.MemoryBytes != 0 || d.Compute.Major != 0 || d.UUID != "" {
		t.Errorf("Device = %+v, want unreadable fields left zero", d)
	}
	if d.Name != "Mystery" {
		t.Errorf("Name = %s, want Mystery", d.Name)
	}
}
