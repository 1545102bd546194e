package plugin

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"ewbf/internal/algorithm"
	"ewbf/internal/binpkg"
	"ewbf/internal/device"
	"ewbf/internal/launch"
)

const gib = uint64(1) << 30

var emptyPool = launch.Pool{}

func testDevices() []device.Device {
	return []device.Device{
		{ID: 0, UUID: "GPU-0", Name: "GTX 1070", Kind: device.KindCUDA, Compute: device.ComputeCapability{Major: 6, Minor: 1}, MemoryBytes: 8 * gib},
		{ID: 1, UUID: "GPU-1", Name: "GTX 780", Kind: device.KindCUDA, Compute: device.ComputeCapability{Major: 3, Minor: 5}, MemoryBytes: 3 * gib},
		{ID: 2, UUID: "GPU-2", Name: "GT 1030", Kind: device.KindCUDA, Compute: device.ComputeCapability{Major: 6, Minor: 1}, MemoryBytes: 1 * gib},
		{ID: 3, UUID: "CPU-0", Name: "Ryzen", Kind: device.KindCPU, MemoryBytes: 32 * gib},
	}
}

func TestNew_Descriptor(t *testing.T) {
	p := New("/srv/plugins", "", nil)

	if p.PluginUUID() != UUID {
		t.Errorf("PluginUUID() = %s, want %s", p.PluginUUID(), UUID)
	}
	if Name != "Ewbf" {
		t.Errorf("Name = %s, want Ewbf", Name)
	}
	if Version.Major != 1 || Version.Minor != 1 {
		t.Errorf("Version = %+v, want 1.1", Version)
	}

	root := filepath.Join("/srv/plugins", UUID)
	if p.Root() != root {
		t.Errorf("Root() = %s, want %s", p.Root(), root)
	}
	if p.BinsPath() != filepath.Join(root, "bins") {
		t.Errorf("BinsPath() = %s", p.BinsPath())
	}
	if p.InternalsPath() != filepath.Join(root, "internals") {
		t.Errorf("InternalsPath() = %s", p.InternalsPath())
	}
	if p.BinaryPath() != filepath.Join(root, "bins", "miner.exe") {
		t.Errorf("BinaryPath() = %s", p.BinaryPath())
	}
}

func TestNew_CustomUUID(t *testing.T) {
	p := New("/srv/plugins", "00000000-0000-0000-0000-000000000001", nil)

	supported := p.GetSupportedAlgorithms("418.56", testDevices()[:1])
	for _, algos := range supported {
		if algos[0].PluginUUID != "00000000-0000-0000-0000-000000000001" {
			t.Errorf("algorithm plugin UUID = %s, want custom UUID", algos[0].PluginUUID)
		}
	}
}

func TestGetSupportedAlgorithms(t *testing.T) {
	p := New(t.TempDir(), "", nil)
	devices := testDevices()

	supported := p.GetSupportedAlgorithms("418.56", devices)
	if len(supported) != 1 {
		t.Fatalf("len(supported) = %d, want 1: %v", len(supported), supported)
	}
	algos, ok := supported[devices[0]]
	if !ok {
		t.Fatalf("device %s missing from result", devices[0])
	}
	want := []algorithm.Algorithm{algorithm.New(UUID, algorithm.TypeZHash)}
	if !reflect.DeepEqual(algos, want) {
		t.Errorf("algorithms = %v, want %v", algos, want)
	}

	if got := p.GetSupportedAlgorithms("390.77", devices); len(got) != 0 {
		t.Errorf("old driver: got %v, want empty", got)
	}
}

func TestCanGroup(t *testing.T) {
	p := New(t.TempDir(), "", nil)
	zhash := algorithm.New(UUID, algorithm.TypeZHash)

	if !p.CanGroup(zhash, algorithm.New("other", algorithm.TypeZHash)) {
		t.Error("same algorithm type should group")
	}
	if p.CanGroup(zhash, algorithm.New(UUID, algorithm.TypeBeam)) {
		t.Error("different algorithm types should not group")
	}
}

func TestCreateCommand(t *testing.T) {
	p := New("/srv/plugins", "", nil)
	algo := algorithm.New(UUID, algorithm.TypeZHash)
	devices := testDevices()[:1]
	pool := launch.Pool{Host: "zhash.eu.nicehash.com", Port: 3369, User: "wallet.rig1", APIPort: 4000}

	cmd, err := p.CreateCommand(algo, devices, pool, "--intensity 60 --pec --bogus 1")
	if err != nil {
		t.Fatalf("CreateCommand() error = %v", err)
	}

	if cmd.Path != p.BinaryPath() {
		t.Errorf("Path = %s, want %s", cmd.Path, p.BinaryPath())
	}
	if cmd.Dir != p.BinsPath() {
		t.Errorf("Dir = %s, want %s", cmd.Dir, p.BinsPath())
	}

	line := strings.Join(cmd.Args, " ")
	wantPrefix := "--server zhash.eu.nicehash.com --port 3369 --user wallet.rig1 --pass x --api 127.0.0.1:4000 --cuda_devices 0"
	if !strings.HasPrefix(line, wantPrefix) {
		t.Errorf("Args = %q, want prefix %q", line, wantPrefix)
	}

	wantOptions := "--solver 0 --intensity 60 --pec --templimit 90 --tempunits C"
	if !strings.HasSuffix(line, wantOptions) {
		t.Errorf("Args = %q, want suffix %q", line, wantOptions)
	}
	if strings.Contains(line, "--bogus") {
		t.Errorf("Args = %q, unknown parameters must be dropped", line)
	}
	if want := []string{"CUDA_DEVICE_ORDER=PCI_BUS_ID"}; !reflect.DeepEqual(cmd.Env, want) {
		t.Errorf("Env = %v, want %v", cmd.Env, want)
	}
}

func TestCreateCommand_DeviceOrderPinned(t *testing.T) {
	p := New(t.TempDir(), "", nil)
	if err := os.MkdirAll(p.InternalsPath(), 0o750); err != nil {
		t.Fatal(err)
	}
	override := "default_system_environment_variables:\n  CUDA_DEVICE_ORDER: FASTEST_FIRST\n  GPU_MAX_HEAP_SIZE: \"100\"\n"
	if err := os.WriteFile(filepath.Join(p.InternalsPath(), "environment.yaml"), []byte(override), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := p.InitInternals(); err != nil {
		t.Fatalf("InitInternals() error = %v", err)
	}

	devices := []device.Device{testDevices()[2]}
	cmd, err := p.CreateCommand(algorithm.New(UUID, algorithm.TypeZHash), devices, emptyPool, "")
	if err != nil {
		t.Fatalf("CreateCommand() error = %v", err)
	}

	if !strings.Contains(cmd.Args.String(), "--cuda_devices 2") {
		t.Errorf("Args = %q, want --cuda_devices 2", cmd.Args.String())
	}
	want := []string{"CUDA_DEVICE_ORDER=PCI_BUS_ID", "GPU_MAX_HEAP_SIZE=100"}
	if !reflect.DeepEqual(cmd.Env, want) {
		t.Errorf("Env = %v, want %v", cmd.Env, want)
	}
}

func TestCreateCommand_InvalidParameters(t *testing.T) {
	p := New("/srv/plugins", "", nil)
	if _, err := p.CreateCommand(algorithm.New(UUID, algorithm.TypeZHash), nil, emptyPool, `--pers "open`); err == nil {
		t.Error("expected an error for an unterminated quote")
	}
}

func TestCheckBinaryPackageMissingFiles(t *testing.T) {
	p := New(t.TempDir(), "", nil)

	missing := p.CheckBinaryPackageMissingFiles()
	if !reflect.DeepEqual(missing, binpkg.RequiredFiles) {
		t.Errorf("missing = %v, want all of %v", missing, binpkg.RequiredFiles)
	}

	if err := os.MkdirAll(p.BinsPath(), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p.BinaryPath(), []byte("MZ"), 0o600); err != nil {
		t.Fatal(err)
	}

	missing = p.CheckBinaryPackageMissingFiles()
	want := []string{"cudart32_91.dll", "cudart64_91.dll"}
	if !reflect.DeepEqual(missing, want) {
		t.Errorf("missing = %v, want %v", missing, want)
	}
}

func TestVerifyBinaryPackage(t *testing.T) {
	p := New(t.TempDir(), "", nil)
	if err := os.MkdirAll(p.BinsPath(), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p.BinaryPath(), []byte("MZ"), 0o600); err != nil {
		t.Fatal(err)
	}

	digest, err := binpkg.FileDigest(p.BinaryPath())
	if err != nil {
		t.Fatal(err)
	}

	mismatches, err := p.VerifyBinaryPackage(binpkg.Manifest{"miner.exe": digest})
	if err != nil {
		t.Fatalf("VerifyBinaryPackage() error = %v", err)
	}
	if len(mismatches) != 0 {
		t.Errorf("mismatches = %v, want none", mismatches)
	}

	mismatches, err = p.VerifyBinaryPackage(binpkg.Manifest{"miner.exe": "00", "cudart64_91.dll": "11"})
	if err != nil {
		t.Fatalf("VerifyBinaryPackage() error = %v", err)
	}
	if len(mismatches) != 2 {
		t.Fatalf("mismatches = %v, want 2", mismatches)
	}
	if mismatches[0].Name != "cudart64_91.dll" || mismatches[0].Actual != "" {
		t.Errorf("mismatches[0] = %+v, want missing cudart64_91.dll", mismatches[0])
	}
}
