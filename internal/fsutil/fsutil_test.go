package fsutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ewbf/internal/logging"
)

func TestEnsureDirectory(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name: "creates new directory",
			setup: func(t *testing.T) string {
				t.Helper()
				return filepath.Join(t.TempDir(), "newdir")
			},
		},
		{
			name: "succeeds if directory exists",
			setup: func(t *testing.T) string {
				t.Helper()
				dir := filepath.Join(t.TempDir(), "existingdir")
				if err := os.MkdirAll(dir, 0o755); err != nil {
					t.Fatalf("setup failed: %v", err)
				}
				return dir
			},
		},
		{
			name: "creates nested directories",
			setup: func(t *testing.T) string {
				t.Helper()
				return filepath.Join(t.TempDir(), "a", "b", "c")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)

			if err := EnsureDirectory(path); err != nil {
				t.Fatalf("EnsureDirectory() error = %v", err)
			}

			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("directory not created: %v", err)
			}
			if !info.IsDir() {
				t.Errorf("path is not a directory")
			}
		})
	}
}

func TestAtomicWriteFile(t *testing.T) {
	logger := logging.NewLogger(logging.LevelWarn)

	tests := []struct {
		name  string
		setup func(t *testing.T) (string, []byte)
	}{
		{
			name: "writes new file atomically",
			setup: func(t *testing.T) (string, []byte) {
				t.Helper()
				return filepath.Join(t.TempDir(), "miner_options.yaml"), []byte("general_options: []\n")
			},
		},
		{
			name: "overwrites existing file",
			setup: func(t *testing.T) (string, []byte) {
				t.Helper()
				path := filepath.Join(t.TempDir(), "existing.yaml")
				_ = os.WriteFile(path, []byte("old content"), 0o600)
				return path, []byte("new content")
			},
		},
		{
			name: "creates missing parent directory",
			setup: func(t *testing.T) (string, []byte) {
				t.Helper()
				return filepath.Join(t.TempDir(), "internals", "environment.yaml"), []byte("x: y\n")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, data := tt.setup(t)

			if err := AtomicWriteFile(path, data, DefaultFilePermissions, logger); err != nil {
				t.Fatalf("AtomicWriteFile() error = %v", err)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("failed to read file: %v", err)
			}
			if string(got) != string(data) {
				t.Errorf("file content = %q, want %q", got, data)
			}

			if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
				t.Errorf("temp file still exists: %s.tmp", path)
			}
		})
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "miner.exe")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	if !FileExists(file) {
		t.Error("Expected file to exist")
	}
	if FileExists(dir) {
		t.Error("Expected directory not to count as a file")
	}
	if FileExists(filepath.Join(dir, "nope")) {
		t.Error("Expected missing path not to exist")
	}
}

func TestCloseWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriterLogger(logging.LevelWarn, &buf)

	CloseWithError(func() error { return nil }, logger, "ok_resource")
	if buf.Len() != 0 {
		t.Errorf("Expected no log output for successful close, got: %s", buf.String())
	}

	CloseWithError(func() error { return os.ErrClosed }, logger, "report_file")
	if !strings.Contains(buf.String(), "report_file") {
		t.Errorf("Expected close failure to be logged, got: %s", buf.String())
	}

	// nil logger must not panic
	CloseWithError(func() error { return os.ErrClosed }, nil, "report_file")
}
