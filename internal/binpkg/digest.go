package binpkg

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	"ewbf/internal/fsutil"
)

// Manifest maps file names to lowercase hex BLAKE2b-256 digests
type Manifest map[string]string

// Mismatch describes a file whose digest differs from the manifest.
// Actual is empty when the file is missing.
type Mismatch struct {
	Name     string
	Expected string
	Actual   string
}

// LoadManifest reads a YAML manifest ("miner.exe: <hex>")
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 -- path is supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return manifest, nil
}

// FileDigest returns the hex BLAKE2b-256 digest of a file
func FileDigest(path string) (string, error) {
	f, err := os.Open(filepath.Clean(path)) // #nosec G304 -- path is joined from the plugin root
	if err != nil {
		return "", err
	}
	defer fsutil.CloseWithError(f.Close, nil, path)

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("failed to create hash: %w", err)
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyDigests compares every manifest entry against the files under installPath.
// Results are sorted by name. Read failures other than a missing file are returned as errors.
func VerifyDigests(installPath string, manifest Manifest) ([]Mismatch, error) {
	names := make([]string, 0, len(manifest))
	for name := range manifest {
		names = append(names, name)
	}
	sort.Strings(names)

	var mismatches []Mismatch
	for _, name := range names {
		expected := strings.ToLower(strings.TrimSpace(manifest[name]))
		path := filepath.Join(installPath, name)

		if !fsutil.FileExists(path) {
			mismatches = append(mismatches, Mismatch{Name: name, Expected: expected})
			continue
		}

		actual, err := FileDigest(path)
		if err != nil {
			return mismatches, fmt.Errorf("failed to verify %s: %w", name, err)
		}
		if actual != expected {
			mismatches = append(mismatches, Mismatch{Name: name, Expected: expected, Actual: actual})
		}
	}

	return mismatches, nil
}
