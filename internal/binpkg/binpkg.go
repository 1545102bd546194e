// Package binpkg checks that the worker's binary package is complete on disk.
package binpkg

import (
	"path/filepath"

	"ewbf/internal/fsutil"
)

// RequiredFiles is the worker executable plus the CUDA 9.1 runtimes it links against
var RequiredFiles = []string{"miner.exe", "cudart32_91.dll", "cudart64_91.dll"}

// Missing returns the names from required that are not regular files under
// installPath, in input order without duplicates. A missing installPath makes
// every name missing. Nothing is cached; each call stats the filesystem.
func Missing(installPath string, required []string) []string {
	missing := make([]string, 0)
	seen := make(map[string]struct{}, len(required))

	for _, name := range required {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		if !fsutil.FileExists(filepath.Join(installPath, name)) {
			missing = append(missing, name)
		}
	}

	return missing
}
