package algorithm

// Requirements maps an algorithm type to the minimum device memory in bytes.
// Types absent from the table have no requirement.
type Requirements map[Type]uint64

// DefaultRequirements returns the built-in minimum memory table
func DefaultRequirements() Requirements {
	return Requirements{
		// ~1.75 GB; the worker needs about 1.63 GB of VRAM in practice
		TypeZHash: 1879047230,
	}
}

// MinimumMemory returns the requirement for t, zero when unknown
func (r Requirements) MinimumMemory(t Type) uint64 {
	return r[t]
}

// FilterInsufficientMemory keeps the candidates whose minimum memory fits in available.
// Candidate order is preserved and the result is never nil.
func FilterInsufficientMemory(available uint64, candidates []Algorithm, req Requirements) []Algorithm {
	filtered := make([]Algorithm, 0, len(candidates))
	for _, algo := range candidates {
		if req.MinimumMemory(algo.Type) <= available {
			filtered = append(filtered, algo)
		}
	}
	return filtered
}
