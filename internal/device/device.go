// Package device describes compute devices supplied by an inventory and the
// predicates used to pick the ones a plugin can mine on.
package device

import "fmt"

// Kind identifies the device family
type Kind string

const (
	// KindCUDA is an NVIDIA accelerator reachable through CUDA
	KindCUDA Kind = "cuda"
	// KindAMD is an OpenCL-only AMD accelerator
	KindAMD Kind = "amd"
	// KindCPU is a host processor
	KindCPU Kind = "cpu"
	// KindUnknown is anything the inventory could not classify
	KindUnknown Kind = "unknown"
)

// ComputeCapability is the (major, minor) CUDA feature level of a device
type ComputeCapability struct {
	Major int `json:"major" yaml:"major"`
	Minor int `json:"minor" yaml:"minor"`
}

func (c ComputeCapability) String() string {
	return fmt.Sprintf("%d.%d", c.Major, c.Minor)
}

// Device is an immutable snapshot of one compute device.
// It is comparable and used directly as a map key.
type Device struct {
	ID          int               `json:"id" yaml:"id"`
	UUID        string            `json:"uuid" yaml:"uuid"`
	Name        string            `json:"name" yaml:"name"`
	Kind        Kind              `json:"kind" yaml:"kind"`
	Compute     ComputeCapability `json:"compute" yaml:"compute"`
	MemoryBytes uint64            `json:"memory_bytes" yaml:"memory_bytes"`
}

func (d Device) String() string {
	return fmt.Sprintf("#%d %s (%s, SM %s, %d MB)", d.ID, d.Name, d.Kind, d.Compute, d.MemoryBytes/(1024*1024))
}
