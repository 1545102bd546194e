// Package algorithm models plugin-scoped algorithms and their memory eligibility.
package algorithm

import "fmt"

// Type is a hashing algorithm tag
type Type string

const (
	// TypeZHash is Equihash 144,5
	TypeZHash Type = "ZHash"
	// TypeEquihash is Equihash 200,9
	TypeEquihash Type = "Equihash"
	// TypeBeam is Equihash 150,5
	TypeBeam Type = "Beam"
)

// Algorithm is an algorithm type scoped to the plugin that can run it
type Algorithm struct {
	PluginUUID string `json:"plugin_uuid" yaml:"plugin_uuid"`
	Type       Type   `json:"type" yaml:"type"`
}

// New returns an algorithm for the given plugin
func New(pluginUUID string, t Type) Algorithm {
	return Algorithm{PluginUUID: pluginUUID, Type: t}
}

// ID is the stable identifier "<plugin>-<type>"
func (a Algorithm) ID() string {
	return fmt.Sprintf("%s-%s", a.PluginUUID, a.Type)
}

func (a Algorithm) String() string {
	return string(a.Type)
}

// CanGroup reports whether two algorithms can share one worker process
func CanGroup(a, b Algorithm) bool {
	return a.Type == b.Type
}
