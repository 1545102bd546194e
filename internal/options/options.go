// Package options declares the launch options the worker binary understands.
package options

import (
	"errors"
	"fmt"
)

// Kind is the closed set of option shapes
type Kind int

const (
	// KindSingleParam is a flag followed by exactly one value
	KindSingleParam Kind = iota + 1
	// KindMultiParam is a flag followed by one token holding delimiter-joined sub-values
	KindMultiParam
	// KindFlag is a flag with no value
	KindFlag
)

var kindNames = map[Kind]string{
	KindSingleParam: "single",
	KindMultiParam:  "multi",
	KindFlag:        "flag",
}

// Kinds lists every valid kind in declaration order
func Kinds() []Kind {
	return []Kind{KindSingleParam, KindMultiParam, KindFlag}
}

// Valid reports whether k is one of the declared kinds
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown option kind %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown option kind %q", string(text))
}

// Option describes one command-line option of the worker
type Option struct {
	Kind         Kind   `json:"kind" yaml:"kind"`
	ID           string `json:"id" yaml:"id"`
	ShortName    string `json:"short_name" yaml:"short_name"`
	DefaultValue string `json:"default_value,omitempty" yaml:"default_value,omitempty"`
	Delimiter    string `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`
}

// HasDefault reports whether the option carries a default value
func (o Option) HasDefault() bool {
	return o.DefaultValue != ""
}

// Package is the full option catalogue, split into general and temperature groups.
// Treat a Package as immutable once it is shared; use Clone to derive a modified copy.
type Package struct {
	General     []Option `json:"general_options" yaml:"general_options"`
	Temperature []Option `json:"temperature_options" yaml:"temperature_options"`
}

// All returns every option, general group first, in declaration order
func (p Package) All() []Option {
	all := make([]Option, 0, len(p.General)+len(p.Temperature))
	all = append(all, p.General...)
	all = append(all, p.Temperature...)
	return all
}

// Lookup finds an option by ID
func (p Package) Lookup(id string) (Option, bool) {
	for _, opt := range p.All() {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// LookupShortName finds an option by the flag token emitted on the command line
func (p Package) LookupShortName(short string) (Option, bool) {
	for _, opt := range p.All() {
		if opt.ShortName == short {
			return opt, true
		}
	}
	return Option{}, false
}

// Clone returns a deep copy
func (p Package) Clone() Package {
	return Package{
		General:     append([]Option(nil), p.General...),
		Temperature: append([]Option(nil), p.Temperature...),
	}
}

// Validate checks the catalogue is well formed: IDs present and unique across
// both groups, short names present, kinds known.
func (p Package) Validate() error {
	var errs []error
	seen := make(map[string]struct{})

	check := func(group string, opts []Option) {
		for i, opt := range opts {
			where := fmt.Sprintf("%s[%d]", group, i)
			if opt.ID == "" {
				errs = append(errs, fmt.Errorf("%s: empty id", where))
			} else if _, dup := seen[opt.ID]; dup {
				errs = append(errs, fmt.Errorf("%s: duplicate id %q", where, opt.ID))
			} else {
				seen[opt.ID] = struct{}{}
			}
			if opt.ShortName == "" {
				errs = append(errs, fmt.Errorf("%s: empty short_name", where))
			}
			if !opt.Kind.Valid() {
				errs = append(errs, fmt.Errorf("%s: unknown kind %v", where, opt.Kind))
			}
		}
	}

	check("general_options", p.General)
	check("temperature_options", p.Temperature)

	return errors.Join(errs...)
}
