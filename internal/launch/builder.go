// Package launch turns configured option values into the worker's command line.
package launch

import (
	"fmt"
	"strconv"
	"strings"

	"ewbf/internal/options"
)

// Values binds option IDs to user-supplied values
type Values map[string]string

// Arguments is the ordered token sequence passed to the worker
type Arguments []string

func (a Arguments) String() string {
	return strings.Join(a, " ")
}

// renderer emits the tokens for one option given its binding
type renderer func(opt options.Option, value string, bound bool) []string

var renderers = map[options.Kind]renderer{
	options.KindSingleParam: renderParam,
	// Multi-value options are pre-joined by the caller (see JoinPerDevice);
	// the value is passed through as a single token.
	options.KindMultiParam: renderParam,
	options.KindFlag:       renderFlag,
}

func renderParam(opt options.Option, value string, bound bool) []string {
	if !bound || strings.TrimSpace(value) == "" {
		value = opt.DefaultValue
	}
	if value == "" {
		return nil
	}
	return []string{opt.ShortName, value}
}

func renderFlag(opt options.Option, value string, bound bool) []string {
	if !bound || !enabled(value) {
		return nil
	}
	return []string{opt.ShortName}
}

// enabled treats a bare binding as on and anything strconv parses as false as off
func enabled(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return true
	}
	on, err := strconv.ParseBool(value)
	if err != nil {
		return true
	}
	return on
}

// Build renders pkg with values into argument tokens. Options are visited in
// declaration order, general group first, and each option ID is rendered at most once.
// Bound values are emitted verbatim; a blank value counts as unset.
func Build(pkg options.Package, values Values) Arguments {
	args := make(Arguments, 0)
	rendered := make(map[string]struct{})

	for _, opt := range pkg.All() {
		if _, done := rendered[opt.ID]; done {
			continue
		}
		rendered[opt.ID] = struct{}{}

		render, ok := renderers[opt.Kind]
		if !ok {
			panic(fmt.Sprintf("launch: no renderer for option kind %v (option %q)", opt.Kind, opt.ID))
		}

		value, bound := values[opt.ID]
		args = append(args, render(opt, value, bound)...)
	}

	return args
}
