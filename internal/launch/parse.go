package launch

import (
	"fmt"
	"strings"

	"github.com/mattn/go-shellwords"

	"ewbf/internal/options"
)

// JoinPerDevice joins per-device sub-values of a multi-value option with the
// option's delimiter. Blank entries take the option default.
func JoinPerDevice(opt options.Option, perDevice []string) string {
	delimiter := opt.Delimiter
	if delimiter == "" {
		delimiter = " "
	}

	parts := make([]string, 0, len(perDevice))
	for _, v := range perDevice {
		v = strings.TrimSpace(v)
		if v == "" {
			v = opt.DefaultValue
		}
		parts = append(parts, v)
	}
	return strings.Join(parts, delimiter)
}

// ParseExtraLaunchParameters reads a user's free-form parameter string such as
// `--intensity 60 64 --pec --templimit=80 --pers "Zcash PoW"` into bindings.
// Quoting follows shell rules, so the output of Command.String reads back.
// Only short names from pkg are recognised; anything else is skipped. A later
// occurrence of an option replaces an earlier one.
func ParseExtraLaunchParameters(pkg options.Package, text string) (Values, error) {
	tokens, err := shellwords.Parse(text)
	if err != nil {
		return Values{}, fmt.Errorf("invalid launch parameters %q: %w", text, err)
	}

	values := make(Values)
	for i := 0; i < len(tokens); i++ {
		flag, inline, hasInline := strings.Cut(tokens[i], "=")
		opt, ok := pkg.LookupShortName(flag)
		if !ok {
			continue
		}

		switch opt.Kind {
		case options.KindFlag:
			if hasInline {
				values[opt.ID] = inline
			} else {
				values[opt.ID] = "true"
			}
		case options.KindSingleParam:
			if hasInline {
				values[opt.ID] = inline
			} else if i+1 < len(tokens) && isValueToken(pkg, tokens[i+1]) {
				i++
				values[opt.ID] = tokens[i]
			}
		case options.KindMultiParam:
			var parts []string
			if hasInline {
				parts = append(parts, inline)
			}
			for i+1 < len(tokens) && isValueToken(pkg, tokens[i+1]) {
				i++
				parts = append(parts, tokens[i])
			}
			if len(parts) > 0 {
				values[opt.ID] = JoinPerDevice(opt, parts)
			}
		}
	}

	return values, nil
}

// isValueToken reports whether token can be an option value rather than the
// next option. Values never start with a dash.
func isValueToken(pkg options.Package, token string) bool {
	if strings.HasPrefix(token, "-") {
		return false
	}
	flag, _, _ := strings.Cut(token, "=")
	_, ok := pkg.LookupShortName(flag)
	return !ok
}

// JoinArguments renders tokens back into a parameter string, quoting tokens
// that hold whitespace or quotes.
func JoinArguments(tokens []string) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		parts = append(parts, quote(t))
	}
	return strings.Join(parts, " ")
}
