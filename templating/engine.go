package templating

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/valyala/fasttemplate"
)

const (
	startTag = "{"
	endTag   = "}"

	// quoteMarker prefixes a placeholder whose non-empty
	// values are rendered inside single quotes.
	quoteMarker = "#"
)

// ErrUnknownPlaceholder is returned when a template
// references a key that has no value.
var ErrUnknownPlaceholder = errors.New("unknown placeholder")

// ErrMalformedTemplate is returned for an unclosed "{", a
// stray "}" or a "{" inside a placeholder.
var ErrMalformedTemplate = errors.New("malformed template")

var placeholderRe = regexp.MustCompile(`\{([^{}]*)\}`)

// Default describes the fallback registered for one
// placeholder name.
type Default struct {
	// Quoted wraps non-empty values in single quotes.
	Quoted bool

	// Value is the literal used when the field is empty.
	// Only meaningful when HasValue is true.
	Value string

	// HasValue reports whether the placeholder carried an
	// "=default" suffix.
	HasValue bool
}

// Registry maps placeholder names to their defaults.
type Registry map[string]Default

// Template is a parsed template: Text holds only bare
// {name} placeholders, Defaults holds what was stripped.
type Template struct {
	Text     string
	Defaults Registry
}

// Parse extracts defaults and quote markers from tpl and
// returns the rewritten template. A later placeholder with
// the same name overrides an earlier one in the registry.
func Parse(tpl string) Template {
	reg := make(Registry)

	text := placeholderRe.ReplaceAllStringFunc(
		tpl,
		func(match string) string {
			content := match[1 : len(match)-1]

			var df Default

			if strings.HasPrefix(content, quoteMarker) {
				df.Quoted = true
				content = content[len(quoteMarker):]
			}

			name, value, found := strings.Cut(content, "=")
			name = strings.TrimSpace(name)

			if found {
				df.Value = value
				df.HasValue = true
			}

			reg[name] = df

			return startTag + name + endTag
		},
	)

	return Template{Text: text, Defaults: reg}
}

// References reports whether the template contains a
// placeholder for name.
func (tp Template) References(name string) bool {
	_, ok := tp.Defaults[name]
	return ok
}

// Execute substitutes values into the rewritten template.
func (tp Template) Execute(
	values map[string]string,
) (string, error) {
	return Format(tp.Text, values)
}

// Format replaces every {key} in tpl with values[key].
// Keys are matched after trimming surrounding whitespace.
// It fails with ErrUnknownPlaceholder naming the first key
// missing from values, and with ErrMalformedTemplate when
// the braces do not pair up.
func Format(
	tpl string,
	values map[string]string,
) (string, error) {
	const errCtx = "formatting template"

	if err := checkBraces(tpl); err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	result, err := fasttemplate.ExecuteFuncStringWithErr(
		tpl, startTag, endTag,
		func(w io.Writer, tag string) (int, error) {
			key := strings.TrimSpace(tag)

			val, ok := values[key]
			if !ok {
				return 0, fmt.Errorf(
					"%w: %q", ErrUnknownPlaceholder, key,
				)
			}

			return io.WriteString(w, val)
		},
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return result, nil
}

// checkBraces verifies that every "{" is closed by a "}"
// before the next "{" and that no "}" appears outside a
// placeholder.
func checkBraces(tpl string) error {
	open := -1

	for idx := 0; idx < len(tpl); idx++ {
		switch tpl[idx] {
		case '{':
			if open >= 0 {
				return fmt.Errorf(
					"%w: nested %q at offset %d",
					ErrMalformedTemplate, startTag, idx,
				)
			}

			open = idx
		case '}':
			if open < 0 {
				return fmt.Errorf(
					"%w: stray %q at offset %d",
					ErrMalformedTemplate, endTag, idx,
				)
			}

			open = -1
		}
	}

	if open >= 0 {
		return fmt.Errorf(
			"%w: unclosed %q at offset %d",
			ErrMalformedTemplate, startTag, open,
		)
	}

	return nil
}
