// Package template renders license text templates. A template is a plain
// string with `{name}` placeholders; `{{` and `}}` escape literal braces.
// Substitution fails loudly when a referenced field is absent, which is
// the only template semantic the codec relies on.
package template

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Fields maps template variable names to their values. Values may be
// strings or numbers; anything else is rendered with %v.
type Fields map[string]any

// Sentinel errors for template rendering failures.
var (
	ErrMissingField = errors.New("missing template field")
	ErrBadTemplate  = errors.New("malformed template")
)

// MissingFieldError reports which template variable was unresolved.
type MissingFieldError struct {
	Name string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing template field %q", e.Name)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// Render substitutes fields into tmpl. Any placeholder naming an absent
// field yields a *MissingFieldError.
func Render(tmpl string, fields Fields) (string, error) {
	var b strings.Builder
	b.Grow(len(tmpl))
	for i := 0; i < len(tmpl); {
		switch tmpl[i] {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				b.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unterminated placeholder", ErrBadTemplate)
			}
			name := tmpl[i+1 : i+1+end]
			if name == "" {
				return "", fmt.Errorf("%w: empty placeholder", ErrBadTemplate)
			}
			v, ok := fields[name]
			if !ok {
				return "", &MissingFieldError{Name: name}
			}
			b.WriteString(FormatValue(v))
			i += end + 2
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				b.WriteByte('}')
				i += 2
				continue
			}
			return "", fmt.Errorf("%w: single %q outside placeholder", ErrBadTemplate, "}")
		default:
			b.WriteByte(tmpl[i])
			i++
		}
	}
	return b.String(), nil
}

// FormatValue renders a field value the way it appears in license text.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Merge returns a copy of f with overrides applied on top.
func (f Fields) Merge(overrides Fields) Fields {
	out := make(Fields, len(f)+len(overrides))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
