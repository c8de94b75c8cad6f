package overlay

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Template evaluation for text primitives.
//
// The grammar is deliberately tiny and wire-compatible with what senders
// already emit: literal text with {self.path.to.field} placeholders. Path
// segments traverse nested models by field name and lists by [index]. Double
// braces escape literals: "{{" renders "{", "}}" renders "}".
//
// Examples:
//
//	"hp: {self.hp}"
//	"{self.target.name} ({self.buffs[0].ttl})"

// ErrTemplate indicates a malformed placeholder or a path that does not
// resolve against the bound model.
var ErrTemplate = errors.New("overlay: template error")

// RenderTemplate evaluates a template string against a model. A nil model
// renders placeholders as errors, so callers should pass templates through
// untouched when no model is bound.
func RenderTemplate(tmpl string, m *Model) (string, error) {
	var out strings.Builder
	out.Grow(len(tmpl))

	for i := 0; i < len(tmpl); {
		c := tmpl[i]
		switch c {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				out.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(tmpl[i:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unterminated placeholder at offset %d", ErrTemplate, i)
			}
			expr := tmpl[i+1 : i+end]
			val, err := resolvePath(expr, m)
			if err != nil {
				return "", err
			}
			out.WriteString(val.Format())
			i += end + 1
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				out.WriteByte('}')
				i += 2
				continue
			}
			return "", fmt.Errorf("%w: stray '}' at offset %d", ErrTemplate, i)
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String(), nil
}

// resolvePath walks a placeholder expression ("self.a.b[2].c") down the
// model tree.
func resolvePath(expr string, m *Model) (Value, error) {
	segments := strings.Split(expr, ".")
	if len(segments) == 0 || segments[0] != "self" {
		return Value{}, fmt.Errorf("%w: placeholder %q must start with self", ErrTemplate, expr)
	}
	if m == nil {
		return Value{}, fmt.Errorf("%w: no model bound for %q", ErrTemplate, expr)
	}

	cur := Nested(m)
	for _, seg := range segments[1:] {
		name, indices, err := splitIndexes(seg)
		if err != nil {
			return Value{}, fmt.Errorf("%w: placeholder %q: %v", ErrTemplate, expr, err)
		}
		if name != "" {
			if cur.kind != KindModel {
				return Value{}, fmt.Errorf("%w: %q: %q is not a nested model", ErrTemplate, expr, name)
			}
			v, ok := cur.model.Get(name)
			if !ok {
				return Value{}, fmt.Errorf("%w: %q: unknown field %q", ErrTemplate, expr, name)
			}
			cur = v
		}
		for _, idx := range indices {
			if cur.kind != KindList {
				return Value{}, fmt.Errorf("%w: %q: index on non-list", ErrTemplate, expr)
			}
			if idx < 0 || idx >= len(cur.list) {
				return Value{}, fmt.Errorf("%w: %q: index %d out of range", ErrTemplate, expr, idx)
			}
			cur = cur.list[idx]
		}
	}
	return cur, nil
}

// splitIndexes splits a path segment into its field name and trailing
// [index] subscripts.
func splitIndexes(seg string) (name string, indices []int, err error) {
	open := strings.IndexByte(seg, '[')
	if open < 0 {
		return seg, nil, nil
	}
	name = seg[:open]
	rest := seg[open:]
	for len(rest) > 0 {
		if rest[0] != '[' {
			return "", nil, fmt.Errorf("malformed subscript in %q", seg)
		}
		close := strings.IndexByte(rest, ']')
		if close < 0 {
			return "", nil, fmt.Errorf("unterminated subscript in %q", seg)
		}
		idx, err := strconv.Atoi(rest[1:close])
		if err != nil {
			return "", nil, fmt.Errorf("bad subscript in %q", seg)
		}
		indices = append(indices, idx)
		rest = rest[close+1:]
	}
	return name, indices, nil
}
