package overlay

import (
	"math"
	"strconv"
)

// animateKey marks a model as animating: template text changes driven by it
// trigger a transient highlight on the affected items. The key itself does
// not become a model field.
const animateKey = "__animate"

// Kind discriminates the variants of a Value.
type Kind uint8

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindModel
	KindList
)

// Value is one node of a model tree: a scalar, a nested model, or a list of
// values. The zero Value is the empty string.
type Value struct {
	kind  Kind
	str   string
	num   float64
	b     bool
	model *Model
	list  []Value
}

// String wraps a string scalar.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps a numeric scalar.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool wraps a boolean scalar.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Nested wraps a sub-model.
func Nested(m *Model) Value { return Value{kind: KindModel, model: m} }

// List wraps an ordered list of values.
func List(vs ...Value) Value { return Value{kind: KindList, list: vs} }

// Kind reports the variant held by the value.
func (v Value) Kind() Kind { return v.kind }

// Format renders a scalar value the way templates display it. Whole numbers
// print without a decimal point. Nested models and lists format as an empty
// string; templates are expected to address their fields.
func (v Value) Format() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if v.num == math.Trunc(v.num) && math.Abs(v.num) < 1e15 {
			return strconv.FormatInt(int64(v.num), 10)
		}
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return ""
}

// Model is a structured data tree bound to a group name and consumed by
// template evaluation of that group's text primitives. At most one model is
// bound per group name; rebinding replaces it.
type Model struct {
	fields  map[string]Value
	animate bool
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{fields: make(map[string]Value)}
}

// ModelFromMap converts loosely typed wire data into a model tree: maps
// become nested models, lists become value lists, scalars carry over. The
// animate marker key sets the model's animate flag instead of becoming a
// field.
func ModelFromMap(m map[string]any) *Model {
	out := NewModel()
	for k, v := range m {
		if k == animateKey {
			out.animate = true
			continue
		}
		out.fields[k] = valueFrom(v)
	}
	return out
}

func valueFrom(v any) Value {
	switch x := v.(type) {
	case nil:
		return String("")
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case map[string]any:
		return Nested(ModelFromMap(x))
	case []any:
		list := make([]Value, len(x))
		for i, item := range x {
			list[i] = valueFrom(item)
		}
		return Value{kind: KindList, list: list}
	}
	return String("")
}

// Set binds a field on the model, replacing any previous value.
func (m *Model) Set(key string, v Value) {
	m.fields[key] = v
}

// Get returns the named field.
func (m *Model) Get(key string) (Value, bool) {
	v, ok := m.fields[key]
	return v, ok
}

// Animate reports whether this model requests highlight animations on
// template text changes.
func (m *Model) Animate() bool { return m.animate }

// SetAnimate toggles the animation request.
func (m *Model) SetAnimate(on bool) { m.animate = on }
