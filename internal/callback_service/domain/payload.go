package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FieldKind selects the coercion applied to a resolved field value.
type FieldKind int

const (
	KindString FieldKind = iota
	KindInt
	KindFloat
	KindBool
	KindStringSlice
)

// FieldSpec declares how one logical field is extracted from a raw callback
// body. Paths are probed in order; the first path whose value is present and
// non-null wins. The gateway is inconsistent about nesting (flat at the root,
// under "data", or under "data.message") and about key casing
// (transactionID vs transaction_id), so every known variant is listed here
// once instead of being re-handled by each response type.
type FieldSpec struct {
	Name    string
	Paths   [][]string
	Kind    FieldKind
	Default any
}

// Payload is a normalized field-name to value mapping produced by Parse.
// It is built once per inbound callback and treated as immutable afterwards.
type Payload map[string]any

// Parse extracts every declared field from raw. It is a pure function: it
// never fails and never mutates raw. Absent or uncoercible values fall back
// to the spec default, or the kind's zero value when no default is declared.
func Parse(raw map[string]any, specs []FieldSpec) Payload {
	out := make(Payload, len(specs))
	for _, spec := range specs {
		var value any
		for _, path := range spec.Paths {
			if v := lookupPath(raw, path); v != nil {
				value = v
				break
			}
		}
		if value == nil {
			out[spec.Name] = defaultFor(spec)
			continue
		}
		out[spec.Name] = coerce(value, spec.Kind)
	}
	return out
}

// ParseBytes decodes a JSON body and parses it. A body that is not a JSON
// object (HTML error pages, empty bodies, truncated payloads) yields the
// all-defaults payload: webhook handling must never reject input.
func ParseBytes(body []byte, specs []FieldSpec) Payload {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		raw = nil
	}
	return Parse(raw, specs)
}

func lookupPath(raw map[string]any, path []string) any {
	var current any = raw
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[key]
		if !ok || current == nil {
			return nil
		}
	}
	return current
}

func defaultFor(spec FieldSpec) any {
	if spec.Default != nil {
		return spec.Default
	}
	switch spec.Kind {
	case KindInt:
		return 0
	case KindFloat:
		return 0.0
	case KindBool:
		return false
	case KindStringSlice:
		return []string{}
	default:
		return ""
	}
}

func coerce(v any, kind FieldKind) any {
	switch kind {
	case KindString:
		return coerceString(v)
	case KindInt:
		return coerceInt(v)
	case KindFloat:
		return coerceFloat(v)
	case KindBool:
		return coerceBool(v)
	case KindStringSlice:
		return coerceStringSlice(v)
	default:
		return coerceString(v)
	}
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; render integral values without
		// a trailing ".0" so IDs survive the round trip.
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func coerceInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return n
	case bool:
		if t {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func coerceFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	case bool:
		if t {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func coerceBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(t, "true") || t == "1"
	case float64:
		return t != 0
	default:
		return false
	}
}

// coerceStringSlice wraps a scalar source value in a single-element slice.
// The gateway sometimes sends a bare string where a list is documented
// (phone-number lists in particular).
func coerceStringSlice(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if item == nil {
				continue
			}
			out = append(out, coerceString(item))
		}
		return out
	default:
		s := coerceString(v)
		if s == "" {
			return []string{}
		}
		return []string{s}
	}
}

// GetString returns the named field as a string, or "" if absent or of
// another kind.
func (p Payload) GetString(name string) string {
	s, _ := p[name].(string)
	return s
}

func (p Payload) GetInt(name string) int {
	n, _ := p[name].(int)
	return n
}

func (p Payload) GetFloat(name string) float64 {
	f, _ := p[name].(float64)
	return f
}

func (p Payload) GetBool(name string) bool {
	b, _ := p[name].(bool)
	return b
}

func (p Payload) GetStrings(name string) []string {
	s, _ := p[name].([]string)
	return s
}
