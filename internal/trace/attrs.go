package trace

import (
	"encoding/json"
	"fmt"
	"sort"
)

// AttrKind discriminates the closed set of attribute value shapes.
type AttrKind string

const (
	AttrString AttrKind = "string"
	AttrNumber AttrKind = "number"
	AttrBool   AttrKind = "bool"
	AttrMap    AttrKind = "map"
)

// AttrValue is a normalized, order-independent attribute value.
// Structured arguments and span attributes arrive as open-ended
// key/value maps; normalizing them into this variant keeps deep
// equality and overlap scoring well-defined without reflection.
type AttrValue struct {
	Kind AttrKind
	Str  string
	Num  float64
	Bool bool
	Map  map[string]AttrValue
}

func StringValue(s string) AttrValue  { return AttrValue{Kind: AttrString, Str: s} }
func NumberValue(f float64) AttrValue { return AttrValue{Kind: AttrNumber, Num: f} }
func BoolValue(b bool) AttrValue      { return AttrValue{Kind: AttrBool, Bool: b} }

func MapValue(m map[string]AttrValue) AttrValue {
	return AttrValue{Kind: AttrMap, Map: m}
}

// Normalize converts a decoded-JSON value into an AttrValue.
// Values outside the closed variant fall back to their string
// rendering so they still compare by equality instead of failing.
func Normalize(v any) AttrValue {
	switch t := v.(type) {
	case nil:
		return StringValue("")
	case string:
		return StringValue(t)
	case bool:
		return BoolValue(t)
	case float64:
		return NumberValue(t)
	case int:
		return NumberValue(float64(t))
	case int64:
		return NumberValue(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return StringValue(t.String())
		}
		return NumberValue(f)
	case map[string]any:
		return MapValue(NormalizeMap(t))
	case []any:
		// Lists are normalized as an index-keyed map so nested deep
		// equality keeps working over the closed variant.
		m := make(map[string]AttrValue, len(t))
		for i, el := range t {
			m[fmt.Sprintf("%d", i)] = Normalize(el)
		}
		return MapValue(m)
	default:
		return StringValue(fmt.Sprintf("%v", t))
	}
}

// NormalizeMap converts a decoded-JSON object into normalized attributes.
func NormalizeMap(m map[string]any) map[string]AttrValue {
	if m == nil {
		return nil
	}
	out := make(map[string]AttrValue, len(m))
	for k, v := range m {
		out[k] = Normalize(v)
	}
	return out
}

// Equal reports deep structural equality of two attribute values.
func (v AttrValue) Equal(o AttrValue) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case AttrString:
		return v.Str == o.Str
	case AttrNumber:
		return v.Num == o.Num
	case AttrBool:
		return v.Bool == o.Bool
	case AttrMap:
		if len(v.Map) != len(o.Map) {
			return false
		}
		for k, a := range v.Map {
			b, ok := o.Map[k]
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	}
	return false
}

// MarshalJSON renders the value as its plain JSON form.
func (v AttrValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case AttrString:
		return json.Marshal(v.Str)
	case AttrNumber:
		return json.Marshal(v.Num)
	case AttrBool:
		return json.Marshal(v.Bool)
	case AttrMap:
		// Deterministic key order for byte-identical output.
		keys := make([]string, 0, len(v.Map))
		for k := range v.Map {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf := []byte{'{'}
		for i, k := range keys {
			if i > 0 {
				buf = append(buf, ',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			vb, err := json.Marshal(v.Map[k])
			if err != nil {
				return nil, err
			}
			buf = append(buf, kb...)
			buf = append(buf, ':')
			buf = append(buf, vb...)
		}
		return append(buf, '}'), nil
	}
	return json.Marshal(nil)
}

// UnmarshalJSON accepts any plain JSON value and normalizes it.
func (v *AttrValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = Normalize(raw)
	return nil
}
