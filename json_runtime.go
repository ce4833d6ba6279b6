package nbt

import (
	stdjson "encoding/json"
	"fmt"
)

// Unmarshal decodes a classic document into a Go value using JSON semantics:
// compound entries map to struct fields or map keys by name.
func Unmarshal(data []byte, out any) error {
	doc, err := Decode(data)
	if err != nil {
		return err
	}
	return UnmarshalValue(doc.Root, out)
}

// UnmarshalValue decodes v into a Go value using JSON semantics.
func UnmarshalValue(v Value, out any) error {
	if out == nil {
		return fmt.Errorf("nbt: nil target")
	}
	data, err := stdjson.Marshal(jsonSafe(ToAny(v)))
	if err != nil {
		return err
	}
	return stdjson.Unmarshal(data, out)
}

// jsonSafe replaces non-finite floats, which encoding/json rejects, with nil.
func jsonSafe(v any) any {
	switch x := v.(type) {
	case float32:
		if !isFinite(float64(x)) {
			return nil
		}
		return x
	case float64:
		if !isFinite(x) {
			return nil
		}
		return x
	case []any:
		for i := range x {
			x[i] = jsonSafe(x[i])
		}
		return x
	case map[string]any:
		for k := range x {
			x[k] = jsonSafe(x[k])
		}
		return x
	default:
		return v
	}
}
