// Package crud is the generic entity-management layer behind every list
// screen: an optimistic store, an operations adapter, form and modal state,
// and a search/filter/sort view.
package crud

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Entity is anything with a stable unique identifier.
type Entity interface {
	EntityID() string
}

// Patch is a partial set of fields keyed by their JSON name.
type Patch map[string]any

// Record is a dynamically shaped entity. The id lives under the "id" key and
// may be a string or a number.
type Record map[string]any

// EntityID returns the record id formatted as a string.
func (r Record) EntityID() string {
	return FormatID(r["id"])
}

// FormatID renders string and numeric ids the same way JSON ids arrive.
func FormatID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case json.Number:
		return id.String()
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return fmt.Sprint(id)
	}
}

// --- Field access ---

// Fields returns the JSON field map of an entity.
func Fields(v any) (map[string]any, error) {
	if r, ok := v.(Record); ok {
		out := make(map[string]any, len(r))
		for k, val := range r {
			out[k] = normalize(val)
		}
		return out, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal entity: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("entity is not an object: %w", err)
	}
	return out, nil
}

// FieldValue returns a single field, or nil when the entity has no such key.
func FieldValue(v any, key string) any {
	fields, err := Fields(v)
	if err != nil {
		return nil
	}
	return fields[key]
}

// Merge returns a copy of v with the patch applied on top of its fields.
func Merge[T any](v T, patch Patch) (T, error) {
	fields, err := Fields(v)
	if err != nil {
		return v, err
	}
	for k, val := range patch {
		fields[k] = val
	}
	return FromFields[T](fields)
}

// FromFields decodes a field map into T.
func FromFields[T any](fields map[string]any) (T, error) {
	var out T
	if _, ok := any(out).(Record); ok {
		rec := make(Record, len(fields))
		for k, v := range fields {
			rec[k] = v
		}
		return any(rec).(T), nil
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return out, fmt.Errorf("marshal fields: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode entity: %w", err)
	}
	return out, nil
}

// normalize maps Go numeric kinds onto float64 so records built in code and
// records decoded from JSON compare the same way.
func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	}
	return v
}

// Stringify converts a field value to its display string. Absent and null
// values become the empty string.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case json.Number:
		return val.String()
	case []any:
		parts := make([]string, len(val))
		for i, p := range val {
			parts[i] = Stringify(p)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	default:
		return fmt.Sprint(val)
	}
}
