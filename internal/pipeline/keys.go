package pipeline

import (
	"strings"

	"kcdex/internal"
)

// NormalizeKeys returns a structurally identical copy of an arbitrarily
// nested value with the leading "@" marker stripped from every mapping key.
// Idempotent; scalars and unknown types pass through unchanged.
func NormalizeKeys(v any) any {
	switch t := v.(type) {
	case internal.Record:
		return internal.Record(normalizeMap(t))
	case map[string]any:
		return normalizeMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = NormalizeKeys(e)
		}
		return out
	default:
		return v
	}
}

func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[strings.TrimLeft(k, "@")] = NormalizeKeys(v)
	}
	return out
}

// StripKeyMarkers applies NormalizeKeys to every record in the collection
// and returns a new collection.
func StripKeyMarkers(c *internal.Collection) *internal.Collection {
	out := internal.NewCollection()
	for _, category := range c.Categories() {
		items := c.Items(category)
		copied := make([]internal.Item, len(items))
		for i, it := range items {
			next := it.Clone()
			next.Attrs = NormalizeKeys(next.Attrs).(internal.Record)
			copied[i] = next
		}
		out.Set(category, copied)
	}
	return out
}
