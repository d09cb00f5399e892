package pipeline

import (
	"reflect"
	"testing"

	"kcdex/internal"
)

func TestNormalizeKeysStripsMarkers(t *testing.T) {
	input := map[string]any{
		"@Id":   "a1",
		"@Name": "sword",
		"@Nested": map[string]any{
			"@Value": "1",
		},
		"@List": []any{
			map[string]any{"@Inner": "x"},
			"scalar",
		},
		"Plain": "kept",
	}

	want := map[string]any{
		"Id":   "a1",
		"Name": "sword",
		"Nested": map[string]any{
			"Value": "1",
		},
		"List": []any{
			map[string]any{"Inner": "x"},
			"scalar",
		},
		"Plain": "kept",
	}

	got := NormalizeKeys(input)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestNormalizeKeysIdempotent(t *testing.T) {
	input := map[string]any{"@Id": "a1", "@Nested": map[string]any{"@K": "v"}}
	once := NormalizeKeys(input)
	twice := NormalizeKeys(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("not idempotent: %#v vs %#v", once, twice)
	}
}

func TestNormalizeKeysPassesScalarsThrough(t *testing.T) {
	for _, v := range []any{"text", 42, 1.5, true, nil} {
		if got := NormalizeKeys(v); !reflect.DeepEqual(got, v) {
			t.Fatalf("scalar %v changed to %v", v, got)
		}
	}
}

func TestStripKeyMarkersDoesNotMutateInput(t *testing.T) {
	c := internal.NewCollection()
	c.Set("Armor", []internal.Item{{Attrs: internal.Record{"@Id": "a1"}}})

	out := StripKeyMarkers(c)

	if _, ok := c.Items("Armor")[0].Attrs["@Id"]; !ok {
		t.Fatal("input collection was mutated")
	}
	if _, ok := out.Items("Armor")[0].Attrs["Id"]; !ok {
		t.Fatalf("output not normalized: %#v", out.Items("Armor")[0].Attrs)
	}
}
