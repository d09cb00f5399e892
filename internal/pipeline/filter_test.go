package pipeline

import (
	"testing"

	"github.com/rs/zerolog"

	"kcdex/internal"
)

func TestFilterItemsRules(t *testing.T) {
	c := internal.NewCollection()
	c.Set("Weapons", []internal.Item{
		{Attrs: internal.Record{"Name": "sword"}},
		{Attrs: internal.Record{"Name": "sword_DUEL"}},
		{Attrs: internal.Record{"Name": "cone", "IconId": "trafficCone_01"}},
		{Attrs: internal.Record{"Name": "warn", "UIName": "ui_warning_item"}},
		{Attrs: internal.Record{"Name": "subclassed", "SubClass": "5"}},
	})

	out, stats := FilterItems(c, DefaultFilterRules(), zerolog.Nop())

	if len(out.Items("Weapons")) != 1 {
		t.Fatalf("expected 1 survivor, got %d", len(out.Items("Weapons")))
	}
	if stats.ByName != 1 || stats.ByIcon != 1 || stats.ByUIName != 1 || stats.ByKeyValue != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.Total() != 4 || len(stats.Diagnostics) != 4 {
		t.Fatalf("total/diagnostics mismatch: %+v", stats)
	}
}

func TestFilterItemsPrecedence(t *testing.T) {
	// Matches both the key/value rule and the name rule; only the key/value
	// counter may move.
	c := internal.NewCollection()
	c.Set("Weapons", []internal.Item{
		{Attrs: internal.Record{"Name": "sword_broken", "SubClass": "5"}},
	})

	_, stats := FilterItems(c, DefaultFilterRules(), zerolog.Nop())

	if stats.ByKeyValue != 1 || stats.ByName != 0 {
		t.Fatalf("precedence violated: %+v", stats)
	}
	if stats.Total() != 1 {
		t.Fatalf("record double-counted: %+v", stats)
	}
}

func TestFilterItemsKeepsNamelessRecords(t *testing.T) {
	c := internal.NewCollection()
	c.Set("Armor", []internal.Item{
		{Attrs: internal.Record{"IconId": "trafficCone_01"}},
	})

	out, stats := FilterItems(c, DefaultFilterRules(), zerolog.Nop())

	if len(out.Items("Armor")) != 1 {
		t.Fatal("record without Name must be retained")
	}
	if stats.Total() != 0 {
		t.Fatalf("nothing should be counted: %+v", stats)
	}
}

func TestFilterItemsCaseInsensitive(t *testing.T) {
	c := internal.NewCollection()
	c.Set("Weapons", []internal.Item{
		{Attrs: internal.Record{"Name": "Sword_Broken"}},
	})

	out, _ := FilterItems(c, DefaultFilterRules(), zerolog.Nop())
	if len(out.Items("Weapons")) != 0 {
		t.Fatal("name matching must be case-insensitive")
	}
}
