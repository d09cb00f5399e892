package pipeline

import (
	"testing"

	"github.com/rs/zerolog"

	"kcdex/internal"
	"kcdex/internal/taxonomy"
)

// testTaxonomy is a small synthetic set so the matching rules are visible in
// the assertions, independent of the shipped tables.
func testTaxonomy() taxonomy.Set {
	return taxonomy.Set{
		ArmorTypes: []taxonomy.ArmorType{
			{ID: 0, Name: "headCap", UISlot: 0, Filters: []string{"Cap"}},
			{ID: 1, Name: "headHood", UISlot: 2, Filters: []string{"Hood"}},
			{ID: 2, Name: "horseTorso", UISlot: 20, Filters: []string{"Caparison"}},
		},
		WeaponTypes: []taxonomy.WeaponType{
			{ID: 1, Name: "sword", Kind: "MeleeWeapon", UISlot: 23},
			{ID: 9, Name: "bow", Kind: "MissileWeapon", UISlot: 24},
		},
		UISlots: []taxonomy.UISlot{
			{ID: 0, Name: "cap", UICategory: 0},
			{ID: 2, Name: "hood", UICategory: 0},
			{ID: 20, Name: "horseTorso", UICategory: 8},
			{ID: 23, Name: "weaponMelee", UICategory: 9},
			{ID: 24, Name: "weaponRanged", UICategory: 10},
		},
		Categories: []taxonomy.Category{
			{ID: 0, Name: "head"},
			{ID: 8, Name: "horse"},
			{ID: 9, Name: "melee"},
			{ID: 10, Name: "ranged"},
			{ID: 12, Name: "die"},
			{ID: 13, Name: "diceBadge"},
		},
		BadgeTypes: []taxonomy.BadgeType{
			{ID: 0, Name: "plumb"},
			{ID: 2, Name: "gold"},
		},
		BadgeSubtypes: []taxonomy.BadgeSubtype{
			{ID: 4, Name: "Antibust"},
		},
	}
}

func TestClassifyArmorPrefixBeatsSubstring(t *testing.T) {
	// "CaparisonHood" prefix-matches horseTorso; the prefix pass covers
	// every type before the substring pass may hand the record to headHood,
	// even though headHood comes earlier in taxonomy order.
	tax := taxonomy.Set{
		ArmorTypes: []taxonomy.ArmorType{
			{ID: 0, Name: "headHood", UISlot: 2, Filters: []string{"Hood"}},
			{ID: 1, Name: "horseTorso", UISlot: 20, Filters: []string{"Caparison"}},
		},
		UISlots:    []taxonomy.UISlot{{ID: 2, Name: "hood", UICategory: 0}, {ID: 20, Name: "horseTorso", UICategory: 8}},
		Categories: []taxonomy.Category{{ID: 0, Name: "head"}, {ID: 8, Name: "horse"}},
	}
	c := internal.NewCollection()
	c.Set(internal.CategoryArmor, []internal.Item{
		{Attrs: internal.Record{"Name": "barding", "Clothing": "CaparisonHood"}},
	})

	out, stats := ClassifyTypes(c, tax, zerolog.Nop())

	got := out.Items(internal.CategoryArmor)[0].Class
	if got.ArmorTypeID == nil || *got.ArmorTypeID != 1 || got.ArmorTypeName != "horseTorso" {
		t.Fatalf("unexpected classification: %+v", got)
	}
	if stats.ArmorMatched != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestClassifyArmorSubstringFallback(t *testing.T) {
	c := internal.NewCollection()
	c.Set(internal.CategoryArmor, []internal.Item{
		{Attrs: internal.Record{"Name": "monk attire", "Clothing": "F_MonkHoodLong"}},
	})

	out, _ := ClassifyTypes(c, testTaxonomy(), zerolog.Nop())

	got := out.Items(internal.CategoryArmor)[0].Class
	if got.ArmorTypeID == nil || *got.ArmorTypeID != 1 {
		t.Fatalf("substring fallback failed: %+v", got)
	}
}

func TestClassifyArmorTwoHopJoin(t *testing.T) {
	c := internal.NewCollection()
	c.Set(internal.CategoryArmor, []internal.Item{
		{Attrs: internal.Record{"Name": "cap", "Clothing": "CapPlain"}},
	})

	out, _ := ClassifyTypes(c, testTaxonomy(), zerolog.Nop())

	got := out.Items(internal.CategoryArmor)[0].Class
	if got.UISlotID == nil || *got.UISlotID != 0 || got.UISlotName != "cap" {
		t.Fatalf("ui slot join failed: %+v", got)
	}
	if got.CategoryID == nil || *got.CategoryID != 0 || got.CategoryName != "head" {
		t.Fatalf("category join failed: %+v", got)
	}
}

func TestClassifyArmorUnmatchedGetsSentinel(t *testing.T) {
	c := internal.NewCollection()
	c.Set(internal.CategoryArmor, []internal.Item{
		{Attrs: internal.Record{"Name": "mystery", "Clothing": "UnknownThing"}},
		{Attrs: internal.Record{"Name": "no_descriptor"}},
	})

	out, stats := ClassifyTypes(c, testTaxonomy(), zerolog.Nop())

	for _, it := range out.Items(internal.CategoryArmor) {
		if it.Class.ArmorTypeID == nil {
			t.Fatalf("armor record left without type id: %+v", it)
		}
		if *it.Class.ArmorTypeID != taxonomy.UndefinedID || it.Class.ArmorTypeName != taxonomy.UndefinedName {
			t.Fatalf("expected undefined sentinel, got %+v", it.Class)
		}
	}
	if stats.ArmorUnmatched != 2 || len(stats.Diagnostics) != 2 {
		t.Fatalf("unmatched diagnostics missing: %+v", stats)
	}
}

func TestClassifyArmorShortFiltersSkippedInSubstringPass(t *testing.T) {
	tax := testTaxonomy()
	tax.ArmorTypes = append(tax.ArmorTypes, taxonomy.ArmorType{
		ID: 3, Name: "shorty", UISlot: 0, Filters: []string{"Xy"},
	})
	c := internal.NewCollection()
	c.Set(internal.CategoryArmor, []internal.Item{
		{Attrs: internal.Record{"Name": "odd", "Clothing": "AbcXyz"}},
	})

	out, _ := ClassifyTypes(c, tax, zerolog.Nop())

	got := out.Items(internal.CategoryArmor)[0].Class
	if got.ArmorTypeID == nil || *got.ArmorTypeID != taxonomy.UndefinedID {
		t.Fatalf("two-character filter must not substring-match: %+v", got)
	}
}

func TestClassifyWeapons(t *testing.T) {
	c := internal.NewCollection()
	c.Set(internal.CategoryWeapons, []internal.Item{
		{Attrs: internal.Record{"Name": "longbow", "Class": "9"}},
		{Attrs: internal.Record{"Name": "oddity", "Class": "99"}},
		{Attrs: internal.Record{"Name": "classless"}},
	})

	out, stats := ClassifyTypes(c, testTaxonomy(), zerolog.Nop())

	items := out.Items(internal.CategoryWeapons)
	bow := items[0].Class
	if bow.WeaponTypeID == nil || *bow.WeaponTypeID != 9 || bow.WeaponTypeName != "bow" {
		t.Fatalf("bow not matched: %+v", bow)
	}
	if bow.UISlotName != "weaponRanged" || bow.CategoryName != "ranged" {
		t.Fatalf("bow join failed: %+v", bow)
	}

	for _, it := range items[1:] {
		if it.Class.WeaponTypeID == nil || *it.Class.WeaponTypeID != taxonomy.UndefinedID {
			t.Fatalf("unmatched weapon must get undefined sentinel: %+v", it.Class)
		}
	}
	if stats.WeaponsMatched != 1 || stats.WeaponsUnmatched != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestClassifyDice(t *testing.T) {
	c := internal.NewCollection()
	c.Set(internal.CategoryDie, []internal.Item{
		{Attrs: internal.Record{"Name": "die_lucky"}},
		{Attrs: internal.Record{"Name": "die_loaded"}},
	})

	out, stats := ClassifyTypes(c, testTaxonomy(), zerolog.Nop())

	for _, it := range out.Items(internal.CategoryDie) {
		if it.Class.CategoryID == nil || *it.Class.CategoryID != 12 || it.Class.CategoryName != "die" {
			t.Fatalf("die not stamped: %+v", it.Class)
		}
	}
	if stats.DiceStamped != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestClassifyBadges(t *testing.T) {
	c := internal.NewCollection()
	c.Set(internal.CategoryDiceBadge, []internal.Item{
		{Attrs: internal.Record{"Name": "badge_gold", "Type": "2", "SubType": "4"}},
		{Attrs: internal.Record{"Name": "badge_odd", "Type": "7", "SubType": "77"}},
		{Attrs: internal.Record{"Name": "badge_bare", "Type": "2"}},
	})

	out, stats := ClassifyTypes(c, testTaxonomy(), zerolog.Nop())

	items := out.Items(internal.CategoryDiceBadge)

	gold := items[0].Class
	if gold.BadgeTypeID == nil || *gold.BadgeTypeID != "2" || gold.BadgeTypeName != "gold" {
		t.Fatalf("badge type not resolved: %+v", gold)
	}
	if gold.BadgeSubTypeID == nil || *gold.BadgeSubTypeID != "4" || gold.BadgeSubTypeName != "Antibust" {
		t.Fatalf("badge subtype not resolved: %+v", gold)
	}
	if gold.CategoryID == nil || *gold.CategoryID != 13 {
		t.Fatalf("badge category missing: %+v", gold)
	}
	if items[0].Attrs.Has("Type") || items[0].Attrs.Has("SubType") {
		t.Fatal("Type/SubType should be renamed away")
	}

	odd := items[1].Class
	if odd.BadgeTypeName != "Unknown" || odd.BadgeSubTypeName != "Unknown" {
		t.Fatalf("unmatched badge ids must default to Unknown: %+v", odd)
	}

	bare := items[2].Class
	if bare.BadgeTypeID != nil || bare.CategoryID != nil {
		t.Fatalf("badge missing SubType must stay unannotated: %+v", bare)
	}
	if stats.BadgesFilled != 2 || stats.BadgesSkipped != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
