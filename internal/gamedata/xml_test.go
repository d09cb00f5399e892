package gamedata

import (
	"strings"
	"testing"

	"kcdex/internal"
)

const itemXML = `<?xml version="1.0" encoding="us-ascii"?>
<database name="item" xmlns="http://www.w3.org/2001/XMLSchema">
  <ItemClasses version="3">
    <Armor Id="a1" Name="cuirass" UIName="ui_cuirass" Clothing="PlateTorso"/>
    <Armor Id="a2" Name="hood" UIName="ui_hood" Clothing="HoodOpen">
      <Slots><Slot Name="head"/></Slots>
    </Armor>
    <MeleeWeapon Id="w1" Name="sword" Class="4"/>
    <ItemAlias Id="x1" Name="sword_gold" SourceItemId="w1"/>
  </ItemClasses>
</database>`

func TestParseItemsInto(t *testing.T) {
	c := internal.NewCollection()
	if err := ParseItemsInto(c, strings.NewReader(itemXML), nil); err != nil {
		t.Fatal(err)
	}

	if got := len(c.Items("Armor")); got != 2 {
		t.Fatalf("armor records: got %d, want 2", got)
	}
	if got := len(c.Items("MeleeWeapon")); got != 1 {
		t.Fatalf("melee records: got %d, want 1", got)
	}
	if got := len(c.Items("ItemAlias")); got != 1 {
		t.Fatalf("alias records: got %d, want 1", got)
	}

	first := c.Items("Armor")[0]
	if v, _ := first.Attrs.Str("@Name"); v != "cuirass" {
		t.Fatalf("attribute marker lost: %+v", first.Attrs)
	}
	if v, _ := first.Attrs.Str("@Clothing"); v != "PlateTorso" {
		t.Fatalf("clothing attribute: %+v", first.Attrs)
	}

	// Nested child elements do not become records.
	if c.Has("Slots") || c.Has("Slot") {
		t.Fatal("nested elements leaked into collection")
	}
}

func TestParseItemsIntoRetag(t *testing.T) {
	c := internal.NewCollection()
	err := ParseItemsInto(c, strings.NewReader(itemXML), map[string]string{"Armor": "Horse"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Has("Armor") {
		t.Fatal("Armor bucket must be retagged")
	}
	if got := len(c.Items("Horse")); got != 2 {
		t.Fatalf("horse records: got %d, want 2", got)
	}
}

func TestParseItemsIntoBadXML(t *testing.T) {
	c := internal.NewCollection()
	if err := ParseItemsInto(c, strings.NewReader("<database><ItemClasses><Armor"), nil); err == nil {
		t.Fatal("truncated xml must fail")
	}
}
