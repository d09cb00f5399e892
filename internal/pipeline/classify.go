package pipeline

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"kcdex/internal"
	"kcdex/internal/taxonomy"
)

// ClassifyStats counts classification outcomes per item family.
type ClassifyStats struct {
	ArmorMatched     int
	ArmorUnmatched   int
	WeaponsMatched   int
	WeaponsUnmatched int
	DiceStamped      int
	BadgesFilled     int
	BadgesSkipped    int
	Diagnostics      []internal.Diagnostic
}

// ClassifyTypes assigns taxonomy entries to armor, weapon, dice and dice
// badge records. Every armor and weapon record ends up with a type id, the
// undefined sentinel included; no record is dropped here.
func ClassifyTypes(c *internal.Collection, tax taxonomy.Set, log zerolog.Logger) (*internal.Collection, ClassifyStats) {
	out := c.Clone()
	stats := ClassifyStats{}

	classifyArmor(out, tax, log, &stats)
	classifyWeapons(out, tax, log, &stats)
	stampDice(out, tax, log, &stats)
	classifyBadges(out, tax, log, &stats)

	return out, stats
}

// classifyArmor matches each armor record's clothing descriptor against the
// armor type filter lists: a prefix pass across every type first, then a
// substring pass (filters shorter than three characters are skipped there to
// avoid false positives). First matching type in taxonomy order wins.
func classifyArmor(c *internal.Collection, tax taxonomy.Set, log zerolog.Logger, stats *ClassifyStats) {
	items := c.Items(internal.CategoryArmor)
	total := len(items)
	for i := range items {
		item := &items[i]
		descriptor, _ := item.Attrs.Str(internal.AttrClothing)

		matched := matchArmorType(descriptor, tax.ArmorTypes)
		if matched == nil {
			undefined := taxonomy.UndefinedID
			item.Class.ArmorTypeID = &undefined
			item.Class.ArmorTypeName = taxonomy.UndefinedName
			stats.ArmorUnmatched++

			name, _ := item.Attrs.Str(internal.AttrName)
			id, _ := item.Attrs.Str(internal.AttrID)
			log.Debug().Str("item", name).Str("clothing", descriptor).Msg("no armor type matched")
			stats.Diagnostics = append(stats.Diagnostics, internal.Diagnostic{
				Kind:        internal.DiagUnmatchedArmor,
				Category:    internal.CategoryArmor,
				ItemID:      id,
				ItemName:    name,
				DisplayName: item.DisplayName,
				Detail:      "clothing descriptor: " + descriptor,
			})
			continue
		}

		typeID := matched.ID
		item.Class.ArmorTypeID = &typeID
		item.Class.ArmorTypeName = matched.Name
		attachSlotAndCategory(item, matched.UISlot, tax)
		stats.ArmorMatched++
	}
	log.Info().Int("matched", stats.ArmorMatched).Int("total", total).Msg("filled armor types")
}

func matchArmorType(descriptor string, types []taxonomy.ArmorType) *taxonomy.ArmorType {
	if descriptor == "" {
		return nil
	}
	for i := range types {
		for _, filter := range types[i].Filters {
			if strings.HasPrefix(descriptor, filter) {
				return &types[i]
			}
		}
	}
	for i := range types {
		for _, filter := range types[i].Filters {
			if len(filter) < 3 {
				continue
			}
			if strings.Contains(descriptor, filter) {
				return &types[i]
			}
		}
	}
	return nil
}

// classifyWeapons resolves the Class discriminant against the weapon type
// ids by exact string comparison. Unmatched weapons get the same undefined
// sentinel as armor.
func classifyWeapons(c *internal.Collection, tax taxonomy.Set, log zerolog.Logger, stats *ClassifyStats) {
	items := c.Items(internal.CategoryWeapons)
	total := len(items)
	for i := range items {
		item := &items[i]
		classValue, hasClass := item.Attrs.Str(internal.AttrClass)

		var matched *taxonomy.WeaponType
		if hasClass {
			for j := range tax.WeaponTypes {
				if strconv.Itoa(tax.WeaponTypes[j].ID) == classValue {
					matched = &tax.WeaponTypes[j]
					break
				}
			}
		}

		if matched == nil {
			undefined := taxonomy.UndefinedID
			item.Class.WeaponTypeID = &undefined
			item.Class.WeaponTypeName = taxonomy.UndefinedName
			stats.WeaponsUnmatched++

			name, _ := item.Attrs.Str(internal.AttrName)
			id, _ := item.Attrs.Str(internal.AttrID)
			log.Debug().Str("item", name).Str("class", classValue).Msg("no weapon type matched")
			stats.Diagnostics = append(stats.Diagnostics, internal.Diagnostic{
				Kind:        internal.DiagUnmatchedWeapon,
				Category:    internal.CategoryWeapons,
				ItemID:      id,
				ItemName:    name,
				DisplayName: item.DisplayName,
				Detail:      "class discriminant: " + classValue,
			})
			continue
		}

		typeID := matched.ID
		item.Class.WeaponTypeID = &typeID
		item.Class.WeaponTypeName = matched.Name
		attachSlotAndCategory(item, matched.UISlot, tax)
		stats.WeaponsMatched++
	}
	log.Info().Int("matched", stats.WeaponsMatched).Int("total", total).Msg("filled weapon types")
}

// stampDice marks every die record with the static die category; the source
// bucket is already unambiguous.
func stampDice(c *internal.Collection, tax taxonomy.Set, log zerolog.Logger, stats *ClassifyStats) {
	category, ok := tax.CategoryByName("die")
	if !ok {
		log.Warn().Msg("die category missing from taxonomy")
		return
	}
	items := c.Items(internal.CategoryDie)
	for i := range items {
		id := category.ID
		items[i].Class.CategoryID = &id
		items[i].Class.CategoryName = category.Name
		stats.DiceStamped++
	}
	log.Info().Int("count", stats.DiceStamped).Msg("stamped dice category")
}

// classifyBadges renames Type/SubType into namespaced badge ids and resolves
// their display names against the badge taxonomies, defaulting to Unknown.
// Records missing either attribute are left unannotated.
func classifyBadges(c *internal.Collection, tax taxonomy.Set, log zerolog.Logger, stats *ClassifyStats) {
	category, ok := tax.CategoryByName("diceBadge")
	if !ok {
		log.Warn().Msg("diceBadge category missing from taxonomy")
		return
	}

	items := c.Items(internal.CategoryDiceBadge)
	for i := range items {
		item := &items[i]
		typeValue, hasType := item.Attrs.Str(internal.AttrType)
		subTypeValue, hasSubType := item.Attrs.Str(internal.AttrSubType)
		if !hasType || !hasSubType {
			stats.BadgesSkipped++
			name, _ := item.Attrs.Str(internal.AttrName)
			log.Debug().Str("item", name).Msg("badge missing Type or SubType")
			stats.Diagnostics = append(stats.Diagnostics, internal.Diagnostic{
				Kind:        internal.DiagSkippedBadge,
				Category:    internal.CategoryDiceBadge,
				ItemName:    name,
				DisplayName: item.DisplayName,
				Detail:      "missing Type or SubType attribute",
			})
			continue
		}

		delete(item.Attrs, internal.AttrType)
		delete(item.Attrs, internal.AttrSubType)

		item.Class.BadgeTypeID = &typeValue
		item.Class.BadgeTypeName = badgeTypeName(typeValue, tax.BadgeTypes)
		item.Class.BadgeSubTypeID = &subTypeValue
		item.Class.BadgeSubTypeName = badgeSubtypeName(subTypeValue, tax.BadgeSubtypes)

		id := category.ID
		item.Class.CategoryID = &id
		item.Class.CategoryName = category.Name
		stats.BadgesFilled++
	}
	log.Info().Int("filled", stats.BadgesFilled).Int("skipped", stats.BadgesSkipped).Msg("filled dice badge types")
}

func badgeTypeName(id string, types []taxonomy.BadgeType) string {
	for _, t := range types {
		if strconv.Itoa(t.ID) == id {
			return t.Name
		}
	}
	return "Unknown"
}

func badgeSubtypeName(id string, subtypes []taxonomy.BadgeSubtype) string {
	for _, t := range subtypes {
		if strconv.Itoa(t.ID) == id {
			return t.Name
		}
	}
	return "Unknown"
}

// attachSlotAndCategory performs the two-hop denormalization: armor or
// weapon type to UI slot, UI slot to category.
func attachSlotAndCategory(item *internal.Item, slotID int, tax taxonomy.Set) {
	slot, ok := tax.UISlotByID(slotID)
	if !ok {
		return
	}
	id := slot.ID
	item.Class.UISlotID = &id
	item.Class.UISlotName = slot.Name

	category, ok := tax.CategoryByID(slot.UICategory)
	if !ok {
		return
	}
	catID := category.ID
	item.Class.CategoryID = &catID
	item.Class.CategoryName = category.Name
}
