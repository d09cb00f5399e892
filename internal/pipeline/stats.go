package pipeline

import (
	"sort"

	"github.com/rs/zerolog"

	"kcdex/internal"
	"kcdex/internal/util"
)

// Source attributes consumed by the stat projector.
const (
	attrWeight          = "Weight"
	attrPrice           = "Price"
	attrConspicuousness = "Conspicuousness"
	attrNoise           = "Noise"
	attrVisibility      = "Visibility"
	attrAttack          = "Attack"
	attrAttackModSlash  = "AttackModSlash"
	attrAttackModSmash  = "AttackModSmash"
	attrAttackModStab   = "AttackModStab"
	attrSideWeights     = "SideWeights"
	attrSideValues      = "SideValues"
)

// ProjectStats flattens every item into its terminal projection and returns
// the full output array sorted by display name (ordinal, case-sensitive) so
// downstream diffs are stable.
func ProjectStats(c *internal.Collection, log zerolog.Logger) []internal.ProcessedItem {
	out := make([]internal.ProcessedItem, 0, c.Len())
	for _, category := range c.Categories() {
		for _, it := range c.Items(category) {
			out = append(out, ProjectItem(it))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayName < out[j].DisplayName
	})

	log.Info().Int("count", len(out)).Msg("projected item stats")
	return out
}

// ProjectItem maps one classified item to its flat processed record. Pure;
// the input is never modified.
func ProjectItem(it internal.Item) internal.ProcessedItem {
	id, _ := it.Attrs.Str(internal.AttrID)
	name, _ := it.Attrs.Str(internal.AttrName)
	iconID, _ := it.Attrs.Str(internal.AttrIconID)

	out := internal.ProcessedItem{
		ID:               id,
		Name:             name,
		DisplayName:      it.DisplayName,
		IconID:           iconID,
		CategoryID:       it.Class.CategoryID,
		CategoryName:     it.Class.CategoryName,
		UISlotID:         it.Class.UISlotID,
		UISlotName:       it.Class.UISlotName,
		ArmorTypeID:      it.Class.ArmorTypeID,
		ArmorTypeName:    it.Class.ArmorTypeName,
		WeaponTypeID:     it.Class.WeaponTypeID,
		WeaponTypeName:   it.Class.WeaponTypeName,
		BadgeTypeID:      it.Class.BadgeTypeID,
		BadgeTypeName:    it.Class.BadgeTypeName,
		BadgeSubTypeID:   it.Class.BadgeSubTypeID,
		BadgeSubTypeName: it.Class.BadgeSubTypeName,
		Stats:            projectStats(it.Attrs),
	}
	return out
}

func projectStats(attrs internal.Record) *internal.Stats {
	stats := internal.Stats{}
	present := false

	if v, ok := attrs[attrWeight]; ok {
		// One decimal place: scale up, round half up, scale back.
		weight := util.RoundHalfUp(util.SafeFloat(v)*10) / 10
		stats.Weight = &weight
		present = true
	}
	if v, ok := attrs[attrPrice]; ok {
		price := int(util.RoundHalfUp(util.SafeFloat(v) * 0.1))
		stats.Price = &price
		present = true
	}
	if v, ok := attrs[attrConspicuousness]; ok {
		c := int(util.RoundHalfUp(50 + util.SafeFloat(v)*50))
		stats.Conspicuousness = &c
		present = true
	}
	if v, ok := attrs[attrNoise]; ok {
		n := int(util.RoundHalfUp(util.SafeFloat(v) * 100))
		stats.Noise = &n
		present = true
	}
	if v, ok := attrs[attrVisibility]; ok {
		vis := int(util.RoundHalfUp(50 + util.SafeFloat(v)*50))
		stats.Visibility = &vis
		present = true
	}

	attackRaw, hasAttack := attrs[attrAttack]
	if hasAttack {
		attack := util.SafeInt(attackRaw)
		stats.Attack = &attack
		present = true
	}
	attackBase := util.SafeFloat(attackRaw)

	derive := func(modAttr string, modOut **float64, derivedOut **int) {
		v, ok := attrs[modAttr]
		if !ok {
			return
		}
		mod := util.SafeFloat(v)
		*modOut = &mod
		present = true
		if hasAttack {
			derived := int(util.RoundHalfUp(attackBase * mod))
			*derivedOut = &derived
		}
	}
	derive(attrAttackModSlash, &stats.AttackModSlash, &stats.AttackSlash)
	derive(attrAttackModSmash, &stats.AttackModSmash, &stats.AttackSmash)
	derive(attrAttackModStab, &stats.AttackModStab, &stats.AttackStab)

	if v, ok := attrs[attrSideWeights]; ok {
		stats.SideWeights = util.SafeIntSlice(v)
		present = true
	}
	if v, ok := attrs[attrSideValues]; ok {
		stats.SideValues = util.SafeIntSlice(v)
		present = true
	}

	if !present {
		return nil
	}
	return &stats
}
