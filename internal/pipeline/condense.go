package pipeline

import (
	"github.com/rs/zerolog"

	"kcdex/internal"
)

// CondenseRule folds several source categories into one target category.
type CondenseRule struct {
	Target  string
	Sources []string
}

// DefaultCondenseRules fold the armor sub-kinds into Armor and the two
// weapon kinds into Weapons.
func DefaultCondenseRules() []CondenseRule {
	return []CondenseRule{
		{Target: internal.CategoryArmor, Sources: []string{"Armor", "Hood", "Helmet", "QuickSlotContainer"}},
		{Target: internal.CategoryWeapons, Sources: []string{"MeleeWeapon", "MissileWeapon"}},
	}
}

// CondenseStats tallies how many records each target category absorbed.
type CondenseStats struct {
	Merged map[string]int
}

// CondenseCategories applies the rules in order: the target category is
// created if absent, every listed source category is appended to it in
// listed order and then removed. Existing target records keep their position
// ahead of merged ones. The Weapons category, if present afterwards, is
// moved to the front of the iteration order; report consumers iterate
// categories in collection order.
func CondenseCategories(c *internal.Collection, rules []CondenseRule, log zerolog.Logger) (*internal.Collection, CondenseStats) {
	out := c.Clone()
	stats := CondenseStats{Merged: map[string]int{}}

	for _, rule := range rules {
		stats.Merged[rule.Target] = 0
		if !out.Has(rule.Target) {
			out.Set(rule.Target, []internal.Item{})
		}
		for _, source := range rule.Sources {
			if source == rule.Target {
				continue
			}
			if !out.Has(source) {
				continue
			}
			items := out.Items(source)
			stats.Merged[rule.Target] += len(items)
			out.Append(rule.Target, items...)
			out.Delete(source)
			log.Debug().Str("from", source).Str("into", rule.Target).Int("count", len(items)).Msg("merged category")
		}
	}

	for target, count := range stats.Merged {
		if count > 0 {
			log.Info().Str("category", target).Int("count", count).Msg("condensed items into category")
		}
	}

	out.MoveToFront(internal.CategoryWeapons)
	return out, stats
}
