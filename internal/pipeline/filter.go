package pipeline

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"kcdex/internal"
)

// FilterRules are the exclusion rules applied to every record. Rule classes
// are evaluated in a fixed precedence order: key/value first, then name,
// icon and UI-name substrings. First match wins; a record is only ever
// counted under one rule.
type FilterRules struct {
	KeyValue []KeyValueRule
	Name     []string
	Icon     []string
	UIName   []string
}

type KeyValueRule struct {
	Key   string
	Value string
}

// DefaultFilterRules drop placeholder, duel and broken variants, the traffic
// cone easter egg and warning-text items, plus the excluded sub-class.
func DefaultFilterRules() FilterRules {
	return FilterRules{
		KeyValue: []KeyValueRule{{Key: internal.AttrSubClass, Value: "5"}},
		Name:     []string{"_empty", "duel", "_broken", "torch"},
		Icon:     []string{"trafficCone"},
		UIName:   []string{"_warning"},
	}
}

// FilterStats counts rejections per rule class.
type FilterStats struct {
	ByKeyValue  int
	ByName      int
	ByIcon      int
	ByUIName    int
	Diagnostics []internal.Diagnostic
}

func (s FilterStats) Total() int {
	return s.ByKeyValue + s.ByName + s.ByIcon + s.ByUIName
}

// FilterItems removes matching records from every category. Records without
// a Name attribute cannot be evaluated and are always retained.
func FilterItems(c *internal.Collection, rules FilterRules, log zerolog.Logger) (*internal.Collection, FilterStats) {
	out := internal.NewCollection()
	stats := FilterStats{}

	for _, category := range c.Categories() {
		items := c.Items(category)
		kept := make([]internal.Item, 0, len(items))
		for _, it := range items {
			copied := it.Clone()
			name, ok := copied.Attrs.Str(internal.AttrName)
			if !ok {
				kept = append(kept, copied)
				continue
			}

			if reason := rejectReason(copied.Attrs, name, rules, &stats); reason != "" {
				log.Debug().Str("category", category).Str("item", name).Str("rule", reason).Msg("filtered item")
				id, _ := copied.Attrs.Str(internal.AttrID)
				stats.Diagnostics = append(stats.Diagnostics, internal.Diagnostic{
					Kind:     internal.DiagFilteredItem,
					Category: category,
					ItemID:   id,
					ItemName: name,
					Detail:   reason,
				})
				continue
			}
			kept = append(kept, copied)
		}
		out.Set(category, kept)
	}

	if stats.Total() > 0 {
		log.Info().
			Int("total", stats.Total()).
			Int("byKeyValue", stats.ByKeyValue).
			Int("byName", stats.ByName).
			Int("byIcon", stats.ByIcon).
			Int("byUIName", stats.ByUIName).
			Msg("removed excluded items")
	}
	return out, stats
}

func rejectReason(attrs internal.Record, name string, rules FilterRules, stats *FilterStats) string {
	for _, kv := range rules.KeyValue {
		if v, ok := attrs[kv.Key]; ok && fmt.Sprintf("%v", v) == kv.Value {
			stats.ByKeyValue++
			return fmt.Sprintf("%s=%s", kv.Key, kv.Value)
		}
	}
	if m := containsAnyFold(name, rules.Name); m != "" {
		stats.ByName++
		return "name contains " + m
	}
	if icon, ok := attrs.Str(internal.AttrIconID); ok {
		if m := containsAnyFold(icon, rules.Icon); m != "" {
			stats.ByIcon++
			return "icon contains " + m
		}
	}
	if uiName, ok := attrs.Str(internal.AttrUIName); ok {
		if m := containsAnyFold(uiName, rules.UIName); m != "" {
			stats.ByUIName++
			return "uiName contains " + m
		}
	}
	return ""
}

func containsAnyFold(s string, needles []string) string {
	lower := strings.ToLower(s)
	for _, needle := range needles {
		if strings.Contains(lower, strings.ToLower(needle)) {
			return needle
		}
	}
	return ""
}
