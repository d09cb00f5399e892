package pipeline

import (
	"github.com/rs/zerolog"

	"kcdex/internal"
	"kcdex/internal/util"
)

// MissingDisplayName is assigned when a record has no UI-name reference or
// the reference resolves to nothing.
const MissingDisplayName = "Null"

// NameStats counts display name resolution outcomes.
type NameStats struct {
	Processed   int
	Found       int
	Missing     int
	Diagnostics []internal.Diagnostic
}

// ResolveDisplayNames attaches a title-cased display name to every record by
// looking up its UIName reference in the UI-text table. Entries with two or
// more localized strings use the second (index 0 is the developer label);
// single-entry lists use the first; everything else resolves to the Null
// sentinel.
func ResolveDisplayNames(c *internal.Collection, uiText internal.UIText, log zerolog.Logger) (*internal.Collection, NameStats) {
	out := internal.NewCollection()
	stats := NameStats{}

	for _, category := range c.Categories() {
		items := c.Items(category)
		copied := make([]internal.Item, len(items))
		for i, it := range items {
			next := it.Clone()
			stats.Processed++

			name, resolved := displayNameFor(next.Attrs, uiText)
			next.DisplayName = name
			if resolved {
				stats.Found++
			} else {
				stats.Missing++
				itemName, _ := next.Attrs.Str(internal.AttrName)
				stats.Diagnostics = append(stats.Diagnostics, internal.Diagnostic{
					Kind:     internal.DiagMissingName,
					Category: category,
					ItemName: itemName,
				})
			}
			copied[i] = next
		}
		out.Set(category, copied)
	}

	log.Info().
		Int("processed", stats.Processed).
		Int("found", stats.Found).
		Int("missing", stats.Missing).
		Msg("resolved display names")
	return out, stats
}

func displayNameFor(attrs internal.Record, uiText internal.UIText) (string, bool) {
	ref, ok := attrs.Str(internal.AttrUIName)
	if !ok {
		return MissingDisplayName, false
	}

	entries, ok := uiText[ref]
	if !ok || len(entries) == 0 {
		return MissingDisplayName, false
	}

	raw := entries[0]
	if len(entries) > 1 {
		raw = entries[1]
	}
	return util.TitleCase(raw), true
}
