package pipeline

import (
	"fmt"

	"github.com/rs/zerolog"

	"kcdex/internal"
)

// AliasStats reports what the resolver did with the alias bucket.
type AliasStats struct {
	Merged        int
	MissingSource int
	Invalid       int
	Diagnostics   []internal.Diagnostic
}

// Unresolved is the number of aliases left behind in the alias bucket.
func (s AliasStats) Unresolved() int {
	return s.MissingSource + s.Invalid
}

// ResolveAliases merges every alias record into its source record's category:
// the merged record is a copy of the source overridden by every alias
// attribute except SourceItemId. Aliases with no Name or SourceItemId, and
// aliases whose source id matches nothing, stay in the alias bucket for
// diagnostic visibility. Resolution is single-hop: an alias pointing at
// another alias is left unresolved.
func ResolveAliases(c *internal.Collection, log zerolog.Logger) (*internal.Collection, AliasStats) {
	out := c.Clone()
	stats := AliasStats{}

	if !out.Has(internal.CategoryAlias) {
		log.Warn().Msg("no alias bucket found in collection")
		return out, stats
	}

	type located struct {
		category string
		attrs    internal.Record
	}
	index := map[string]located{}
	for _, category := range out.Categories() {
		if category == internal.CategoryAlias {
			continue
		}
		for _, it := range out.Items(category) {
			id, okID := it.Attrs.Str(internal.AttrID)
			if !okID || !it.Attrs.Has(internal.AttrName) {
				continue
			}
			index[id] = located{category: category, attrs: it.Attrs}
		}
	}

	var unresolved []internal.Item
	for _, alias := range out.Items(internal.CategoryAlias) {
		sourceID, okSource := alias.Attrs.Str(internal.AttrSourceItemID)
		aliasName, okName := alias.Attrs.Str(internal.AttrName)
		if !okSource || !okName {
			stats.Invalid++
			unresolved = append(unresolved, alias)
			continue
		}

		source, ok := index[sourceID]
		if !ok {
			log.Debug().Str("alias", aliasName).Str("sourceId", sourceID).Msg("alias source not found")
			stats.MissingSource++
			stats.Diagnostics = append(stats.Diagnostics, internal.Diagnostic{
				Kind:     internal.DiagUnresolvedAlias,
				Category: internal.CategoryAlias,
				ItemName: aliasName,
				Detail:   fmt.Sprintf("source item %q not found", sourceID),
			})
			unresolved = append(unresolved, alias)
			continue
		}

		merged := source.attrs.Clone()
		for key, value := range alias.Attrs {
			if key == internal.AttrSourceItemID {
				continue
			}
			merged[key] = value
		}
		out.Append(source.category, internal.Item{Attrs: merged})
		stats.Merged++
	}

	out.Set(internal.CategoryAlias, unresolved)
	log.Info().
		Int("merged", stats.Merged).
		Int("missingSource", stats.MissingSource).
		Int("invalid", stats.Invalid).
		Msg("resolved aliases")
	return out, stats
}
