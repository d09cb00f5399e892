package catalog

import (
	"github.com/rs/zerolog"

	"kcdex/internal"
)

// VersionInfo is the version block stamped into the catalog.
type VersionInfo struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Branch   string `json:"branch"`
	Platform string `json:"platform,omitempty"`
}

// Catalog is the final data.json document: the processed items bucketed per
// UI-slot category, in a fixed bucket order.
type Catalog struct {
	Version VersionInfo                         `json:"version"`
	Items   map[string][]internal.ProcessedItem `json:"items"`
}

// BucketNames is the fixed set of catalog buckets, in document order.
func BucketNames() []string {
	return []string{
		"head", "jewelry", "dagger", "belt", "torso", "hands", "legs",
		"pouch", "horse", "melee", "ranged", "shield", "die", "diceBadge",
	}
}

// Assemble buckets the sorted item array by category name. Every bucket is
// present in the output even when empty. Items whose category falls outside
// the bucket set (unmatched classifications) are left out of the catalog;
// they remain visible through the diagnostics store.
func Assemble(items []internal.ProcessedItem, version VersionInfo, log zerolog.Logger) Catalog {
	buckets := map[string][]internal.ProcessedItem{}
	for _, name := range BucketNames() {
		buckets[name] = []internal.ProcessedItem{}
	}

	skipped := 0
	for _, item := range items {
		if _, ok := buckets[item.CategoryName]; !ok {
			skipped++
			log.Debug().Str("item", item.Name).Str("category", item.CategoryName).Msg("item outside catalog buckets")
			continue
		}
		buckets[item.CategoryName] = append(buckets[item.CategoryName], item)
	}

	if skipped > 0 {
		log.Warn().Int("count", skipped).Msg("items without a catalog bucket")
	}
	log.Info().Int("total", len(items)-skipped).Msg("assembled catalog")

	return Catalog{Version: version, Items: buckets}
}
