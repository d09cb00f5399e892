package pipeline

import (
	"fmt"

	"github.com/rs/zerolog"

	"kcdex/internal"
	"kcdex/internal/taxonomy"
)

// DefaultExcludedCategories are the non-equipment buckets dropped before the
// pipeline runs.
func DefaultExcludedCategories() []string {
	return []string{
		"AlchemyBase", "Ammo", "CraftingMaterial", "Document", "Food",
		"Herb", "MiscItem", "NPCTool", "Ointment", "PickableItem", "Poison",
	}
}

// Result is the outcome of a full pipeline run.
type Result struct {
	Items       []internal.ProcessedItem
	Counts      map[string]int
	Diagnostics []internal.Diagnostic
}

// Processor runs the normalization pipeline: key markers, aliases, category
// condensing, exclusion filters, display names, type classification, stat
// projection. Stages execute strictly in sequence; each consumes its input
// and produces a new collection.
type Processor struct {
	excluded []string
	condense []CondenseRule
	filters  FilterRules
	tax      taxonomy.Set
	log      zerolog.Logger
}

func NewProcessor(tax taxonomy.Set, log zerolog.Logger) *Processor {
	return &Processor{
		excluded: DefaultExcludedCategories(),
		condense: DefaultCondenseRules(),
		filters:  DefaultFilterRules(),
		tax:      tax,
		log:      log,
	}
}

// Run executes every stage over the raw collection. Per-record data-quality
// issues degrade to sentinels and diagnostics; a failure inside a stage
// aborts the run and returns an explicit zero result.
func (p *Processor) Run(raw *internal.Collection, uiText internal.UIText) (Result, error) {
	if raw == nil || raw.Len() == 0 {
		return Result{}, fmt.Errorf("no item data provided")
	}

	counts := map[string]int{}
	var diagnostics []internal.Diagnostic
	current := raw

	err := runStage("prune", p.log, func() error {
		current = current.Clone()
		for _, category := range p.excluded {
			current.Delete(category)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	err = runStage("normalize-keys", p.log, func() error {
		current = StripKeyMarkers(current)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	err = runStage("resolve-aliases", p.log, func() error {
		next, stats := ResolveAliases(current, p.log)
		next.Delete(internal.CategoryAlias)
		counts["aliasesMerged"] = stats.Merged
		counts["aliasesUnresolved"] = stats.Unresolved()
		diagnostics = append(diagnostics, stats.Diagnostics...)
		current = next
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	err = runStage("condense-categories", p.log, func() error {
		next, stats := CondenseCategories(current, p.condense, p.log)
		for target, merged := range stats.Merged {
			counts["condensedInto"+target] = merged
		}
		current = next
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	err = runStage("filter-items", p.log, func() error {
		next, stats := FilterItems(current, p.filters, p.log)
		counts["filtered"] = stats.Total()
		diagnostics = append(diagnostics, stats.Diagnostics...)
		current = next
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	err = runStage("display-names", p.log, func() error {
		next, stats := ResolveDisplayNames(current, uiText, p.log)
		counts["displayNamesFound"] = stats.Found
		counts["displayNamesMissing"] = stats.Missing
		diagnostics = append(diagnostics, stats.Diagnostics...)
		current = next
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	err = runStage("classify-types", p.log, func() error {
		next, stats := ClassifyTypes(current, p.tax, p.log)
		counts["armorMatched"] = stats.ArmorMatched
		counts["armorUnmatched"] = stats.ArmorUnmatched
		counts["weaponsMatched"] = stats.WeaponsMatched
		counts["weaponsUnmatched"] = stats.WeaponsUnmatched
		counts["diceStamped"] = stats.DiceStamped
		counts["badgesFilled"] = stats.BadgesFilled
		counts["badgesSkipped"] = stats.BadgesSkipped
		diagnostics = append(diagnostics, stats.Diagnostics...)
		current = next
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	var items []internal.ProcessedItem
	err = runStage("project-stats", p.log, func() error {
		items = ProjectStats(current, p.log)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	counts["output"] = len(items)
	if len(items) == 0 {
		return Result{}, fmt.Errorf("no items remain after processing")
	}

	p.log.Info().Interface("counts", counts).Msg("pipeline run complete")
	return Result{Items: items, Counts: counts, Diagnostics: diagnostics}, nil
}

// runStage executes one stage behind a panic boundary: a broken invariant
// inside stage logic surfaces as a stage error, never as a crash with
// half-written state.
func runStage(name string, log zerolog.Logger, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("stage", name).Interface("panic", r).Msg("stage panicked")
			err = fmt.Errorf("stage %s: panic: %v", name, r)
		}
	}()
	if err = fn(); err != nil {
		log.Error().Str("stage", name).Err(err).Msg("stage failed")
		return fmt.Errorf("stage %s: %w", name, err)
	}
	return nil
}
