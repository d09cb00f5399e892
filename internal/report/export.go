package report

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"kcdex/internal"
	"kcdex/internal/catalog"
)

// ExportXLSX writes the maintainer review workbook: one diagnostics sheet
// with a row per data-quality finding, one summary sheet with the catalog
// bucket sizes and run counters.
func ExportXLSX(diags []internal.Diagnostic, cat catalog.Catalog, counts map[string]int, outputPath string) error {
	f := excelize.NewFile()
	diagSheet := f.GetSheetName(0)
	_ = f.SetSheetName(diagSheet, "Diagnostics")
	diagSheet = "Diagnostics"

	headers := []string{"kind", "category", "item_id", "item_name", "display_name", "detail"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(diagSheet, cell, h)
	}

	for i, diag := range diags {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(diagSheet, cell, value)
		}

		set(1, diag.Kind)
		set(2, diag.Category)
		set(3, diag.ItemID)
		set(4, diag.ItemName)
		set(5, diag.DisplayName)
		set(6, diag.Detail)
	}

	summarySheet := "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	_ = f.SetCellValue(summarySheet, "A1", "bucket")
	_ = f.SetCellValue(summarySheet, "B1", "items")
	row := 2
	for _, bucket := range catalog.BucketNames() {
		cellA, _ := excelize.CoordinatesToCellName(1, row)
		cellB, _ := excelize.CoordinatesToCellName(2, row)
		_ = f.SetCellValue(summarySheet, cellA, bucket)
		_ = f.SetCellValue(summarySheet, cellB, len(cat.Items[bucket]))
		row++
	}

	row++
	cellA, _ := excelize.CoordinatesToCellName(1, row)
	cellB, _ := excelize.CoordinatesToCellName(2, row)
	_ = f.SetCellValue(summarySheet, cellA, "counter")
	_ = f.SetCellValue(summarySheet, cellB, "value")
	row++
	for _, key := range sortedKeys(counts) {
		cellA, _ := excelize.CoordinatesToCellName(1, row)
		cellB, _ := excelize.CoordinatesToCellName(2, row)
		_ = f.SetCellValue(summarySheet, cellA, key)
		_ = f.SetCellValue(summarySheet, cellB, counts[key])
		row++
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
