package report

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"kcdex/internal"
	"kcdex/internal/catalog"
)

func TestExportXLSX(t *testing.T) {
	diags := []internal.Diagnostic{
		{Kind: internal.DiagUnmatchedArmor, Category: "Armor", ItemID: "a1", ItemName: "oddHat", Detail: "clothing descriptor: OddHat"},
		{Kind: internal.DiagFilteredItem, Category: "Weapons", ItemName: "sword_duel", Detail: "name filter"},
	}
	cat := catalog.Assemble([]internal.ProcessedItem{
		{ID: "a2", Name: "hood", DisplayName: "Hood", CategoryName: "head"},
	}, catalog.VersionInfo{Branch: "release_1_2"}, zerolog.Nop())
	counts := map[string]int{"output": 1, "filtered": 1}

	outputPath := filepath.Join(t.TempDir(), "review.xlsx")
	if err := ExportXLSX(diags, cat, counts, outputPath); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Diagnostics", "A2")
	if err != nil {
		t.Fatal(err)
	}
	if got != internal.DiagUnmatchedArmor {
		t.Fatalf("first diagnostic kind: %q", got)
	}
	name, _ := f.GetCellValue("Diagnostics", "D3")
	if name != "sword_duel" {
		t.Fatalf("second diagnostic name: %q", name)
	}

	bucket, _ := f.GetCellValue("Summary", "A2")
	size, _ := f.GetCellValue("Summary", "B2")
	if bucket != "head" || size != "1" {
		t.Fatalf("summary first bucket: %q=%q", bucket, size)
	}
}

func TestExportXLSXNoDiagnostics(t *testing.T) {
	cat := catalog.Assemble(nil, catalog.VersionInfo{}, zerolog.Nop())
	outputPath := filepath.Join(t.TempDir(), "review.xlsx")
	if err := ExportXLSX(nil, cat, nil, outputPath); err != nil {
		t.Fatal(err)
	}
}
