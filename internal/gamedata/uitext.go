package gamedata

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"kcdex/internal"
)

type uiRow struct {
	Cells []string `xml:"Cell"`
}

type uiTable struct {
	Rows []uiRow `xml:"Row"`
}

// ParseUIText converts the localization table into the ui-name lookup. The
// first cell of a row is the key, the remaining cells its translation
// entries; rows without at least one entry are dropped.
func ParseUIText(r io.Reader) (internal.UIText, error) {
	var table uiTable
	if err := xml.NewDecoder(r).Decode(&table); err != nil {
		return nil, fmt.Errorf("decode ui text xml: %w", err)
	}

	out := internal.UIText{}
	for _, row := range table.Rows {
		if len(row.Cells) < 2 {
			continue
		}
		out[row.Cells[0]] = row.Cells[1:]
	}
	return out, nil
}

// LoadUIText reads the extracted text_ui_items file, if present.
func LoadUIText(files []Extracted) (internal.UIText, error) {
	for _, f := range files {
		if f.Entry.Name != "text_ui_items" {
			continue
		}
		fh, err := os.Open(f.Path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Path, err)
		}
		defer fh.Close()
		return ParseUIText(fh)
	}
	return internal.UIText{}, nil
}
