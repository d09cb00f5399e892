package gamedata

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"kcdex/internal"
)

// ParseItemsInto streams one item-definition XML into the collection. Every
// child element of <ItemClasses> becomes one record in the bucket named by
// its tag; element attributes become record keys carrying the same "@"
// marker the game's dictionary dumps use. Retag rewrites bucket names
// before insertion.
func ParseItemsInto(c *internal.Collection, r io.Reader, retag map[string]string) error {
	dec := xml.NewDecoder(r)

	inClasses := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("decode item xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "ItemClasses" {
				inClasses = true
				continue
			}
			if !inClasses {
				continue
			}

			category := t.Name.Local
			if renamed, ok := retag[category]; ok {
				category = renamed
			}

			attrs := internal.Record{}
			for _, a := range t.Attr {
				attrs["@"+a.Name.Local] = a.Value
			}
			c.Append(category, internal.Item{Attrs: attrs})

			// Nested elements carry no record attributes we consume.
			if err := dec.Skip(); err != nil {
				return fmt.Errorf("skip %s element: %w", category, err)
			}
		case xml.EndElement:
			if t.Name.Local == "ItemClasses" {
				inClasses = false
			}
		}
	}
	return nil
}

// LoadCollection builds the combined raw collection from the extracted item
// XML files, in extraction order. UI text files are ignored here.
func LoadCollection(files []Extracted, log zerolog.Logger) (*internal.Collection, error) {
	c := internal.NewCollection()
	for _, f := range files {
		if !strings.HasPrefix(f.Entry.Name, "item") {
			continue
		}
		fh, err := os.Open(f.Path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Path, err)
		}
		before := c.Len()
		err = ParseItemsInto(c, fh, f.Entry.Retag)
		fh.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.Path, err)
		}
		log.Info().Str("file", f.Entry.Name+".xml").Int("items", c.Len()-before).Msg("loaded item definitions")
	}
	if c.Len() == 0 {
		return nil, fmt.Errorf("no item definitions found in extracted files")
	}
	return c, nil
}
