package gamedata

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// XMLEntry names one XML file to pull out of a game archive. Retag rewrites
// category element tags during parsing (the horse pak reuses the Armor tag
// for tack).
type XMLEntry struct {
	Pak   string
	Inner string
	Name  string
	Retag map[string]string
}

// DefaultXMLEntries covers the item definition paks and the UI text pak.
func DefaultXMLEntries() []XMLEntry {
	return []XMLEntry{
		{Pak: "Data/Tables.pak", Inner: "Libs/Tables/item/item.xml", Name: "item"},
		{Pak: "Data/Tables.pak", Inner: "Libs/Tables/item/item__horse.xml", Name: "item__horse",
			Retag: map[string]string{"Armor": "Horse"}},
		{Pak: "Localization/English_xml.pak", Inner: "text_ui_items.xml", Name: "text_ui_items"},
	}
}

// HashStore persists extracted-file hashes between runs so unchanged inputs
// can be skipped.
type HashStore interface {
	FileHash(name string) (string, bool, error)
	SetFileHash(name, hash, source string) error
}

// Extracted describes one file pulled out of a pak. Changed reports whether
// its content differs from the previous run.
type Extracted struct {
	Entry   XMLEntry
	Path    string
	Hash    string
	Changed bool
}

// LocalFiles rebuilds the extracted-file list from what is already on disk
// under <versionDir>/xml/raw, so the pipeline can run without the game
// install present.
func LocalFiles(versionDir string, entries []XMLEntry) []Extracted {
	rawDir := filepath.Join(versionDir, "xml", "raw")
	var out []Extracted
	for _, entry := range entries {
		path := filepath.Join(rawDir, entry.Name+".xml")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		out = append(out, Extracted{Entry: entry, Path: path})
	}
	return out
}

// ExtractXML pulls every configured XML entry out of its pak archive into
// <versionDir>/xml/raw. Entries whose extracted bytes hash to the stored
// value are reported with Changed=false so downstream stages can skip work.
func ExtractXML(gameDir, versionDir string, entries []XMLEntry, store HashStore, log zerolog.Logger) ([]Extracted, error) {
	rawDir := filepath.Join(versionDir, "xml", "raw")
	if err := os.MkdirAll(rawDir, 0o755); err != nil {
		return nil, fmt.Errorf("create raw dir: %w", err)
	}

	byPak := map[string][]XMLEntry{}
	for _, e := range entries {
		byPak[e.Pak] = append(byPak[e.Pak], e)
	}

	var out []Extracted
	for pak, group := range byPak {
		pakPath := filepath.Join(gameDir, filepath.FromSlash(pak))
		archive, err := zip.OpenReader(pakPath)
		if err != nil {
			return nil, fmt.Errorf("open pak %s: %w", pakPath, err)
		}
		log.Info().Str("pak", pak).Int("entries", len(group)).Msg("processing pak")

		for _, entry := range group {
			extracted, err := extractEntry(archive, entry, rawDir, store, log)
			if err != nil {
				archive.Close()
				return nil, err
			}
			out = append(out, extracted)
		}
		archive.Close()
	}
	return out, nil
}

func extractEntry(archive *zip.ReadCloser, entry XMLEntry, rawDir string, store HashStore, log zerolog.Logger) (Extracted, error) {
	src, err := archive.Open(entry.Inner)
	if err != nil {
		return Extracted{}, fmt.Errorf("entry %s not in pak %s: %w", entry.Inner, entry.Pak, err)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return Extracted{}, fmt.Errorf("read %s: %w", entry.Inner, err)
	}

	sum := sha256.Sum256(content)
	hash := hex.EncodeToString(sum[:])
	outPath := filepath.Join(rawDir, entry.Name+".xml")

	if prev, ok, err := store.FileHash(entry.Name); err != nil {
		return Extracted{}, fmt.Errorf("lookup hash for %s: %w", entry.Name, err)
	} else if ok && prev == hash {
		if _, statErr := os.Stat(outPath); statErr == nil {
			log.Info().Str("file", entry.Name+".xml").Msg("skipping unchanged file")
			return Extracted{Entry: entry, Path: outPath, Hash: hash, Changed: false}, nil
		}
	}

	if err := os.WriteFile(outPath, content, 0o644); err != nil {
		return Extracted{}, fmt.Errorf("write %s: %w", outPath, err)
	}
	if err := store.SetFileHash(entry.Name, hash, entry.Pak+"!"+entry.Inner); err != nil {
		return Extracted{}, fmt.Errorf("store hash for %s: %w", entry.Name, err)
	}

	log.Info().Str("file", entry.Name+".xml").Str("to", outPath).Msg("extracted")
	return Extracted{Entry: entry, Path: outPath, Hash: hash, Changed: true}, nil
}
