package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
)

// Write serializes the catalog to <versionDir>/data.json.
func Write(c Catalog, versionDir string) (string, error) {
	if err := os.MkdirAll(versionDir, 0o755); err != nil {
		return "", fmt.Errorf("create version dir: %w", err)
	}

	out, err := sonic.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode catalog: %w", err)
	}

	path := filepath.Join(versionDir, "data.json")
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Load reads a previously written catalog back, mainly for the export
// command.
func Load(versionDir string) (Catalog, error) {
	path := filepath.Join(versionDir, "data.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read %s: %w", path, err)
	}

	var c Catalog
	if err := sonic.Unmarshal(raw, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}
