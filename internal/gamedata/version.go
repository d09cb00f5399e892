package gamedata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
)

// Branch identifies the release branch the installed game was built from.
type Branch struct {
	ID   int    `json:"Id"`
	Name string `json:"Name"`
}

// Preset is the version block the game launcher writes into
// whdlversions.json.
type Preset struct {
	ID     int    `json:"Id"`
	Name   string `json:"Name"`
	Branch Branch `json:"Branch"`
}

type versionFile struct {
	Preset Preset `json:"Preset"`
}

// Version is the detected game version: the raw branch name and the
// cleaned id used for directory partitioning.
type Version struct {
	ID     string
	Preset Preset
}

// DetectVersion reads <gameDir>/whdlversions.json and derives the version
// id from Preset.Branch.Name, stripping the release_ prefix so
// "release_1_2" partitions under "1_2".
func DetectVersion(gameDir string) (Version, error) {
	path := filepath.Join(gameDir, "whdlversions.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return Version{}, fmt.Errorf("read version file: %w", err)
	}

	var vf versionFile
	if err := sonic.Unmarshal(raw, &vf); err != nil {
		return Version{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if vf.Preset.Branch.Name == "" {
		return Version{}, fmt.Errorf("no branch name in %s", path)
	}

	return Version{
		ID:     strings.TrimPrefix(vf.Preset.Branch.Name, "release_"),
		Preset: vf.Preset,
	}, nil
}

// RecordVersion keeps a version history at <dataDir>/version.json: the
// current preset under "latest", prior presets keyed by their branch name.
// It returns true when the detected version differs from the recorded
// latest.
func RecordVersion(dataDir string, v Version) (bool, error) {
	path := filepath.Join(dataDir, "version.json")

	history := map[string]Preset{}
	if raw, err := os.ReadFile(path); err == nil {
		if err := sonic.Unmarshal(raw, &history); err != nil {
			return false, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	changed := false
	if latest, ok := history["latest"]; ok {
		if latest.ID != v.Preset.ID || latest.Branch.Name != v.Preset.Branch.Name {
			changed = true
			if latest.Branch.Name != "" {
				history[latest.Branch.Name] = latest
			}
		}
	}
	history["latest"] = v.Preset

	out, err := sonic.MarshalIndent(history, "", "  ")
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return changed, nil
}

// EnsureVersionDirs creates the per-version working directories and returns
// the version dir.
func EnsureVersionDirs(dataDir, versionID string) (string, error) {
	versionDir := filepath.Join(dataDir, "version", versionID)
	for _, dir := range []string{
		versionDir,
		filepath.Join(versionDir, "xml"),
		filepath.Join(versionDir, "xml", "raw"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return versionDir, nil
}
