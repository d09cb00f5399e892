package gamedata

import (
	"os"
	"path/filepath"
	"testing"
)

func writeVersionFile(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "whdlversions.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDetectVersion(t *testing.T) {
	dir := t.TempDir()
	writeVersionFile(t, dir, `{"Preset":{"Id":7,"Name":"KCD2","Branch":{"Id":3,"Name":"release_1_2"}}}`)

	v, err := DetectVersion(dir)
	if err != nil {
		t.Fatal(err)
	}
	if v.ID != "1_2" {
		t.Fatalf("version id: got %q, want 1_2", v.ID)
	}
	if v.Preset.Branch.Name != "release_1_2" {
		t.Fatalf("branch name: got %q", v.Preset.Branch.Name)
	}
}

func TestDetectVersionNoReleasePrefix(t *testing.T) {
	dir := t.TempDir()
	writeVersionFile(t, dir, `{"Preset":{"Id":1,"Name":"beta","Branch":{"Id":9,"Name":"beta_3"}}}`)

	v, err := DetectVersion(dir)
	if err != nil {
		t.Fatal(err)
	}
	if v.ID != "beta_3" {
		t.Fatalf("version id: got %q, want beta_3", v.ID)
	}
}

func TestDetectVersionErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := DetectVersion(dir); err == nil {
		t.Fatal("missing file must fail")
	}

	writeVersionFile(t, dir, `{"Preset":{"Branch":{}}}`)
	if _, err := DetectVersion(dir); err == nil {
		t.Fatal("empty branch name must fail")
	}
}

func TestRecordVersionHistory(t *testing.T) {
	dataDir := t.TempDir()

	first := Version{ID: "1_2", Preset: Preset{ID: 1, Name: "a", Branch: Branch{ID: 1, Name: "release_1_2"}}}
	changed, err := RecordVersion(dataDir, first)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Fatal("first record must not report a change")
	}

	same, err := RecordVersion(dataDir, first)
	if err != nil {
		t.Fatal(err)
	}
	if same {
		t.Fatal("identical version must not report a change")
	}

	second := Version{ID: "1_3", Preset: Preset{ID: 2, Name: "b", Branch: Branch{ID: 2, Name: "release_1_3"}}}
	changed, err = RecordVersion(dataDir, second)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("new version must report a change")
	}

	// Prior version is kept under its branch name.
	v3 := Version{ID: "1_2", Preset: first.Preset}
	if _, err := RecordVersion(dataDir, v3); err != nil {
		t.Fatal(err)
	}
}

func TestEnsureVersionDirs(t *testing.T) {
	dataDir := t.TempDir()
	versionDir, err := EnsureVersionDirs(dataDir, "1_2")
	if err != nil {
		t.Fatal(err)
	}
	raw := filepath.Join(versionDir, "xml", "raw")
	if fi, err := os.Stat(raw); err != nil || !fi.IsDir() {
		t.Fatalf("raw dir not created: %v", err)
	}
}
