package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"kcdex/internal/catalog"
	"kcdex/internal/config"
	"kcdex/internal/gamedata"
	"kcdex/internal/logging"
	"kcdex/internal/pipeline"
	"kcdex/internal/report"
	"kcdex/internal/storage"
	"kcdex/internal/taxonomy"
)

func main() {
	cfg, err := config.Load()
	must(err)
	log := logging.New(cfg.LogLevel)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "version:check":
		must(cfg.Require("GAME_DIR", cfg.GameDir))
		v, err := gamedata.DetectVersion(cfg.GameDir)
		must(err)
		changed, err := gamedata.RecordVersion(cfg.DataDir, v)
		must(err)
		_, err = gamedata.EnsureVersionDirs(cfg.DataDir, v.ID)
		must(err)
		fmt.Printf("game version %s (branch %s) new=%v\n", v.ID, v.Preset.Branch.Name, changed)
	case "xml:extract":
		must(cfg.Require("GAME_DIR", cfg.GameDir))
		v, err := gamedata.DetectVersion(cfg.GameDir)
		must(err)
		versionDir, err := gamedata.EnsureVersionDirs(cfg.DataDir, v.ID)
		must(err)
		files, err := gamedata.ExtractXML(cfg.GameDir, versionDir, gamedata.DefaultXMLEntries(), db, log)
		must(err)
		changed := 0
		for _, f := range files {
			if f.Changed {
				changed++
			}
		}
		fmt.Printf("extracted %d files (%d changed) to %s\n", len(files), changed, versionDir)
	case "items:process":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		versionID := fs.String("version", "", "game version id (default: detect from GAME_DIR)")
		_ = fs.Parse(os.Args[2:])

		v, err := resolveVersion(cfg, *versionID)
		must(err)
		versionDir := cfg.VersionDir(v.ID)

		result, err := processItems(cfg, db, log, v, versionDir)
		must(err)
		fmt.Printf("processed %d items for version %s\n", result.Counts["output"], v.ID)
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		versionID := fs.String("version", "", "game version id (default: detect from GAME_DIR)")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])

		v, err := resolveVersion(cfg, *versionID)
		must(err)

		outputPath := *out
		if strings.TrimSpace(outputPath) == "" {
			outputPath = filepath.Join(cfg.OutputDir, "review_"+v.ID+".xlsx")
		}

		cat, err := catalog.Load(cfg.VersionDir(v.ID))
		must(err)
		run, err := db.LatestRun(v.ID)
		must(err)
		if run == nil {
			must(fmt.Errorf("no recorded run for version %s; run items:process first", v.ID))
		}
		diags, err := db.ListDiagnostics(run.ID)
		must(err)
		must(report.ExportXLSX(diags, cat, run.Counts, outputPath))
		fmt.Printf("exported %d diagnostics to %s\n", len(diags), outputPath)
	case "run":
		must(cfg.Require("GAME_DIR", cfg.GameDir))
		v, err := gamedata.DetectVersion(cfg.GameDir)
		must(err)
		_, err = gamedata.RecordVersion(cfg.DataDir, v)
		must(err)
		versionDir, err := gamedata.EnsureVersionDirs(cfg.DataDir, v.ID)
		must(err)

		_, err = gamedata.ExtractXML(cfg.GameDir, versionDir, gamedata.DefaultXMLEntries(), db, log)
		must(err)

		result, err := processItems(cfg, db, log, v, versionDir)
		must(err)

		run, err := db.LatestRun(v.ID)
		must(err)
		cat, err := catalog.Load(versionDir)
		must(err)
		outputPath := filepath.Join(cfg.OutputDir, "review_"+v.ID+".xlsx")
		must(report.ExportXLSX(result.Diagnostics, cat, run.Counts, outputPath))
		fmt.Printf("run done: version=%s items=%d review=%s\n", v.ID, result.Counts["output"], outputPath)
	default:
		usage()
		os.Exit(1)
	}
}

// processItems loads the extracted XML for one version, runs the full
// normalization pipeline, persists the run record and diagnostics, and
// writes the versioned catalog.
func processItems(cfg config.Config, db *storage.DB, log zerolog.Logger, v gamedata.Version, versionDir string) (pipeline.Result, error) {
	files := gamedata.LocalFiles(versionDir, gamedata.DefaultXMLEntries())
	if len(files) == 0 {
		return pipeline.Result{}, fmt.Errorf("no extracted XML under %s; run xml:extract first", versionDir)
	}

	raw, err := gamedata.LoadCollection(files, log)
	if err != nil {
		return pipeline.Result{}, err
	}
	uiText, err := gamedata.LoadUIText(files)
	if err != nil {
		return pipeline.Result{}, err
	}

	proc := pipeline.NewProcessor(taxonomy.Default(), log)
	result, err := proc.Run(raw, uiText)
	if err != nil {
		return pipeline.Result{}, err
	}

	runID, err := db.InsertRun(v.ID, result.Counts)
	if err != nil {
		return pipeline.Result{}, err
	}
	if err := db.InsertDiagnostics(runID, result.Diagnostics); err != nil {
		return pipeline.Result{}, err
	}

	info := catalog.VersionInfo{
		ID:     v.Preset.ID,
		Name:   v.Preset.Name,
		Branch: v.Preset.Branch.Name,
	}
	if info.Branch == "" {
		info.Branch = v.ID
	}
	cat := catalog.Assemble(result.Items, info, log)
	path, err := catalog.Write(cat, versionDir)
	if err != nil {
		return pipeline.Result{}, err
	}
	log.Info().Str("catalog", path).Int("items", result.Counts["output"]).Msg("catalog written")

	return result, nil
}

func resolveVersion(cfg config.Config, override string) (gamedata.Version, error) {
	if strings.TrimSpace(override) != "" {
		return gamedata.Version{ID: override}, nil
	}
	if err := cfg.Require("GAME_DIR", cfg.GameDir); err != nil {
		return gamedata.Version{}, fmt.Errorf("either --version or GAME_DIR is required: %w", err)
	}
	return gamedata.DetectVersion(cfg.GameDir)
}

func usage() {
	fmt.Println("usage: kcdex <command>")
	fmt.Println("commands:")
	fmt.Println("  version:check")
	fmt.Println("  xml:extract")
	fmt.Println("  items:process [--version=1_2]")
	fmt.Println("  export:xlsx [--version=1_2] [--out=./out/review.xlsx]")
	fmt.Println("  run")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
