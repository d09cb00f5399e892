package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	GameDir   string
	DataDir   string
	DBPath    string
	OutputDir string
	LogLevel  string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		GameDir:   getEnv("GAME_DIR", ""),
		DataDir:   getEnv("DATA_DIR", filepath.Join(cwd, "data")),
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "kcdex.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// VersionDir is where every artifact for one game version lands.
func (c Config) VersionDir(version string) string {
	return filepath.Join(c.DataDir, "version", version)
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
