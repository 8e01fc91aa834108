package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	InputDir    string
	OutputFile  string
	TypesImport string
	ExportName  string

	DBPath     string
	RunJournal bool
	RunsLimit  int

	LogLevel  string
	LogFormat string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		InputDir:    getEnv("CATALOG_INPUT_DIR", filepath.Join(cwd, "data_csv")),
		OutputFile:  getEnv("CATALOG_OUTPUT_FILE", filepath.Join(cwd, "src", "app", "data", "products.ts")),
		TypesImport: getEnv("CATALOG_TYPES_IMPORT", "../types"),
		ExportName:  getEnv("CATALOG_EXPORT_NAME", "products"),

		DBPath:     getEnv("DB_PATH", filepath.Join(cwd, "data", "catalogo.db")),
		RunJournal: getEnvBool("RUN_JOURNAL", true),
		RunsLimit:  getEnvInt("RUNS_LIST_LIMIT", 20),

		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "console")),
	}

	if err := cfg.Require("CATALOG_INPUT_DIR", cfg.InputDir); err != nil {
		return Config{}, err
	}
	if err := cfg.Require("CATALOG_OUTPUT_FILE", cfg.OutputFile); err != nil {
		return Config{}, err
	}
	return cfg, nil
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

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
