package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	RawDataDir string `envconfig:"RAW_DATA_DIR" default:"data/raw_data" validate:"required"`
	OutputDir  string `envconfig:"OUTPUT_DIR" default:"data/intermediate_data" validate:"required"`
	DBPath     string `envconfig:"DB_PATH" default:"data/iactidy.db" validate:"required"`

	IACFile         string `envconfig:"IAC_FILE" default:"IAC_Database_20250208.xlsx" validate:"required"`
	PPIFile         string `envconfig:"PPI_FILE" default:"ARC_PPI_Draft.xlsx" validate:"required"`
	GenerationFile  string `envconfig:"GENERATION_FILE" default:"annual_generation_state.xlsx" validate:"required"`
	GenerationSheet string `envconfig:"GENERATION_SHEET" default:"Net_Generation_1990-2023 Final" validate:"required"`
	EmissionsFile   string `envconfig:"EMISSIONS_FILE" default:"emission_annual.xlsx" validate:"required"`

	// PPIDefault fills missing price-index values until the real series are collected.
	PPIDefault float64 `envconfig:"PPI_DEFAULT" default:"120"`
	ExportXLSX bool    `envconfig:"EXPORT_XLSX" default:"false"`
	LogLevel   string  `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}
	cfg.RawDataDir = resolve(cwd, cfg.RawDataDir)
	cfg.OutputDir = resolve(cwd, cfg.OutputDir)
	cfg.DBPath = resolve(cwd, cfg.DBPath)

	return cfg, nil
}

func (c Config) IACPath() string        { return filepath.Join(c.RawDataDir, c.IACFile) }
func (c Config) PPIPath() string        { return filepath.Join(c.RawDataDir, c.PPIFile) }
func (c Config) GenerationPath() string { return filepath.Join(c.RawDataDir, c.GenerationFile) }
func (c Config) EmissionsPath() string  { return filepath.Join(c.RawDataDir, c.EmissionsFile) }

// OutputPath places a tidy file under OutputDir.
func (c Config) OutputPath(name string) string {
	return filepath.Join(c.OutputDir, name)
}

func resolve(cwd, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cwd, path)
}
