package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/jsphweid/chordal/constants"
)

type Config struct {
	// OutDir receives annotated scores, JSON analyses and the run archive
	OutDir string `yaml:"out_dir"`
	// MediaDir is where relative score paths are resolved
	MediaDir string `yaml:"media_dir"`
	// Workers bounds concurrent files and concurrent graph rows; 0 means
	// one per CPU
	Workers  int    `yaml:"workers"`
	Addr     string `yaml:"addr"`
	LogLevel string `yaml:"log_level"`
	Dynamo   Dynamo `yaml:"dynamo"`
}

type Dynamo struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`
	Table    string `yaml:"table"`
}

func Default() *Config {
	return &Config{
		OutDir:   constants.DefaultOutDir,
		MediaDir: ".",
		Addr:     ":8080",
		LogLevel: "info",
		Dynamo: Dynamo{
			Endpoint: "http://localhost:8000",
			Region:   "localhost",
			Table:    "chordal-comparisons",
		},
	}
}

// Load starts from Default, overlays the YAML file at path (or
// chordal.yaml when path is empty and that file exists) and then the
// environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = constants.DefaultConfigFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.OutDir, "CHORDAL_OUT_DIR")
	setString(&cfg.MediaDir, "MEDIA_PATH")
	setString(&cfg.Addr, "CHORDAL_ADDR")
	setString(&cfg.LogLevel, "CHORDAL_LOG_LEVEL")
	setString(&cfg.Dynamo.Endpoint, "CHORDAL_DYNAMO_ENDPOINT")
	setString(&cfg.Dynamo.Region, "CHORDAL_DYNAMO_REGION")
	setString(&cfg.Dynamo.Table, "CHORDAL_DYNAMO_TABLE")

	if v := os.Getenv("CHORDAL_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CHORDAL_WORKERS: %w", err)
		}
		cfg.Workers = n
	}
	if v := os.Getenv("CHORDAL_DYNAMO_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CHORDAL_DYNAMO_ENABLED: %w", err)
		}
		cfg.Dynamo.Enabled = enabled
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
