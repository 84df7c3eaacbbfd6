package utils

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"comicsdb/pkg/database"
)

type Config struct {
	DB        DBConfig        `yaml:"db"`
	Dump      DumpConfig      `yaml:"dump"`
	API       APIConfig       `yaml:"api"`
	Highlight HighlightConfig `yaml:"highlight"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

// DumpConfig locates the delimited table files of a dump. An empty
// Delimiter means the file extension decides; `\t` spells a tab.
type DumpConfig struct {
	Dir       string `yaml:"dir"`
	Delimiter string `yaml:"delimiter"`
	NullToken string `yaml:"null_token"`
}

type APIConfig struct {
	Addr string `yaml:"addr"`
}

type HighlightConfig struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

func DefaultConfig() Config {
	return Config{
		DB:        DBConfig{Path: database.DefaultConfig().Path},
		Dump:      DumpConfig{Dir: "data/dump", NullToken: `\N`},
		API:       APIConfig{Addr: ":8080"},
		Highlight: HighlightConfig{Open: "<b>", Close: "</b>"},
	}
}

// LoadConfig starts from defaults, applies the YAML file at path (or at
// COMICSDB_CONFIG when path is empty), then the COMICSDB_* environment
// variables. A named file that does not exist is an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv("COMICSDB_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	for name, dst := range map[string]*string{
		"COMICSDB_DB_PATH":         &cfg.DB.Path,
		"COMICSDB_DUMP_DIR":        &cfg.Dump.Dir,
		"COMICSDB_DUMP_DELIMITER":  &cfg.Dump.Delimiter,
		"COMICSDB_NULL_TOKEN":      &cfg.Dump.NullToken,
		"COMICSDB_API_ADDR":        &cfg.API.Addr,
		"COMICSDB_HIGHLIGHT_OPEN":  &cfg.Highlight.Open,
		"COMICSDB_HIGHLIGHT_CLOSE": &cfg.Highlight.Close,
	} {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*dst = v
		}
	}
}

func (c Config) Validate() error {
	if c.DB.Path == "" {
		return errors.New("config: db.path is empty")
	}
	if d := c.Dump.Delimiter; d != "" && d != `\t` && utf8.RuneCountInString(d) != 1 {
		return fmt.Errorf("config: dump.delimiter %q must be a single character", d)
	}
	return nil
}

// Comma is the dump delimiter as a rune, or 0 when unset.
func (d DumpConfig) Comma() rune {
	if d.Delimiter == "" {
		return 0
	}
	if d.Delimiter == `\t` {
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(d.Delimiter)
	return r
}
