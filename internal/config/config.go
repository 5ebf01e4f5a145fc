// Package config holds the settings shared by the server and the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Addr is the listen address of the REST server.
	Addr string
	// Language is the ISO 639-1 code of the realised language.
	Language string
	// LexiconPath is an extra lexicon XML file merged into the bundled one.
	LexiconPath string
	// LexiconGlob selects extra lexicon files under LexiconDir.
	LexiconGlob string
	// LexiconDir is the root LexiconGlob is matched against.
	LexiconDir string
	// StorePath is the SQLite file words registered at run time are saved
	// to. Empty disables persistence.
	StorePath   string
	LogLevel    string
	LogFormat   string
	CORSOrigins []string
	// Watch reloads LexiconPath when it changes on disk.
	Watch bool
}

func Default() *Config {
	return &Config{
		Addr:        ":8080",
		Language:    "fr",
		LexiconDir:  ".",
		LogLevel:    "info",
		LogFormat:   "text",
		CORSOrigins: []string{"*"},
	}
}

// Load returns the defaults overridden by NLG_* environment variables.
// envFiles are read first with godotenv; with none given, an optional
// .env in the working directory is read. Variables already set in the
// environment win over the files.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("read env files: %w", err)
	}

	cfg := Default()
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("NLG_ADDR", &cfg.Addr)
	str("NLG_LANGUAGE", &cfg.Language)
	str("NLG_LEXICON", &cfg.LexiconPath)
	str("NLG_LEXICON_GLOB", &cfg.LexiconGlob)
	str("NLG_LEXICON_DIR", &cfg.LexiconDir)
	str("NLG_STORE", &cfg.StorePath)
	str("NLG_LOG_LEVEL", &cfg.LogLevel)
	str("NLG_LOG_FORMAT", &cfg.LogFormat)

	if v := os.Getenv("NLG_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("NLG_WATCH"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("NLG_WATCH: %w", err)
		}
		cfg.Watch = b
	}
	return cfg, nil
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	if c.Watch && c.LexiconPath == "" {
		return errors.New("config: NLG_WATCH needs NLG_LEXICON")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
