// Package app assembles a realiser from configuration, for the server
// and the command line tool.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/cours-de-latin/nlg"
	"github.com/cours-de-latin/nlg/internal/config"
	"github.com/cours-de-latin/nlg/internal/logger"
	"github.com/cours-de-latin/nlg/lexstore"
)

// InitLogging configures the process logger from cfg.
func InitLogging(cfg *config.Config) {
	lc := logger.DefaultConfig()
	lc.Level = logger.ParseLevel(cfg.LogLevel)
	lc.Format = cfg.LogFormat
	logger.Init(lc)
}

// OpenStore opens the configured lexicon store, or returns nil when none
// is configured.
func OpenStore(cfg *config.Config) (*lexstore.Store, error) {
	if cfg.StorePath == "" {
		return nil, nil
	}
	return lexstore.Open(cfg.StorePath)
}

// BuildLexicon loads the bundled lexicon of cfg.Language and merges, in
// order, the extra lexicon file, the files matching the lexicon glob and
// the entries saved in store (which may be nil).
func BuildLexicon(ctx context.Context, cfg *config.Config, store *lexstore.Store) (*nlg.Lexicon, error) {
	log := logger.ForComponent("app")

	lex, err := nlg.LoadLanguage(nlg.Language(cfg.Language))
	if err != nil {
		return nil, err
	}

	if cfg.LexiconPath != "" {
		f, err := os.Open(cfg.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("open lexicon: %w", err)
		}
		n, err := lex.Load(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", cfg.LexiconPath, err)
		}
		log.Info("extra lexicon loaded", "path", cfg.LexiconPath, "entries", n)
	}

	if cfg.LexiconGlob != "" {
		n, err := lex.LoadGlob(os.DirFS(cfg.LexiconDir), cfg.LexiconGlob)
		if err != nil {
			return nil, err
		}
		log.Info("lexicon files merged", "glob", cfg.LexiconGlob, "entries", n)
	}

	if store != nil {
		n, err := store.Load(ctx, lex)
		if err != nil {
			return nil, fmt.Errorf("restore stored words: %w", err)
		}
		log.Info("stored words restored", "entries", n)
	}
	return lex, nil
}

// NewRealiser builds the lexicon for cfg and binds the language rules.
func NewRealiser(ctx context.Context, cfg *config.Config, store *lexstore.Store) (*nlg.Realiser, error) {
	lex, err := BuildLexicon(ctx, cfg, store)
	if err != nil {
		return nil, err
	}
	return nlg.New(lex)
}
