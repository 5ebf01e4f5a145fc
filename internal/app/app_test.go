package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cours-de-latin/nlg"
	"github.com/cours-de-latin/nlg/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestBuildLexicon(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "extra.xml"),
		`<lexicon><word><base>jument</base><category>noun</category><id>x_jument</id><gender>feminine</gender></word></lexicon>`)
	writeFile(t, filepath.Join(dir, "more", "zoo", "a.xml"),
		`<lexicon><word><base>zèbre</base><category>noun</category><id>x_zebre</id></word></lexicon>`)

	cfg := config.Default()
	cfg.LexiconPath = filepath.Join(dir, "extra.xml")
	cfg.LexiconDir = dir
	cfg.LexiconGlob = "more/**/*.xml"
	cfg.StorePath = filepath.Join(dir, "lexicon.db")

	store, err := OpenStore(cfg)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	lex, err := BuildLexicon(ctx, cfg, store)
	require.NoError(t, err)
	assert.NotNil(t, lex.ByID("x_jument"))
	assert.NotNil(t, lex.ByID("x_zebre"))
	assert.NotNil(t, lex.LookupFirst("cheval", nlg.CatNoun))

	lex.Word("cramoisi", nlg.CatAdjective)
	_, err = store.Save(ctx, lex)
	require.NoError(t, err)

	r, err := NewRealiser(ctx, cfg, store)
	require.NoError(t, err)
	assert.NotNil(t, r.Lexicon().LookupFirst("cramoisi", nlg.CatAdjective))
	assert.Equal(t, lex.Len(), r.Lexicon().Len())
}

func TestBuildLexiconErrors(t *testing.T) {
	ctx := context.Background()

	cfg := config.Default()
	cfg.Language = "en"
	_, err := BuildLexicon(ctx, cfg, nil)
	require.ErrorIs(t, err, nlg.ErrUnsupportedLanguage)

	cfg = config.Default()
	cfg.LexiconPath = filepath.Join(t.TempDir(), "missing.xml")
	_, err = BuildLexicon(ctx, cfg, nil)
	require.Error(t, err)

	store, err := OpenStore(config.Default())
	require.NoError(t, err)
	assert.Nil(t, store)
}
