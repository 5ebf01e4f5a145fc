package nlg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const extraLexicon = `<?xml version="1.0" encoding="UTF-8"?>
<lexicon language="fr">
  <word>
    <base>jument</base>
    <category>noun</category>
    <id>x_jument</id>
    <gender>feminine</gender>
    <reg/>
  </word>
  <word>
    <base>vermeil</base>
    <category>adj</category>
    <spelling_variant>vermeille</spelling_variant>
    <preposed/>
  </word>
  <word>
    <category>noun</category>
  </word>
  <word>
    <base>truc</base>
    <category>gadget</category>
  </word>
</lexicon>
`

func TestLoadLanguage(t *testing.T) {
	lex, err := LoadLanguage(French)
	require.NoError(t, err)
	assert.Equal(t, French, lex.Language())
	assert.Equal(t, 145, lex.Len())

	cheval := lex.LookupFirst("chevaux", CatNoun)
	require.NotNil(t, cheval)
	assert.Equal(t, "cheval", cheval.BaseForm)
	assert.Equal(t, "masculine", cheval.String(FeatGender))
	assert.Equal(t, []string{"reg"}, cheval.Features().Strings(FeatInflections))

	le := lex.LookupFirst("le", CatDeterminer)
	require.NotNil(t, le)
	assert.True(t, le.Bool(FeatVowelElision))

	_, err = LoadLanguage(English)
	require.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestLexiconLoad(t *testing.T) {
	lex := NewLexicon(French)
	n, err := lex.Load(strings.NewReader(extraLexicon))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	jument := lex.ByID("x_jument")
	require.NotNil(t, jument)
	assert.Equal(t, CatNoun, jument.Category)

	vermeil := lex.LookupFirst("vermeille", CatAdjective)
	require.NotNil(t, vermeil)
	assert.Equal(t, "vermeil", vermeil.BaseForm)
	assert.True(t, vermeil.Bool(FeatPreposed))
	assert.NotEmpty(t, vermeil.ID)

	_, err = lex.Load(strings.NewReader("<lexicon><word>"))
	require.Error(t, err)
}

func TestLexiconSaveAndLoadFS(t *testing.T) {
	fs, err := mem.NewFS()
	require.NoError(t, err)

	src, err := LoadLanguage(French)
	require.NoError(t, err)
	require.NoError(t, src.SaveFS(fs, "fr.xml"))

	dst := NewLexicon(French)
	n, err := dst.LoadFS(fs, "fr.xml")
	require.NoError(t, err)
	assert.Equal(t, src.Len(), n)

	for _, w := range src.Entries() {
		got := dst.ByID(w.ID)
		require.NotNil(t, got, w.ID)
		assert.Equal(t, w.BaseForm, got.BaseForm)
		assert.Equal(t, w.Category, got.Category)
		assert.Equal(t, w.Features(), got.Features(), w.ID)
	}

	_, err = dst.LoadFS(fs, "missing.xml")
	require.Error(t, err)
}

func TestLexiconLoadGlob(t *testing.T) {
	fsys := fstest.MapFS{
		"extra/animals/a.xml": {Data: []byte(extraLexicon)},
		"extra/b.xml": {Data: []byte(`<lexicon><word><base>zèbre</base><category>noun</category>` +
			`<gender>masculine</gender></word></lexicon>`)},
		"extra/readme.txt": {Data: []byte("not a lexicon")},
	}
	lex := NewLexicon(French)
	n, err := lex.LoadGlob(fsys, "extra/**/*.xml")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NotNil(t, lex.LookupFirst("zèbre", CatNoun))
	assert.NotNil(t, lex.LookupFirst("jument", CatNoun))

	// loading the same ids twice fails
	_, err = lex.LoadGlob(fsys, "extra/animals/*.xml")
	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestLoadLexiconFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.xml")
	require.NoError(t, os.WriteFile(path, []byte(extraLexicon), 0o644))

	lex, err := LoadLexiconFile(path)
	require.NoError(t, err)
	assert.Equal(t, French, lex.Language())
	assert.Equal(t, 2, lex.Len())

	_, err = LoadLexiconFile(filepath.Join(t.TempDir(), "none.xml"))
	require.Error(t, err)
}
