package nlg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tok realises the lexicon word form of category cat as a token spelled
// text, the way the morphology would hand it over.
func tok(t *testing.T, lex *Lexicon, form string, cat Category, text string) *StringElement {
	t.Helper()
	return stringFrom(text, word(t, lex, form, cat).Inflect(nil))
}

func applyRules(t *testing.T, r *Realiser, tokens ...*StringElement) string {
	t.Helper()
	r.Rules().Morphophonology.Apply(tokens)
	return Join(tokens)
}

func TestContraction(t *testing.T) {
	r := newFrench(t)
	lex := r.Lexicon()

	tests := []struct {
		prep, right string
		cat         Category
		want        string
	}{
		{"à", "le", CatDeterminer, "au"},
		{"à", "les", CatDeterminer, "aux"},
		{"de", "le", CatDeterminer, "du"},
		{"de", "les", CatDeterminer, "des"},
		{"à", "lequel", CatPronoun, "auquel"},
		{"de", "lequel", CatPronoun, "duquel"},
		{"de", "lesquelles", CatPronoun, "desquelles"},
		{"à", "la", CatDeterminer, "à la"},
	}
	for _, tt := range tests {
		base := "le"
		if tt.cat == CatPronoun {
			base = "lequel"
		}
		left := tok(t, lex, tt.prep, CatPreposition, tt.prep)
		right := tok(t, lex, base, tt.cat, tt.right)
		assert.Equal(t, tt.want, applyRules(t, r, left, right), "%s + %s", tt.prep, tt.right)
	}

	left := tok(t, lex, "à", CatPreposition, "à")
	right := tok(t, lex, "le", CatDeterminer, "le")
	r.Rules().Morphophonology.Apply([]*StringElement{left, right})
	assert.Equal(t, "au", left.Realisation)
	assert.True(t, right.IsNull())
}

func TestContractionSentence(t *testing.T) {
	r := newFrench(t)
	lex := r.Lexicon()

	got := applyRules(t, r,
		tok(t, lex, "je", CatPronoun, "Je"),
		tok(t, lex, "aller", CatVerb, "vais"),
		tok(t, lex, "à", CatPreposition, "à"),
		tok(t, lex, "le", CatDeterminer, "la"),
		tok(t, lex, "pêche", CatNoun, "pêche"),
		tok(t, lex, "à", CatPreposition, "à"),
		tok(t, lex, "le", CatDeterminer, "le"),
		tok(t, lex, "poisson", CatNoun, "poisson"),
	)
	assert.Equal(t, "Je vais à la pêche au poisson", got)
}

func TestContractionBeforeVowel(t *testing.T) {
	r := newFrench(t)
	lex := r.Lexicon()

	got := applyRules(t, r,
		tok(t, lex, "de", CatPreposition, "de"),
		tok(t, lex, "le", CatDeterminer, "le"),
		tok(t, lex, "arbre", CatNoun, "arbre"),
	)
	assert.Equal(t, "de l'arbre", got)
}

func TestElision(t *testing.T) {
	r := newFrench(t)
	lex := r.Lexicon()

	tests := []struct {
		left  *StringElement
		right *StringElement
		want  string
	}{
		{tok(t, lex, "je", CatPronoun, "je"), tok(t, lex, "avoir", CatVerb, "ai"), "j'ai"},
		{tok(t, lex, "que", CatComplementiser, "que"), tok(t, lex, "il", CatPronoun, "il"), "qu'il"},
		{tok(t, lex, "si", CatComplementiser, "si"), tok(t, lex, "il", CatPronoun, "ils"), "s'ils"},
		{tok(t, lex, "si", CatComplementiser, "si"), tok(t, lex, "elle", CatPronoun, "elle"), "si elle"},
		{tok(t, lex, "de", CatPreposition, "de"), tok(t, lex, "eau", CatNoun, "eau"), "d'eau"},
		{tok(t, lex, "le", CatDeterminer, "la"), tok(t, lex, "eau", CatNoun, "eau"), "l'eau"},
		{tok(t, lex, "me", CatPronoun, "me"), tok(t, lex, "parler", CatVerb, "parle"), "me parle"},
		{NewStringElement("près de"), tok(t, lex, "arbre", CatNoun, "arbre"), "près d'arbre"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, applyRules(t, r, tt.left, tt.right))
	}

	// no elision for plurals
	les := tok(t, lex, "le", CatDeterminer, "les")
	les.Features().Set(FeatNumber, NumberPlural)
	assert.Equal(t, "les eaux", applyRules(t, r, les, tok(t, lex, "eau", CatNoun, "eaux")))
}

func TestUndetach(t *testing.T) {
	r := newFrench(t)
	lex := r.Lexicon()

	assert.Equal(t, "m'en", applyRules(t, r,
		tok(t, lex, "moi", CatPronoun, "moi"),
		tok(t, lex, "en", CatPronoun, "en"),
	))
	assert.Equal(t, "t'y", applyRules(t, r,
		tok(t, lex, "toi", CatPronoun, "toi"),
		tok(t, lex, "y", CatPronoun, "y"),
	))
	assert.Equal(t, "moi aussi", applyRules(t, r,
		tok(t, lex, "moi", CatPronoun, "moi"),
		NewStringElement("aussi"),
	))
}

func TestDeduplicate(t *testing.T) {
	r := newFrench(t)
	lex := r.Lexicon()

	assert.Equal(t, "de", applyRules(t, r,
		tok(t, lex, "de", CatPreposition, "de"),
		NewStringElement("de"),
	))
	assert.Equal(t, "que", applyRules(t, r,
		NewStringElement("que"),
		NewStringElement("que"),
	))
	assert.Equal(t, "que", applyRules(t, r,
		NewStringElement("que"),
		NewStringElement("qu'"),
	))
}

func TestJoin(t *testing.T) {
	null := NewStringElement("x")
	null.Null()
	tokens := []*StringElement{
		NewStringElement("l'"),
		NewStringElement("arbre"),
		null,
		nil,
		NewStringElement("vert"),
	}
	assert.Equal(t, "l'arbre vert", Join(tokens))
	assert.Empty(t, Join(nil))
}

func TestApplyEndToEnd(t *testing.T) {
	r := newFrench(t)
	lex := r.Lexicon()

	pp := NewPhrase(CatPrepositionalPhrase)
	pp.SetHead(word(t, lex, "de", CatPreposition).Inflect(nil))
	np := nounPhrase(t, lex, "le", "cheval")
	np.SetNumber(NumberPlural)
	pp.AddComplement(np)

	s, err := r.RealiseString(pp)
	require.NoError(t, err)
	assert.Equal(t, "des chevaux", s)
}
