package nlg

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLexicon(t *testing.T) *Lexicon {
	t.Helper()
	lex := NewLexicon(French)
	for _, w := range []*WordEntry{
		NewWordEntry("n1", "cheval", CatNoun, Features{FeatGender: "masculine", FeatPlural: "chevaux"}),
		NewWordEntry("a1", "beau", CatAdjective, Features{
			FeatFeminineSingular: "belle",
			FeatPlural:           "beaux",
			FeatFemininePlural:   "belles",
			FeatPreposed:         true,
		}),
		NewWordEntry("d1", "le", CatDeterminer, Features{FeatFeminineSingular: "la", FeatPlural: "les"}),
		NewWordEntry("p1", "le", CatPronoun, Features{FeatPronounType: "personal", FeatPerson: "3", FeatGender: "masculine"}),
		NewWordEntry("p2", "la", CatPronoun, Features{FeatPronounType: "personal", FeatPerson: "3", FeatGender: "feminine"}),
		NewWordEntry("n2", "oeil", CatNoun, Features{FeatPlural: "yeux", FeatSpellingVariant: []string{"œil"}}),
	} {
		require.NoError(t, lex.Register(w))
	}
	return lex
}

func TestLexiconLookup(t *testing.T) {
	lex := testLexicon(t)

	tests := []struct {
		form string
		cat  Category
		ids  []string
	}{
		{"cheval", CatAny, []string{"n1"}},
		{"chevaux", CatAny, []string{"n1"}},
		{"chevaux", CatAdjective, []string{}},
		{"belles", CatAdjective, []string{"a1"}},
		{"le", CatAny, []string{"d1", "p1"}},
		{"le", CatPronoun, []string{"p1"}},
		// base matches before variant matches
		{"la", CatAny, []string{"p2", "d1"}},
		{"œil", CatNoun, []string{"n2"}},
		{" yeux ", CatNoun, []string{"n2"}},
		{"zorglub", CatAny, []string{}},
	}
	for _, tt := range tests {
		ids := []string{}
		for _, w := range lex.Lookup(tt.form, tt.cat) {
			ids = append(ids, w.ID)
		}
		assert.Equal(t, tt.ids, ids, "Lookup(%q, %s)", tt.form, tt.cat)
	}

	assert.Nil(t, lex.LookupFirst("zorglub", CatAny))
	assert.Equal(t, "d1", lex.LookupFirst("les", CatAny).ID)
	assert.Equal(t, "a1", lex.ByID("a1").ID)
	assert.Nil(t, lex.ByID("nope"))
	assert.True(t, lex.Contains("beaux"))
	assert.False(t, lex.Contains("belle-soeur"))
}

func TestLexiconNormalizedForms(t *testing.T) {
	lex := NewLexicon(French)
	require.NoError(t, lex.Register(NewWordEntry("", "quelqu’un", CatPronoun, nil)))
	require.NoError(t, lex.Register(NewWordEntry("", "été", CatNoun, nil)))

	assert.NotNil(t, lex.LookupFirst("quelqu'un", CatPronoun))
	assert.NotNil(t, lex.LookupFirst("été", CatNoun))
}

func TestLexiconRegister(t *testing.T) {
	lex := testLexicon(t)
	n := lex.Len()

	w := NewWordEntry("", "vert", CatAdjective, nil)
	require.NoError(t, lex.Register(w))
	assert.NotEmpty(t, w.ID)
	assert.Equal(t, n+1, lex.Len())
	assert.Same(t, w, lex.ByID(w.ID))

	err := lex.Register(NewWordEntry("n1", "jument", CatNoun, nil))
	require.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, n+1, lex.Len())
	assert.Empty(t, lex.Lookup("jument", CatAny))
}

func TestLexiconFindByFeatures(t *testing.T) {
	lex := testLexicon(t)

	q := Features{}
	q.Set(FeatPronounType, PronounPersonal)
	q.Set(FeatGender, GenderFeminine)
	assert.Equal(t, "p2", lex.FindByFeatures(q, CatPronoun).ID)

	// false matches an absent flag
	q.Set(FeatDetached, false)
	assert.Equal(t, "p2", lex.FindByFeatures(q, CatPronoun).ID)

	q.Set(FeatDetached, true)
	assert.Nil(t, lex.FindByFeatures(q, CatPronoun))

	preposed := Features{FeatPreposed: true}
	assert.Equal(t, "a1", lex.FindByFeatures(preposed, CatAny).ID)
	assert.Nil(t, lex.FindByFeatures(preposed, CatNoun))
}

func TestLexiconWord(t *testing.T) {
	lex := testLexicon(t)
	n := lex.Len()

	assert.Equal(t, "a1", lex.Word("beau", CatAdjective).ID)

	w := lex.Word("zorglub", CatAdjective)
	require.NotNil(t, w)
	assert.Equal(t, CatAdjective, w.Category)
	assert.Equal(t, n+1, lex.Len())
	assert.Same(t, w, lex.Word("zorglub", CatAdjective))
	assert.Equal(t, n+1, lex.Len())

	assert.Equal(t, CatNoun, lex.Word("truc", CatAny).Category)
}

func TestLexiconTransient(t *testing.T) {
	lex := testLexicon(t)
	n := lex.Len()

	assert.Same(t, lex.Word("beau", CatAdjective), lex.Transient("beau", CatAdjective))

	tests := []struct {
		form string
		cat  Category
		want Category
	}{
		{"zorglub", CatAdjective, CatAdjective},
		{"truc", CatAny, CatNoun},
		{"Beau", CatVerb, CatVerb},
	}
	for _, tt := range tests {
		w := lex.Transient(tt.form, tt.cat)
		require.NotNil(t, w, tt.form)
		assert.Equal(t, tt.want, w.Category, tt.form)
		assert.Empty(t, w.ID, tt.form)
	}
	assert.Equal(t, n, lex.Len())
	assert.False(t, lex.Contains("zorglub"))
}

func TestLexiconConcurrentWord(t *testing.T) {
	lex := testLexicon(t)
	n := lex.Len()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			lex.Word(fmt.Sprintf("mot%d", i%4), CatNoun)
			lex.Lookup("cheval", CatAny)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, n+4, lex.Len())
}

func TestCoordinatingConjunction(t *testing.T) {
	assert.Equal(t, "et", NewLexicon(French).CoordinatingConjunction().BaseForm)

	lex := NewLexicon(French)
	require.NoError(t, lex.Register(NewWordEntry("c1", "et", CatConjunction, nil)))
	assert.Equal(t, "c1", lex.CoordinatingConjunction().ID)
}

func TestWordEntry(t *testing.T) {
	w := NewWordEntry("a1", " beau ", CatAdjective, Features{
		FeatFeminineSingular: "belle",
		FeatSpellingVariant:  "bel",
		FeatParticle:         "",
	})
	assert.Equal(t, "beau", w.BaseForm)
	assert.Equal(t, []string{"bel", "belle"}, w.Variants())
	assert.False(t, w.IsOrdinal())
	assert.True(t, NewWordEntry("", "deuxième", CatAdjective, nil).IsOrdinal())

	e := w.Inflect(Features{FeatGender: GenderFeminine})
	assert.Equal(t, GenderFeminine, e.Gender())
	assert.False(t, w.Has(FeatGender), "Inflect must not touch the entry")

	f := w.Features()
	f.Set(FeatPlural, "beaux")
	assert.False(t, w.Has(FeatPlural), "Features must return a copy")
}

func TestFeatures(t *testing.T) {
	f := Features{}
	f.Set(FeatGender, GenderFeminine)
	f.Set(FeatPreposed, true)
	f.Set(FeatSpellingVariant, []string{"a", "b"})

	assert.Equal(t, "feminine", f[FeatGender])
	assert.Equal(t, GenderFeminine, f.gender())
	assert.True(t, f.Bool(FeatPreposed))
	assert.False(t, f.Bool(FeatProper))
	assert.Equal(t, "", f.String(FeatPreposed))
	assert.Equal(t, []string{"a", "b"}, f.Strings(FeatSpellingVariant))

	c := f.Clone()
	c.Strings(FeatSpellingVariant)[0] = "z"
	assert.Equal(t, []string{"a", "b"}, f.Strings(FeatSpellingVariant))

	f.Set(FeatGender, nil)
	assert.False(t, f.Has(FeatGender))

	assert.Panics(t, func() { f.Set(FeatGender, 42) })
}
