package nlg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// functions lists the discourse function of every leaf of l.
func functions(l *ListElement) []DiscourseFunction {
	var out []DiscourseFunction
	for _, c := range l.Components() {
		out = append(out, c.DiscourseFunction())
	}
	return out
}

func TestNounPhraseOrder(t *testing.T) {
	r := newFrench(t)
	lex := r.Lexicon()

	np := nounPhrase(t, lex, "le", "arbre")
	np.AddPremodifier(word(t, lex, "grand", CatAdjective).Inflect(nil))
	np.AddComplement(NewStringElement("de Paris"))
	np.AddPostmodifier(word(t, lex, "vert", CatAdjective).Inflect(nil))

	l := r.RealiseSyntax(np)
	assert.Equal(t, "le grand arbre de Paris vert", l.String())
	assert.Equal(t, []DiscourseFunction{
		FuncSpecifier, FuncPreModifier, FuncHead, FuncComplement, FuncPostModifier,
	}, functions(l))
	for _, c := range l.Components() {
		assert.Same(t, np, c.Parent())
	}
}

func TestGenericPhraseOrder(t *testing.T) {
	r := newFrench(t)
	lex := r.Lexicon()

	vp := NewPhrase(CatVerbPhrase)
	vp.AddPremodifier(word(t, lex, "bientôt", CatAdverb).Inflect(nil))
	vp.SetHead(word(t, lex, "partir", CatVerb).Inflect(nil))
	vp.AddPostmodifier(word(t, lex, "vite", CatAdverb).Inflect(nil))
	vp.SetTense(TenseFuture)
	vp.SetPerson(PersonFirst)

	l := r.RealiseSyntax(vp)
	assert.Equal(t, "bientôt partir vite", l.String())
	assert.Equal(t, []DiscourseFunction{FuncPreModifier, FuncHead, FuncPostModifier}, functions(l))

	s, err := r.RealiseString(vp)
	require.NoError(t, err)
	assert.Equal(t, "bientôt partirai vite", s)
}

func TestRaisedSpecifier(t *testing.T) {
	r := newFrench(t)
	np := nounPhrase(t, r.Lexicon(), "le", "arbre")
	np.SetRaised(true)
	assert.Equal(t, "arbre", r.RealiseSyntax(np).String())
}

func TestPronounSpecifierNumber(t *testing.T) {
	r := newFrench(t)
	lex := r.Lexicon()
	np := NewPhrase(CatNounPhrase)
	spec := word(t, lex, "celui", CatPronoun).Inflect(nil)
	np.SetSpecifier(spec)
	np.SetHead(word(t, lex, "arbre", CatNoun).Inflect(nil))
	np.SetNumber(NumberPlural)

	r.RealiseSyntax(np)
	assert.Equal(t, NumberPlural, spec.Number())
}

func TestPronominalPhrase(t *testing.T) {
	r := newFrench(t)
	np := nounPhrase(t, r.Lexicon(), "le", "maison")
	np.SetPronominal(true)

	l := r.RealiseSyntax(np)
	require.Equal(t, 1, l.Len())
	pro, ok := l.Head().(*InflectedElement)
	require.True(t, ok)
	assert.Equal(t, CatPronoun, pro.Category())
	assert.Equal(t, "elle", pro.BaseForm())
	assert.Same(t, np, pro.Parent())
}

func TestMalformedChildrenAreSkipped(t *testing.T) {
	r := newFrench(t)
	lex := r.Lexicon()

	vp := NewPhrase(CatVerbPhrase)
	vp.SetHead(word(t, lex, "manger", CatVerb).Inflect(nil))
	vp.AddComplement(&StringElement{Realisation: "???"})
	vp.AddComplement(nounPhrase(t, lex, "le", "poisson"))
	vp.AddPremodifier(nil)

	s, err := r.RealiseString(vp)
	require.NoError(t, err)
	assert.Equal(t, "mange le poisson", s)
}

func TestCoordinatedComplements(t *testing.T) {
	r := newFrench(t)
	lex := r.Lexicon()

	vp := NewPhrase(CatVerbPhrase)
	vp.SetHead(word(t, lex, "manger", CatVerb).Inflect(nil))
	vp.AddComplement(nounPhrase(t, lex, "le", "pêche"))
	vp.AddComplement(nounPhrase(t, lex, "le", "poisson"))

	s, err := r.RealiseString(vp)
	require.NoError(t, err)
	assert.Equal(t, "mange la pêche et le poisson", s)
}

func TestMixedComplementsAreNotCoordinated(t *testing.T) {
	r := newFrench(t)
	lex := r.Lexicon()

	vp := NewPhrase(CatVerbPhrase)
	vp.SetHead(word(t, lex, "manger", CatVerb).Inflect(nil))
	vp.AddComplement(nounPhrase(t, lex, "le", "poisson"))
	vp.AddComplement(NewStringElement("à midi"))

	s, err := r.RealiseString(vp)
	require.NoError(t, err)
	assert.Equal(t, "mange le poisson à midi", s)
}

func TestPresetFunctionSurvivesSlot(t *testing.T) {
	r := newFrench(t)
	lex := r.Lexicon()

	tests := []struct {
		name   string
		preset DiscourseFunction
		want   DiscourseFunction
	}{
		{"untagged", "", FuncPostModifier},
		{"front modifier", FuncFrontModifier, FuncFrontModifier},
		{"cue phrase", FuncCue, FuncCue},
		{"object", FuncObject, FuncObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod := NewStringElement("de Paris")
			if tt.preset != "" {
				mod.SetDiscourseFunction(tt.preset)
			}
			np := nounPhrase(t, lex, "le", "arbre")
			np.AddPostmodifier(mod)

			l := r.RealiseSyntax(np)
			assert.Equal(t, "le arbre de Paris", l.String())
			assert.Equal(t, tt.want, mod.DiscourseFunction())
			assert.Equal(t, tt.want, l.Components()[2].DiscourseFunction())
		})
	}
}

func TestElidedChildren(t *testing.T) {
	r := newFrench(t)
	lex := r.Lexicon()

	np := nounPhrase(t, lex, "le", "arbre")
	np.AddPostmodifier(word(t, lex, "vert", CatAdjective).Inflect(Features{FeatElided: true}))
	pp := NewPhrase(CatPrepositionalPhrase)
	pp.SetElided(true)
	np.AddComplement(pp)

	assert.Equal(t, "le arbre", r.RealiseSyntax(np).String())
	assert.Nil(t, r.Rules().Syntax.Realise(pp))
}

func TestHeadFeaturePropagation(t *testing.T) {
	r := newFrench(t)
	lex := r.Lexicon()

	clause := NewPhrase(CatClause)
	clause.SetTense(TenseConditional)
	vp := NewPhrase(CatVerbPhrase)
	vp.SetHead(word(t, lex, "vendre", CatVerb).Inflect(nil))
	clause.SetHead(vp)
	clause.SetPerson(PersonSecond)
	clause.SetNumber(NumberPlural)

	s, err := r.RealiseString(clause)
	require.NoError(t, err)
	assert.Equal(t, "vendriez", s)
}

func TestSubordinateClause(t *testing.T) {
	r := newFrench(t)
	lex := r.Lexicon()

	sub := NewPhrase(CatClause)
	vp := NewPhrase(CatVerbPhrase)
	vp.AddComplement(sub)
	assert.Equal(t, ClauseSubordinate, sub.Features().clauseStatus())
	assert.Equal(t, FuncObject, sub.DiscourseFunction())

	sub.AddPremodifier(word(t, lex, "que", CatComplementiser).Inflect(nil))
	subject := nounPhrase(t, lex, "le", "enfant")
	subject.SetDiscourseFunction(FuncSubject)
	sub.AddPremodifier(subject)
	inner := NewPhrase(CatVerbPhrase)
	inner.SetHead(word(t, lex, "partir", CatVerb).Inflect(nil))
	sub.SetHead(inner)

	vp.SetHead(word(t, lex, "voir", CatVerb).Inflect(nil))
	vp.SetPerson(PersonFirst)

	s, err := r.RealiseString(vp)
	require.NoError(t, err)
	assert.Equal(t, "vois que l'enfant part", s)
}

func TestAttachTwicePanics(t *testing.T) {
	lex := NewLexicon(French)
	adj := lex.Word("vert", CatAdjective).Inflect(nil)
	a := NewPhrase(CatNounPhrase)
	a.AddPostmodifier(adj)
	assert.Panics(t, func() { NewPhrase(CatNounPhrase).AddPostmodifier(adj) })
}

func TestAddModifier(t *testing.T) {
	r := newFrench(t)
	lex := r.Lexicon()

	np := nounPhrase(t, lex, "le", "maison")
	np.AddModifier("petit", lex)
	np.AddModifier("deuxième", lex)
	np.AddModifier("rouge", lex)
	np.AddModifier("très loin", lex)
	np.AddModifier("", lex)
	np.AddModifier(nil, lex)
	np.AddModifier("cramoisi", lex)

	assert.Len(t, np.Premodifiers(), 2)
	require.Len(t, np.Postmodifiers(), 3)
	assert.Equal(t, CatCannedText, np.Postmodifiers()[1].Category())
	assert.NotNil(t, lex.LookupFirst("cramoisi", CatAdjective), "unknown adjective is registered")

	s, err := r.RealiseString(np)
	require.NoError(t, err)
	assert.Equal(t, "la petite deuxième maison rouge très loin cramoisie", s)
}
