package nlg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyser(t *testing.T) *Analyser {
	t.Helper()
	a, err := NewAnalyser(newFrench(t).Lexicon())
	require.NoError(t, err)
	return a
}

func entryIDs(ls []Lemmatization) []string {
	ids := make([]string, 0, len(ls))
	for _, l := range ls {
		ids = append(ids, l.Entry.ID)
	}
	return ids
}

func descriptions(l Lemmatization) []string {
	out := make([]string, 0, len(l.Analyses))
	for _, an := range l.Analyses {
		out = append(out, an.Description)
	}
	return out
}

func TestNewAnalyser(t *testing.T) {
	a := newAnalyser(t)
	assert.Greater(t, a.Len(), newFrench(t).Lexicon().Len())

	_, err := NewAnalyser(NewLexicon(English))
	require.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestAnalyseVerbForms(t *testing.T) {
	a := newAnalyser(t)

	got := a.AnalyseWord("finissons", false)
	require.Len(t, got, 1)
	assert.Equal(t, "v_finir", got[0].Entry.ID)
	assert.Equal(t, []string{"1re pluriel indicatif présent", "1re pluriel impératif présent"}, descriptions(got[0]))

	got = a.AnalyseWord("finies", false)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"participe passé féminin pluriel"}, descriptions(got[0]))

	got = a.AnalyseWord("vais", false)
	require.Len(t, got, 1)
	assert.Equal(t, "v_aller", got[0].Entry.ID)

	got = a.AnalyseWord("manger", false)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"infinitif"}, descriptions(got[0]))
}

func TestAnalyseAgreement(t *testing.T) {
	a := newAnalyser(t)

	got := a.AnalyseWord("belles", false)
	require.Len(t, got, 1)
	assert.Equal(t, "adj_beau", got[0].Entry.ID)
	assert.Equal(t, []string{"féminin pluriel"}, descriptions(got[0]))

	got = a.AnalyseWord("chevaux", false)
	require.Len(t, got, 1)
	assert.Equal(t, "n_cheval", got[0].Entry.ID)
	assert.Equal(t, []string{"pluriel"}, descriptions(got[0]))

	assert.Contains(t, entryIDs(a.AnalyseWord("cette", false)), "det_ce")
	assert.Equal(t, "chevaux", a.AnalyseWord("chevaux", false)[0].Analyses[0].Form)
}

func TestAnalyseElision(t *testing.T) {
	a := newAnalyser(t)

	got := a.AnalyseWord("l'arbre", false)
	ids := entryIDs(got)
	assert.Contains(t, ids, "det_le")
	assert.Equal(t, "n_arbre", ids[len(ids)-1])

	got = a.AnalyseWord("l’arbre", false)
	assert.Equal(t, ids, entryIDs(got), "typographic apostrophes are folded")

	got = a.AnalyseWord("qu'", false)
	require.Len(t, got, 1)
	assert.Equal(t, "comp_que", got[0].Entry.ID)

	assert.Empty(t, a.AnalyseWord("l'zorglub", false))
	assert.Empty(t, a.AnalyseWord("zorglub'arbre", false))
}

func TestAnalyseContraction(t *testing.T) {
	a := newAnalyser(t)

	got := a.AnalyseWord("Au", true)
	require.Equal(t, []string{"prep_à", "det_le"}, entryIDs(got))
	for _, l := range got {
		for _, an := range l.Analyses {
			assert.Equal(t, "au", an.Contraction)
		}
	}
	assert.Equal(t, []string{"masculin singulier"}, descriptions(got[1]))

	got = a.AnalyseWord("des", false)
	require.Equal(t, []string{"det_un", "prep_de", "det_le"}, entryIDs(got))
	assert.Empty(t, got[0].Analyses[0].Contraction)

	got = a.AnalyseWord("auxquelles", false)
	assert.Equal(t, []string{"prep_à", "pro_lequel"}, entryIDs(got))
}

func TestAnalyseCase(t *testing.T) {
	a := newAnalyser(t)

	assert.Empty(t, a.AnalyseWord("Chevaux", false))
	assert.Equal(t, []string{"n_cheval"}, entryIDs(a.AnalyseWord("Chevaux", true)))

	got := a.AnalyseWord("paris", false)
	assert.Equal(t, []string{"n_Paris"}, entryIDs(got))
	assert.Empty(t, a.AnalyseWord("", true))
	assert.Empty(t, a.AnalyseWord("zorglub", true))
}

func TestAnalyseText(t *testing.T) {
	a := newAnalyser(t)

	got := a.AnalyseText("Le chat mange du poisson. Il l'aime !")
	tokens := make([]string, 0, len(got))
	var starts []string
	for _, r := range got {
		tokens = append(tokens, r.Token)
		if r.SentenceStart {
			starts = append(starts, r.Token)
		}
	}
	assert.Equal(t, []string{"Le", "chat", "mange", "du", "poisson", "Il", "l'", "aime"}, tokens)
	assert.Equal(t, []string{"Le", "Il"}, starts)

	assert.Contains(t, entryIDs(got[0].Lemmas), "det_le")
	assert.Contains(t, entryIDs(got[2].Lemmas), "v_manger")
	assert.Equal(t, []string{"prep_de", "det_le"}, entryIDs(got[3].Lemmas))
	assert.Contains(t, entryIDs(got[5].Lemmas), "pro_il")
	assert.Empty(t, got[7].Lemmas, "aimer is not in the lexicon")

	assert.Empty(t, a.AnalyseText("  ... "))
}

func TestElidedForm(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"le", "l'", true},
		{"la", "l'", true},
		{"que", "qu'", true},
		{"si", "s'", true},
		{"les", "", false},
		{"lequel", "", false},
		{"a", "", false},
		{"l'", "", false},
	}
	for _, tt := range tests {
		got, ok := elidedForm(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
