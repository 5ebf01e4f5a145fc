package nlg

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// reWord matches a word token: an elided prefix with its apostrophe
// ("l'", "qu'") or a run of letters, hyphenated compounds included.
var reWord = regexp.MustCompile(`\p{L}+'|\p{L}+(?:-\p{L}+)*`)

// reSentenceEnd matches the punctuation that closes a sentence.
var reSentenceEnd = regexp.MustCompile(`[.!?…]`)

// contraction is the expansion of a fused preposition and article.
type contraction struct {
	prep, article string
}

// contractions lists the French preposition + article fusions.
var contractions = map[string]contraction{
	"au":         {"à", "le"},
	"aux":        {"à", "les"},
	"du":         {"de", "le"},
	"des":        {"de", "les"},
	"auquel":     {"à", "lequel"},
	"auxquels":   {"à", "lesquels"},
	"auxquelles": {"à", "lesquelles"},
	"duquel":     {"de", "lequel"},
	"desquels":   {"de", "lesquels"},
	"desquelles": {"de", "lesquelles"},
}

// AnalyseWord returns the lexicon entries form may be an inflection
// of. Contractions are expanded alongside the direct
// readings ("des" is both "un" plural and "de les"). Failing a direct
// match, an elided prefix is split off ("l'arbre" → "l'" + "arbre").
// At sentence start a capitalised form is also tried in lower case; a
// lower-case form with no reading is retried capitalised, for proper
// nouns.
func (a *Analyser) AnalyseWord(form string, sentenceStart bool) []Lemmatization {
	form = NormalizeForm(form)
	if form == "" {
		return nil
	}
	rs := a.lemmatize(form)
	if sentenceStart {
		if lower := strings.ToLower(form); lower != form {
			rs = append(rs, a.lemmatize(lower)...)
		}
	}
	if len(rs) == 0 {
		if r, _ := utf8.DecodeRuneInString(form); unicode.IsLower(r) {
			rs = a.lemmatize(Capitalise(form))
		}
	}
	return group(rs)
}

func (a *Analyser) lemmatize(form string) []reading {
	rs := slices.Clone(a.forms[form])

	if c, ok := contractions[form]; ok {
		for _, r := range a.forms[c.prep] {
			if r.entry.Category == CatPreposition {
				r.Contraction = form
				rs = append(rs, r)
			}
		}
		for _, r := range a.forms[c.article] {
			if r.entry.Category == CatDeterminer || r.entry.String(FeatPronounType) == string(PronounRelative) {
				r.Contraction = form
				rs = append(rs, r)
			}
		}
	}

	if len(rs) == 0 {
		if i := strings.IndexByte(form, '\''); i > 0 && i < len(form)-1 {
			prefix, rest := a.lemmatize(form[:i+1]), a.lemmatize(form[i+1:])
			if len(prefix) > 0 && len(rest) > 0 {
				rs = append(prefix, rest...)
			}
		}
	}
	return rs
}

// group gathers readings by entry, keeping first-appearance order and
// dropping repeated readings.
func group(rs []reading) []Lemmatization {
	var out []Lemmatization
	pos := make(map[*WordEntry]int)
	seen := make(map[reading]bool)
	for _, r := range rs {
		if seen[r] {
			continue
		}
		seen[r] = true
		i, ok := pos[r.entry]
		if !ok {
			i = len(out)
			pos[r.entry] = i
			out = append(out, Lemmatization{Entry: r.entry})
		}
		out[i].Analyses = append(out[i].Analyses, r.Analysis)
	}
	return out
}

// AnalyseText tokenizes text and lemmatizes each word token. A token
// starts a sentence when it is the first one or when sentence-final
// punctuation separates it from the previous token.
func (a *Analyser) AnalyseText(text string) []LemmatizationResult {
	text = NormalizeForm(text)
	var results []LemmatizationResult
	prevEnd := 0
	for ti, loc := range reWord.FindAllStringIndex(text, -1) {
		start := ti == 0 || reSentenceEnd.MatchString(text[prevEnd:loc[0]])
		token := text[loc[0]:loc[1]]
		results = append(results, LemmatizationResult{
			Token:         token,
			SentenceStart: start,
			Lemmas:        a.AnalyseWord(token, start),
		})
		prevEnd = loc[1]
	}
	return results
}
