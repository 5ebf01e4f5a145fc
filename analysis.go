package nlg

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/cours-de-latin/nlg/internal/logger"
)

// Analysis holds a single morphological reading of a word form.
type Analysis struct {
	// Form is the generated form that matched, e.g. "belles".
	Form string `json:"form"`
	// Description is the human-readable reading, e.g.
	// "féminin pluriel" or "1re pluriel indicatif présent".
	Description string `json:"description"`
	// Contraction is the surface form when the reading comes from
	// expanding a contraction ("au" → "à le"), or "".
	Contraction string `json:"contraction,omitempty"`
}

// Lemmatization groups the readings of a form under one lexicon entry.
type Lemmatization struct {
	// Entry is the lexicon entry the form belongs to.
	Entry *WordEntry
	// Analyses lists the readings, in generation order.
	Analyses []Analysis
}

// LemmatizationResult holds the lemmatization of a single token.
type LemmatizationResult struct {
	// Token is the word form as it appears in the text.
	Token string
	// SentenceStart is set for the first token of a sentence.
	SentenceStart bool
	// Lemmas lists the matching entries in lexicon order.
	Lemmas []Lemmatization
}

// Analyser maps inflected French forms back to lexicon entries. It
// indexes every form the morphology generates for the lexicon at
// construction time; words registered later are not seen.
type Analyser struct {
	m *FrenchMorphology

	// forms maps NormalizeForm(form) → readings.
	forms map[string][]reading
	// seen dedupes readings while indexing.
	seen map[string]bool

	log *slog.Logger
}

type reading struct {
	entry *WordEntry
	Analysis
}

var (
	genderNames = map[Gender]string{GenderMasculine: "masculin", GenderFeminine: "féminin"}
	numberNames = map[Number]string{NumberSingular: "singulier", NumberPlural: "pluriel"}
	personNames = map[Person]string{PersonFirst: "1re", PersonSecond: "2e", PersonThird: "3e"}
	tenseNames  = map[string]string{
		TablePresent:     "indicatif présent",
		TableImperfect:   "indicatif imparfait",
		TableFuture:      "indicatif futur",
		TableConditional: "conditionnel présent",
		TableSubjunctive: "subjonctif présent",
		TableImperative:  "impératif présent",
	}
	variantNames = map[Feature]string{
		FeatPlural:           "pluriel",
		FeatFeminineSingular: "féminin singulier",
		FeatFemininePlural:   "féminin pluriel",
	}
)

var (
	agreementGenders = []Gender{GenderMasculine, GenderFeminine}
	agreementNumbers = []Number{NumberSingular, NumberPlural}
)

// NewAnalyser indexes every form of every entry of lex. Only French
// lexicons can be analysed.
func NewAnalyser(lex *Lexicon) (*Analyser, error) {
	if lex.Language() != French {
		return nil, fmt.Errorf("analyser for %q: %w", lex.Language(), ErrUnsupportedLanguage)
	}
	a := &Analyser{
		m:     NewFrenchMorphology(lex),
		forms: make(map[string][]reading),
		seen:  make(map[string]bool),
		log:   logger.ForComponent("analyser"),
	}
	for _, w := range lex.Entries() {
		a.index(w)
	}
	a.seen = nil
	a.log.Debug("analyser ready", "entries", lex.Len(), "forms", len(a.forms))
	return a, nil
}

// Len returns the number of distinct indexed forms.
func (a *Analyser) Len() int { return len(a.forms) }

func (a *Analyser) index(w *WordEntry) {
	switch w.Category {
	case CatNoun:
		a.indexNoun(w)
	case CatAdjective, CatDeterminer:
		a.indexAgreeing(w)
	case CatVerb, CatModal:
		a.indexVerb(w)
	default:
		desc := "invariable"
		if len(w.Variants()) > 0 {
			desc = "forme de base"
		}
		a.add(w, w.BaseForm, desc)
		for _, v := range w.features.Strings(FeatSpellingVariant) {
			a.add(w, v, "variante")
		}
		for _, k := range []Feature{FeatPlural, FeatFeminineSingular, FeatFemininePlural} {
			if v := w.String(k); v != "" {
				a.add(w, v, variantNames[k])
			}
		}
	}
}

func (a *Analyser) indexNoun(w *WordEntry) {
	genders := []Gender{""}
	if w.String(FeatFeminineSingular) != "" && w.String(FeatOppositeGender) == "" {
		genders = append(genders, GenderFeminine)
	}
	for _, g := range genders {
		for _, n := range agreementNumbers {
			f := Features{FeatNumber: n}
			if g != "" {
				f[FeatGender] = g
			}
			desc := numberNames[n]
			if g != "" {
				desc = genderNames[g] + " " + desc
			}
			a.add(w, a.m.Noun(w.Inflect(f)).Realisation, desc)
		}
	}
	for _, v := range w.features.Strings(FeatSpellingVariant) {
		a.add(w, v, "variante")
	}
}

func (a *Analyser) indexAgreeing(w *WordEntry) {
	for _, g := range agreementGenders {
		for _, n := range agreementNumbers {
			e := w.Inflect(Features{FeatGender: g, FeatNumber: n})
			var tok *StringElement
			if w.Category == CatDeterminer {
				tok = a.m.Determiner(e)
			} else {
				tok = a.m.Adjective(e)
			}
			a.add(w, tok.Realisation, genderNames[g]+" "+numberNames[n])
		}
	}
	for _, v := range w.features.Strings(FeatSpellingVariant) {
		a.add(w, v, "variante")
	}
}

// indexVerb indexes the infinitive, every cell of the conjugation table
// and the participles. A verb whose base form matches no group keeps
// only its infinitive.
func (a *Analyser) indexVerb(w *WordEntry) {
	a.add(w, w.BaseForm, "infinitif")
	table, err := a.m.Conjugate(w)
	if err != nil {
		a.log.Debug("verb not conjugated", "verb", w.BaseForm, "error", err)
		return
	}
	for _, name := range TableOrder {
		persons := Persons
		if name == TableImperative {
			persons = imperativePersons
		}
		for i, form := range table.Cells[name] {
			pn := persons[i]
			a.add(w, form, fmt.Sprintf("%s %s %s", personNames[pn.Person], numberNames[pn.Number], tenseNames[name]))
		}
	}
	a.add(w, table.PresentParticiple, "participe présent")
	for _, g := range agreementGenders {
		for _, n := range agreementNumbers {
			pp, err := a.m.PastParticiple(w, g, n)
			if err != nil {
				continue
			}
			a.add(w, pp, "participe passé "+genderNames[g]+" "+numberNames[n])
		}
	}
}

// add records one reading of form, plus its elided form when w elides
// before a vowel ("le" → "l'", "que" → "qu'").
func (a *Analyser) add(w *WordEntry, form, desc string) {
	form = NormalizeForm(form)
	if form == "" {
		return
	}
	key := form + "\x00" + w.ID + "\x00" + desc
	if a.seen[key] {
		return
	}
	a.seen[key] = true
	a.forms[form] = append(a.forms[form], reading{entry: w, Analysis: Analysis{Form: form, Description: desc}})

	if w.Bool(FeatVowelElision) {
		if elided, ok := elidedForm(form); ok {
			a.add(w, elided, desc+", élidé")
		}
	}
}

// elidedForm drops the final vowel of a one-syllable form and appends
// an apostrophe.
func elidedForm(form string) (string, bool) {
	if strings.HasSuffix(form, "'") || utf8.RuneCountInString(form) > 3 {
		return "", false
	}
	last, size := utf8.DecodeLastRuneInString(form)
	if !strings.ContainsRune("aei", last) || size == len(form) {
		return "", false
	}
	return form[:len(form)-size] + "'", true
}
