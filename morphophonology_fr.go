package nlg

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/cours-de-latin/nlg/internal/logger"
)

var (
	// forms of "le" and "lequel" that contract with "à" and "de"
	leLequelRE   = regexp.MustCompile(`^le(quel)?$`)
	lesLesquelRE = regexp.MustCompile(`^les(quel(le)?s)?$`)
	// "à" or "de", alone or ending a compound preposition ("près de")
	aRE  = regexp.MustCompile(`(^|\s)à$`)
	deRE = regexp.MustCompile(`(^|\s)de$`)
)

// FrenchMorphophonology applies the French adjacency rules in one left
// to right pass.
type FrenchMorphophonology struct {
	lex *Lexicon
	log *slog.Logger
}

// NewFrenchMorphophonology returns the French rules. lex is consulted
// to swap detached pronouns back to their clitic form.
func NewFrenchMorphophonology(lex *Lexicon) *FrenchMorphophonology {
	return &FrenchMorphophonology{lex: lex, log: logger.ForComponent("morphophonology")}
}

// Apply rewrites each adjacent pair once. A pair is skipped when either
// token is nulled, and the rules stop for a pair as soon as one of them
// nulls the right token.
func (mp *FrenchMorphophonology) Apply(tokens []*StringElement) {
	for i := 0; i+1 < len(tokens); i++ {
		left, right := tokens[i], tokens[i+1]
		if left == nil || right == nil || left.IsNull() || right.IsNull() {
			continue
		}
		var next *StringElement
		if i+2 < len(tokens) {
			next = tokens[i+2]
		}

		mp.contract(left, right, next)
		if right.IsNull() {
			continue
		}
		mp.undetach(left, right)
		liaison(left, right)
		elide(left, right)
		dedupe(left, right)
	}
}

// contract merges a preposition and a following article or relative
// pronoun: à le → au, de les → des, à lequel → auquel. "le" before a
// vowel is left to elision (de l'arbre).
func (mp *FrenchMorphophonology) contract(left, right, next *StringElement) {
	if left.Category() != CatPreposition && left.Category() != CatComplementiser {
		return
	}
	if right.Category() != CatDeterminer && right.Features().pronounType() != PronounRelative {
		return
	}

	var prefix, singular, plural string
	switch {
	case aRE.MatchString(left.Realisation):
		prefix, singular, plural = strings.TrimSuffix(left.Realisation, "à"), "au", "aux"
	case deRE.MatchString(left.Realisation):
		prefix, singular, plural = strings.TrimSuffix(left.Realisation, "de"), "du", "des"
	default:
		return
	}

	r := right.Realisation
	var merged string
	switch {
	case lesLesquelRE.MatchString(r):
		merged = plural + r[len("les"):]
	case leLequelRE.MatchString(r):
		if r == "le" && next != nil && !next.IsNull() && StartsWithVowel(next.Realisation) {
			return
		}
		merged = singular + r[len("le"):]
	default:
		return
	}
	mp.log.Debug("contract", "left", left.Realisation, "right", r, "result", prefix+merged)
	left.Realisation = prefix + merged
	// the merged token is an article now and must not elide again
	left.Features().Set(FeatVowelElision, nil)
	right.Null()
}

// undetach turns a detached first or second person singular pronoun
// back into its clitic before "y" or "en": donne-moi + en → m'en.
func (mp *FrenchMorphophonology) undetach(left, right *StringElement) {
	lf, rf := left.Features(), right.Features()
	if left.Category() != CatPronoun || right.Category() != CatPronoun {
		return
	}
	if lf.pronounType() != PronounPersonal || rf.pronounType() != PronounSpecialPersonal {
		return
	}
	person := lf.person()
	if person != PersonFirst && person != PersonSecond {
		return
	}
	if lf.number() != NumberSingular || !lf.Bool(FeatDetached) || mp.lex == nil {
		return
	}

	query := Features{}
	query.Set(FeatPronounType, PronounPersonal)
	query.Set(FeatPerson, person)
	query.Set(FeatNumber, NumberSingular)
	query.Set(FeatDetached, false)
	query.Set(FeatDiscourseFunction, FuncObject)
	w := mp.lex.FindByFeatures(query, CatPronoun)
	if w == nil {
		return
	}
	left.Realisation = w.BaseForm
	left.features = w.features.Clone()
	left.category = w.Category
}

// liaison swaps a masculine singular determiner or preposed adjective
// for its liaison form before a vowel: un bel arbre, cet homme. The
// right token must be a pre-modifier or the head of the same noun
// phrase, so "un arbre vieux et grand" and "est beau et grand" keep
// their forms.
func liaison(left, right *StringElement) {
	f := left.Features()
	form := f.String(FeatLiaison)
	if form == "" || f.gender() == GenderFeminine || f.number() == NumberPlural {
		return
	}
	if !StartsWithVowel(right.Realisation) {
		return
	}
	lfn, lnp := nounPhraseRole(left)
	rfn, rnp := nounPhraseRole(right)
	if lnp == nil || lnp != rnp {
		return
	}
	if lfn != FuncSpecifier && lfn != FuncPreModifier {
		return
	}
	if rfn != FuncPreModifier && rfn != FuncHead {
		return
	}
	left.Realisation = form
}

// nounPhraseRole climbs from e through the heads of nested phrases and
// returns the function of the constituent attached to the nearest noun
// phrase, with that phrase. The phrase is nil outside noun phrases.
func nounPhraseRole(e Element) (DiscourseFunction, *PhraseNode) {
	fn, p := e.DiscourseFunction(), e.Parent()
	for p != nil && p.Category() != CatNounPhrase {
		if fn != FuncHead {
			return fn, nil
		}
		fn, p = p.DiscourseFunction(), p.Parent()
	}
	return fn, p
}

// elide replaces the final vowel of left by an apostrophe: si il →
// s'il, le arbre → l'arbre, que elle → qu'elle.
func elide(left, right *StringElement) {
	l, r := left.Realisation, right.Realisation
	siIl := (l == "si" || strings.HasSuffix(l, " si")) && (r == "il" || r == "ils")

	f := left.Features()
	elidable := (f.Bool(FeatVowelElision) && f.number() != NumberPlural) ||
		strings.HasSuffix(l, " de") || strings.HasSuffix(l, " que")
	if !siIl && !(elidable && StartsWithVowel(r)) {
		return
	}
	if strings.HasSuffix(l, "'") {
		return
	}
	_, size := utf8.DecodeLastRuneInString(l)
	left.Realisation = l[:len(l)-size] + "'"
}

// dedupe drops a right token repeating the left "de" or "que".
func dedupe(left, right *StringElement) {
	switch left.Realisation {
	case "de":
		switch right.Realisation {
		case "de", "du", "d'":
			right.Null()
		}
	case "que":
		switch right.Realisation {
		case "que", "qu'":
			right.Null()
		}
	}
}
