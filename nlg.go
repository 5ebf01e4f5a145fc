// Package nlg is a rule-based French surface realiser: it turns a
// phrase specification (a tree of constituents annotated with gender,
// number, person and tense) into a grammatical sentence.
//
// Realisation runs in three stages. The syntax stage flattens the tree
// into an ordered list of leaves; the morphology stage inflects each
// leaf; the morphophonology stage contracts and elides adjacent tokens.
package nlg

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/cours-de-latin/nlg/internal/logger"
)

// Realiser holds a lexicon and the rules of its language, and provides
// the public API.
type Realiser struct {
	// lex is the shared lexicon. It may grow during realisation when
	// unknown words are synthesized.
	lex *Lexicon

	// rules are the syntax, morphology and morphophonology rules of
	// lex's language.
	rules Rules

	log *slog.Logger
}

// New returns a Realiser for lex's language.
func New(lex *Lexicon) (*Realiser, error) {
	rules, err := RulesFor(lex.Language(), lex)
	if err != nil {
		return nil, err
	}
	return &Realiser{lex: lex, rules: rules, log: logger.ForComponent("realiser")}, nil
}

// NewFrench loads the embedded French lexicon and returns a Realiser
// for it.
func NewFrench() (*Realiser, error) {
	lex, err := LoadLanguage(French)
	if err != nil {
		return nil, err
	}
	return New(lex)
}

// Lexicon returns the lexicon the realiser draws words from.
func (r *Realiser) Lexicon() *Lexicon { return r.lex }

// Rules returns the rule set in use.
func (r *Realiser) Rules() Rules { return r.rules }

// Word returns the entry for form in category cat, synthesizing one
// when the form is unknown. Shorthand for r.Lexicon().Word.
func (r *Realiser) Word(form string, cat Category) *WordEntry {
	return r.lex.Word(form, cat)
}

// RealiseSyntax flattens e into its ordered leaves. It returns an empty
// list when e realises to nothing.
func (r *Realiser) RealiseSyntax(e Element) *ListElement {
	out := NewList()
	out.Append(r.rules.Syntax.Realise(e))
	return out
}

// RealiseMorphology inflects every leaf of l. Nil tokens (elided
// leaves) are dropped.
func (r *Realiser) RealiseMorphology(l *ListElement) ([]*StringElement, error) {
	tokens := make([]*StringElement, 0, l.Len())
	for _, leaf := range l.Components() {
		tok, err := r.rules.Morphology.Realise(leaf)
		if err != nil {
			return nil, fmt.Errorf("realise %s: %w", describe(leaf), err)
		}
		if tok != nil {
			tokens = append(tokens, tok)
		}
	}
	return tokens, nil
}

// Realise runs the three stages on e and returns the surface tokens,
// nulled tokens included.
func (r *Realiser) Realise(e Element) ([]*StringElement, error) {
	tokens, err := r.RealiseMorphology(r.RealiseSyntax(e))
	if err != nil {
		return nil, err
	}
	r.rules.Morphophonology.Apply(tokens)
	return tokens, nil
}

// RealiseString realises e and joins the surviving tokens.
func (r *Realiser) RealiseString(e Element) (string, error) {
	tokens, err := r.Realise(e)
	if err != nil {
		return "", err
	}
	s := Join(tokens)
	r.log.Debug("realised", "category", e.Category(), "text", s)
	return s, nil
}

// RealiseSentence realises e as a sentence: capitalised, with a final
// full stop unless it already ends with punctuation.
func (r *Realiser) RealiseSentence(e Element) (string, error) {
	s, err := r.RealiseString(e)
	if err != nil {
		return "", err
	}
	return Sentence(s), nil
}

// Sentence capitalises text and ends it with a full stop unless it
// already ends with punctuation. Empty text stays empty.
func Sentence(text string) string {
	if text == "" {
		return ""
	}
	text = Capitalise(text)
	if last, _ := utf8.DecodeLastRuneInString(text); !strings.ContainsRune(".!?…", last) {
		text += "."
	}
	return text
}

// Conjugate returns the conjugation table of the verb with base form
// verb.
func (r *Realiser) Conjugate(verb string) (*ConjugationTable, error) {
	m, ok := r.rules.Morphology.(*FrenchMorphology)
	if !ok {
		return nil, fmt.Errorf("conjugate %q: %w", verb, ErrUnsupportedLanguage)
	}
	w := r.lex.LookupFirst(NormalizeForm(verb), CatVerb)
	if w == nil {
		w = r.lex.LookupFirst(NormalizeForm(verb), CatModal)
	}
	if w == nil {
		w = NewWordEntry("", verb, CatVerb, nil)
	}
	return m.Conjugate(w)
}

func describe(e Element) string {
	switch x := e.(type) {
	case *InflectedElement:
		return fmt.Sprintf("%s %q", x.Category(), x.BaseForm())
	case *StringElement:
		return fmt.Sprintf("%s %q", x.Category(), x.Realisation)
	}
	return fmt.Sprintf("%T", e)
}
