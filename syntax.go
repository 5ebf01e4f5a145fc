package nlg

import (
	"log/slog"

	"github.com/cours-de-latin/nlg/internal/logger"
)

// PhraseRealiser flattens phrase trees into ordered leaf lists.
type PhraseRealiser interface {
	// RealisePhrase returns the leaves of p in surface order, or nil
	// when p is elided.
	RealisePhrase(p *PhraseNode) *ListElement
	// Realise realises any element: phrases are flattened, words are
	// returned as leaves, elided elements yield nil.
	Realise(e Element) Element
}

// headFeatures are the agreement features a phrase hands down to its
// head when it sets them explicitly.
var headFeatures = []Feature{
	FeatGender, FeatNumber, FeatPerson, FeatTense, FeatForm, FeatNegated, FeatPassive,
}

// syntax implements the category-generic algorithm. Language rule sets
// embed it and override the phrase categories they specialise.
type syntax struct {
	lex *Lexicon
	log *slog.Logger
	// phrase realises nested phrases; it points at the embedding
	// language realiser so its specialisations apply at every depth.
	phrase func(p *PhraseNode) *ListElement
}

func newSyntax(lex *Lexicon) syntax {
	return syntax{lex: lex, log: logger.ForComponent("syntax")}
}

// Realise dispatches on the element kind.
func (s *syntax) Realise(e Element) Element {
	switch x := e.(type) {
	case nil:
		return nil
	case *PhraseNode:
		if x == nil {
			return nil
		}
		if l := s.phrase(x); l != nil {
			return l
		}
		return nil
	case *InflectedElement:
		if x == nil || x.Features().Bool(FeatElided) {
			return nil
		}
		return x
	case *StringElement:
		if x == nil {
			return nil
		}
		return x
	case *ListElement:
		if x == nil {
			return nil
		}
		return x
	}
	return nil
}

// realiseGeneric lays out premodifiers, head, complements and
// postmodifiers.
func (s *syntax) realiseGeneric(p *PhraseNode) *ListElement {
	out := NewList()
	s.realiseList(out, p, p.premodifiers, FuncPreModifier)
	s.realiseHead(out, p)
	s.realiseComplements(out, p)
	s.realiseList(out, p, p.postmodifiers, FuncPostModifier)
	return out
}

// stamp tags child with fn unless the caller already gave it a
// discourse function.
func stamp(child Element, fn DiscourseFunction) {
	if fn == "" || child.DiscourseFunction() != "" {
		return
	}
	child.SetDiscourseFunction(fn)
}

// usable reports whether child can be realised, logging the ones that
// are skipped.
func (s *syntax) usable(parent *PhraseNode, child Element) bool {
	if child == nil || child.Category() == "" {
		s.log.Debug("skipping constituent without category", "phrase", string(parent.Category()))
		return false
	}
	return true
}

// realiseList realises elems in order, tagging each with fn, and
// appends what they produce to out.
func (s *syntax) realiseList(out *ListElement, p *PhraseNode, elems []Element, fn DiscourseFunction) {
	for _, e := range elems {
		if !s.usable(p, e) {
			continue
		}
		stamp(e, fn)
		out.Append(s.Realise(e))
	}
}

// realiseHead hands the phrase's degree flags and explicit agreement
// features to the head, then realises it as HEAD.
func (s *syntax) realiseHead(out *ListElement, p *PhraseNode) {
	head := p.head
	if head == nil || !s.usable(p, head) {
		return
	}
	pf := p.Features()
	hf := head.Features()
	for _, k := range []Feature{FeatIsComparative, FeatIsSuperlative} {
		if pf.Bool(k) {
			hf.Set(k, true)
		}
	}
	for _, k := range headFeatures {
		if v, ok := pf[k]; ok {
			hf.Set(k, v)
		}
	}
	head.SetDiscourseFunction(FuncHead)
	out.Append(s.Realise(head))
}

// realiseComplements realises complements in order as COMPLEMENT and
// joins consecutive complements of the same category with the
// coordinating conjunction.
func (s *syntax) realiseComplements(out *ListElement, p *PhraseNode) {
	var prev Element
	for _, c := range p.complements {
		if !s.usable(p, c) {
			continue
		}
		stamp(c, FuncComplement)
		r := s.Realise(c)
		if r == nil {
			continue
		}
		if prev != nil && prev.Category() == c.Category() {
			conj := s.lex.CoordinatingConjunction().Inflect(nil)
			conj.setParent(p)
			out.Append(conj)
		}
		out.Append(r)
		prev = c
	}
}
