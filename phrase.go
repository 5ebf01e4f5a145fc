package nlg

import "strings"

// PhraseNode is a phrase in a phrase specification: a category, the
// constituent slots and phrase-level agreement features. Attaching a
// constituent sets its parent to the phrase.
type PhraseNode struct {
	node

	specifier     Element
	premodifiers  []Element
	head          Element
	complements   []Element
	postmodifiers []Element
}

// NewPhrase returns an empty phrase of category cat.
func NewPhrase(cat Category) *PhraseNode {
	return &PhraseNode{node: node{category: cat, features: make(Features)}}
}

// attach claims e for p. Re-attaching an element that already belongs
// to another phrase is a programming error.
func (p *PhraseNode) attach(e Element) {
	if parent := e.Parent(); parent != nil && parent != p {
		panic("nlg: element is already attached to another phrase")
	}
	e.setParent(p)
}

// SetSpecifier sets the specifier (determiner or possessive).
func (p *PhraseNode) SetSpecifier(e Element) {
	if e == nil {
		p.specifier = nil
		return
	}
	p.attach(e)
	p.specifier = e
}

// SetHead sets the head constituent.
func (p *PhraseNode) SetHead(e Element) {
	if e == nil {
		p.head = nil
		return
	}
	p.attach(e)
	p.head = e
}

// AddPremodifier appends a premodifier.
func (p *PhraseNode) AddPremodifier(e Element) {
	if e == nil {
		return
	}
	p.attach(e)
	p.premodifiers = append(p.premodifiers, e)
}

// AddPostmodifier appends a postmodifier.
func (p *PhraseNode) AddPostmodifier(e Element) {
	if e == nil {
		return
	}
	p.attach(e)
	p.postmodifiers = append(p.postmodifiers, e)
}

// AddComplement appends a complement. A clause complement becomes a
// subordinate clause and, unless it already has one, an object.
func (p *PhraseNode) AddComplement(e Element) {
	if e == nil {
		return
	}
	if e.Category() == CatClause {
		e.Features().Set(FeatClauseStatus, ClauseSubordinate)
		if e.DiscourseFunction() == "" {
			e.SetDiscourseFunction(FuncObject)
		}
	}
	p.attach(e)
	p.complements = append(p.complements, e)
}

// AddModifier places a modifier in the premodifier or postmodifier slot.
// Accepted values are *WordEntry, Element and string; strings are
// resolved against lex. Preposed and ordinal adjectives go before the
// head, everything else after it. A single unknown word is added to lex
// as an adjective; a multi-word string is kept as canned text.
func (p *PhraseNode) AddModifier(mod any, lex *Lexicon) {
	var e Element
	switch m := mod.(type) {
	case nil:
		return
	case *WordEntry:
		if m == nil {
			return
		}
		e = m.Inflect(nil)
	case string:
		m = strings.TrimSpace(m)
		switch {
		case m == "":
			return
		case strings.Contains(m, " ") || lex == nil:
			p.AddPostmodifier(NewStringElement(m))
			return
		}
		e = lex.Word(m, CatAdjective).Inflect(nil)
	case Element:
		if m == nil {
			return
		}
		e = m
	default:
		return
	}
	if isPreposedModifier(e) {
		p.AddPremodifier(e)
		return
	}
	p.AddPostmodifier(e)
}

// isPreposedModifier reports whether e is (or is headed by) a preposed or
// ordinal adjective.
func isPreposedModifier(e Element) bool {
	if ph, ok := e.(*PhraseNode); ok {
		if ph.Category() != CatAdjectivePhrase || ph.head == nil {
			return false
		}
		e = ph.head
	}
	ie, ok := e.(*InflectedElement)
	if !ok || ie.Category() != CatAdjective {
		return false
	}
	return ie.Features().Bool(FeatPreposed) || IsOrdinal(ie)
}

// IsOrdinal reports whether e is an ordinal adjective.
func IsOrdinal(e Element) bool {
	ie, ok := e.(*InflectedElement)
	return ok && ie.word.IsOrdinal()
}

// Specifier returns the specifier, or nil.
func (p *PhraseNode) Specifier() Element { return p.specifier }

// Head returns the head, or nil.
func (p *PhraseNode) Head() Element { return p.head }

// Premodifiers returns the premodifiers in order.
func (p *PhraseNode) Premodifiers() []Element { return p.premodifiers }

// Complements returns the complements in order.
func (p *PhraseNode) Complements() []Element { return p.complements }

// Postmodifiers returns the postmodifiers in order.
func (p *PhraseNode) Postmodifiers() []Element { return p.postmodifiers }

// Children returns every constituent in surface slot order.
func (p *PhraseNode) Children() []Element {
	var out []Element
	if p.specifier != nil && p.category == CatNounPhrase {
		out = append(out, p.specifier)
	}
	out = append(out, p.premodifiers...)
	if p.head != nil {
		out = append(out, p.head)
	}
	out = append(out, p.complements...)
	out = append(out, p.postmodifiers...)
	return out
}

// Gender returns the phrase gender. A noun phrase without one reports
// its head's gender.
func (p *PhraseNode) Gender() Gender {
	if g := p.features.gender(); g != "" {
		return g
	}
	if p.category == CatNounPhrase && p.head != nil {
		return p.head.Gender()
	}
	return ""
}

// Number returns the phrase number. A noun phrase without one reports
// its head's number.
func (p *PhraseNode) Number() Number {
	if n := p.features.number(); n != "" {
		return n
	}
	if p.category == CatNounPhrase && p.head != nil {
		return p.head.Number()
	}
	return ""
}

// SetGender sets the phrase gender.
func (p *PhraseNode) SetGender(g Gender) { p.Features().Set(FeatGender, g) }

// SetNumber sets the phrase number.
func (p *PhraseNode) SetNumber(n Number) { p.Features().Set(FeatNumber, n) }

// SetPerson sets the phrase person.
func (p *PhraseNode) SetPerson(pe Person) { p.Features().Set(FeatPerson, pe) }

// SetTense sets the tense of a verb phrase or clause.
func (p *PhraseNode) SetTense(t Tense) { p.Features().Set(FeatTense, t) }

// SetForm sets the verb form of a verb phrase or clause.
func (p *PhraseNode) SetForm(f Form) { p.Features().Set(FeatForm, f) }

// SetPronominal marks a noun phrase to be realised as a personal pronoun.
func (p *PhraseNode) SetPronominal(b bool) { p.Features().Set(FeatPronominal, b) }

// SetRaised marks the specifier as raised (not realised in place).
func (p *PhraseNode) SetRaised(b bool) { p.Features().Set(FeatRaised, b) }

// SetElided suppresses the whole phrase.
func (p *PhraseNode) SetElided(b bool) { p.Features().Set(FeatElided, b) }

// SetNegated marks a verb phrase or clause as negated.
func (p *PhraseNode) SetNegated(b bool) { p.Features().Set(FeatNegated, b) }

// SetPassive marks a verb phrase or clause as passive.
func (p *PhraseNode) SetPassive(b bool) { p.Features().Set(FeatPassive, b) }

// ancestor returns the nearest ancestor of e (e excluded) whose category
// is cat, or nil.
func ancestor(e Element, cat Category) *PhraseNode {
	for p := e.Parent(); p != nil; p = p.Parent() {
		if p.Category() == cat {
			return p
		}
	}
	return nil
}
