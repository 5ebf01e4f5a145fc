package nlg

import (
	"fmt"
	"strings"
)

// FrenchMorphology inflects French words.
type FrenchMorphology struct {
	lex      *Lexicon
	feminine []suffixRule
}

// NewFrenchMorphology returns the French morphology rules bound to lex.
func NewFrenchMorphology(lex *Lexicon) *FrenchMorphology {
	return &FrenchMorphology{lex: lex, feminine: feminineRules(lex)}
}

// Realise inflects one leaf according to its category.
func (m *FrenchMorphology) Realise(e Element) (*StringElement, error) {
	switch x := e.(type) {
	case *StringElement:
		return x, nil
	case *InflectedElement:
		if x.Features().Bool(FeatElided) {
			return nil, nil
		}
		switch x.Category() {
		case CatDeterminer:
			return m.Determiner(x), nil
		case CatAdjective:
			return m.Adjective(x), nil
		case CatNoun:
			return m.Noun(x), nil
		case CatAdverb:
			return m.Adverb(x), nil
		case CatPronoun:
			return m.Pronoun(x), nil
		case CatVerb, CatModal:
			return m.Verb(x)
		}
		return stringFrom(baseSpelling(x), x), nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("morphology: unexpected %T leaf", e)
}

// Feminize returns the feminine singular of realised for word w: the
// declared feminine when realised is still the base form, else the
// feminine suffix cascade.
func (m *FrenchMorphology) Feminize(w *WordEntry, realised string) string {
	if w != nil && realised == w.BaseForm {
		if fs := w.String(FeatFeminineSingular); fs != "" {
			return fs
		}
	}
	return cascade(m.feminine, appendTo(0, "e"), realised)
}

// Determiner selects the feminine plural, plural, feminine singular or
// base form, in that order. Gender and number come from the governing
// phrase first.
func (m *FrenchMorphology) Determiner(e *InflectedElement) *StringElement {
	gender, number := e.Gender(), e.Number()
	parent := e.Parent()
	if parent != nil {
		if g := parent.Gender(); g != "" {
			gender = g
		}
		if n := parent.Number(); n != "" {
			number = n
		}
	}

	f := e.Features()
	var form string
	switch {
	case number == NumberPlural:
		if gender == GenderFeminine {
			form = f.String(FeatFemininePlural)
		}
		if form == "" {
			form = f.String(FeatPlural)
		}
		if form == "" {
			form = e.BaseForm()
		}
		// "de belles maisons"
		if form == "des" && parent != nil && len(parent.Premodifiers()) > 0 {
			form = "de"
		}
	case gender == GenderFeminine && f.String(FeatFeminineSingular) != "":
		form = f.String(FeatFeminineSingular)
	default:
		form = e.BaseForm()
		if p := particleOf(e); p != "" {
			form = strings.TrimSpace(strings.ReplaceAll(form, p, ""))
		}
	}
	return withAgreement(stringFrom(form, e), gender, number)
}

// Adjective inflects an adjective, or a comparative declared in the
// lexicon, for the gender and number of its agreement source.
func (m *FrenchMorphology) Adjective(e *InflectedElement) *StringElement {
	w := e.word
	realised := w.BaseForm
	if e.Features().Bool(FeatIsComparative) {
		if comp := e.Features().String(FeatComparative); comp != "" {
			realised = comp
			if cw := m.lex.LookupFirst(comp, CatAdjective); cw != nil {
				w = cw
			}
		}
	}

	gender, number := m.agreement(e)
	feminine := gender == GenderFeminine
	if feminine {
		realised = m.Feminize(w, realised)
	}
	if number == NumberPlural {
		switch {
		case feminine:
			if fp := w.String(FeatFemininePlural); fp != "" {
				realised = fp
			} else {
				realised += "s"
			}
		case w.String(FeatPlural) != "":
			realised = w.String(FeatPlural)
		default:
			realised = Pluralize(realised)
		}
	}
	realised += particleOf(e)
	return withAgreement(stringFrom(realised, e), gender, number)
}

// agreement resolves the gender and number an adjective (or an
// adjectival participle) agrees with. The element's own values win;
// otherwise they come from its parent, from its grandparent when the
// parent has no gender, or from the direct object when the source is a
// verb phrase and the element is one of its modifiers.
func (m *FrenchMorphology) agreement(e Element) (Gender, Number) {
	fn := e.DiscourseFunction()
	var src Element = e
	if parent := e.Parent(); parent != nil {
		if fn == FuncHead {
			fn = parent.DiscourseFunction()
		}
		src = parent
		if parent.Gender() == "" && parent.Parent() != nil {
			src = parent.Parent()
		}
	}
	if vp, ok := src.(*PhraseNode); ok && vp.Category() == CatVerbPhrase && fn.isModifier() {
		for _, c := range vp.Complements() {
			if c.DiscourseFunction() == FuncObject {
				src = c
				break
			}
		}
	}

	gender := e.Features().gender()
	if gender == "" {
		gender = src.Gender()
	}
	number := e.Features().number()
	if number == "" {
		number = src.Number()
	}
	return gender, number
}

// Noun inflects a noun: the opposite-gender noun (or the feminine) when
// the requested gender differs from the declared one, then the plural.
// Proper nouns do not take the plural.
func (m *FrenchMorphology) Noun(e *InflectedElement) *StringElement {
	w := e.word
	realised := w.BaseForm

	target := e.Gender()
	declared := Gender(w.String(FeatGender))
	if target != "" && declared != "" && target != declared {
		if og := w.String(FeatOppositeGender); og != "" {
			if ow := m.lookupWord(og, CatNoun); ow != nil {
				w = ow
				realised = ow.BaseForm
			}
		} else if target == GenderFeminine {
			realised = m.Feminize(w, realised)
		}
	}

	if e.Number() == NumberPlural && !e.Features().Bool(FeatProper) {
		if pl := w.String(FeatPlural); pl != "" && realised == w.BaseForm {
			realised = pl
		} else {
			realised = Pluralize(realised)
		}
	}
	realised += particleOf(e)
	return withAgreement(stringFrom(realised, e), target, e.Number())
}

// lookupWord resolves a cross-reference that may be an id or a base form.
func (m *FrenchMorphology) lookupWord(ref string, cat Category) *WordEntry {
	if w := m.lex.ByID(ref); w != nil {
		return w
	}
	return m.lex.LookupFirst(ref, cat)
}

// Adverb realises an adverb, using the declared comparative when the
// element is comparative.
func (m *FrenchMorphology) Adverb(e *InflectedElement) *StringElement {
	realised := baseSpelling(e)
	if e.Features().Bool(FeatIsComparative) {
		if comp := e.Features().String(FeatComparative); comp != "" {
			realised = comp
		}
	}
	return stringFrom(realised+particleOf(e), e)
}

// Pronoun realises personal pronouns through a lexicon query and
// relative pronouns through their antecedent. Other pronouns keep their
// base form.
func (m *FrenchMorphology) Pronoun(e *InflectedElement) *StringElement {
	switch e.Features().pronounType() {
	case PronounPersonal:
		return m.personalPronoun(e)
	case PronounRelative:
		return m.relativePronoun(e)
	}
	return stringFrom(baseSpelling(e)+particleOf(e), e)
}

func (m *FrenchMorphology) personalPronoun(e *InflectedElement) *StringElement {
	f := e.Features()
	fn := f.function()
	parent := e.Parent()
	governor := parent
	if parent != nil && parent.Category() == CatNounPhrase {
		governor = parent.Parent()
		if fn == "" || fn == FuncSubject || fn == FuncHead {
			if pf := parent.DiscourseFunction(); pf != "" {
				fn = pf
			}
		}
	}
	if fn == FuncHead && parent != nil {
		fn = parent.DiscourseFunction()
	}
	// a pronoun complement of a verb is its object
	if fn == FuncComplement && governor != nil && governor.Category() == CatVerbPhrase {
		fn = FuncObject
	}

	vp := ancestor(e, CatVerbPhrase)
	var vf Features
	if vp != nil {
		vf = vp.Features()
	}
	imperative := vf.form() == FormImperative && !vf.Bool(FeatNegated)

	reflexive := f.Bool(FeatReflexive)
	person := f.person()
	if person == "" {
		person = PersonThird
	}
	isArgument := fn == FuncSubject || fn == FuncObject || fn == FuncIndirectObject
	detached := parent == nil ||
		(governor != nil && governor.Category() == CatPrepositionalPhrase) ||
		(fn != "" && !isArgument) ||
		(imperative && (reflexive ||
			(person != PersonThird && (fn == FuncObject || fn == FuncIndirectObject))))

	if !detached && fn == "" {
		fn = FuncSubject
	}
	if f.Bool(FeatPassive) || vf.Bool(FeatPassive) {
		switch fn {
		case FuncSubject:
			fn = FuncObject
		case FuncObject:
			fn = FuncSubject
		}
	}
	if reflexive && fn != FuncObject && fn != FuncIndirectObject && !detached {
		reflexive = false
	}

	number := f.number()
	if reflexive && vp != nil {
		if p := vf.person(); p != "" {
			person = p
		}
		if n := vf.number(); n != "" {
			number = n
		}
		if vf.form() == FormImperative && person != PersonFirst && person != PersonSecond {
			person = PersonSecond
		}
	}
	if number == "" || number == NumberBoth {
		number = NumberSingular
	}
	gender := f.gender()
	if gender == "" {
		gender = GenderMasculine
	}

	w := m.lex.FindByFeatures(personalQuery(person, number, gender, fn, reflexive, detached), CatPronoun)
	if w == nil {
		w = e.word
	}
	tok := tokenFromWord(w, e)
	tok.Realisation += particleOf(e)
	if fn != "" {
		tok.features.Set(FeatDiscourseFunction, fn)
	}
	return tok
}

// personalQuery builds the lexicon query selecting a personal pronoun
// form.
func personalQuery(person Person, number Number, gender Gender, fn DiscourseFunction, reflexive, detached bool) Features {
	q := make(Features)
	q.Set(FeatPronounType, PronounPersonal)
	q.Set(FeatPerson, person)

	if person != PersonThird {
		q.Set(FeatNumber, number)
		if number == NumberSingular {
			q.Set(FeatDetached, detached)
			if !detached {
				if fn == FuncIndirectObject {
					fn = FuncObject
				}
				q.Set(FeatDiscourseFunction, fn)
			}
		}
		return q
	}

	q.Set(FeatReflexive, reflexive)
	switch {
	case reflexive:
		q.Set(FeatDetached, detached)
	case detached:
		q.Set(FeatDetached, true)
		q.Set(FeatNumber, number)
		q.Set(FeatGender, gender)
	default:
		q.Set(FeatDetached, false)
		q.Set(FeatNumber, number)
		q.Set(FeatDiscourseFunction, fn)
		switch fn {
		case FuncSubject:
			q.Set(FeatGender, gender)
		case FuncObject:
			if number == NumberSingular {
				q.Set(FeatGender, gender)
			}
		}
	}
	return q
}

// relativePronoun agrees a relative pronoun ("lequel") with the
// antecedent of its clause: feminine plural, then feminine singular,
// then plural, then the base form.
func (m *FrenchMorphology) relativePronoun(e *InflectedElement) *StringElement {
	f := e.Features()
	form := e.BaseForm()
	clause := ancestor(e, CatClause)
	if clause != nil && clause.Parent() != nil {
		ante := clause.Parent()
		feminine := ante.Gender() == GenderFeminine
		plural := ante.Number() == NumberPlural
		switch {
		case feminine && plural:
			form = firstNonEmpty(f.String(FeatFemininePlural), f.String(FeatPlural), form)
		case feminine:
			form = firstNonEmpty(f.String(FeatFeminineSingular), form)
		case plural:
			form = firstNonEmpty(f.String(FeatPlural), form)
		}
	}
	return stringFrom(form+particleOf(e), e)
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
