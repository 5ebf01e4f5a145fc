package nlg

// FrenchSyntax realises phrase trees with the French noun phrase rules.
type FrenchSyntax struct {
	syntax
}

// NewFrenchSyntax returns the French phrase realiser bound to lex.
func NewFrenchSyntax(lex *Lexicon) *FrenchSyntax {
	fs := &FrenchSyntax{syntax: newSyntax(lex)}
	fs.phrase = fs.RealisePhrase
	return fs
}

// RealisePhrase flattens p into its leaves. Elided phrases yield nil.
func (fs *FrenchSyntax) RealisePhrase(p *PhraseNode) *ListElement {
	if p == nil || p.Features().Bool(FeatElided) {
		return nil
	}
	switch p.Category() {
	case CatNounPhrase:
		return fs.realiseNounPhrase(p)
	case CatClause:
		fs.agreeWithSubject(p)
	}
	return fs.realiseGeneric(p)
}

// agreeWithSubject hands the subject's person and number to the verb
// phrase heading clause c, unless c or the verb phrase set them.
func (fs *FrenchSyntax) agreeWithSubject(c *PhraseNode) {
	vp, ok := c.head.(*PhraseNode)
	if !ok || vp.Category() != CatVerbPhrase {
		return
	}
	var subject Element
	for _, e := range c.premodifiers {
		if e != nil && e.DiscourseFunction() == FuncSubject {
			subject = e
			break
		}
	}
	if subject == nil {
		return
	}
	cf, vf, sf := c.Features(), vp.Features(), subject.Features()
	if !cf.Has(FeatPerson) && !vf.Has(FeatPerson) {
		if pe := sf.person(); pe != "" {
			vf.Set(FeatPerson, pe)
		}
	}
	if !cf.Has(FeatNumber) && !vf.Has(FeatNumber) {
		if n := subject.Number(); n != "" {
			vf.Set(FeatNumber, n)
		}
	}
}

// realiseNounPhrase lays out specifier, premodifiers, head, complements
// and postmodifiers. A pronominal phrase becomes a single pronoun.
func (fs *FrenchSyntax) realiseNounPhrase(p *PhraseNode) *ListElement {
	if p.Features().Bool(FeatPronominal) {
		return NewList(fs.CreatePronoun(p))
	}
	out := NewList()
	fs.realiseSpecifier(out, p)
	fs.realiseList(out, p, p.premodifiers, FuncPreModifier)
	fs.realiseHeadNoun(out, p)
	fs.realiseComplements(out, p)
	fs.realiseList(out, p, p.postmodifiers, FuncPostModifier)
	return out
}

// realiseSpecifier realises the specifier unless the phrase is raised.
// A pronoun specifier takes the phrase number.
func (fs *FrenchSyntax) realiseSpecifier(out *ListElement, p *PhraseNode) {
	spec := p.specifier
	if spec == nil || p.Features().Bool(FeatRaised) || !fs.usable(p, spec) {
		return
	}
	spec.SetDiscourseFunction(FuncSpecifier)
	if spec.Category() == CatPronoun {
		if n := p.Number(); n != "" {
			spec.Features().Set(FeatNumber, n)
		}
	}
	out.Append(fs.Realise(spec))
}

// nounHeadFeatures are handed from a noun phrase to its head when the
// phrase sets them.
var nounHeadFeatures = []Feature{
	FeatGender, FeatNumber, FeatPerson, FeatPossessive, FeatPassive,
}

func (fs *FrenchSyntax) realiseHeadNoun(out *ListElement, p *PhraseNode) {
	head := p.head
	if head == nil || !fs.usable(p, head) {
		return
	}
	pf := p.Features()
	hf := head.Features()
	for _, k := range nounHeadFeatures {
		if v, ok := pf[k]; ok {
			hf.Set(k, v)
		}
	}
	head.SetDiscourseFunction(FuncHead)
	out.Append(fs.Realise(head))
}

// CreatePronoun returns the personal pronoun standing for p, chosen by
// the phrase person (default third), number (default singular) and, in
// the third person, gender (default masculine). The pronoun points back
// at p but is not one of its constituents.
func (fs *FrenchSyntax) CreatePronoun(p *PhraseNode) *InflectedElement {
	person := p.Features().person()
	if person == "" {
		person = PersonThird
	}
	number := p.Number()
	if number == "" || number == NumberBoth {
		number = NumberSingular
	}
	q := make(Features)
	q.Set(FeatPronounType, PronounPersonal)
	q.Set(FeatPerson, person)
	q.Set(FeatNumber, number)
	if person == PersonThird {
		g := p.Gender()
		if g == "" {
			g = GenderMasculine
		}
		q.Set(FeatGender, g)
	}

	w := fs.lex.FindByFeatures(q, CatPronoun)
	if w == nil {
		w = fs.lex.LookupFirst("il", CatPronoun)
	}
	if w == nil {
		w = NewWordEntry("il", "il", CatPronoun, Features{
			FeatPronounType: string(PronounPersonal),
			FeatPerson:      string(PersonThird),
			FeatNumber:      string(NumberSingular),
			FeatGender:      string(GenderMasculine),
		})
	}

	overrides := make(Features)
	if fn := p.DiscourseFunction(); fn != "" {
		overrides.Set(FeatDiscourseFunction, fn)
	}
	if p.Features().Bool(FeatPassive) {
		overrides.Set(FeatPassive, true)
	}
	pro := w.Inflect(overrides)
	pro.setParent(p)
	return pro
}
