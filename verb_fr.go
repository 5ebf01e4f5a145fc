package nlg

import (
	"fmt"
	"strings"
)

// Ending tables, indexed by personIndex.
var (
	presentEndings1  = [6]string{"e", "es", "e", "ons", "ez", "ent"}
	presentEndings2  = [6]string{"s", "s", "t", "ons", "ez", "ent"}
	imperfectEndings = [6]string{"ais", "ais", "ait", "ions", "iez", "aient"}
	futureEndings    = [6]string{"ai", "as", "a", "ons", "ez", "ont"}
	subjunctiveEnds  = [6]string{"e", "es", "e", "ions", "iez", "ent"}
)

// personIndex maps a person and number to 0..5 (1s, 2s, 3s, 1p, 2p, 3p).
func personIndex(p Person, n Number) int {
	i := 2
	switch p {
	case PersonFirst:
		i = 0
	case PersonSecond:
		i = 1
	}
	if n == NumberPlural {
		i += 3
	}
	return i
}

// verbGroup returns the conjugation group of w: the declared one, else
// 1 for -er verbs (aller excepted), 2 for -ir and 3 for -re and -oir.
func verbGroup(w *WordEntry) (int, error) {
	switch w.String(FeatGroup) {
	case "1":
		return 1, nil
	case "2":
		return 2, nil
	case "3":
		return 3, nil
	}
	base := w.BaseForm
	switch {
	case base == "aller":
		return 3, nil
	case strings.HasSuffix(base, "er"):
		return 1, nil
	case strings.HasSuffix(base, "oir"), strings.HasSuffix(base, "re"):
		return 3, nil
	case strings.HasSuffix(base, "ir"):
		return 2, nil
	}
	return 0, fmt.Errorf("conjugate %q: %w", base, ErrUnknownVerbBase)
}

// trim drops n trailing bytes of s.
func trim(s string, n int) string {
	if n > len(s) {
		return ""
	}
	return s[:len(s)-n]
}

// Verb conjugates a verb leaf from its form, tense, person and number.
// Person defaults to the third and number to the singular.
func (m *FrenchMorphology) Verb(e *InflectedElement) (*StringElement, error) {
	f := e.Features()
	w := e.word
	person := f.person()
	if person == "" {
		person = PersonThird
	}
	number := f.number()
	if number == "" {
		number = NumberSingular
	}

	var (
		s   string
		err error
	)
	switch f.form() {
	case FormInfinitive, FormBareInfinitive:
		s = baseSpelling(e)
	case FormImperative:
		s, err = m.ImperativeVerb(w, person, number)
	case FormSubjunctive:
		s, err = m.SubjunctiveVerb(w, person, number)
	case FormPresentParticiple, FormGerund:
		var g Gender
		var n Number
		if e.DiscourseFunction().isModifier() {
			g, n = m.agreement(e)
		}
		s, err = m.PresentParticiple(w, g, n)
	case FormPastParticiple:
		g, n := m.agreement(e)
		s, err = m.PastParticiple(w, g, n)
	default:
		switch f.tense() {
		case TenseFuture:
			s, err = m.FutureVerb(w, person, number)
		case TenseConditional:
			s, err = m.ConditionalVerb(w, person, number)
		case TensePast:
			s, err = m.ImperfectVerb(w, person, number)
		default:
			s, err = m.PresentVerb(w, person, number)
		}
	}
	if err != nil {
		return nil, err
	}
	return stringFrom(s+particleOf(e), e), nil
}

// PresentVerb returns the present indicative of w.
func (m *FrenchMorphology) PresentVerb(w *WordEntry, p Person, n Number) (string, error) {
	if form := w.String(verbFormFeature("present", p, n)); form != "" {
		return form, nil
	}
	group, err := verbGroup(w)
	if err != nil {
		return "", err
	}
	base := w.BaseForm
	i := personIndex(p, n)

	switch group {
	case 1:
		return firstGroupPresent(trim(base, 2), i), nil
	case 2:
		stem := trim(base, 1)
		if i < 3 {
			return stem + presentEndings2[i], nil
		}
		return stem + "ss" + presentEndings2[i], nil
	}

	switch {
	case strings.HasSuffix(base, "indre"):
		if i < 3 {
			return trim(base, 3) + presentEndings2[i], nil
		}
		return trim(base, 4) + "gn" + presentEndings2[i], nil
	case strings.HasSuffix(base, "ttre"):
		if i < 3 {
			return trim(base, 3) + [3]string{"s", "s", ""}[i], nil
		}
		return trim(base, 2) + presentEndings2[i], nil
	case strings.HasSuffix(base, "cevoir"):
		switch {
		case i < 3:
			return trim(base, 6) + "çoi" + presentEndings2[i], nil
		case i == 5:
			return trim(base, 6) + "çoivent", nil
		}
		return trim(base, 3) + presentEndings2[i], nil
	case strings.HasSuffix(base, "oir"):
		switch {
		case i < 3:
			return trim(base, 3) + "oi" + presentEndings2[i], nil
		case i == 5:
			return trim(base, 3) + "oient", nil
		}
		return trim(base, 3) + "oy" + presentEndings2[i], nil
	case strings.HasSuffix(base, "re"):
		rad := trim(base, 2)
		if i == 2 && (strings.HasSuffix(rad, "d") || strings.HasSuffix(rad, "t")) {
			return rad, nil
		}
		return rad + presentEndings2[i], nil
	case strings.HasSuffix(base, "vrir"), strings.HasSuffix(base, "frir"):
		return firstGroupPresent(trim(base, 2), i), nil
	case strings.HasSuffix(base, "enir"):
		switch {
		case i < 3:
			return trim(base, 4) + "ien" + presentEndings2[i], nil
		case i == 5:
			return trim(base, 4) + "iennent", nil
		}
		return trim(base, 2) + presentEndings2[i], nil
	case strings.HasSuffix(base, "ir"):
		if i < 3 {
			return trim(base, 3) + presentEndings2[i], nil
		}
		return trim(base, 2) + presentEndings2[i], nil
	}
	return "", fmt.Errorf("conjugate %q: %w", base, ErrUnknownVerbBase)
}

// firstGroupPresent appends the -er endings to rad with the spelling
// adjustments: mangeons, commençons, nettoie.
func firstGroupPresent(rad string, i int) string {
	ending := presentEndings1[i]
	switch {
	case strings.HasPrefix(ending, "o") && strings.HasSuffix(rad, "g"):
		rad += "e"
	case strings.HasPrefix(ending, "o") && strings.HasSuffix(rad, "c"):
		rad = trim(rad, 1) + "ç"
	case (i < 3 || i == 5) && (strings.HasSuffix(rad, "oy") || strings.HasSuffix(rad, "uy")):
		rad = trim(rad, 1) + "i"
	}
	return rad + ending
}

// joinI appends an ending starting with "i" after undoing the soft
// consonant spellings: mangeait but mangions, commençait but commencions.
func joinI(rad, ending string) string {
	if strings.HasPrefix(ending, "i") {
		switch {
		case strings.HasSuffix(rad, "ge"):
			rad = trim(rad, 1)
		case strings.HasSuffix(rad, "ç"):
			rad = trim(rad, len("ç")) + "c"
		}
	}
	return rad + ending
}

// imperfectRadical is the declared imperfect radical, or the first
// person plural present minus "ons".
func (m *FrenchMorphology) imperfectRadical(w *WordEntry) (string, error) {
	if rad := w.String(FeatImperfectRadical); rad != "" {
		return rad, nil
	}
	p1, err := m.PresentVerb(w, PersonFirst, NumberPlural)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(p1, "ons"), nil
}

// ImperfectVerb returns the imperfect indicative of w.
func (m *FrenchMorphology) ImperfectVerb(w *WordEntry, p Person, n Number) (string, error) {
	rad, err := m.imperfectRadical(w)
	if err != nil {
		return "", err
	}
	return joinI(rad, imperfectEndings[personIndex(p, n)]), nil
}

// futureRadical is the declared future radical, else the infinitive
// with -yer turned into -ier and the final e of -re dropped.
func (m *FrenchMorphology) futureRadical(w *WordEntry) (string, error) {
	if rad := w.String(FeatFutureRadical); rad != "" {
		return rad, nil
	}
	if _, err := verbGroup(w); err != nil {
		return "", err
	}
	base := w.BaseForm
	switch {
	case strings.HasSuffix(base, "yer"):
		return trim(base, 3) + "ier", nil
	case strings.HasSuffix(base, "re"):
		return trim(base, 1), nil
	}
	return base, nil
}

// FutureVerb returns the simple future of w.
func (m *FrenchMorphology) FutureVerb(w *WordEntry, p Person, n Number) (string, error) {
	rad, err := m.futureRadical(w)
	if err != nil {
		return "", err
	}
	return rad + futureEndings[personIndex(p, n)], nil
}

// ConditionalVerb returns the present conditional of w.
func (m *FrenchMorphology) ConditionalVerb(w *WordEntry, p Person, n Number) (string, error) {
	rad, err := m.futureRadical(w)
	if err != nil {
		return "", err
	}
	return rad + imperfectEndings[personIndex(p, n)], nil
}

// SubjunctiveVerb returns the present subjunctive of w. Without a
// declared radical the singular and the third person plural build on
// the third person plural present, the first and second plural on the
// imperfect radical.
func (m *FrenchMorphology) SubjunctiveVerb(w *WordEntry, p Person, n Number) (string, error) {
	if form := w.String(verbFormFeature("subjunctive", p, n)); form != "" {
		return form, nil
	}
	i := personIndex(p, n)
	if rad := w.String(FeatSubjunctiveRadical); rad != "" {
		return rad + subjunctiveEnds[i], nil
	}
	if i == 3 || i == 4 {
		rad, err := m.imperfectRadical(w)
		if err != nil {
			return "", err
		}
		return joinI(rad, subjunctiveEnds[i]), nil
	}
	p3, err := m.PresentVerb(w, PersonThird, NumberPlural)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(p3, "ent") + subjunctiveEnds[i], nil
}

// ImperativeVerb returns the imperative of w. Only the second person
// singular and the first and second person plural exist; any other
// combination yields the second person singular.
func (m *FrenchMorphology) ImperativeVerb(w *WordEntry, p Person, n Number) (string, error) {
	if n != NumberPlural || p == PersonThird || p == "" {
		p, n = PersonSecond, NumberSingular
	}
	if form := w.String(verbFormFeature("imperative", p, n)); form != "" {
		return form, nil
	}
	form, err := m.PresentVerb(w, p, n)
	if err != nil {
		return "", err
	}
	if n == NumberSingular && (strings.HasSuffix(form, "es") || strings.HasSuffix(form, "as")) {
		form = trim(form, 1)
	}
	return form, nil
}

// PastParticiple returns the past participle of w agreed in gender and
// number.
func (m *FrenchMorphology) PastParticiple(w *WordEntry, g Gender, n Number) (string, error) {
	pp := w.String(FeatPastParticiple)
	if pp == "" {
		base := w.BaseForm
		switch {
		case strings.HasSuffix(base, "er"):
			pp = trim(base, 2) + "é"
		case strings.HasSuffix(base, "oir"):
			pp = trim(base, 3) + "u"
		case strings.HasSuffix(base, "ir"):
			pp = trim(base, 2) + "i"
		case strings.HasSuffix(base, "re"):
			pp = trim(base, 2) + "u"
		default:
			return "", fmt.Errorf("past participle %q: %w", base, ErrUnknownVerbBase)
		}
	}
	if g == GenderFeminine {
		if fpp := w.String(FeatFemPastParticiple); fpp != "" {
			pp = fpp
		} else {
			pp += "e"
		}
	}
	if n == NumberPlural && !strings.HasSuffix(pp, "s") && !strings.HasSuffix(pp, "x") {
		pp += "s"
	}
	return pp, nil
}

// PresentParticiple returns the present participle of w, agreed when g
// or n are set (adjectival use).
func (m *FrenchMorphology) PresentParticiple(w *WordEntry, g Gender, n Number) (string, error) {
	pp := w.String(FeatPresentParticiple)
	if pp == "" {
		rad, err := m.imperfectRadical(w)
		if err != nil {
			return "", err
		}
		pp = rad + "ant"
	}
	if g == GenderFeminine {
		pp += "e"
	}
	if n == NumberPlural {
		pp += "s"
	}
	return pp, nil
}
