package nlg

import "fmt"

// Moods and tenses listed in a ConjugationTable, in display order.
const (
	TablePresent     = "present"
	TableImperfect   = "imperfect"
	TableFuture      = "future"
	TableConditional = "conditional"
	TableSubjunctive = "subjunctive"
	TableImperative  = "imperative"
)

// TableOrder is the display order of ConjugationTable cells.
var TableOrder = []string{
	TablePresent, TableImperfect, TableFuture,
	TableConditional, TableSubjunctive, TableImperative,
}

// PersonNumber is one cell coordinate of a conjugation table.
type PersonNumber struct {
	Person Person `json:"person"`
	Number Number `json:"number"`
}

// Persons lists the six finite persons in table order (1s..3p).
var Persons = []PersonNumber{
	{PersonFirst, NumberSingular},
	{PersonSecond, NumberSingular},
	{PersonThird, NumberSingular},
	{PersonFirst, NumberPlural},
	{PersonSecond, NumberPlural},
	{PersonThird, NumberPlural},
}

// imperativePersons are the persons the imperative exists for.
var imperativePersons = []PersonNumber{
	{PersonSecond, NumberSingular},
	{PersonFirst, NumberPlural},
	{PersonSecond, NumberPlural},
}

// ConjugationTable holds the full conjugation of a verb.
type ConjugationTable struct {
	// Verb is the conjugated entry.
	Verb *WordEntry `json:"-"`
	// Infinitive is the base form.
	Infinitive string `json:"infinitive"`
	// Cells maps a tense name to its forms, in Persons order (three
	// forms for the imperative).
	Cells map[string][]string `json:"cells"`
	// PresentParticiple and PastParticiple are the masculine singular
	// participles.
	PresentParticiple string `json:"present_participle"`
	PastParticiple    string `json:"past_participle"`
}

// Conjugate computes the conjugation table of w. The first rule error
// aborts the table.
func (m *FrenchMorphology) Conjugate(w *WordEntry) (*ConjugationTable, error) {
	if w == nil {
		return nil, fmt.Errorf("conjugate: nil verb")
	}
	table := &ConjugationTable{
		Verb:       w,
		Infinitive: w.BaseForm,
		Cells:      make(map[string][]string, len(TableOrder)),
	}

	builders := map[string]func(*WordEntry, Person, Number) (string, error){
		TablePresent:     m.PresentVerb,
		TableImperfect:   m.ImperfectVerb,
		TableFuture:      m.FutureVerb,
		TableConditional: m.ConditionalVerb,
		TableSubjunctive: m.SubjunctiveVerb,
		TableImperative:  m.ImperativeVerb,
	}
	for _, name := range TableOrder {
		persons := Persons
		if name == TableImperative {
			persons = imperativePersons
		}
		forms := make([]string, 0, len(persons))
		for _, pn := range persons {
			form, err := builders[name](w, pn.Person, pn.Number)
			if err != nil {
				return nil, err
			}
			forms = append(forms, form)
		}
		table.Cells[name] = forms
	}

	var err error
	if table.PresentParticiple, err = m.PresentParticiple(w, "", ""); err != nil {
		return nil, err
	}
	if table.PastParticiple, err = m.PastParticiple(w, "", ""); err != nil {
		return nil, err
	}
	return table, nil
}
