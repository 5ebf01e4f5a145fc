package nlg

import "slices"

// Feature names a grammatical or lexical property carried by words,
// inflected elements and phrases.
type Feature string

const (
	// agreement
	FeatGender            Feature = "gender"
	FeatNumber            Feature = "number"
	FeatPerson            Feature = "person"
	FeatDiscourseFunction Feature = "discourse_function"
	FeatPossessive        Feature = "possessive"
	FeatPassive           Feature = "passive"

	// degree
	FeatComparative     Feature = "comparative"
	FeatSuperlative     Feature = "superlative"
	FeatIsComparative   Feature = "is_comparative"
	FeatIsSuperlative   Feature = "is_superlative"
	FeatPreposed        Feature = "preposed"
	FeatProper          Feature = "proper"
	FeatVowelElision    Feature = "vowel_elision"
	FeatParticle        Feature = "particle"
	FeatSpellingVariant Feature = "spelling_variants"
	FeatInflections     Feature = "inflections"
	FeatDefaultSpelling Feature = "default_spelling"
	FeatLiaison         Feature = "liaison"

	// declared inflected forms
	FeatPlural             Feature = "plural"
	FeatFeminineSingular   Feature = "feminine_singular"
	FeatFemininePlural     Feature = "feminine_plural"
	FeatOppositeGender     Feature = "opposite_gender"
	FeatPronounType        Feature = "pronoun_type"
	FeatReflexive          Feature = "reflexive"
	FeatDetached           Feature = "detached"
	FeatPastParticiple     Feature = "past_participle"
	FeatFemPastParticiple  Feature = "feminine_past_participle"
	FeatPresentParticiple  Feature = "present_participle"
	FeatImperfectRadical   Feature = "imperfect_radical"
	FeatFutureRadical      Feature = "future_radical"
	FeatSubjunctiveRadical Feature = "subjunctive_radical"
	FeatGroup              Feature = "group"
	FeatCopular            Feature = "copular"

	// phrase and clause
	FeatTense        Feature = "tense"
	FeatForm         Feature = "form"
	FeatNegated      Feature = "negated"
	FeatPronominal   Feature = "pronominal"
	FeatRaised       Feature = "raised"
	FeatElided       Feature = "elided"
	FeatClauseStatus Feature = "clause_status"
)

// Verb form overrides declared in the lexicon, e.g. "present1s",
// "subjunctive3p", "imperative2s".
func verbFormFeature(tense string, p Person, n Number) Feature {
	return Feature(tense + string(p) + numberSuffix(n))
}

func numberSuffix(n Number) string {
	if n == NumberPlural {
		return "p"
	}
	return "s"
}

// Gender values.
type Gender string

const (
	GenderMasculine Gender = "masculine"
	GenderFeminine  Gender = "feminine"
	GenderNeuter    Gender = "neuter"
)

// Number values.
type Number string

const (
	NumberSingular Number = "singular"
	NumberPlural   Number = "plural"
	NumberBoth     Number = "both"
)

// Person values. The value doubles as the digit used in verb form
// feature names.
type Person string

const (
	PersonFirst  Person = "1"
	PersonSecond Person = "2"
	PersonThird  Person = "3"
)

// DiscourseFunction is the syntactic role of a constituent.
type DiscourseFunction string

const (
	FuncSubject        DiscourseFunction = "subject"
	FuncObject         DiscourseFunction = "object"
	FuncIndirectObject DiscourseFunction = "indirect_object"
	FuncComplement     DiscourseFunction = "complement"
	FuncSpecifier      DiscourseFunction = "specifier"
	FuncHead           DiscourseFunction = "head"
	FuncPreModifier    DiscourseFunction = "pre_modifier"
	FuncPostModifier   DiscourseFunction = "post_modifier"
	FuncFrontModifier  DiscourseFunction = "front_modifier"
	FuncCue            DiscourseFunction = "cue_phrase"
	FuncAuxiliary      DiscourseFunction = "auxiliary"
	FuncVerbPhrase     DiscourseFunction = "verb_phrase"
)

// isModifier reports whether f is one of the modifier slots.
func (f DiscourseFunction) isModifier() bool {
	return f == FuncFrontModifier || f == FuncPreModifier || f == FuncPostModifier
}

// Form values of a verb or verb phrase.
type Form string

const (
	FormNormal            Form = "normal"
	FormInfinitive        Form = "infinitive"
	FormBareInfinitive    Form = "bare_infinitive"
	FormImperative        Form = "imperative"
	FormSubjunctive       Form = "subjunctive"
	FormPresentParticiple Form = "present_participle"
	FormGerund            Form = "gerund"
	FormPastParticiple    Form = "past_participle"
)

// Tense values.
type Tense string

const (
	TensePresent     Tense = "present"
	TensePast        Tense = "past"
	TenseFuture      Tense = "future"
	TenseConditional Tense = "conditional"
)

// PronounType values.
type PronounType string

const (
	PronounPersonal        PronounType = "personal"
	PronounSpecialPersonal PronounType = "special_personal"
	PronounSnoun           PronounType = "snoun"
	PronounPossessive      PronounType = "possessive"
	PronounDemonstrative   PronounType = "demonstrative"
	PronounRelative        PronounType = "relative"
	PronounInterrogative   PronounType = "interrogative"
	PronounIndefinite      PronounType = "indefinite"
)

// ClauseStatus values.
type ClauseStatus string

const (
	ClauseMatrix      ClauseStatus = "matrix"
	ClauseSubordinate ClauseStatus = "subordinate"
)

// Features maps feature names to values. Values are restricted to
// string, bool and []string; typed enum values are stored as their
// string form.
type Features map[Feature]any

// Set stores v under k. A nil value removes the feature. Typed enum
// values are stored as plain strings.
func (fs Features) Set(k Feature, v any) {
	switch x := featureValue(v).(type) {
	case nil:
		delete(fs, k)
	case string, bool:
		fs[k] = x
	case []string:
		fs[k] = slices.Clone(x)
	default:
		panic("nlg: unsupported feature value type for " + string(k))
	}
}

// featureValue converts typed enum values to their string form.
func featureValue(v any) any {
	switch x := v.(type) {
	case Gender:
		return string(x)
	case Number:
		return string(x)
	case Person:
		return string(x)
	case DiscourseFunction:
		return string(x)
	case Form:
		return string(x)
	case Tense:
		return string(x)
	case PronounType:
		return string(x)
	case ClauseStatus:
		return string(x)
	case Category:
		return string(x)
	}
	return v
}

// Has reports whether k is present.
func (fs Features) Has(k Feature) bool {
	_, ok := fs[k]
	return ok
}

// String returns the string value of k, or "" when absent or not a string.
func (fs Features) String(k Feature) string {
	s, _ := featureValue(fs[k]).(string)
	return s
}

// Bool returns the boolean value of k. A missing boolean is false.
func (fs Features) Bool(k Feature) bool {
	b, _ := fs[k].(bool)
	return b
}

// Strings returns the list value of k. A single string is returned as a
// one-element list.
func (fs Features) Strings(k Feature) []string {
	switch v := featureValue(fs[k]).(type) {
	case []string:
		return v
	case string:
		return []string{v}
	}
	return nil
}

// Clone returns an independent copy of fs.
func (fs Features) Clone() Features {
	out := make(Features, len(fs))
	for k, v := range fs {
		if l, ok := v.([]string); ok {
			v = slices.Clone(l)
		}
		out[k] = v
	}
	return out
}

// Merge copies every feature of other into fs, overwriting.
func (fs Features) Merge(other Features) {
	for k, v := range other {
		fs.Set(k, v)
	}
}

// matches reports whether fs is a superset of query with equal values
// on every listed key. A boolean query value of false also matches an
// absent feature.
func (fs Features) matches(query Features) bool {
	for k, want := range query {
		switch w := featureValue(want).(type) {
		case bool:
			if fs.Bool(k) != w {
				return false
			}
		case string:
			if fs.String(k) != w {
				return false
			}
		case []string:
			if !slices.Equal(fs.Strings(k), w) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (fs Features) gender() Gender              { return Gender(fs.String(FeatGender)) }
func (fs Features) number() Number              { return Number(fs.String(FeatNumber)) }
func (fs Features) person() Person              { return Person(fs.String(FeatPerson)) }
func (fs Features) function() DiscourseFunction { return DiscourseFunction(fs.String(FeatDiscourseFunction)) }
func (fs Features) form() Form                  { return Form(fs.String(FeatForm)) }
func (fs Features) tense() Tense                { return Tense(fs.String(FeatTense)) }
func (fs Features) pronounType() PronounType    { return PronounType(fs.String(FeatPronounType)) }
func (fs Features) clauseStatus() ClauseStatus  { return ClauseStatus(fs.String(FeatClauseStatus)) }
