package nlg

import "fmt"

// Language is an ISO 639-1 language code.
type Language string

const (
	French  Language = "fr"
	English Language = "en"
)

// Rules bundles the three rule sets used to realise one language.
type Rules struct {
	Syntax          PhraseRealiser
	Morphology      MorphologyRules
	Morphophonology MorphophonologyRules
}

// ruleFactories maps each supported language to the constructor of its
// rule set. English is known but has no rules.
var ruleFactories = map[Language]func(lex *Lexicon) Rules{
	French: func(lex *Lexicon) Rules {
		return Rules{
			Syntax:          NewFrenchSyntax(lex),
			Morphology:      NewFrenchMorphology(lex),
			Morphophonology: NewFrenchMorphophonology(lex),
		}
	},
}

// RulesFor returns the rule set for lang bound to lex.
func RulesFor(lang Language, lex *Lexicon) (Rules, error) {
	f, ok := ruleFactories[lang]
	if !ok {
		return Rules{}, fmt.Errorf("rules for %q: %w", lang, ErrUnsupportedLanguage)
	}
	return f(lex), nil
}

// Languages returns language code → language name for the languages
// that can be realised.
func Languages() map[string]string {
	names := map[Language]string{French: "français", English: "English"}
	out := make(map[string]string, len(ruleFactories))
	for lang := range ruleFactories {
		out[string(lang)] = names[lang]
	}
	return out
}
