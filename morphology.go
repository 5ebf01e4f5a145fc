package nlg

import "strings"

// MorphologyRules turns one realised leaf into its surface token.
type MorphologyRules interface {
	// Realise inflects e. Elided leaves yield a nil token.
	Realise(e Element) (*StringElement, error)
}

// suffixRule rewrites a form ending in one of suffixes, when the
// optional guard also holds.
type suffixRule struct {
	suffixes []string
	guard    func(s string) bool
	apply    func(s string) string
}

func (r suffixRule) matches(s string) bool {
	for _, suf := range r.suffixes {
		if strings.HasSuffix(s, suf) {
			return r.guard == nil || r.guard(s)
		}
	}
	return false
}

// cascade applies the first rule matching s; fallback handles the rest.
func cascade(rules []suffixRule, fallback func(string) string, s string) string {
	for _, r := range rules {
		if r.matches(s) {
			return r.apply(s)
		}
	}
	return fallback(s)
}

// appendTo returns a rule action that drops n trailing bytes and
// appends suffix.
func appendTo(n int, suffix string) func(string) string {
	return func(s string) string { return s[:len(s)-n] + suffix }
}

var pluralRules = []suffixRule{
	{suffixes: []string{"s", "x", "z"}, apply: func(s string) string { return s }},
	{suffixes: []string{"au", "eu"}, apply: appendTo(0, "x")},
	{suffixes: []string{"al"}, apply: appendTo(2, "aux")},
}

// Pluralize applies the regular French plural rules to s: -s/-x/-z stay
// unchanged, -au/-eu take x, -al becomes -aux, anything else takes s.
func Pluralize(s string) string {
	return cascade(pluralRules, appendTo(0, "s"), s)
}

// feminineRules is the ordered feminine cascade. The -eur rule needs
// the lexicon to tell "chanteur" (chantant) from "meilleur". Forms
// already ending in a mute e are left alone (rouge, même).
func feminineRules(lex *Lexicon) []suffixRule {
	return []suffixRule{
		{suffixes: []string{"e"}, apply: func(s string) string { return s }},
		{suffixes: []string{"el", "eil"}, apply: appendTo(0, "le")},
		{suffixes: []string{"as"}, apply: appendTo(0, "se")},
		{suffixes: []string{"en", "on"}, apply: appendTo(0, "ne")},
		{suffixes: []string{"et"}, apply: appendTo(0, "te")},
		{suffixes: []string{"eux"}, apply: appendTo(1, "se")},
		{suffixes: []string{"er"}, apply: appendTo(2, "ère")},
		{suffixes: []string{"eau"}, apply: appendTo(3, "elle")},
		{suffixes: []string{"os"}, apply: appendTo(0, "se")},
		{suffixes: []string{"gu"}, apply: appendTo(0, "ë")},
		{suffixes: []string{"g"}, apply: appendTo(0, "ue")},
		{
			suffixes: []string{"eur"},
			guard: func(s string) bool {
				return lex != nil && lex.Contains(s[:len(s)-3]+"ant")
			},
			apply: appendTo(1, "se"),
		},
		{suffixes: []string{"teur"}, apply: appendTo(4, "trice")},
		{suffixes: []string{"if"}, apply: appendTo(1, "ve")},
	}
}

// particleOf returns the detachable particle carried by e.
func particleOf(e Element) string { return e.Features().String(FeatParticle) }

// baseSpelling returns the default spelling of e's word.
func baseSpelling(e *InflectedElement) string {
	if s := e.Features().String(FeatDefaultSpelling); s != "" {
		return s
	}
	return e.BaseForm()
}

// tokenFromWord builds the token for w chosen in place of src: w's
// features, src's parent.
func tokenFromWord(w *WordEntry, src Element) *StringElement {
	s := &StringElement{Realisation: w.BaseForm}
	s.category = w.Category
	s.features = w.features.Clone()
	s.parent = src.Parent()
	return s
}

// withAgreement records the resolved gender and number on a token so
// the morphophonology pass can tell "le" from "les".
func withAgreement(s *StringElement, g Gender, n Number) *StringElement {
	if g != "" {
		s.features.Set(FeatGender, g)
	}
	if n != "" {
		s.features.Set(FeatNumber, n)
	}
	return s
}
