package nlg

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// apostropheReplacer folds typographic apostrophes and quotes to the
// ASCII apostrophe used by the elision rules.
var apostropheReplacer = strings.NewReplacer(
	"\u2019", "'", // ’ right single quotation mark
	"\u02bc", "'", // ʼ modifier letter apostrophe
	"\u2018", "'", // ‘ left single quotation mark
)

// NormalizeForm returns the canonical lexicon key for a word form:
// trimmed, NFC-composed, with ASCII apostrophes. Decomposed accents
// (e + U+0301) and composed ones resolve to the same entry.
func NormalizeForm(s string) string {
	return norm.NFC.String(apostropheReplacer.Replace(strings.TrimSpace(s)))
}

// vowels are the letters that trigger elision once accents are stripped.
// "y" counts ("il y a" → "s'il y a", "l'y").
const vowels = "aeiouy"

// StartsWithVowel reports whether s begins with a vowel, accented
// vowels ("é", "â", "ï") and ligatures ("œ") included.
func StartsWithVowel(s string) bool {
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(norm.NFD.String(s))
	r = unicode.ToLower(r)
	if r == 'œ' || r == 'æ' {
		return true
	}
	return strings.ContainsRune(vowels, r)
}

// Capitalise upper-cases the first letter of s and leaves the rest
// untouched. A Caser is stateful, so one is built per call.
func Capitalise(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Title(language.French, cases.NoLower).String(s[:size]) + s[size:]
}
