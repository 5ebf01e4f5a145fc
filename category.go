package nlg

// Category is the lexical or phrasal category of an element.
type Category string

// Lexical categories.
const (
	CatAny            Category = "any"
	CatNoun           Category = "noun"
	CatVerb           Category = "verb"
	CatAdjective      Category = "adjective"
	CatAdverb         Category = "adverb"
	CatDeterminer     Category = "determiner"
	CatPronoun        Category = "pronoun"
	CatPreposition    Category = "preposition"
	CatConjunction    Category = "conjunction"
	CatComplementiser Category = "complementiser"
	CatModal          Category = "modal"
	CatSymbol         Category = "symbol"
	CatCannedText     Category = "canned_text"
)

// Phrasal categories.
const (
	CatClause              Category = "clause"
	CatNounPhrase          Category = "noun_phrase"
	CatVerbPhrase          Category = "verb_phrase"
	CatAdjectivePhrase     Category = "adjective_phrase"
	CatAdverbPhrase        Category = "adverb_phrase"
	CatPrepositionalPhrase Category = "prepositional_phrase"
)

var lexicalCategories = map[Category]bool{
	CatNoun:           true,
	CatVerb:           true,
	CatAdjective:      true,
	CatAdverb:         true,
	CatDeterminer:     true,
	CatPronoun:        true,
	CatPreposition:    true,
	CatConjunction:    true,
	CatComplementiser: true,
	CatModal:          true,
	CatSymbol:         true,
}

var phraseCategories = map[Category]bool{
	CatClause:              true,
	CatNounPhrase:          true,
	CatVerbPhrase:          true,
	CatAdjectivePhrase:     true,
	CatAdverbPhrase:        true,
	CatPrepositionalPhrase: true,
}

// IsLexical reports whether c names a word category.
func (c Category) IsLexical() bool { return lexicalCategories[c] }

// IsPhrase reports whether c names a phrase category.
func (c Category) IsPhrase() bool { return phraseCategories[c] }

// ParseCategory maps a category name as found in lexicon files and JSON
// phrase descriptions to a Category. The second result is false for
// unknown names.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	switch {
	case c == CatAny, c == CatCannedText:
		return c, true
	case c.IsLexical(), c.IsPhrase():
		return c, true
	}
	// short names used by older lexicon files
	switch s {
	case "adj":
		return CatAdjective, true
	case "adv":
		return CatAdverb, true
	case "det":
		return CatDeterminer, true
	case "prep":
		return CatPreposition, true
	case "conj":
		return CatConjunction, true
	case "complementizer":
		return CatComplementiser, true
	}
	return "", false
}
