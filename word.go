package nlg

import "strings"

// WordEntry is a lexicon record: one base form in one category with its
// lexical features. Entries are immutable once registered; callers read
// them through accessors and inflect them through Inflect.
type WordEntry struct {
	// ID is the unique identifier within a lexicon.
	ID string
	// BaseForm is the citation form, e.g. "cheval", "aller".
	BaseForm string
	// Category is the lexical category.
	Category Category

	// features holds declared lexical features (plural, preposed, …).
	features Features
	// seq is the insertion order within the lexicon, used to keep query
	// results deterministic.
	seq int
}

// NewWordEntry builds an entry. The features are copied.
func NewWordEntry(id, base string, cat Category, features Features) *WordEntry {
	fs := make(Features, len(features))
	for k, v := range features {
		fs.Set(k, v)
	}
	return &WordEntry{
		ID:       id,
		BaseForm: NormalizeForm(base),
		Category: cat,
		features: fs,
	}
}

// Feature returns the raw value of k.
func (w *WordEntry) Feature(k Feature) any { return w.features[k] }

// String returns the string value of k.
func (w *WordEntry) String(k Feature) string { return w.features.String(k) }

// Bool returns the boolean value of k; absent booleans are false.
func (w *WordEntry) Bool(k Feature) bool { return w.features.Bool(k) }

// Has reports whether feature k is declared.
func (w *WordEntry) Has(k Feature) bool { return w.features.Has(k) }

// Features returns a copy of the declared features.
func (w *WordEntry) Features() Features { return w.features.Clone() }

// Inflect returns a new InflectedElement for w carrying a copy of w's
// features plus the given overrides. A declared discourse function
// describes the form ("me" is an object form) and is not copied: the
// element's function is its role in the tree.
func (w *WordEntry) Inflect(overrides Features) *InflectedElement {
	e := &InflectedElement{word: w}
	e.category = w.Category
	e.features = w.features.Clone()
	delete(e.features, FeatDiscourseFunction)
	e.features.Merge(overrides)
	return e
}

// Variants lists every form under which w is indexed besides its base
// form: spelling variants, plural, feminine singular and feminine plural.
func (w *WordEntry) Variants() []string {
	var out []string
	out = append(out, w.features.Strings(FeatSpellingVariant)...)
	for _, k := range []Feature{FeatPlural, FeatFeminineSingular, FeatFemininePlural} {
		if v := w.features.String(k); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Particle returns the detachable particle of a multi-token entry
// ("-ci" in "ce -ci"), or "".
func (w *WordEntry) Particle() string { return w.features.String(FeatParticle) }

// IsOrdinal reports whether the entry is an ordinal adjective
// ("deuxième", "vingtième").
func (w *WordEntry) IsOrdinal() bool {
	return w.Category == CatAdjective && strings.HasSuffix(w.BaseForm, "ième")
}
