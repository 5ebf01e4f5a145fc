package nlg

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/cours-de-latin/nlg/internal/logger"
)

// Lexicon is an indexed store of WordEntry records for one language.
// It is safe for concurrent use: lookups share a read lock and Register
// takes the write lock, so a reader never sees a half-inserted entry.
type Lexicon struct {
	mu sync.RWMutex

	// language is the language of every entry.
	language Language

	// entries holds every entry in insertion order.
	entries []*WordEntry
	// byID maps id → entry.
	byID map[string]*WordEntry
	// byBase maps NormalizeForm(base) → entries.
	byBase map[string][]*WordEntry
	// byVariant maps NormalizeForm(variant) → entries, where variants are
	// spelling variants, plural and feminine forms.
	byVariant map[string][]*WordEntry
	// byCategory maps category → entries.
	byCategory map[Category][]*WordEntry

	log *slog.Logger
}

// NewLexicon returns an empty lexicon for lang.
func NewLexicon(lang Language) *Lexicon {
	return &Lexicon{
		language:   lang,
		byID:       make(map[string]*WordEntry),
		byBase:     make(map[string][]*WordEntry),
		byVariant:  make(map[string][]*WordEntry),
		byCategory: make(map[Category][]*WordEntry),
		log:        logger.ForComponent("lexicon"),
	}
}

// Language returns the lexicon language.
func (lx *Lexicon) Language() Language { return lx.language }

// Len returns the number of entries.
func (lx *Lexicon) Len() int {
	lx.mu.RLock()
	defer lx.mu.RUnlock()
	return len(lx.entries)
}

// Entries returns every entry in insertion order.
func (lx *Lexicon) Entries() []*WordEntry {
	lx.mu.RLock()
	defer lx.mu.RUnlock()
	return slices.Clone(lx.entries)
}

// Register inserts w into all indices. An empty id is replaced by a
// generated one. Registering an id twice fails with ErrDuplicateID.
func (lx *Lexicon) Register(w *WordEntry) error {
	lx.mu.Lock()
	defer lx.mu.Unlock()
	return lx.register(w)
}

func (lx *Lexicon) register(w *WordEntry) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if _, ok := lx.byID[w.ID]; ok {
		return fmt.Errorf("register %q (%s): %w", w.BaseForm, w.ID, ErrDuplicateID)
	}
	w.seq = len(lx.entries)
	lx.entries = append(lx.entries, w)
	lx.byID[w.ID] = w

	base := NormalizeForm(w.BaseForm)
	lx.byBase[base] = append(lx.byBase[base], w)

	seen := map[string]bool{base: true}
	for _, v := range w.Variants() {
		v = NormalizeForm(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		lx.byVariant[v] = append(lx.byVariant[v], w)
	}

	lx.byCategory[w.Category] = append(lx.byCategory[w.Category], w)
	return nil
}

// ByID returns the entry with the given id, or nil.
func (lx *Lexicon) ByID(id string) *WordEntry {
	lx.mu.RLock()
	defer lx.mu.RUnlock()
	return lx.byID[id]
}

// Lookup returns every entry whose base form or one of whose variants
// equals form, restricted to cat unless cat is CatAny. Base-form matches
// come first, then variant matches, each in insertion order.
func (lx *Lexicon) Lookup(form string, cat Category) []*WordEntry {
	key := NormalizeForm(form)

	lx.mu.RLock()
	defer lx.mu.RUnlock()

	out := []*WordEntry{}
	for _, bucket := range [][]*WordEntry{lx.byBase[key], lx.byVariant[key]} {
		for _, w := range bucket {
			if cat != CatAny && w.Category != cat {
				continue
			}
			if !slices.Contains(out, w) {
				out = append(out, w)
			}
		}
	}
	return out
}

// LookupFirst returns the first result of Lookup, or nil.
func (lx *Lexicon) LookupFirst(form string, cat Category) *WordEntry {
	if ws := lx.Lookup(form, cat); len(ws) > 0 {
		return ws[0]
	}
	return nil
}

// Contains reports whether form is a known base form or variant.
func (lx *Lexicon) Contains(form string) bool {
	key := NormalizeForm(form)
	lx.mu.RLock()
	defer lx.mu.RUnlock()
	return len(lx.byBase[key]) > 0 || len(lx.byVariant[key]) > 0
}

// FindByFeatures returns the first entry of category cat, in insertion
// order, whose features include every key of query with an equal value.
// A boolean false in the query also matches an entry lacking the key.
func (lx *Lexicon) FindByFeatures(query Features, cat Category) *WordEntry {
	lx.mu.RLock()
	defer lx.mu.RUnlock()

	candidates := lx.entries
	if cat != CatAny {
		candidates = lx.byCategory[cat]
	}
	for _, w := range candidates {
		if w.features.matches(query) {
			return w
		}
	}
	return nil
}

// Word returns the first entry for form in cat. Unknown forms get a
// minimal synthesized entry which is registered so later lookups see it.
func (lx *Lexicon) Word(form string, cat Category) *WordEntry {
	if w := lx.LookupFirst(form, cat); w != nil {
		return w
	}
	if cat == CatAny {
		cat = CatNoun
	}

	lx.mu.Lock()
	defer lx.mu.Unlock()
	// another goroutine may have registered it meanwhile
	key := NormalizeForm(form)
	for _, w := range lx.byBase[key] {
		if w.Category == cat {
			return w
		}
	}
	w := NewWordEntry("", form, cat, nil)
	// a fresh uuid cannot collide
	_ = lx.register(w)
	lx.log.Debug("synthesized entry", "base", w.BaseForm, "category", string(cat), "id", w.ID)
	return w
}

// Transient is Word without registration: an unknown form gets a
// synthesized entry that the lexicon never sees.
func (lx *Lexicon) Transient(form string, cat Category) *WordEntry {
	if w := lx.LookupFirst(form, cat); w != nil {
		return w
	}
	if cat == CatAny {
		cat = CatNoun
	}
	return NewWordEntry("", form, cat, nil)
}

// CoordinatingConjunction returns the entry used between coordinated
// complements ("et").
func (lx *Lexicon) CoordinatingConjunction() *WordEntry {
	if w := lx.LookupFirst("et", CatConjunction); w != nil {
		return w
	}
	return NewWordEntry("et", "et", CatConjunction, nil)
}
