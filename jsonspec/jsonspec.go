// Package jsonspec builds phrase trees from JSON descriptions.
//
// A node is either a phrase, a word or canned text:
//
//	{"category": "noun_phrase", "features": {"number": "plural"},
//	 "specifier": {"word": "le", "category": "determiner"},
//	 "head": {"word": "maison", "category": "noun"},
//	 "modifiers": ["beau", "perdu"]}
//
//	{"word": "partir", "category": "verb", "features": {"tense": "future"}}
//
//	{"text": "de temps en temps"}
//
// Words are resolved against a lexicon; unknown words are synthesised
// in the given category. Build registers them in the lexicon,
// BuildTransient does not.
package jsonspec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cours-de-latin/nlg"
)

var ErrInvalid = errors.New("jsonspec: invalid phrase description")

type Node struct {
	Category string         `json:"category,omitempty"`
	Word     string         `json:"word,omitempty"`
	Text     string         `json:"text,omitempty"`
	Function string         `json:"function,omitempty"`
	Features map[string]any `json:"features,omitempty"`

	Specifier     *Node   `json:"specifier,omitempty"`
	Head          *Node   `json:"head,omitempty"`
	Premodifiers  []*Node `json:"premodifiers,omitempty"`
	Complements   []*Node `json:"complements,omitempty"`
	Postmodifiers []*Node `json:"postmodifiers,omitempty"`
	// Modifiers are placed before or after the head by the phrase itself.
	Modifiers []string `json:"modifiers,omitempty"`
}

// Decode reads one JSON description from r and builds it.
func Decode(lex *nlg.Lexicon, r io.Reader) (nlg.Element, error) {
	var n Node
	if err := json.NewDecoder(r).Decode(&n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return Build(lex, &n)
}

// Build turns n into an element tree.
func Build(lex *nlg.Lexicon, n *Node) (nlg.Element, error) {
	b := builder{word: lex.Word}
	return b.build(n, "$")
}

// BuildTransient is Build for untrusted input: unknown words get
// entries that are not added to lex.
func BuildTransient(lex *nlg.Lexicon, n *Node) (nlg.Element, error) {
	b := builder{word: lex.Transient}
	return b.build(n, "$")
}

type builder struct {
	// word resolves a form to its lexicon entry.
	word func(form string, cat nlg.Category) *nlg.WordEntry
}

func (b builder) build(n *Node, path string) (nlg.Element, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: %s: empty node", ErrInvalid, path)
	}
	features, err := convertFeatures(n.Features)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}

	var e nlg.Element
	switch {
	case n.Text != "":
		s := nlg.NewStringElement(n.Text)
		s.Features().Merge(features)
		e = s
	case n.Word != "":
		cat := nlg.CatAny
		if n.Category != "" {
			c, ok := nlg.ParseCategory(n.Category)
			if !ok || !c.IsLexical() {
				return nil, fmt.Errorf("%w: %s: %q is not a word category", ErrInvalid, path, n.Category)
			}
			cat = c
		}
		e = b.word(n.Word, cat).Inflect(features)
	default:
		c, ok := nlg.ParseCategory(n.Category)
		if !ok || !c.IsPhrase() {
			return nil, fmt.Errorf("%w: %s: %q is not a phrase category", ErrInvalid, path, n.Category)
		}
		p := nlg.NewPhrase(c)
		p.Features().Merge(features)
		if err := b.buildPhrase(p, n, path); err != nil {
			return nil, err
		}
		e = p
	}

	if n.Function != "" {
		e.SetDiscourseFunction(nlg.DiscourseFunction(n.Function))
	}
	return e, nil
}

func (b builder) buildPhrase(p *nlg.PhraseNode, n *Node, path string) error {
	if n.Specifier != nil {
		spec, err := b.build(n.Specifier, path+".specifier")
		if err != nil {
			return err
		}
		p.SetSpecifier(spec)
	}
	if n.Head != nil {
		head, err := b.build(n.Head, path+".head")
		if err != nil {
			return err
		}
		p.SetHead(head)
	}

	slots := []struct {
		name  string
		nodes []*Node
		add   func(nlg.Element)
	}{
		{"premodifiers", n.Premodifiers, p.AddPremodifier},
		{"complements", n.Complements, p.AddComplement},
		{"postmodifiers", n.Postmodifiers, p.AddPostmodifier},
	}
	for _, slot := range slots {
		for i, child := range slot.nodes {
			e, err := b.build(child, fmt.Sprintf("%s.%s[%d]", path, slot.name, i))
			if err != nil {
				return err
			}
			slot.add(e)
		}
	}

	// single words go through b.word, not the lexicon AddModifier would use
	for _, m := range n.Modifiers {
		m = strings.TrimSpace(m)
		switch {
		case m == "":
		case strings.Contains(m, " "):
			p.AddModifier(m, nil)
		default:
			p.AddModifier(b.word(m, nlg.CatAdjective), nil)
		}
	}
	return nil
}

// convertFeatures narrows decoded JSON values to the feature value
// types: strings, booleans and string lists. Whole numbers are accepted
// as strings so "person": 1 reads like "person": "1".
func convertFeatures(m map[string]any) (nlg.Features, error) {
	fs := make(nlg.Features, len(m))
	for k, v := range m {
		switch x := v.(type) {
		case nil:
		case string, bool:
			fs.Set(nlg.Feature(k), x)
		case float64:
			if x != float64(int64(x)) {
				return nil, fmt.Errorf("feature %s: %v is not a whole number", k, x)
			}
			fs.Set(nlg.Feature(k), strconv.FormatInt(int64(x), 10))
		case []any:
			list := make([]string, 0, len(x))
			for _, item := range x {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("feature %s: list items must be strings", k)
				}
				list = append(list, s)
			}
			fs.Set(nlg.Feature(k), list)
		default:
			return nil, fmt.Errorf("feature %s: unsupported value %v", k, v)
		}
	}
	return fs, nil
}
