package nlg

import "strings"

// Element is any constituent of a phrase tree or of a realised token
// list.
type Element interface {
	// Category is the lexical or phrasal category.
	Category() Category
	// Features exposes the mutable feature map of the element.
	Features() Features
	// Parent is the phrase this element is attached to, or nil.
	Parent() *PhraseNode

	Gender() Gender
	Number() Number
	DiscourseFunction() DiscourseFunction
	SetDiscourseFunction(f DiscourseFunction)

	setParent(p *PhraseNode)
}

// node holds what every element carries. The parent pointer is a
// non-owning back reference set when the element is attached.
type node struct {
	category Category
	features Features
	parent   *PhraseNode
}

func (n *node) Category() Category      { return n.category }
func (n *node) Parent() *PhraseNode     { return n.parent }
func (n *node) setParent(p *PhraseNode) { n.parent = p }

func (n *node) Features() Features {
	if n.features == nil {
		n.features = make(Features)
	}
	return n.features
}

func (n *node) Gender() Gender                       { return n.features.gender() }
func (n *node) Number() Number                       { return n.features.number() }
func (n *node) Person() Person                       { return n.features.person() }
func (n *node) DiscourseFunction() DiscourseFunction { return n.features.function() }

func (n *node) SetDiscourseFunction(f DiscourseFunction) {
	n.Features().Set(FeatDiscourseFunction, f)
}

// SetFeature stores a feature value on the element.
func (n *node) SetFeature(k Feature, v any) { n.Features().Set(k, v) }

// isPlural reports whether e is marked plural.
func isPlural(e Element) bool { return e != nil && e.Number() == NumberPlural }

// InflectedElement is a word selected for a phrase: a reference to its
// WordEntry plus a feature map (a copy of the word's features with
// per-use overrides).
type InflectedElement struct {
	node
	word *WordEntry
}

// Word returns the wrapped lexicon entry.
func (e *InflectedElement) Word() *WordEntry { return e.word }

// BaseForm returns the wrapped entry's base form.
func (e *InflectedElement) BaseForm() string { return e.word.BaseForm }

// StringElement is a realised surface token, or canned text. An empty
// Realisation marks the token as nulled.
type StringElement struct {
	node
	// Realisation is the surface text.
	Realisation string
}

// NewStringElement returns a canned-text element.
func NewStringElement(text string) *StringElement {
	return &StringElement{
		node:        node{category: CatCannedText, features: make(Features)},
		Realisation: text,
	}
}

// stringFrom returns a token for text carrying the category, features
// and parent of src.
func stringFrom(text string, src Element) *StringElement {
	s := &StringElement{Realisation: text}
	s.category = src.Category()
	s.features = src.Features().Clone()
	s.parent = src.Parent()
	return s
}

// Null marks the token as removed from the output.
func (s *StringElement) Null() { s.Realisation = "" }

// IsNull reports whether the token was removed.
func (s *StringElement) IsNull() bool { return s.Realisation == "" }

func (s *StringElement) String() string { return s.Realisation }

// ListElement is a flat ordered sequence of leaves produced by the
// syntax stage.
type ListElement struct {
	node
	components []Element
}

// NewList builds a list from elements, flattening nested lists.
func NewList(elems ...Element) *ListElement {
	l := &ListElement{node: node{features: make(Features)}}
	for _, e := range elems {
		l.Append(e)
	}
	return l
}

// Append adds e at the end. A nested list is spliced in; nil is ignored.
func (l *ListElement) Append(e Element) {
	switch x := e.(type) {
	case nil:
	case *ListElement:
		if x != nil {
			l.components = append(l.components, x.components...)
		}
	default:
		l.components = append(l.components, e)
	}
}

// Components returns the leaves in order.
func (l *ListElement) Components() []Element { return l.components }

// Len returns the number of leaves.
func (l *ListElement) Len() int { return len(l.components) }

// Head returns the first leaf, or nil.
func (l *ListElement) Head() Element {
	if len(l.components) == 0 {
		return nil
	}
	return l.components[0]
}

func (l *ListElement) String() string {
	parts := make([]string, 0, len(l.components))
	for _, c := range l.components {
		switch x := c.(type) {
		case *StringElement:
			parts = append(parts, x.Realisation)
		case *InflectedElement:
			parts = append(parts, x.BaseForm())
		}
	}
	return strings.Join(parts, " ")
}
