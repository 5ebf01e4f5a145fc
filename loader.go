package nlg

import (
	"bytes"
	"embed"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hack-pad/hackpadfs"
)

//go:embed data/*.xml
var dataFS embed.FS

// inflectionCodes are the empty elements naming an entry's inflection
// pattern. They are collected in the "inflections" feature.
var inflectionCodes = map[string]bool{
	"reg":          true,
	"irreg":        true,
	"uncount":      true,
	"inv":          true,
	"metareg":      true,
	"glreg":        true,
	"nonCount":     true,
	"sing":         true,
	"groupuncount": true,
}

// xmlLexicon is the document shape:
//
//	<lexicon language="fr">
//	  <word>
//	    <base>cheval</base><category>noun</category><id>E1</id>
//	    <gender>masculine</gender><plural>chevaux</plural><reg/>
//	  </word>
//	</lexicon>
//
// Empty feature elements are booleans; repeated elements become lists.
type xmlLexicon struct {
	XMLName  xml.Name  `xml:"lexicon"`
	Language string    `xml:"language,attr,omitempty"`
	Words    []xmlWord `xml:"word"`
}

type xmlWord struct {
	Fields []xmlField `xml:",any"`
}

type xmlField struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// LoadLanguage returns the bundled lexicon for lang.
func LoadLanguage(lang Language) (*Lexicon, error) {
	f, err := dataFS.Open("data/" + string(lang) + "-lexicon.xml")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("lexicon for %q: %w", lang, ErrUnsupportedLanguage)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s lexicon: %w", lang, err)
	}
	defer f.Close()

	lx := NewLexicon(lang)
	if _, err := lx.Load(f); err != nil {
		return nil, fmt.Errorf("read %s lexicon: %w", lang, err)
	}
	return lx, nil
}

// LoadLexiconFile reads a lexicon document from path. The lexicon
// language comes from the root element, French when absent.
func LoadLexiconFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	doc, err := decodeLexicon(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	lang := French
	if doc.Language != "" {
		lang = Language(doc.Language)
	}
	lx := NewLexicon(lang)
	if _, err := lx.addAll(doc); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return lx, nil
}

// Load reads a lexicon document from r and registers its entries. It
// returns the number of entries added.
func (lx *Lexicon) Load(r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	doc, err := decodeLexicon(data)
	if err != nil {
		return 0, err
	}
	return lx.addAll(doc)
}

// LoadFS reads the lexicon document at path on fsys.
func (lx *Lexicon) LoadFS(fsys hackpadfs.FS, path string) (int, error) {
	data, err := hackpadfs.ReadFile(fsys, path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	doc, err := decodeLexicon(data)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return lx.addAll(doc)
}

// LoadGlob merges every lexicon document of fsys matching pattern
// ("extra/**/*.xml"), in lexical path order.
func (lx *Lexicon) LoadGlob(fsys fs.FS, pattern string) (int, error) {
	paths, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return 0, fmt.Errorf("glob %s: %w", pattern, err)
	}
	sort.Strings(paths)

	total := 0
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return total, fmt.Errorf("open %s: %w", p, err)
		}
		doc, err := decodeLexicon(data)
		if err != nil {
			return total, fmt.Errorf("parse %s: %w", p, err)
		}
		n, err := lx.addAll(doc)
		total += n
		if err != nil {
			return total, fmt.Errorf("load %s: %w", p, err)
		}
	}
	return total, nil
}

// SaveFS writes every entry as a lexicon document to path on fsys.
func (lx *Lexicon) SaveFS(fsys hackpadfs.FS, path string) error {
	var buf bytes.Buffer
	if err := lx.WriteXML(&buf); err != nil {
		return err
	}
	if err := hackpadfs.WriteFullFile(fsys, path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteXML encodes every entry, in insertion order, as a lexicon
// document.
func (lx *Lexicon) WriteXML(w io.Writer) error {
	doc := xmlLexicon{Language: string(lx.Language())}
	for _, e := range lx.Entries() {
		doc.Words = append(doc.Words, encodeWord(e))
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode lexicon: %w", err)
	}
	return enc.Flush()
}

func decodeLexicon(data []byte) (*xmlLexicon, error) {
	var doc xmlLexicon
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// addAll registers the words of doc, skipping records without a base
// form or with an unknown category.
func (lx *Lexicon) addAll(doc *xmlLexicon) (int, error) {
	n := 0
	for i, xw := range doc.Words {
		w, ok := decodeWord(xw)
		if !ok {
			lx.log.Debug("skipping malformed word", "index", i)
			continue
		}
		if err := lx.Register(w); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func decodeWord(xw xmlWord) (*WordEntry, bool) {
	var id, base string
	var cat Category
	feats := make(Features)
	for _, f := range xw.Fields {
		name := f.XMLName.Local
		value := strings.TrimSpace(f.Value)
		switch {
		case name == "base":
			base = value
		case name == "id":
			id = value
		case name == "category":
			c, ok := ParseCategory(value)
			if !ok {
				return nil, false
			}
			cat = c
		case inflectionCodes[name]:
			feats[FeatInflections] = append(feats.Strings(FeatInflections), name)
		case name == "spelling_variant":
			feats[FeatSpellingVariant] = append(feats.Strings(FeatSpellingVariant), value)
		case value == "":
			feats[Feature(name)] = true
		default:
			k := Feature(name)
			switch prev := feats[k].(type) {
			case string:
				feats[k] = []string{prev, value}
			case []string:
				feats[k] = append(prev, value)
			default:
				feats[k] = value
			}
		}
	}
	if base == "" || cat == "" {
		return nil, false
	}
	return NewWordEntry(id, base, cat, feats), true
}

func encodeWord(w *WordEntry) xmlWord {
	xw := xmlWord{Fields: []xmlField{
		{XMLName: xml.Name{Local: "base"}, Value: w.BaseForm},
		{XMLName: xml.Name{Local: "category"}, Value: string(w.Category)},
		{XMLName: xml.Name{Local: "id"}, Value: w.ID},
	}}
	keys := make([]string, 0, len(w.features))
	for k := range w.features {
		keys = append(keys, string(k))
	}
	slices.Sort(keys)

	field := func(name, value string) {
		xw.Fields = append(xw.Fields, xmlField{XMLName: xml.Name{Local: name}, Value: value})
	}
	for _, name := range keys {
		k := Feature(name)
		switch v := w.features[k].(type) {
		case bool:
			if v {
				field(name, "")
			}
		case string:
			field(name, v)
		case []string:
			for _, s := range v {
				switch k {
				case FeatInflections:
					field(s, "")
				case FeatSpellingVariant:
					field("spelling_variant", s)
				default:
					field(name, s)
				}
			}
		}
	}
	return xw
}
