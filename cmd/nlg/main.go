// Command nlg realises phrase descriptions and conjugates verbs from the
// command line.
//
// Usage:
//
//	nlg realise [-sentence] <phrase.json | ->
//	nlg conjugate <verb>...
//	nlg lookup [-category <cat>] <form>...
//	nlg lemmatize <text>...
//	nlg export
//
// The lexicon is configured like the server, through NLG_* variables.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/cours-de-latin/nlg"
	"github.com/cours-de-latin/nlg/internal/app"
	"github.com/cours-de-latin/nlg/internal/config"
	"github.com/cours-de-latin/nlg/jsonspec"
)

var (
	heading = color.New(color.FgCyan, color.Bold).SprintFunc()
	label   = color.New(color.FgHiBlack).SprintFunc()
	warn    = color.New(color.FgYellow).SprintFunc()
	failure = color.New(color.FgRed, color.Bold).SprintFunc()
)

// subjects label the rows of a conjugation table.
var subjects = []string{"je", "tu", "il", "nous", "vous", "ils"}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	if err := run(context.Background(), os.Args[1], os.Args[2:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, failure("error:"), err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: nlg realise [-sentence] <phrase.json | ->")
	fmt.Fprintln(w, "       nlg conjugate <verb>...")
	fmt.Fprintln(w, "       nlg lookup [-category <cat>] <form>...")
	fmt.Fprintln(w, "       nlg lemmatize <text>...")
	fmt.Fprintln(w, "       nlg export")
}

func run(ctx context.Context, cmd string, args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	app.InitLogging(cfg)

	store, err := app.OpenStore(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}
	rz, err := app.NewRealiser(ctx, cfg, store)
	if err != nil {
		return err
	}

	switch cmd {
	case "realise", "realize":
		return realise(rz, args, stdin, stdout)
	case "conjugate":
		return conjugate(rz, args, stdout)
	case "lookup":
		return lookup(rz, args, stdout)
	case "lemmatize":
		return lemmatize(rz, args, stdout)
	case "export":
		return rz.Lexicon().WriteXML(stdout)
	}
	usage(stdout)
	return fmt.Errorf("unknown command %q", cmd)
}

func realise(rz *nlg.Realiser, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("realise", flag.ContinueOnError)
	sentence := fs.Bool("sentence", false, "capitalise and punctuate the result")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("realise needs one phrase file, or - for stdin")
	}

	in := stdin
	if name := fs.Arg(0); name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	e, err := jsonspec.Decode(rz.Lexicon(), in)
	if err != nil {
		return err
	}
	text, err := rz.RealiseString(e)
	if err != nil {
		return err
	}
	if *sentence {
		text = nlg.Sentence(text)
	}
	fmt.Fprintln(stdout, text)
	return nil
}

func conjugate(rz *nlg.Realiser, verbs []string, stdout io.Writer) error {
	if len(verbs) == 0 {
		return errors.New("conjugate needs at least one verb")
	}
	for i, verb := range verbs {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		table, err := rz.Conjugate(verb)
		if err != nil {
			return err
		}
		printTable(stdout, table)
	}
	return nil
}

func printTable(w io.Writer, t *nlg.ConjugationTable) {
	fmt.Fprintln(w, heading(t.Infinitive))
	for _, name := range nlg.TableOrder {
		forms := t.Cells[name]
		fmt.Fprintf(w, "  %s\n", heading(name))
		rows := subjects
		if name == nlg.TableImperative {
			rows = []string{"tu", "nous", "vous"}
		}
		for i, form := range forms {
			fmt.Fprintf(w, "    %-5s %s\n", label(rows[i]), form)
		}
	}
	fmt.Fprintf(w, "  %s %s\n", label("participe présent"), t.PresentParticiple)
	fmt.Fprintf(w, "  %s %s\n", label("participe passé"), t.PastParticiple)
}

func lookup(rz *nlg.Realiser, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	catName := fs.String("category", "", "restrict to one category")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cat := nlg.CatAny
	if *catName != "" {
		var ok bool
		if cat, ok = nlg.ParseCategory(*catName); !ok {
			return fmt.Errorf("unknown category %q", *catName)
		}
	}

	for _, form := range fs.Args() {
		words := rz.Lexicon().Lookup(form, cat)
		if len(words) == 0 {
			fmt.Fprintf(stdout, "%s %s\n", form, warn("not found"))
			continue
		}
		for _, w := range words {
			fmt.Fprintf(stdout, "%s %s %s %s\n", form, heading(w.BaseForm), label(string(w.Category)), w.ID)
			fmt.Fprintln(stdout, "   ", describeFeatures(w.Features()))
		}
	}
	return nil
}

// lemmatize prints every reading of every word of the text formed by
// args.
func lemmatize(rz *nlg.Realiser, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New("lemmatize needs some text")
	}
	a, err := nlg.NewAnalyser(rz.Lexicon())
	if err != nil {
		return err
	}
	for _, res := range a.AnalyseText(strings.Join(args, " ")) {
		if len(res.Lemmas) == 0 {
			fmt.Fprintf(stdout, "%s %s\n", res.Token, warn("unknown"))
			continue
		}
		for _, l := range res.Lemmas {
			fmt.Fprintf(stdout, "%s %s %s\n", res.Token, heading(l.Entry.BaseForm), label(string(l.Entry.Category)))
			for _, an := range l.Analyses {
				if an.Contraction != "" {
					fmt.Fprintf(stdout, "    %s (%s)\n", an.Description, label("contraction de "+an.Contraction))
				} else {
					fmt.Fprintln(stdout, "   ", an.Description)
				}
			}
		}
	}
	return nil
}

// describeFeatures renders features as sorted key=value pairs.
func describeFeatures(fs nlg.Features) string {
	keys := make([]string, 0, len(fs))
	for k := range fs {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		switch v := fs[nlg.Feature(k)].(type) {
		case bool:
			if v {
				parts = append(parts, k)
			}
		case []string:
			parts = append(parts, k+"="+strings.Join(v, ","))
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
	}
	return strings.Join(parts, " ")
}
