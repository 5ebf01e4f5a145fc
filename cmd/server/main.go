// Command server exposes the French realiser as a JSON REST API.
//
// Endpoints:
//
//	POST /api/realise        body: {"phrase": {...}, "sentence": true}
//	GET  /api/lookup?form=<word>[&category=<cat>]
//	GET  /api/conjugate?verb=<infinitive>
//	GET  /api/lemmatize?form=<word>[&sentence_start=true]
//	POST /api/lemmatize/text   body: {"text":"..."}
//	GET  /api/languages
//	POST /api/lexicon/save
//
// Settings come from NLG_* environment variables (see internal/config).
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/cours-de-latin/nlg"
	"github.com/cours-de-latin/nlg/internal/app"
	"github.com/cours-de-latin/nlg/internal/config"
	"github.com/cours-de-latin/nlg/internal/logger"
	"github.com/cours-de-latin/nlg/jsonspec"
	"github.com/cours-de-latin/nlg/lexstore"
)

// ---- JSON request/response types ----------------------------------------

type realiseRequest struct {
	Phrase   *jsonspec.Node `json:"phrase"`
	Sentence bool           `json:"sentence"`
}

type realiseResponse struct {
	Text   string   `json:"text"`
	Tokens []string `json:"tokens"`
}

type wordJSON struct {
	ID       string         `json:"id"`
	Base     string         `json:"base"`
	Category string         `json:"category"`
	Features map[string]any `json:"features,omitempty"`
}

type lookupResponse struct {
	Form  string     `json:"form"`
	Words []wordJSON `json:"words"`
}

type analysisJSON struct {
	Word     wordJSON       `json:"word"`
	Analyses []nlg.Analysis `json:"analyses"`
}

type lemmatizeWordResponse struct {
	Form     string         `json:"form"`
	Analyses []analysisJSON `json:"analyses"`
}

type tokenResultJSON struct {
	Token         string         `json:"token"`
	SentenceStart bool           `json:"sentence_start"`
	Analyses      []analysisJSON `json:"analyses"`
}

type lemmatizeTextResponse struct {
	Results []tokenResultJSON `json:"results"`
}

type languagesResponse struct {
	Languages map[string]string `json:"languages"`
}

type saveResponse struct {
	Saved int `json:"saved"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// ---- server state -------------------------------------------------------

type server struct {
	cfg   *config.Config
	store *lexstore.Store
	// realiser and analyser are swapped wholesale when the lexicon is
	// reloaded. analyser is nil for languages it cannot index.
	realiser atomic.Pointer[nlg.Realiser]
	analyser atomic.Pointer[nlg.Analyser]
	log      *slog.Logger
}

func newServer(cfg *config.Config, store *lexstore.Store, r *nlg.Realiser) *server {
	s := &server{cfg: cfg, store: store, log: logger.ForComponent("server")}
	s.install(r)
	return s
}

// install publishes r and an analyser over its lexicon.
func (s *server) install(r *nlg.Realiser) {
	a, err := nlg.NewAnalyser(r.Lexicon())
	if err != nil {
		s.log.Warn("lemmatization disabled", "error", err)
	}
	s.analyser.Store(a)
	s.realiser.Store(r)
}

// reload rebuilds the realiser from configuration. Words registered in
// the current lexicon are saved first so they survive the swap.
func (s *server) reload(ctx context.Context) error {
	if s.store != nil {
		if _, err := s.store.Save(ctx, s.realiser.Load().Lexicon()); err != nil {
			return fmt.Errorf("save before reload: %w", err)
		}
	}
	r, err := app.NewRealiser(ctx, s.cfg, s.store)
	if err != nil {
		return err
	}
	s.install(r)
	s.log.Info("lexicon reloaded", "entries", r.Lexicon().Len())
	return nil
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/realise", s.handleRealise)
	mux.HandleFunc("/api/lookup", s.handleLookup)
	mux.HandleFunc("/api/conjugate", s.handleConjugate)
	mux.HandleFunc("/api/lemmatize/text", s.handleLemmatizeText)
	mux.HandleFunc("/api/lemmatize", s.handleLemmatizeWord)
	mux.HandleFunc("/api/languages", s.handleLanguages)
	mux.HandleFunc("/api/lexicon/save", s.handleSave)

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
	})
	return s.withRequestID(c.Handler(mux))
}

// ---- helpers ------------------------------------------------------------

type ctxKey struct{}

// withRequestID tags every request with an id, echoed in X-Request-ID
// and in the access log.
func (s *server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
		s.log.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start))
	})
}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return id
}

func toWordJSON(w *nlg.WordEntry) wordJSON {
	features := make(map[string]any)
	for k, v := range w.Features() {
		features[string(k)] = v
	}
	return wordJSON{
		ID:       w.ID,
		Base:     w.BaseForm,
		Category: string(w.Category),
		Features: features,
	}
}

func toAnalysesJSON(ls []nlg.Lemmatization) []analysisJSON {
	out := make([]analysisJSON, 0, len(ls))
	for _, l := range ls {
		out = append(out, analysisJSON{Word: toWordJSON(l.Entry), Analyses: l.Analyses})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, RequestID: requestID(r)})
}

// ---- handlers -----------------------------------------------------------

func (s *server) handleRealise(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var body realiseRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Phrase == nil {
		writeError(w, r, http.StatusBadRequest, "body must be JSON with a 'phrase' object")
		return
	}

	rz := s.realiser.Load()
	e, err := jsonspec.BuildTransient(rz.Lexicon(), body.Phrase)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	tokens, err := rz.Realise(e)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, nlg.ErrUnknownVerbBase) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, r, status, err.Error())
		return
	}

	text := nlg.Join(tokens)
	if body.Sentence {
		text = nlg.Sentence(text)
	}
	out := realiseResponse{Text: text, Tokens: []string{}}
	for _, t := range tokens {
		if t != nil && !t.IsNull() {
			out.Tokens = append(out.Tokens, t.Realisation)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleLookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "GET required")
		return
	}
	form := r.URL.Query().Get("form")
	if form == "" {
		writeError(w, r, http.StatusBadRequest, "missing 'form' query parameter")
		return
	}
	cat := nlg.CatAny
	if c := r.URL.Query().Get("category"); c != "" {
		var ok bool
		if cat, ok = nlg.ParseCategory(c); !ok {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("unknown category %q", c))
			return
		}
	}

	words := s.realiser.Load().Lexicon().Lookup(form, cat)
	out := make([]wordJSON, 0, len(words))
	for _, wd := range words {
		out = append(out, toWordJSON(wd))
	}
	status := http.StatusOK
	if len(out) == 0 {
		status = http.StatusNotFound
	}
	writeJSON(w, status, lookupResponse{Form: form, Words: out})
}

func (s *server) handleConjugate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "GET required")
		return
	}
	verb := r.URL.Query().Get("verb")
	if verb == "" {
		writeError(w, r, http.StatusBadRequest, "missing 'verb' query parameter")
		return
	}
	table, err := s.realiser.Load().Conjugate(verb)
	if errors.Is(err, nlg.ErrUnknownVerbBase) {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (s *server) handleLemmatizeWord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "GET required")
		return
	}
	form := r.URL.Query().Get("form")
	if form == "" {
		writeError(w, r, http.StatusBadRequest, "missing 'form' query parameter")
		return
	}
	a := s.analyser.Load()
	if a == nil {
		writeError(w, r, http.StatusNotImplemented, "no analyser for this language")
		return
	}
	sentenceStart, _ := strconv.ParseBool(r.URL.Query().Get("sentence_start"))

	ls := a.AnalyseWord(form, sentenceStart)
	status := http.StatusOK
	if len(ls) == 0 {
		status = http.StatusNotFound
	}
	writeJSON(w, status, lemmatizeWordResponse{Form: form, Analyses: toAnalysesJSON(ls)})
}

func (s *server) handleLemmatizeText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Text == "" {
		writeError(w, r, http.StatusBadRequest, "body must be JSON with a non-empty 'text' field")
		return
	}
	a := s.analyser.Load()
	if a == nil {
		writeError(w, r, http.StatusNotImplemented, "no analyser for this language")
		return
	}

	results := a.AnalyseText(body.Text)
	out := make([]tokenResultJSON, 0, len(results))
	for _, res := range results {
		out = append(out, tokenResultJSON{
			Token:         res.Token,
			SentenceStart: res.SentenceStart,
			Analyses:      toAnalysesJSON(res.Lemmas),
		})
	}
	writeJSON(w, http.StatusOK, lemmatizeTextResponse{Results: out})
}

func (s *server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "GET required")
		return
	}
	writeJSON(w, http.StatusOK, languagesResponse{Languages: nlg.Languages()})
}

func (s *server) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "POST required")
		return
	}
	if s.store == nil {
		writeError(w, r, http.StatusConflict, "no lexicon store configured (NLG_STORE)")
		return
	}
	n, err := s.store.Save(r.Context(), s.realiser.Load().Lexicon())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, saveResponse{Saved: n})
}

// ---- main ---------------------------------------------------------------

func main() {
	envFile := flag.String("env", "", "optional .env file (default: ./.env when present)")
	addr := flag.String("addr", "", "listen address (overrides NLG_ADDR)")
	flag.Parse()

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	app.InitLogging(cfg)

	if err := run(cfg); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := app.OpenStore(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	slog.Info("loading lexicon", "language", cfg.Language)
	rz, err := app.NewRealiser(ctx, cfg, store)
	if err != nil {
		return fmt.Errorf("load lexicon: %w", err)
	}
	slog.Info("lexicon loaded", "entries", rz.Lexicon().Len(), "categories", categoryCounts(rz.Lexicon()))

	s := newServer(cfg, store, rz)
	if cfg.Watch {
		if err := s.watch(ctx, cfg.LexiconPath); err != nil {
			return fmt.Errorf("watch lexicon: %w", err)
		}
	}

	srv := &http.Server{Addr: cfg.Addr, Handler: s.routes(), ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if store != nil {
		n, err := store.Save(shutdownCtx, s.realiser.Load().Lexicon())
		if err != nil {
			return fmt.Errorf("save lexicon: %w", err)
		}
		slog.Info("lexicon saved", "entries", n)
	}
	return nil
}

// categoryCounts summarises lex for the startup log, e.g. "noun=40 verb=30".
func categoryCounts(lex *nlg.Lexicon) string {
	counts := make(map[nlg.Category]int)
	for _, w := range lex.Entries() {
		counts[w.Category]++
	}
	cats := make([]string, 0, len(counts))
	for c := range counts {
		cats = append(cats, string(c))
	}
	sort.Strings(cats)
	out := ""
	for i, c := range cats {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s=%d", c, counts[nlg.Category(c)])
	}
	return out
}
