// internal/httpserver/server.go
//
// HTTP wiring for the phonetle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/alphabet", "/debug/lexicon".
//   - Round endpoints: POST /round/new, /round/key, /round/backspace,
//     /round/guess, /round/finalize, /round/restart; GET /round/{id} and
//     GET /round/current (cookie-bound).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the round cookie works).
//   - The reveal delay is reported to clients on /round/new; the server never
//     runs the finalize timer itself. While a round is revealing, key/guess
//     input is ignored by the game package until /round/finalize is called.
//   - The answer (word + phonemes) appears in responses only once the round
//     is over.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"phonetle/internal/game"
	"phonetle/internal/lexicon"
	"phonetle/internal/store"
)

const roundCookieName = "phonetle_round"

// Server bundles router, round store, and the game controller.
type Server struct {
	r           *chi.Mux
	store       store.Store
	ctrl        *game.Controller
	lex         *lexicon.Lexicon
	revealDelay time.Duration
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, lex *lexicon.Lexicon, revealDelay, requestTimeout time.Duration) *Server {
	s := &Server{
		r:           chi.NewRouter(),
		store:       st,
		ctrl:        game.NewController(lex),
		lex:         lex,
		revealDelay: revealDelay,
	}
	if requestTimeout <= 0 {
		requestTimeout = 10 * time.Second
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)               // add X-Request-ID
	s.r.Use(chimw.RealIP)                  // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)               // recover from panics
	s.r.Use(chimw.Timeout(requestTimeout)) // bound handler time
	s.r.Use(jsonContentType)               // default JSON responses
	s.r.Use(corsFromEnv)                   // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"phonetle-go","endpoints":["/health","POST /round/new","POST /round/guess","POST /round/finalize"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/alphabet", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"alphabet": s.lex.Alphabet()})
	})
	s.r.Get("/debug/lexicon", func(w http.ResponseWriter, r *http.Request) {
		words, candidates, phonemes := s.lex.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{
			"words": words, "candidates": candidates, "phonemes": phonemes,
		})
	})

	// --- round ---
	s.r.Post("/round/new", s.handleNewRound)
	s.r.Post("/round/key", s.handleKey)
	s.r.Post("/round/backspace", s.handleBackspace)
	s.r.Post("/round/guess", s.handleGuess)
	s.r.Post("/round/finalize", s.handleFinalize)
	s.r.Post("/round/restart", s.handleRestart)
	s.r.Get("/round/current", s.handleCurrent)
	s.r.Get("/round/{id}", s.handleState)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ payloads -----------------------------------

type newRoundReq struct {
	Answer string `json:"answer"` // optional fixed answer (testing)
}
type newRoundRes struct {
	RoundID  string   `json:"roundId"`
	Rows     int      `json:"rows"`
	Cols     int      `json:"cols"`
	RevealMs int64    `json:"revealMs"`
	Alphabet []string `json:"alphabet"`
}

type roundReq struct {
	RoundID string `json:"roundId"`
	Guess   string `json:"guess,omitempty"` // optional full-word shortcut on /round/guess
	Key     string `json:"key,omitempty"`   // single letter on /round/key
}

type guessRes struct {
	Marks    []game.Mark    `json:"marks"`
	Row      int            `json:"row"`
	Phase    game.Phase     `json:"phase"`
	Keyboard game.StatusMap `json:"keyboard"`
}

type finalizeRes struct {
	Phase          game.Phase `json:"phase"`
	Won            bool       `json:"won"`
	Answer         string     `json:"answer,omitempty"`
	AnswerPhonemes []string   `json:"answerPhonemes,omitempty"`
}

type stateRes struct {
	RoundID        string         `json:"roundId"`
	Phase          game.Phase     `json:"phase"`
	Rows           int            `json:"rows"`
	Cols           int            `json:"cols"`
	CurrentRow     int            `json:"currentRow"`
	Input          string         `json:"input"`
	Guesses        []game.Guess   `json:"guesses"`
	Keyboard       game.StatusMap `json:"keyboard"`
	Won            bool           `json:"won"`
	Answer         string         `json:"answer,omitempty"`
	AnswerPhonemes []string       `json:"answerPhonemes,omitempty"`
}

// ------------------------------ handlers -----------------------------------

// handleNewRound creates a round, saves it, and binds it to a cookie so
// GET /round/current can find it again.
func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var req newRoundReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	rd, err := s.ctrl.StartRound(req.Answer)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	if err := s.store.Save(r.Context(), rd); err != nil {
		log.Error().Err(err).Msg("save round")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     roundCookieName,
		Value:    rd.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	_ = json.NewEncoder(w).Encode(newRoundRes{
		RoundID:  rd.ID,
		Rows:     rd.Rows,
		Cols:     rd.Cols,
		RevealMs: s.revealDelay.Milliseconds(),
		Alphabet: s.lex.Alphabet(),
	})
}

// loadRound decodes the request, fetches the round, and writes the error
// responses common to all round mutations. Returns nil when a response has
// already been written.
func (s *Server) loadRound(w http.ResponseWriter, r *http.Request) (*game.Round, *roundReq) {
	var req roundReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return nil, nil
	}
	rd, err := s.store.Get(r.Context(), req.RoundID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil, nil
	}
	return rd, &req
}

// saveRound persists the mutated round; writes a 500 on failure.
func (s *Server) saveRound(w http.ResponseWriter, r *http.Request, rd *game.Round) bool {
	if err := s.store.Save(r.Context(), rd); err != nil {
		log.Error().Err(err).Str("roundId", rd.ID).Msg("save round")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return false
	}
	return true
}

// handleKey appends one typed letter (ignored outside the playing phase).
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	rd, req := s.loadRound(w, r)
	if rd == nil {
		return
	}
	if req.Key != "" {
		ch, _ := utf8.DecodeRuneInString(req.Key)
		s.ctrl.Press(rd, ch)
	}
	if !s.saveRound(w, r, rd) {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"input": rd.Input})
}

// handleBackspace removes the last typed letter.
func (s *Server) handleBackspace(w http.ResponseWriter, r *http.Request) {
	rd, _ := s.loadRound(w, r)
	if rd == nil {
		return
	}
	s.ctrl.Backspace(rd)
	if !s.saveRound(w, r, rd) {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"input": rd.Input})
}

// handleGuess submits the in-progress guess. A non-empty "guess" in the body
// replaces the typed buffer first (clients that do not type key-by-key).
// Unknown-word and wrong-length guesses return 422 with the buffer cleared
// and the phase untouched.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	rd, req := s.loadRound(w, r)
	if rd == nil {
		return
	}
	if req.Guess != "" && rd.Phase == game.PhasePlaying {
		rd.Input = ""
		for _, ch := range req.Guess {
			s.ctrl.Press(rd, ch)
		}
	}

	g, err := s.ctrl.SubmitGuess(rd)
	if err != nil {
		// Recoverable: report and clear the buffer so the next attempt
		// starts fresh. Phase is unchanged.
		rd.Input = ""
		if !s.saveRound(w, r, rd) {
			return
		}
		status := http.StatusUnprocessableEntity
		if !errors.Is(err, game.ErrUnknownWord) && !errors.Is(err, game.ErrWrongLength) {
			status = http.StatusBadRequest
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, status)
		return
	}
	if !s.saveRound(w, r, rd) {
		return
	}
	res := guessRes{Row: rd.CurrentRow() - 1, Phase: rd.Phase, Keyboard: rd.Keyboard}
	if g != nil {
		res.Marks = g.Marks
	} else {
		// Empty buffer or locked phase: nothing happened.
		res.Row = rd.CurrentRow()
	}
	_ = json.NewEncoder(w).Encode(res)
}

// handleFinalize applies the win/loss decision after the client's reveal
// delay. The answer is disclosed only when the round ends.
func (s *Server) handleFinalize(w http.ResponseWriter, r *http.Request) {
	rd, _ := s.loadRound(w, r)
	if rd == nil {
		return
	}
	phase := s.ctrl.FinalizeRow(rd)
	if !s.saveRound(w, r, rd) {
		return
	}
	res := finalizeRes{Phase: phase, Won: rd.Won}
	if phase == game.PhaseOver {
		res.Answer = rd.Answer
		res.AnswerPhonemes = rd.AnswerPhonemes
	}
	_ = json.NewEncoder(w).Encode(res)
}

// handleRestart re-deals a finished round in place. Ignored while playing.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	rd, _ := s.loadRound(w, r)
	if rd == nil {
		return
	}
	if err := s.ctrl.Restart(rd); err != nil {
		log.Error().Err(err).Str("roundId", rd.ID).Msg("restart round")
		http.Error(w, `{"error":"restart_failed"}`, http.StatusInternalServerError)
		return
	}
	if !s.saveRound(w, r, rd) {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"phase": rd.Phase, "rows": rd.Rows, "cols": rd.Cols})
}

// handleState returns a snapshot of the round by path ID.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.writeState(w, r, chi.URLParam(r, "id"))
}

// handleCurrent returns the round bound to the browser cookie.
func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(roundCookieName)
	if err != nil || c.Value == "" {
		http.Error(w, `{"error":"no_round"}`, http.StatusNotFound)
		return
	}
	s.writeState(w, r, c.Value)
}

func (s *Server) writeState(w http.ResponseWriter, r *http.Request, id string) {
	rd, err := s.store.Get(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	res := stateRes{
		RoundID:    rd.ID,
		Phase:      rd.Phase,
		Rows:       rd.Rows,
		Cols:       rd.Cols,
		CurrentRow: rd.CurrentRow(),
		Input:      rd.Input,
		Guesses:    rd.Guesses,
		Keyboard:   rd.Keyboard,
		Won:        rd.Won,
	}
	if rd.Phase == game.PhaseOver {
		res.Answer = rd.Answer
		res.AnswerPhonemes = rd.AnswerPhonemes
	}
	_ = json.NewEncoder(w).Encode(res)
}
