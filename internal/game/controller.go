// internal/game/controller.go
//
// Round orchestration for the phoneme-guessing game.
// Responsibilities:
//   - Start rounds with a uniformly random candidate answer (or a fixed
//     answer for testing).
//   - Accept typing input only while the round is in the playing phase.
//   - Validate and score submitted guesses against the lexicon.
//   - Split guess handling into submit (score + lock input) and finalize
//     (win/loss decision), so reveal timing stays a caller concern.
//
// State transitions:
//   playing → revealing on an accepted guess; revealing → over on a winning
//   or sixth guess, otherwise revealing → playing. Restart is only honored
//   once the round is over.

package game

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"phonetle/internal/lexicon"
)

const (
	defaultRows = 6
	defaultCols = lexicon.CandidateLength
)

var (
	// ErrUnknownWord is returned when a guess is not in the dictionary.
	ErrUnknownWord = errors.New("not in dictionary")
	// ErrWrongLength is returned when a guessed word resolves to a
	// pronunciation that is not exactly five phonemes. The candidate filter
	// keeps such words out of the answer pool, but the full dictionary still
	// contains them, so a direct guess can reach one.
	ErrWrongLength = errors.New("pronunciation is not five phonemes")
)

// Controller applies round operations against an immutable lexicon. It holds
// no round state itself; callers own the Round values it mutates.
type Controller struct {
	lex *lexicon.Lexicon
}

// NewController wraps a loaded lexicon.
func NewController(lex *lexicon.Lexicon) *Controller {
	return &Controller{lex: lex}
}

// StartRound creates a fresh round. If withAnswer is empty, a random
// candidate word is chosen; a non-empty withAnswer (testing hook) must be a
// dictionary word with a five-phoneme pronunciation.
func (c *Controller) StartRound(withAnswer string) (*Round, error) {
	r := &Round{
		ID:   uuid.NewString(),
		Rows: defaultRows,
		Cols: defaultCols,
	}
	if err := c.deal(r, withAnswer); err != nil {
		return nil, err
	}
	return r, nil
}

// Restart re-deals the round in place. Only honored once the round is over;
// otherwise it has no effect.
func (c *Controller) Restart(r *Round) error {
	if r.Phase != PhaseOver {
		return nil
	}
	return c.deal(r, "")
}

// deal resets a round around a (possibly fixed) answer.
func (c *Controller) deal(r *Round, withAnswer string) error {
	ans := strings.ToUpper(strings.TrimSpace(withAnswer))
	if ans == "" {
		ans = c.randomAnswer()
	}
	ph, ok := c.lex.Phonemes(ans)
	if !ok {
		return ErrUnknownWord
	}
	if len(ph) != r.Cols {
		return ErrWrongLength
	}
	r.Answer = ans
	r.AnswerPhonemes = ph
	r.Guesses = []Guess{}
	r.Input = ""
	r.Won = false
	r.Phase = PhasePlaying
	r.Keyboard = NewStatusMap(c.lex.Alphabet())
	return nil
}

// randomAnswer picks a cryptographically random candidate word.
func (c *Controller) randomAnswer() string {
	candidates := c.lex.Candidates()
	if len(candidates) == 0 {
		return ""
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(candidates))))
	return candidates[nBig.Int64()]
}

// Press appends one letter to the in-progress guess. Ignored outside the
// playing phase and for non-letter keys. No maximum length is enforced here;
// the dictionary lookup rejects anything that is not a real word.
func (c *Controller) Press(r *Round, ch rune) {
	if r.Phase != PhasePlaying {
		return
	}
	if ch >= 'a' && ch <= 'z' {
		ch -= 'a' - 'A'
	}
	if ch < 'A' || ch > 'Z' {
		return
	}
	r.Input += string(ch)
}

// Backspace removes the last typed letter. Ignored outside the playing phase.
func (c *Controller) Backspace(r *Round) {
	if r.Phase != PhasePlaying || r.Input == "" {
		return
	}
	r.Input = r.Input[:len(r.Input)-1]
}

// SubmitGuess validates and scores the in-progress guess.
//
// Returns (nil, nil) when there is nothing to do: phase is not playing, or
// the input buffer is empty. On ErrUnknownWord/ErrWrongLength the phase is
// left unchanged; the caller reports the error and clears the buffer.
//
// On success the round moves to revealing, the guess record is appended, the
// keyboard map is updated, and the buffer is cleared. The win/loss decision
// is deferred to FinalizeRow so the caller controls reveal timing.
func (c *Controller) SubmitGuess(r *Round) (*Guess, error) {
	if r.Phase != PhasePlaying {
		return nil, nil
	}
	word := strings.ToUpper(strings.TrimSpace(r.Input))
	if word == "" {
		return nil, nil
	}
	ph, ok := c.lex.Phonemes(word)
	if !ok {
		return nil, ErrUnknownWord
	}
	if len(ph) != r.Cols {
		return nil, ErrWrongLength
	}

	marks := Score(ph, r.AnswerPhonemes)
	g := Guess{Word: word, Phonemes: ph, Marks: marks}

	r.Phase = PhaseRevealing
	r.Guesses = append(r.Guesses, g)
	r.Keyboard.Apply(ph, marks)
	r.Input = ""
	return &g, nil
}

// FinalizeRow applies the win/loss decision for the most recent guess once
// the caller's reveal delay has elapsed. No-op unless the round is revealing.
func (c *Controller) FinalizeRow(r *Round) Phase {
	if r.Phase != PhaseRevealing || len(r.Guesses) == 0 {
		return r.Phase
	}
	last := r.Guesses[len(r.Guesses)-1]
	switch {
	case allCorrect(last.Marks):
		r.Phase = PhaseOver
		r.Won = true
	case len(r.Guesses) >= r.Rows:
		r.Phase = PhaseOver
	default:
		r.Phase = PhasePlaying
	}
	return r.Phase
}
