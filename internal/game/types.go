// internal/game/types.go
//
// Core type definitions for the phoneme-guessing engine.
// Defines:
//   - Mark: per-phoneme result of a guess (correct/present/absent).
//   - Phase: round state machine (loading/playing/revealing/over).
//   - Guess: one submitted guess with its phonemes and marks.
//   - Round: state for a single in-progress or finished round.

package game

// Mark represents the evaluation result for a single phoneme in a guess.
// Possible values:
//   - "correct": phoneme is in the answer at this position.
//   - "present": phoneme exists in the answer but in a different position.
//   - "absent":  phoneme does not exist in the answer (or all of its
//     occurrences are already accounted for).
type Mark string

const (
	MarkCorrect Mark = "correct"
	MarkPresent Mark = "present"
	MarkAbsent  Mark = "absent"
)

// Phase is the round state machine. Input is only accepted while playing;
// revealing locks input until the presentation layer finalizes the row;
// over accepts only a restart.
type Phase string

const (
	PhaseLoading   Phase = "loading"
	PhasePlaying   Phase = "playing"
	PhaseRevealing Phase = "revealing"
	PhaseOver      Phase = "over"
)

// Guess is one accepted guess: the word, its pronunciation, and the
// per-position feedback. Guess records are append-only within a round.
type Guess struct {
	Word     string   `json:"word"`
	Phonemes []string `json:"phonemes"`
	Marks    []Mark   `json:"marks"`
}

// Round holds the state of a single round.
type Round struct {
	ID             string    `json:"id"`             // Unique round identifier (UUID).
	Answer         string    `json:"answer"`         // The target word (uppercase).
	AnswerPhonemes []string  `json:"answerPhonemes"` // Fixed 5-phoneme pronunciation of the answer.
	Rows           int       `json:"rows"`           // Maximum number of guesses allowed (typically 6).
	Cols           int       `json:"cols"`           // Phonemes per answer (typically 5).
	Guesses        []Guess   `json:"guesses"`        // Accepted guesses so far, in order.
	Input          string    `json:"input"`          // In-progress guess text (uppercase letters).
	Phase          Phase     `json:"phase"`          // Current state-machine phase.
	Won            bool      `json:"won"`            // True if the round finished with a win.
	Keyboard       StatusMap `json:"keyboard"`       // Best-known status per phoneme symbol.
}

// CurrentRow is the index of the row currently being typed into.
func (r *Round) CurrentRow() int { return len(r.Guesses) }
