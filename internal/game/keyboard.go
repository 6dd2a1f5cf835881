// internal/game/keyboard.go
//
// Aggregate per-phoneme status across all guesses in a round, used to shade
// the on-screen phoneme keys.

package game

// Status is the best-known information about a phoneme symbol so far.
// Statuses only ever upgrade: absent never overwrites a present or correct
// established by an earlier guess, and correct is sticky.
type Status string

const (
	StatusUnknown Status = "unknown"
	StatusAbsent  Status = "absent"
	StatusPresent Status = "present"
	StatusCorrect Status = "correct"
)

// statusRank orders statuses by information value. Merging takes the max, which
// yields exactly the asymmetric precedence the keyboard needs: absent applies
// only over unknown, present upgrades absent but not correct, correct wins.
func statusRank(s Status) int {
	switch s {
	case StatusAbsent:
		return 1
	case StatusPresent:
		return 2
	case StatusCorrect:
		return 3
	default:
		return 0
	}
}

// statusFor maps a per-position mark to the keyboard status it implies.
func statusFor(m Mark) Status {
	switch m {
	case MarkCorrect:
		return StatusCorrect
	case MarkPresent:
		return StatusPresent
	default:
		return StatusAbsent
	}
}

// StatusMap tracks the best-known status per phoneme symbol.
type StatusMap map[string]Status

// NewStatusMap initializes every symbol of the alphabet to unknown.
func NewStatusMap(alphabet []string) StatusMap {
	m := make(StatusMap, len(alphabet))
	for _, p := range alphabet {
		m[p] = StatusUnknown
	}
	return m
}

// Apply merges one guess's marks into the map, in place.
func (m StatusMap) Apply(phonemes []string, marks []Mark) {
	for i, p := range phonemes {
		if i >= len(marks) {
			return
		}
		next := statusFor(marks[i])
		if statusRank(next) > statusRank(m[p]) {
			m[p] = next
		}
	}
}
