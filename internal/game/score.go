// internal/game/score.go
//
// Pure feedback evaluation for one guess against the answer pronunciation.
// Uses the standard two-pass positional-match algorithm, generalized from
// single letters to multi-character phoneme symbols.

package game

// Score compares guess phonemes against answer phonemes and returns one Mark
// per position.
//
// Pass 1:
//   - Mark exact positional matches as correct.
//   - Count the remaining (non-matched) answer phonemes by symbol.
//
// Pass 2:
//   - For each non-correct guess phoneme: if remaining count for that symbol
//     is positive, mark present and decrement; otherwise mark absent.
//
// Decrementing the count consumes an answer slot, so a repeated guess
// phoneme never earns more correct+present marks than the symbol occurs in
// the answer.
func Score(guess, answer []string) []Mark {
	n := len(answer)
	res := make([]Mark, n)
	if len(guess) != n {
		return res
	}

	// Symbol frequency for the non-correct answer positions.
	counts := make(map[string]int, n)

	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			res[i] = MarkCorrect
		} else {
			counts[answer[i]]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkCorrect {
			continue
		}
		if counts[guess[i]] > 0 {
			res[i] = MarkPresent
			counts[guess[i]]--
		} else {
			res[i] = MarkAbsent
		}
	}
	return res
}

// allCorrect reports whether every mark is MarkCorrect.
func allCorrect(m []Mark) bool {
	for _, x := range m {
		if x != MarkCorrect {
			return false
		}
	}
	return true
}
