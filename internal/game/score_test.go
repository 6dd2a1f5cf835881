package game

import (
	"reflect"
	"testing"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		guess  []string
		answer []string
		want   []Mark
	}{
		{
			name:   "all correct",
			guess:  []string{"S", "AE", "L", "AH", "D"},
			answer: []string{"S", "AE", "L", "AH", "D"},
			want:   []Mark{MarkCorrect, MarkCorrect, MarkCorrect, MarkCorrect, MarkCorrect},
		},
		{
			name:   "all absent",
			guess:  []string{"B", "R", "EY", "N", "Z"},
			answer: []string{"S", "AE", "L", "AH", "D"},
			want:   []Mark{MarkAbsent, MarkAbsent, MarkAbsent, MarkAbsent, MarkAbsent},
		},
		{
			name:   "presents in wrong positions",
			guess:  []string{"D", "AE", "S", "L", "AH"},
			answer: []string{"S", "AE", "L", "AH", "D"},
			want:   []Mark{MarkPresent, MarkCorrect, MarkPresent, MarkPresent, MarkPresent},
		},
		{
			// Exact matches consume answer slots before any present can:
			// the second T in the guess has no unconsumed T left.
			name:   "duplicate guess phoneme starved by exact matches",
			guess:  []string{"T", "T", "S", "K", "D"},
			answer: []string{"T", "S", "S", "K", "K"},
			want:   []Mark{MarkCorrect, MarkAbsent, MarkCorrect, MarkCorrect, MarkAbsent},
		},
		{
			// A symbol repeated in the guess earns at most as many marks as
			// it occurs in the answer.
			name:   "duplicate guess phoneme single answer occurrence",
			guess:  []string{"S", "S", "T", "K", "D"},
			answer: []string{"T", "S", "K", "L", "M"},
			want:   []Mark{MarkAbsent, MarkCorrect, MarkPresent, MarkPresent, MarkAbsent},
		},
		{
			// Present consumption is left-to-right over the guess.
			name:   "two presents consume two answer slots",
			guess:  []string{"AH", "AH", "B", "K", "D"},
			answer: []string{"K", "AH", "AH", "T", "S"},
			want:   []Mark{MarkPresent, MarkCorrect, MarkAbsent, MarkPresent, MarkAbsent},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.guess, tt.answer)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Score(%v, %v) = %v, want %v", tt.guess, tt.answer, got, tt.want)
			}
			checkScoreInvariants(t, tt.guess, tt.answer, got)
		})
	}
}

// checkScoreInvariants asserts the two structural properties of feedback:
// correct marks appear exactly at matching indices, and correct+present
// marks for a symbol never exceed its occurrences in the answer.
func checkScoreInvariants(t *testing.T, guess, answer []string, marks []Mark) {
	t.Helper()
	for i := range marks {
		if (marks[i] == MarkCorrect) != (guess[i] == answer[i]) {
			t.Errorf("position %d: mark %q inconsistent with guess %q vs answer %q",
				i, marks[i], guess[i], answer[i])
		}
	}
	occurrences := make(map[string]int)
	for _, p := range answer {
		occurrences[p]++
	}
	credited := make(map[string]int)
	for i, m := range marks {
		if m == MarkCorrect || m == MarkPresent {
			credited[guess[i]]++
		}
	}
	for p, n := range credited {
		if n > occurrences[p] {
			t.Errorf("symbol %q credited %d times but occurs %d times in answer", p, n, occurrences[p])
		}
	}
}

func TestScoreLengthMismatch(t *testing.T) {
	got := Score([]string{"S", "T"}, []string{"S", "T", "AA", "R", "T"})
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	for i, m := range got {
		if m == MarkCorrect {
			t.Errorf("position %d marked correct on mismatched lengths", i)
		}
	}
}

func TestAllCorrect(t *testing.T) {
	if !allCorrect([]Mark{MarkCorrect, MarkCorrect}) {
		t.Error("allCorrect = false for all-correct marks")
	}
	if allCorrect([]Mark{MarkCorrect, MarkPresent}) {
		t.Error("allCorrect = true with a present mark")
	}
}
