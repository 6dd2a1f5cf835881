// internal/lexicon/lexicon.go
//
// Loads the pronunciation dictionary and common-word list into memory.
//
// Responsibilities:
//   - Parse CMU-format dictionary lines (WORD<2+ spaces>PHONEME PHONEME ...),
//     skipping ";;;" comments and stripping trailing stress digits.
//   - Build the word → phoneme-sequence map (last occurrence wins).
//   - Collect the global phoneme alphabet, sorted after the full load.
//   - Build the candidate list: words with exactly 5 phonemes that also
//     appear in the frequency list, in file order, de-duplicated.
//   - Process the dictionary in fixed-size line batches with an injectable
//     yield point and progress callback, so a host can stay responsive while
//     a large dictionary loads. Batched and single-pass loads produce
//     identical results.

package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

const (
	commentMarker = ";;;"
	wordSeparator = "  " // two-plus spaces between word and phonemes

	// CandidateLength is the phoneme count required of target words.
	CandidateLength = 5

	// DefaultBatchSize is the number of dictionary lines processed between
	// yield points.
	DefaultBatchSize = 2000
)

// ErrNoCandidates is returned when a load completes without producing any
// playable target words. The caller must not start a round.
var ErrNoCandidates = errors.New("lexicon: no candidate words after load")

// Options tunes the chunked load. The zero value means single-shot defaults.
type Options struct {
	BatchSize int                   // lines per batch; DefaultBatchSize if <= 0
	Yield     func()                // called between batches, never after the last
	Progress  func(done, total int) // called after every batch with line counts
}

// Lexicon is the immutable result of a successful load.
type Lexicon struct {
	entries    map[string][]string
	candidates []string
	alphabet   []string
}

// Load reads the frequency list in full, then the dictionary in batches.
// On any read or parse failure the whole load fails; no partial lexicon is
// ever returned.
func Load(dict, freq io.Reader, opts Options) (*Lexicon, error) {
	freqSet, err := readFrequency(freq)
	if err != nil {
		return nil, fmt.Errorf("read frequency list: %w", err)
	}

	lines, err := readLines(dict)
	if err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}

	batch := opts.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}

	lex := &Lexicon{entries: make(map[string][]string)}
	alphabet := make(map[string]struct{})
	inCandidates := make(map[string]struct{})

	total := len(lines)
	for start := 0; start < total; start += batch {
		end := start + batch
		if end > total {
			end = total
		}
		for _, line := range lines[start:end] {
			word, phonemes, ok := parseLine(line)
			if !ok {
				continue
			}
			lex.entries[word] = phonemes
			for _, p := range phonemes {
				alphabet[p] = struct{}{}
			}
			if _, dup := inCandidates[word]; dup {
				continue
			}
			if len(phonemes) == CandidateLength {
				if _, common := freqSet[word]; common {
					lex.candidates = append(lex.candidates, word)
					inCandidates[word] = struct{}{}
				}
			}
		}
		if opts.Progress != nil {
			opts.Progress(end, total)
		}
		if opts.Yield != nil && end < total {
			opts.Yield()
		}
	}

	lex.alphabet = make([]string, 0, len(alphabet))
	for p := range alphabet {
		lex.alphabet = append(lex.alphabet, p)
	}
	sort.Strings(lex.alphabet)

	if len(lex.candidates) == 0 {
		return nil, ErrNoCandidates
	}
	return lex, nil
}

// parseLine splits one dictionary record. Comments, blank lines, and lines
// without the two-space separator are skipped.
func parseLine(line string) (string, []string, bool) {
	if line == "" || strings.HasPrefix(line, commentMarker) {
		return "", nil, false
	}
	parts := strings.SplitN(line, wordSeparator, 2)
	if len(parts) != 2 {
		return "", nil, false
	}
	word := strings.ToUpper(strings.TrimSpace(parts[0]))
	rest := strings.Fields(parts[1])
	if word == "" || len(rest) == 0 {
		return "", nil, false
	}
	phonemes := make([]string, len(rest))
	for i, p := range rest {
		phonemes[i] = stripStress(p)
	}
	return word, phonemes, true
}

// stripStress removes a trailing ARPAbet stress marker (0, 1, 2).
func stripStress(phoneme string) string {
	if len(phoneme) == 0 {
		return phoneme
	}
	last := phoneme[len(phoneme)-1]
	if last == '0' || last == '1' || last == '2' {
		return phoneme[:len(phoneme)-1]
	}
	return phoneme
}

// readFrequency loads the whole word list into a membership set, uppercased
// for case-insensitive comparison with dictionary words.
func readFrequency(r io.Reader) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.ToUpper(strings.TrimSpace(sc.Text()))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return set, sc.Err()
}

// readLines slurps the dictionary so batches can report a progress fraction
// against a known total.
func readLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// Phonemes looks up a word's pronunciation. Lookup is case-insensitive.
func (l *Lexicon) Phonemes(word string) ([]string, bool) {
	ph, ok := l.entries[strings.ToUpper(strings.TrimSpace(word))]
	return ph, ok
}

// Candidates returns the playable target words in file order.
func (l *Lexicon) Candidates() []string { return l.candidates }

// Alphabet returns every phoneme symbol seen in the dictionary, sorted.
func (l *Lexicon) Alphabet() []string { return l.alphabet }

// Stats returns counts of loaded words, candidates, and distinct phonemes.
func (l *Lexicon) Stats() (words, candidates, phonemes int) {
	return len(l.entries), len(l.candidates), len(l.alphabet)
}
