package assets

import (
	"embed"
	"io"
	"strings"
)

//go:embed dictionary.txt frequency.txt
var FS embed.FS

func open(name string) (io.Reader, error) {
	b, err := FS.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return strings.NewReader(string(b)), nil
}

// Dictionary returns a reader over the embedded CMU-format dictionary excerpt.
func Dictionary() (io.Reader, error) {
	return open("dictionary.txt")
}

// Frequency returns a reader over the embedded common-word list.
func Frequency() (io.Reader, error) {
	return open("frequency.txt")
}
