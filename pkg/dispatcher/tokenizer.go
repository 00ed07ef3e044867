package dispatcher

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

// tokenizer splits a command stream into whitespace-delimited tokens, the
// way the original interpreter's `std::cin >> token` reads did — a token can
// span across a line boundary from the reader's point of view, but in
// practice the grammar is one command per line. A token beginning with '#'
// is a comment: everything through the next newline is discarded, mirroring
// the original's cin.ignore(..., '\n').
type tokenizer struct {
	r *bufio.Reader
}

func newTokenizer(r io.Reader) *tokenizer {
	return &tokenizer{r: bufio.NewReader(r)}
}

// next returns the next token, or ok=false at end of input.
func (t *tokenizer) next() (string, bool) {
	for {
		ch, _, err := t.r.ReadRune()
		if err != nil {
			return "", false
		}
		if unicode.IsSpace(ch) {
			continue
		}
		if ch == '#' {
			t.skipRestOfLine()
			continue
		}

		var sb strings.Builder
		sb.WriteRune(ch)
		for {
			ch2, _, err := t.r.ReadRune()
			if err != nil {
				break
			}
			if unicode.IsSpace(ch2) {
				break
			}
			sb.WriteRune(ch2)
		}
		return sb.String(), true
	}
}

// skipRestOfLine discards input through (and including) the next newline,
// used both for comments and to discard the remainder of a malformed
// command's line after reporting an error, per spec.md §7.
func (t *tokenizer) skipRestOfLine() {
	for {
		ch, _, err := t.r.ReadRune()
		if err != nil {
			return
		}
		if ch == '\n' {
			return
		}
	}
}
