package gedcom

import (
	"bufio"
	"io"
	"strings"

	"github.com/FocuswithJustin/gedcom/core/errors"
)

// Lines renders the file as GEDCOM lines in tree order. A header and
// trailer are added first if missing, and levels are re-derived from tree
// depth, so the output always nests correctly.
func (f *File) Lines() ([]string, error) {
	f.EnsureHeaderTrailer()
	if err := f.EnsureLevels(); err != nil {
		return nil, err
	}

	var out []string
	err := f.Walk(func(rec *Record, depth int) error {
		if rec.level != depth {
			return &errors.InvalidLevelError{Tag: rec.tag, Level: rec.level, Want: depth}
		}
		out = append(out, rec.Line().String())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Text renders the file as a single string, lines joined by "\n" with no
// trailing newline.
func (f *File) Text() (string, error) {
	lines, err := f.Lines()
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// WriteTo writes the file to w, terminating every line with "\n".
func (f *File) WriteTo(w io.Writer) (int64, error) {
	lines, err := f.Lines()
	if err != nil {
		return 0, err
	}
	bw := bufio.NewWriter(w)
	var n int64
	for _, l := range lines {
		written, err := bw.WriteString(l)
		n += int64(written)
		if err != nil {
			return n, errors.NewIO("write", "", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return n, errors.NewIO("write", "", err)
		}
		n++
	}
	if err := bw.Flush(); err != nil {
		return n, errors.NewIO("flush", "", err)
	}
	return n, nil
}
