package gedcom

import (
	"bufio"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/gedcom/core/errors"
	"github.com/FocuswithJustin/gedcom/internal/logging"
	"github.com/FocuswithJustin/gedcom/internal/validation"
)

// maxPathLength is the longest string ParseAuto will consider as a path.
const maxPathLength = 1024

// ParseLines builds a File from already-decoded lines. Leading and trailing
// whitespace is stripped from each line and blank lines are ignored. The
// first malformed line aborts the parse.
func ParseLines(lines []string, opts ...Option) (*File, error) {
	start := time.Now()
	f := NewFile(opts...)
	b := newBuilder(f)
	for _, raw := range lines {
		if err := b.feed(raw); err != nil {
			return nil, err
		}
	}
	logging.ParseComplete(f.logger, "lines", b.lines, len(f.roots), len(f.pointers), time.Since(start))
	return f, nil
}

// ParseString builds a File from GEDCOM text with lines separated by "\n".
func ParseString(s string, opts ...Option) (*File, error) {
	return ParseLines(strings.Split(s, "\n"), opts...)
}

// Parse builds a File from decoded text read from r.
func Parse(r io.Reader, opts ...Option) (*File, error) {
	return parseReader(r, "reader", opts...)
}

func parseReader(r io.Reader, source string, opts ...Option) (*File, error) {
	start := time.Now()
	f := NewFile(opts...)
	b := newBuilder(f)
	br := bufio.NewReader(r)
	for {
		raw, err := br.ReadString('\n')
		if raw != "" {
			if ferr := b.feed(raw); ferr != nil {
				return nil, ferr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewIO("read", source, err)
		}
	}
	logging.ParseComplete(f.logger, source, b.lines, len(f.roots), len(f.pointers), time.Since(start))
	return f, nil
}

// ParseFile reads and parses the GEDCOM file at path. Compressed input is
// recognized by content and decompressed on the fly. A missing path yields
// a NotFoundError.
func ParseFile(path string, opts ...Option) (*File, error) {
	r, err := OpenText(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return parseReader(r, path, opts...)
}

// OpenText opens path for reading GEDCOM text. Plain text is returned as
// is and xz content is decompressed; any other content type is rejected
// with ErrUnsupportedInput.
func OpenText(path string) (io.ReadCloser, error) {
	in, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.NewNotFound("file", path)
		}
		return nil, errors.NewIO("open", path, err)
	}

	br := bufio.NewReader(in)
	typ, err := validation.Sniff(br, path)
	if err != nil {
		in.Close()
		return nil, errors.Wrapf(err, "%s", path)
	}
	switch typ {
	case validation.FileTypeGEDCOM:
		return &textReader{Reader: br, Closer: in}, nil
	case validation.FileTypeXZ:
		xzr, err := xz.NewReader(br)
		if err != nil {
			in.Close()
			return nil, errors.NewIO("decompress", path, err)
		}
		return &textReader{Reader: xzr, Closer: in}, nil
	}
	in.Close()
	return nil, errors.Wrapf(ErrUnsupportedInput, "%s is %s", path, typ)
}

// ErrUnsupportedInput is returned by OpenText for content that is neither
// GEDCOM text nor xz-compressed GEDCOM text.
var ErrUnsupportedInput = errors.New("unsupported input")

type textReader struct {
	io.Reader
	io.Closer
}

// ParseAuto treats s as a path when it is at most 1024 characters long and
// names an existing regular file, and as GEDCOM text otherwise.
func ParseAuto(s string, opts ...Option) (*File, error) {
	if utf8.RuneCountInString(s) <= maxPathLength && !strings.Contains(s, "\n") {
		if info, err := os.Stat(s); err == nil && !info.IsDir() {
			return ParseFile(s, opts...)
		}
	}
	return ParseString(s, opts...)
}
