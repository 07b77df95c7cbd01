package gedcom

import (
	"strings"

	"github.com/FocuswithJustin/gedcom/core/errors"
	"github.com/FocuswithJustin/gedcom/core/line"
)

// builder grows a File's tree from lines fed in file order.
type builder struct {
	file *File

	// path holds the most recent record at each level; path[L-1] is the
	// parent of the next record at level L.
	path []*Record

	// lines counts physical lines fed so far, blank ones included.
	lines int
}

func newBuilder(f *File) *builder {
	return &builder{file: f}
}

// feed parses one raw line and adds it to the tree. Blank lines are
// skipped.
func (b *builder) feed(raw string) error {
	b.lines++
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	l, err := line.Parse(s)
	if err != nil {
		var mle *errors.MalformedLineError
		if errors.As(err, &mle) {
			mle.LineNum = b.lines
		}
		return err
	}
	return b.add(l)
}

// add attaches a record for l under the current record at level l.Level-1.
func (b *builder) add(l line.Line) error {
	var parent *Record
	if l.Level > 0 {
		if l.Level > len(b.path) {
			return &errors.OrphanRecordError{Tag: l.Tag, Level: l.Level, LineNum: b.lines}
		}
		parent = b.path[l.Level-1]
	}

	rec := newRecord(b.file.tags.KindOf(l.Tag), l.Tag, l.Value)
	rec.level = l.Level
	rec.id = l.Pointer
	rec.file = b.file
	if parent == nil {
		b.file.roots = append(b.file.roots, rec)
	} else {
		rec.parent = parent
		parent.children = append(parent.children, rec)
	}
	if rec.id != "" {
		b.file.Register(rec.id, rec)
	}

	// Levels at or above l.Level are stale once a new record appears there.
	b.path = append(b.path[:l.Level], rec)
	return nil
}
