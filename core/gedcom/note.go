package gedcom

import (
	"log/slog"
	"strings"

	"github.com/FocuswithJustin/gedcom/core/errors"
	"github.com/FocuswithJustin/gedcom/internal/logging"
)

// Note is the view over a NOTE record.
type Note struct {
	*Record
}

// FullText joins the note's value with its continuation children: CONT
// starts a new line, CONC appends directly. Any other child is a
// MalformedNoteError.
func (n *Note) FullText() (string, error) {
	var sb strings.Builder
	sb.WriteString(n.Value)
	for _, c := range n.children {
		switch c.tag {
		case "CONT":
			sb.WriteByte('\n')
			sb.WriteString(c.Value)
		case "CONC":
			sb.WriteString(c.Value)
		default:
			return "", &errors.MalformedNoteError{Tag: c.tag}
		}
	}
	return sb.String(), nil
}

func (r *Record) logger() *slog.Logger {
	if r.file != nil {
		return r.file.logger
	}
	return logging.GetLogger()
}
