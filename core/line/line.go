// Package line implements the grammar of one physical GEDCOM line:
//
//	LEVEL (SPACE POINTER)? SPACE TAG (SPACE VALUE)?
//
// LEVEL is one or more digits, POINTER is "@" + alphanumerics or hyphens +
// "@", TAG is uppercase letters, digits or underscores, and VALUE is the
// unescaped remainder of the line.
package line

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/gedcom/core/errors"
)

// Line is one parsed GEDCOM line.
type Line struct {
	// Level is the nesting depth, 0 for root records.
	Level int

	// Pointer is the record's own id (e.g. "@I1@"), empty when absent.
	Pointer string

	// Tag identifies the record kind (e.g. "INDI", "NAME").
	Tag string

	// Value is the text after the tag, empty when absent.
	Value string
}

// lineGrammar is the participle grammar for a single line.
//
//nolint:govet // participle grammar tags are not standard struct tags
type lineGrammar struct {
	Level   string  `parser:"@Level Sep"`
	Pointer string  `parser:"( @Pointer Sep )?"`
	Tag     string  `parser:"@Tag"`
	Value   *string `parser:"@Value?"`
}

// lineLexer tokenizes a line in three states. The value is only recognized
// after the tag, so it may contain anything including "@" and spaces.
var lineLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Level", Pattern: `[0-9]+`, Action: lexer.Push("Head")},
	},
	"Head": {
		{Name: "Sep", Pattern: ` `},
		{Name: "Pointer", Pattern: `@[-A-Za-z0-9]+@`},
		{Name: "Tag", Pattern: `[_A-Z0-9]+`, Action: lexer.Push("Rest")},
	},
	"Rest": {
		// Includes the separating space, stripped after parsing.
		{Name: "Value", Pattern: ` .*`},
	},
})

// lineParser is the participle parser for GEDCOM lines.
var lineParser = participle.MustBuild[lineGrammar](
	participle.Lexer(lineLexer),
)

// Parse parses one line. Surrounding whitespace is stripped first.
// A line that does not match the grammar yields a *errors.MalformedLineError
// with LineNum 0; callers that know the line number fill it in.
func Parse(s string) (Line, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Line{}, errors.NewMalformedLine(s, 0, nil)
	}

	parsed, err := lineParser.ParseString("", s)
	if err != nil {
		return Line{}, errors.NewMalformedLine(s, 0, err)
	}

	level, err := strconv.Atoi(parsed.Level)
	if err != nil {
		return Line{}, errors.NewMalformedLine(s, 0, err)
	}

	l := Line{
		Level:   level,
		Pointer: parsed.Pointer,
		Tag:     parsed.Tag,
	}
	if parsed.Value != nil {
		l.Value = strings.TrimPrefix(*parsed.Value, " ")
	}
	return l, nil
}

// String formats the line in GEDCOM syntax. An empty value is omitted.
func (l Line) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(l.Level))
	if l.Pointer != "" {
		sb.WriteByte(' ')
		sb.WriteString(l.Pointer)
	}
	sb.WriteByte(' ')
	sb.WriteString(l.Tag)
	if l.Value != "" {
		sb.WriteByte(' ')
		sb.WriteString(l.Value)
	}
	return sb.String()
}

// IsPointer reports whether s has the shape of a GEDCOM pointer.
func IsPointer(s string) bool {
	if len(s) < 3 || s[0] != '@' || s[len(s)-1] != '@' {
		return false
	}
	for _, r := range s[1 : len(s)-1] {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return true
}
