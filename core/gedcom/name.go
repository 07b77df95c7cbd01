package gedcom

import (
	"strings"

	"github.com/FocuswithJustin/gedcom/core/errors"
)

// Name is a personal name split into its given and surname parts.
// HasGiven and HasSurname report whether a part is present in the file at
// all, so "Bob //" (an empty surname) differs from "Bob" (no surname).
type Name struct {
	Given      string
	Surname    string
	HasGiven   bool
	HasSurname bool
}

// String renders the name in GEDCOM NAME syntax, e.g. "Bob /Cox/".
func (n Name) String() string {
	if !n.HasSurname && n.Surname == "" {
		return n.Given
	}
	if n.Given == "" {
		return "/" + n.Surname + "/"
	}
	return n.Given + " /" + n.Surname + "/"
}

// nameOf extracts a Name from a NAME record. An empty value is read from
// the GIVN and SURN children; otherwise the value is split on "/".
func nameOf(rec *Record) (Name, error) {
	if rec.Value == "" {
		var n Name
		if givn := rec.first("GIVN"); givn != nil {
			n.Given, n.HasGiven = givn.Value, true
		}
		if surn := rec.first("SURN"); surn != nil {
			n.Surname, n.HasSurname = surn.Value, true
		}
		return n, nil
	}
	return splitName(rec.Value)
}

// splitName splits "given /surname/ suffix". No slash means a given name
// only; the part after the second slash is discarded.
func splitName(value string) (Name, error) {
	parts := strings.Split(value, "/")
	switch len(parts) {
	case 1:
		return Name{Given: strings.TrimSpace(parts[0]), HasGiven: true}, nil
	case 3:
		return Name{
			Given:      strings.TrimSpace(parts[0]),
			Surname:    strings.TrimSpace(parts[1]),
			HasGiven:   true,
			HasSurname: true,
		}, nil
	}
	return Name{}, &errors.MalformedNameError{Value: value, Slashes: len(parts) - 1}
}

// isAKA reports whether a NAME record is typed as an "also known as" name.
func isAKA(rec *Record) bool {
	t := rec.first("TYPE")
	return t != nil && strings.EqualFold(t.Value, "aka")
}
