package gedcom

import (
	"slices"
	"strconv"

	"github.com/FocuswithJustin/gedcom/core/errors"
)

// DefaultProbeLimit is the number of candidate ids Allocate tries before
// giving up.
const DefaultProbeLimit = 1_000_000

// Allocate assigns rec a fresh pointer "@<prefix><n>@" and registers it.
//
// Candidates are probed from the file's counter upwards. The counter
// advances once per probe whether or not the candidate was free, so ids
// already taken by parsed records are skipped and never reused; the counter
// is shared by all prefixes.
func (f *File) Allocate(prefix string, rec *Record) (string, error) {
	for probe := 0; probe < f.probeLimit; probe++ {
		candidate := "@" + prefix + strconv.Itoa(f.nextID) + "@"
		f.nextID++
		if _, taken := f.pointers[candidate]; taken {
			continue
		}
		rec.id = candidate
		f.pointers[candidate] = rec
		return candidate, nil
	}
	return "", &errors.IDSpaceExhaustedError{Prefix: prefix, Probes: f.probeLimit}
}

// Register maps pointer to rec. A pointer defined twice keeps the later
// record and logs a warning.
func (f *File) Register(pointer string, rec *Record) {
	if prev, ok := f.pointers[pointer]; ok && prev != rec {
		f.logger.Warn("duplicate pointer definition", "pointer", pointer, "tag", rec.tag)
	}
	f.pointers[pointer] = rec
}

// Lookup returns the record registered under pointer, or an
// UnknownPointerError.
func (f *File) Lookup(pointer string) (*Record, error) {
	rec, ok := f.pointers[pointer]
	if !ok {
		return nil, errors.NewUnknownPointer(pointer)
	}
	return rec, nil
}

// Pointers returns every registered pointer, sorted.
func (f *File) Pointers() []string {
	out := make([]string, 0, len(f.pointers))
	for p := range f.pointers {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}
