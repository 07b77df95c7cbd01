package gedcom

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/FocuswithJustin/gedcom/internal/logging"
)

// File is a GEDCOM document: an ordered sequence of root records plus the
// pointer table used to resolve cross-references between them.
//
// A File is not safe for concurrent use.
type File struct {
	roots      []*Record
	pointers   map[string]*Record
	nextID     int
	probeLimit int
	tags       *TagRegistry
	logger     *slog.Logger
}

// Option configures a File.
type Option func(*File)

// WithLogger sets the logger used for parse summaries and soft
// inconsistencies. The default is the global logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *File) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithProbeLimit bounds the number of candidates Allocate tries before
// failing with an IDSpaceExhaustedError.
func WithProbeLimit(n int) Option {
	return func(f *File) {
		if n > 0 {
			f.probeLimit = n
		}
	}
}

// NewFile returns an empty File.
func NewFile(opts ...Option) *File {
	f := &File{
		pointers:   make(map[string]*Record),
		nextID:     1,
		probeLimit: DefaultProbeLimit,
		tags:       builtinTags,
		logger:     logging.GetLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Roots returns the level 0 records in file order. The slice must not be
// modified.
func (f *File) Roots() []*Record {
	return f.roots
}

// Tags returns the tag registry used to choose record variants.
func (f *File) Tags() *TagRegistry {
	return f.tags
}

// Individuals returns every root INDI record.
func (f *File) Individuals() []*Individual {
	var out []*Individual
	for _, r := range f.roots {
		if ind, ok := r.AsIndividual(); ok {
			out = append(out, ind)
		}
	}
	return out
}

// Families returns every root FAM record.
func (f *File) Families() []*Family {
	var out []*Family
	for _, r := range f.roots {
		if fam, ok := r.AsFamily(); ok {
			out = append(out, fam)
		}
	}
	return out
}

// NewRecord creates a detached record whose variant is chosen by the
// file's tag registry.
func (f *File) NewRecord(tag, value string) *Record {
	return newRecord(f.tags.KindOf(tag), tag, value)
}

// NewIndividual creates an INDI record and adds it as a root, allocating a
// pointer for it.
func (f *File) NewIndividual() (*Individual, error) {
	rec := newRecord(KindIndividual, KindIndividual.Tag(), "")
	if err := f.AddRoot(rec); err != nil {
		return nil, err
	}
	return &Individual{rec}, nil
}

// NewFamily creates a FAM record and adds it as a root, allocating a
// pointer for it.
func (f *File) NewFamily() (*Family, error) {
	rec := newRecord(KindFamily, KindFamily.Tag(), "")
	if err := f.AddRoot(rec); err != nil {
		return nil, err
	}
	return &Family{rec}, nil
}

// AddRoot appends rec to the root sequence, ahead of the trailer if the
// file already has one. The record's subtree gets its levels and is
// registered in the pointer table; an individual or family without an id is
// allocated one first. AddRoot panics if rec already has a parent.
func (f *File) AddRoot(rec *Record) error {
	if rec.parent != nil {
		panic("gedcom: AddRoot of a record that has a parent")
	}
	if rec.id == "" {
		if prefix := rec.kind.pointerPrefix(); prefix != "" {
			if _, err := f.Allocate(prefix, rec); err != nil {
				return err
			}
		}
	}
	f.adopt(rec, 0)
	if f.HasTrailer() {
		f.roots = slices.Insert(f.roots, len(f.roots)-1, rec)
	} else {
		f.roots = append(f.roots, rec)
	}
	return nil
}

// adopt attaches a subtree to f at the given level.
func (f *File) adopt(rec *Record, level int) {
	_ = rec.walk(level, func(r *Record, depth int) error {
		r.file = f
		r.level = depth
		if r.id != "" {
			f.Register(r.id, r)
		}
		return nil
	})
}

// EnsureLevels sets every root to level 0 and re-derives the levels of all
// descendants from tree depth.
func (f *File) EnsureLevels() error {
	for _, r := range f.roots {
		r.level = 0
		r.file = f
		if err := r.SetLevelsDownward(); err != nil {
			return err
		}
	}
	return nil
}

// Walk visits every record depth-first in pre-order, roots in file order.
func (f *File) Walk(fn func(rec *Record, depth int) error) error {
	for _, r := range f.roots {
		if err := r.walk(0, fn); err != nil {
			return err
		}
	}
	return nil
}

// String returns a debug rendering of the whole file.
func (f *File) String() string {
	parts := make([]string, len(f.roots))
	for i, r := range f.roots {
		parts[i] = r.String()
	}
	return "File(\n" + strings.Join(parts, ",\n") + ")"
}
