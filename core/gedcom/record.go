package gedcom

import (
	"strconv"
	"strings"

	"github.com/FocuswithJustin/gedcom/core/errors"
	"github.com/FocuswithJustin/gedcom/core/line"
)

// levelUnset marks a detached record whose level is not yet known.
const levelUnset = -1

// Node is implemented by *Record and by every typed view over a record.
type Node interface {
	Base() *Record
}

// Record is one node of a GEDCOM tree: a tag, an optional value, an optional
// pointer id and ordered child records.
//
// Records are created detached. They join a File either as a root
// (File.AddRoot) or as the child of an attached record (AddChild); at that
// point their levels are assigned and any ids are registered.
type Record struct {
	kind     Kind
	tag      string
	level    int
	id       string
	parent   *Record
	children []*Record
	file     *File

	// Value is the text after the tag, empty when absent.
	Value string
}

// NewRecord creates a detached record. The variant is chosen from tag by
// the built-in tag registry.
func NewRecord(tag, value string) *Record {
	return newRecord(builtinTags.KindOf(tag), tag, value)
}

// NewRecordOfKind creates a detached record of the given variant. An empty
// tag selects the variant's fixed tag. A tag that conflicts with the
// variant's fixed tag yields a TagMismatchError.
func NewRecordOfKind(kind Kind, tag string) (*Record, error) {
	fixed := kind.Tag()
	switch {
	case tag == "" && fixed == "":
		return nil, &errors.TagMismatchError{Tag: tag, Want: "a non-empty tag"}
	case tag == "":
		tag = fixed
	case fixed != "" && tag != fixed:
		return nil, &errors.TagMismatchError{Tag: tag, Want: fixed}
	}
	return newRecord(kind, tag, ""), nil
}

func newRecord(kind Kind, tag, value string) *Record {
	return &Record{
		kind:  kind,
		tag:   tag,
		level: levelUnset,
		Value: value,
	}
}

// Base returns r itself.
func (r *Record) Base() *Record {
	return r
}

// Kind returns the variant fixed at construction.
func (r *Record) Kind() Kind {
	return r.kind
}

// Tag returns the record's tag.
func (r *Record) Tag() string {
	return r.tag
}

// ID returns the record's pointer (e.g. "@I1@"), or "" if it has none.
func (r *Record) ID() string {
	return r.id
}

// Level returns the record's level. ok is false while the record is
// detached and has no level yet.
func (r *Record) Level() (level int, ok bool) {
	return r.level, r.level >= 0
}

// Parent returns the owning record, or nil for roots and detached records.
func (r *Record) Parent() *Record {
	return r.parent
}

// File returns the file the record is attached to, or nil.
func (r *Record) File() *File {
	return r.file
}

// Subrecords returns the child records in file order. The slice must not be
// modified.
func (r *Record) Subrecords() []*Record {
	return r.children
}

// List returns every child with the given tag, in file order.
func (r *Record) List(tag string) []*Record {
	var out []*Record
	for _, c := range r.children {
		if c.tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// Has reports whether at least one child has the given tag.
func (r *Record) Has(tag string) bool {
	return r.first(tag) != nil
}

// Get looks up children by tag. A single match is returned as a
// one-element slice; repeated tags such as NAME return every match in file
// order. No match yields a MissingChildError.
func (r *Record) Get(tag string) ([]*Record, error) {
	matches := r.List(tag)
	if len(matches) == 0 {
		return nil, errors.NewMissingChild(r.tag, tag)
	}
	return matches, nil
}

// First returns the first child with the given tag, or a MissingChildError.
func (r *Record) First(tag string) (*Record, error) {
	if c := r.first(tag); c != nil {
		return c, nil
	}
	return nil, errors.NewMissingChild(r.tag, tag)
}

func (r *Record) first(tag string) *Record {
	for _, c := range r.children {
		if c.tag == tag {
			return c
		}
	}
	return nil
}

// childValue returns the value of the first child with tag, or "".
func (r *Record) childValue(tag string) string {
	if c := r.first(tag); c != nil {
		return c.Value
	}
	return ""
}

// AddChild appends child to r and returns it. If r is attached to a File,
// the child's subtree is attached too: levels are assigned and ids are
// registered. Records are never reparented; AddChild panics if child
// already has a parent or is a root.
func (r *Record) AddChild(child *Record) *Record {
	if child == r || child.parent != nil || (child.file != nil && child.level == 0) {
		panic("gedcom: AddChild of a record that is already attached")
	}
	child.parent = r
	r.children = append(r.children, child)
	if r.file != nil {
		r.file.adopt(child, r.level+1)
	}
	return child
}

// AddChildValue creates a record with tag and value and appends it to r.
func (r *Record) AddChildValue(tag, value string) *Record {
	tags := builtinTags
	if r.file != nil {
		tags = r.file.tags
	}
	return r.AddChild(newRecord(tags.KindOf(tag), tag, value))
}

// SetLevelsDownward assigns level+1 to every descendant, recursively, based
// on r's own level. It fails with an InvalidLevelError if r has no level.
func (r *Record) SetLevelsDownward() error {
	if r.level < 0 {
		return &errors.InvalidLevelError{Tag: r.tag, Level: r.level, Want: -1}
	}
	for _, c := range r.children {
		c.level = r.level + 1
		c.file = r.file
		if err := c.SetLevelsDownward(); err != nil {
			return err
		}
	}
	return nil
}

// walk visits r and its descendants depth-first in pre-order.
func (r *Record) walk(depth int, fn func(rec *Record, depth int) error) error {
	if err := fn(r, depth); err != nil {
		return err
	}
	for _, c := range r.children {
		if err := c.walk(depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Walk visits r and its descendants depth-first in pre-order. depth is 0
// for r itself.
func (r *Record) Walk(fn func(rec *Record, depth int) error) error {
	return r.walk(0, fn)
}

// Line returns the record's own GEDCOM line.
func (r *Record) Line() line.Line {
	return line.Line{
		Level:   r.level,
		Pointer: r.id,
		Tag:     r.tag,
		Value:   r.Value,
	}
}

// resolve dereferences pointer through the owning file.
func (r *Record) resolve(pointer string) (*Record, error) {
	if r.file == nil {
		return nil, errors.NewUnknownPointer(pointer)
	}
	return r.file.Lookup(pointer)
}

// Note returns the full text of the first NOTE child, or "" when there is
// none. A NOTE whose value is a pointer to a NOTE record is followed.
func (r *Record) Note() (string, error) {
	rec := r.first("NOTE")
	if rec == nil {
		return "", nil
	}
	if line.IsPointer(rec.Value) && len(rec.children) == 0 {
		target, err := r.resolve(rec.Value)
		if err != nil {
			return "", err
		}
		if target.kind == KindNote {
			rec = target
		}
	}
	return (&Note{rec}).FullText()
}

// Variant returns the typed view for the record's kind, or r itself for
// generic records.
func (r *Record) Variant() Node {
	switch r.kind {
	case KindIndividual:
		return &Individual{r}
	case KindFamily:
		return &Family{r}
	case KindHusband, KindWife:
		return &Spouse{r}
	case KindChild:
		return &Child{r}
	case KindBirth, KindDeath, KindMarriage:
		return &Event{r}
	case KindNote:
		return &Note{r}
	}
	return r
}

// AsIndividual returns the Individual view if r is an INDI record.
func (r *Record) AsIndividual() (*Individual, bool) {
	if r.kind != KindIndividual {
		return nil, false
	}
	return &Individual{r}, true
}

// AsFamily returns the Family view if r is a FAM record.
func (r *Record) AsFamily() (*Family, bool) {
	if r.kind != KindFamily {
		return nil, false
	}
	return &Family{r}, true
}

// AsSpouse returns the Spouse view if r is a HUSB or WIFE record.
func (r *Record) AsSpouse() (*Spouse, bool) {
	if r.kind != KindHusband && r.kind != KindWife {
		return nil, false
	}
	return &Spouse{r}, true
}

// AsChild returns the Child view if r is a CHIL record.
func (r *Record) AsChild() (*Child, bool) {
	if r.kind != KindChild {
		return nil, false
	}
	return &Child{r}, true
}

// AsEvent returns the Event view if r is a BIRT, DEAT or MARR record.
func (r *Record) AsEvent() (*Event, bool) {
	if !r.kind.IsEvent() {
		return nil, false
	}
	return &Event{r}, true
}

// AsNote returns the Note view if r is a NOTE record.
func (r *Record) AsNote() (*Note, bool) {
	if r.kind != KindNote {
		return nil, false
	}
	return &Note{r}, true
}

// String returns a debug rendering of the record and its subtree, e.g.
// Individual(0, INDI, @I1@, [Record(1, SEX, "M")]).
func (r *Record) String() string {
	var sb strings.Builder
	r.format(&sb)
	return sb.String()
}

func (r *Record) format(sb *strings.Builder) {
	sb.WriteString(r.kind.String())
	sb.WriteByte('(')
	if r.level >= 0 {
		sb.WriteString(strconv.Itoa(r.level))
	} else {
		sb.WriteByte('-')
	}
	sb.WriteString(", ")
	sb.WriteString(r.tag)
	if r.id != "" {
		sb.WriteString(", ")
		sb.WriteString(r.id)
	}
	if r.Value != "" {
		sb.WriteString(", ")
		sb.WriteString(strconv.Quote(r.Value))
	}
	if len(r.children) > 0 {
		sb.WriteString(", [")
		for i, c := range r.children {
			if i > 0 {
				sb.WriteString(", ")
			}
			c.format(sb)
		}
		sb.WriteByte(']')
	}
	sb.WriteByte(')')
}
