// Package errors provides the error taxonomy for GEDCOM parsing, record
// access and serialization.
//
// Every error kind has a sentinel value and a struct type carrying context.
// The struct types unwrap to their sentinel, so callers can branch with
// errors.Is without inspecting concrete types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per error kind.
var (
	// ErrMalformedLine indicates a line that does not match the GEDCOM line grammar
	ErrMalformedLine = errors.New("malformed line")
	// ErrOrphanRecord indicates a record whose level skips past its would-be parent
	ErrOrphanRecord = errors.New("orphan record")
	// ErrTagMismatch indicates an explicit tag that conflicts with a fixed variant tag
	ErrTagMismatch = errors.New("tag mismatch")
	// ErrIDSpaceExhausted indicates the pointer allocator found no free id
	ErrIDSpaceExhausted = errors.New("id space exhausted")
	// ErrUnknownPointer indicates a pointer that is not registered in the file
	ErrUnknownPointer = errors.New("unknown pointer")
	// ErrMissingChild indicates a required child tag is absent
	ErrMissingChild = errors.New("missing child")
	// ErrAmbiguousParent indicates more than one same-sex parent
	ErrAmbiguousParent = errors.New("ambiguous parent")
	// ErrMalformedName indicates a NAME value with an unsupported slash layout
	ErrMalformedName = errors.New("malformed name")
	// ErrMalformedNote indicates a NOTE child that is neither CONT nor CONC
	ErrMalformedNote = errors.New("malformed note")
	// ErrInvalidSex indicates a sex value other than M or F
	ErrInvalidSex = errors.New("invalid sex")
	// ErrInvalidLevel indicates a record whose level cannot be established
	ErrInvalidLevel = errors.New("invalid level")
	// ErrDestinationExists indicates an output path that already exists
	ErrDestinationExists = errors.New("destination exists")
	// ErrNotFound indicates an input path or resource was not found
	ErrNotFound = errors.New("not found")
)

// MalformedLineError reports a line rejected by the line grammar.
type MalformedLineError struct {
	Line    string // Offending line, after trimming
	LineNum int    // 1-based physical line number, 0 when unknown
	Err     error  // Underlying grammar error, if any
}

func (e *MalformedLineError) Error() string {
	if e.LineNum > 0 {
		return fmt.Sprintf("malformed line %d: %q", e.LineNum, e.Line)
	}
	return fmt.Sprintf("malformed line: %q", e.Line)
}

func (e *MalformedLineError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedLine, e.Err}
	}
	return []error{ErrMalformedLine}
}

// OrphanRecordError reports a record with no parent at level-1.
type OrphanRecordError struct {
	Tag     string
	Level   int
	LineNum int
}

func (e *OrphanRecordError) Error() string {
	return fmt.Sprintf("orphan record %s at level %d (line %d): no parent at level %d",
		e.Tag, e.Level, e.LineNum, e.Level-1)
}

func (e *OrphanRecordError) Unwrap() error {
	return ErrOrphanRecord
}

// TagMismatchError reports a tag that differs from a variant's fixed tag.
type TagMismatchError struct {
	Tag  string // Tag that was supplied
	Want string // Fixed tag of the variant
}

func (e *TagMismatchError) Error() string {
	return fmt.Sprintf("tag %s differs from fixed tag %s", e.Tag, e.Want)
}

func (e *TagMismatchError) Unwrap() error {
	return ErrTagMismatch
}

// IDSpaceExhaustedError reports an allocation that gave up after Probes attempts.
type IDSpaceExhaustedError struct {
	Prefix string
	Probes int
}

func (e *IDSpaceExhaustedError) Error() string {
	return fmt.Sprintf("no free %q pointer after %d probes", e.Prefix, e.Probes)
}

func (e *IDSpaceExhaustedError) Unwrap() error {
	return ErrIDSpaceExhausted
}

// UnknownPointerError reports a pointer absent from the file's pointer table.
type UnknownPointerError struct {
	Pointer string
}

func (e *UnknownPointerError) Error() string {
	return fmt.Sprintf("unknown pointer %s", e.Pointer)
}

func (e *UnknownPointerError) Unwrap() error {
	return ErrUnknownPointer
}

// MissingChildError reports a child tag that was required but not present.
type MissingChildError struct {
	Tag    string // Requested child tag
	Parent string // Tag of the record that was searched
}

func (e *MissingChildError) Error() string {
	if e.Parent != "" {
		return fmt.Sprintf("%s has no %s child", e.Parent, e.Tag)
	}
	return fmt.Sprintf("no %s child", e.Tag)
}

func (e *MissingChildError) Unwrap() error {
	return ErrMissingChild
}

// AmbiguousParentError reports several parents of the same recorded sex.
type AmbiguousParentError struct {
	Individual string // Pointer of the child individual
	Sex        string
	Count      int
}

func (e *AmbiguousParentError) Error() string {
	return fmt.Sprintf("%s has %d parents with sex %s", e.Individual, e.Count, e.Sex)
}

func (e *AmbiguousParentError) Unwrap() error {
	return ErrAmbiguousParent
}

// MalformedNameError reports a NAME value that cannot be split into parts.
type MalformedNameError struct {
	Value   string
	Slashes int
}

func (e *MalformedNameError) Error() string {
	return fmt.Sprintf("malformed name %q: %d slashes", e.Value, e.Slashes)
}

func (e *MalformedNameError) Unwrap() error {
	return ErrMalformedName
}

// MalformedNoteError reports a NOTE child that is not a continuation.
type MalformedNoteError struct {
	Tag string
}

func (e *MalformedNoteError) Error() string {
	return fmt.Sprintf("note text can only continue with CONT or CONC, got %s", e.Tag)
}

func (e *MalformedNoteError) Unwrap() error {
	return ErrMalformedNote
}

// InvalidSexError reports an unsupported sex value.
type InvalidSexError struct {
	Value string
}

func (e *InvalidSexError) Error() string {
	return fmt.Sprintf("invalid sex %q: only M or F are supported", e.Value)
}

func (e *InvalidSexError) Unwrap() error {
	return ErrInvalidSex
}

// InvalidLevelError reports a record whose level is unset or inconsistent.
type InvalidLevelError struct {
	Tag   string
	Level int // -1 when unset
	Want  int // Expected level, -1 when not known
}

func (e *InvalidLevelError) Error() string {
	switch {
	case e.Level < 0:
		return fmt.Sprintf("record %s has no level", e.Tag)
	case e.Want >= 0:
		return fmt.Sprintf("record %s has level %d, want %d", e.Tag, e.Level, e.Want)
	default:
		return fmt.Sprintf("record %s has invalid level %d", e.Tag, e.Level)
	}
}

func (e *InvalidLevelError) Unwrap() error {
	return ErrInvalidLevel
}

// DestinationExistsError reports an output path that is already taken.
type DestinationExistsError struct {
	Path string
}

func (e *DestinationExistsError) Error() string {
	return fmt.Sprintf("destination exists: %s", e.Path)
}

func (e *DestinationExistsError) Unwrap() error {
	return ErrDestinationExists
}

// NotFoundError represents a resource not found error with context
type NotFoundError struct {
	Resource string // Type of resource (e.g., "file", "family")
	ID       string // Identifier of the resource
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper functions for creating common errors

// NewMalformedLine creates a MalformedLineError
func NewMalformedLine(line string, lineNum int, err error) *MalformedLineError {
	return &MalformedLineError{Line: line, LineNum: lineNum, Err: err}
}

// NewMissingChild creates a MissingChildError
func NewMissingChild(parent, tag string) *MissingChildError {
	return &MissingChildError{Parent: parent, Tag: tag}
}

// NewUnknownPointer creates an UnknownPointerError
func NewUnknownPointer(pointer string) *UnknownPointerError {
	return &UnknownPointerError{Pointer: pointer}
}

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// New wraps errors.New for convenience
func New(text string) error {
	return errors.New(text)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
