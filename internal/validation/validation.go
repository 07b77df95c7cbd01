// Package validation checks user-supplied paths and sniffs the content type
// of GEDCOM inputs before they reach the parser.
package validation

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"
)

// Limits applied to user-supplied paths.
const (
	// MaxFilenameLength is the maximum allowed filename length.
	MaxFilenameLength = 255
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
	// SniffLength is the number of leading bytes inspected by Sniff.
	SniffLength = 512
)

// Common validation errors.
var (
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrPathTooLong      = errors.New("path too long")
	ErrFilenameTooLong  = errors.New("filename too long")
	ErrInvalidFilename  = errors.New("invalid filename")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrTypeMismatch     = errors.New("file type mismatch")
	ErrBinaryContent    = errors.New("binary content")
)

// ValidatePath checks a path for length limits and characters no GEDCOM
// tool should accept: NUL and other control characters.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}
	return nil
}

// ValidateOutputPath checks a path that is about to be created. In addition
// to ValidatePath it requires a usable final element.
func ValidateOutputPath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return fmt.Errorf("%w: %s names a directory", ErrInvalidFilename, path)
	}
	name := filepath.Base(path)
	if name == "." || name == ".." {
		return fmt.Errorf("%w: reserved name", ErrInvalidFilename)
	}
	if len(name) > MaxFilenameLength {
		return ErrFilenameTooLong
	}
	return nil
}

// FileType is the content type detected for an input.
type FileType string

const (
	FileTypeUnknown FileType = "unknown"
	FileTypeGEDCOM  FileType = "gedcom"
	FileTypeXZ      FileType = "xz"
	FileTypeGzip    FileType = "gzip"
	FileTypeZip     FileType = "zip"
	FileTypeSQLite  FileType = "sqlite"
)

var magicBytes = []struct {
	fileType FileType
	magic    []byte
}{
	{FileTypeXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{FileTypeGzip, []byte{0x1f, 0x8b}},
	{FileTypeZip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{FileTypeSQLite, []byte("SQLite format 3\x00")},
}

// DetectFileType classifies head, the leading bytes of a file, using its
// magic bytes and the extension of filename. Content wins over extension,
// except that a ".xz" name with non-xz content is a mismatch. Input without
// magic bytes is GEDCOM when it looks like text.
func DetectFileType(head []byte, filename string) (FileType, error) {
	if t := detectFileTypeFromMagic(head); t != FileTypeUnknown {
		return t, nil
	}
	if detectFileTypeFromExtension(filename) == FileTypeXZ {
		return FileTypeUnknown, fmt.Errorf("%w: extension suggests %s but content is not", ErrTypeMismatch, FileTypeXZ)
	}
	if len(head) == 0 || isLikelyText(head) {
		return FileTypeGEDCOM, nil
	}
	return FileTypeUnknown, ErrBinaryContent
}

// Sniff peeks at the first SniffLength bytes of r without consuming them
// and classifies them with DetectFileType.
func Sniff(r *bufio.Reader, filename string) (FileType, error) {
	head, err := r.Peek(SniffLength)
	if err != nil && err != io.EOF && !errors.Is(err, bufio.ErrBufferFull) {
		return FileTypeUnknown, err
	}
	return DetectFileType(head, filename)
}

func detectFileTypeFromMagic(buf []byte) FileType {
	for _, sig := range magicBytes {
		if bytes.HasPrefix(buf, sig.magic) {
			return sig.fileType
		}
	}
	return FileTypeUnknown
}

func detectFileTypeFromExtension(filename string) FileType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xz":
		return FileTypeXZ
	case ".gz":
		return FileTypeGzip
	case ".zip":
		return FileTypeZip
	case ".sqlite", ".db", ".sqlite3":
		return FileTypeSQLite
	case ".ged", ".gedcom", ".txt":
		return FileTypeGEDCOM
	default:
		return FileTypeUnknown
	}
}

// isLikelyText reports whether buf reads as text: no NUL bytes and more
// than 95% of the ASCII range printable. Bytes of multi-byte UTF-8
// sequences count as neither.
func isLikelyText(buf []byte) bool {
	if bytes.IndexByte(buf, 0) != -1 {
		return false
	}
	printable := 0
	control := 0
	for _, b := range buf {
		switch {
		case b >= 0x20 && b <= 0x7e, b == '\t', b == '\n', b == '\r':
			printable++
		case b < 0x20:
			control++
		}
	}
	return printable > 0 && float64(printable)/float64(printable+control) > 0.95
}
