package gedcom

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	gerrors "github.com/FocuswithJustin/gedcom/core/errors"
	"github.com/FocuswithJustin/gedcom/internal/logging"
	"github.com/FocuswithJustin/gedcom/internal/validation"
)

const canonicalHeaderText = "0 HEAD\n1 SOUR\n2 NAME juniper-gedcom\n2 VERS 0.1.0\n1 CHAR UNICODE\n1 GEDC\n2 VERS 5.5\n2 FORM LINEAGE-LINKED"

func discardLogger() *slog.Logger {
	return logging.Discard()
}

func TestCreateEmpty(t *testing.T) {
	got, err := NewFile().Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if want := canonicalHeaderText + "\n0 TRLR"; got != want {
		t.Errorf("Text() =\n%s\nwant\n%s", got, want)
	}
}

func TestCanCreate(t *testing.T) {
	f := NewFile()
	ind, err := f.NewIndividual()
	if err != nil {
		t.Fatalf("NewIndividual() error = %v", err)
	}
	if err := ind.SetSex("M"); err != nil {
		t.Fatalf("SetSex() error = %v", err)
	}
	if level, ok := ind.Level(); !ok || level != 0 {
		t.Errorf("Level() = %d, %v, want 0", level, ok)
	}
	if ind.Tag() != "INDI" {
		t.Errorf("Tag() = %q", ind.Tag())
	}
	if note, err := ind.Note(); err != nil || note != "" {
		t.Errorf("Note() = %q, %v, want empty", note, err)
	}
	if f.Individuals()[0].Base() != ind.Base() {
		t.Error("Individuals()[0] is not the created individual")
	}

	fam, err := f.NewFamily()
	if err != nil {
		t.Fatalf("NewFamily() error = %v", err)
	}
	if fam.Tag() != "FAM" {
		t.Errorf("Tag() = %q", fam.Tag())
	}

	got, err := f.Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	want := canonicalHeaderText + "\n0 @I1@ INDI\n1 SEX M\n0 @F2@ FAM\n0 TRLR"
	if got != want {
		t.Errorf("Text() =\n%s\nwant\n%s", got, want)
	}

	wantRepr := "File(\n" +
		`Record(0, HEAD, [Record(1, SOUR, [Record(2, NAME, "juniper-gedcom"), Record(2, VERS, "0.1.0")]), ` +
		`Record(1, CHAR, "UNICODE"), Record(1, GEDC, [Record(2, VERS, "5.5"), Record(2, FORM, "LINEAGE-LINKED")])]),` + "\n" +
		`Individual(0, INDI, @I1@, [Record(1, SEX, "M")]),` + "\n" +
		"Family(0, FAM, @F2@),\n" +
		"Record(0, TRLR))"
	if got := f.String(); got != wantRepr {
		t.Errorf("String() =\n%s\nwant\n%s", got, wantRepr)
	}
}

func TestAddRootAfterSerialize(t *testing.T) {
	f := NewFile()
	if _, err := f.Text(); err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if _, err := f.NewIndividual(); err != nil {
		t.Fatalf("NewIndividual() error = %v", err)
	}
	got, err := f.Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if want := canonicalHeaderText + "\n0 @I1@ INDI\n0 TRLR"; got != want {
		t.Errorf("Text() =\n%s\nwant\n%s", got, want)
	}
}

func TestAddRootKinds(t *testing.T) {
	tests := []struct {
		name   string
		rec    *Record
		wantID string
	}{
		{"raw individual", NewRecord("INDI", ""), "@I1@"},
		{"raw family", NewRecord("FAM", ""), "@F1@"},
		{"individual view", NewIndividual().Base(), "@I1@"},
		{"family view", NewFamily().Base(), "@F1@"},
		{"other tag", NewRecord("TITL", "x"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFile()
			if err := f.AddRoot(tt.rec); err != nil {
				t.Fatalf("AddRoot() error = %v", err)
			}
			if tt.rec.ID() != tt.wantID {
				t.Errorf("ID() = %q, want %q", tt.rec.ID(), tt.wantID)
			}
			if tt.rec.File() != f {
				t.Error("record not attached to file")
			}
		})
	}
}

func TestIndividualIDs(t *testing.T) {
	f := NewFile()
	a, b := NewIndividual(), NewIndividual()
	if a.ID() != "" || b.ID() != "" {
		t.Fatal("detached individuals have ids")
	}
	for _, ind := range []*Individual{a, b} {
		if err := f.AddRoot(ind.Base()); err != nil {
			t.Fatalf("AddRoot() error = %v", err)
		}
	}
	if a.ID() != "@I1@" || b.ID() != "@I2@" {
		t.Errorf("ids = %q, %q, want @I1@, @I2@", a.ID(), b.ID())
	}
}

func TestIDAssignmentSkipsParsedIDs(t *testing.T) {
	f := mustParse(t, "0 HEAD\n0 @I1@ INDI\n1 NAME\n2 GIVN Bob\n2 SURN Cox\n\n0 TRLR")
	ind := NewIndividual()
	if err := f.AddRoot(ind.Base()); err != nil {
		t.Fatalf("AddRoot() error = %v", err)
	}
	if ind.ID() != "@I2@" {
		t.Errorf("ID() = %q, want @I2@", ind.ID())
	}
	if diff := cmp.Diff([]string{"@I1@", "@I2@"}, f.Pointers()); diff != "" {
		t.Errorf("Pointers() mismatch (-want +got):\n%s", diff)
	}
}

func TestAllocateUnique(t *testing.T) {
	f := mustParse(t, "0 @I2@ INDI\n0 @F4@ FAM\n0 @I5@ INDI")
	seen := make(map[string]bool)
	for _, p := range f.Pointers() {
		seen[p] = true
	}
	for i := 0; i < 20; i++ {
		prefix := "I"
		if i%2 == 1 {
			prefix = "F"
		}
		id, err := f.Allocate(prefix, NewRecord("NOTE", ""))
		if err != nil {
			t.Fatalf("Allocate() error = %v", err)
		}
		if seen[id] {
			t.Fatalf("Allocate() returned duplicate %s", id)
		}
		seen[id] = true
	}
}

func TestAllocateExhausted(t *testing.T) {
	f, err := ParseString("0 @I1@ INDI\n0 @I2@ INDI", WithProbeLimit(2))
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	_, err = f.NewIndividual()
	var ise *gerrors.IDSpaceExhaustedError
	if !gerrors.As(err, &ise) {
		t.Fatalf("NewIndividual() error = %v, want IDSpaceExhaustedError", err)
	}
	if ise.Prefix != "I" || ise.Probes != 2 {
		t.Errorf("error = %+v", ise)
	}
	if len(f.Individuals()) != 2 {
		t.Error("failed allocation added a root")
	}
}

func TestDuplicatePointerWarns(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, logging.LevelDebug, logging.FormatText)
	f, err := ParseString("0 @I1@ INDI\n1 NAME First\n0 @I1@ INDI\n1 NAME Second", WithLogger(logger))
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	rec, err := f.Lookup("@I1@")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if rec.childValue("NAME") != "Second" {
		t.Error("later definition did not win")
	}
	if !strings.Contains(buf.String(), "duplicate pointer") {
		t.Errorf("log output missing warning: %s", buf.String())
	}
}

func TestRoundTrip(t *testing.T) {
	f := mustParse(t, sampleFile)
	var buf bytes.Buffer
	n, err := f.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if n != int64(len(sampleFile)) {
		t.Errorf("WriteTo() = %d bytes, want %d", n, len(sampleFile))
	}
	if diff := cmp.Diff(sampleFile, buf.String()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	text, err := f.Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if text != strings.TrimSuffix(sampleFile, "\n") {
		t.Error("Text() differs from input without trailing newline")
	}
}

func TestHeaderTrailerIdempotent(t *testing.T) {
	f := mustParse(t, "0 @I1@ INDI\n1 NAME Bob")
	f.EnsureHeaderTrailer()
	f.EnsureHeaderTrailer()
	if !f.HasHeader() || !f.HasTrailer() {
		t.Fatal("header or trailer missing")
	}
	if got := len(f.Roots()); got != 3 {
		t.Errorf("got %d roots, want 3", got)
	}

	first, _ := f.Text()
	second, _ := f.Text()
	if first != second {
		t.Error("repeated serialization differs")
	}
	if !strings.HasPrefix(first, canonicalHeaderText+"\n0 @I1@ INDI\n1 NAME Bob\n") {
		t.Errorf("Text() =\n%s", first)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    error
		lineNum int
	}{
		{"garbage", "foo", gerrors.ErrMalformedLine, 1},
		{"after blank", "0 HEAD\n\n1 SOUR x\nnot a line", gerrors.ErrMalformedLine, 4},
		{"lowercase tag", "0 HEAD\n1 sour", gerrors.ErrMalformedLine, 2},
		{"orphan", "0 HEAD\n2 DATE 1980", gerrors.ErrOrphanRecord, 2},
		{"orphan at start", "1 NAME Bob", gerrors.ErrOrphanRecord, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.text)
			if !gerrors.Is(err, tt.want) {
				t.Fatalf("ParseString() error = %v, want %v", err, tt.want)
			}
			var mle *gerrors.MalformedLineError
			var ore *gerrors.OrphanRecordError
			switch {
			case gerrors.As(err, &mle):
				if mle.LineNum != tt.lineNum {
					t.Errorf("LineNum = %d, want %d", mle.LineNum, tt.lineNum)
				}
			case gerrors.As(err, &ore):
				if ore.LineNum != tt.lineNum {
					t.Errorf("LineNum = %d, want %d", ore.LineNum, tt.lineNum)
				}
			}
		})
	}
}

func TestParseWhitespace(t *testing.T) {
	f := mustParse(t, "  0 HEAD  \r\n\n\t1 CHAR ANSI\r\n0 TRLR\r\n")
	text, err := f.Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if text != "0 HEAD\n1 CHAR ANSI\n0 TRLR" {
		t.Errorf("Text() = %q", text)
	}
}

func TestParseReader(t *testing.T) {
	f, err := Parse(strings.NewReader(sampleFile))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := len(f.Individuals()); got != 3 {
		t.Errorf("got %d individuals, want 3", got)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, fmt.Errorf("disk gone")
}

func TestParseReaderError(t *testing.T) {
	_, err := Parse(failingReader{})
	var ioe *gerrors.IOError
	if !gerrors.As(err, &ioe) {
		t.Fatalf("Parse() error = %v, want IOError", err)
	}
}

func TestParseAuto(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.ged")
	if err := os.WriteFile(path, []byte(sampleFile), 0o600); err != nil {
		t.Fatal(err)
	}
	empty := filepath.Join(dir, "empty.ged")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		input string
		roots int
	}{
		{"path", path, 6},
		{"empty file", empty, 0},
		{"text", sampleFile, 6},
		{"single line text", "0 HEAD", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseAuto(tt.input)
			if err != nil {
				t.Fatalf("ParseAuto() error = %v", err)
			}
			if got := len(f.Roots()); got != tt.roots {
				t.Errorf("got %d roots, want %d", got, tt.roots)
			}
		})
	}

	if _, err := ParseAuto(dir); !gerrors.Is(err, gerrors.ErrMalformedLine) {
		t.Errorf("ParseAuto(dir) error = %v, want ErrMalformedLine", err)
	}
}

func TestParseAutoCountsCharacters(t *testing.T) {
	dir := t.TempDir()
	for range 9 {
		dir = filepath.Join(dir, strings.Repeat("ü", 60))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "tree.ged")
	if err := os.WriteFile(path, []byte(sampleFile), 0o600); err != nil {
		t.Fatal(err)
	}
	if len(path) <= maxPathLength {
		t.Fatalf("path is only %d bytes", len(path))
	}

	f, err := ParseAuto(path)
	if err != nil {
		t.Fatalf("ParseAuto() error = %v", err)
	}
	if got := len(f.Roots()); got != 6 {
		t.Errorf("got %d roots, want 6", got)
	}
}

func TestParseFileNotFound(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.ged"))
	if !gerrors.Is(err, gerrors.ErrNotFound) {
		t.Errorf("ParseFile() error = %v, want ErrNotFound", err)
	}
}

func TestSave(t *testing.T) {
	f := mustParse(t, sampleFile)
	path := filepath.Join(t.TempDir(), "out.ged")
	if err := f.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != sampleFile {
		t.Errorf("saved file differs:\n%s", data)
	}

	err = f.Save(path)
	if !gerrors.Is(err, gerrors.ErrDestinationExists) {
		t.Fatalf("second Save() error = %v, want ErrDestinationExists", err)
	}
	after, _ := os.ReadFile(path)
	if !bytes.Equal(data, after) {
		t.Error("failed Save modified the existing file")
	}
}

func TestSaveXZ(t *testing.T) {
	f := mustParse(t, sampleFile)
	path := filepath.Join(t.TempDir(), "out.ged.xz")
	if err := f.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(raw, []byte("0 HEAD")) {
		t.Error("xz output is not compressed")
	}

	back, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	want, _ := f.Text()
	got, _ := back.Text()
	if got != want {
		t.Errorf("xz round trip mismatch:\n%s", cmp.Diff(want, got))
	}
}

func TestSaveRemovesPartialFile(t *testing.T) {
	orig := xzNewWriter
	defer func() { xzNewWriter = orig }()
	xzNewWriter = func(io.Writer) (io.WriteCloser, error) {
		return nil, fmt.Errorf("no encoder")
	}

	path := filepath.Join(t.TempDir(), "out.ged.xz")
	err := mustParse(t, sampleFile).Save(path)
	var ioe *gerrors.IOError
	if !gerrors.As(err, &ioe) {
		t.Fatalf("Save() error = %v, want IOError", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Errorf("partial file left behind: %v", statErr)
	}
}

func TestDigest(t *testing.T) {
	a, err := mustParse(t, sampleFile).Digest()
	if err != nil {
		t.Fatalf("Digest() error = %v", err)
	}
	if len(a) != 64 {
		t.Errorf("Digest() length = %d, want 64", len(a))
	}

	// CRLF input serializes to the same canonical text.
	b, err := mustParse(t, strings.ReplaceAll(sampleFile, "\n", "\r\n")).Digest()
	if err != nil {
		t.Fatalf("Digest() error = %v", err)
	}
	if a != b {
		t.Error("equal trees have different digests")
	}

	f := mustParse(t, sampleFile)
	if err := f.Individuals()[0].SetSex("F"); err != nil {
		t.Fatal(err)
	}
	c, _ := f.Digest()
	if c == a {
		t.Error("modified tree has the same digest")
	}
}

func TestAssignUIDs(t *testing.T) {
	f := mustParse(t, sampleFile)
	n, err := f.AssignUIDs()
	if err != nil {
		t.Fatalf("AssignUIDs() error = %v", err)
	}
	if n != 4 {
		t.Errorf("AssignUIDs() = %d, want 4", n)
	}

	seen := make(map[string]bool)
	for _, ind := range f.Individuals() {
		uid := ind.UID()
		if len(uid) != 32 || strings.ToUpper(uid) != uid || strings.Contains(uid, "-") {
			t.Errorf("UID() = %q", uid)
		}
		if seen[uid] {
			t.Errorf("duplicate uid %s", uid)
		}
		seen[uid] = true
		if level, _ := ind.first(UIDTag).Level(); level != 1 {
			t.Errorf("_UID level = %d, want 1", level)
		}
	}

	n, err = f.AssignUIDs()
	if err != nil || n != 0 {
		t.Errorf("second AssignUIDs() = %d, %v, want 0", n, err)
	}
}

func TestTagRegistry(t *testing.T) {
	want := []string{"BIRT", "CHIL", "DEAT", "FAM", "HUSB", "INDI", "MARR", "NOTE", "WIFE"}
	if diff := cmp.Diff(want, BuiltinTags().Tags()); diff != "" {
		t.Errorf("Tags() mismatch (-want +got):\n%s", diff)
	}
	if NewFile().Tags() != BuiltinTags() {
		t.Error("file does not share the built-in registry")
	}
}

func TestParseFileSniffsContent(t *testing.T) {
	dir := t.TempDir()
	f := mustParse(t, sampleFile)
	want, _ := f.Text()

	compressed := filepath.Join(dir, "tree.xz")
	if err := f.Save(compressed); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	renamed := filepath.Join(dir, "tree.ged")
	if err := os.Rename(compressed, renamed); err != nil {
		t.Fatal(err)
	}
	back, err := ParseFile(renamed)
	if err != nil {
		t.Fatalf("ParseFile(xz content, .ged name) error = %v", err)
	}
	if got, _ := back.Text(); got != want {
		t.Errorf("round trip mismatch:\n%s", cmp.Diff(want, got))
	}

	sqliteFile := filepath.Join(dir, "index.db")
	if err := os.WriteFile(sqliteFile, []byte("SQLite format 3\x00\x10\x00\x01\x01"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseFile(sqliteFile); !gerrors.Is(err, ErrUnsupportedInput) {
		t.Errorf("ParseFile(sqlite) error = %v, want ErrUnsupportedInput", err)
	}

	fakeXZ := filepath.Join(dir, "plain.ged.xz")
	if err := os.WriteFile(fakeXZ, []byte("0 HEAD\n0 TRLR\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseFile(fakeXZ); !gerrors.Is(err, validation.ErrTypeMismatch) {
		t.Errorf("ParseFile(text named .xz) error = %v, want ErrTypeMismatch", err)
	}
}

func TestSaveRejectsInvalidPath(t *testing.T) {
	f := mustParse(t, sampleFile)
	dir := t.TempDir()
	for _, path := range []string{"", dir + string(os.PathSeparator), filepath.Join(dir, "bad\x00.ged")} {
		if err := f.Save(path); err == nil {
			t.Errorf("Save(%q) succeeded, want error", path)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Save left %d entries behind", len(entries))
	}
}
