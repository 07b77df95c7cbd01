package line

import (
	"errors"
	"testing"

	gerrors "github.com/FocuswithJustin/gedcom/core/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Line
	}{
		{"root", "0 HEAD", Line{Level: 0, Tag: "HEAD"}},
		{"pointer", "0 @I1@ INDI", Line{Level: 0, Pointer: "@I1@", Tag: "INDI"}},
		{"value", "1 NAME Robert /Cox/", Line{Level: 1, Tag: "NAME", Value: "Robert /Cox/"}},
		{"pointer value", "1 HUSB @I1@", Line{Level: 1, Tag: "HUSB", Value: "@I1@"}},
		{"dash in pointer", "0 @I1-123@ INDI", Line{Level: 0, Pointer: "@I1-123@", Tag: "INDI"}},
		{"underscore tag", "1 _FREL Natural", Line{Level: 1, Tag: "_FREL", Value: "Natural"}},
		{"digit tag", "2 _UID1 x", Line{Level: 2, Tag: "_UID1", Value: "x"}},
		{"multi digit level", "12 CONC abc", Line{Level: 12, Tag: "CONC", Value: "abc"}},
		{"value keeps inner spaces", "1 NOTE a  b   c", Line{Level: 1, Tag: "NOTE", Value: "a  b   c"}},
		{"value keeps extra leading space", "1 NOTE  indented", Line{Level: 1, Tag: "NOTE", Value: " indented"}},
		{"value with at signs", "2 CONC mail me @ home@", Line{Level: 2, Tag: "CONC", Value: "mail me @ home@"}},
		{"surrounding whitespace", "  1 SEX M \r", Line{Level: 1, Tag: "SEX", Value: "M"}},
		{"trailing space dropped", "1 NAME ", Line{Level: 1, Tag: "NAME"}},
		{"unicode value", "1 PLAC Zürich", Line{Level: 1, Tag: "PLAC", Value: "Zürich"}},
		{"pointer and value", "0 @N1@ NOTE shared text", Line{Level: 0, Pointer: "@N1@", Tag: "NOTE", Value: "shared text"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	inputs := []string{
		"",
		"foo",
		"HEAD",
		"0",
		"0HEAD",
		"0 head",
		"0 @I1@",
		"0 @I1@INDI",
		"0 @I 1@ INDI",
		"0 NAMEx",
		"-1 HEAD",
		"0  HEAD",
		"99999999999999999999 HEAD",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", input)
			}
			if !errors.Is(err, gerrors.ErrMalformedLine) {
				t.Errorf("Parse(%q) error = %v, want ErrMalformedLine", input, err)
			}
			var mle *gerrors.MalformedLineError
			if !errors.As(err, &mle) {
				t.Fatalf("error is not *MalformedLineError: %T", err)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		line Line
		want string
	}{
		{Line{Level: 0, Tag: "HEAD"}, "0 HEAD"},
		{Line{Level: 0, Pointer: "@F2@", Tag: "FAM"}, "0 @F2@ FAM"},
		{Line{Level: 2, Tag: "VERS", Value: "5.5"}, "2 VERS 5.5"},
		{Line{Level: 1, Pointer: "@X@", Tag: "NOTE", Value: "hi"}, "1 @X@ NOTE hi"},
	}
	for _, tt := range tests {
		if got := tt.line.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	lines := []string{
		"0 HEAD",
		"1 SOUR Reunion",
		"0 @I1@ INDI",
		"1 NAME Bob /Cox/",
		"2 TYPE aka",
		"1 FAMS @F1@",
		"1 NOTE  two  spaces",
	}
	for _, s := range lines {
		l, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		if got := l.String(); got != s {
			t.Errorf("round trip %q -> %q", s, got)
		}
	}
}

func TestIsPointer(t *testing.T) {
	tests := map[string]bool{
		"@I1@":      true,
		"@F-2@":     true,
		"@abc@":     true,
		"@@":        false,
		"I1":        false,
		"@I 1@":     false,
		"@I1":       false,
		"Bob /Cox/": false,
	}
	for in, want := range tests {
		if got := IsPointer(in); got != want {
			t.Errorf("IsPointer(%q) = %v, want %v", in, got, want)
		}
	}
}
