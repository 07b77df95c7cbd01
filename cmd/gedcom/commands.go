package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/FocuswithJustin/gedcom/core/errors"
	"github.com/FocuswithJustin/gedcom/core/gedcom"
	"github.com/FocuswithJustin/gedcom/core/index"
	"github.com/FocuswithJustin/gedcom/core/query"
	"github.com/FocuswithJustin/gedcom/core/sqlite"
	"github.com/FocuswithJustin/gedcom/internal/validation"
)

// errRoundTrip is returned by check when the output differs from the input.
var errRoundTrip = errors.New("round trip differs from input")

// FmtCmd rewrites a file in canonical form.
type FmtCmd struct {
	Input string `arg:"" help:"GEDCOM file, or - for standard input"`
	Out   string `short:"o" help:"Write to a new file instead of standard output (.xz compresses)" type:"path"`
	UIDs  bool   `name:"uids" help:"Add a _UID to every individual and family that lacks one"`
}

func (c *FmtCmd) Run(out io.Writer) error {
	f, err := parseInput(c.Input)
	if err != nil {
		return err
	}
	if c.UIDs {
		if _, err := f.AssignUIDs(); err != nil {
			return err
		}
	}
	if c.Out != "" {
		return f.Save(c.Out)
	}
	_, err = f.WriteTo(out)
	return err
}

// CheckCmd verifies that a file serializes back to its own text.
type CheckCmd struct {
	Input string `arg:"" help:"GEDCOM file" type:"existingfile"`
}

func (c *CheckCmd) Run(out io.Writer) error {
	original, err := readText(c.Input)
	if err != nil {
		return err
	}
	f, err := gedcom.ParseString(original)
	if err != nil {
		return err
	}
	var buf strings.Builder
	if _, err := f.WriteTo(&buf); err != nil {
		return err
	}

	want := normalize(original)
	if buf.String() == want {
		color.New(color.FgGreen).Fprintf(out, "ok %s\n", c.Input)
		return nil
	}
	writeDiff(out, want, buf.String())
	return errors.Wrap(errRoundTrip, c.Input)
}

// normalize applies the whitespace rules of the parser to raw text: lines
// are trimmed, blank lines dropped and every line ends with "\n".
func normalize(text string) string {
	var sb strings.Builder
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func writeDiff(w io.Writer, want, got string) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(want, got)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)
	for _, d := range diffs {
		for _, l := range strings.SplitAfter(d.Text, "\n") {
			if l == "" {
				continue
			}
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				del.Fprint(w, "-"+l)
			case diffmatchpatch.DiffInsert:
				ins.Fprint(w, "+"+l)
			default:
				fmt.Fprint(w, " "+l)
			}
		}
	}
}

// readText returns the decoded contents of path.
func readText(path string) (string, error) {
	r, err := gedcom.OpenText(path)
	if err != nil {
		return "", err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.NewIO("read", path, err)
	}
	return string(data), nil
}

// PeopleCmd lists individuals.
type PeopleCmd struct {
	Input string `arg:"" help:"GEDCOM file, or - for standard input"`
}

func (c *PeopleCmd) Run(out io.Writer) error {
	f, err := parseInput(c.Input)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(out)
	for _, ind := range f.Individuals() {
		name, err := ind.Name()
		display := name.String()
		if err != nil {
			display = "?"
		}
		sex, _ := ind.Sex()
		var born string
		if birth, err := ind.Birth(); err == nil {
			born, _ = birth.Date()
		}
		fmt.Fprintf(w, "%-10s %-1s %-30s %s\n", ind.ID(), sex, display, born)
	}
	return w.Flush()
}

// QueryCmd evaluates an XPath expression over the record tree.
type QueryCmd struct {
	Input   string `arg:"" help:"GEDCOM file, or - for standard input"`
	Expr    string `arg:"" help:"XPath expression, e.g. //INDI[SEX/@value='F']/NAME"`
	Records bool   `help:"Print the selected records as GEDCOM lines instead of values"`
}

func (c *QueryCmd) Run(out io.Writer) error {
	f, err := parseInput(c.Input)
	if err != nil {
		return err
	}
	doc := query.New(f)

	if c.Records {
		recs, err := doc.Find(c.Expr)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			err := rec.Walk(func(r *gedcom.Record, _ int) error {
				_, err := fmt.Fprintln(out, r.Line().String())
				return err
			})
			if err != nil {
				return err
			}
		}
		return nil
	}

	result, err := doc.Eval(c.Expr)
	if err != nil {
		return err
	}
	switch v := result.(type) {
	case []string:
		for _, s := range v {
			fmt.Fprintln(out, s)
		}
	case float64:
		fmt.Fprintf(out, "%g\n", v)
	default:
		fmt.Fprintln(out, v)
	}
	return nil
}

// IndexCmd loads a file into a SQLite index.
type IndexCmd struct {
	Input string `arg:"" help:"GEDCOM file, or - for standard input"`
	DB    string `name:"db" required:"" help:"Index database path" env:"GEDCOM_DB" type:"path"`
}

func (c *IndexCmd) Run(ctx context.Context, out io.Writer) error {
	if err := validation.ValidatePath(c.DB); err != nil {
		return errors.Wrap(err, "--db")
	}
	f, err := parseInput(c.Input)
	if err != nil {
		return err
	}
	store, err := index.Open(ctx, c.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Load(ctx, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "indexed %d individuals, %d families, %d children into %s\n",
		stats.Individuals, stats.Families, stats.Children, c.DB)
	return nil
}

// SearchCmd looks individuals up by surname in an index.
type SearchCmd struct {
	Surname  string `arg:"" optional:"" help:"Surname to search for (case-insensitive)"`
	DB       string `name:"db" required:"" help:"Index database path" env:"GEDCOM_DB" type:"existingfile"`
	Children string `help:"List the children of this family pointer instead"`
}

func (c *SearchCmd) Run(ctx context.Context, out io.Writer) error {
	store, err := index.Open(ctx, c.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	var people []index.Person
	switch {
	case c.Children == "" && c.Surname == "":
		return errors.New("search needs a surname or --children")
	case c.Children != "":
		people, err = store.ChildrenOf(ctx, c.Children)
	default:
		people, err = store.FindBySurname(ctx, c.Surname)
	}
	if err != nil {
		return err
	}
	for _, p := range people {
		fmt.Fprintf(out, "%-10s %-1s %s\n", p.ID, p.Sex, gedcom.Name{Given: p.Given, Surname: p.Surname})
	}
	return nil
}

// DumpCmd prints the record tree as structured data.
type DumpCmd struct {
	Input  string `arg:"" help:"GEDCOM file, or - for standard input"`
	Format string `short:"f" help:"Output format (yaml, json)" default:"yaml" enum:"yaml,json"`
}

// dumpNode is the serialized form of one record.
type dumpNode struct {
	Tag      string     `json:"tag" yaml:"tag"`
	ID       string     `json:"id,omitempty" yaml:"id,omitempty"`
	Value    string     `json:"value,omitempty" yaml:"value,omitempty"`
	Children []dumpNode `json:"children,omitempty" yaml:"children,omitempty"`
}

func dumpTree(rec *gedcom.Record) dumpNode {
	n := dumpNode{Tag: rec.Tag(), ID: rec.ID(), Value: rec.Value}
	for _, c := range rec.Subrecords() {
		n.Children = append(n.Children, dumpTree(c))
	}
	return n
}

func (c *DumpCmd) Run(out io.Writer) error {
	f, err := parseInput(c.Input)
	if err != nil {
		return err
	}
	nodes := make([]dumpNode, 0, len(f.Roots()))
	for _, r := range f.Roots() {
		nodes = append(nodes, dumpTree(r))
	}

	var data []byte
	switch c.Format {
	case "json":
		data, err = json.MarshalIndent(nodes, "", "  ")
		data = append(data, '\n')
	default:
		data, err = yaml.Marshal(nodes)
	}
	if err != nil {
		return errors.Wrap(err, "dump")
	}
	_, err = out.Write(data)
	return err
}

// HashCmd prints the digest of the canonical text.
type HashCmd struct {
	Input string `arg:"" help:"GEDCOM file, or - for standard input"`
}

func (c *HashCmd) Run(out io.Writer) error {
	f, err := parseInput(c.Input)
	if err != nil {
		return err
	}
	digest, err := f.Digest()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s  %s\n", digest, c.Input)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(out io.Writer) error {
	info := sqlite.GetInfo()
	fmt.Fprintf(out, "%s version %s (GEDCOM %s %s)\n", gedcom.ProductName, gedcom.Version, gedcom.FormatVersion, gedcom.FormatForm)
	fmt.Fprintf(out, "sqlite driver: %s (%s)\n", info.DriverName, info.DriverType)
	return nil
}
