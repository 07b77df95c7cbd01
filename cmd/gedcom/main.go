// Command gedcom reads, checks, queries and indexes GEDCOM genealogy files.
package main

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/FocuswithJustin/gedcom/core/gedcom"
	"github.com/FocuswithJustin/gedcom/internal/logging"
)

// Globals holds flags shared by every command.
type Globals struct {
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"warn" enum:"debug,info,warn,error" env:"GEDCOM_LOG_LEVEL"`
	LogFormat string `name:"log-format" help:"Log format (text, json)" default:"text" enum:"text,json" env:"GEDCOM_LOG_FORMAT"`
}

// CLI defines the command-line interface for gedcom.
type CLI struct {
	Globals

	Fmt     FmtCmd     `cmd:"" help:"Parse a file and write it back in canonical form"`
	Check   CheckCmd   `cmd:"" help:"Verify that a file survives a parse/serialize round trip"`
	People  PeopleCmd  `cmd:"" help:"List the individuals in a file"`
	Query   QueryCmd   `cmd:"" help:"Evaluate an XPath expression against a file"`
	Index   IndexCmd   `cmd:"" help:"Load a file into a SQLite index"`
	Search  SearchCmd  `cmd:"" help:"Search a SQLite index by surname"`
	Dump    DumpCmd    `cmd:"" help:"Dump the record tree as YAML or JSON"`
	Hash    HashCmd    `cmd:"" help:"Print the BLAKE3 digest of the canonical text"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// run parses args and executes the selected command, writing results to
// out and diagnostics to errOut.
func run(ctx context.Context, args []string, out, errOut io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("gedcom"),
		kong.Description("GEDCOM genealogy file tools"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Writers(out, errOut),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.BindTo(out, (*io.Writer)(nil)),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	if err := cli.initLogging(errOut); err != nil {
		return err
	}
	return kctx.Run(&cli.Globals)
}

func (g *Globals) initLogging(w io.Writer) error {
	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(g.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLoggerWithWriter(w, level, format)
	return nil
}

// parseInput reads a GEDCOM file, or standard input when path is "-".
func parseInput(path string) (*gedcom.File, error) {
	if path == "-" {
		return gedcom.Parse(stdin)
	}
	return gedcom.ParseFile(path)
}

// Injectable for testing
var stdin io.Reader = os.Stdin

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "gedcom: %v\n", err)
		os.Exit(1)
	}
}
