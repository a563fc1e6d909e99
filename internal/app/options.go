package app

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/geoknoesis/rdfany/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Inputs
	Inputs []string
	Format string

	// Query
	Query     string
	QueryFile string
	Endpoint  string

	// Output
	Output       string
	OutputFormat string

	// Operations
	Convert      bool
	TargetFormat string
	Stats        bool
	Schema       bool

	// General
	ConfigPath string
	Verbose    bool
	Version    bool
}

type stringSlice []string

func (s *stringSlice) String() string { return strings.Join(*s, ",") }

func (s *stringSlice) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// NewFlagSet returns a configured FlagSet with custom usage output.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: fetch, convert, and query RDF from files and URLs

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returning an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options

	var inputs stringSlice
	fs.Var(&inputs, "input", "input RDF file or URL (repeatable)")
	fs.StringVar(&opt.Format, "format", "", "input format hint (turtle, rdfxml, jsonld, ...)")

	fs.StringVar(&opt.Query, "query", "", "SPARQL query text")
	fs.StringVar(&opt.QueryFile, "query-file", "", "file containing a SPARQL query")
	fs.StringVar(&opt.Endpoint, "endpoint", "", "SPARQL endpoint URL for query execution")

	fs.StringVar(&opt.Output, "output", "", "output file (default: stdout)")
	fs.StringVar(&opt.OutputFormat, "output-format", "", "query result form: json, xml, csv, table")

	fs.BoolVar(&opt.Convert, "convert", false, "convert input RDF to --target-format")
	fs.StringVar(&opt.TargetFormat, "target-format", "turtle", "target format for conversion and schema output")
	fs.BoolVar(&opt.Stats, "stats", false, "print graph statistics as JSON")
	fs.BoolVar(&opt.Schema, "schema", false, "extract schema statements (classes, properties)")

	fs.StringVar(&opt.ConfigPath, "config", "", "YAML config file")
	fs.BoolVar(&opt.Verbose, "verbose", false, "enable debug logging")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	opt.Inputs = inputs

	if err := opt.validate(); err != nil {
		return opt, err
	}
	return opt, nil
}

func (o *Options) validate() error {
	if o.Version {
		return nil
	}
	if o.Query != "" && o.QueryFile != "" {
		return errors.New("--query and --query-file are mutually exclusive")
	}
	wantsQuery := o.Query != "" || o.QueryFile != ""
	ops := 0
	for _, set := range []bool{o.Convert, o.Stats, o.Schema} {
		if set {
			ops++
		}
	}
	if ops > 1 {
		return errors.New("--convert, --stats, and --schema are mutually exclusive")
	}
	if ops == 1 && wantsQuery {
		return errors.New("a query cannot be combined with --convert, --stats, or --schema")
	}
	if !wantsQuery && ops == 0 {
		return errors.New("no operation: provide --query/--query-file, --convert, --stats, or --schema")
	}
	if len(o.Inputs) == 0 && !wantsQuery {
		return errors.New("no input: use --input")
	}
	switch o.OutputFormat {
	case "", "json", "xml", "csv", "table":
	default:
		return fmt.Errorf("unknown --output-format %q", o.OutputFormat)
	}
	return nil
}
