// Package app wires the CLI: flag parsing, configuration, source
// resolution, fetching, parsing, and output.
package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/geoknoesis/rdf-go/rdf"
	"go.uber.org/zap"

	"github.com/geoknoesis/rdfany/config"
	"github.com/geoknoesis/rdfany/engine"
	"github.com/geoknoesis/rdfany/fetch"
	"github.com/geoknoesis/rdfany/format"
	"github.com/geoknoesis/rdfany/internal/version"
	"github.com/geoknoesis/rdfany/sparql"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Run executes the CLI and returns the process exit code.
func Run(argv []string, outW, errW io.Writer) int {
	fs := NewFlagSet("rdfany")
	fs.SetOutput(errW)

	opts, err := ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		fmt.Fprintf(errW, "rdfany: %v\n", err)
		return ExitUsage
	}

	if opts.Version {
		fmt.Fprintf(outW, "rdfany %s\n", version.Version)
		return ExitOK
	}

	cfg := config.Default()
	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
		if err != nil {
			fmt.Fprintf(errW, "rdfany: %v\n", err)
			return ExitError
		}
	}

	log := zap.NewNop()
	if opts.Verbose {
		zcfg := zap.NewDevelopmentConfig()
		if built, zerr := zcfg.Build(); zerr == nil {
			log = built
			defer log.Sync()
		}
	}

	if err := run(context.Background(), opts, cfg, log, outW); err != nil {
		fmt.Fprintf(errW, "rdfany: %v\n", err)
		return ExitError
	}
	return ExitOK
}

func run(ctx context.Context, opts Options, cfg config.Config, log *zap.Logger, outW io.Writer) error {
	out, closeOut, err := openOutput(opts.Output, outW)
	if err != nil {
		return err
	}
	defer closeOut()

	if opts.Query != "" || opts.QueryFile != "" {
		return runQuery(ctx, opts, cfg, log, out)
	}

	quads, err := loadInputs(ctx, opts, cfg, log)
	if err != nil {
		return err
	}

	tk := toolkit(cfg)
	switch {
	case opts.Stats:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(engine.GraphStats(quads))
	case opts.Schema:
		target, err := targetFormat(opts.TargetFormat)
		if err != nil {
			return err
		}
		return tk.Serialize(ctx, out, target, engine.Schema(quads))
	case opts.Convert:
		target, err := targetFormat(opts.TargetFormat)
		if err != nil {
			return err
		}
		return tk.Serialize(ctx, out, target, quads)
	default:
		return errors.New("no operation selected")
	}
}

func runQuery(ctx context.Context, opts Options, cfg config.Config, log *zap.Logger, out io.Writer) error {
	query := opts.Query
	if opts.QueryFile != "" {
		data, err := os.ReadFile(opts.QueryFile)
		if err != nil {
			return fmt.Errorf("read query file: %w", err)
		}
		query = string(data)
	}

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = cfg.Endpoint
	}
	if endpoint == "" {
		return errors.New("query execution is delegated to a SPARQL service: set --endpoint or the endpoint config key")
	}

	tk := toolkit(cfg)
	client := sparql.NewEndpointClient(endpoint,
		sparql.WithHTTPClient(&http.Client{Timeout: cfg.Timeout.Std()}),
		sparql.WithHeaders(cfg.Headers),
		sparql.WithLogger(log),
		sparql.WithQuadParser(tk),
	)
	res, err := client.Query(ctx, query)
	if err != nil {
		return err
	}

	if res.Kind == sparql.KindGraph {
		target, err := targetFormat(opts.TargetFormat)
		if err != nil {
			return err
		}
		return tk.Serialize(ctx, out, target, res.Quads)
	}

	form := opts.OutputFormat
	if form == "" {
		form = cfg.DefaultOutput
	}
	return sparql.Encode(out, res, form)
}

// loadInputs resolves, fetches, and parses every input. With more than one
// input, each source's statements land in a named graph keyed by the
// source location.
func loadInputs(ctx context.Context, opts Options, cfg config.Config, log *zap.Logger) ([]rdf.Quad, error) {
	hint := formatHint(opts.Format)
	resolver := format.NewResolver(nil)
	client := fetch.NewClient(
		fetch.WithHTTPClient(&http.Client{Timeout: cfg.Timeout.Std()}),
		fetch.WithHeaders(cfg.Headers),
		fetch.WithLogger(log),
	)
	tk := toolkit(cfg)

	var all []rdf.Quad
	named := len(opts.Inputs) > 1
	for _, input := range opts.Inputs {
		quads, graphName, err := loadInput(ctx, input, hint, resolver, client, tk)
		if err != nil {
			return nil, err
		}
		log.Debug("loaded input", zap.String("source", input), zap.Int("statements", len(quads)))
		if named {
			g := rdf.IRI{Value: graphName}
			for i := range quads {
				if quads[i].G == nil {
					quads[i].G = g
				}
			}
		}
		all = append(all, quads...)
	}
	return all, nil
}

func loadInput(ctx context.Context, input string, hint format.Format, resolver *format.Resolver, client *fetch.Client, tk *engine.Toolkit) ([]rdf.Quad, string, error) {
	if isURL(input) {
		resp, err := client.Fetch(ctx, input)
		if err != nil {
			return nil, "", err
		}
		d, err := resolver.Resolve(resp.Source(input, hint))
		if err != nil {
			return nil, "", err
		}
		quads, err := tk.Parse(ctx, bytes.NewReader(resp.Body), d.ID)
		if err != nil {
			return nil, "", fmt.Errorf("parse %s as %s: %w", input, d.ID, err)
		}
		return quads, input, nil
	}

	d, err := resolver.Resolve(format.Source{Path: input, Hint: hint})
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	quads, err := tk.Parse(ctx, f, d.ID)
	if err != nil {
		return nil, "", fmt.Errorf("parse %s as %s: %w", input, d.ID, err)
	}
	abs, err := filepath.Abs(input)
	if err != nil {
		abs = input
	}
	return quads, "file://" + filepath.ToSlash(abs), nil
}

func toolkit(cfg config.Config) *engine.Toolkit {
	loader := fetch.NewDocumentLoader(&http.Client{Timeout: cfg.Timeout.Std()})
	return engine.NewToolkit(engine.WithDocumentLoader(loader))
}

// formatHint passes unnormalizable hints through verbatim so the resolver
// reports them as ambiguous instead of silently dropping them.
func formatHint(raw string) format.Format {
	if raw == "" {
		return ""
	}
	if f, ok := format.Parse(raw); ok {
		return f
	}
	return format.Format(raw)
}

func targetFormat(raw string) (format.Format, error) {
	f, ok := format.Parse(raw)
	if !ok {
		return "", fmt.Errorf("unknown --target-format %q", raw)
	}
	return f, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func openOutput(path string, fallback io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return fallback, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
