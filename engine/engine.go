package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/geoknoesis/rdf-go/rdf"

	"github.com/geoknoesis/rdfany/format"
)

// ErrUnsupported indicates a format that resolves in the registry but has
// no codec in the engine. It is distinct from an unknown format: resolution
// succeeded, parsing is what cannot proceed.
var ErrUnsupported = errors.New("format not supported by engine")

// Engine parses and serializes RDF payloads for resolved formats.
// Implementations own the graph representation; this module never does.
type Engine interface {
	// Parse decodes the input into quads. Triple formats yield quads in the
	// default graph.
	Parse(ctx context.Context, r io.Reader, f format.Format) ([]rdf.Quad, error)
	// Serialize encodes quads in the given format.
	Serialize(ctx context.Context, w io.Writer, f format.Format, quads []rdf.Quad) error
	// Supports reports whether the engine has a codec for the format.
	Supports(f format.Format) bool
}

// toolkitFormats maps registry identifiers onto the toolkit's format
// parameter. OWL/XML rides the RDF/XML codec; TriX and RDF/Thrift resolve
// in the registry but have no codec here.
var toolkitFormats = map[format.Format]rdf.Format{
	format.FormatRDFXML:   rdf.FormatRDFXML,
	format.FormatTurtle:   rdf.FormatTurtle,
	format.FormatNTriples: rdf.FormatNTriples,
	format.FormatJSONLD:   rdf.FormatJSONLD,
	format.FormatTriG:     rdf.FormatTriG,
	format.FormatNQuads:   rdf.FormatNQuads,
	format.FormatOWLXML:   rdf.FormatRDFXML,
}

// Option configures a Toolkit.
type Option func(*Toolkit)

// WithDocumentLoader sets the loader for remote JSON-LD contexts.
func WithDocumentLoader(loader rdf.DocumentLoader) Option {
	return func(t *Toolkit) { t.loader = loader }
}

// WithBaseIRI sets the base IRI used to resolve relative IRIs in JSON-LD
// input.
func WithBaseIRI(base string) Option {
	return func(t *Toolkit) { t.baseIRI = base }
}

// Toolkit is the default Engine, backed by the rdf-go toolkit.
type Toolkit struct {
	loader  rdf.DocumentLoader
	baseIRI string
}

// NewToolkit returns an Engine over the rdf-go parsers and encoders.
func NewToolkit(opts ...Option) *Toolkit {
	t := &Toolkit{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Supports reports whether the toolkit has a codec for the format.
func (t *Toolkit) Supports(f format.Format) bool {
	_, ok := toolkitFormats[f]
	return ok
}

// Parse decodes r into quads using the toolkit codec for f.
func (t *Toolkit) Parse(ctx context.Context, r io.Reader, f format.Format) ([]rdf.Quad, error) {
	tf, ok := toolkitFormats[f]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, f)
	}
	if tf == rdf.FormatJSONLD {
		// The JSON-LD path goes through the dedicated API so the document
		// loader and base IRI apply to @context resolution.
		return t.parseJSONLD(ctx, r)
	}
	var quads []rdf.Quad
	err := rdf.Parse(ctx, r, tf, func(s rdf.Statement) error {
		quads = append(quads, s.AsQuad())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quads, nil
}

func (t *Toolkit) parseJSONLD(ctx context.Context, r io.Reader) ([]rdf.Quad, error) {
	opts := rdf.JSONLDOptions{
		BaseIRI:        t.baseIRI,
		DocumentLoader: t.loader,
	}
	var input interface{}
	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return nil, err
	}
	return rdf.NewJSONLDProcessor().ToRDF(ctx, input, opts)
}

// Serialize encodes quads to w using the toolkit codec for f.
func (t *Toolkit) Serialize(ctx context.Context, w io.Writer, f format.Format, quads []rdf.Quad) error {
	tf, ok := toolkitFormats[f]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupported, f)
	}
	wr, err := rdf.NewWriter(w, tf)
	if err != nil {
		return err
	}
	for _, q := range quads {
		if err := ctx.Err(); err != nil {
			wr.Close()
			return err
		}
		if err := wr.Write(q.ToStatement()); err != nil {
			wr.Close()
			return err
		}
	}
	if err := wr.Flush(); err != nil {
		wr.Close()
		return err
	}
	return wr.Close()
}
