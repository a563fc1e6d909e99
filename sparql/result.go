package sparql

import (
	"context"

	"github.com/geoknoesis/rdf-go/rdf"
)

// Kind identifies the SPARQL result form.
type Kind uint8

const (
	// KindBindings is the SELECT result form: variables and solution rows.
	KindBindings Kind = iota
	// KindBoolean is the ASK result form.
	KindBoolean
	// KindGraph is the CONSTRUCT/DESCRIBE result form.
	KindGraph
)

// Term is one RDF term in a solution binding, as carried by the SPARQL 1.1
// JSON results format.
type Term struct {
	// Type is "uri", "literal", or "bnode".
	Type string
	// Value is the IRI, lexical form, or blank node label.
	Value string
	// Lang is the language tag for language-tagged literals.
	Lang string
	// Datatype is the datatype IRI for typed literals.
	Datatype string
}

// Row maps variable names to bound terms. Unbound variables are absent.
type Row map[string]Term

// Result holds one query outcome in whichever result form the query
// produced.
type Result struct {
	// Kind selects which of the remaining fields are meaningful.
	Kind Kind
	// Vars lists the projected variables, in projection order.
	Vars []string
	// Rows holds the solution sequence for KindBindings.
	Rows []Row
	// Boolean holds the answer for KindBoolean.
	Boolean bool
	// Quads holds the constructed graph for KindGraph.
	Quads []rdf.Quad
}

// Engine evaluates a SPARQL query over a graph. Evaluation itself is
// delegated: this module ships no local evaluator, only the remote
// endpoint client, which queries the endpoint's own dataset and ignores
// the local graph.
type Engine interface {
	Query(ctx context.Context, graph []rdf.Quad, query string) (*Result, error)
}
