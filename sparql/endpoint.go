package sparql

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/geoknoesis/rdf-go/rdf"
	"go.uber.org/zap"

	"github.com/geoknoesis/rdfany/format"
)

const (
	queryMediaType   = "application/sparql-query"
	resultsMediaType = "application/sparql-results+json"
)

// QueryError reports a failed remote query.
type QueryError struct {
	// Endpoint is the service URL.
	Endpoint string
	// StatusCode is the HTTP status, or 0 when the request never completed.
	StatusCode int
	// Err is the underlying error.
	Err error
}

func (e *QueryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("sparql endpoint %s: status %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("sparql endpoint %s: %v", e.Endpoint, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// EndpointOption configures an EndpointClient.
type EndpointOption func(*EndpointClient)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) EndpointOption {
	return func(c *EndpointClient) { c.http = hc }
}

// WithHeaders adds extra request headers sent with every query.
func WithHeaders(headers map[string]string) EndpointOption {
	return func(c *EndpointClient) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithLogger sets the structured logger. Default is a no-op logger.
func WithLogger(log *zap.Logger) EndpointOption {
	return func(c *EndpointClient) { c.log = log }
}

// WithQuadParser sets the parser for RDF response bodies, enabling
// CONSTRUCT and DESCRIBE queries. Without it only SELECT and ASK work.
func WithQuadParser(p QuadParser) EndpointOption {
	return func(c *EndpointClient) { c.parser = p }
}

// QuadParser decodes an RDF payload in a resolved format into quads.
type QuadParser interface {
	Parse(ctx context.Context, r io.Reader, f format.Format) ([]rdf.Quad, error)
}

// EndpointClient executes queries against a remote SPARQL Protocol
// endpoint. It posts the query body directly; SELECT and ASK answers
// arrive as SPARQL 1.1 JSON results, CONSTRUCT and DESCRIBE answers as an
// RDF payload decoded through the configured quad parser.
type EndpointClient struct {
	endpoint string
	http     *http.Client
	headers  map[string]string
	log      *zap.Logger
	parser   QuadParser
}

// NewEndpointClient returns a client for the given service URL.
func NewEndpointClient(endpoint string, opts ...EndpointOption) *EndpointClient {
	c := &EndpointClient{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
		headers:  make(map[string]string),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query executes query against the endpoint. Queries without PREFIX
// declarations get the default preamble prepended first.
func (c *EndpointClient) Query(ctx context.Context, query string) (*Result, error) {
	query = EnsurePrefixes(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(query))
	if err != nil {
		return nil, &QueryError{Endpoint: c.endpoint, Err: err}
	}
	req.Header.Set("Content-Type", queryMediaType)
	req.Header.Set("Accept", c.accept())
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	c.log.Debug("executing query", zap.String("endpoint", c.endpoint), zap.Int("query_bytes", len(query)))
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &QueryError{Endpoint: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &QueryError{
			Endpoint:   c.endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(excerpt))),
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if !isResultsMediaType(contentType) {
		return c.decodeGraph(ctx, resp, contentType)
	}

	var payload jsonResults
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &QueryError{Endpoint: c.endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode results: %w", err)}
	}
	return payload.toResult(), nil
}

// accept lists the results format first and, when a quad parser is
// configured, the registry's RDF media types for CONSTRUCT answers.
func (c *EndpointClient) accept() string {
	if c.parser == nil {
		return resultsMediaType
	}
	return resultsMediaType + ", " + format.Default().AcceptHeaderValue()
}

func isResultsMediaType(contentType string) bool {
	mime := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	// Some stores answer with the generic JSON type.
	return mime == resultsMediaType || mime == "application/json" || mime == ""
}

// decodeGraph parses a CONSTRUCT/DESCRIBE answer into a graph result.
func (c *EndpointClient) decodeGraph(ctx context.Context, resp *http.Response, contentType string) (*Result, error) {
	if c.parser == nil {
		return nil, &QueryError{
			Endpoint:   c.endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("graph response %q needs a quad parser", contentType),
		}
	}
	d, ok := format.Default().LookupByMimeType(contentType)
	if !ok {
		return nil, &QueryError{
			Endpoint:   c.endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unrecognized response content type %q", contentType),
		}
	}
	quads, err := c.parser.Parse(ctx, resp.Body, d.ID)
	if err != nil {
		return nil, &QueryError{Endpoint: c.endpoint, StatusCode: resp.StatusCode, Err: err}
	}
	return &Result{Kind: KindGraph, Quads: quads}, nil
}

// Remote adapts an EndpointClient to the Engine interface. The graph
// argument is ignored: the endpoint evaluates against its own dataset.
type Remote struct {
	Client *EndpointClient
}

var _ Engine = Remote{}

// Query implements Engine by delegating to the wrapped client.
func (r Remote) Query(ctx context.Context, _ []rdf.Quad, query string) (*Result, error) {
	return r.Client.Query(ctx, query)
}

// jsonResults mirrors the SPARQL 1.1 Query Results JSON format.
type jsonResults struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Boolean *bool `json:"boolean"`
	Results *struct {
		Bindings []map[string]jsonTerm `json:"bindings"`
	} `json:"results"`
}

type jsonTerm struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"xml:lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

func (p *jsonResults) toResult() *Result {
	if p.Boolean != nil {
		return &Result{Kind: KindBoolean, Boolean: *p.Boolean}
	}
	res := &Result{Kind: KindBindings, Vars: p.Head.Vars}
	if p.Results == nil {
		return res
	}
	for _, b := range p.Results.Bindings {
		row := make(Row, len(b))
		for name, term := range b {
			// "typed-literal" is the legacy spelling some stores emit.
			typ := term.Type
			if typ == "typed-literal" {
				typ = "literal"
			}
			row[name] = Term{Type: typ, Value: term.Value, Lang: term.Lang, Datatype: term.Datatype}
		}
		res.Rows = append(res.Rows, row)
	}
	return res
}
