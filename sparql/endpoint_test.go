package sparql

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/geoknoesis/rdf-go/rdf"

	"github.com/geoknoesis/rdfany/format"
)

const selectResults = `{
  "head": {"vars": ["name", "age"]},
  "results": {"bindings": [
    {"name": {"type": "literal", "value": "Alice"},
     "age": {"type": "typed-literal", "value": "30", "datatype": "http://www.w3.org/2001/XMLSchema#integer"}},
    {"name": {"type": "uri", "value": "http://example.org/bob"}}
  ]}
}`

func TestEndpointClientSelect(t *testing.T) {
	var gotContentType, gotAccept, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotAccept = r.Header.Get("Accept")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", resultsMediaType)
		w.Write([]byte(selectResults))
	}))
	defer srv.Close()

	c := NewEndpointClient(srv.URL)
	res, err := c.Query(context.Background(), "SELECT ?name ?age WHERE { ?s foaf:name ?name }")
	if err != nil {
		t.Fatalf("Query err = %v", err)
	}
	if gotContentType != queryMediaType || gotAccept != resultsMediaType {
		t.Fatalf("headers = %q / %q", gotContentType, gotAccept)
	}
	if !strings.Contains(gotBody, "PREFIX foaf:") {
		t.Fatalf("default prefixes not prepended: %q", gotBody)
	}
	if res.Kind != KindBindings {
		t.Fatalf("Kind = %v, want bindings", res.Kind)
	}
	if len(res.Vars) != 2 || res.Vars[0] != "name" {
		t.Fatalf("Vars = %v", res.Vars)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2", len(res.Rows))
	}
	age := res.Rows[0]["age"]
	if age.Type != "literal" || age.Datatype != "http://www.w3.org/2001/XMLSchema#integer" {
		t.Fatalf("typed-literal not normalized: %+v", age)
	}
	if res.Rows[1]["name"].Type != "uri" {
		t.Fatalf("second row = %+v", res.Rows[1])
	}
	if _, bound := res.Rows[1]["age"]; bound {
		t.Fatal("unbound variable appeared in row")
	}
}

func TestEndpointClientAsk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", resultsMediaType)
		w.Write([]byte(`{"head": {}, "boolean": true}`))
	}))
	defer srv.Close()

	res, err := NewEndpointClient(srv.URL).Query(context.Background(), "ASK { ?s ?p ?o }")
	if err != nil {
		t.Fatalf("Query err = %v", err)
	}
	if res.Kind != KindBoolean || !res.Boolean {
		t.Fatalf("result = %+v, want boolean true", res)
	}
}

func TestRemoteIgnoresLocalGraph(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", resultsMediaType)
		w.Write([]byte(`{"head": {}, "boolean": false}`))
	}))
	defer srv.Close()

	var eng Engine = Remote{Client: NewEndpointClient(srv.URL)}
	res, err := eng.Query(context.Background(), nil, "ASK { ?s ?p ?o }")
	if err != nil {
		t.Fatalf("Query err = %v", err)
	}
	if res.Kind != KindBoolean || res.Boolean {
		t.Fatalf("result = %+v, want boolean false", res)
	}
}

type stubQuadParser struct {
	gotFormat format.Format
}

func (p *stubQuadParser) Parse(ctx context.Context, r io.Reader, f format.Format) ([]rdf.Quad, error) {
	p.gotFormat = f
	if _, err := io.ReadAll(r); err != nil {
		return nil, err
	}
	return []rdf.Quad{{
		S: rdf.IRI{Value: "http://example.org/s"},
		P: rdf.IRI{Value: "http://example.org/p"},
		O: rdf.IRI{Value: "http://example.org/o"},
	}}, nil
}

func TestEndpointClientConstruct(t *testing.T) {
	var gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/turtle; charset=utf-8")
		w.Write([]byte("<http://example.org/s> <http://example.org/p> <http://example.org/o> ."))
	}))
	defer srv.Close()

	parser := &stubQuadParser{}
	c := NewEndpointClient(srv.URL, WithQuadParser(parser))
	res, err := c.Query(context.Background(), "CONSTRUCT { ?s ?p ?o } WHERE { ?s ?p ?o }")
	if err != nil {
		t.Fatalf("Query err = %v", err)
	}
	if res.Kind != KindGraph || len(res.Quads) != 1 {
		t.Fatalf("result = %+v, want one-quad graph", res)
	}
	if parser.gotFormat != format.FormatTurtle {
		t.Fatalf("parser format = %s, want turtle", parser.gotFormat)
	}
	if !strings.Contains(gotAccept, resultsMediaType) || !strings.Contains(gotAccept, "text/turtle") {
		t.Fatalf("Accept = %q, want results and RDF media types", gotAccept)
	}
}

func TestEndpointClientGraphNeedsParser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/turtle")
		w.Write([]byte("<http://example.org/s> <http://example.org/p> <http://example.org/o> ."))
	}))
	defer srv.Close()

	_, err := NewEndpointClient(srv.URL).Query(context.Background(), "CONSTRUCT { ?s ?p ?o } WHERE { ?s ?p ?o }")
	var qErr *QueryError
	if !errors.As(err, &qErr) {
		t.Fatalf("err = %T (%v), want *QueryError", err, err)
	}
	if !strings.Contains(qErr.Error(), "quad parser") {
		t.Fatalf("error = %v, want quad parser diagnostic", qErr)
	}
}

func TestEndpointClientBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "malformed query", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewEndpointClient(srv.URL).Query(context.Background(), "SELEKT")
	var qErr *QueryError
	if !errors.As(err, &qErr) {
		t.Fatalf("err = %T (%v), want *QueryError", err, err)
	}
	if qErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("StatusCode = %d, want 400", qErr.StatusCode)
	}
	if !strings.Contains(qErr.Error(), "malformed query") {
		t.Fatalf("error does not carry server excerpt: %v", qErr)
	}
}

func TestEndpointClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewEndpointClient(url).Query(context.Background(), "ASK {}")
	var qErr *QueryError
	if !errors.As(err, &qErr) || qErr.StatusCode != 0 {
		t.Fatalf("err = %v, want transport QueryError", err)
	}
}

func TestEnsurePrefixes(t *testing.T) {
	cases := []struct {
		name      string
		query     string
		wantAdded bool
	}{
		{name: "bare query", query: "SELECT * WHERE { ?s ?p ?o }", wantAdded: true},
		{name: "explicit prefix", query: "PREFIX ex: <http://example.org/>\nSELECT * WHERE { ?s ex:p ?o }", wantAdded: false},
		{name: "lower-case prefix", query: "prefix ex: <http://example.org/> ask { ?s ex:p ?o }", wantAdded: false},
		{name: "prefix inside IRI", query: "SELECT * WHERE { ?s <http://example.org/prefix/p> ?o }", wantAdded: true},
		{name: "prefix inside string literal", query: `SELECT * WHERE { ?s ?p "a prefix value" }`, wantAdded: true},
		{name: "prefix inside long literal", query: "SELECT * WHERE { ?s ?p '''a\nPREFIX\nvalue''' }", wantAdded: true},
		{name: "prefix inside comment", query: "# prefix notes\nSELECT * WHERE { ?s ?p ?o }", wantAdded: true},
		{name: "prefix as local name", query: "SELECT * WHERE { ?s foaf:prefix ?o }", wantAdded: true},
		{name: "prefix as variable", query: "SELECT ?prefix WHERE { ?s ?p ?prefix }", wantAdded: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := EnsurePrefixes(c.query)
			added := strings.Contains(got, "PREFIX rdf:")
			if added != c.wantAdded {
				t.Fatalf("EnsurePrefixes(%q) added=%v, want %v", c.query, added, c.wantAdded)
			}
			if !strings.Contains(got, strings.TrimSpace(c.query)) && !strings.HasSuffix(got, c.query) {
				t.Fatalf("original query lost: %q", got)
			}
		})
	}
}
