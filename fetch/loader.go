package fetch

import (
	"context"
	"net/http"

	"github.com/geoknoesis/rdf-go/rdf"
	"github.com/piprate/json-gold/ld"
)

// DocumentLoader resolves remote JSON-LD documents and contexts through
// json-gold, so @context fetches share the same HTTP transport as the rest
// of the pipeline. It satisfies the toolkit's rdf.DocumentLoader interface.
type DocumentLoader struct {
	loader ld.DocumentLoader
}

// NewDocumentLoader returns a caching JSON-LD document loader backed by hc.
// A nil hc selects a default client with the standard timeout.
func NewDocumentLoader(hc *http.Client) *DocumentLoader {
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}
	return &DocumentLoader{
		loader: ld.NewCachingDocumentLoader(ld.NewDefaultDocumentLoader(hc)),
	}
}

// LoadDocument fetches a JSON-LD document or context by IRI.
func (l *DocumentLoader) LoadDocument(ctx context.Context, iri string) (rdf.RemoteDocument, error) {
	if err := ctx.Err(); err != nil {
		return rdf.RemoteDocument{}, err
	}
	doc, err := l.loader.LoadDocument(iri)
	if err != nil {
		return rdf.RemoteDocument{}, &FetchError{URL: iri, Err: err}
	}
	return rdf.RemoteDocument{
		DocumentURL: doc.DocumentURL,
		Document:    doc.Document,
		ContextURL:  doc.ContextURL,
	}, nil
}
