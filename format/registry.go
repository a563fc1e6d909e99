package format

import (
	"fmt"
	"strings"
)

// Descriptor holds the static metadata for one serialization format.
// Descriptors are immutable once registered.
type Descriptor struct {
	// ID is the format identifier.
	ID Format
	// Extensions lists file extensions (with leading dot, lower case).
	Extensions []string
	// MimeTypes lists media types; the first entry is the canonical type
	// used for Accept header weighting.
	MimeTypes []string
	// SupportsQuads reports whether the format can express named graphs.
	SupportsQuads bool
}

// Canonical returns the preferred media type for the format.
func (d Descriptor) Canonical() string {
	if len(d.MimeTypes) == 0 {
		return ""
	}
	return d.MimeTypes[0]
}

// IsZero reports whether the descriptor is the zero value.
func (d Descriptor) IsZero() bool { return d.ID == "" }

// Registry is the read-only table of supported formats. It is safe for
// unsynchronized concurrent reads; the table is fixed at construction.
type Registry struct {
	descriptors []Descriptor
	byID        map[Format]int
	byExt       map[string]int
	byMime      map[string]int
	accept      string
}

// descriptorTable is the registration order. The first two entries are the
// highest-preference defaults for content negotiation.
var descriptorTable = []Descriptor{
	{ID: FormatRDFXML, Extensions: []string{".rdf", ".xml"}, MimeTypes: []string{"application/rdf+xml", "application/xml", "text/xml"}},
	{ID: FormatTurtle, Extensions: []string{".ttl"}, MimeTypes: []string{"text/turtle", "application/turtle", "application/x-turtle"}},
	{ID: FormatNTriples, Extensions: []string{".nt"}, MimeTypes: []string{"application/n-triples", "text/plain"}},
	{ID: FormatJSONLD, Extensions: []string{".jsonld"}, MimeTypes: []string{"application/ld+json", "application/json"}},
	{ID: FormatTriG, Extensions: []string{".trig"}, MimeTypes: []string{"application/trig", "text/trig"}, SupportsQuads: true},
	{ID: FormatNQuads, Extensions: []string{".nq"}, MimeTypes: []string{"application/n-quads", "text/n-quads"}, SupportsQuads: true},
	{ID: FormatTriX, Extensions: []string{".trix"}, MimeTypes: []string{"application/trix+xml"}},
	{ID: FormatRDFThrift, Extensions: []string{".trdf"}, MimeTypes: []string{"application/rdf+thrift"}},
	{ID: FormatOWLXML, Extensions: []string{".owl"}, MimeTypes: []string{"application/owl+xml"}},
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry. It is constructed once and
// never mutated.
func Default() *Registry { return defaultRegistry }

// NewRegistry builds a registry from the built-in descriptor table.
// It panics if the table violates the uniqueness invariants; the table is
// package-private, so this is unreachable from user input.
func NewRegistry() *Registry {
	r := &Registry{
		byID:   make(map[Format]int, len(descriptorTable)),
		byExt:  make(map[string]int),
		byMime: make(map[string]int),
	}
	for i, d := range descriptorTable {
		if _, dup := r.byID[d.ID]; dup {
			panic(fmt.Sprintf("format: duplicate descriptor id %q", d.ID))
		}
		r.byID[d.ID] = i
		for _, ext := range d.Extensions {
			key := strings.ToLower(ext)
			if _, dup := r.byExt[key]; dup {
				panic(fmt.Sprintf("format: extension %q registered twice", ext))
			}
			r.byExt[key] = i
		}
		for _, mime := range d.MimeTypes {
			key := strings.ToLower(mime)
			if prev, dup := r.byMime[key]; dup {
				// Only canonical types must be unique; a secondary alias
				// keeps its first registration.
				if key == strings.ToLower(d.Canonical()) && key == strings.ToLower(descriptorTable[prev].Canonical()) {
					panic(fmt.Sprintf("format: canonical media type %q registered twice", mime))
				}
				continue
			}
			r.byMime[key] = i
		}
	}
	r.descriptors = append([]Descriptor(nil), descriptorTable...)
	r.accept = buildAcceptHeader(r.descriptors)
	return r
}

// Lookup returns the descriptor for a format identifier.
func (r *Registry) Lookup(id Format) (Descriptor, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Descriptor{}, false
	}
	return r.descriptors[i], true
}

// LookupByExtension matches a file extension case-insensitively.
// The extension may be given with or without the leading dot.
func (r *Registry) LookupByExtension(ext string) (Descriptor, bool) {
	key := strings.ToLower(strings.TrimSpace(ext))
	if key == "" || key == "." {
		return Descriptor{}, false
	}
	if !strings.HasPrefix(key, ".") {
		key = "." + key
	}
	i, ok := r.byExt[key]
	if !ok {
		return Descriptor{}, false
	}
	return r.descriptors[i], true
}

// LookupByMimeType matches a media type case-insensitively, ignoring any
// parameters after ';' (e.g. "text/turtle; charset=utf-8").
func (r *Registry) LookupByMimeType(mime string) (Descriptor, bool) {
	key := strings.ToLower(strings.TrimSpace(strings.SplitN(mime, ";", 2)[0]))
	if key == "" {
		return Descriptor{}, false
	}
	i, ok := r.byMime[key]
	if !ok {
		return Descriptor{}, false
	}
	return r.descriptors[i], true
}

// Descriptors returns a snapshot of the registered formats in registration
// order.
func (r *Registry) Descriptors() []Descriptor {
	return append([]Descriptor(nil), r.descriptors...)
}

// AcceptHeaderValue returns the HTTP Accept header for content negotiation.
// The value is order-stable across calls: one entry per registered format,
// the first two at implicit q=1.0, the rest with strictly decreasing weights
// down to a 0.1 floor, plus a trailing wildcard.
func (r *Registry) AcceptHeaderValue() string { return r.accept }

func buildAcceptHeader(descriptors []Descriptor) string {
	var b strings.Builder
	q := 10 // tenths; decremented per entry after the first two
	for i, d := range descriptors {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(d.Canonical())
		if i < 2 {
			continue
		}
		if q > 1 {
			q--
		}
		fmt.Fprintf(&b, ";q=0.%d", q)
	}
	b.WriteString(", */*;q=0.1")
	return b.String()
}
