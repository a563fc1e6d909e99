package format

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Source describes one input to resolve. It is constructed per request,
// never shared across concurrent resolutions, and consumed once.
type Source struct {
	// Path is a local file path. Mutually exclusive with URL.
	Path string
	// URL is a remote location. Mutually exclusive with Path.
	URL string
	// Hint is an optional explicit format identifier. When set it wins over
	// every other signal.
	Hint Format
	// ContentType is the media type observed on a remote response, if any.
	// It is populated by the HTTP collaborator after the fetch.
	ContentType string
}

// IsRemote reports whether the source refers to a remote URL.
func (s Source) IsRemote() bool { return s.URL != "" }

// String returns a short description of the source for diagnostics.
func (s Source) String() string {
	var b strings.Builder
	if s.IsRemote() {
		b.WriteString(s.URL)
	} else {
		b.WriteString(s.Path)
	}
	if s.Hint != "" {
		fmt.Fprintf(&b, " (hint: %s)", s.Hint)
	}
	if s.ContentType != "" {
		fmt.Fprintf(&b, " (content-type: %s)", s.ContentType)
	}
	return b.String()
}

// Resolver decides which format a source is in, applying a strict
// precedence: explicit hint, then file extension for local paths, then
// observed content type with extension fallback for remote URLs.
//
// Resolution is a pure function of the source and the registry snapshot:
// no I/O, no hidden state, no content sniffing.
type Resolver struct {
	registry *Registry
}

// NewResolver returns a resolver backed by the given registry.
// A nil registry selects the package default.
func NewResolver(registry *Registry) *Resolver {
	if registry == nil {
		registry = Default()
	}
	return &Resolver{registry: registry}
}

// Registry returns the registry the resolver consults.
func (r *Resolver) Registry() *Registry { return r.registry }

// AcceptHeader returns the Accept header value the HTTP collaborator should
// send when fetching a remote source for this resolver.
func (r *Resolver) AcceptHeader() string { return r.registry.AcceptHeaderValue() }

// Resolve returns the descriptor for a source, or an error carrying the
// failure kind and the original source. A source either resolves to exactly
// one descriptor or fails; there is no partial resolution.
func (r *Resolver) Resolve(src Source) (Descriptor, error) {
	if src.Hint != "" {
		d, ok := r.registry.Lookup(src.Hint)
		if !ok {
			return Descriptor{}, resolveError(src, ErrAmbiguousHint)
		}
		return d, nil
	}

	if !src.IsRemote() {
		if d, ok := r.registry.LookupByExtension(strings.ToLower(filepath.Ext(src.Path))); ok {
			return d, nil
		}
		return Descriptor{}, resolveError(src, ErrUnknownFormat)
	}

	if src.ContentType != "" {
		if d, ok := r.registry.LookupByMimeType(src.ContentType); ok {
			return d, nil
		}
	}
	if d, ok := r.registry.LookupByExtension(urlExtension(src.URL)); ok {
		return d, nil
	}
	return Descriptor{}, resolveError(src, ErrUnknownFormat)
}

// urlExtension extracts the lower-cased extension of the path component of
// a URL, or empty when the path has none.
func urlExtension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return strings.ToLower(path.Ext(rawURL))
	}
	return strings.ToLower(path.Ext(u.Path))
}
