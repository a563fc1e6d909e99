// Package format decides which RDF serialization a source is in.
//
// It holds the static registry of supported formats (identifiers, file
// extensions, media types, quad capability) and a resolver that applies a
// strict precedence when mapping a source to a format: an explicit caller
// hint always wins; local paths resolve by extension; remote URLs resolve
// by the content type observed during negotiation, falling back to any
// extension in the URL path. There is no content sniffing: resolution is
// deterministic and repeatable for a given source and registry.
//
// The registry also builds the Accept header value used for HTTP content
// negotiation, listing every format's canonical media type with stable
// quality weights.
package format
