package format

import "strings"

// Format identifies RDF serialization formats.
type Format string

const (
	FormatRDFXML    Format = "rdfxml"
	FormatTurtle    Format = "turtle"
	FormatNTriples  Format = "ntriples"
	FormatJSONLD    Format = "jsonld"
	FormatTriG      Format = "trig"
	FormatNQuads    Format = "nquads"
	FormatTriX      Format = "trix"
	FormatRDFThrift Format = "rdfthrift"
	FormatOWLXML    Format = "owlxml"
)

// Parse normalizes a format string, accepting common aliases.
func Parse(value string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "rdfxml", "rdf_xml", "rdf/xml", "rdf", "xml":
		return FormatRDFXML, true
	case "turtle", "ttl":
		return FormatTurtle, true
	case "ntriples", "n_triples", "n-triples", "nt":
		return FormatNTriples, true
	case "jsonld", "json_ld", "json-ld", "json":
		return FormatJSONLD, true
	case "trig":
		return FormatTriG, true
	case "nquads", "n_quads", "n-quads", "nq":
		return FormatNQuads, true
	case "trix":
		return FormatTriX, true
	case "rdfthrift", "rdf_thrift", "rdf-thrift", "thrift":
		return FormatRDFThrift, true
	case "owlxml", "owl_xml", "owl/xml", "owl":
		return FormatOWLXML, true
	default:
		return "", false
	}
}
