// Package engine adapts resolved format identifiers onto the rdf-go
// toolkit's parsers and encoders. It owns no graph representation of its
// own: inputs decode to the toolkit's quad slices and serialize back from
// them. Formats the registry resolves but the toolkit cannot decode (TriX,
// RDF/Thrift) report ErrUnsupported, which is distinct from an unknown
// format.
package engine
