package engine

import "github.com/geoknoesis/rdf-go/rdf"

// Vocabulary IRIs used for schema extraction.
const (
	rdfType            = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	rdfProperty        = "http://www.w3.org/1999/02/22-rdf-syntax-ns#Property"
	rdfsClass          = "http://www.w3.org/2000/01/rdf-schema#Class"
	rdfsSubClassOf     = "http://www.w3.org/2000/01/rdf-schema#subClassOf"
	rdfsSubPropertyOf  = "http://www.w3.org/2000/01/rdf-schema#subPropertyOf"
	rdfsDomain         = "http://www.w3.org/2000/01/rdf-schema#domain"
	rdfsRange          = "http://www.w3.org/2000/01/rdf-schema#range"
	owlClass           = "http://www.w3.org/2002/07/owl#Class"
	owlEquivalentClass = "http://www.w3.org/2002/07/owl#equivalentClass"
	owlObjectProperty  = "http://www.w3.org/2002/07/owl#ObjectProperty"
	owlDatatypeProp    = "http://www.w3.org/2002/07/owl#DatatypeProperty"
	owlAnnotationProp  = "http://www.w3.org/2002/07/owl#AnnotationProperty"
)

// Stats summarizes a parsed graph.
type Stats struct {
	TotalTriples     int `json:"total_triples"`
	NamedGraphs      int `json:"named_graphs"`
	UniqueSubjects   int `json:"unique_subjects"`
	UniquePredicates int `json:"unique_predicates"`
	UniqueObjects    int `json:"unique_objects"`
	BlankNodes       int `json:"blank_nodes"`
	Literals         int `json:"literals"`
	IRIs             int `json:"uris"`
}

// GraphStats computes statistics over quads: statement count, distinct
// terms per position, and node-type tallies for subjects and objects.
func GraphStats(quads []rdf.Quad) Stats {
	subjects := make(map[string]struct{})
	predicates := make(map[string]struct{})
	objects := make(map[string]struct{})
	graphs := make(map[string]struct{})

	var s Stats
	s.TotalTriples = len(quads)
	for _, q := range quads {
		subjects[q.S.String()] = struct{}{}
		predicates[q.P.Value] = struct{}{}
		objects[q.O.String()] = struct{}{}
		if q.G != nil {
			graphs[q.G.String()] = struct{}{}
		}

		switch q.S.Kind() {
		case rdf.TermBlankNode:
			s.BlankNodes++
		case rdf.TermIRI:
			s.IRIs++
		}
		switch q.O.Kind() {
		case rdf.TermLiteral:
			s.Literals++
		case rdf.TermIRI:
			s.IRIs++
		case rdf.TermBlankNode:
			s.BlankNodes++
		}
	}
	s.NamedGraphs = len(graphs)
	s.UniqueSubjects = len(subjects)
	s.UniquePredicates = len(predicates)
	s.UniqueObjects = len(objects)
	return s
}

// Schema extracts the schema-level statements from quads: class and
// property declarations plus the axioms relating them (subClassOf,
// equivalentClass, domain, range, subPropertyOf).
func Schema(quads []rdf.Quad) []rdf.Quad {
	var schema []rdf.Quad
	for _, q := range quads {
		if isSchemaStatement(q) {
			schema = append(schema, q)
		}
	}
	return schema
}

func isSchemaStatement(q rdf.Quad) bool {
	switch q.P.Value {
	case rdfsSubClassOf, owlEquivalentClass, rdfsDomain, rdfsRange, rdfsSubPropertyOf:
		return true
	case rdfType:
		obj, ok := q.O.(rdf.IRI)
		if !ok {
			return false
		}
		switch obj.Value {
		case rdfsClass, owlClass, rdfProperty, owlObjectProperty, owlDatatypeProp, owlAnnotationProp:
			return true
		}
	}
	return false
}
