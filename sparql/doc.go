// Package sparql models SPARQL result forms and executes queries against
// remote SPARQL Protocol endpoints.
//
// Local query evaluation is out of scope; the Engine interface is the seam
// where an evaluator plugs in. EndpointClient speaks the SPARQL 1.1
// Protocol (SELECT and ASK over HTTP, JSON results), and Remote adapts it
// to the Engine seam. Results encode to JSON, XML, CSV, or an aligned
// text table.
package sparql
