package sparql

import (
	"fmt"
	"strings"
)

// defaultPrefixes are prepended to queries that declare none, in this
// fixed order so the rewritten query is deterministic.
var defaultPrefixes = []struct {
	Prefix string
	IRI    string
}{
	{"rdf", "http://www.w3.org/1999/02/22-rdf-syntax-ns#"},
	{"rdfs", "http://www.w3.org/2000/01/rdf-schema#"},
	{"xsd", "http://www.w3.org/2001/XMLSchema#"},
	{"owl", "http://www.w3.org/2002/07/owl#"},
	{"foaf", "http://xmlns.com/foaf/0.1/"},
	{"dc", "http://purl.org/dc/elements/1.1/"},
	{"dcterms", "http://purl.org/dc/terms/"},
	{"skos", "http://www.w3.org/2004/02/skos/core#"},
}

// EnsurePrefixes prepends the default prefix declarations when the query
// declares none of its own. Queries with explicit PREFIX clauses pass
// through unchanged.
func EnsurePrefixes(query string) string {
	if hasPrefixDecl(query) {
		return query
	}
	var b strings.Builder
	for _, p := range defaultPrefixes {
		fmt.Fprintf(&b, "PREFIX %s: <%s>\n", p.Prefix, p.IRI)
	}
	b.WriteString(query)
	return b.String()
}

// hasPrefixDecl reports whether the query contains a PREFIX keyword as a
// standalone token. Occurrences inside IRI references, string literals,
// comments, prefixed names, and variable names do not count.
func hasPrefixDecl(query string) bool {
	for i := 0; i < len(query); {
		switch c := query[i]; c {
		case '<':
			end := strings.IndexByte(query[i:], '>')
			if end < 0 {
				return false
			}
			i += end + 1
		case '"', '\'':
			i = skipStringLiteral(query, i)
		case '#':
			end := strings.IndexByte(query[i:], '\n')
			if end < 0 {
				return false
			}
			i += end + 1
		default:
			if !isWordByte(c) {
				i++
				continue
			}
			j := i
			for j < len(query) && isWordByte(query[j]) {
				j++
			}
			if strings.EqualFold(query[i:j], "prefix") && !boundByNameChar(query, i, j) {
				return true
			}
			i = j
		}
	}
	return false
}

// boundByNameChar reports whether the word at [start,end) is part of a
// larger name, such as the local part of ex:prefix or the variable
// ?prefix.
func boundByNameChar(query string, start, end int) bool {
	if start > 0 {
		switch query[start-1] {
		case ':', '?', '$':
			return true
		}
	}
	return end < len(query) && query[end] == ':'
}

// skipStringLiteral advances past the string literal opening at i,
// handling escapes and long (triple-quoted) forms. It returns the index
// of the first byte after the literal, or len(query) when unterminated.
func skipStringLiteral(query string, i int) int {
	quote := query[i]
	delim := string(quote)
	if strings.HasPrefix(query[i:], strings.Repeat(delim, 3)) {
		delim = strings.Repeat(delim, 3)
	}
	i += len(delim)
	for i < len(query) {
		switch {
		case query[i] == '\\':
			i += 2
		case strings.HasPrefix(query[i:], delim):
			return i + len(delim)
		default:
			i++
		}
	}
	return len(query)
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
