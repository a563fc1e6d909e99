package sparql

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// Encode writes a result in the named output form: "json", "xml", "csv",
// or "table". Graph results serialize as RDF through an engine instead,
// never through a result form.
func Encode(w io.Writer, res *Result, form string) error {
	if res.Kind == KindGraph {
		return fmt.Errorf("graph results serialize as RDF, not as %q", form)
	}
	switch form {
	case "json":
		return EncodeJSON(w, res)
	case "xml":
		return EncodeXML(w, res)
	case "csv":
		return EncodeCSV(w, res)
	case "table":
		return EncodeTable(w, res)
	default:
		return fmt.Errorf("unknown result form: %s", form)
	}
}

// EncodeJSON writes the SPARQL 1.1 Query Results JSON format.
func EncodeJSON(w io.Writer, res *Result) error {
	payload := jsonResults{}
	if res.Kind == KindBoolean {
		b := res.Boolean
		payload.Boolean = &b
	} else {
		payload.Head.Vars = res.Vars
		payload.Results = &struct {
			Bindings []map[string]jsonTerm `json:"bindings"`
		}{Bindings: []map[string]jsonTerm{}}
		for _, row := range res.Rows {
			binding := make(map[string]jsonTerm, len(row))
			for name, term := range row {
				binding[name] = jsonTerm{Type: term.Type, Value: term.Value, Lang: term.Lang, Datatype: term.Datatype}
			}
			payload.Results.Bindings = append(payload.Results.Bindings, binding)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&payload)
}

// xmlDocument mirrors the SPARQL Query Results XML format.
type xmlDocument struct {
	XMLName xml.Name    `xml:"sparql"`
	Xmlns   string      `xml:"xmlns,attr"`
	Head    xmlHead     `xml:"head"`
	Boolean *bool       `xml:"boolean,omitempty"`
	Results *xmlResults `xml:"results,omitempty"`
}

type xmlHead struct {
	Variables []xmlVariable `xml:"variable"`
}

type xmlVariable struct {
	Name string `xml:"name,attr"`
}

type xmlResults struct {
	Results []xmlResult `xml:"result"`
}

type xmlResult struct {
	Bindings []xmlBinding `xml:"binding"`
}

type xmlBinding struct {
	Name    string      `xml:"name,attr"`
	URI     string      `xml:"uri,omitempty"`
	BNode   string      `xml:"bnode,omitempty"`
	Literal *xmlLiteral `xml:"literal,omitempty"`
}

type xmlLiteral struct {
	Lang     string `xml:"xml:lang,attr,omitempty"`
	Datatype string `xml:"datatype,attr,omitempty"`
	Value    string `xml:",chardata"`
}

// EncodeXML writes the SPARQL Query Results XML format.
func EncodeXML(w io.Writer, res *Result) error {
	doc := xmlDocument{Xmlns: "http://www.w3.org/2005/sparql-results#"}
	if res.Kind == KindBoolean {
		b := res.Boolean
		doc.Boolean = &b
	} else {
		for _, v := range res.Vars {
			doc.Head.Variables = append(doc.Head.Variables, xmlVariable{Name: v})
		}
		doc.Results = &xmlResults{}
		for _, row := range res.Rows {
			var result xmlResult
			for _, v := range res.Vars {
				term, bound := row[v]
				if !bound {
					continue
				}
				binding := xmlBinding{Name: v}
				switch term.Type {
				case "uri":
					binding.URI = term.Value
				case "bnode":
					binding.BNode = term.Value
				default:
					binding.Literal = &xmlLiteral{Value: term.Value, Lang: term.Lang, Datatype: term.Datatype}
				}
				result.Bindings = append(result.Bindings, binding)
			}
			doc.Results.Results = append(doc.Results.Results, result)
		}
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// EncodeCSV writes one header row of variables followed by the solution
// rows, term values only, per the SPARQL CSV results format.
func EncodeCSV(w io.Writer, res *Result) error {
	cw := csv.NewWriter(w)
	if res.Kind == KindBoolean {
		if err := cw.Write([]string{"boolean"}); err != nil {
			return err
		}
		if err := cw.Write([]string{strconv.FormatBool(res.Boolean)}); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	}
	if err := cw.Write(res.Vars); err != nil {
		return err
	}
	record := make([]string, len(res.Vars))
	for _, row := range res.Rows {
		for i, v := range res.Vars {
			record[i] = row[v].Value
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeTable writes an aligned text table for terminal output.
func EncodeTable(w io.Writer, res *Result) error {
	if res.Kind == KindBoolean {
		_, err := fmt.Fprintf(w, "%v\n", res.Boolean)
		return err
	}
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	for i, v := range res.Vars {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprintf(tw, "?%s", v)
	}
	fmt.Fprintln(tw)
	for _, row := range res.Rows {
		for i, v := range res.Vars {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, formatTerm(row[v]))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func formatTerm(t Term) string {
	switch t.Type {
	case "uri":
		return "<" + t.Value + ">"
	case "bnode":
		return "_:" + t.Value
	case "":
		return ""
	default:
		if t.Lang != "" {
			return strconv.Quote(t.Value) + "@" + t.Lang
		}
		if t.Datatype != "" {
			return strconv.Quote(t.Value) + "^^<" + t.Datatype + ">"
		}
		return strconv.Quote(t.Value)
	}
}
