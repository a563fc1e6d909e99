// Command rdfany fetches, converts, and queries RDF from files and URLs.
package main

import (
	"os"

	"github.com/geoknoesis/rdfany/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:], os.Stdout, os.Stderr))
}
