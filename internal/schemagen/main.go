// Command schemagen writes the JSON schema of layout documents.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/macropower/skipgrid/api/v1beta1/layouts"
)

var outFile = flag.String("o", "layouts.v1beta1.json", "Output file for the generated schema")

func main() {
	flag.Parse()

	jsData, err := layouts.Schema()
	if err != nil {
		log.Fatalf("generate JSON schema: %v", err)
	}

	err = os.WriteFile(*outFile, append(jsData, '\n'), 0o600)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}
}
