// Command schemagen writes the JSON schemas embedded by pkg/config and
// pkg/ruledoc. It is run by go generate from the package directories.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/macropower/fileformat/pkg/config"
	"github.com/macropower/fileformat/pkg/ruledoc"
	"github.com/macropower/fileformat/pkg/yaml"
)

const module = "github.com/macropower/fileformat"

var (
	kind    = flag.String("kind", "config", "Schema to generate: config or ruledocument")
	outFile = flag.String("o", "schema.json", "Output file for the generated schema")
)

func main() {
	flag.Parse()

	var gen *yaml.SchemaGenerator

	switch *kind {
	case "config":
		gen = yaml.NewSchemaGenerator(config.NewConfig(), module,
			"../../api/v1beta1",
			"../../pkg/config",
		)
	case "ruledocument":
		gen = yaml.NewSchemaGenerator(&ruledoc.RuleDocument{}, module,
			"../../pkg/ruledoc",
		)
	default:
		log.Fatalf("unknown kind %q", *kind)
	}

	jsData, err := gen.Generate()
	if err != nil {
		log.Fatalf("generate JSON schema: %v", err)
	}

	err = os.WriteFile(*outFile, jsData, 0o600)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}
}
