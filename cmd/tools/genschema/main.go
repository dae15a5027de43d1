// Command genschema writes the JSON Schema of the FingerString config files,
// for editor completion of *.fingerstring.yaml.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mredig/fingerstring-mcp/internal/config"
)

func main() {
	var outFile string
	var toStdout bool
	flag.StringVar(&outFile, "out", "fingerstring.schema.json", "Output file path")
	flag.BoolVar(&toStdout, "stdout", false, "Write the schema to stdout instead of a file")
	flag.Parse()

	if err := run(outFile, toStdout); err != nil {
		fmt.Fprintf(os.Stderr, "genschema: %v\n", err)
		os.Exit(1)
	}
}

func run(outFile string, toStdout bool) error {
	schema, err := config.GenerateJSONSchema()
	if err != nil {
		return fmt.Errorf("generating schema: %w", err)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling schema: %w", err)
	}
	data = append(data, '\n')

	if toStdout {
		_, err := os.Stdout.Write(data)
		return err
	}

	if !filepath.IsAbs(outFile) {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		outFile = filepath.Join(wd, outFile)
	}

	if err := os.MkdirAll(filepath.Dir(outFile), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", outFile, err)
	}
	if err := os.WriteFile(outFile, data, 0644); err != nil {
		return fmt.Errorf("writing schema to %s: %w", outFile, err)
	}
	fmt.Printf("Schema written to %s\n", outFile)
	return nil
}
