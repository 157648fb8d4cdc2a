// Command import converts a Mermaid flowchart or pathway file into a native
// pathway file.
package main

import (
	"flag"
	"fmt"
	"os"

	"pathway/export"
	"pathway/importer"
)

func main() {
	var (
		inputFile = flag.String("i", "", "Input file path")
		format    = flag.String("f", "", "Input format (json, yaml, mermaid) - auto-detect if not specified")
		outFormat = flag.String("to", "json", "Output format (json, yaml)")
		output    = flag.String("o", "", "Output file path (default: stdout)")
		name      = flag.String("name", "", "Pathway name (overrides the one in the input)")
	)

	flag.Parse()

	if *inputFile == "" {
		fmt.Fprintf(os.Stderr, "Error: input file required (-i)\n")
		flag.Usage()
		os.Exit(1)
	}

	// Read input file
	content, err := os.ReadFile(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	// Create importer registry
	registry := importer.NewImporterRegistry()

	// Import the pathway
	var p export.Pathway
	if *format != "" {
		p, err = registry.ImportWithFormat(string(content), *format)
	} else {
		p, err = registry.Import(string(content))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing pathway: %v\n", err)
		os.Exit(1)
	}
	if *name != "" {
		p.Name = *name
	}

	f, err := export.ParseFormat(*outFormat)
	if err == nil && f != export.FormatJSON && f != export.FormatYAML {
		err = fmt.Errorf("%s is not a pathway file format", f)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	exporter, _ := export.NewExporter(f)
	data, err := exporter.Export(p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting pathway: %v\n", err)
		os.Exit(1)
	}

	// Output result
	if *output != "" {
		if err := os.WriteFile(*output, []byte(data), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully imported pathway to %s\n", *output)
	} else {
		fmt.Println(data)
	}
}
