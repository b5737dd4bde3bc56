package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-metagen/pkg/orchestrator"
)

func main() {
	input := flag.String("input", "", "exported values document to load (JSON)")
	mode := flag.String("mode", "tags", "what to emit: tags, document, stats, preview")
	platform := flag.String("platform", "google", "preview platform (preview mode only)")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()
	gen := orchestrator.New()

	if *input != "" {
		doc, err := os.ReadFile(*input)
		if err != nil {
			log.Fatalf("Failed to read input: %v", err)
		}
		if err := gen.ImportValues(doc); err != nil {
			log.Fatalf("Failed to import values: %v", err)
		}
	}

	for _, pair := range flag.Args() {
		field, value, ok := splitPair(pair)
		if !ok {
			log.Fatalf("invalid field assignment: %q (want name=value)", pair)
		}
		if _, err := gen.HandleFieldChange(ctx, field, value); err != nil {
			log.Fatalf("Failed to set %s: %v", field, err)
		}
	}

	rendered, err := render(gen, *mode, *platform)
	if err != nil {
		log.Fatalf("Failed to generate output: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(rendered), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Output written to %s\n", *output)
	} else {
		fmt.Println(rendered)
	}
}

func render(gen *orchestrator.Orchestrator, mode, platform string) (string, error) {
	switch mode {
	case "tags":
		return gen.Generate(), nil
	case "document":
		return gen.Document()
	case "stats":
		stats, err := json.MarshalIndent(gen.Stats(), "", "  ")
		return string(stats), err
	case "preview":
		rendered, err := json.MarshalIndent(gen.Preview(platform), "", "  ")
		return string(rendered), err
	default:
		return "", fmt.Errorf("unknown mode: %q", mode)
	}
}

func splitPair(raw string) (string, string, bool) {
	for i := 0; i < len(raw); i++ {
		if raw[i] == '=' {
			return raw[:i], raw[i+1:], i > 0
		}
	}
	return "", "", false
}
