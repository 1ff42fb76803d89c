// Command extract runs the extraction pipeline over a text file or an inline
// string and prints the canonical claim as JSON. Useful for prompt and
// normalizer tuning without the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"claims-assistant/internal/common"
	"claims-assistant/internal/extract"
	"claims-assistant/internal/llm/gemini"
)

func main() {
	var (
		file = flag.String("file", "", "path to a file with invoice text")
		text = flag.String("text", "", "inline invoice text")
	)
	flag.Parse()

	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	input := *text
	if *file != "" {
		b, err := os.ReadFile(*file)
		if err != nil {
			logger.Error("read input file", "error", err)
			os.Exit(1)
		}
		input = string(b)
	}
	if input == "" {
		fmt.Fprintln(os.Stderr, "usage: extract -file invoice.txt | -text \"...\"")
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	if cfg.LLM.APIKey == "" {
		logger.Error("GEMINI_API_KEY is required")
		os.Exit(1)
	}

	generator := gemini.NewClient(gemini.Config{
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	}, logger)
	orchestrator := extract.NewOrchestrator(generator, logger)

	claim, err := orchestrator.ExtractClaim(context.Background(), input)
	if err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(claim, "", "  ")
	if err != nil {
		logger.Error("encode claim", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
