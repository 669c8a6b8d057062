package main

import (
	"context"
	"fmt"
	"log"

	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/config"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/export"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/llm"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/server"
)

// loadSettings merges the config file over the environment over the defaults
func loadSettings() (config.Config, error) {
	cfg := config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}

	env := config.FromEnv()
	cfg = cfg.MergeWithDefaults(env)
	cfg = cfg.MergeWithDefaults(config.Default())
	if verbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newGenerator builds the Gemini text generator. It always returns a usable
// value; a missing key surfaces on the first Generate call.
func newGenerator(ctx context.Context, cfg config.Config) *llm.TextGenerator {
	llmConfig := llm.DefaultConfig()
	if cfg.Model != "" {
		llmConfig = llmConfig.WithModel(llmConfig.Tier, cfg.Model)
	}
	if cfg.MaxOutputTokens > 0 {
		llmConfig.MaxOutputTokens = cfg.MaxOutputTokens
	}
	return llm.NewTextGenerator(ctx, llmConfig, cfg.APIKey)
}

// newPrinter builds the headless Chrome PDF printer
func newPrinter(cfg config.Config) *export.PDFPrinter {
	printer := export.NewPDFPrinter(cfg.PDFTimeout())
	printer.ExecPath = cfg.ChromePath
	printer.Verbose = cfg.Verbose
	return printer
}

// serverPrinter returns the PDF printer for the API server, or nil when no
// browser is installed so preview.pdf answers 503 instead of failing per request.
func serverPrinter(cfg config.Config) server.Printer {
	path, err := export.FindBrowser(cfg.ChromePath)
	if err != nil {
		log.Printf("PDF export disabled: %v", err)
		return nil
	}
	printer := newPrinter(cfg)
	printer.ExecPath = path
	return printer
}

// requireFlag reports a missing required string flag
func requireFlag(name, value string) error {
	if value == "" {
		return fmt.Errorf("--%s is required", name)
	}
	return nil
}
