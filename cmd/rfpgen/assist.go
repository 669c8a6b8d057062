package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/assist"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/llm"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/observability"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/types"
	"github.com/spf13/cobra"
)

var assistCmd = &cobra.Command{
	Use:   "assist",
	Short: "Draft a narrative section with Gemini",
	Long:  "Drafts the introduction or scope of work from the company and project names and writes it into the document. Requires GEMINI_API_KEY.",
	RunE:  runAssist,
}

var (
	assistInputFile  string
	assistOutputFile string
	assistSection    string
	assistDryRun     bool
	assistTimeout    time.Duration
)

func init() {
	assistCmd.Flags().StringVarP(&assistInputFile, "in", "i", "", "Path to the RFP document (JSON or YAML, required)")
	assistCmd.Flags().StringVarP(&assistOutputFile, "out", "o", "", "Where to write the updated document (default: overwrite --in)")
	assistCmd.Flags().StringVarP(&assistSection, "section", "s", string(assist.SectionIntroduction), "Section to draft: introduction or scopeOfWork")
	assistCmd.Flags().BoolVar(&assistDryRun, "dry-run", false, "Print the draft without writing the document")
	assistCmd.Flags().DurationVar(&assistTimeout, "timeout", 2*time.Minute, "Generation timeout")
	rootCmd.AddCommand(assistCmd)
}

func runAssist(cmd *cobra.Command, _ []string) error {
	if err := requireFlag("in", assistInputFile); err != nil {
		return err
	}
	section, err := assist.ParseSection(assistSection)
	if err != nil {
		return err
	}

	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	doc, err := loadDocument(assistInputFile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, assistTimeout)
	defer cancel()

	gen := newGenerator(ctx, cfg)
	defer gen.Close() //nolint:errcheck

	out := assistOutputFile
	if out == "" {
		out = assistInputFile
	}
	return draftSection(ctx, gen, doc, section, out, cfg.Verbose)
}

// draftSection generates a section and, unless this is a dry run, saves it into out
func draftSection(ctx context.Context, gen llm.Generator, doc types.RFP, section assist.Section, out string, verbose bool) error {
	start := time.Now()
	text, err := assist.New(gen).Draft(ctx, doc, section)
	if err != nil {
		return fmt.Errorf("%s: %w", llm.UserMessage(err), err)
	}

	if verbose {
		observability.NewPrinter(os.Stdout).PrintDraft(string(section), text, time.Since(start))
	}
	if assistDryRun {
		fmt.Fprintln(os.Stdout, text)
		return nil
	}

	updated, err := assist.Apply(doc, section, text)
	if err != nil {
		return err
	}
	if err := saveDocument(out, updated); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote %s draft to %s\n", section, out)
	return nil
}
