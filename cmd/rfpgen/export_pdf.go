package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/rendering"
	"github.com/spf13/cobra"
)

var exportPDFCmd = &cobra.Command{
	Use:   "export-pdf",
	Short: "Print an RFP document to PDF",
	Long:  "Renders the print preview and prints it with headless Chrome. Requires Chrome or Chromium to be installed.",
	RunE:  runExportPDF,
}

var (
	exportPDFInputFile  string
	exportPDFOutputFile string
)

func init() {
	exportPDFCmd.Flags().StringVarP(&exportPDFInputFile, "in", "i", "", "Path to the RFP document (JSON or YAML, required)")
	exportPDFCmd.Flags().StringVarP(&exportPDFOutputFile, "out", "o", "rfp.pdf", "Path to the output PDF")
	rootCmd.AddCommand(exportPDFCmd)
}

func runExportPDF(cmd *cobra.Command, _ []string) error {
	if err := requireFlag("in", exportPDFInputFile); err != nil {
		return err
	}
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	doc, err := loadDocument(exportPDFInputFile)
	if err != nil {
		return err
	}

	html, err := rendering.RenderPreview(doc)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	pdf, err := newPrinter(cfg).Print(ctx, html)
	if err != nil {
		return fmt.Errorf("failed to print PDF: %w", err)
	}

	if err := os.WriteFile(exportPDFOutputFile, pdf, 0644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Wrote %s (%d bytes)\n", exportPDFOutputFile, len(pdf))
	return nil
}
