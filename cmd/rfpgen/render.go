package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/observability"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/rendering"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Output views besides the HTML views
const (
	viewPDF = "pdf"
	viewAll = "all"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render an RFP document to HTML and PDF",
	Long: "Renders the print preview (<name>.html), the word-processor copy (<name>.word.html) and the PDF (<name>.pdf). " +
		"--view all renders the three concurrently.",
	RunE: runRender,
}

var (
	renderInputFile string
	renderView      string
	renderOutDir    string
	renderBaseName  string
)

func init() {
	renderCmd.Flags().StringVarP(&renderInputFile, "in", "i", "", "Path to the RFP document (JSON or YAML, required)")
	renderCmd.Flags().StringVar(&renderView, "view", string(rendering.ViewPreview), "View to render: preview, word, pdf or all")
	renderCmd.Flags().StringVarP(&renderOutDir, "out-dir", "o", ".", "Output directory")
	renderCmd.Flags().StringVar(&renderBaseName, "name", "rfp", "Base name of the output files")
	rootCmd.AddCommand(renderCmd)
}

// renderTargets resolves the --view flag into the views to produce
func renderTargets(view string) ([]string, error) {
	switch view {
	case viewAll:
		return []string{string(rendering.ViewPreview), string(rendering.ViewWord), viewPDF}, nil
	case viewPDF:
		return []string{viewPDF}, nil
	}
	v, err := rendering.ParseView(view)
	if err != nil {
		return nil, fmt.Errorf("invalid --view %q: expected preview, word, pdf or all", view)
	}
	return []string{string(v)}, nil
}

// outputPath returns the file a view is written to
func outputPath(dir, base, view string) string {
	switch view {
	case viewPDF:
		return filepath.Join(dir, base+".pdf")
	case string(rendering.ViewWord):
		return filepath.Join(dir, base+".word.html")
	default:
		return filepath.Join(dir, base+".html")
	}
}

func runRender(cmd *cobra.Command, _ []string) error {
	if err := requireFlag("in", renderInputFile); err != nil {
		return err
	}
	targets, err := renderTargets(renderView)
	if err != nil {
		return err
	}

	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	doc, err := loadDocument(renderInputFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(renderOutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	printer := newPrinter(cfg)

	var (
		mu      sync.Mutex
		results []observability.RenderedFile
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, view := range targets {
		g.Go(func() error {
			data, err := renderTarget(gctx, doc, view, printer)
			if err != nil {
				return fmt.Errorf("%s: %w", view, err)
			}
			path := outputPath(renderOutDir, renderBaseName, view)
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			mu.Lock()
			results = append(results, observability.RenderedFile{View: view, Path: path, Bytes: len(data)})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintRenderResults(sortedResults(results, targets))
	}
	for _, r := range sortedResults(results, targets) {
		fmt.Fprintf(os.Stdout, "Wrote %s\n", r.Path)
	}
	return nil
}

// pdfPrinter is the part of export.PDFPrinter render needs
type pdfPrinter interface {
	Print(ctx context.Context, html string) ([]byte, error)
}

// renderTarget produces the bytes of one view
func renderTarget(ctx context.Context, doc types.RFP, view string, printer pdfPrinter) ([]byte, error) {
	if view == viewPDF {
		html, err := rendering.RenderPreview(doc)
		if err != nil {
			return nil, err
		}
		return printer.Print(ctx, html)
	}
	html, err := rendering.Render(rendering.View(view), doc)
	if err != nil {
		return nil, err
	}
	return []byte(html), nil
}

// sortedResults orders results the way the views were requested
func sortedResults(results []observability.RenderedFile, order []string) []observability.RenderedFile {
	sorted := make([]observability.RenderedFile, 0, len(results))
	for _, view := range order {
		for _, r := range results {
			if r.View == view {
				sorted = append(sorted, r)
			}
		}
	}
	return sorted
}
