// Package export produces the print-ready PDF of an RFP and converts uploaded
// diagrams into embeddable images.
package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultPrintTimeout bounds one PDF print including browser start-up
const DefaultPrintTimeout = 30 * time.Second

// ErrEmptyDocument is returned when there is no HTML to print
var ErrEmptyDocument = errors.New("nothing to print")

// ErrNoBrowser is returned when no Chrome or Chromium binary can be found
var ErrNoBrowser = errors.New("no Chrome or Chromium browser found")

// browserNames are looked up on PATH in order
var browserNames = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"headless-shell",
}

// FindBrowser returns execPath if it names an existing file, otherwise the
// first browser found on PATH.
func FindBrowser(execPath string) (string, error) {
	if execPath != "" {
		if _, err := os.Stat(execPath); err != nil {
			return "", fmt.Errorf("%w: %v", ErrNoBrowser, err)
		}
		return execPath, nil
	}
	for _, name := range browserNames {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", ErrNoBrowser
}

// PDFPrinter prints HTML to PDF in headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type PDFPrinter struct {
	Timeout time.Duration
	// ExecPath overrides the browser binary; empty uses chromedp's lookup
	ExecPath string
	Verbose  bool
}

// NewPDFPrinter creates a printer with the given timeout (DefaultPrintTimeout if zero)
func NewPDFPrinter(timeout time.Duration) *PDFPrinter {
	if timeout <= 0 {
		timeout = DefaultPrintTimeout
	}
	return &PDFPrinter{Timeout: timeout}
}

// Print loads html into a blank page and prints it with backgrounds, honoring
// any CSS page size. Sections marked break-inside: avoid are kept together.
func (p *PDFPrinter) Print(ctx context.Context, html string) ([]byte, error) {
	if html == "" {
		return nil, ErrEmptyDocument
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultPrintTimeout
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(p.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	start := time.Now()
	if p.Verbose {
		log.Printf("[pdf] printing %d bytes of HTML", len(html))
	}

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("pdf printing failed: %w", err)
	}

	if p.Verbose {
		log.Printf("[pdf] printed %d bytes in %v", len(pdf), time.Since(start))
	}
	return pdf, nil
}
