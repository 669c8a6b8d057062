// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/schemas"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most width runes
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// orDash shows "-" for blank values
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// PrintDocumentSummary outputs a short overview of a document's contents.
func (p *Printer) PrintDocumentSummary(doc *types.RFP) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:   %s\n", orDash(doc.CompanyName)))
	sb.WriteString(fmt.Sprintf("Project:   %s\n", orDash(doc.ProjectName)))
	sb.WriteString(fmt.Sprintf("Capacity:  %s TPD\n", orDash(doc.CO2CaptureCapacity)))
	sb.WriteString("\n")

	items := 0
	for _, row := range doc.Feedstocks {
		if row.Kind() == types.FeedstockKindItem {
			items++
		}
	}
	sb.WriteString(fmt.Sprintf("Abbreviations:     %d\n", len(doc.Abbreviations)))
	sb.WriteString(fmt.Sprintf("Feed gas rows:     %d (%d items)\n", len(doc.Feedstocks), items))
	sb.WriteString(fmt.Sprintf("Deliverables:      %d of %d\n",
		len(doc.Deliverables.Filter(types.DeliverablesList)), len(types.DeliverablesList)))
	sb.WriteString(fmt.Sprintf("Commercial terms:  %d of %d\n",
		len(doc.CommercialTerms.Filter(types.CommercialTermsList)), len(types.CommercialTermsList)))
	sb.WriteString(fmt.Sprintf("Block flow diagram: %s\n", yesNo(doc.BlockFlowDiagram != "")))

	var selected []string
	for _, u := range doc.Utilities {
		if u.Selected {
			selected = append(selected, u.Name)
		}
	}
	if len(selected) > 0 {
		sb.WriteString("\nUtilities:\n")
		count := min(len(selected), maxItemsToShow)
		for _, name := range selected[:count] {
			sb.WriteString(fmt.Sprintf("  • %s\n", name))
		}
		if len(selected) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(selected)-maxItemsToShow))
		}
	}

	p.printBox("RFP DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// PrintValidationErrors outputs the schema violations of a document.
func (p *Printer) PrintValidationErrors(verr *schemas.ValidationError) {
	if verr == nil || len(verr.Errors) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d problem(s) found\n\n", len(verr.Errors)))
	count := min(len(verr.Errors), maxItemsToShow*2)
	for i, fe := range verr.Errors[:count] {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, fe.Field))
		sb.WriteString(fmt.Sprintf("   %s\n", fe.Message))
	}
	if len(verr.Errors) > count {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(verr.Errors)-count))
	}

	p.printBox("SCHEMA VALIDATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDraft outputs the first lines of a generated section draft.
func (p *Printer) PrintDraft(section string, text string, elapsed time.Duration) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Section:  %s\n", section))
	sb.WriteString(fmt.Sprintf("Length:   %d characters\n", utf8.RuneCountInString(text)))
	sb.WriteString(fmt.Sprintf("Elapsed:  %v\n", elapsed.Round(time.Millisecond)))
	sb.WriteString("\n")

	lines := wrap(text, boxWidth-4)
	count := min(len(lines), maxItemsToShow)
	for _, line := range lines[:count] {
		sb.WriteString(line + "\n")
	}
	if len(lines) > count {
		sb.WriteString("...\n")
	}

	p.printBox("AI DRAFT", strings.TrimSuffix(sb.String(), "\n"))
}

// RenderedFile describes one file written by the render command
type RenderedFile struct {
	View  string
	Path  string
	Bytes int
}

// PrintRenderResults outputs the files produced by a render.
func (p *Printer) PrintRenderResults(files []RenderedFile) {
	if len(files) == 0 {
		return
	}

	var sb strings.Builder
	for _, f := range files {
		sb.WriteString(fmt.Sprintf("%-8s %8s  %s\n", f.View, formatBytes(f.Bytes), f.Path))
	}
	p.printBox("RENDERED OUTPUT", strings.TrimSuffix(sb.String(), "\n"))
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// wrap splits text into lines of at most width runes, breaking on spaces
func wrap(text string, width int) []string {
	var lines []string
	for _, paragraph := range strings.Split(strings.TrimSpace(text), "\n") {
		var line strings.Builder
		for _, word := range strings.Fields(paragraph) {
			if line.Len() > 0 && utf8.RuneCountInString(line.String())+1+utf8.RuneCountInString(word) > width {
				lines = append(lines, line.String())
				line.Reset()
			}
			if line.Len() > 0 {
				line.WriteByte(' ')
			}
			line.WriteString(word)
		}
		if line.Len() > 0 {
			lines = append(lines, line.String())
		}
	}
	return lines
}
