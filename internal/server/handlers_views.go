package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/export"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/rendering"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/types"
)

// diagramFormField is the multipart field carrying the diagram image
const diagramFormField = "file"

// handleUploadDiagram stores an uploaded PNG, JPEG or GIF as the block flow diagram
func (s *Server) handleUploadDiagram(w http.ResponseWriter, r *http.Request) {
	limit := s.maxUploadBytes
	if limit > 0 {
		// leave room for the multipart envelope
		r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)
	}

	file, _, err := r.FormFile(diagramFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.failure(w, export.ErrImageTooLarge)
			return
		}
		s.failure(w, &ErrValidation{Field: diagramFormField, Message: "an image upload is required: " + err.Error()})
		return
	}
	defer file.Close()

	dataURI, err := export.ReadImageDataURI(file, limit)
	if err != nil {
		s.failure(w, err)
		return
	}

	s.editDocument(w, r, func(d types.RFP) (types.RFP, error) {
		return types.SetBlockFlowDiagram(d, dataURI), nil
	})
}

// handleRemoveDiagram clears the block flow diagram
func (s *Server) handleRemoveDiagram(w http.ResponseWriter, r *http.Request) {
	s.editDocument(w, r, func(d types.RFP) (types.RFP, error) {
		return types.SetBlockFlowDiagram(d, ""), nil
	})
}

// handlePreview renders the print preview page
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	s.renderView(w, r, rendering.ViewPreview)
}

// handleWordCopy renders the word-processor copy page
func (s *Server) handleWordCopy(w http.ResponseWriter, r *http.Request) {
	s.renderView(w, r, rendering.ViewWord)
}

func (s *Server) renderView(w http.ResponseWriter, r *http.Request, view rendering.View) {
	doc, _, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}

	html, err := rendering.Render(view, doc)
	if err != nil {
		s.failure(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(html)); err != nil {
		log.Printf("Error writing %s view: %v", view, err)
	}
}

// handlePreviewPDF prints the preview page to PDF
func (s *Server) handlePreviewPDF(w http.ResponseWriter, r *http.Request) {
	if s.printer == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "PDF export is not available")
		return
	}

	doc, _, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}
	html, err := rendering.RenderPreview(doc)
	if err != nil {
		s.failure(w, err)
		return
	}

	pdf, err := s.printer.Print(r.Context(), html)
	if err != nil {
		log.Printf("[pdf] print failed for %s: %v", r.PathValue("id"), err)
		s.errorResponse(w, http.StatusBadGateway, "failed to print PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, PDFFileName(doc.ProjectName)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("Error writing PDF: %v", err)
	}
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// PDFFileName derives a download name from the project name
func PDFFileName(projectName string) string {
	name := strings.Trim(unsafeFileChars.ReplaceAllString(strings.TrimSpace(projectName), "_"), "._-")
	if name == "" {
		name = "rfp"
	}
	return name + ".pdf"
}
