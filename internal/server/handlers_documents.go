package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/schemas"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/types"
)

// maxDocumentBytes bounds a JSON document body; diagrams travel inside it
const maxDocumentBytes = 32 << 20

// DocumentResponse is returned by every document read or edit
type DocumentResponse struct {
	ID        string    `json:"id"`
	RowID     string    `json:"rowId,omitempty"` // set when a row was added
	UpdatedAt time.Time `json:"updatedAt"`
	Document  types.RFP `json:"document"`
	// PlaceholderConditions lists utility rows whose condition is still the
	// "e.g., ..." example, so editors can show it as a hint
	PlaceholderConditions []string `json:"placeholderConditions,omitempty"`
}

// validatable is implemented by the request DTOs
type validatable interface {
	Validate() error
}

// decodeRequest reads a JSON body into req and validates it
func decodeRequest(r *http.Request, req validatable) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := req.Validate(); err != nil {
		return validationError(err)
	}
	return nil
}

// readBody reads a document body of at most maxDocumentBytes
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &ErrValidation{Field: "body", Message: "document is too large"}
		}
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	return data, nil
}

// parseDocument checks data against the document schema and decodes it
func parseDocument(data []byte) (types.RFP, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return types.RFP{}, &ErrValidation{Field: "body", Message: "document is required"}
	}
	if err := schemas.ValidateDocument(data); err != nil {
		return types.RFP{}, err
	}

	var doc types.RFP
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.RFP{}, &ErrValidation{Field: "body", Message: "invalid document: " + err.Error()}
	}
	return doc.Normalize(), nil
}

// respondDocument writes the current state of a document
func (s *Server) respondDocument(w http.ResponseWriter, status int, id, rowID string, doc types.RFP, updatedAt time.Time) {
	s.jsonResponse(w, status, DocumentResponse{
		ID:                    id,
		RowID:                 rowID,
		UpdatedAt:             updatedAt,
		Document:              doc,
		PlaceholderConditions: placeholderConditions(doc),
	})
}

// placeholderConditions returns the ids of utilities showing an example condition
func placeholderConditions(doc types.RFP) []string {
	var ids []string
	for _, u := range doc.Utilities {
		if u.Condition.IsPlaceholder() {
			ids = append(ids, u.ID)
		}
	}
	return ids
}

// editDocument runs edit against the stored document and writes the result
func (s *Server) editDocument(w http.ResponseWriter, r *http.Request, edit func(types.RFP) (types.RFP, error)) {
	id := r.PathValue("id")
	doc, updatedAt, err := s.store.Update(id, edit)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.respondDocument(w, http.StatusOK, id, "", doc, updatedAt)
}

// handleListDocuments lists stored documents, newest first
func (s *Server) handleListDocuments(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"documents": s.store.List()})
}

// handleCreateDocument creates a document. An empty body starts from the
// defaults; otherwise the body is imported as a full document.
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.failure(w, err)
		return
	}

	doc := types.NewRFP()
	if len(bytes.TrimSpace(data)) > 0 {
		if doc, err = parseDocument(data); err != nil {
			s.failure(w, err)
			return
		}
	}

	id := s.store.Create(doc)
	stored, updatedAt, err := s.store.Get(id)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.respondDocument(w, http.StatusCreated, id, "", stored, updatedAt)
}

// handleGetDocument returns one document
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	doc, updatedAt, err := s.store.Get(id)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.respondDocument(w, http.StatusOK, id, "", doc, updatedAt)
}

// handleReplaceDocument replaces a document with a schema-valid body
func (s *Server) handleReplaceDocument(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.failure(w, err)
		return
	}
	doc, err := parseDocument(data)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.editDocument(w, r, func(types.RFP) (types.RFP, error) { return doc, nil })
}

// handleDeleteDocument deletes a document
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.PathValue("id")); err != nil {
		s.failure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUpdateField sets one scalar field
func (s *Server) handleUpdateField(w http.ResponseWriter, r *http.Request) {
	var req types.FieldUpdateRequest
	if err := decodeRequest(r, &req); err != nil {
		s.failure(w, err)
		return
	}
	s.editDocument(w, r, func(d types.RFP) (types.RFP, error) {
		return types.SetField(d, req.Field, req.Value)
	})
}

// handleSetDeliverable selects or deselects a deliverable
func (s *Server) handleSetDeliverable(w http.ResponseWriter, r *http.Request) {
	var req types.OptionUpdateRequest
	if err := decodeRequest(r, &req); err != nil {
		s.failure(w, err)
		return
	}
	s.editDocument(w, r, func(d types.RFP) (types.RFP, error) {
		return types.SetDeliverable(d, req.Label, req.Selected)
	})
}

// handleSetCommercialTerm selects or deselects a commercial term
func (s *Server) handleSetCommercialTerm(w http.ResponseWriter, r *http.Request) {
	var req types.OptionUpdateRequest
	if err := decodeRequest(r, &req); err != nil {
		s.failure(w, err)
		return
	}
	s.editDocument(w, r, func(d types.RFP) (types.RFP, error) {
		return types.SetCommercialTerm(d, req.Label, req.Selected)
	})
}
