package server

import (
	"net/http"

	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/types"
)

// addRow runs an edit that appends a row and reports the new row's id
func (s *Server) addRow(w http.ResponseWriter, r *http.Request, add func(types.RFP) (types.RFP, string)) {
	id := r.PathValue("id")
	var rowID string
	doc, updatedAt, err := s.store.Update(id, func(d types.RFP) (types.RFP, error) {
		var next types.RFP
		next, rowID = add(d)
		return next, nil
	})
	if err != nil {
		s.failure(w, err)
		return
	}
	s.respondDocument(w, http.StatusCreated, id, rowID, doc, updatedAt)
}

// --- Abbreviations ---

func (s *Server) handleAddAbbreviation(w http.ResponseWriter, r *http.Request) {
	s.addRow(w, r, func(d types.RFP) (types.RFP, string) {
		return types.AddAbbreviation(d, s.store.NewRowID)
	})
}

func (s *Server) handleUpdateAbbreviation(w http.ResponseWriter, r *http.Request) {
	var req types.RowFieldUpdateRequest
	if err := decodeRequest(r, &req); err != nil {
		s.failure(w, err)
		return
	}
	rowID := r.PathValue("row_id")
	s.editDocument(w, r, func(d types.RFP) (types.RFP, error) {
		return types.UpdateAbbreviation(d, rowID, types.AbbreviationField(req.Field), req.Value)
	})
}

func (s *Server) handleRemoveAbbreviation(w http.ResponseWriter, r *http.Request) {
	rowID := r.PathValue("row_id")
	s.editDocument(w, r, func(d types.RFP) (types.RFP, error) {
		return types.RemoveAbbreviation(d, rowID)
	})
}

// --- Feedstocks ---

func (s *Server) handleAddFeedstock(w http.ResponseWriter, r *http.Request) {
	s.addRow(w, r, func(d types.RFP) (types.RFP, string) {
		return types.AddFeedstockItem(d, s.store.NewRowID)
	})
}

// handleUpdateFeedstock edits a column, toggles the sub-item flag, or both.
// Either change failing leaves the row untouched.
func (s *Server) handleUpdateFeedstock(w http.ResponseWriter, r *http.Request) {
	var req types.FeedstockUpdateRequest
	if err := decodeRequest(r, &req); err != nil {
		s.failure(w, err)
		return
	}
	rowID := r.PathValue("row_id")
	s.editDocument(w, r, func(d types.RFP) (types.RFP, error) {
		var err error
		if req.Field != "" {
			if d, err = types.UpdateFeedstock(d, rowID, types.FeedstockField(req.Field), req.Value); err != nil {
				return d, err
			}
		}
		if req.SubItem != nil {
			if d, err = types.SetFeedstockSubItem(d, rowID, *req.SubItem); err != nil {
				return d, err
			}
		}
		return d, nil
	})
}

func (s *Server) handleRemoveFeedstock(w http.ResponseWriter, r *http.Request) {
	rowID := r.PathValue("row_id")
	s.editDocument(w, r, func(d types.RFP) (types.RFP, error) {
		return types.RemoveFeedstock(d, rowID)
	})
}

// --- Utilities ---

func (s *Server) handleAddUtility(w http.ResponseWriter, r *http.Request) {
	var req types.UtilityCreateRequest
	if err := decodeRequest(r, &req); err != nil {
		s.failure(w, err)
		return
	}
	s.addRow(w, r, func(d types.RFP) (types.RFP, string) {
		return types.AddUtility(d, s.store.NewRowID, req.Name)
	})
}

func (s *Server) handleUpdateUtility(w http.ResponseWriter, r *http.Request) {
	var req types.UtilityUpdateRequest
	if err := decodeRequest(r, &req); err != nil {
		s.failure(w, err)
		return
	}
	if req.Selected == nil && req.Condition == nil {
		s.failure(w, &ErrValidation{Field: "body", Message: "selected or condition is required"})
		return
	}

	rowID := r.PathValue("row_id")
	s.editDocument(w, r, func(d types.RFP) (types.RFP, error) {
		var err error
		if req.Selected != nil {
			if d, err = types.SetUtilitySelected(d, rowID, *req.Selected); err != nil {
				return d, err
			}
		}
		if req.Condition != nil {
			if d, err = types.SetUtilityCondition(d, rowID, *req.Condition); err != nil {
				return d, err
			}
		}
		return d, nil
	})
}

func (s *Server) handleRemoveUtility(w http.ResponseWriter, r *http.Request) {
	rowID := r.PathValue("row_id")
	s.editDocument(w, r, func(d types.RFP) (types.RFP, error) {
		return types.RemoveUtility(d, rowID)
	})
}
