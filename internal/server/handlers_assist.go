package server

import (
	"context"
	"log"
	"net/http"

	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/assist"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/types"
)

// AssistResponse reports the state of one section's draft
type AssistResponse struct {
	DocumentID string       `json:"documentId"`
	Section    string       `json:"section"`
	Field      string       `json:"field"`
	Status     assist.State `json:"status"`
	Result     string       `json:"result,omitempty"`
	Error      string       `json:"error,omitempty"`
}

func newAssistResponse(id string, section assist.Section, snap assist.Snapshot) AssistResponse {
	return AssistResponse{
		DocumentID: id,
		Section:    string(section),
		Field:      string(section.Field()),
		Status:     snap.State,
		Result:     snap.Result,
		Error:      snap.Error,
	}
}

// handleStartAssist starts drafting a section in the background and returns 202.
// The draft is written into the latest version of the document when it
// succeeds; a failed draft leaves the field alone.
func (s *Server) handleStartAssist(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	section, err := assist.ParseSection(r.PathValue("section"))
	if err != nil {
		s.failure(w, err)
		return
	}

	doc, _, err := s.store.Get(id)
	if err != nil {
		s.failure(w, err)
		return
	}
	task, err := s.store.Task(id, section)
	if err != nil {
		s.failure(w, err)
		return
	}
	if err := task.Start(); err != nil {
		s.failure(w, err)
		return
	}

	s.drafts.Add(1)
	go func() {
		defer s.drafts.Done()
		s.runDraft(id, section, doc, task)
	}()

	s.jsonResponse(w, http.StatusAccepted, newAssistResponse(id, section, task.Snapshot()))
}

// runDraft generates one section and records the outcome on task
func (s *Server) runDraft(id string, section assist.Section, doc types.RFP, task *assist.Task) {
	ctx, cancel := context.WithTimeout(context.Background(), s.assistTimeout)
	defer cancel()

	text, err := s.assistant.Draft(ctx, doc, section)
	if err == nil {
		_, _, err = s.store.Update(id, func(latest types.RFP) (types.RFP, error) {
			return assist.Apply(latest, section, text)
		})
		if err != nil {
			log.Printf("[assist] could not apply %s draft to %s: %v", section, id, err)
		}
	}
	task.Complete(text, err)
}

// handleGetAssist reports the draft state of a section
func (s *Server) handleGetAssist(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	section, err := assist.ParseSection(r.PathValue("section"))
	if err != nil {
		s.failure(w, err)
		return
	}
	task, err := s.store.Task(id, section)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, newAssistResponse(id, section, task.Snapshot()))
}
