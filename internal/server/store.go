package server

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/assist"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/types"
	"github.com/google/uuid"
)

// DocumentSummary is one entry of the document list
type DocumentSummary struct {
	ID          string    `json:"id"`
	ProjectName string    `json:"projectName"`
	CompanyName string    `json:"companyName"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type storedDocument struct {
	doc       types.RFP
	createdAt time.Time
	updatedAt time.Time
	tasks     map[assist.Section]*assist.Task
}

// Store keeps documents in memory for the lifetime of the process.
// Every edit goes through Update so concurrent requests never lose a change.
type Store struct {
	mu    sync.RWMutex
	docs  map[string]*storedDocument
	newID types.IDFunc
	now   func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		docs:  make(map[string]*storedDocument),
		newID: types.NewID,
		now:   time.Now,
	}
}

// Create stores doc under a fresh id
func (s *Store) Create(doc types.RFP) string {
	id := uuid.NewString()
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[id] = &storedDocument{
		doc:       doc.Normalize(),
		createdAt: now,
		updatedAt: now,
		tasks:     make(map[assist.Section]*assist.Task),
	}
	return id
}

// Get returns a copy of the document
func (s *Store) Get(id string) (types.RFP, time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.docs[id]
	if !ok {
		return types.RFP{}, time.Time{}, &ErrDocumentNotFound{ID: id}
	}
	return stored.doc, stored.updatedAt, nil
}

// Replace swaps the whole document, keeping its assist tasks
func (s *Store) Replace(id string, doc types.RFP) (time.Time, error) {
	_, updatedAt, err := s.Update(id, func(types.RFP) (types.RFP, error) {
		return doc.Normalize(), nil
	})
	return updatedAt, err
}

// Update applies edit to the latest version of the document. When edit fails
// the stored document is left as it was.
func (s *Store) Update(id string, edit func(types.RFP) (types.RFP, error)) (types.RFP, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.docs[id]
	if !ok {
		return types.RFP{}, time.Time{}, &ErrDocumentNotFound{ID: id}
	}

	next, err := edit(stored.doc)
	if err != nil {
		return stored.doc, stored.updatedAt, err
	}
	stored.doc = next
	stored.updatedAt = s.now()
	return stored.doc, stored.updatedAt, nil
}

// Delete removes the document
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return &ErrDocumentNotFound{ID: id}
	}
	delete(s.docs, id)
	return nil
}

// List returns summaries of every document, newest first
func (s *Store) List() []DocumentSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]DocumentSummary, 0, len(s.docs))
	for id, stored := range s.docs {
		summaries = append(summaries, DocumentSummary{
			ID:          id,
			ProjectName: stored.doc.ProjectName,
			CompanyName: stored.doc.CompanyName,
			UpdatedAt:   stored.updatedAt,
		})
	}
	slices.SortFunc(summaries, func(a, b DocumentSummary) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return summaries
}

// Task returns the assist task of one section of the document
func (s *Store) Task(id string, section assist.Section) (*assist.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.docs[id]
	if !ok {
		return nil, &ErrDocumentNotFound{ID: id}
	}
	task, ok := stored.tasks[section]
	if !ok {
		task = assist.NewTask()
		stored.tasks[section] = task
	}
	return task, nil
}

// NewRowID returns a fresh row id
func (s *Store) NewRowID() string {
	return s.newID()
}
