package services

import (
	"sync"

	"assessment-prediction-api/dataset"
	"assessment-prediction-api/regression"
)

// ModelState holds the live model, encoder, and summary behind a read lock.
// Predictions read a consistent triple while a reload swaps all three in one
// step; until the first successful reload the state is empty.
type ModelState struct {
	mu      sync.RWMutex
	model   *regression.Model
	encoder *regression.Encoder
	summary *dataset.Summary
}

func NewModelState() *ModelState { return &ModelState{} }

// Set atomically replaces the model, encoder, and summary.
func (s *ModelState) Set(model *regression.Model, encoder *regression.Encoder, summary dataset.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = model
	s.encoder = encoder
	s.summary = &summary
}

// Get returns the current model and encoder. ok is false until the first
// successful reload.
func (s *ModelState) Get() (*regression.Model, *regression.Encoder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.model == nil || s.encoder == nil {
		return nil, nil, false
	}
	return s.model, s.encoder, true
}

// Summary returns the dataset summary of the last successful reload.
func (s *ModelState) Summary() (dataset.Summary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.summary == nil {
		return dataset.Summary{}, false
	}
	return *s.summary, true
}

// Loaded reports whether a model is available to serve predictions.
func (s *ModelState) Loaded() bool {
	_, _, ok := s.Get()
	return ok
}
