// Package service implements the habit stack operations on top of a
// storage.Provider. Every operation runs in a single store transaction and
// takes the acting user's id explicitly.
package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitstack/internal/progress"
	"github.com/julianstephens/habitstack/internal/storage"
	"github.com/julianstephens/habitstack/internal/utils"
)

type Service struct {
	store    storage.Provider
	clock    utils.Clock
	detector progress.Detector
	newID    func() string
}

type Option func(*Service)

// WithDetector replaces the default multiple-of-five milestone rule.
func WithDetector(d progress.Detector) Option {
	return func(s *Service) { s.detector = d }
}

// WithIDGenerator replaces uuid generation for new records.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

func New(store storage.Provider, clock utils.Clock, opts ...Option) *Service {
	s := &Service{
		store:    store,
		clock:    clock,
		detector: progress.DefaultDetector(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) today() string {
	return utils.Today(s.clock)
}

func (s *Service) now() time.Time {
	return s.clock.Now()
}
