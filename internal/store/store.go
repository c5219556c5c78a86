package store

import (
	"go.uber.org/zap"

	"github.com/noah-isme/academy-console/internal/api"
	"github.com/noah-isme/academy-console/internal/models"
)

// Store aggregates the per-entity slices. Ownership is explicit: views get a
// *Store handed to them and read through the slice accessors, there is no
// ambient global state.
type Store struct {
	students      *Slice[models.Student]
	standards     *Slice[models.Standard]
	subjects      *Slice[models.Subject]
	batches       *Slice[models.Batch]
	announcements *Slice[models.Announcement]
	teachers      *Slice[models.Teacher]
}

// New wires one slice per resource client.
func New(client *api.Client, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		students:      NewSlice[models.Student]("students", client.Students(), logger),
		standards:     NewSlice[models.Standard]("standards", client.Standards(), logger),
		subjects:      NewSlice[models.Subject]("subjects", client.Subjects(), logger),
		batches:       NewSlice[models.Batch]("batches", client.Batches(), logger),
		announcements: NewSlice[models.Announcement]("announcements", client.Announcements(), logger),
		teachers:      NewSlice[models.Teacher]("teachers", client.Teachers(), logger),
	}
}

// Students returns the student slice.
func (s *Store) Students() *Slice[models.Student] { return s.students }

// Standards returns the standard slice.
func (s *Store) Standards() *Slice[models.Standard] { return s.standards }

// Subjects returns the subject slice.
func (s *Store) Subjects() *Slice[models.Subject] { return s.subjects }

// Batches returns the batch slice.
func (s *Store) Batches() *Slice[models.Batch] { return s.batches }

// Announcements returns the announcement slice.
func (s *Store) Announcements() *Slice[models.Announcement] { return s.announcements }

// Teachers returns the teacher slice.
func (s *Store) Teachers() *Slice[models.Teacher] { return s.teachers }
