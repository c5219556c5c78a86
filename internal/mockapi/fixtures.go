package mockapi

import (
	"time"

	"github.com/noah-isme/academy-console/internal/models"
)

// seed loads a small but representative dataset. References deliberately mix
// bare ids and embedded objects so clients exercise both shapes.
func (s *Server) seed() {
	now := time.Now()

	maths := models.Subject{ID: "sub1", Name: "Mathematics", Duration: "12 months", Status: "active"}
	science := models.Subject{ID: "sub2", Name: "Science", Duration: "12 months", Status: "active"}

	s.subjects = newCollection(true, func(sub models.Subject, id string) models.Subject {
		sub.ID = id
		return sub
	}, maths, science)

	s.standards = newCollection(false, func(std models.Standard, id string) models.Standard {
		std.ID = id
		return std
	},
		models.Standard{
			ID: "std1", Name: "Grade 5", Level: 5, IsActive: true,
			Subjects: []models.Ref[models.Subject]{
				models.RefTo[models.Subject]("sub1"),
				{ID: science.ID, Entity: &science},
			},
		},
		models.Standard{
			ID: "std2", Name: "Grade 6", Level: 6, IsActive: true,
			Subjects: []models.Ref[models.Subject]{models.RefTo[models.Subject]("sub1")},
		},
	)

	s.batches = newCollection(false, func(b models.Batch, id string) models.Batch {
		b.ID = id
		return b
	},
		models.Batch{
			ID: "b1", Name: "Morning Maths", Subject: models.RefTo[models.Subject]("sub1"),
			Schedule: models.BatchSchedule{Days: []string{"monday", "wednesday"}, StartTime: "09:00", EndTime: "10:30"},
			Status:   models.BatchStatusActive,
		},
		models.Batch{
			ID: "b2", Name: "Evening Science", Subject: models.Ref[models.Subject]{ID: science.ID, Entity: &science},
			Schedule: models.BatchSchedule{Days: []string{"tuesday", "thursday"}, StartTime: "17:00", EndTime: "18:30"},
			Status:   models.BatchStatusUpcoming,
		},
	)

	s.students = newCollection(true, func(st models.Student, id string) models.Student {
		st.ID = id
		st.Password = ""
		return st
	},
		models.Student{
			ID: "s1", Name: "Ann Walker", Email: "ann@example.com", Phone: "9876543210",
			Gender: "female", Standard: models.RefTo[models.Standard]("std1"),
			Batches:    []models.Ref[models.Batch]{models.RefTo[models.Batch]("b1")},
			ParentName: "Bea Walker", ParentPhone: "9876500000",
			SchoolName: "City School", Board: "CBSE", PreviousPercentage: 82.5,
		},
		models.Student{
			ID: "s2", Name: "Ben Cole", Email: "ben@example.com", Phone: "9000000000",
			Gender: "male", Standard: models.RefTo[models.Standard]("std2"),
			ParentName: "Cara Cole",
		},
	)

	s.announcements = newCollection(true, func(a models.Announcement, id string) models.Announcement {
		a.ID = id
		return a
	},
		models.Announcement{ID: "a1", Title: "Results published", Content: "Term results are out.", StartTime: now.Add(-48 * time.Hour)},
		models.Announcement{ID: "a2", Title: "Parent meeting", Content: "Quarterly parent meeting.", StartTime: now.Add(24 * time.Hour)},
		models.Announcement{ID: "a3", Title: "Science fair", Content: "Annual science fair.", StartTime: now.Add(72 * time.Hour)},
	)

	s.teachers = newCollection(false, func(t models.Teacher, id string) models.Teacher {
		t.ID = id
		return t
	},
		models.Teacher{
			ID: "t1", Name: "Dana Iyer", Email: "dana@academy.local", Phone: "9123456789",
			Qualification: "MSc Mathematics",
			Subjects:      []models.Ref[models.Subject]{models.RefTo[models.Subject]("sub1")},
		},
	)
}
