package forms

import (
	"time"

	"github.com/noah-isme/academy-console/internal/models"
)

// StudentDraft is the validated form state behind the student create/edit
// screens.
type StudentDraft struct {
	Name               string   `validate:"required"`
	Email              string   `validate:"required,email"`
	Phone              string   `validate:"required,numeric,len=10"`
	Address            string   `validate:"omitempty"`
	Gender             string   `validate:"required,oneof=male female other"`
	DateOfBirth        string   `validate:"omitempty"`
	StandardID         string   `validate:"required"`
	BatchIDs           []string `validate:"omitempty"`
	SchoolName         string   `validate:"omitempty"`
	Board              string   `validate:"omitempty"`
	PreviousPercentage float64  `validate:"gte=0,lte=100"`
	JoiningDate        string   `validate:"omitempty"`
	ParentName         string   `validate:"required"`
	ParentPhone        string   `validate:"omitempty,numeric,len=10"`
	Password           string   `validate:"omitempty,min=6"`
}

// Payload builds the wire entity. A blank password stays omitted so an update
// never overwrites a stored credential with empty.
func (d StudentDraft) Payload() models.Student {
	batches := make([]models.Ref[models.Batch], 0, len(d.BatchIDs))
	for _, id := range d.BatchIDs {
		batches = append(batches, models.RefTo[models.Batch](id))
	}
	return models.Student{
		Name:               d.Name,
		Email:              d.Email,
		Phone:              d.Phone,
		Address:            d.Address,
		Gender:             d.Gender,
		DateOfBirth:        d.DateOfBirth,
		Standard:           models.RefTo[models.Standard](d.StandardID),
		Batches:            batches,
		SchoolName:         d.SchoolName,
		Board:              d.Board,
		PreviousPercentage: d.PreviousPercentage,
		JoiningDate:        d.JoiningDate,
		ParentName:         d.ParentName,
		ParentPhone:        d.ParentPhone,
		Password:           d.Password,
	}
}

// DraftFromStudent builds the edit-mode baseline from a loaded record. The
// password never round-trips.
func DraftFromStudent(s models.Student) StudentDraft {
	return StudentDraft{
		Name:               s.Name,
		Email:              s.Email,
		Phone:              s.Phone,
		Address:            s.Address,
		Gender:             s.Gender,
		DateOfBirth:        s.DateOfBirth,
		StandardID:         s.Standard.ID,
		BatchIDs:           models.RefIDs(s.Batches),
		SchoolName:         s.SchoolName,
		Board:              s.Board,
		PreviousPercentage: s.PreviousPercentage,
		JoiningDate:        s.JoiningDate,
		ParentName:         s.ParentName,
		ParentPhone:        s.ParentPhone,
	}
}

// StandardDraft backs the standard create/edit screens. Level is a whole
// number between 1 and 12 inclusive.
type StandardDraft struct {
	Name        string   `validate:"required"`
	Level       int      `validate:"min=1,max=12"`
	Description string   `validate:"omitempty"`
	IsActive    bool     `validate:"omitempty"`
	SubjectIDs  []string `validate:"omitempty"`
}

// Payload builds the wire entity.
func (d StandardDraft) Payload() models.Standard {
	subjects := make([]models.Ref[models.Subject], 0, len(d.SubjectIDs))
	for _, id := range d.SubjectIDs {
		subjects = append(subjects, models.RefTo[models.Subject](id))
	}
	return models.Standard{
		Name:        d.Name,
		Level:       d.Level,
		Description: d.Description,
		IsActive:    d.IsActive,
		Subjects:    subjects,
	}
}

// DraftFromStandard builds the edit-mode baseline.
func DraftFromStandard(s models.Standard) StandardDraft {
	return StandardDraft{
		Name:        s.Name,
		Level:       s.Level,
		Description: s.Description,
		IsActive:    s.IsActive,
		SubjectIDs:  models.RefIDs(s.Subjects),
	}
}

// SubjectDraft backs the subject create/edit screens.
type SubjectDraft struct {
	Name        string `validate:"required"`
	Duration    string `validate:"omitempty"`
	Status      string `validate:"omitempty,oneof=active inactive"`
	Description string `validate:"omitempty"`
}

// Payload builds the wire entity.
func (d SubjectDraft) Payload() models.Subject {
	return models.Subject{
		Name:        d.Name,
		Duration:    d.Duration,
		Status:      d.Status,
		Description: d.Description,
	}
}

// BatchDraft backs the batch create/edit screens. Times are "HH:MM".
type BatchDraft struct {
	Name      string   `validate:"required"`
	SubjectID string   `validate:"required"`
	Days      []string `validate:"required,min=1,dive,required"`
	StartTime string   `validate:"required,hhmm"`
	EndTime   string   `validate:"required,hhmm"`
	Status    string   `validate:"omitempty,oneof=active upcoming completed"`
}

// Payload builds the wire entity.
func (d BatchDraft) Payload() models.Batch {
	return models.Batch{
		Name:    d.Name,
		Subject: models.RefTo[models.Subject](d.SubjectID),
		Schedule: models.BatchSchedule{
			Days:      d.Days,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		},
		Status: models.BatchStatus(d.Status),
	}
}

// AnnouncementDraft backs the announcement create/edit screens.
type AnnouncementDraft struct {
	Title     string    `validate:"required"`
	Content   string    `validate:"required"`
	StartTime time.Time `validate:"required"`
}

// Payload builds the wire entity.
func (d AnnouncementDraft) Payload() models.Announcement {
	return models.Announcement{
		Title:     d.Title,
		Content:   d.Content,
		StartTime: d.StartTime,
	}
}

// TeacherDraft backs the teacher create/edit screens.
type TeacherDraft struct {
	Name          string   `validate:"required"`
	Email         string   `validate:"required,email"`
	Phone         string   `validate:"omitempty,numeric,len=10"`
	Qualification string   `validate:"omitempty"`
	SubjectIDs    []string `validate:"omitempty"`
}

// Payload builds the wire entity.
func (d TeacherDraft) Payload() models.Teacher {
	subjects := make([]models.Ref[models.Subject], 0, len(d.SubjectIDs))
	for _, id := range d.SubjectIDs {
		subjects = append(subjects, models.RefTo[models.Subject](id))
	}
	return models.Teacher{
		Name:          d.Name,
		Email:         d.Email,
		Phone:         d.Phone,
		Qualification: d.Qualification,
		Subjects:      subjects,
	}
}
