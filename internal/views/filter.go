package views

import (
	"strings"

	"github.com/noah-isme/academy-console/internal/models"
)

// StudentFilter is the client-side filter state of the student list view.
type StudentFilter struct {
	Query      string
	StandardID string
	Gender     string
}

// FilterStudents applies free-text and categorical filters. The text query
// matches name, email, phone and parent name, case-insensitively.
func FilterStudents(students []models.Student, filter StudentFilter) []models.Student {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]models.Student, 0, len(students))
	for _, s := range students {
		if filter.StandardID != "" && s.Standard.ID != filter.StandardID {
			continue
		}
		if filter.Gender != "" && !strings.EqualFold(s.Gender, filter.Gender) {
			continue
		}
		if query != "" && !matchesQuery(s, query) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func matchesQuery(s models.Student, query string) bool {
	for _, field := range []string{s.Name, s.Email, s.Phone, s.ParentName} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// StandardName resolves a student's standard reference to its display name,
// regardless of which shape the reference arrived in.
func StandardName(s models.Student, standards []models.Standard) string {
	if std := s.Standard.Resolve(standards); std != nil {
		return std.Name
	}
	return "-"
}

// SubjectName resolves a batch's subject reference to its display name.
func SubjectName(b models.Batch, subjects []models.Subject) string {
	if sub := b.Subject.Resolve(subjects); sub != nil {
		return sub.Name
	}
	return "-"
}

// TeacherSubjects resolves a teacher's subject references to a comma-joined
// display string.
func TeacherSubjects(t models.Teacher, subjects []models.Subject) string {
	names := make([]string, 0, len(t.Subjects))
	for _, ref := range t.Subjects {
		if sub := ref.Resolve(subjects); sub != nil {
			names = append(names, sub.Name)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}

// BatchNames resolves a student's batch references to a comma-joined display
// string.
func BatchNames(s models.Student, batches []models.Batch) string {
	names := make([]string, 0, len(s.Batches))
	for _, ref := range s.Batches {
		if b := ref.Resolve(batches); b != nil {
			names = append(names, b.Name)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
