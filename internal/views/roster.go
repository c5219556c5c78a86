package views

import (
	"fmt"

	"github.com/noah-isme/academy-console/internal/models"
	"github.com/noah-isme/academy-console/pkg/export"
)

// RosterDataset flattens the (already filtered) student list into an
// exportable table with standard and batch references resolved.
func RosterDataset(students []models.Student, standards []models.Standard, batches []models.Batch) export.Dataset {
	rows := make([][]string, 0, len(students))
	for _, s := range students {
		rows = append(rows, []string{
			s.Name,
			StandardName(s, standards),
			BatchNames(s, batches),
			s.Email,
			s.Phone,
			s.ParentName,
			s.ParentPhone,
			fmt.Sprintf("%.1f", s.PreviousPercentage),
		})
	}
	return export.Dataset{
		Title:   "Students",
		Headers: []string{"Name", "Standard", "Batches", "Email", "Phone", "Parent", "Parent Phone", "Prev %"},
		Rows:    rows,
	}
}
