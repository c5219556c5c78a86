package views

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/noah-isme/academy-console/internal/dashboard"
	"github.com/noah-isme/academy-console/internal/models"
)

// Layout selects between the wide table and the narrow card presentation.
// Both carry the same information.
type Layout string

const (
	LayoutTable Layout = "table"
	LayoutCards Layout = "cards"
)

// RenderStudents writes the student list in the chosen layout.
func RenderStudents(w io.Writer, layout Layout, students []models.Student, standards []models.Standard) {
	if layout == LayoutCards {
		for _, s := range students {
			fmt.Fprintf(w, "%s\n", s.Name)
			fmt.Fprintf(w, "  standard: %s\n", StandardName(s, standards))
			fmt.Fprintf(w, "  email: %s  phone: %s\n", s.Email, s.Phone)
			fmt.Fprintf(w, "  parent: %s (%s)\n\n", s.ParentName, s.ParentPhone)
		}
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTANDARD\tEMAIL\tPHONE\tPARENT")
	for _, s := range students {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.Name, StandardName(s, standards), s.Email, s.Phone, s.ParentName)
	}
	tw.Flush() //nolint:errcheck
}

// RenderStandards writes the standard list.
func RenderStandards(w io.Writer, standards []models.Standard) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLEVEL\tACTIVE\tSUBJECTS")
	for _, std := range standards {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%t\t%d\n",
			std.ID, std.Name, std.Level, std.IsActive, len(std.Subjects))
	}
	tw.Flush() //nolint:errcheck
}

// RenderSubjects writes the subject list.
func RenderSubjects(w io.Writer, subjects []models.Subject) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDURATION\tSTATUS")
	for _, sub := range subjects {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", sub.ID, sub.Name, sub.Duration, sub.Status)
	}
	tw.Flush() //nolint:errcheck
}

// RenderBatches writes the batch list with subject names resolved.
func RenderBatches(w io.Writer, batches []models.Batch, subjects []models.Subject) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSUBJECT\tDAYS\tTIME\tSTATUS")
	for _, b := range batches {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s-%s\t%s\n",
			b.ID, b.Name, SubjectName(b, subjects),
			strings.Join(b.Schedule.Days, ","), b.Schedule.StartTime, b.Schedule.EndTime, b.Status)
	}
	tw.Flush() //nolint:errcheck
}

// RenderTeachers writes the teacher list with subject names resolved.
func RenderTeachers(w io.Writer, teachers []models.Teacher, subjects []models.Subject) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tSUBJECTS")
	for _, t := range teachers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Name, t.Email, t.Phone, TeacherSubjects(t, subjects))
	}
	tw.Flush() //nolint:errcheck
}

// RenderAnnouncements writes the announcement list.
func RenderAnnouncements(w io.Writer, items []models.Announcement) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSTARTS")
	for _, a := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", a.ID, a.Title, a.StartTime.Format("2006-01-02 15:04"))
	}
	tw.Flush() //nolint:errcheck
}

// RenderSummary writes the dashboard summary, degrading by state.
func RenderSummary(w io.Writer, summary dashboard.Summary, countdown string) {
	switch summary.State {
	case dashboard.StateNoSession:
		fmt.Fprintln(w, "Please log in to view the dashboard.")
		return
	case dashboard.StateSessionExpired:
		fmt.Fprintln(w, "Session expired, please log in again.")
		return
	case dashboard.StateError:
		fmt.Fprintf(w, "! %s\n", summary.Message)
	}

	if countdown != "" {
		fmt.Fprintf(w, "Session: %s\n", countdown)
	}
	stats := summary.Stats
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Students\t%d\n", stats.TotalStudents)
	fmt.Fprintf(tw, "Teachers\t%d\n", stats.TotalTeachers)
	fmt.Fprintf(tw, "Standards\t%d\n", stats.TotalStandards)
	fmt.Fprintf(tw, "Subjects\t%d\n", stats.TotalSubjects)
	fmt.Fprintf(tw, "Batches\t%d (%d active)\n", stats.TotalBatches, stats.ActiveBatches)
	tw.Flush() //nolint:errcheck

	if len(summary.Upcoming) > 0 {
		fmt.Fprintln(w, "\nUpcoming announcements:")
		RenderAnnouncements(w, summary.Upcoming)
	}
}

// ConfirmDelete asks for explicit confirmation before a destructive action.
// Only "y" or "yes" proceeds.
func ConfirmDelete(r io.Reader, w io.Writer, label string) bool {
	fmt.Fprintf(w, "Delete %s? This cannot be undone. [y/N]: ", label)
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
