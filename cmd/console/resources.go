package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/noah-isme/academy-console/internal/forms"
	"github.com/noah-isme/academy-console/internal/models"
	"github.com/noah-isme/academy-console/internal/views"
	appErrors "github.com/noah-isme/academy-console/pkg/errors"
)

var errNoChanges = appErrors.Clone(appErrors.ErrValidation, "no changes to save")

func subcommand(args []string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, fmt.Errorf("expected one of: list, create, update, delete")
	}
	return args[0], args[1:], nil
}

func (a *app) students(ctx context.Context, args []string) error {
	action, rest, err := subcommand(args)
	if err != nil {
		return err
	}
	switch action {
	case "list":
		return a.listStudents(ctx, rest)
	case "create":
		return a.createStudent(ctx, rest)
	case "update":
		return a.updateStudent(ctx, rest)
	case "delete":
		return a.deleteStudent(ctx, rest)
	default:
		return fmt.Errorf("unknown students action %q", action)
	}
}

func (a *app) listStudents(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("students list", flag.ExitOnError)
	query := fs.String("query", "", "free-text filter on name, email, phone and parent")
	standardID := fs.String("standard", "", "filter by standard id")
	gender := fs.String("gender", "", "filter by gender")
	layout := fs.String("layout", "table", "layout: table or cards")
	fs.Parse(args) //nolint:errcheck

	if err := a.store.Students().List(ctx); err != nil {
		return err
	}
	if err := a.store.Standards().List(ctx); err != nil {
		return err
	}

	students := views.FilterStudents(a.store.Students().Snapshot().Items, views.StudentFilter{
		Query: *query, StandardID: *standardID, Gender: *gender,
	})
	views.RenderStudents(a.out, views.Layout(*layout), students, a.store.Standards().Snapshot().Items)
	return nil
}

func studentFlags(fs *flag.FlagSet, draft *forms.StudentDraft) *string {
	fs.StringVar(&draft.Name, "name", draft.Name, "full name")
	fs.StringVar(&draft.Email, "email", draft.Email, "email address")
	fs.StringVar(&draft.Phone, "phone", draft.Phone, "10-digit phone number")
	fs.StringVar(&draft.Address, "address", draft.Address, "address")
	fs.StringVar(&draft.Gender, "gender", draft.Gender, "male, female or other")
	fs.StringVar(&draft.DateOfBirth, "dob", draft.DateOfBirth, "date of birth")
	fs.StringVar(&draft.StandardID, "standard", draft.StandardID, "standard id")
	fs.StringVar(&draft.SchoolName, "school", draft.SchoolName, "school name")
	fs.StringVar(&draft.Board, "board", draft.Board, "school board")
	fs.StringVar(&draft.JoiningDate, "joined", draft.JoiningDate, "joining date")
	fs.StringVar(&draft.ParentName, "parent", draft.ParentName, "parent name")
	fs.StringVar(&draft.ParentPhone, "parent-phone", draft.ParentPhone, "parent phone")
	fs.StringVar(&draft.Password, "password", "", "account password")
	return fs.String("percentage", "", "previous class percentage")
}

func (a *app) createStudent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("students create", flag.ExitOnError)
	var draft forms.StudentDraft
	percentage := studentFlags(fs, &draft)
	batchIDs := fs.String("batches", "", "comma-separated batch ids")
	fs.Parse(args) //nolint:errcheck
	draft.BatchIDs = splitCSV(*batchIDs)

	if *percentage != "" {
		value, err := forms.ParsePercentage(*percentage)
		if err != nil {
			return err
		}
		draft.PreviousPercentage = value
	}

	if err := a.forms.Check("student", draft); err != nil {
		return err
	}
	created, err := a.store.Students().Create(ctx, draft.Payload())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created student %s (%s)\n", created.Name, created.ID)
	return nil
}

func (a *app) updateStudent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("students update", flag.ExitOnError)
	id := fs.String("id", "", "student id")
	var draft forms.StudentDraft
	percentage := studentFlags(fs, &draft)
	batchIDs := fs.String("batches", "", "comma-separated batch ids")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "id is required")
	}

	existing, err := a.client.Students().Get(ctx, *id)
	if err != nil {
		return err
	}
	baseline := forms.DraftFromStudent(*existing)

	merged := baseline
	set := setFlags(fs)
	overlayStudent(&merged, draft, set)
	if set["batches"] {
		merged.BatchIDs = splitCSV(*batchIDs)
	}
	if set["percentage"] {
		value, perr := forms.ParsePercentage(*percentage)
		if perr != nil {
			return perr
		}
		merged.PreviousPercentage = value
	}

	if forms.Unchanged(baseline, merged) {
		return errNoChanges
	}
	if err := a.forms.Check("student", merged); err != nil {
		return err
	}
	updated, err := a.store.Students().Update(ctx, *id, merged.Payload())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated student %s\n", updated.Name)
	return nil
}

func overlayStudent(dst *forms.StudentDraft, src forms.StudentDraft, set map[string]bool) {
	if set["name"] {
		dst.Name = src.Name
	}
	if set["email"] {
		dst.Email = src.Email
	}
	if set["phone"] {
		dst.Phone = src.Phone
	}
	if set["address"] {
		dst.Address = src.Address
	}
	if set["gender"] {
		dst.Gender = src.Gender
	}
	if set["dob"] {
		dst.DateOfBirth = src.DateOfBirth
	}
	if set["standard"] {
		dst.StandardID = src.StandardID
	}
	if set["school"] {
		dst.SchoolName = src.SchoolName
	}
	if set["board"] {
		dst.Board = src.Board
	}
	if set["joined"] {
		dst.JoiningDate = src.JoiningDate
	}
	if set["parent"] {
		dst.ParentName = src.ParentName
	}
	if set["parent-phone"] {
		dst.ParentPhone = src.ParentPhone
	}
	if set["password"] {
		dst.Password = src.Password
	}
}

func (a *app) deleteStudent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("students delete", flag.ExitOnError)
	id := fs.String("id", "", "student id")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	fs.Parse(args) //nolint:errcheck
	if *id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "id is required")
	}

	existing, err := a.client.Students().Get(ctx, *id)
	if err != nil {
		return err
	}
	if !a.confirm(fmt.Sprintf("student %s", existing.Name), *yes) {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	if err := a.store.Students().Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted student %s\n", existing.Name)
	return nil
}

func (a *app) standards(ctx context.Context, args []string) error {
	action, rest, err := subcommand(args)
	if err != nil {
		return err
	}
	switch action {
	case "list":
		if err := a.store.Standards().List(ctx); err != nil {
			return err
		}
		views.RenderStandards(a.out, a.store.Standards().Snapshot().Items)
		return nil
	case "create":
		return a.createStandard(ctx, rest)
	case "update":
		return a.updateStandard(ctx, rest)
	case "delete":
		return a.deleteResource(ctx, rest, "standard",
			func(id string) (string, error) {
				std, err := a.client.Standards().Get(ctx, id)
				if err != nil {
					return "", err
				}
				return std.Name, nil
			},
			a.store.Standards().Delete)
	default:
		return fmt.Errorf("unknown standards action %q", action)
	}
}

func standardFlags(fs *flag.FlagSet, draft *forms.StandardDraft) (level, subjects *string) {
	fs.StringVar(&draft.Name, "name", draft.Name, "display name")
	fs.StringVar(&draft.Description, "description", draft.Description, "description")
	fs.BoolVar(&draft.IsActive, "active", draft.IsActive, "whether the standard is active")
	level = fs.String("level", "", "grade level, 1 to 12")
	subjects = fs.String("subjects", "", "comma-separated subject ids")
	return level, subjects
}

func (a *app) createStandard(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("standards create", flag.ExitOnError)
	draft := forms.StandardDraft{IsActive: true}
	level, subjects := standardFlags(fs, &draft)
	fs.Parse(args) //nolint:errcheck

	parsed, err := forms.ParseLevel(*level)
	if err != nil {
		return err
	}
	draft.Level = parsed
	draft.SubjectIDs = splitCSV(*subjects)

	if err := a.forms.Check("standard", draft); err != nil {
		return err
	}
	created, err := a.store.Standards().Create(ctx, draft.Payload())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created standard %s (%s)\n", created.Name, created.ID)
	return nil
}

func (a *app) updateStandard(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("standards update", flag.ExitOnError)
	id := fs.String("id", "", "standard id")
	var draft forms.StandardDraft
	level, subjects := standardFlags(fs, &draft)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "id is required")
	}

	existing, err := a.client.Standards().Get(ctx, *id)
	if err != nil {
		return err
	}
	baseline := forms.DraftFromStandard(*existing)

	merged := baseline
	set := setFlags(fs)
	if set["name"] {
		merged.Name = draft.Name
	}
	if set["description"] {
		merged.Description = draft.Description
	}
	if set["active"] {
		merged.IsActive = draft.IsActive
	}
	if set["level"] {
		parsed, perr := forms.ParseLevel(*level)
		if perr != nil {
			return perr
		}
		merged.Level = parsed
	}
	if set["subjects"] {
		merged.SubjectIDs = splitCSV(*subjects)
	}

	if forms.Unchanged(baseline, merged) {
		return errNoChanges
	}
	if err := a.forms.Check("standard", merged); err != nil {
		return err
	}
	updated, err := a.store.Standards().Update(ctx, *id, merged.Payload())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated standard %s\n", updated.Name)
	return nil
}

func (a *app) subjects(ctx context.Context, args []string) error {
	action, rest, err := subcommand(args)
	if err != nil {
		return err
	}
	switch action {
	case "list":
		if err := a.store.Subjects().List(ctx); err != nil {
			return err
		}
		views.RenderSubjects(a.out, a.store.Subjects().Snapshot().Items)
		return nil
	case "create", "update":
		return a.upsertSubject(ctx, action, rest)
	case "delete":
		return a.deleteResource(ctx, rest, "subject",
			func(id string) (string, error) {
				sub, err := a.client.Subjects().Get(ctx, id)
				if err != nil {
					return "", err
				}
				return sub.Name, nil
			},
			a.store.Subjects().Delete)
	default:
		return fmt.Errorf("unknown subjects action %q", action)
	}
}

func (a *app) upsertSubject(ctx context.Context, action string, args []string) error {
	fs := flag.NewFlagSet("subjects "+action, flag.ExitOnError)
	id := fs.String("id", "", "subject id (update only)")
	var draft forms.SubjectDraft
	fs.StringVar(&draft.Name, "name", "", "subject name")
	fs.StringVar(&draft.Duration, "duration", "", "course duration")
	fs.StringVar(&draft.Status, "status", "", "active or inactive")
	fs.StringVar(&draft.Description, "description", "", "description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if action == "create" {
		if err := a.forms.Check("subject", draft); err != nil {
			return err
		}
		created, err := a.store.Subjects().Create(ctx, draft.Payload())
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Created subject %s (%s)\n", created.Name, created.ID)
		return nil
	}

	if *id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	existing, err := a.client.Subjects().Get(ctx, *id)
	if err != nil {
		return err
	}
	baseline := forms.SubjectDraft{
		Name:        existing.Name,
		Duration:    existing.Duration,
		Status:      existing.Status,
		Description: existing.Description,
	}
	merged := baseline
	set := setFlags(fs)
	if set["name"] {
		merged.Name = draft.Name
	}
	if set["duration"] {
		merged.Duration = draft.Duration
	}
	if set["status"] {
		merged.Status = draft.Status
	}
	if set["description"] {
		merged.Description = draft.Description
	}

	if forms.Unchanged(baseline, merged) {
		return errNoChanges
	}
	if err := a.forms.Check("subject", merged); err != nil {
		return err
	}
	updated, err := a.store.Subjects().Update(ctx, *id, merged.Payload())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated subject %s\n", updated.Name)
	return nil
}

func (a *app) batches(ctx context.Context, args []string) error {
	action, rest, err := subcommand(args)
	if err != nil {
		return err
	}
	switch action {
	case "list":
		if err := a.store.Batches().List(ctx); err != nil {
			return err
		}
		if err := a.store.Subjects().List(ctx); err != nil {
			return err
		}
		views.RenderBatches(a.out, a.store.Batches().Snapshot().Items, a.store.Subjects().Snapshot().Items)
		return nil
	case "create", "update":
		return a.upsertBatch(ctx, action, rest)
	case "delete":
		return a.deleteResource(ctx, rest, "batch",
			func(id string) (string, error) {
				b, err := a.client.Batches().Get(ctx, id)
				if err != nil {
					return "", err
				}
				return b.Name, nil
			},
			a.store.Batches().Delete)
	default:
		return fmt.Errorf("unknown batches action %q", action)
	}
}

func (a *app) upsertBatch(ctx context.Context, action string, args []string) error {
	fs := flag.NewFlagSet("batches "+action, flag.ExitOnError)
	id := fs.String("id", "", "batch id (update only)")
	var draft forms.BatchDraft
	fs.StringVar(&draft.Name, "name", "", "batch name")
	fs.StringVar(&draft.SubjectID, "subject", "", "subject id")
	fs.StringVar(&draft.StartTime, "start", "", "start time, HH:MM")
	fs.StringVar(&draft.EndTime, "end", "", "end time, HH:MM")
	fs.StringVar(&draft.Status, "status", "", "active, upcoming or completed")
	days := fs.String("days", "", "comma-separated weekdays")
	if err := fs.Parse(args); err != nil {
		return err
	}
	draft.Days = splitCSV(*days)

	if action == "create" {
		if err := a.forms.Check("batch", draft); err != nil {
			return err
		}
		created, err := a.store.Batches().Create(ctx, draft.Payload())
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Created batch %s (%s)\n", created.Name, created.ID)
		return nil
	}

	if *id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	existing, err := a.client.Batches().Get(ctx, *id)
	if err != nil {
		return err
	}
	baseline := forms.BatchDraft{
		Name:      existing.Name,
		SubjectID: existing.Subject.ID,
		Days:      existing.Schedule.Days,
		StartTime: existing.Schedule.StartTime,
		EndTime:   existing.Schedule.EndTime,
		Status:    string(existing.Status),
	}
	merged := baseline
	set := setFlags(fs)
	if set["name"] {
		merged.Name = draft.Name
	}
	if set["subject"] {
		merged.SubjectID = draft.SubjectID
	}
	if set["start"] {
		merged.StartTime = draft.StartTime
	}
	if set["end"] {
		merged.EndTime = draft.EndTime
	}
	if set["status"] {
		merged.Status = draft.Status
	}
	if set["days"] {
		merged.Days = draft.Days
	}

	if forms.Unchanged(baseline, merged) {
		return errNoChanges
	}
	if err := a.forms.Check("batch", merged); err != nil {
		return err
	}
	updated, err := a.store.Batches().Update(ctx, *id, merged.Payload())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated batch %s\n", updated.Name)
	return nil
}

func (a *app) announcements(ctx context.Context, args []string) error {
	action, rest, err := subcommand(args)
	if err != nil {
		return err
	}
	switch action {
	case "list":
		if err := a.store.Announcements().List(ctx); err != nil {
			return err
		}
		views.RenderAnnouncements(a.out, a.store.Announcements().Snapshot().Items)
		return nil
	case "create", "update":
		return a.upsertAnnouncement(ctx, action, rest)
	case "delete":
		return a.deleteResource(ctx, rest, "announcement",
			func(id string) (string, error) {
				item, err := a.client.Announcements().Get(ctx, id)
				if err != nil {
					return "", err
				}
				return item.Title, nil
			},
			a.store.Announcements().Delete)
	default:
		return fmt.Errorf("unknown announcements action %q", action)
	}
}

func parseStartTime(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, appErrors.Clone(appErrors.ErrValidation,
		"start time must look like 2026-08-28 15:04 or RFC3339")
}

func (a *app) upsertAnnouncement(ctx context.Context, action string, args []string) error {
	fs := flag.NewFlagSet("announcements "+action, flag.ExitOnError)
	id := fs.String("id", "", "announcement id (update only)")
	var draft forms.AnnouncementDraft
	fs.StringVar(&draft.Title, "title", "", "title")
	fs.StringVar(&draft.Content, "content", "", "body text")
	start := fs.String("start", "", "start time")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if action == "create" {
		startTime, perr := parseStartTime(*start)
		if perr != nil {
			return perr
		}
		draft.StartTime = startTime
		if err := a.forms.Check("announcement", draft); err != nil {
			return err
		}
		created, err := a.store.Announcements().Create(ctx, draft.Payload())
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Created announcement %s (%s)\n", created.Title, created.ID)
		return nil
	}

	if *id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	existing, err := a.client.Announcements().Get(ctx, *id)
	if err != nil {
		return err
	}
	baseline := forms.AnnouncementDraft{
		Title:     existing.Title,
		Content:   existing.Content,
		StartTime: existing.StartTime,
	}
	merged := baseline
	set := setFlags(fs)
	if set["title"] {
		merged.Title = draft.Title
	}
	if set["content"] {
		merged.Content = draft.Content
	}
	if set["start"] {
		startTime, perr := parseStartTime(*start)
		if perr != nil {
			return perr
		}
		merged.StartTime = startTime
	}

	if forms.Unchanged(baseline, merged) {
		return errNoChanges
	}
	if err := a.forms.Check("announcement", merged); err != nil {
		return err
	}
	updated, err := a.store.Announcements().Update(ctx, *id, merged.Payload())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated announcement %s\n", updated.Title)
	return nil
}

func (a *app) teachers(ctx context.Context, args []string) error {
	action, rest, err := subcommand(args)
	if err != nil {
		return err
	}
	switch action {
	case "list":
		if err := a.store.Teachers().List(ctx); err != nil {
			return err
		}
		if err := a.store.Subjects().List(ctx); err != nil {
			return err
		}
		views.RenderTeachers(a.out, a.store.Teachers().Snapshot().Items, a.store.Subjects().Snapshot().Items)
		return nil
	case "create", "update":
		return a.upsertTeacher(ctx, action, rest)
	case "delete":
		return a.deleteResource(ctx, rest, "teacher",
			func(id string) (string, error) {
				t, err := a.client.Teachers().Get(ctx, id)
				if err != nil {
					return "", err
				}
				return t.Name, nil
			},
			a.store.Teachers().Delete)
	default:
		return fmt.Errorf("unknown teachers action %q", action)
	}
}

func (a *app) upsertTeacher(ctx context.Context, action string, args []string) error {
	fs := flag.NewFlagSet("teachers "+action, flag.ExitOnError)
	id := fs.String("id", "", "teacher id (update only)")
	var draft forms.TeacherDraft
	fs.StringVar(&draft.Name, "name", "", "full name")
	fs.StringVar(&draft.Email, "email", "", "email address")
	fs.StringVar(&draft.Phone, "phone", "", "10-digit phone number")
	fs.StringVar(&draft.Qualification, "qualification", "", "qualification")
	subjects := fs.String("subjects", "", "comma-separated subject ids")
	if err := fs.Parse(args); err != nil {
		return err
	}
	draft.SubjectIDs = splitCSV(*subjects)

	if action == "create" {
		if err := a.forms.Check("teacher", draft); err != nil {
			return err
		}
		created, err := a.store.Teachers().Create(ctx, draft.Payload())
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Created teacher %s (%s)\n", created.Name, created.ID)
		return nil
	}

	if *id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	existing, err := a.client.Teachers().Get(ctx, *id)
	if err != nil {
		return err
	}
	baseline := forms.TeacherDraft{
		Name:          existing.Name,
		Email:         existing.Email,
		Phone:         existing.Phone,
		Qualification: existing.Qualification,
		SubjectIDs:    models.RefIDs(existing.Subjects),
	}
	merged := baseline
	set := setFlags(fs)
	if set["name"] {
		merged.Name = draft.Name
	}
	if set["email"] {
		merged.Email = draft.Email
	}
	if set["phone"] {
		merged.Phone = draft.Phone
	}
	if set["qualification"] {
		merged.Qualification = draft.Qualification
	}
	if set["subjects"] {
		merged.SubjectIDs = draft.SubjectIDs
	}

	if forms.Unchanged(baseline, merged) {
		return errNoChanges
	}
	if err := a.forms.Check("teacher", merged); err != nil {
		return err
	}
	updated, err := a.store.Teachers().Update(ctx, *id, merged.Payload())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated teacher %s\n", updated.Name)
	return nil
}

// deleteResource shares the confirm-then-delete flow for resources without
// extra ceremony.
func (a *app) deleteResource(ctx context.Context, args []string, kind string,
	name func(id string) (string, error), del func(context.Context, string) error) error {
	fs := flag.NewFlagSet(kind+" delete", flag.ExitOnError)
	id := fs.String("id", "", kind+" id")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	fs.Parse(args) //nolint:errcheck
	if *id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "id is required")
	}

	label, err := name(*id)
	if err != nil {
		return err
	}
	if !a.confirm(fmt.Sprintf("%s %s", kind, label), *yes) {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	if err := del(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s %s\n", kind, label)
	return nil
}
