package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/academy-console/internal/api"
	"github.com/noah-isme/academy-console/internal/dashboard"
	"github.com/noah-isme/academy-console/internal/forms"
	"github.com/noah-isme/academy-console/internal/models"
	"github.com/noah-isme/academy-console/internal/session"
	"github.com/noah-isme/academy-console/internal/store"
	"github.com/noah-isme/academy-console/internal/views"
	"github.com/noah-isme/academy-console/pkg/config"
	appErrors "github.com/noah-isme/academy-console/pkg/errors"
	"github.com/noah-isme/academy-console/pkg/export"
	"github.com/noah-isme/academy-console/pkg/logger"
	"github.com/noah-isme/academy-console/pkg/metrics"
)

const usageText = `academy-console <command> [flags]

Commands:
  login         log in and store the session token
  logout        clear the stored session token
  session       show the session countdown (-watch for live updates)
  dashboard     show the summary (-watch to keep polling)
  export        export the student roster (-format csv|pdf|xlsx)
  students      list | create | update | delete
  standards     list | create | update | delete
  subjects      list | create | update | delete
  batches       list | create | update | delete
  announcements list | create | update | delete
  teachers      list | create | update | delete
`

// app carries the wired dependencies every command needs. Ownership is
// explicit: commands receive the store and client from here, nothing is
// package-global.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	tokens *session.FileTokenStore
	client *api.Client
	store  *store.Store
	forms  *forms.Validator

	in  io.Reader
	out io.Writer
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", appErrors.UserMessage(err))
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	tokens := session.NewFileTokenStore(cfg.Session.CredentialsFile)
	client := api.NewClient(api.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Tokens:  tokens,
		Logger:  logr,
		Metrics: metrics.New(),
	})

	a := &app{
		cfg:    cfg,
		logger: logr,
		tokens: tokens,
		client: client,
		store:  store.New(client, logr),
		forms:  forms.NewValidator(),
		in:     os.Stdin,
		out:    os.Stdout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command, rest := args[0], args[1:]
	switch command {
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.logout()
	case "session":
		return a.session(ctx, rest)
	case "dashboard":
		return a.dashboard(ctx, rest)
	case "export":
		return a.exportRoster(ctx, rest)
	case "students":
		return a.students(ctx, rest)
	case "standards":
		return a.standards(ctx, rest)
	case "subjects":
		return a.subjects(ctx, rest)
	case "batches":
		return a.batches(ctx, rest)
	case "announcements":
		return a.announcements(ctx, rest)
	case "teachers":
		return a.teachers(ctx, rest)
	default:
		fmt.Fprint(os.Stderr, usageText)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted when omitted)")
	fs.Parse(args) //nolint:errcheck

	if *email == "" {
		return appErrors.Clone(appErrors.ErrValidation, "email is required")
	}
	if *password == "" {
		fmt.Fprint(a.out, "Password: ")
		scanner := bufio.NewScanner(a.in)
		if scanner.Scan() {
			*password = strings.TrimSpace(scanner.Text())
		}
	}

	resp, err := a.client.Auth().Login(ctx, models.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	if err := a.tokens.Save(resp.Token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}

	fmt.Fprintf(a.out, "Logged in as %s. Session: %s\n",
		resp.User.Name, session.Display(resp.Token, time.Now()))
	return nil
}

func (a *app) logout() error {
	if err := a.tokens.Clear(); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *app) session(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("session", flag.ExitOnError)
	watch := fs.Bool("watch", false, "refresh the countdown every second")
	cookie := fs.String("cookie", "", "read the token from a raw Cookie header instead of the credentials file")
	fs.Parse(args) //nolint:errcheck

	var source api.TokenSource = a.tokens
	if *cookie != "" {
		source = session.CookieTokenSource{Header: *cookie, Name: a.cfg.Session.CookieName}
	}

	if !*watch {
		display := session.Display(source.Token(), time.Now())
		if display != session.NoSessionText && *cookie == "" {
			if user, err := a.client.Auth().Profile(ctx); err == nil {
				fmt.Fprintf(a.out, "Logged in as %s (%s)\n", user.Name, user.Email)
			}
		}
		fmt.Fprintln(a.out, display)
		return nil
	}

	watcher := session.NewWatcher(source.Token, func(text string) {
		fmt.Fprintf(a.out, "\r%-24s", text)
	})
	watcher.Start(ctx)
	<-ctx.Done()
	watcher.Stop()
	fmt.Fprintln(a.out)
	return nil
}

func (a *app) dashboard(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	watch := fs.Bool("watch", false, "keep polling on the configured interval")
	fs.Parse(args) //nolint:errcheck

	agg := dashboard.NewAggregator(dashboard.AggregatorParams{
		Stats:         a.client.Dashboard(),
		Announcements: a.client.Announcements(),
		Tokens:        a.tokens,
		Logger:        a.logger,
		UpcomingLimit: a.cfg.Dashboard.UpcomingLimit,
	})

	render := func(summary dashboard.Summary) {
		countdown := ""
		if summary.State == dashboard.StateOK || summary.State == dashboard.StateError {
			countdown = session.Display(a.tokens.Token(), time.Now())
		}
		fmt.Fprintf(a.out, "-- %s --\n", summary.FetchedAt.Format("15:04:05"))
		views.RenderSummary(a.out, summary, countdown)
		fmt.Fprintln(a.out)
	}

	if !*watch {
		render(agg.Refresh(ctx))
		return nil
	}

	poller := dashboard.NewPoller(agg, a.cfg.Dashboard.RefreshInterval, render, a.logger)
	poller.Start(ctx)
	<-ctx.Done()
	poller.Stop()
	return nil
}

func (a *app) exportRoster(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", "csv", "output format: csv, pdf or xlsx")
	query := fs.String("query", "", "free-text filter before export")
	standardID := fs.String("standard", "", "filter by standard id")
	gender := fs.String("gender", "", "filter by gender")
	outDir := fs.String("dir", a.cfg.Export.Dir, "output directory")
	fs.Parse(args) //nolint:errcheck

	renderer, ok := export.ByFormat(*format)
	if !ok {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", *format))
	}

	students, err := a.client.Students().List(ctx)
	if err != nil {
		return err
	}
	standards, err := a.client.Standards().List(ctx)
	if err != nil {
		return err
	}
	batches, err := a.client.Batches().List(ctx)
	if err != nil {
		return err
	}

	filtered := views.FilterStudents(students, views.StudentFilter{
		Query: *query, StandardID: *standardID, Gender: *gender,
	})
	data, err := renderer.Render(views.RosterDataset(filtered, standards, batches))
	if err != nil {
		return fmt.Errorf("render roster: %w", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	name := fmt.Sprintf("students-%s.%s", time.Now().Format("20060102-150405"), renderer.Extension())
	path := filepath.Join(*outDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	fmt.Fprintf(a.out, "Exported %d students to %s\n", len(filtered), path)
	return nil
}

// splitCSV turns a comma-separated flag value into a trimmed list.
func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// setFlags reports which flags were explicitly passed, so update commands
// only override the fields the operator touched.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func (a *app) confirm(label string, yes bool) bool {
	if yes {
		return true
	}
	return views.ConfirmDelete(a.in, a.out, label)
}
