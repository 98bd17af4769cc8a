package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"projectboard/internal/api"
	"projectboard/internal/auth"
	clientconfig "projectboard/internal/client/config"
	"projectboard/internal/model"
	"projectboard/internal/notify"
	"projectboard/internal/projects"
	"projectboard/internal/session"
	"projectboard/pkg/logger"
	pkgredis "projectboard/pkg/redis"
)

const usage = `usage: client <command> [flags]

commands:
  login    -email -password    authenticate against the backend
  logout                       drop the local session
  whoami                       show the current session
  list                         list projects with their tasks
  add      -name [-description] [-tasks t1,t2]
  edit     -id [-name] [-description] [-tasks t1:status,t2]
  delete   -id
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := clientconfig.Load()

	logger := logger.NewDevelopmentLogger()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := newStore(cfg, logger)
	client := api.NewClient(cfg.API.BaseURL, store, logger)
	notifier := notify.NewLogNotifier(logger)
	authn := auth.NewAuthenticator(ctx, client, store, notifier, logger)
	manager := projects.NewManager(client, notifier, logger)

	if err := run(ctx, os.Args[1], os.Args[2:], authn, manager); err != nil {
		os.Exit(1)
	}
}

func newStore(cfg *clientconfig.Config, logger *zap.Logger) session.Store {
	if cfg.Session.Backend == "redis" {
		return session.NewRedisStore(pkgredis.NewRedisClient(cfg.Redis), logger)
	}

	path := cfg.Session.Path
	if path == "" {
		p, err := session.DefaultPath()
		if err != nil {
			logger.Fatal("Cannot resolve session path", zap.Error(err))
		}
		path = p
	}
	return session.NewFileStore(path, logger)
}

func run(ctx context.Context, command string, args []string, authn *auth.Authenticator, manager *projects.Manager) error {
	switch command {
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		fs.Parse(args)
		return authn.Login(ctx, *email, *password)

	case "logout":
		authn.Logout(ctx)
		return nil

	case "whoami":
		if !authn.IsAuthenticated() {
			fmt.Println("not logged in")
			return nil
		}
		if u := authn.User(); u != nil {
			fmt.Printf("%s <%s> milestone=%s\n", u.Name, u.Email, u.Milestone)
		} else {
			fmt.Println("logged in (no profile available)")
		}
		return nil

	case "list":
		if err := manager.Fetch(ctx); err != nil {
			return err
		}
		printProjects(manager.Projects())
		return nil

	case "add":
		fs := flag.NewFlagSet("add", flag.ExitOnError)
		name := fs.String("name", "", "project name")
		description := fs.String("description", "", "project description")
		tasks := fs.String("tasks", "", "comma-separated tasks, title[:status]")
		fs.Parse(args)

		manager.Add()
		draft := manager.Selected()
		draft.Name = *name
		draft.Description = *description
		draft.Tasks = parseTasks(*tasks)
		return manager.Save(ctx, *draft)

	case "edit":
		fs := flag.NewFlagSet("edit", flag.ExitOnError)
		id := fs.Int("id", 0, "project id")
		name := fs.String("name", "", "project name")
		description := fs.String("description", "", "project description")
		tasks := fs.String("tasks", "", "comma-separated tasks, title[:status]")
		fs.Parse(args)

		if err := manager.Fetch(ctx); err != nil {
			return err
		}
		var found *model.Project
		for _, p := range manager.Projects() {
			if p.ID == *id {
				candidate := p
				found = &candidate
				break
			}
		}
		if found == nil {
			fmt.Fprintf(os.Stderr, "no project with id %d\n", *id)
			return fmt.Errorf("no project with id %d", *id)
		}

		manager.Edit(*found)
		edited := manager.Selected()
		if *name != "" {
			edited.Name = *name
		}
		if *description != "" {
			edited.Description = *description
		}
		if *tasks != "" {
			edited.Tasks = parseTasks(*tasks)
		}
		return manager.Save(ctx, *edited)

	case "delete":
		fs := flag.NewFlagSet("delete", flag.ExitOnError)
		id := fs.Int("id", 0, "project id")
		fs.Parse(args)

		if err := manager.Fetch(ctx); err != nil {
			return err
		}
		return manager.Delete(ctx, *id)

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func printProjects(list []model.Project) {
	if len(list) == 0 {
		fmt.Println("no projects")
		return
	}
	for _, p := range list {
		fmt.Printf("#%d %s", p.ID, p.Name)
		if p.Description != "" {
			fmt.Printf(" - %s", p.Description)
		}
		fmt.Println()
		for _, t := range p.Tasks {
			fmt.Printf("    [%s] %s\n", t.Status, t.Title)
		}
	}
}

func parseTasks(raw string) []model.Task {
	if raw == "" {
		return []model.Task{}
	}
	parts := strings.Split(raw, ",")
	tasks := make([]model.Task, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		title, status, ok := strings.Cut(part, ":")
		t := model.Task{Title: title, Status: model.TaskPending}
		if ok {
			t.Status = model.TaskStatus(status)
		}
		tasks = append(tasks, t)
	}
	return tasks
}
