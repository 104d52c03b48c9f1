package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"stafftrack/internal/database"
	"stafftrack/internal/env"
	"stafftrack/internal/memstore"
	"stafftrack/internal/service"
	"stafftrack/internal/token"
	"stafftrack/internal/version"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	err := run(logger)
	if err != nil {
		trace := string(debug.Stack())
		logger.Error(err.Error(), "trace", trace)
		os.Exit(1)
	}
}

type config struct {
	httpHost string
	httpPort int
	db       struct {
		dsn         string
		automigrate bool
	}
	repository string
	jwt        struct {
		secret string
		ttl    time.Duration
	}
	admin struct {
		name     string
		email    string
		password string
	}
}

type application struct {
	config config
	logger *slog.Logger
	wg     sync.WaitGroup

	tokens     *token.Issuer
	identity   *service.Identity
	tasks      *service.Tasks
	attendance *service.Attendance
	analytics  *service.Analytics
}

func run(logger *slog.Logger) error {
	cfgFile := flag.String("cfg", "", "path to an env-format config file")
	showVersion := flag.Bool("version", false, "display version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("version: %s\n", version.Get())
		return nil
	}

	if *cfgFile != "" {
		err := env.Load(*cfgFile)
		if err != nil {
			return err
		}
	}

	var cfg config

	cfg.httpHost = env.GetString("HTTP_HOST", "localhost")
	cfg.httpPort = env.GetInt("HTTP_PORT", 8080)
	cfg.db.dsn = env.GetString("DB_DSN", "postgres:postgres@localhost:5432/postgres")
	cfg.db.automigrate = env.GetBool("DB_AUTOMIGRATE", true)
	cfg.repository = env.GetString("REPOSITORY", "postgres")
	cfg.jwt.secret = env.GetString("JWT_SECRET", "")
	cfg.jwt.ttl = env.GetDuration("JWT_TTL", 30*24*time.Hour)
	cfg.admin.name = env.GetString("ADMIN_NAME", "Administrator")
	cfg.admin.email = env.GetString("ADMIN_EMAIL", "")
	cfg.admin.password = env.GetString("ADMIN_PASSWORD", "")

	if cfg.jwt.secret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}

	var (
		users   service.UserRepository
		tasks   service.TaskRepository
		records service.AttendanceRepository
	)

	switch cfg.repository {
	case "memory":
		store := memstore.New()
		users, tasks, records = store.Users(), store.Tasks(), store.Attendance()
	default:
		db, err := database.New(cfg.db.dsn, cfg.db.automigrate)
		if err != nil {
			return err
		}
		defer db.Close()

		users = database.NewUserDAO(logger, db)
		tasks = database.NewTaskDAO(logger, db)
		records = database.NewAttendanceDAO(logger, db)
	}

	app := &application{
		config: cfg,
		logger: logger,
		tokens: token.NewIssuer(cfg.jwt.secret, cfg.jwt.ttl),
	}

	app.identity = service.NewIdentity(logger, users, app.tokens)
	app.tasks = service.NewTasks(logger, tasks, users, records)
	app.attendance = service.NewAttendance(logger, records, tasks, users)
	app.analytics = service.NewAnalytics(logger, records, users)

	if cfg.admin.email != "" && cfg.admin.password != "" {
		err := app.identity.EnsureAdmin(context.Background(), cfg.admin.name, cfg.admin.email, cfg.admin.password)
		if err != nil {
			return err
		}
	}

	return app.serveHTTP()
}
