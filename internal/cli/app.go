package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/agsavn/foodwatch/internal/apiclient"
	"github.com/agsavn/foodwatch/internal/auth"
	"github.com/agsavn/foodwatch/internal/config"
	"github.com/agsavn/foodwatch/internal/kv"
	"github.com/agsavn/foodwatch/internal/logging"
	"github.com/agsavn/foodwatch/internal/password"
	"github.com/agsavn/foodwatch/internal/session"
	"github.com/agsavn/foodwatch/internal/user"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// App wires the configured backends together and carries the state the
// REPL command handlers need.
type App struct {
	config  *config.Config
	session *session.Manager
	store   user.Store
	log     logging.Logger
	reader  *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := kv.InitDatabase(ctx, cfg.LocalDBPath)
	if err != nil {
		log.Error(ctx, "error initializing local database", "error", err)
		return nil, err
	}

	repo := kv.NewSQLiteRepository(db)
	tokens := session.NewTokenKeeper(repo)

	app := &App{config: cfg, log: log, reader: bufio.NewReader(os.Stdin)}

	var svc auth.Service
	if cfg.Mode == config.ModeRemote {
		svc = auth.NewRemoteService(apiclient.New(cfg.APIBaseURL), log)
	} else {
		store, hasher, err := newUserStore(ctx, cfg, repo)
		if err != nil {
			return nil, err
		}
		app.store = store
		svc = auth.NewLocalService(store, hasher, log)
	}

	app.session = session.NewManager(svc, tokens, log)
	app.session.Init(ctx)

	return app, nil
}

// newUserStore picks the system of record for demo mode: the kv-backed
// store by default, Postgres when a DSN is configured. The demo store keeps
// the reversible demo hash so seeded records stay readable; the database
// store gets real argon2id hashing.
func newUserStore(ctx context.Context, cfg *config.Config, repo kv.Repository) (user.Store, password.Hasher, error) {
	if cfg.DatabaseDSN == "" {
		return user.NewLocalStore(repo, password.DemoHasher{}), password.DemoHasher{}, nil
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("opening user database: %w", err)
	}
	if err := user.RunPostgresMigrations(ctx, db); err != nil {
		return nil, nil, err
	}
	return user.NewPostgresStore(db), password.Argon2Hasher{}, nil
}

func (a *App) Run(ctx context.Context) {
	fmt.Println("FoodWatch CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	u := a.session.User()
	return u != nil && u.Role == user.RoleAdmin
}

// status renders the prompt fragment: "guest" or "email (role)".
func (a *App) status() string {
	u := a.session.User()
	if u == nil {
		return "guest"
	}
	return fmt.Sprintf("%s (%s)", u.Email, u.Role)
}
