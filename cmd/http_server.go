package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jalvarado/incident-management/internal"
	"github.com/jalvarado/incident-management/internal/auth"
	authPostgres "github.com/jalvarado/incident-management/internal/auth/postgres"
	"github.com/jalvarado/incident-management/internal/category"
	categoryPostgres "github.com/jalvarado/incident-management/internal/category/postgres"
	"github.com/jalvarado/incident-management/internal/comment"
	commentPostgres "github.com/jalvarado/incident-management/internal/comment/postgres"
	"github.com/jalvarado/incident-management/internal/incident"
	incidentPostgres "github.com/jalvarado/incident-management/internal/incident/postgres"
	"github.com/jalvarado/incident-management/internal/permissions"
	permissionsPostgres "github.com/jalvarado/incident-management/internal/permissions/postgres"
	"github.com/jalvarado/incident-management/internal/status"
	statusPostgres "github.com/jalvarado/incident-management/internal/status/postgres"
	"github.com/jalvarado/incident-management/internal/transport"
	"github.com/jalvarado/incident-management/internal/transport/rest"
	"github.com/jalvarado/incident-management/internal/user"
	userPostgres "github.com/jalvarado/incident-management/internal/user/postgres"
	"github.com/jalvarado/incident-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	registerModules(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

// registerModules wires repositories, services and handlers, then mounts
// every route on the router.
func registerModules(deps *Dependencies) {
	lg := deps.Logger
	baseHandler := transport.NewBaseHandler(lg)

	tokenGen := &auth.JWTTokenGenerator{
		Secret:          []byte(deps.Config.Security.JWTSecret),
		RefreshSecret:   []byte(deps.Config.Security.RefreshTokenSecret),
		AccessTokenTTL:  deps.Config.Security.AccessTokenDuration,
		RefreshTokenTTL: deps.Config.Security.RefreshTokenDuration,
	}
	authRepo := authPostgres.NewAuthRepository(deps.GormDB)
	authService := auth.NewService(authRepo, tokenGen, deps.Config.Security.BCryptCost, lg)
	authHandler := auth.NewHandler(authService, lg)

	userRepo := userPostgres.NewUserRepository(deps.GormDB)
	userService := user.NewService(userRepo, authService, lg)
	userHandler := user.NewHandler(baseHandler, userService)

	incidentRepo := incidentPostgres.NewIncidentRepository(deps.GormDB)
	incidentService := incident.NewService(incidentRepo, lg)
	incidentHandler := incident.NewHandler(baseHandler, incidentService)

	commentRepo := commentPostgres.NewCommentRepository(deps.GormDB)
	commentService := comment.NewService(commentRepo, lg)
	commentHandler := comment.NewHandler(baseHandler, commentService)

	categoryRepo := categoryPostgres.NewCategoryRepository(deps.GormDB)
	categoryService := category.NewService(categoryRepo, lg)
	categoryHandler := category.NewHandler(baseHandler, categoryService)

	statusRepo := statusPostgres.NewStatusRepository(deps.GormDB)
	statusService := status.NewService(statusRepo, lg)
	statusHandler := status.NewHandler(baseHandler, statusService)

	permissionRepo := permissionsPostgres.NewPermissionRepository(deps.GormDB)
	permissionService := permissions.NewService(permissionRepo, lg)
	permissionHandler := permissions.NewHandler(baseHandler, permissionService)

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, rest.Handlers{
		Auth:       authHandler,
		User:       userHandler,
		Incident:   incidentHandler,
		Comment:    commentHandler,
		Category:   categoryHandler,
		Status:     statusHandler,
		Permission: permissionHandler,
	}, lg)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.L(),
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB opens and verifies the database connection pool.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
