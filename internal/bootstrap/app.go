package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"mailpanel-backend/internal/account"
	googleauth "mailpanel-backend/internal/auth"
	"mailpanel-backend/internal/emailfiles"
	"mailpanel-backend/internal/entitlements"
	"mailpanel-backend/internal/shared/config"
	"mailpanel-backend/internal/shared/server"
	"mailpanel-backend/internal/shared/storage/db"
	"mailpanel-backend/internal/shared/storage/object"
	localstore "mailpanel-backend/internal/shared/storage/object/local"
	s3store "mailpanel-backend/internal/shared/storage/object/s3"
	"mailpanel-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	EmailFileRepo emailfiles.Repo
	LedgerRepo    entitlements.LedgerRepo
	UsersRepo     users.Repo

	EmailFileService    *emailfiles.Service
	EntitlementsService *entitlements.Service
	AccountService      *account.Service
	UsersService        *users.Service

	EmailFileHandler    *emailfiles.Handler
	EntitlementsHandler *entitlements.Handler
	AccountHandler      *account.Handler
	UsersHandler        *users.Handler
	GoogleAuth          *googleauth.GoogleService
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              app.Config,
		AccountHandler:      app.AccountHandler,
		EmailFileHandler:    app.EmailFileHandler,
		EntitlementsHandler: app.EntitlementsHandler,
		UserHandler:         app.UsersHandler,
		GoogleAuth:          app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			sqlDB.Close()
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	var fileRepo emailfiles.Repo
	var ledgerRepo entitlements.LedgerRepo
	var userRepo users.Repo

	if app.DB != nil {
		fileRepo = &emailfiles.PGRepo{DB: app.DB}
		ledgerRepo = &entitlements.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		fileRepo = emailfiles.NewMemoryRepo()
		ledgerRepo = entitlements.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	fileSvc := &emailfiles.Service{
		Store: app.Store,
		Repo:  fileRepo,
	}
	entitlementsSvc := entitlements.NewService(ledgerRepo)
	userSvc := users.NewService(userRepo)

	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)

	app.EmailFileRepo = fileRepo
	app.LedgerRepo = ledgerRepo
	app.UsersRepo = userRepo
	app.EmailFileService = fileSvc
	app.EntitlementsService = entitlementsSvc
	app.AccountService = account.NewService(fileRepo)
	app.UsersService = userSvc
	app.EmailFileHandler = emailfiles.NewHandler(fileSvc)
	app.EntitlementsHandler = entitlements.NewHandler(entitlementsSvc)
	app.AccountHandler = account.NewHandler(app.AccountService)
	app.UsersHandler = users.NewHandler(userSvc)
	app.GoogleAuth = googleAuthSvc
}
