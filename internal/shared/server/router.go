package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mailpanel-backend/internal/account"
	googleauth "mailpanel-backend/internal/auth"
	"mailpanel-backend/internal/emailfiles"
	"mailpanel-backend/internal/entitlements"
	"mailpanel-backend/internal/shared/config"
	"mailpanel-backend/internal/shared/server/middleware"
	"mailpanel-backend/internal/shared/server/respond"
	"mailpanel-backend/internal/uploads"
	"mailpanel-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up. Nil handlers are
// skipped so tests can build partial routers.
type RouterDeps struct {
	Config              config.Config
	AccountHandler      *account.Handler
	EmailFileHandler    *emailfiles.Handler
	EntitlementsHandler *entitlements.Handler
	UserHandler         *users.Handler
	GoogleAuth          *googleauth.GoogleService
}

const uploadRateGroup = "UPLOAD"

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				uploadRateGroup: {Rate: 1, Burst: 10},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && strings.HasPrefix(c.FullPath(), "/api/v1/email-files") {
					return uploadRateGroup
				}
				return ""
			},
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.EmailFileHandler != nil {
		deps.EmailFileHandler.RegisterRoutes(api)
	}
	if deps.EntitlementsHandler != nil {
		deps.EntitlementsHandler.RegisterRoutes(api)
	}
	if deps.AccountHandler != nil {
		deps.AccountHandler.RegisterRoutes(api)
	}
	if deps.Config.ObjectStoreType == "s3" {
		uploads.RegisterRoutes(api)
	}

	if deps.Config.Env == "dev" && deps.EntitlementsHandler != nil {
		dev := api.Group("/dev")
		deps.EntitlementsHandler.RegisterDevRoutes(dev)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
