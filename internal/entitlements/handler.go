package entitlements

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mailpanel-backend/internal/shared/server/middleware"
	"mailpanel-backend/internal/shared/server/respond"
)

// Handler exposes entitlement endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches entitlement routes to the router group. Both
// endpoints evaluate the same predicate; only the response key differs, for
// compatibility with the two dashboard callers.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/entitlements/premium-access", h.check("hasPremiumAccess"))
	rg.GET("/entitlements/subscription", h.check("hasActiveSubscription"))
}

// RegisterDevRoutes attaches dev-only ledger seeding.
func (h *Handler) RegisterDevRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments", h.grant)
}

func (h *Handler) check(responseKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserIDFromContext(c)

		has, err := h.Svc.HasPremiumAccess(c.Request.Context(), userID)
		if err != nil {
			// No ledger detail leaves the server.
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
			return
		}

		respond.JSON(c, http.StatusOK, gin.H{responseKey: has})
	}
}

type grantRequest struct {
	Type      string     `json:"type"`
	Status    string     `json:"status"`
	PeriodEnd *time.Time `json:"periodEnd"`
}

func (h *Handler) grant(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req grantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	p, err := h.Svc.GrantForDev(c.Request.Context(), Payment{
		UserID:    userID,
		Type:      req.Type,
		Status:    req.Status,
		PeriodEnd: req.PeriodEnd,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "type and status are required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to grant payment", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, p)
}
