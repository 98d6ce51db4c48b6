package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mailpanel-backend/internal/shared/server/middleware"
	"mailpanel-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
}

func (h *Handler) me(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)

	// Guests have no stored profile; echo the identity from the header.
	if middleware.IsGuest(c) {
		respond.JSON(c, http.StatusOK, gin.H{"id": userID, "isGuest": true})
		return
	}

	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// The profile row can lag the first login; the token claims
			// carry enough identity to answer.
			if email := middleware.UserEmailFromContext(c); email != "" {
				respond.JSON(c, http.StatusOK, gin.H{
					"id":         userID,
					"email":      email,
					"fullName":   middleware.UserNameFromContext(c),
					"pictureUrl": middleware.UserPictureFromContext(c),
				})
				return
			}
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"fullName":   user.FullName,
		"pictureUrl": user.PictureURL,
	})
}
