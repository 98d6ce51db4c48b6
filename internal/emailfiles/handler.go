package emailfiles

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mailpanel-backend/internal/shared/server/middleware"
	"mailpanel-backend/internal/shared/server/respond"
	"mailpanel-backend/internal/shared/telemetry"
)

// multipart encoding adds boundary and header overhead on top of the file
// body itself.
const maxRequestBytes = MaxUploadBytes + 64<<10

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches email file routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/email-files", h.upload)
	rg.POST("/email-files/from-s3", h.registerFromS3)
	rg.GET("/email-files", h.list)
	rg.GET("/email-files/:id/content", h.content)
	rg.GET("/email-files/:id/download", h.download)
	rg.GET("/email-files/:id/preview", h.preview)
	rg.DELETE("/email-files/:id", h.delete)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No file provided", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	declaredMIME := fileHeader.Header.Get("Content-Type")
	f, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, declaredMIME, fileHeader.Size, file)
	if err != nil {
		writeUploadError(c, err)
		return
	}

	c.Set("fileId", f.ID)
	respond.JSON(c, http.StatusCreated, gin.H{
		"success":  true,
		"message":  "File uploaded successfully",
		"fileId":   f.ID,
		"filename": f.Filename,
	})
}

type registerFromS3Request struct {
	S3Key            string `json:"s3Key"`
	OriginalFileName string `json:"originalFileName"`
	ContentType      string `json:"contentType"`
	SizeBytes        int64  `json:"sizeBytes"`
}

func (h *Handler) registerFromS3(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req registerFromS3Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	req.S3Key = strings.TrimSpace(req.S3Key)
	req.OriginalFileName = strings.TrimSpace(req.OriginalFileName)
	req.ContentType = strings.TrimSpace(req.ContentType)

	f, err := h.Svc.RegisterStored(c.Request.Context(), userID, req.OriginalFileName, req.ContentType, req.S3Key, req.SizeBytes)
	if err != nil {
		writeUploadError(c, err)
		return
	}

	c.Set("fileId", f.ID)
	respond.JSON(c, http.StatusCreated, gin.H{
		"success":  true,
		"message":  "File registered successfully",
		"fileId":   f.ID,
		"filename": f.Filename,
	})
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	files, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to retrieve files", nil)
		}
		return
	}

	resp := make([]EmailFileResponse, 0, len(files))
	for _, f := range files {
		resp = append(resp, toResponse(f))
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"message": "Email files retrieved successfully",
		"files":   resp,
	})
}

func (h *Handler) content(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	fileID := c.Param("id")

	f, rc, err := h.Svc.OpenContent(c.Request.Context(), userID, fileID)
	if err != nil {
		writeResolveError(c, err)
		return
	}
	defer rc.Close()

	c.Set("fileId", f.ID)
	contentType := "text/plain; charset=utf-8"
	if f.FileType == "html" {
		contentType = "text/html; charset=utf-8"
	}
	c.DataFromReader(http.StatusOK, f.SizeBytes, contentType, rc, nil)
}

func (h *Handler) download(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	fileID := c.Param("id")

	f, rc, err := h.Svc.OpenContent(c.Request.Context(), userID, fileID)
	if err != nil {
		writeResolveError(c, err)
		return
	}
	defer rc.Close()

	c.Set("fileId", f.ID)
	headers := map[string]string{
		// Display name only; the physical key never leaves the store.
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", f.Filename),
	}
	c.DataFromReader(http.StatusOK, f.SizeBytes, "application/octet-stream", rc, headers)
}

func (h *Handler) preview(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	fileID := c.Param("id")

	f, err := h.Svc.Resolve(c.Request.Context(), userID, fileID)
	if err != nil {
		writeResolveError(c, err)
		return
	}

	c.Set("fileId", f.ID)
	resp := gin.H{"file": toResponse(f)}

	if f.FileType == "eml" {
		_, rc, err := h.Svc.OpenContent(c.Request.Context(), userID, fileID)
		if err == nil {
			defer rc.Close()
			if preview, perr := ParseEMLPreview(rc); perr == nil {
				resp["preview"] = preview
			} else {
				telemetry.Warn("emailfiles.preview_parse_failed", map[string]any{
					"file_id": f.ID,
					"err":     perr.Error(),
				})
			}
		}
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	fileID := c.Param("id")

	if err := h.Svc.Delete(c.Request.Context(), userID, fileID); err != nil {
		writeResolveError(c, err)
		return
	}

	c.Set("fileId", fileID)
	respond.JSON(c, http.StatusOK, gin.H{
		"success": true,
		"message": "File deleted successfully",
	})
}

func writeUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidType):
		respond.Error(c, http.StatusBadRequest, "invalid_file_type", "Invalid file type. Only .eml and .html files are allowed.", nil)
	case errors.Is(err, ErrTooLarge):
		respond.Error(c, http.StatusBadRequest, "file_too_large", "File too large. Maximum file size is 10MB.", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to upload file", nil)
	}
}

func writeResolveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "File not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to access file", nil)
	}
}
