package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/society/backend/internal/infrastructure/storage"
	"github.com/society/backend/internal/interfaces/http/dto"
	"github.com/society/backend/internal/interfaces/http/middleware"
)

// DocumentConfig holds document upload settings
type DocumentConfig struct {
	KeyPrefix   string
	URLExpiry   time.Duration
	MaxFileSize int64
}

// DocumentHandler issues presigned upload URLs for the Documents step
type DocumentHandler struct {
	BaseHandler
	storage storage.DocumentStorage
	cfg     DocumentConfig
	logger  *zap.Logger
}

// NewDocumentHandler creates a DocumentHandler. A nil store answers 503.
func NewDocumentHandler(store storage.DocumentStorage, cfg DocumentConfig, logger *zap.Logger) *DocumentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentHandler{storage: store, cfg: cfg, logger: logger}
}

// UploadURLRequest asks for an upload URL
// @Description Document upload URL request
type UploadURLRequest struct {
	Kind        string `json:"kind" binding:"required" example:"id_proof"`
	FileName    string `json:"file_name" binding:"required,max=255" example:"aadhaar.pdf"`
	ContentType string `json:"content_type" binding:"required" example:"application/pdf"`
	Size        int64  `json:"size" binding:"required,gt=0" example:"204800"`
	SocietyID   string `json:"society_id,omitempty" example:"soc-1"`
}

// UploadURLResponse is a presigned PUT target
// @Description Presigned document upload target
type UploadURLResponse struct {
	UploadURL string            `json:"upload_url"`
	Method    string            `json:"method" example:"PUT"`
	Headers   map[string]string `json:"headers"`
	ObjectKey string            `json:"object_key" example:"onboarding/soc-1/id_proof/3f1c...-aadhaar.pdf"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// CreateUploadURL godoc
// @ID           createDocumentUploadURL
// @Summary      Create a document upload URL
// @Description  Returns a presigned PUT URL for an onboarding document. The society comes from the request or the caller's session.
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        request body UploadURLRequest true "Document to upload"
// @Success      201 {object} APIResponse[UploadURLResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/onboarding/documents/upload-url [post]
func (h *DocumentHandler) CreateUploadURL(c *gin.Context) {
	if h.storage == nil {
		h.Fail(c, dto.ErrCodeServiceUnavailable, "Document storage is not configured")
		return
	}

	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	societyID := strings.TrimSpace(req.SocietyID)
	if societyID == "" {
		societyID = middleware.GetSession(c).CurrentSocietyID
	}
	if societyID == "" {
		h.Fail(c, dto.ErrCodeBadRequest, "No society selected")
		return
	}
	if !storage.IsAllowedContentType(req.ContentType) {
		h.Fail(c, dto.ErrCodeUnsupportedDocument, "Only PDF, JPEG, PNG and WebP files can be uploaded")
		return
	}
	if h.cfg.MaxFileSize > 0 && req.Size > h.cfg.MaxFileSize {
		h.Fail(c, dto.ErrCodeUnsupportedDocument, "File is too large")
		return
	}

	key, err := storage.DocumentKey(h.cfg.KeyPrefix, societyID, req.Kind, req.FileName)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUnknownDocumentKind):
			h.Fail(c, dto.ErrCodeUnsupportedDocument, "Unknown document kind")
		default:
			h.Fail(c, dto.ErrCodeBadRequest, "Invalid file name")
		}
		return
	}

	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	url, expiresAt, err := h.storage.GenerateUploadURL(c.Request.Context(), key, contentType, h.cfg.URLExpiry)
	if err != nil {
		h.logger.Error("Failed to presign document upload", zap.String("key", key), zap.Error(err))
		h.Fail(c, dto.ErrCodeInternal, "Failed to create upload URL")
		return
	}

	h.Created(c, UploadURLResponse{
		UploadURL: url,
		Method:    http.MethodPut,
		Headers:   map[string]string{"Content-Type": contentType},
		ObjectKey: key,
		ExpiresAt: expiresAt,
	})
}
