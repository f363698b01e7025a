package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/society/backend/internal/application/provisioning"
	"github.com/society/backend/internal/domain/onboarding"
	"github.com/society/backend/internal/domain/shared"
	"github.com/society/backend/internal/interfaces/http/dto"
)

// Function response headers
const (
	functionAllowOrigin  = "*"
	functionAllowHeaders = "authorization, x-client-info, apikey, content-type"
	functionAllowMethods = "POST, OPTIONS"
)

// Fixed function error messages
const (
	msgMethodNotAllowed = "Method not allowed"
	msgMisconfigured    = "Server misconfigured"
	msgInvalidBody      = "Invalid JSON body"
	msgBodyTooLarge     = "Request body too large"
	msgInternal         = "Internal server error"
)

// Provisioner creates or refreshes a member
type Provisioner interface {
	Provision(ctx context.Context, in provisioning.ProvisionInput) (*onboarding.ProvisioningResult, error)
}

// ProvisioningHandler serves the provision-member function. It answers with
// bare {error} bodies rather than the API envelope.
type ProvisioningHandler struct {
	service    Provisioner
	configured bool
	logger     *zap.Logger
}

// NewProvisioningHandler creates the function handler. When configured is
// false every POST fails closed with 500.
func NewProvisioningHandler(service Provisioner, configured bool, logger *zap.Logger) *ProvisioningHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProvisioningHandler{service: service, configured: configured, logger: logger}
}

// Handle godoc
// @ID           provisionMember
// @Summary      Provision a society member
// @Description  Creates the sign-in identity and profile for a new email, or refreshes the profile of a known one.
// @Tags         provisioning
// @Accept       json
// @Produce      json
// @Param        request body provisioning.ProvisionInput true "Member to provision"
// @Success      200 {object} onboarding.ProvisioningResult
// @Failure      400 {object} dto.FunctionError
// @Failure      405 {object} dto.FunctionError
// @Failure      409 {object} dto.FunctionError
// @Failure      413 {object} dto.FunctionError
// @Failure      500 {object} dto.FunctionError
// @Router       /functions/v1/provision-member [post]
func (h *ProvisioningHandler) Handle(c *gin.Context) {
	header := c.Writer.Header()
	header.Set("Access-Control-Allow-Origin", functionAllowOrigin)
	header.Set("Access-Control-Allow-Headers", functionAllowHeaders)
	header.Set("Access-Control-Allow-Methods", functionAllowMethods)

	switch c.Request.Method {
	case http.MethodOptions:
		c.String(http.StatusOK, "ok")
		return
	case http.MethodPost:
	default:
		h.fail(c, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	if !h.configured || h.service == nil {
		h.logger.Error("Provisioning function called without platform credentials")
		h.fail(c, http.StatusInternalServerError, msgMisconfigured)
		return
	}

	var in provisioning.ProvisionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(c, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		h.fail(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	result, err := h.service.Provision(c.Request.Context(), in)
	if err != nil {
		status, message := functionError(err)
		if status >= http.StatusInternalServerError {
			_ = c.Error(err)
		}
		h.fail(c, status, message)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ProvisioningHandler) fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.FunctionError{Error: message})
}

// functionError maps a provisioning error to its status and caller message
func functionError(err error) (int, string) {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError, msgInternal
	}
	switch domainErr.Code {
	case provisioning.CodeInvalidRequest, provisioning.CodeInvalidField, provisioning.CodeMisconfiguredRecord:
		return http.StatusBadRequest, domainErr.Message
	case provisioning.CodeProvisioningInProgress:
		return http.StatusConflict, domainErr.Message
	default:
		return http.StatusInternalServerError, domainErr.Message
	}
}
