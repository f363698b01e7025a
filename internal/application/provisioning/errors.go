package provisioning

import (
	"errors"

	"github.com/society/backend/internal/domain/shared"
)

// Provisioning error codes. Messages are shown to callers as is.
const (
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeInvalidField           = "INVALID_FIELD"
	CodeMisconfiguredRecord    = "MISCONFIGURED_RECORD"
	CodeProvisioningInProgress = "PROVISIONING_IN_PROGRESS"
	CodeLookupFailed           = "LOOKUP_FAILED"
	CodeIdentityCreateFailed   = "IDENTITY_CREATE_FAILED"
	CodeProfileCreateFailed    = "PROFILE_CREATE_FAILED"
	CodeProfileUpdateFailed    = "PROFILE_UPDATE_FAILED"
)

var (
	ErrInvalidRequest = shared.NewDomainError(CodeInvalidRequest,
		"Missing required fields: email, fullName, societyId and memberData are required")
	ErrInvalidField        = shared.NewDomainError(CodeInvalidField, "Invalid member details")
	ErrMisconfiguredRecord = shared.NewDomainError(CodeMisconfiguredRecord,
		"Existing member profile is misconfigured: it has no linked user account. Please contact support")
	ErrProvisioningInProgress = shared.NewDomainError(CodeProvisioningInProgress,
		"Another request for this email is already being processed")
	ErrLookupFailed         = shared.NewDomainError(CodeLookupFailed, "Failed to look up existing member")
	ErrIdentityCreateFailed = shared.NewDomainError(CodeIdentityCreateFailed, "Failed to create user account")
	ErrProfileCreateFailed  = shared.NewDomainError(CodeProfileCreateFailed, "Failed to create member profile")
	ErrProfileUpdateFailed  = shared.NewDomainError(CodeProfileUpdateFailed, "Failed to update member profile")
)

// invalidField reports a rejected member field under CodeInvalidField,
// keeping the field's own message when it has one.
func invalidField(err error) *shared.DomainError {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return &shared.DomainError{Code: CodeInvalidField, Message: domainErr.Message, Cause: err}
	}
	return ErrInvalidField.WithCause(err)
}
