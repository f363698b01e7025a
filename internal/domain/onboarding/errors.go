package onboarding

import (
	"strings"
)

// FieldError attaches a message to a draft field. Path narrows it to a
// list element such as "nominees[1].percentage".
type FieldError struct {
	Field   Field  `json:"field"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationErrors is an ordered list of field errors, first invalid field first
type ValidationErrors []FieldError

// Error implements the error interface
func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Path+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// First returns the first error, or nil
func (e ValidationErrors) First() *FieldError {
	if len(e) == 0 {
		return nil
	}
	return &e[0]
}

// For returns the errors attached to field
func (e ValidationErrors) For(field Field) []FieldError {
	var out []FieldError
	for _, fe := range e {
		if fe.Field == field {
			out = append(out, fe)
		}
	}
	return out
}

// Has reports whether field has at least one error
func (e ValidationErrors) Has(field Field) bool {
	return len(e.For(field)) > 0
}

// ConfigurationError reports a setup problem that blocks submission before
// any network call, such as no resolvable society.
type ConfigurationError struct {
	Reason string
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}
