// Package onboarding drives the five-step member onboarding wizard from an
// empty draft to a provisioned member.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/society/backend/internal/domain/onboarding"
)

// Wizard errors
var (
	ErrNotOnReviewStep  = errors.New("submit is only available on the review step")
	ErrSubmitInProgress = errors.New("a submission is already in progress")
	ErrStepOutOfRange   = errors.New("step out of range")
)

const genericFailureMessage = "Something went wrong while adding the member. Please try again."

// Submitter sends a provisioning request to the provisioning function
type Submitter interface {
	Submit(ctx context.Context, req *onboarding.ProvisioningRequest) (*onboarding.ProvisioningResult, error)
}

// ReasonError is implemented by submitter errors carrying a message fit
// for display to the user.
type ReasonError interface {
	error
	Reason() string
}

// StepResult reports the outcome of validating a step
type StepResult struct {
	Errors       onboarding.ValidationErrors
	FirstInvalid onboarding.Field
}

// OK reports whether the step passed validation
func (r StepResult) OK() bool {
	return len(r.Errors) == 0
}

// Option configures a Wizard
type Option func(*Wizard)

// WithSession sets the caller's sign-in context
func WithSession(session onboarding.Session) Option {
	return func(w *Wizard) {
		w.session = session
	}
}

// WithNotifier sets where toasts are sent
func WithNotifier(n Notifier) Option {
	return func(w *Wizard) {
		w.notifier = n
	}
}

// WithOnComplete sets the callback run after a successful submission
func WithOnComplete(fn func(*onboarding.ProvisioningResult)) Option {
	return func(w *Wizard) {
		w.onComplete = fn
	}
}

// WithValidator replaces the default draft validator
func WithValidator(v *onboarding.Validator) Option {
	return func(w *Wizard) {
		w.validator = v
	}
}

// WithClock sets the clock used for derived fields. It also applies to the
// default validator.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) {
		w.now = now
	}
}

// WithDraft starts the wizard from an existing draft
func WithDraft(d *onboarding.MemberDraft) Option {
	return func(w *Wizard) {
		if d != nil {
			w.draft = d.Clone()
		}
	}
}

// WithLogger sets the wizard logger
func WithLogger(logger *zap.Logger) Option {
	return func(w *Wizard) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Wizard is the onboarding state machine. It is safe for concurrent use.
type Wizard struct {
	societyID  string
	session    onboarding.Session
	submitter  Submitter
	notifier   Notifier
	onComplete func(*onboarding.ProvisioningResult)
	validator  *onboarding.Validator
	now        func() time.Time
	logger     *zap.Logger

	mu         sync.Mutex
	draft      *onboarding.MemberDraft
	step       onboarding.Step
	submitting atomic.Bool
}

// NewWizard creates a wizard for societyID that submits through submitter.
// An empty societyID falls back to the session's current society at submit time.
func NewWizard(societyID string, submitter Submitter, opts ...Option) *Wizard {
	w := &Wizard{
		societyID: societyID,
		submitter: submitter,
		notifier:  NopNotifier(),
		now:       time.Now,
		logger:    zap.NewNop(),
		draft:     onboarding.NewMemberDraft(),
		step:      onboarding.StepPersonal,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.validator == nil {
		w.validator = onboarding.NewValidator(onboarding.WithClock(w.now))
	}
	return w
}

// Step returns the current step
func (w *Wizard) Step() onboarding.Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Draft returns a copy of the current draft
func (w *Wizard) Draft() *onboarding.MemberDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.Clone()
}

// Update edits the draft in place and refreshes derived fields
func (w *Wizard) Update(fn func(d *onboarding.MemberDraft)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(w.draft)
	w.draft.RefreshDerived(w.now())
}

// IsSubmitting reports whether a submission is in flight
func (w *Wizard) IsSubmitting() bool {
	return w.submitting.Load()
}

// Next validates the current step and advances when it passes. On failure
// the step is kept and the errors are returned.
func (w *Wizard) Next() StepResult {
	w.mu.Lock()
	defer w.mu.Unlock()

	errs := w.validator.ValidateStep(w.draft, w.step)
	if len(errs) > 0 {
		return StepResult{Errors: errs, FirstInvalid: errs.First().Field}
	}
	if w.step < onboarding.StepReview {
		w.step++
	}
	return StepResult{}
}

// Previous moves back one step without validating, stopping at the first step
func (w *Wizard) Previous() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step > onboarding.StepPersonal {
		w.step--
	}
}

// JumpTo moves directly to step without validating
func (w *Wizard) JumpTo(step onboarding.Step) error {
	if !step.IsValid() {
		return fmt.Errorf("%w: %d", ErrStepOutOfRange, int(step))
	}
	w.mu.Lock()
	w.step = step
	w.mu.Unlock()
	return nil
}

// Reset discards the draft and returns to the first step
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft = onboarding.NewMemberDraft()
	w.step = onboarding.StepPersonal
}

// Submit validates every step, normalizes the draft and sends it. It only
// works on the review step, and a call made while another is in flight
// returns ErrSubmitInProgress without sending anything.
func (w *Wizard) Submit(ctx context.Context) (*onboarding.ProvisioningResult, error) {
	if w.Step() != onboarding.StepReview {
		return nil, ErrNotOnReviewStep
	}
	if !w.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitInProgress
	}
	defer w.submitting.Store(false)

	w.mu.Lock()
	w.draft.RefreshDerived(w.now())
	draft := w.draft.Clone()
	w.mu.Unlock()

	if errs := w.validator.ValidateAll(draft); len(errs) > 0 {
		if step, ok := onboarding.StepOf(errs.First().Field); ok {
			w.mu.Lock()
			w.step = step
			w.mu.Unlock()
		}
		w.notifier.Notify(Toast{
			Title:       "Please review the form",
			Description: errs.First().Message,
			Severity:    SeverityError,
		})
		return nil, errs
	}

	req, err := onboarding.Normalize(draft, onboarding.NormalizeOptions{SocietyID: w.societyID, Session: w.session})
	if err != nil {
		w.notifier.Notify(Toast{
			Title:       "Cannot add member",
			Description: "No society is selected for this member.",
			Severity:    SeverityError,
		})
		return nil, err
	}

	w.logger.Info("Submitting member",
		zap.String("email", req.Email),
		zap.String("society_id", req.SocietyID),
	)

	result, err := w.submitter.Submit(ctx, req)
	if err != nil {
		w.logger.Warn("Member submission failed", zap.String("email", req.Email), zap.Error(err))
		w.notifier.Notify(Toast{
			Title:       "Failed to add member",
			Description: failureReason(err),
			Severity:    SeverityError,
		})
		return nil, fmt.Errorf("submit member: %w", err)
	}

	w.notifier.Notify(successToast(req, result))
	if w.onComplete != nil {
		w.onComplete(result)
	}
	w.Reset()
	return result, nil
}

func successToast(req *onboarding.ProvisioningRequest, result *onboarding.ProvisioningResult) Toast {
	if result.Operation == onboarding.OperationUpdated {
		return Toast{
			Title:       "Member updated",
			Description: req.FullName + "'s existing profile was updated.",
			Severity:    SeveritySuccess,
		}
	}
	return Toast{
		Title:       "Member created",
		Description: req.FullName + " was added to the society.",
		Severity:    SeveritySuccess,
	}
}

func failureReason(err error) string {
	var re ReasonError
	if errors.As(err, &re) && re.Reason() != "" {
		return re.Reason()
	}
	return genericFailureMessage
}
