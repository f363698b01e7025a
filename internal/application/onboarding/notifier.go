package onboarding

// Severity is the tone of a toast
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Toast is a short notification shown to the user
type Toast struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// Notifier receives the wizard's toasts
type Notifier interface {
	Notify(toast Toast)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Toast)

// Notify calls f(toast)
func (f NotifierFunc) Notify(toast Toast) {
	f(toast)
}

// NopNotifier returns a Notifier that drops every toast
func NopNotifier() Notifier {
	return NotifierFunc(func(Toast) {})
}
