package actions

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-sdui/internal/forms"
	"github.com/goliatone/go-sdui/internal/logging"
	"github.com/goliatone/go-sdui/internal/schema"
	"github.com/goliatone/go-sdui/pkg/interfaces"
)

// Level is the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a message the host should surface to the user.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// NavigationOp names a navigation intent.
type NavigationOp string

const (
	NavigatePush NavigationOp = "push"
	NavigatePop  NavigationOp = "pop"
)

// Navigation is a navigation intent produced by a token.
type Navigation struct {
	Op     NavigationOp `json:"op"`
	PageID string       `json:"page_id,omitempty"`
}

// Result describes what executing a token means for the host. The executor
// performs no side effects itself.
type Result struct {
	Token        Token         `json:"token"`
	Kind         Kind          `json:"-"`
	Navigate     *Navigation   `json:"navigate,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
	Issues       []forms.Issue `json:"issues,omitempty"`
	// Err carries a degraded parse failure.
	Err error `json:"-"`
}

// ActionContext is the state a token executes against.
type ActionContext struct {
	Schema   *schema.Schema
	PageID   string
	FormData map[string]string
}

// Messages holds the notification texts.
type Messages struct {
	FormSubmitted  string
	FormInvalid    string
	ToastDefault   string
	Registration   string
	Biometric      string
	ActionExecuted string
}

// DefaultMessages returns the stock notification texts.
func DefaultMessages() Messages {
	return Messages{
		FormSubmitted:  "Form submitted successfully!",
		FormInvalid:    "Please fix the highlighted fields",
		ToastDefault:   "Toast message displayed!",
		Registration:   "Registration initiated!",
		Biometric:      "Biometric authentication requested",
		ActionExecuted: "Action executed!",
	}
}

// Executor maps tokens to results.
type Executor struct {
	logger   interfaces.Logger
	messages Messages
}

// ExecutorOption customises an Executor.
type ExecutorOption func(*Executor)

// WithLogger sets the executor logger.
func WithLogger(logger interfaces.Logger) ExecutorOption {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMessages overrides the notification texts.
func WithMessages(messages Messages) ExecutorOption {
	return func(e *Executor) {
		e.messages = messages
	}
}

// NewExecutor builds an Executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{logger: logging.NoOp(), messages: DefaultMessages()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute interprets token. Malformed encoded tokens degrade to a generic
// notification; the parse error is returned in Result.Err for callers that
// want to record it.
func (e *Executor) Execute(ctx context.Context, token Token, actx ActionContext) Result {
	logger := e.logger.WithContext(ctx)
	parsed, err := ParseToken(token)
	result := Result{Token: token, Kind: parsed.Kind}

	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			logger.Error("actions.token.parse_failed", "token", string(token), "error", err)
		}
		result.Err = err
		result.Notification = e.notify(LevelInfo, e.messages.ActionExecuted)
		return result
	}

	switch parsed.Kind {
	case KindPush:
		if parsed.PageID == "" {
			logger.Debug("actions.push.no_destination")
			return result
		}
		result.Navigate = &Navigation{Op: NavigatePush, PageID: parsed.PageID}
		return result
	case KindPop:
		result.Navigate = &Navigation{Op: NavigatePop}
		return result
	}

	switch parsed.Type {
	case SubmitForm:
		return e.submit(result, actx)
	case Toast:
		message := e.messages.ToastDefault
		if parsed.Kind == KindEncoded {
			if text, ok := parsed.Params["message"].(string); ok && strings.TrimSpace(text) != "" {
				message = text
			}
		}
		result.Notification = e.notify(LevelInfo, message)
	case Register:
		result.Notification = e.notify(LevelInfo, e.messages.Registration)
	case BiometricAuth:
		if parsed.Kind == KindEncoded {
			result.Notification = e.notify(LevelInfo, e.messages.Biometric)
			return result
		}
		logger.Debug("actions.token.executed", "token", string(token))
	default:
		logger.Debug("actions.token.executed", "token", string(token))
	}
	return result
}

func (e *Executor) submit(result Result, actx ActionContext) Result {
	page, ok := actx.Schema.Page(actx.PageID)
	if !ok {
		result.Notification = e.notify(LevelSuccess, e.messages.FormSubmitted)
		return result
	}
	if err := forms.Validate(*page, actx.FormData); err != nil {
		result.Issues = forms.Issues(*page, err)
		result.Notification = e.notify(LevelError, e.messages.FormInvalid+": "+forms.Summary(result.Issues))
		return result
	}
	result.Notification = e.notify(LevelSuccess, e.messages.FormSubmitted)
	return result
}

func (e *Executor) notify(level Level, message string) *Notification {
	return &Notification{Level: level, Message: message}
}
