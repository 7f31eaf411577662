// Package errs defines the error taxonomy shared across the notifier.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error by where it originated.
type Kind int

const (
	// KindNotification is the generic catch-all for notifier failures.
	KindNotification Kind = iota
	// KindConfiguration marks missing or malformed action inputs.
	KindConfiguration
	// KindPayload marks a malformed or incomplete webhook payload.
	KindPayload
	// KindGitHubAPI wraps failures from the GitHub REST/GraphQL APIs.
	KindGitHubAPI
	// KindSlackAPI wraps failures from the Slack Web API.
	KindSlackAPI
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindPayload:
		return "payload"
	case KindGitHubAPI:
		return "github_api"
	case KindSlackAPI:
		return "slack_api"
	default:
		return "notification"
	}
}

// Error carries a kind, a stable code, a human message, optional detail
// key/values and the wrapped cause.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Code != "" {
		b.WriteString("/")
		b.WriteString(e.Code)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches two *Error values on Kind (and Code when both are set), so that
// errors.Is(err, &Error{Kind: KindSlackAPI}) works as a kind check.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code != "" && t.Code != e.Code {
		return false
	}
	return t.Kind == e.Kind
}

// Configuration reports a missing or invalid action input.
func Configuration(code, message string) *Error {
	return &Error{Kind: KindConfiguration, Code: code, Message: message}
}

// Payload reports a malformed webhook payload.
func Payload(message string, cause error) *Error {
	return &Error{Kind: KindPayload, Message: message, Err: cause}
}

// GitHubAPI wraps a GitHub API failure.
func GitHubAPI(op string, cause error) *Error {
	return &Error{
		Kind:    KindGitHubAPI,
		Code:    op,
		Message: "github " + op + " failed",
		Err:     cause,
	}
}

// SlackAPI wraps a Slack API failure.
func SlackAPI(op string, cause error) *Error {
	return &Error{
		Kind:    KindSlackAPI,
		Code:    op,
		Message: "slack " + op + " failed",
		Err:     cause,
	}
}

// WithDetail attaches a detail key/value, allocating the map lazily.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// KindOf returns the Kind of err when it is (or wraps) an *Error, and
// KindNotification otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNotification
}
