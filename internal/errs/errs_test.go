package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessageIncludesKindCodeAndCause(t *testing.T) {
	err := GitHubAPI("users.get", errors.New("404"))
	want := "github_api/users.get: github users.get failed: 404"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("rate limited")
	err := SlackAPI("chat.postMessage", cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}

func TestIsMatchesOnKind(t *testing.T) {
	err := fmt.Errorf("handler: %w", SlackAPI("users.list", errors.New("boom")))
	if !errors.Is(err, &Error{Kind: KindSlackAPI}) {
		t.Error("expected kind match through wrapping")
	}
	if errors.Is(err, &Error{Kind: KindGitHubAPI}) {
		t.Error("unexpected kind match")
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(Configuration("missing", "x")); got != KindConfiguration {
		t.Errorf("got %v", got)
	}
	wrapped := fmt.Errorf("outer: %w", Payload("bad body", nil))
	if got := KindOf(wrapped); got != KindPayload {
		t.Errorf("got %v", got)
	}
	if got := KindOf(errors.New("plain")); got != KindNotification {
		t.Errorf("got %v", got)
	}
}

func TestWithDetail(t *testing.T) {
	err := GitHubAPI("pulls.get", errors.New("boom")).WithDetail("number", 7)
	if err.Details["number"] != 7 {
		t.Errorf("expected detail recorded, got %v", err.Details)
	}
}
