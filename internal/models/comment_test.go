package models

import "testing"

func TestClassifyCommentCode(t *testing.T) {
	payload := &WebhookPayload{
		PullRequest: &PullRequest{Number: 7},
		Comment:     &Comment{ID: 1, DiffHunk: "@@ -1 +1 @@"},
	}
	event, ok := ClassifyComment(payload)
	if !ok {
		t.Fatal("expected a comment event")
	}
	if event.Kind != CommentKindCode {
		t.Errorf("expected code kind, got %v", event.Kind)
	}
	if event.PullRequest == nil || event.PullRequest.Number != 7 {
		t.Errorf("expected pull request carried on code comment")
	}
}

func TestClassifyCommentPage(t *testing.T) {
	payload := &WebhookPayload{
		Issue:   &Issue{Number: 7},
		Comment: &Comment{ID: 2},
	}
	event, ok := ClassifyComment(payload)
	if !ok {
		t.Fatal("expected a comment event")
	}
	if event.Kind != CommentKindPage {
		t.Errorf("expected page kind, got %v", event.Kind)
	}
	if event.Issue == nil || event.Issue.Number != 7 {
		t.Errorf("expected issue carried on page comment")
	}
}

func TestClassifyCommentWithoutComment(t *testing.T) {
	if _, ok := ClassifyComment(&WebhookPayload{}); ok {
		t.Error("expected no event for payload without comment")
	}
	if _, ok := ClassifyComment(nil); ok {
		t.Error("expected no event for nil payload")
	}
}

func TestClassifyCommentAmbiguousShape(t *testing.T) {
	// A pull_request without a diff hunk is not a code comment.
	payload := &WebhookPayload{
		PullRequest: &PullRequest{Number: 7},
		Comment:     &Comment{ID: 3},
	}
	event, ok := ClassifyComment(payload)
	if !ok {
		t.Fatal("expected a comment event")
	}
	if event.Kind != CommentKindUnknown {
		t.Errorf("expected unknown kind, got %v", event.Kind)
	}
}
