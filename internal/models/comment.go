package models

// CommentKind distinguishes the two comment shapes GitHub delivers: review
// comments attached to a diff line and plain comments on the PR conversation
// page. The kind is decided once at ingestion and carried explicitly instead
// of being re-derived from payload fields downstream.
type CommentKind int

const (
	CommentKindUnknown CommentKind = iota
	// CommentKindCode is a pull request review comment (has a diff hunk).
	CommentKindCode
	// CommentKindPage is an issue comment on the PR conversation page.
	CommentKindPage
)

func (k CommentKind) String() string {
	switch k {
	case CommentKindCode:
		return "code"
	case CommentKindPage:
		return "page"
	default:
		return "unknown"
	}
}

// CommentEvent is the tagged form of a comment payload.
type CommentEvent struct {
	Kind    CommentKind
	Comment Comment
	// PullRequest is set for code comments, Issue for page comments.
	PullRequest *PullRequest
	Issue       *Issue
}

// ClassifyComment inspects a webhook payload and returns the tagged comment
// event, or ok=false when the payload carries no comment.
func ClassifyComment(p *WebhookPayload) (CommentEvent, bool) {
	if p == nil || p.Comment == nil {
		return CommentEvent{}, false
	}
	if p.PullRequest != nil && p.Comment.DiffHunk != "" {
		return CommentEvent{
			Kind:        CommentKindCode,
			Comment:     *p.Comment,
			PullRequest: p.PullRequest,
		}, true
	}
	if p.Issue != nil {
		return CommentEvent{
			Kind:    CommentKindPage,
			Comment: *p.Comment,
			Issue:   p.Issue,
		}, true
	}
	return CommentEvent{Kind: CommentKindUnknown, Comment: *p.Comment}, true
}
