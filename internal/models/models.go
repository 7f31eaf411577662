package models

// https://docs.github.com/en/webhooks/webhook-events-and-payloads
type WebhookPayload struct {
	Action      string       `json:"action"`
	Repository  Repository   `json:"repository"`
	PullRequest *PullRequest `json:"pull_request,omitempty"`
	Issue       *Issue       `json:"issue,omitempty"`
	Comment     *Comment     `json:"comment,omitempty"`
	Review      *Review      `json:"review,omitempty"`
	// RequestedReviewer is set on review_requested events.
	RequestedReviewer *User  `json:"requested_reviewer,omitempty"`
	Sender            User   `json:"sender"`
	Ref               string `json:"ref,omitempty"`
	After             string `json:"after,omitempty"`
}

type Repository struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	HTMLURL  string `json:"html_url"`
	Owner    User   `json:"owner"`
}

type PullRequest struct {
	Number             int    `json:"number"`
	Title              string `json:"title"`
	Body               string `json:"body"`
	Draft              bool   `json:"draft"`
	HTMLURL            string `json:"html_url"`
	User               User   `json:"user"`
	RequestedReviewers []User `json:"requested_reviewers"`
}

type Issue struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
	User    User   `json:"user"`
}

type Comment struct {
	ID      int64  `json:"id"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
	User    User   `json:"user"`
	// DiffHunk is only present on pull request review comments.
	DiffHunk string `json:"diff_hunk,omitempty"`
	// InReplyTo is the id of the review comment this one replies to, if any.
	InReplyTo int64 `json:"in_reply_to_id,omitempty"`
}

type Review struct {
	State   string `json:"state"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
	User    User   `json:"user"`
}

type User struct {
	Login string `json:"login"`
	Type  string `json:"type"`
}
