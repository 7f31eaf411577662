// Package notify builds the Slack message payloads for each event type.
// Every formatter is a pure function over its data struct.
package notify

import (
	"fmt"
	"strings"

	slackapi "github.com/slack-go/slack"

	"github.com/aitrics/actions-slack-notify/internal/slack"
)

const (
	colorSuccess = "good"
	colorFailure = "danger"
	colorInfo    = "#439FE0"
)

// Mention renders a Slack user mention.
func Mention(slackID string) string {
	return "<@" + slackID + ">"
}

// CommentData feeds the code-comment and approval-adjacent formatters.
type CommentData struct {
	Channel     string
	MentionID   string
	Commenter   string
	PRTitle     string
	PRURL       string
	CommentURL  string
	CommentBody string
}

// CodeComment formats a notification for a review comment on a diff line.
func CodeComment(d CommentData) slack.Message {
	return slack.Message{
		Channel: d.Channel,
		Text: fmt.Sprintf("%s, %s commented on your code.\n*<%s|%s>*",
			Mention(d.MentionID), d.Commenter, d.PRURL, d.PRTitle),
		Attachments: []slackapi.Attachment{{
			Color: colorInfo,
			Text:  fmt.Sprintf("<%s|View comment>\n%s", d.CommentURL, d.CommentBody),
		}},
	}
}

// PageCommentData feeds the PR-page comment formatter. Several people can be
// mentioned by one conversation comment.
type PageCommentData struct {
	Channel     string
	MentionIDs  []string
	Commenter   string
	PRTitle     string
	PRURL       string
	CommentURL  string
	CommentBody string
}

// PageComment formats a notification for a comment on the PR conversation
// page.
func PageComment(d PageCommentData) slack.Message {
	mentions := make([]string, len(d.MentionIDs))
	for i, id := range d.MentionIDs {
		mentions[i] = Mention(id)
	}
	return slack.Message{
		Channel: d.Channel,
		Text: fmt.Sprintf("%s, %s commented on the pull request.\n*<%s|%s>*",
			strings.Join(mentions, " "), d.Commenter, d.PRURL, d.PRTitle),
		Attachments: []slackapi.Attachment{{
			Color: colorInfo,
			Text:  fmt.Sprintf("<%s|View comment>\n%s", d.CommentURL, d.CommentBody),
		}},
	}
}

// ReviewData feeds the approval and changes-requested formatters. Summary is
// an optional review-standing line shown instead of the default attachment
// text.
type ReviewData struct {
	Channel   string
	MentionID string
	Reviewer  string
	PRTitle   string
	PRURL     string
	Summary   string
}

// Approval formats a PR approval notification.
func Approval(d ReviewData) slack.Message {
	text := d.Summary
	if text == "" {
		text = "Ready to merge once required reviews are complete."
	}
	return slack.Message{
		Channel: d.Channel,
		Text: fmt.Sprintf("%s, %s approved your pull request. :tada:\n*<%s|%s>*",
			Mention(d.MentionID), d.Reviewer, d.PRURL, d.PRTitle),
		Attachments: []slackapi.Attachment{{
			Color: colorSuccess,
			Text:  text,
		}},
	}
}

// ChangesRequested formats a changes-requested review notification.
func ChangesRequested(d ReviewData) slack.Message {
	return slack.Message{
		Channel: d.Channel,
		Text: fmt.Sprintf("%s, %s requested changes on your pull request.\n*<%s|%s>*",
			Mention(d.MentionID), d.Reviewer, d.PRURL, d.PRTitle),
		Attachments: []slackapi.Attachment{{
			Color: colorFailure,
			Text:  "Please address the review comments.",
		}},
	}
}

// ReviewRequestData feeds the review-request formatter.
type ReviewRequestData struct {
	Channel   string
	MentionID string
	Requester string
	PRTitle   string
	PRURL     string
}

// ReviewRequest formats a review-requested notification.
func ReviewRequest(d ReviewRequestData) slack.Message {
	return slack.Message{
		Channel: d.Channel,
		Text: fmt.Sprintf("%s, %s requested your review.\n*<%s|%s>*",
			Mention(d.MentionID), d.Requester, d.PRURL, d.PRTitle),
		Attachments: []slackapi.Attachment{{
			Color: colorInfo,
			Text:  "Please take a look when you have a moment.",
		}},
	}
}

// ReviewerLine is one reviewer's standing, pre-resolved to a display name.
type ReviewerLine struct {
	Name  string
	State string
}

// DigestData feeds the scheduled digest formatter, one message per open PR.
type DigestData struct {
	Channel   string
	PRTitle   string
	PRURL     string
	Author    string
	Reviewers []ReviewerLine
}

// Digest formats the scheduled open-PR digest entry with an aggregated
// reviewer status line.
func Digest(d DigestData) slack.Message {
	status := "no reviewers assigned"
	if len(d.Reviewers) > 0 {
		parts := make([]string, len(d.Reviewers))
		for i, r := range d.Reviewers {
			parts[i] = fmt.Sprintf("%s (%s)", r.Name, strings.ToLower(r.State))
		}
		status = strings.Join(parts, ", ")
	}
	return slack.Message{
		Channel: d.Channel,
		Text:    fmt.Sprintf("Pull request awaiting review.\n*<%s|%s>* by %s", d.PRURL, d.PRTitle, d.Author),
		Attachments: []slackapi.Attachment{{
			Color:  colorInfo,
			Fields: []slackapi.AttachmentField{{Title: "Reviewers", Value: status}},
		}},
	}
}

// DeployData feeds the deploy-result formatter.
type DeployData struct {
	Channel  string
	EC2Name  string
	ImageTag string
	Status   string
	Ref      string
	RunURL   string
}

// DeployResult formats a deployment result notification.
func DeployResult(d DeployData) slack.Message {
	color, verb := statusStyle(d.Status)
	fields := []slackapi.AttachmentField{
		{Title: "Instance", Value: d.EC2Name, Short: true},
		{Title: "Image Tag", Value: d.ImageTag, Short: true},
	}
	if d.Ref != "" {
		fields = append(fields, slackapi.AttachmentField{Title: "Ref", Value: d.Ref, Short: true})
	}
	return slack.Message{
		Channel: d.Channel,
		Text:    fmt.Sprintf("Deployment %s: *%s*\n<%s|View run>", verb, d.EC2Name, d.RunURL),
		Attachments: []slackapi.Attachment{{
			Color:  color,
			Fields: fields,
		}},
	}
}

// BuildData feeds the build-result formatter.
type BuildData struct {
	Channel    string
	JobName    string
	BranchName string
	Status     string
	FailedJobs []string
	RunURL     string
}

// BuildResult formats a CI build result notification. Failed job names are
// rendered as backtick-quoted lines.
func BuildResult(d BuildData) slack.Message {
	color, verb := statusStyle(d.Status)
	fields := []slackapi.AttachmentField{
		{Title: "Job", Value: d.JobName, Short: true},
		{Title: "Branch", Value: d.BranchName, Short: true},
	}
	if len(d.FailedJobs) > 0 {
		lines := make([]string, len(d.FailedJobs))
		for i, name := range d.FailedJobs {
			lines[i] = "`" + name + "`"
		}
		fields = append(fields, slackapi.AttachmentField{
			Title: "Failed Jobs",
			Value: strings.Join(lines, "\n"),
		})
	}
	return slack.Message{
		Channel: d.Channel,
		Text:    fmt.Sprintf("Build %s: *%s*\n<%s|View run>", verb, d.JobName, d.RunURL),
		Attachments: []slackapi.Attachment{{
			Color:  color,
			Fields: fields,
		}},
	}
}

func statusStyle(status string) (color, verb string) {
	if strings.EqualFold(status, "success") {
		return colorSuccess, "Succeeded"
	}
	return colorFailure, "Failed"
}
