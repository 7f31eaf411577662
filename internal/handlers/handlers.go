// Package handlers orchestrates one notification flow per action type.
package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	gh "github.com/google/go-github/v72/github"

	"github.com/aitrics/actions-slack-notify/internal/config"
	"github.com/aitrics/actions-slack-notify/internal/errs"
	"github.com/aitrics/actions-slack-notify/internal/github"
	"github.com/aitrics/actions-slack-notify/internal/notify"
	"github.com/aitrics/actions-slack-notify/internal/resolve"
	"github.com/aitrics/actions-slack-notify/internal/slack"
)

var log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// GitHubClient is the slice of the GitHub client the handlers need.
type GitHubClient interface {
	UserName(ctx context.Context, login string) (string, error)
	PullRequest(ctx context.Context, number int) (*gh.PullRequest, error)
	Reviews(ctx context.Context, number int) ([]*gh.PullRequestReview, error)
	ReviewComment(ctx context.Context, commentID int64) (*gh.PullRequestComment, error)
	WorkflowRun(ctx context.Context, runID int64) (*gh.WorkflowRun, error)
	OpenPullRequests(ctx context.Context) ([]github.OpenPullRequest, error)
}

// SlackPoster posts formatted messages.
type SlackPoster interface {
	Post(ctx context.Context, msg slack.Message) error
}

// Handler holds the dependencies shared by all notification flows.
type Handler struct {
	Config   config.Config
	GitHub   GitHubClient
	Slack    SlackPoster
	Resolver *resolve.Resolver
	Router   *resolve.ChannelRouter
}

// Run dispatches on the configured action type.
func (h *Handler) Run(ctx context.Context) error {
	log.Info("Dispatching notification", slog.String("action_type", string(h.Config.ActionType)))

	switch h.Config.ActionType {
	case config.ActionComment:
		return h.HandleComment(ctx)
	case config.ActionApprove, config.ActionChangesRequested:
		return h.HandleReview(ctx)
	case config.ActionReviewRequested:
		return h.HandleReviewRequested(ctx)
	case config.ActionDeploy:
		return h.HandleDeploy(ctx)
	case config.ActionCI:
		return h.HandleBuild(ctx)
	case config.ActionSchedule:
		return h.HandleSchedule(ctx)
	default:
		return errs.Configuration("invalid_action_type",
			fmt.Sprintf("no handler for action type %q", h.Config.ActionType))
	}
}

// HandleReview notifies a PR author that a review was submitted.
func (h *Handler) HandleReview(ctx context.Context) error {
	payload, err := LoadPayload(h.Config.EventPath)
	if err != nil {
		return err
	}
	if payload.Review == nil || payload.PullRequest == nil {
		return errs.Payload("review event payload missing review or pull_request", nil)
	}

	author := payload.PullRequest.User.Login
	reviewer := payload.Review.User.Login

	channel, err := h.Router.Route(ctx, author)
	if err != nil {
		return err
	}
	data := notify.ReviewData{
		Channel:   channel,
		MentionID: h.Resolver.Resolve(ctx, author, resolve.PropertyID),
		Reviewer:  h.Resolver.Resolve(ctx, reviewer, resolve.PropertyRealName),
		PRTitle:   payload.PullRequest.Title,
		PRURL:     payload.PullRequest.HTMLURL,
	}

	var msg slack.Message
	if h.Config.ActionType == config.ActionChangesRequested {
		msg = notify.ChangesRequested(data)
	} else {
		data.Summary = h.approvalSummary(ctx, payload.PullRequest.Number)
		msg = notify.Approval(data)
	}
	return h.Slack.Post(ctx, msg)
}

// approvalSummary describes where the review stands: how many approvals are
// in and how many requested reviews are still outstanding. An empty string
// means the lookups failed and the formatter should use its default text.
func (h *Handler) approvalSummary(ctx context.Context, number int) string {
	pr, err := h.GitHub.PullRequest(ctx, number)
	if err != nil {
		log.Error("failed to fetch pull request for approval summary", slog.Any("error", err))
		return ""
	}
	reviews, err := h.GitHub.Reviews(ctx, number)
	if err != nil {
		log.Error("failed to fetch reviews for approval summary", slog.Any("error", err))
		return ""
	}
	approvals := 0
	for _, r := range reviews {
		if r.GetState() == "APPROVED" {
			approvals++
		}
	}
	return fmt.Sprintf("%d approval(s), %d requested review(s) outstanding.",
		approvals, len(pr.RequestedReviewers))
}
