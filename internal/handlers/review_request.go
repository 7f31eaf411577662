package handlers

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/aitrics/actions-slack-notify/internal/errs"
	"github.com/aitrics/actions-slack-notify/internal/models"
	"github.com/aitrics/actions-slack-notify/internal/notify"
	"github.com/aitrics/actions-slack-notify/internal/resolve"
)

// HandleReviewRequested notifies every requested reviewer in their own team
// channel. Reviewer lookups run concurrently.
func (h *Handler) HandleReviewRequested(ctx context.Context) error {
	payload, err := LoadPayload(h.Config.EventPath)
	if err != nil {
		return err
	}
	if payload.PullRequest == nil {
		return errs.Payload("review_requested payload missing pull_request", nil)
	}

	reviewers := payload.PullRequest.RequestedReviewers
	if payload.RequestedReviewer != nil {
		reviewers = []models.User{*payload.RequestedReviewer}
	}
	if len(reviewers) == 0 {
		log.Info("no requested reviewers in payload, nothing to notify")
		return nil
	}

	requester := h.Resolver.Resolve(ctx, payload.Sender.Login, resolve.PropertyRealName)

	type recipient struct {
		mentionID string
		channel   string
	}
	recipients := make([]recipient, len(reviewers))

	g, gctx := errgroup.WithContext(ctx)
	for i, reviewer := range reviewers {
		g.Go(func() error {
			recipients[i].mentionID = h.Resolver.Resolve(gctx, reviewer.Login, resolve.PropertyID)
			channel, err := h.Router.Route(gctx, reviewer.Login)
			if err != nil {
				return err
			}
			recipients[i].channel = channel
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range recipients {
		msg := notify.ReviewRequest(notify.ReviewRequestData{
			Channel:   r.channel,
			MentionID: r.mentionID,
			Requester: requester,
			PRTitle:   payload.PullRequest.Title,
			PRURL:     payload.PullRequest.HTMLURL,
		})
		if err := h.Slack.Post(ctx, msg); err != nil {
			log.Error("failed to post review request notification",
				slog.String("channel", r.channel),
				slog.Any("error", err))
			return err
		}
	}
	return nil
}
