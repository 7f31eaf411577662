package handlers

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/aitrics/actions-slack-notify/internal/github"
	"github.com/aitrics/actions-slack-notify/internal/notify"
	"github.com/aitrics/actions-slack-notify/internal/resolve"
)

// HandleSchedule posts the open-PR digest: one message per non-draft open
// pull request, sent to the author's team channel. Sends run in parallel and
// fail independently.
func (h *Handler) HandleSchedule(ctx context.Context) error {
	prs, err := h.GitHub.OpenPullRequests(ctx)
	if err != nil {
		return err
	}

	open := prs[:0]
	for _, pr := range prs {
		if pr.Draft {
			continue
		}
		open = append(open, pr)
	}
	if len(open) == 0 {
		log.Info("no open pull requests awaiting review")
		return nil
	}
	log.Info("sending open pull request digest", slog.Int("count", len(open)))

	// A plain group: one failed send must not cancel the others.
	var g errgroup.Group
	for _, pr := range open {
		g.Go(func() error {
			if err := h.sendDigestEntry(ctx, pr); err != nil {
				log.Error("failed to send digest entry",
					slog.Int("pr_number", pr.Number),
					slog.Any("error", err))
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

func (h *Handler) sendDigestEntry(ctx context.Context, pr github.OpenPullRequest) error {
	channel, err := h.Router.Route(ctx, pr.Author)
	if err != nil {
		return err
	}

	reviewers := make([]notify.ReviewerLine, len(pr.Reviewers))
	for i, r := range pr.Reviewers {
		reviewers[i] = notify.ReviewerLine{
			Name:  h.Resolver.Resolve(ctx, r.Login, resolve.PropertyRealName),
			State: r.State,
		}
	}

	return h.Slack.Post(ctx, notify.Digest(notify.DigestData{
		Channel:   channel,
		PRTitle:   pr.Title,
		PRURL:     pr.URL,
		Author:    h.Resolver.Resolve(ctx, pr.Author, resolve.PropertyRealName),
		Reviewers: reviewers,
	}))
}
