package handlers

import (
	"context"
	"log/slog"
	"regexp"

	"golang.org/x/sync/errgroup"

	"github.com/aitrics/actions-slack-notify/internal/errs"
	"github.com/aitrics/actions-slack-notify/internal/models"
	"github.com/aitrics/actions-slack-notify/internal/notify"
	"github.com/aitrics/actions-slack-notify/internal/resolve"
)

var mentionPattern = regexp.MustCompile(`@([A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?)`)

// HandleComment notifies about a new comment. The payload shape decides the
// flow: review comments on a diff line mention the code's author, PR-page
// comments mention the PR author plus anyone @-mentioned in the body.
func (h *Handler) HandleComment(ctx context.Context) error {
	payload, err := LoadPayload(h.Config.EventPath)
	if err != nil {
		return err
	}
	event, ok := models.ClassifyComment(payload)
	if !ok {
		return errs.Payload("comment event payload carries no comment", nil)
	}

	switch event.Kind {
	case models.CommentKindCode:
		h.handleCodeComment(ctx, event)
	case models.CommentKindPage:
		h.handlePageComment(ctx, event)
	default:
		log.Error("comment payload matches neither code nor page shape",
			slog.Int64("comment_id", event.Comment.ID))
	}
	// Comment notification failures are logged, never fatal: a partial or
	// missing notification beats failing the workflow run.
	return nil
}

func (h *Handler) handleCodeComment(ctx context.Context, event models.CommentEvent) {
	commenter := event.Comment.User.Login
	target := event.PullRequest.User.Login

	// A reply redirects the mention to the author of the comment being
	// answered, when that differs from the current commenter.
	if event.Comment.InReplyTo != 0 {
		original, err := h.GitHub.ReviewComment(ctx, event.Comment.InReplyTo)
		if err != nil {
			log.Error("failed to fetch original comment of reply",
				slog.Int64("comment_id", event.Comment.InReplyTo),
				slog.Any("error", err))
		} else if login := original.GetUser().GetLogin(); login != "" && login != commenter {
			target = login
		}
	}

	if target == commenter {
		log.Info("comment author is the mention target, skipping notification",
			slog.String("login", commenter))
		return
	}

	channel, err := h.Router.Route(ctx, target)
	if err != nil {
		log.Error("failed to route comment notification",
			slog.String("login", target),
			slog.Any("error", err))
		return
	}
	msg := notify.CodeComment(notify.CommentData{
		Channel:     channel,
		MentionID:   h.Resolver.Resolve(ctx, target, resolve.PropertyID),
		Commenter:   h.Resolver.Resolve(ctx, commenter, resolve.PropertyRealName),
		PRTitle:     event.PullRequest.Title,
		PRURL:       event.PullRequest.HTMLURL,
		CommentURL:  event.Comment.HTMLURL,
		CommentBody: event.Comment.Body,
	})
	if err := h.Slack.Post(ctx, msg); err != nil {
		log.Error("failed to post code comment notification", slog.Any("error", err))
	}
}

func (h *Handler) handlePageComment(ctx context.Context, event models.CommentEvent) {
	commenter := event.Comment.User.Login

	targets := []string{event.Issue.User.Login}
	for _, login := range mentionedLogins(event.Comment.Body) {
		targets = append(targets, login)
	}
	targets = dedupe(targets, commenter)
	if len(targets) == 0 {
		log.Info("page comment has no one to notify", slog.String("commenter", commenter))
		return
	}

	// Independent lookups run concurrently and are joined before the send.
	mentionIDs := make([]string, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	for i, login := range targets {
		g.Go(func() error {
			mentionIDs[i] = h.Resolver.Resolve(gctx, login, resolve.PropertyID)
			return nil
		})
	}
	var channel string
	g.Go(func() error {
		var err error
		channel, err = h.Router.Route(gctx, targets[0])
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to route page comment notification", slog.Any("error", err))
		return
	}

	msg := notify.PageComment(notify.PageCommentData{
		Channel:     channel,
		MentionIDs:  mentionIDs,
		Commenter:   h.Resolver.Resolve(ctx, commenter, resolve.PropertyRealName),
		PRTitle:     event.Issue.Title,
		PRURL:       event.Issue.HTMLURL,
		CommentURL:  event.Comment.HTMLURL,
		CommentBody: event.Comment.Body,
	})
	if err := h.Slack.Post(ctx, msg); err != nil {
		log.Error("failed to post page comment notification", slog.Any("error", err))
	}
}

// mentionedLogins extracts @login tokens from a comment body.
func mentionedLogins(body string) []string {
	var logins []string
	for _, m := range mentionPattern.FindAllStringSubmatch(body, -1) {
		logins = append(logins, m[1])
	}
	return logins
}

// dedupe drops duplicates and the excluded login while keeping order.
func dedupe(logins []string, exclude string) []string {
	seen := map[string]bool{exclude: true, "": true}
	var out []string
	for _, login := range logins {
		if seen[login] {
			continue
		}
		seen[login] = true
		out = append(out, login)
	}
	return out
}
