package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aitrics/actions-slack-notify/internal/notify"
)

// HandleDeploy posts a deployment result to the default channel.
func (h *Handler) HandleDeploy(ctx context.Context) error {
	channel, err := h.Router.Route(ctx, "")
	if err != nil {
		return err
	}
	msg := notify.DeployResult(notify.DeployData{
		Channel:  channel,
		EC2Name:  h.Config.EC2Name,
		ImageTag: h.Config.ImageTag,
		Status:   h.Config.JobStatus,
		Ref:      h.Config.Ref,
		RunURL:   h.runURL(ctx),
	})
	return h.Slack.Post(ctx, msg)
}

// HandleBuild posts a CI build result to the default channel. On failure the
// JOB_NAME input is treated as the comma-separated list of failed jobs.
func (h *Handler) HandleBuild(ctx context.Context) error {
	channel, err := h.Router.Route(ctx, "")
	if err != nil {
		return err
	}

	var failedJobs []string
	if !strings.EqualFold(h.Config.JobStatus, "success") {
		for _, name := range strings.Split(h.Config.JobName, ",") {
			if name = strings.TrimSpace(name); name != "" {
				failedJobs = append(failedJobs, name)
			}
		}
	}

	msg := notify.BuildResult(notify.BuildData{
		Channel:    channel,
		JobName:    h.Config.JobName,
		BranchName: h.Config.BranchName,
		Status:     h.Config.JobStatus,
		FailedJobs: failedJobs,
		RunURL:     h.runURL(ctx),
	})
	return h.Slack.Post(ctx, msg)
}

// runURL returns the workflow run's HTML URL, preferring the API's answer
// and falling back to the well-known URL shape when the lookup fails.
func (h *Handler) runURL(ctx context.Context) string {
	if h.Config.RunID != 0 {
		run, err := h.GitHub.WorkflowRun(ctx, h.Config.RunID)
		if err != nil {
			log.Error("failed to fetch workflow run",
				slog.Int64("run_id", h.Config.RunID),
				slog.Any("error", err))
		} else if url := run.GetHTMLURL(); url != "" {
			return url
		}
	}
	return fmt.Sprintf("https://github.com/%s/%s/actions/runs/%d",
		h.Config.RepoOwner, h.Config.RepoName, h.Config.RunID)
}
