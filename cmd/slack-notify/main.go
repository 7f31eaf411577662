package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aitrics/actions-slack-notify/internal/config"
	"github.com/aitrics/actions-slack-notify/internal/github"
	"github.com/aitrics/actions-slack-notify/internal/handlers"
	"github.com/aitrics/actions-slack-notify/internal/resolve"
	"github.com/aitrics/actions-slack-notify/internal/slack"
)

var log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// teamRoutes is the ordered team-to-channel table: the first team that
// contains a login wins.
var teamRoutes = []resolve.TeamRoute{
	{Slug: "backend", Channel: "#team-backend"},
	{Slug: "frontend", Channel: "#team-frontend"},
	{Slug: "devops", Channel: "#team-devops"},
}

const defaultChannel = "#general"

func main() {
	// Local runs can keep their tokens in a .env file.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := &cobra.Command{
		Use:           "slack-notify",
		Short:         "Post GitHub Actions event notifications to Slack",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}

	if err := cmd.ExecuteContext(ctx); err != nil {
		log.Error("notification failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log.Info("Starting slack-notify",
		slog.String("action_type", string(cfg.ActionType)),
		slog.String("repository", cfg.RepoOwner+"/"+cfg.RepoName))

	var githubClient *github.Client
	if cfg.UseAppAuth() {
		githubClient, err = github.NewAppClient(cfg.AppID, cfg.InstallationID,
			[]byte(cfg.AppPrivateKey), cfg.RepoOwner, cfg.RepoName)
		if err != nil {
			return err
		}
	} else {
		githubClient = github.NewTokenClient(ctx, cfg.GitHubToken, cfg.RepoOwner, cfg.RepoName)
	}

	slackClient := slack.New(cfg.SlackToken)

	// Deploy and CI results go to the default channel without mentioning
	// anyone, so the member snapshot is only fetched when names need
	// resolving.
	var members []slack.Member
	switch cfg.ActionType {
	case config.ActionDeploy, config.ActionCI:
	default:
		members, err = slackClient.Members(ctx)
		if err != nil {
			return err
		}
	}

	h := &handlers.Handler{
		Config:   cfg,
		GitHub:   githubClient,
		Slack:    slackClient,
		Resolver: resolve.NewResolver(githubClient, members),
		Router:   resolve.NewChannelRouter(githubClient, cfg.Organization, teamRoutes, defaultChannel),
	}
	return h.Run(ctx)
}
