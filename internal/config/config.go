// Package config loads and validates the action inputs.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/aitrics/actions-slack-notify/internal/errs"
)

// ActionType selects which notification flow a run executes.
type ActionType string

const (
	ActionSchedule         ActionType = "schedule"
	ActionApprove          ActionType = "approve"
	ActionComment          ActionType = "comment"
	ActionReviewRequested  ActionType = "review_requested"
	ActionChangesRequested ActionType = "changes_requested"
	ActionDeploy           ActionType = "deploy"
	ActionCI               ActionType = "ci"
)

var actionTypes = map[ActionType]bool{
	ActionSchedule:         true,
	ActionApprove:          true,
	ActionComment:          true,
	ActionReviewRequested:  true,
	ActionChangesRequested: true,
	ActionDeploy:           true,
	ActionCI:               true,
}

// Config holds every input the action reads from its environment.
type Config struct {
	SlackToken  string
	GitHubToken string
	ActionType  ActionType

	// GitHub App credentials, used instead of GitHubToken when set.
	AppID          int64
	InstallationID int64
	AppPrivateKey  string

	Organization string
	RepoOwner    string
	RepoName     string
	EventPath    string
	RunID        int64
	Ref          string
	SHA          string

	// Deploy inputs.
	EC2Name  string
	ImageTag string

	// CI inputs.
	JobStatus  string
	BranchName string
	JobName    string
}

// Load reads the action inputs from the environment.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)

	cfg := Config{
		SlackToken:     v.GetString("SLACK_TOKEN"),
		GitHubToken:    v.GetString("GITHUB_TOKEN"),
		ActionType:     ActionType(strings.ToLower(v.GetString("ACTION_TYPE"))),
		AppID:          v.GetInt64("GITHUB_APP_ID"),
		InstallationID: v.GetInt64("GITHUB_INSTALLATION_ID"),
		AppPrivateKey:  v.GetString("GITHUB_APP_PRIVATE_KEY"),
		Organization:   v.GetString("GITHUB_ORGANIZATION"),
		EventPath:      v.GetString("GITHUB_EVENT_PATH"),
		RunID:          v.GetInt64("GITHUB_RUN_ID"),
		Ref:            v.GetString("GITHUB_REF"),
		SHA:            v.GetString("GITHUB_SHA"),
		EC2Name:        v.GetString("EC2_NAME"),
		ImageTag:       v.GetString("IMAGE_TAG"),
		JobStatus:      v.GetString("JOB_STATUS"),
		BranchName:     v.GetString("BRANCH_NAME"),
		JobName:        v.GetString("JOB_NAME"),
	}

	if repo := v.GetString("GITHUB_REPOSITORY"); repo != "" {
		if owner, name, ok := strings.Cut(repo, "/"); ok {
			cfg.RepoOwner, cfg.RepoName = owner, name
		} else {
			cfg.RepoName = repo
		}
	}
	if cfg.Organization == "" {
		cfg.Organization = cfg.RepoOwner
	}

	return cfg, cfg.Validate()
}

// Validate fails fast on missing or malformed inputs, before any network
// call is made.
func (c Config) Validate() error {
	if c.SlackToken == "" {
		return errs.Configuration("missing_slack_token", "SLACK_TOKEN is required")
	}
	if c.GitHubToken == "" && (c.AppID == 0 || c.InstallationID == 0 || c.AppPrivateKey == "") {
		return errs.Configuration("missing_github_auth",
			"either GITHUB_TOKEN or GITHUB_APP_ID/GITHUB_INSTALLATION_ID/GITHUB_APP_PRIVATE_KEY is required")
	}
	if c.ActionType == "" {
		return errs.Configuration("missing_action_type", "ACTION_TYPE is required")
	}
	if !actionTypes[c.ActionType] {
		return errs.Configuration("invalid_action_type",
			"ACTION_TYPE must be one of schedule|approve|comment|review_requested|changes_requested|deploy|ci").
			WithDetail("action_type", string(c.ActionType))
	}

	switch c.ActionType {
	case ActionDeploy:
		if c.EC2Name == "" {
			return errs.Configuration("missing_ec2_name", "EC2_NAME is required for deploy notifications")
		}
		if c.JobStatus == "" {
			return errs.Configuration("missing_job_status", "JOB_STATUS is required for deploy notifications")
		}
	case ActionCI:
		if c.JobName == "" {
			return errs.Configuration("missing_job_name", "JOB_NAME is required for ci notifications")
		}
		if c.JobStatus == "" {
			return errs.Configuration("missing_job_status", "JOB_STATUS is required for ci notifications")
		}
	case ActionComment, ActionApprove, ActionReviewRequested, ActionChangesRequested:
		if c.EventPath == "" {
			return errs.Configuration("missing_event_path", "GITHUB_EVENT_PATH is required for webhook-driven notifications")
		}
	}
	return nil
}

// UseAppAuth reports whether GitHub App credentials should be used.
func (c Config) UseAppAuth() bool {
	return c.GitHubToken == "" && c.AppPrivateKey != ""
}
