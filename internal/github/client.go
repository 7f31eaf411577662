package github

import (
	"context"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gh "github.com/google/go-github/v72/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/aitrics/actions-slack-notify/internal/errs"
)

// Client bundles the REST and GraphQL GitHub clients for one repository.
type Client struct {
	rest  *gh.Client
	gql   *githubv4.Client
	owner string
	repo  string
}

// NewTokenClient creates a client authenticated with a personal access or
// Actions-provided token.
func NewTokenClient(ctx context.Context, token, owner, repo string) *Client {
	tc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	return &Client{
		rest:  gh.NewClient(tc),
		gql:   githubv4.NewClient(tc),
		owner: owner,
		repo:  repo,
	}
}

// NewAppClient creates a client authenticated as a GitHub App installation.
func NewAppClient(appID, installationID int64, privateKey []byte, owner, repo string) (*Client, error) {
	appsTransport, err := ghinstallation.NewAppsTransport(http.DefaultTransport, appID, privateKey)
	if err != nil {
		return nil, errs.GitHubAPI("app_auth", err)
	}
	itr := ghinstallation.NewFromAppsTransport(appsTransport, installationID)
	hc := &http.Client{Transport: itr}
	return &Client{
		rest:  gh.NewClient(hc),
		gql:   githubv4.NewClient(hc),
		owner: owner,
		repo:  repo,
	}, nil
}

// UserName fetches the user's display name, falling back to the login when
// the profile has none set.
func (c *Client) UserName(ctx context.Context, login string) (string, error) {
	user, _, err := c.rest.Users.Get(ctx, login)
	if err != nil {
		return "", errs.GitHubAPI("users.get", err).WithDetail("login", login)
	}
	if name := user.GetName(); name != "" {
		return name, nil
	}
	return login, nil
}

// TeamMembers lists the logins of a team's members.
func (c *Client) TeamMembers(ctx context.Context, org, slug string) ([]string, error) {
	var logins []string
	opts := &gh.TeamListTeamMembersOptions{ListOptions: gh.ListOptions{PerPage: 100}}
	for {
		members, resp, err := c.rest.Teams.ListTeamMembersBySlug(ctx, org, slug, opts)
		if err != nil {
			return nil, errs.GitHubAPI("teams.listMembersInOrg", err).WithDetail("team", slug)
		}
		for _, m := range members {
			logins = append(logins, m.GetLogin())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return logins, nil
}

// PullRequest fetches a single pull request.
func (c *Client) PullRequest(ctx context.Context, number int) (*gh.PullRequest, error) {
	pr, _, err := c.rest.PullRequests.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return nil, errs.GitHubAPI("pulls.get", err).WithDetail("number", number)
	}
	return pr, nil
}

// Reviews lists the reviews submitted on a pull request.
func (c *Client) Reviews(ctx context.Context, number int) ([]*gh.PullRequestReview, error) {
	reviews, _, err := c.rest.PullRequests.ListReviews(ctx, c.owner, c.repo, number, nil)
	if err != nil {
		return nil, errs.GitHubAPI("pulls.listReviews", err).WithDetail("number", number)
	}
	return reviews, nil
}

// ReviewComment fetches a pull request review comment by id. Used to find
// the author a reply comment is answering.
func (c *Client) ReviewComment(ctx context.Context, commentID int64) (*gh.PullRequestComment, error) {
	comment, _, err := c.rest.PullRequests.GetComment(ctx, c.owner, c.repo, commentID)
	if err != nil {
		return nil, errs.GitHubAPI("pulls.getReviewComment", err).WithDetail("comment_id", commentID)
	}
	return comment, nil
}

// WorkflowRun fetches an Actions workflow run by id.
func (c *Client) WorkflowRun(ctx context.Context, runID int64) (*gh.WorkflowRun, error) {
	run, _, err := c.rest.Actions.GetWorkflowRunByID(ctx, c.owner, c.repo, runID)
	if err != nil {
		return nil, errs.GitHubAPI("actions.getWorkflowRun", err).WithDetail("run_id", runID)
	}
	return run, nil
}
