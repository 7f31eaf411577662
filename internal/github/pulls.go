package github

import (
	"context"

	"github.com/shurcooL/githubv4"

	"github.com/aitrics/actions-slack-notify/internal/errs"
)

// ReviewerStatus is one reviewer's standing on a pull request. State is a
// GraphQL PullRequestReviewState (APPROVED, CHANGES_REQUESTED, ...) or
// "PENDING" for a requested reviewer who has not reviewed yet.
type ReviewerStatus struct {
	Login string
	State string
}

// OpenPullRequest is the digest view of an open pull request.
type OpenPullRequest struct {
	Number    int
	Title     string
	URL       string
	Draft     bool
	Author    string
	Reviewers []ReviewerStatus
}

// OpenPullRequests fetches the repository's open pull requests with their
// reviewer standings in a single GraphQL query.
func (c *Client) OpenPullRequests(ctx context.Context) ([]OpenPullRequest, error) {
	var q struct {
		Repository struct {
			PullRequests struct {
				Nodes []struct {
					Number  githubv4.Int
					Title   githubv4.String
					URL     githubv4.URI `graphql:"url"`
					IsDraft githubv4.Boolean
					Author  struct {
						Login githubv4.String
					}
					ReviewRequests struct {
						Nodes []struct {
							RequestedReviewer struct {
								User struct {
									Login githubv4.String
								} `graphql:"... on User"`
							}
						}
					} `graphql:"reviewRequests(first: 20)"`
					LatestReviews struct {
						Nodes []struct {
							State  githubv4.String
							Author struct {
								Login githubv4.String
							}
						}
					} `graphql:"latestReviews(first: 20)"`
				}
			} `graphql:"pullRequests(states: OPEN, first: 50, orderBy: {field: CREATED_AT, direction: ASC})"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	variables := map[string]interface{}{
		"owner": githubv4.String(c.owner),
		"name":  githubv4.String(c.repo),
	}
	if err := c.gql.Query(ctx, &q, variables); err != nil {
		return nil, errs.GitHubAPI("pulls.list", err)
	}

	prs := make([]OpenPullRequest, 0, len(q.Repository.PullRequests.Nodes))
	for _, node := range q.Repository.PullRequests.Nodes {
		pr := OpenPullRequest{
			Number: int(node.Number),
			Title:  string(node.Title),
			URL:    node.URL.String(),
			Draft:  bool(node.IsDraft),
			Author: string(node.Author.Login),
		}
		reviewed := make(map[string]bool)
		for _, r := range node.LatestReviews.Nodes {
			login := string(r.Author.Login)
			pr.Reviewers = append(pr.Reviewers, ReviewerStatus{Login: login, State: string(r.State)})
			reviewed[login] = true
		}
		for _, rr := range node.ReviewRequests.Nodes {
			login := string(rr.RequestedReviewer.User.Login)
			if login == "" || reviewed[login] {
				continue
			}
			pr.Reviewers = append(pr.Reviewers, ReviewerStatus{Login: login, State: "PENDING"})
		}
		prs = append(prs, pr)
	}
	return prs, nil
}
