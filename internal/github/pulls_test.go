package github

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/shurcooL/githubv4"
)

// roundTripFunc allows customizing request handling for http.Client.Transport.
type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestOpenPullRequests(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data":{"repository":{"pullRequests":{"nodes":[
			{"number":7,"title":"Add vitals exporter","url":"https://github.com/aitrics/vc/pull/7",
			 "isDraft":false,"author":{"login":"minsoo"},
			 "reviewRequests":{"nodes":[{"requestedReviewer":{"login":"juho"}}]},
			 "latestReviews":{"nodes":[{"state":"APPROVED","author":{"login":"jiwon"}}]}},
			{"number":8,"title":"WIP refactor","url":"https://github.com/aitrics/vc/pull/8",
			 "isDraft":true,"author":{"login":"jiwon"},
			 "reviewRequests":{"nodes":[]},
			 "latestReviews":{"nodes":[]}}
		]}}}}`)
	}))
	defer ts.Close()

	// Rewrite requests to the test server
	httpClient := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		u, _ := url.Parse(ts.URL + req.URL.Path)
		req.URL = u
		return http.DefaultTransport.RoundTrip(req)
	})}
	c := &Client{gql: githubv4.NewClient(httpClient), owner: "aitrics", repo: "vc"}

	prs, err := c.OpenPullRequests(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(prs) != 2 {
		t.Fatalf("expected 2 pull requests, got %d", len(prs))
	}

	first := prs[0]
	if first.Number != 7 || first.Author != "minsoo" || first.Draft {
		t.Errorf("unexpected first pr: %+v", first)
	}
	if len(first.Reviewers) != 2 {
		t.Fatalf("expected reviewer from review plus pending request, got %v", first.Reviewers)
	}
	if first.Reviewers[0].Login != "jiwon" || first.Reviewers[0].State != "APPROVED" {
		t.Errorf("unexpected reviewed reviewer: %+v", first.Reviewers[0])
	}
	if first.Reviewers[1].Login != "juho" || first.Reviewers[1].State != "PENDING" {
		t.Errorf("unexpected pending reviewer: %+v", first.Reviewers[1])
	}

	if !prs[1].Draft {
		t.Errorf("expected second pr to keep its draft flag")
	}
}
