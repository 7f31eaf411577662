package resolve

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// TeamMemberFetcher fetches the member logins of a GitHub team.
type TeamMemberFetcher interface {
	TeamMembers(ctx context.Context, org, slug string) ([]string, error)
}

// TeamRoute maps a GitHub team to the Slack channel its notifications go to.
type TeamRoute struct {
	Slug    string
	Channel string
}

// ChannelRouter maps GitHub logins to Slack channels by team membership.
// Membership is fetched at most once per team for the lifetime of the
// router; concurrent first lookups of the same team share one fetch.
type ChannelRouter struct {
	github         TeamMemberFetcher
	org            string
	routes         []TeamRoute
	defaultChannel string

	group singleflight.Group
	mu    sync.Mutex
	cache map[string][]string
}

// NewChannelRouter builds a router over an ordered route list. The first
// team containing a login wins; logins in no team route to defaultChannel.
func NewChannelRouter(github TeamMemberFetcher, org string, routes []TeamRoute, defaultChannel string) *ChannelRouter {
	return &ChannelRouter{
		github:         github,
		org:            org,
		routes:         routes,
		defaultChannel: defaultChannel,
		cache:          make(map[string][]string),
	}
}

// Route returns the Slack channel for a GitHub login.
func (r *ChannelRouter) Route(ctx context.Context, login string) (string, error) {
	if login == "" {
		return r.defaultChannel, nil
	}
	for _, route := range r.routes {
		members, err := r.teamMembers(ctx, route.Slug)
		if err != nil {
			return "", err
		}
		for _, member := range members {
			if member == login {
				return route.Channel, nil
			}
		}
	}
	log.Info("login not found in any routed team, using default channel",
		slog.String("login", login),
		slog.String("channel", r.defaultChannel))
	return r.defaultChannel, nil
}

func (r *ChannelRouter) teamMembers(ctx context.Context, slug string) ([]string, error) {
	r.mu.Lock()
	if members, ok := r.cache[slug]; ok {
		r.mu.Unlock()
		return members, nil
	}
	r.mu.Unlock()

	v, err, _ := r.group.Do(slug, func() (interface{}, error) {
		r.mu.Lock()
		if members, ok := r.cache[slug]; ok {
			r.mu.Unlock()
			return members, nil
		}
		r.mu.Unlock()

		members, err := r.github.TeamMembers(ctx, r.org, slug)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.cache[slug] = members
		r.mu.Unlock()
		return members, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}
