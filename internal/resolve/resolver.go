// Package resolve maps GitHub logins to Slack identities and channels.
package resolve

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/aitrics/actions-slack-notify/internal/slack"
)

var log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// botNamePrefix is stripped from display names set by our bot accounts.
const botNamePrefix = "aitrics-"

// defaultSkipNames are names that must never be fuzzy-matched; lookups for
// them fall back to the literal GitHub login.
var defaultSkipNames = []string{"john"}

// Property selects which field of a matched Slack member to return.
type Property string

const (
	PropertyID       Property = "id"
	PropertyRealName Property = "realName"
)

// UserNameFetcher fetches a GitHub user's display name.
type UserNameFetcher interface {
	UserName(ctx context.Context, login string) (string, error)
}

// Resolver maps GitHub logins to Slack member identifiers by fuzzy-matching
// display names against a workspace member snapshot.
type Resolver struct {
	github    UserNameFetcher
	members   []slack.Member
	skipNames []string
}

// NewResolver builds a resolver over a member snapshot taken once per run.
// Deleted accounts are already excluded by the slack client.
func NewResolver(github UserNameFetcher, members []slack.Member) *Resolver {
	return &Resolver{github: github, members: members, skipNames: defaultSkipNames}
}

// Resolve returns the requested property of the Slack member best matching
// the GitHub login, or the literal login when no member matches. An empty
// login or unknown property is logged and yields "".
func (r *Resolver) Resolve(ctx context.Context, login string, prop Property) string {
	if login == "" {
		log.Error("cannot resolve empty github login")
		return ""
	}
	if prop != PropertyID && prop != PropertyRealName {
		log.Error("unknown resolve property", slog.String("property", string(prop)))
		return ""
	}

	candidate, err := r.github.UserName(ctx, login)
	if err != nil {
		log.Error("failed to fetch github user name, falling back to login",
			slog.String("login", login),
			slog.Any("error", err))
		candidate = login
	}

	cleaned := CleanName(candidate)
	if cleaned == "" {
		// Nothing left to match on (e.g. a name written entirely in
		// Hangul); an empty needle would match every member.
		return login
	}
	// The skip-list is matched against the name being searched, not against
	// member names: a decoy real_name containing the skip phrase must not
	// capture the lookup.
	for _, skip := range r.skipNames {
		if strings.Contains(cleaned, strings.ToLower(skip)) {
			return login
		}
	}

	for _, m := range r.members {
		if strings.Contains(strings.ToLower(m.RealName), cleaned) ||
			strings.Contains(strings.ToLower(m.DisplayName), cleaned) {
			if prop == PropertyID {
				return m.ID
			}
			return m.RealName
		}
	}
	return login
}

// CleanName normalizes a display name for substring matching: lowercase,
// bot prefix stripped, non-alphabetic runes removed. Idempotent.
func CleanName(name string) string {
	name = strings.ToLower(name)
	name = strings.TrimPrefix(name, botNamePrefix)
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
