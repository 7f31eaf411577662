package slack

import (
	"context"

	"github.com/slack-go/slack"

	"github.com/aitrics/actions-slack-notify/internal/errs"
)

// Client is a wrapper around the slack.Client to provide a mockable interface
// for testing purposes.
type Client struct {
	api *slack.Client
}

// New creates a Slack client for the given bot token. Extra options are
// passed through to the underlying client (tests use them to point at a
// fake server).
func New(token string, opts ...slack.Option) *Client {
	return &Client{api: slack.New(token, opts...)}
}

// Member is a workspace member snapshot, as needed for name resolution.
type Member struct {
	ID          string
	RealName    string
	DisplayName string
}

// Members lists the workspace members. Deleted accounts are filtered out at
// this boundary so no caller can ever resolve against one.
func (c *Client) Members(ctx context.Context) ([]Member, error) {
	users, err := c.api.GetUsersContext(ctx)
	if err != nil {
		return nil, errs.SlackAPI("users.list", err)
	}
	members := make([]Member, 0, len(users))
	for _, u := range users {
		if u.Deleted {
			continue
		}
		members = append(members, Member{
			ID:          u.ID,
			RealName:    u.RealName,
			DisplayName: u.Profile.DisplayName,
		})
	}
	return members, nil
}

// Message is a chat.postMessage payload.
type Message struct {
	Channel     string
	Text        string
	Attachments []slack.Attachment
}

// Post sends the message. Markdown rendering is always on, matching the
// chat.postMessage payloads this action has historically produced.
func (c *Client) Post(ctx context.Context, msg Message) error {
	opts := []slack.MsgOption{
		slack.MsgOptionText(msg.Text, false),
		slack.MsgOptionPostMessageParameters(slack.PostMessageParameters{Markdown: true}),
	}
	if len(msg.Attachments) > 0 {
		opts = append(opts, slack.MsgOptionAttachments(msg.Attachments...))
	}
	if _, _, err := c.api.PostMessageContext(ctx, msg.Channel, opts...); err != nil {
		return errs.SlackAPI("chat.postMessage", err).WithDetail("channel", msg.Channel)
	}
	return nil
}
