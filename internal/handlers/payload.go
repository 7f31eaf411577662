package handlers

import (
	"encoding/json"
	"os"

	"github.com/aitrics/actions-slack-notify/internal/errs"
	"github.com/aitrics/actions-slack-notify/internal/models"
)

// LoadPayload reads and decodes the webhook payload GitHub Actions writes to
// GITHUB_EVENT_PATH.
func LoadPayload(path string) (*models.WebhookPayload, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Payload("cannot read event payload", err).WithDetail("path", path)
	}
	var payload models.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errs.Payload("cannot decode event payload", err).WithDetail("path", path)
	}
	return &payload, nil
}
