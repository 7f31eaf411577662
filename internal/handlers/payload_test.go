package handlers

import (
	"errors"
	"testing"

	"github.com/aitrics/actions-slack-notify/internal/errs"
)

func TestLoadPayloadRejectsMissingFile(t *testing.T) {
	_, err := LoadPayload("/nonexistent/event.json")
	if err == nil {
		t.Fatal("expected error for missing payload file")
	}
	if !errors.Is(err, &errs.Error{Kind: errs.KindPayload}) {
		t.Errorf("expected payload error kind, got %v", err)
	}
}

func TestLoadPayloadRejectsMalformedJSON(t *testing.T) {
	path := writePayload(t, `{"action": `)
	if _, err := LoadPayload(path); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestLoadPayloadDecodesEvent(t *testing.T) {
	path := writePayload(t, `{"action":"created","repository":{"full_name":"aitrics/vc"},"sender":{"login":"jiwon"}}`)
	payload, err := LoadPayload(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if payload.Action != "created" || payload.Repository.FullName != "aitrics/vc" {
		t.Errorf("unexpected payload: %+v", payload)
	}
	if payload.Sender.Login != "jiwon" {
		t.Errorf("expected sender decoded, got %+v", payload.Sender)
	}
}
