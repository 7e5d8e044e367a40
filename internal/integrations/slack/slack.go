package slack

import (
	"context"
	"log/slog"

	"github.com/flowsmith/flowsmith/internal/credential"
	"github.com/flowsmith/flowsmith/internal/integrations/domain"
	"github.com/flowsmith/flowsmith/internal/integrations/httpx"
	"github.com/flowsmith/flowsmith/internal/step"
)

const postMessageURL = "https://slack.com/api/chat.postMessage"

const CredentialBotToken = "slackBotToken"

const (
	ActionSendMessage      = "slack-send-message"
	TriggerMessageReceived = "slack-message-received"
)

// Integration implements Slack action steps on the shared HTTP helper.
type Integration struct {
	client *httpx.Client
	logger *slog.Logger
}

func New(client *httpx.Client, logger *slog.Logger) *Integration {
	return &Integration{client: client, logger: logger}
}

func (i *Integration) ID() string   { return "slack" }
func (i *Integration) Name() string { return "Slack" }

func (i *Integration) Description() string {
	return "Slack workspace actions: post messages to channels"
}

func (i *Integration) Actions() []domain.ActionDescriptor {
	return []domain.ActionDescriptor{
		{
			Type:                ActionSendMessage,
			Name:                "Send Slack Message",
			Description:         "Post a message to a Slack channel",
			RequiredCredentials: []string{CredentialBotToken},
			Handler:             i.sendMessage,
		},
	}
}

func (i *Integration) Triggers() []domain.TriggerDescriptor {
	return []domain.TriggerDescriptor{
		{
			Type:        TriggerMessageReceived,
			Name:        "Slack Message Received",
			Description: "Starts the workflow when a message arrives in a channel",
		},
	}
}

func (i *Integration) sendMessage(ctx context.Context, in step.Input, creds credential.Set) step.Result {
	token, ok := creds.Get(CredentialBotToken)
	if !ok {
		return step.MissingCredential(CredentialBotToken)
	}

	channel, ok := in.Param("channel")
	if !ok {
		return step.InvalidInput("Channel is required.")
	}
	text, ok := in.Param("text")
	if !ok {
		return step.InvalidInput("Message text is required.")
	}

	resp, err := i.client.DoJSON(ctx, httpx.Request{
		Method: "POST",
		URL:    postMessageURL,
		Header: map[string]string{"Authorization": "Bearer " + token},
		Body: map[string]any{
			"channel": channel,
			"text":    text,
		},
	})
	if err != nil {
		return domain.FailureFrom(err)
	}

	// Slack reports failures in a 200 body: {"ok": false, "error": "..."}
	if ok, _ := resp["ok"].(bool); !ok {
		if errText, _ := resp["error"].(string); errText != "" {
			return step.Fail("Slack rejected the message: %s", errText)
		}
		return step.Fail("Slack rejected the message.")
	}

	return step.Succeed(map[string]any{
		"channel":   channel,
		"timestamp": resp["ts"],
	})
}
