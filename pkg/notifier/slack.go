// Package notifier posts a schedule summary to Slack after a run. It
// is an optional external collaborator, never imported by
// internal/engine — only the CLI wires the two together.
package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/atlantispak/packplan/internal/domain"
)

// SlackClient posts block-kit messages to an incoming webhook.
type SlackClient struct {
	WebhookURL string
	Channel    string
}

func NewSlackClient(webhookURL, channel string) *SlackClient {
	return &SlackClient{WebhookURL: webhookURL, Channel: channel}
}

// SendScheduleSummary posts total waste, makespan, algorithm, and the
// scheduled job count for result. It is a no-op when no webhook URL is configured.
func (s *SlackClient) SendScheduleSummary(result domain.OptimizationResult) error {
	if s.WebhookURL == "" {
		return nil
	}

	payload := s.constructPayload(result)
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("notifier: failed to marshal slack payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.WebhookURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("notifier: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("notifier: failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notifier: received non-200 status from slack: %d", resp.StatusCode)
	}
	return nil
}

func (s *SlackClient) constructPayload(result domain.OptimizationResult) map[string]interface{} {
	statusIcon := "🟢"
	if result.TotalWasteKg > 500 {
		statusIcon = "🔴"
	} else if result.TotalWasteKg > 100 {
		statusIcon = "🟡"
	}

	blocks := []map[string]interface{}{
		{
			"type": "header",
			"text": map[string]interface{}{
				"type": "plain_text",
				"text": fmt.Sprintf("%s Production Schedule Optimized", statusIcon),
			},
		},
		{
			"type": "context",
			"elements": []map[string]interface{}{
				{
					"type": "mrkdwn",
					"text": fmt.Sprintf("*Run Date:* %s | *Algorithm:* %s", time.Now().Format("2006-01-02"), result.Algorithm),
				},
			},
		},
		{"type": "divider"},
		{
			"type": "section",
			"fields": []map[string]interface{}{
				{"type": "mrkdwn", "text": fmt.Sprintf("*Total Waste:*\n%.2f kg", result.TotalWasteKg)},
				{"type": "mrkdwn", "text": fmt.Sprintf("*Makespan:*\n%.2f h", result.MakespanHours)},
				{"type": "mrkdwn", "text": fmt.Sprintf("*Jobs Scheduled:*\n%d", len(result.Schedule))},
			},
		},
	}

	payload := map[string]interface{}{"blocks": blocks}
	if s.Channel != "" {
		payload["channel"] = s.Channel
	}
	return payload
}
