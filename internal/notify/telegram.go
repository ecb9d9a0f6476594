package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "camperwatch/pkg/errors"
)

// defaultAPIBase is the Telegram Bot API endpoint
const defaultAPIBase = "https://api.telegram.org"

// Sender delivers a text message to a single destination. Transport
// failures are returned as delivery errors, never panics.
type Sender interface {
	Send(ctx context.Context, chatID, text string) (string, error)
}

// TelegramSender implements Sender against the Telegram Bot API
type TelegramSender struct {
	token   string
	apiBase string
	client  *http.Client
}

// NewTelegramSender creates a sender for the given bot token
func NewTelegramSender(token string) *TelegramSender {
	return &TelegramSender{
		token:   token,
		apiBase: defaultAPIBase,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// sendMessageRequest is the JSON body of a sendMessage call
type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Send posts a message to one chat. Success is HTTP 200; any other
// status or transport error is a delivery failure. The API response
// body is returned either way for logging.
func (s *TelegramSender) Send(ctx context.Context, chatID, text string) (string, error) {
	if s.token == "" || chatID == "" {
		return "", apperrors.NewDelivery("telegram", "missing token or chat id", nil)
	}

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return "", apperrors.NewDelivery("telegram", "could not encode message", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", apperrors.NewDelivery("telegram", "could not create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", apperrors.NewDelivery("telegram", fmt.Sprintf("send to chat %s failed", chatID), err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return string(body), apperrors.NewDelivery("telegram",
			fmt.Sprintf("send to chat %s returned status %d", chatID, resp.StatusCode), nil)
	}

	return string(body), nil
}
