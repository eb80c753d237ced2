package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/smtp"
)

// Notifier delivers a short message to a single recipient. Two interchangeable
// channels exist; which one a deployment uses is a configuration decision,
// never something the task hierarchy decides.
type Notifier interface {
	Send(message, recipient string) error
}

// webhookNotifier posts messages to a direct-message webhook endpoint.
type webhookNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewWebhookNotifier creates a Notifier that delivers direct messages through
// the given webhook URL.
func NewWebhookNotifier(webhookURL string) Notifier {
	return &webhookNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{},
	}
}

type webhookMessage struct {
	Text      string `json:"text"`
	Recipient string `json:"recipient"`
}

func (w *webhookNotifier) Send(message, recipient string) error {
	body, err := json.Marshal(webhookMessage{Text: message, Recipient: recipient})
	if err != nil {
		return fmt.Errorf("marshaling webhook message: %w", err)
	}

	resp, err := w.client.Post(w.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("posting to webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// emailNotifier delivers messages over plain SMTP.
type emailNotifier struct {
	addr string
	from string
	auth smtp.Auth
}

// NewEmailNotifier creates a Notifier that sends mail through the given SMTP
// server address ("host:port"). auth may be nil for open relays in test rigs.
func NewEmailNotifier(addr, from string, auth smtp.Auth) Notifier {
	return &emailNotifier{addr: addr, from: from, auth: auth}
}

func (e *emailNotifier) Send(message, recipient string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Task update\r\n\r\n%s\r\n",
		e.from, recipient, message)
	if err := smtp.SendMail(e.addr, e.auth, e.from, []string{recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}
