package push

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/aumugisha-umu/seido-sub006/config"
)

// Message charge utile envoyée à la passerelle push
type Message struct {
	UserID      string `json:"user_id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	RelatedType string `json:"related_type,omitempty"`
	RelatedID   string `json:"related_id,omitempty"`
}

// Notifier client webhook sortant vers la passerelle de notifications
// Toujours best-effort : un échec d'envoi ne doit jamais faire échouer
// l'opération métier appelante
type Notifier struct {
	client     *resty.Client
	webhookURL string
	logger     *zap.Logger
}

// NewNotifier crée le client push ; retourne nil si aucune URL configurée
func NewNotifier(cfg *config.PushConfig, logger *zap.Logger) *Notifier {
	if cfg.WebhookURL == "" {
		return nil
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	if cfg.AuthToken != "" {
		client.SetAuthToken(cfg.AuthToken)
	}

	return &Notifier{
		client:     client,
		webhookURL: cfg.WebhookURL,
		logger:     logger,
	}
}

// Send pousse un message vers la passerelle
func (n *Notifier) Send(ctx context.Context, msg *Message) error {
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(msg).
		Post(n.webhookURL)
	if err != nil {
		return fmt.Errorf("envoi push: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("passerelle push: statut %d", resp.StatusCode())
	}
	return nil
}
