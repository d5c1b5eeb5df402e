package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
)

type Client struct {
	baseURL    string
	serviceID  string
	templateID string
	publicKey  string
	http       *http.Client
}

func NewClient(baseURL, serviceID, templateID, publicKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceID:  serviceID,
		templateID: templateID,
		publicKey:  publicKey,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

// Send dispara o template configurado. Sucesso quer dizer que o EmailJS
// aceitou o pedido, não que o email foi entregue.
func (c *Client) Send(ctx context.Context, msg entity.EmailMessage) error {
	payload := sendRequest{
		ServiceID:  c.serviceID,
		TemplateID: c.templateID,
		UserID:     c.publicKey,
		TemplateParams: templateParams{
			ToEmail: msg.ToEmail,
			ToName:  msg.ToName,
			Subject: msg.Subject,
			Message: msg.Message,
		},
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao marshal email: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1.0/email/send", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro request emailjs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		logger.FromContext(ctx).Error("❌ EmailJS recusou o envio",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return fmt.Errorf("erro envio emailjs (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}
