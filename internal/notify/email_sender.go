package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nikolayk812/shoppay/internal/domain"
	"github.com/nikolayk812/shoppay/internal/template"
	"github.com/sony/gobreaker/v2"
)

type EmailConfig struct {
	// BaseURL of a Resend compatible API, e.g. https://api.resend.com
	BaseURL string
	APIKey  string
	From    string
}

// EmailSender posts rendered emails to a transactional email API. Calls go
// through a circuit breaker so an unavailable provider is not hammered by
// every worker.
type EmailSender struct {
	cfg     EmailConfig
	client  *http.Client
	engine  *template.Engine
	breaker *gobreaker.CircuitBreaker[Result]
}

type sendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendEmailResponse struct {
	ID string `json:"id"`
}

func NewEmailSender(cfg EmailConfig, engine *template.Engine, client *http.Client) (*EmailSender, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base url is empty")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("api key is empty")
	}
	if cfg.From == "" {
		return nil, errors.New("from address is empty")
	}
	if engine == nil {
		return nil, errors.New("engine is nil")
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultSendTimeout}
	}

	breaker := gobreaker.NewCircuitBreaker[Result](gobreaker.Settings{
		Name:        "email",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &EmailSender{
		cfg:     cfg,
		client:  client,
		engine:  engine,
		breaker: breaker,
	}, nil
}

func (s *EmailSender) SendDelivery(ctx context.Context, n domain.DeliveryNotification) (Result, error) {
	if n.CustomerEmail == "" {
		return Result{}, errors.New("customer email is empty")
	}

	email, err := s.engine.RenderDelivery(template.BuildDeliveryData(n))
	if err != nil {
		return Result{}, fmt.Errorf("engine.RenderDelivery: %w", err)
	}

	result, err := s.breaker.Execute(func() (Result, error) {
		return s.post(ctx, sendEmailRequest{
			From:    s.cfg.From,
			To:      []string{n.CustomerEmail},
			Subject: email.Subject,
			HTML:    email.HTML,
		})
	})
	if err != nil {
		return Result{}, fmt.Errorf("breaker.Execute: %w", err)
	}

	return result, nil
}

func (s *EmailSender) post(ctx context.Context, payload sendEmailRequest) (Result, error) {
	var result Result

	body, err := json.Marshal(payload)
	if err != nil {
		return result, fmt.Errorf("json.Marshal: %w", err)
	}

	url := strings.TrimRight(s.cfg.BaseURL, "/") + "/emails"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return result, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return result, fmt.Errorf("client.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return result, fmt.Errorf("email api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var decoded sendEmailResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return result, fmt.Errorf("json.Decode: %w", err)
	}

	result.ID = decoded.ID
	return result, nil
}
