package factory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/ports"
)

const defaultTimeout = 30 * time.Second

// Config points the client at a pizza factory.
type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// Client submits orders to the pizza factory over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type dinerPayload struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type orderRequest struct {
	Diner dinerPayload  `json:"diner"`
	Order *domain.Order `json:"order"`
}

type orderResponse struct {
	ReportURL string `json:"reportUrl"`
	JWT       string `json:"jwt"`
}

// SubmitOrder posts order to the factory. Any 2xx answer accepts the order;
// other statuses are a rejection as long as the body still decodes.
func (c *Client) SubmitOrder(ctx context.Context, diner domain.Identity, order *domain.Order) (*ports.FactoryResponse, error) {
	body, err := json.Marshal(orderRequest{
		Diner: dinerPayload{ID: diner.ID, Name: diner.Name, Email: diner.Email},
		Order: order,
	})
	if err != nil {
		return nil, fmt.Errorf("factory encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/order", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("factory request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("factory order request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("factory read: %w", err)
	}

	var res orderResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("factory decode: http=%d err=%w body=%s", resp.StatusCode, err, string(raw))
	}

	return &ports.FactoryResponse{
		Accepted:  resp.StatusCode >= 200 && resp.StatusCode < 300,
		ReportURL: res.ReportURL,
		JWT:       res.JWT,
	}, nil
}
