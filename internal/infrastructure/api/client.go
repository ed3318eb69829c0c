// Package api implements the HTTP adapter for the external query backend.
// The backend owns natural-language understanding, SQL generation and real
// database access; this client only speaks its wire contract.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/doeshing/dbpilot-go/internal/domain"
	"github.com/doeshing/dbpilot-go/internal/ports"
)

// Client talks to the query backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the given base URL, e.g.
// http://localhost:5000/api.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Query implements ports.DatabaseGateway.
func (c *Client) Query(ctx context.Context, question string) (domain.QueryResult, error) {
	body, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return domain.QueryResult{}, err
	}

	respBody, status, err := c.post(ctx, "/query", body)
	if err != nil {
		return domain.QueryResult{}, &domain.TransportError{Op: "query", Err: err}
	}
	if status >= 300 {
		return domain.QueryResult{}, &domain.TransportError{
			Op:      "query",
			Status:  status,
			Message: serverMessage(respBody),
		}
	}

	var result domain.QueryResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return domain.QueryResult{}, &domain.TransportError{Op: "query", Status: status, Err: err}
	}
	return result, nil
}

// Stats implements ports.DatabaseGateway.
func (c *Client) Stats(ctx context.Context) (domain.DatabaseStats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats", nil)
	if err != nil {
		return domain.DatabaseStats{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.DatabaseStats{}, &domain.TransportError{Op: "stats", Err: err}
	}
	defer resp.Body.Close()

	var body bytes.Buffer
	if _, err := body.ReadFrom(resp.Body); err != nil {
		return domain.DatabaseStats{}, &domain.TransportError{Op: "stats", Err: err}
	}
	if resp.StatusCode >= 300 {
		return domain.DatabaseStats{}, &domain.TransportError{
			Op:      "stats",
			Status:  resp.StatusCode,
			Message: serverMessage(body.Bytes()),
		}
	}

	var stats domain.DatabaseStats
	if err := json.Unmarshal(body.Bytes(), &stats); err != nil {
		return domain.DatabaseStats{}, &domain.TransportError{Op: "stats", Status: resp.StatusCode, Err: err}
	}
	return stats, nil
}

// TestConnection implements ports.DatabaseGateway. The returned string is
// the server's message when it supplies one.
func (c *Client) TestConnection(ctx context.Context, profile domain.ConnectionProfile) (string, error) {
	body, err := json.Marshal(map[string]any{
		"name":     profile.Name,
		"host":     profile.Host,
		"port":     profile.Port,
		"user":     profile.User,
		"password": profile.Password,
		"database": profile.Database,
	})
	if err != nil {
		return "", err
	}

	respBody, status, err := c.post(ctx, "/test-connection", body)
	if err != nil {
		return "", &domain.TransportError{Op: "test-connection", Message: "Connection failed", Err: err}
	}
	if status >= 300 {
		msg := serverMessage(respBody)
		if msg == "" {
			msg = "Connection failed"
		}
		return "", &domain.TransportError{Op: "test-connection", Status: status, Message: msg}
	}

	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return "", &domain.TransportError{Op: "test-connection", Status: status, Err: err}
	}
	if !payload.Success {
		msg := payload.Message
		if msg == "" {
			msg = "Connection failed"
		}
		return "", &domain.TransportError{Op: "test-connection", Status: status, Message: msg}
	}
	return payload.Message, nil
}

func (c *Client) post(ctx context.Context, path string, body []byte) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var respBody bytes.Buffer
	if _, err := respBody.ReadFrom(resp.Body); err != nil {
		return nil, resp.StatusCode, err
	}
	return respBody.Bytes(), resp.StatusCode, nil
}

// serverMessage pulls a human-readable message out of an error payload.
// The backend reports failures as {"detail": ...} (and some deployments as
// {"message": ...} or {"error": ...}).
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, msg := range []string{payload.Message, payload.Detail, payload.Error} {
		if msg != "" {
			return msg
		}
	}
	return ""
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

var _ ports.DatabaseGateway = (*Client)(nil)
