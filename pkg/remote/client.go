// Package remote is the HTTP client for the remote REST authority. It is a
// collaborator that may be unreachable at any time: callers rely on the
// error classification here to tell an authoritative HTTP response apart
// from a network-level failure.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gescom/internal/apperr"
	"gescom/internal/models"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// HTTPError is any HTTP response with a non-2xx status. Having received a
// response at all means the remote was reachable, so the response is
// authoritative and never triggers fallback behavior.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("remote returned %d: %s", e.StatusCode, e.Body)
}

// Terminal reports whether the rejection is permanent (client-side fault)
// as opposed to a transient server failure worth retrying.
func (e *HTTPError) Terminal() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PushRequest struct {
	ClientID     string            `json:"clientId"`
	DataType     models.DataType   `json:"dataType"`
	Data         json.RawMessage   `json:"data"`
	Action       models.SyncAction `json:"action"`
	IDEntreprise *uint             `json:"idEntreprise,omitempty"`
}

// PullResponse is the authoritative remote state for one entreprise.
type PullResponse struct {
	Entreprise   *models.Entreprise   `json:"entreprise"`
	Professions  []models.Profession  `json:"professions"`
	Utilisateurs []models.Utilisateur `json:"utilisateurs"`
	Clients      []models.Client      `json:"clients"`
	Produits     []models.Produit     `json:"produits"`
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Login attempts authentication against the remote authority. A nil error
// means the remote accepted the credentials. An *HTTPError means the remote
// answered and rejected them. A network error (including timeout) wraps
// apperr.ErrNetwork and is the only outcome that permits local fallback.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	body, err := json.Marshal(LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal login request: %w", err)
	}

	resp, err := c.post(ctx, "/auth/login", "", body)
	if err != nil {
		return nil, err
	}

	var login models.LoginResponse
	if err := json.Unmarshal(resp, &login); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	return &login, nil
}

// PushEntry replays one outbox entry against the remote. The clientId lets
// the remote deduplicate, so pushing the same entry twice is harmless.
func (c *Client) PushEntry(ctx context.Context, token string, entry models.SyncEntry) error {
	body, err := json.Marshal(PushRequest{
		ClientID:     entry.ClientID,
		DataType:     entry.DataType,
		Data:         json.RawMessage(entry.Data),
		Action:       entry.Action,
		IDEntreprise: entry.IDEntreprise,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal sync entry: %w", err)
	}

	_, err = c.post(ctx, "/sync/push", token, body)
	return err
}

// Pull fetches the authoritative state for an entreprise.
func (c *Client) Pull(ctx context.Context, token string, idEntreprise uint) (*PullResponse, error) {
	url := fmt.Sprintf("%s/sync/pull?entreprise=%d", c.BaseURL, idEntreprise)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, apperr.Network(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Network(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	var pull PullResponse
	if err := json.Unmarshal(data, &pull); err != nil {
		return nil, fmt.Errorf("failed to decode pull response: %w", err)
	}
	return &pull, nil
}

func (c *Client) post(ctx context.Context, path, token string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		// no HTTP response at all, timeouts included
		return nil, apperr.Network(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Network(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}
