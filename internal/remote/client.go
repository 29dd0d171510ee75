package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/FringeNet/OpenHands/internal/models"
)

// Option catalog kinds served by the remote options endpoints.
const (
	OptionsModels            = "models"
	OptionsAgents            = "agents"
	OptionsSecurityAnalyzers = "security-analyzers"
)

// RemoteSettings is the read payload. Pointer fields keep per-field presence:
// a sparse response must fall back to defaults for the missing fields, not to
// the local cache.
type RemoteSettings struct {
	LLMModel         *string `json:"LLM_MODEL"`
	LLMBaseURL       *string `json:"LLM_BASE_URL"`
	Agent            *string `json:"AGENT"`
	Language         *string `json:"LANGUAGE"`
	LLMAPIKey        *string `json:"LLM_API_KEY"`
	ConfirmationMode *bool   `json:"CONFIRMATION_MODE"`
	SecurityAnalyzer *string `json:"SECURITY_ANALYZER"`
}

// Client is the boundary to the remote settings store. Transport policy
// (timeouts, retries) belongs to the http.Client supplied by the caller.
type Client interface {
	Fetch(ctx context.Context) (*RemoteSettings, error)
	Store(ctx context.Context, settings models.Settings) (bool, error)
	Options(ctx context.Context, kind string) ([]string, error)
	Logout(ctx context.Context) error
}

type httpClient struct {
	base  *url.URL
	token string
	hc    *http.Client
}

// NewHTTPClient builds a Client against baseURL. token, when non-empty, is
// sent as a bearer credential. hc may be nil, in which case
// http.DefaultClient is used.
func NewHTTPClient(baseURL, token string, hc *http.Client) (Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("remote: invalid base url %q: %w", baseURL, err)
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &httpClient{base: base, token: token, hc: hc}, nil
}

func (c *httpClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *httpClient) Fetch(ctx context.Context) (*RemoteSettings, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/settings", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote: fetch settings: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent:
		// Nothing stored for this user yet.
		return nil, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("remote: fetch settings: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("remote: read settings body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 || string(bytes.TrimSpace(body)) == "null" {
		return nil, nil
	}
	var payload RemoteSettings
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("remote: decode settings: %w", err)
	}
	return &payload, nil
}

func (c *httpClient) Store(ctx context.Context, settings models.Settings) (bool, error) {
	blob, err := json.Marshal(settings)
	if err != nil {
		return false, fmt.Errorf("remote: encode settings: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/api/settings", bytes.NewReader(blob))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		return false, fmt.Errorf("remote: store settings: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("remote: store settings: unexpected status %d", resp.StatusCode)
	}
	return true, nil
}

func (c *httpClient) Options(ctx context.Context, kind string) ([]string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/options/"+kind, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote: fetch %s options: %w", kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("remote: fetch %s options: unexpected status %d", kind, resp.StatusCode)
	}
	var values []string
	if err := json.NewDecoder(resp.Body).Decode(&values); err != nil {
		return nil, fmt.Errorf("remote: decode %s options: %w", kind, err)
	}
	return values, nil
}

func (c *httpClient) Logout(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/logout", nil)
	if err != nil {
		return err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("remote: logout: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("remote: logout: unexpected status %d", resp.StatusCode)
	}
	return nil
}
