package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/script-writer/internal/config"
	"github.com/MKhiriev/script-writer/internal/logger"
	"github.com/MKhiriev/script-writer/models"
)

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.BaseURL and configures the underlying client with the resolved
// base URL and request timeout.
//
// Returns an error if adapterCfg.BaseURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the credentials to
// POST /api/register. On success the session token from the response body is
// stored via SetToken.
func (h *httpServerAdapter) Register(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	return h.authRequest(ctx, "/api/register", creds)
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/login. On success the session token from the response body is
// stored via SetToken.
func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	return h.authRequest(ctx, "/api/login", creds)
}

func (h *httpServerAdapter) authRequest(ctx context.Context, path string, creds models.Credentials) (models.AuthResponse, error) {
	var authResp models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		SetResult(&authResp).
		Post(path)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("auth request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	h.SetToken(authResp.Token)
	return authResp, nil
}

// ListScripts implements [ServerAdapter].
func (h *httpServerAdapter) ListScripts(ctx context.Context) ([]models.Script, error) {
	resp, err := h.authedRequest(ctx).Get("/api/scripts")
	if err != nil {
		return nil, fmt.Errorf("list scripts request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var scripts []models.Script
	if err = json.Unmarshal(resp.Body(), &scripts); err != nil {
		return nil, fmt.Errorf("decode scripts response: %w", err)
	}

	return scripts, nil
}

// UpsertScript implements [ServerAdapter].
func (h *httpServerAdapter) UpsertScript(ctx context.Context, script models.Script) (models.Script, error) {
	var stored models.Script

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(script).
		SetResult(&stored).
		Post("/api/scripts")
	if err != nil {
		return models.Script{}, fmt.Errorf("upsert script request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Script{}, err
	}

	return stored, nil
}

// DeleteScript implements [ServerAdapter].
func (h *httpServerAdapter) DeleteScript(ctx context.Context, scriptID string) error {
	resp, err := h.authedRequest(ctx).Delete("/api/scripts/" + url.PathEscape(scriptID))
	if err != nil {
		return fmt.Errorf("delete script request: %w", err)
	}

	return mapHTTPError(resp)
}

// BulkSync implements [ServerAdapter].
func (h *httpServerAdapter) BulkSync(ctx context.Context, scripts []models.Script) (models.SyncResult, error) {
	var result models.SyncResult

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.SyncRequest{Scripts: scripts}).
		SetResult(&result).
		Post("/api/scripts/sync")
	if err != nil {
		return models.SyncResult{}, fmt.Errorf("bulk sync request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SyncResult{}, err
	}

	return result, nil
}

// Health implements [ServerAdapter].
func (h *httpServerAdapter) Health(ctx context.Context) (models.HealthResponse, error) {
	var health models.HealthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&health).
		Get("/api/health")
	if err != nil {
		return models.HealthResponse{}, fmt.Errorf("health request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.HealthResponse{}, err
	}

	return health, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
