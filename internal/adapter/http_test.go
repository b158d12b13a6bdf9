package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/script-writer/internal/config"
	"github.com/MKhiriev/script-writer/internal/logger"
	"github.com/MKhiriev/script-writer/models"
)

func newTestAdapter(t *testing.T, backend http.Handler) ServerAdapter {
	t.Helper()

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	adapter, err := NewHTTPServerAdapter(config.ClientAdapter{BaseURL: srv.URL}, logger.Nop())
	require.NoError(t, err)
	return adapter
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain host", "localhost:3000", "http://localhost:3000", false},
		{"with scheme", "https://sync.example.com", "https://sync.example.com", false},
		{"trailing slash", "http://localhost:3000/", "http://localhost:3000", false},
		{"empty", "   ", "", true},
		{"scheme only", "http://", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPServerAdapter_RejectsEmptyBaseURL(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.ClientAdapter{}, logger.Nop())
	assert.Error(t, err)
}

func TestLogin_StoresToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "john@example.com", creds.Email)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.AuthResponse{
			Token: "session-token",
			User:  models.User{UserID: 5, Email: creds.Email},
		})
	})
	adapter := newTestAdapter(t, mux)

	resp, err := adapter.Login(context.Background(), models.Credentials{Email: "john@example.com", Password: "secret-password"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.User.UserID)
	assert.Equal(t, "session-token", adapter.Token())
}

func TestLogin_UnauthorizedMapsToSentinel(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid email or password", http.StatusUnauthorized)
	})
	adapter := newTestAdapter(t, mux)

	_, err := adapter.Login(context.Background(), models.Credentials{Email: "john@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, adapter.Token(), "a failed login must not store a token")
}

func TestRegister_ConflictMapsToSentinel(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/register", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "email already registered", http.StatusConflict)
	})
	adapter := newTestAdapter(t, mux)

	_, err := adapter.Register(context.Background(), models.Credentials{Email: "john@example.com", Password: "secret-password"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "email already registered")
}

func TestListScripts_SendsBearerToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/scripts", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.Script{{ID: "2000"}, {ID: "1000"}})
	})
	adapter := newTestAdapter(t, mux)
	adapter.SetToken("session-token")

	scripts, err := adapter.ListScripts(context.Background())
	require.NoError(t, err)
	assert.Len(t, scripts, 2)
}

func TestUpsertScript(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/scripts", func(w http.ResponseWriter, r *http.Request) {
		var script models.Script
		require.NoError(t, json.NewDecoder(r.Body).Decode(&script))
		script.ID = "1700000000000"

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(script)
	})
	adapter := newTestAdapter(t, mux)
	adapter.SetToken("session-token")

	stored, err := adapter.UpsertScript(context.Background(), models.Script{Name: "draft"})
	require.NoError(t, err)
	assert.Equal(t, "1700000000000", stored.ID)
	assert.Equal(t, "draft", stored.Name)
}

func TestDeleteScript_EscapesID(t *testing.T) {
	var gotPath string
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/scripts/", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.DeleteResult{Deleted: true})
	})
	adapter := newTestAdapter(t, mux)
	adapter.SetToken("session-token")

	require.NoError(t, adapter.DeleteScript(context.Background(), "id with spaces"))
	assert.Equal(t, "/api/scripts/id%20with%20spaces", gotPath)
}

func TestDeleteScript_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/scripts/", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "script not found", http.StatusNotFound)
	})
	adapter := newTestAdapter(t, mux)
	adapter.SetToken("session-token")

	err := adapter.DeleteScript(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBulkSync(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/scripts/sync", func(w http.ResponseWriter, r *http.Request) {
		var req models.SyncRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Scripts, 2)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.SyncResult{Synced: 2})
	})
	adapter := newTestAdapter(t, mux)
	adapter.SetToken("session-token")

	result, err := adapter.BulkSync(context.Background(), []models.Script{{Name: "one"}, {Name: "two"}})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Synced)
}

func TestHealth_NeedsNoToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.HealthResponse{Status: "ok", OAuthEnabled: true})
	})
	adapter := newTestAdapter(t, mux)

	health, err := adapter.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.True(t, health.OAuthEnabled)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusServiceUnavailable, ErrServiceUnavailable},
		{http.StatusBadGateway, ErrBadGateway},
		{http.StatusInternalServerError, ErrInternalServerError},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			adapter := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom", tt.status)
			}))

			_, err := adapter.ListScripts(context.Background())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
