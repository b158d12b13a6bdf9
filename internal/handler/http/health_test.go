package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/script-writer/models"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name         string
		oauthEnabled bool
	}{
		{"oauth configured", true},
		{"oauth not configured", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(nil, &fakeOAuthService{enabled: tt.oauthEnabled}, nil)

			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)

			var got models.HealthResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, "ok", got.Status)
			assert.Equal(t, tt.oauthEnabled, got.OAuthEnabled)
		})
	}
}
