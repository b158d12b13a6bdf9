// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/MKhiriev/script-writer/internal/logger"
	"github.com/MKhiriev/script-writer/internal/service"
	"github.com/MKhiriev/script-writer/models"
)

// callbackPage is served to the OAuth popup window. It hands the auth result
// to the opener via postMessage and closes itself. Rendered with
// html/template so provider-supplied values (error text, profile fields)
// are contextually escaped before they reach the page.
var callbackPage = template.Must(template.New("callback").Parse(`<!DOCTYPE html>
<html>
<head><title>Sign in</title></head>
<body>
<script>
	if (window.opener) {
		window.opener.postMessage({{.}}, "*");
	}
	window.close();
</script>
<p>You can close this window.</p>
</body>
</html>`))

// callbackMessage is the payload posted back to the opener window.
type callbackMessage struct {
	Type  string       `json:"type"`
	Token string       `json:"token,omitempty"`
	User  *models.User `json:"user,omitempty"`
	Error string       `json:"error,omitempty"`
}

func (h *Handler) googleStart(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	authURL, err := h.services.OAuthService.AuthCodeURL(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrOAuthNotConfigured) {
			log.Warn().Msg("google oauth requested but not configured")
			http.Error(w, "google sign-in is not configured", http.StatusServiceUnavailable)
			return
		}

		log.Err(err).Msg("error building google auth url")
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}

	http.Redirect(w, r, authURL, http.StatusFound)
}

func (h *Handler) googleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		log.Warn().Str("provider_error", errParam).Msg("google callback reported an error")
		h.renderCallback(w, r, callbackMessage{Type: "oauth-error", Error: errParam})
		return
	}

	code := r.URL.Query().Get("code")
	user, err := h.services.OAuthService.ResolveIdentity(ctx, code)
	if err != nil {
		log.Err(err).Msg("error resolving google identity")
		h.renderCallback(w, r, callbackMessage{Type: "oauth-error", Error: "sign-in failed"})
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		h.renderCallback(w, r, callbackMessage{Type: "oauth-error", Error: "sign-in failed"})
		return
	}

	h.renderCallback(w, r, callbackMessage{Type: "oauth-success", Token: token.SignedString, User: &user})
}

func (h *Handler) renderCallback(w http.ResponseWriter, r *http.Request, msg callbackMessage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := callbackPage.Execute(w, msg); err != nil {
		logger.FromRequest(r).Err(err).Msg("error rendering oauth callback page")
	}
}
