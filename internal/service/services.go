package service

import (
	"github.com/MKhiriev/script-writer/internal/config"
	"github.com/MKhiriev/script-writer/internal/logger"
	"github.com/MKhiriev/script-writer/internal/store"
)

// Services aggregates every service the transport layer depends on.
type Services struct {
	AuthService   AuthService
	OAuthService  OAuthService
	ScriptService ScriptService
}

// NewServices wires the service layer on top of the repositories.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, log *logger.Logger) *Services {
	return &Services{
		AuthService:   NewAuthService(storages.UserRepository, cfg.Auth, log),
		OAuthService:  NewOAuthService(storages.UserRepository, cfg.OAuth, log),
		ScriptService: NewScriptService(storages.ScriptRepository, log),
	}
}
