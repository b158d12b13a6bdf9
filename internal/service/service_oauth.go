// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/MKhiriev/script-writer/internal/config"
	"github.com/MKhiriev/script-writer/internal/logger"
	"github.com/MKhiriev/script-writer/internal/store"
	"github.com/MKhiriev/script-writer/models"
)

const googleIssuerURL = "https://accounts.google.com"

// oauthService maps verified Google identities onto local accounts.
//
// The external exchange is hidden behind [IdentityExchanger]; the service
// itself only decides how an identity becomes a user: match by subject,
// fall back to email, backfill the link, or create a fresh account.
type oauthService struct {
	users     store.UserRepository
	exchanger IdentityExchanger
	logger    *logger.Logger
}

// NewOAuthService constructs an [OAuthService]. When no Google client ID is
// configured the service stays disabled: Enabled reports false and every
// operation returns [ErrOAuthNotConfigured].
func NewOAuthService(users store.UserRepository, cfg config.OAuth, log *logger.Logger) OAuthService {
	log.Debug().Bool("oauth_enabled", cfg.GoogleClientID != "").Msg("creating oauth service")

	svc := &oauthService{users: users, logger: log}
	if cfg.GoogleClientID != "" {
		svc.exchanger = newGoogleExchanger(cfg)
	}
	return svc
}

// Enabled reports whether Google OAuth credentials are configured.
func (s *oauthService) Enabled() bool {
	return s.exchanger != nil
}

// AuthCodeURL returns the provider consent URL the client should open.
func (s *oauthService) AuthCodeURL(ctx context.Context) (string, error) {
	if !s.Enabled() {
		return "", ErrOAuthNotConfigured
	}

	return s.exchanger.AuthCodeURL(ctx, uuid.NewString())
}

// ResolveIdentity exchanges the authorization code for a verified identity
// and maps it onto a user record.
//
// Matching order: by provider subject, then by email. An email match whose
// account was created with a password gets the OAuth identity backfilled, so
// the next sign-in matches by subject directly. No match creates a new
// password-less account.
func (s *oauthService) ResolveIdentity(ctx context.Context, code string) (models.User, error) {
	log := logger.FromContext(ctx)

	if !s.Enabled() {
		return models.User{}, ErrOAuthNotConfigured
	}
	if code == "" {
		return models.User{}, fmt.Errorf("%w: authorization code is required", ErrInvalidDataProvided)
	}

	identity, err := s.exchanger.Exchange(ctx, code)
	if err != nil {
		log.Err(err).Str("func", "*oauthService.ResolveIdentity").Msg("error exchanging authorization code")
		return models.User{}, fmt.Errorf("%w: %w", ErrUpstreamAuth, err)
	}

	user, err := s.users.FindUserByOAuthSubjectOrEmail(ctx, identity.Subject, identity.Email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return s.createOAuthUser(ctx, identity)
		}

		log.Err(err).Str("func", "*oauthService.ResolveIdentity").Msg("error finding user")
		return models.User{}, fmt.Errorf("error finding user: %w", err)
	}

	if user.OAuthSubject == nil || *user.OAuthSubject != identity.Subject {
		if err := s.users.AttachOAuthIdentity(ctx, user.UserID, identity.Subject, identity.Name, identity.AvatarURL); err != nil {
			log.Err(err).Str("func", "*oauthService.ResolveIdentity").Msg("error attaching oauth identity")
			return models.User{}, fmt.Errorf("error attaching oauth identity: %w", err)
		}
		user.OAuthSubject = &identity.Subject
		user.Name = identity.Name
		user.AvatarURL = identity.AvatarURL
	}

	return user, nil
}

func (s *oauthService) createOAuthUser(ctx context.Context, identity OAuthIdentity) (models.User, error) {
	user, err := s.users.CreateUser(ctx, models.User{
		Email:        identity.Email,
		OAuthSubject: &identity.Subject,
		Name:         identity.Name,
		AvatarURL:    identity.AvatarURL,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*oauthService.createOAuthUser").Msg("error creating oauth user")
		return models.User{}, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// googleExchanger is the production [IdentityExchanger] for Google. Provider
// discovery hits the network, so it is deferred to the first call and the
// result is cached for the process lifetime.
type googleExchanger struct {
	cfg config.OAuth

	once        sync.Once
	oauthConfig *oauth2.Config
	verifier    *oidc.IDTokenVerifier
	initErr     error
}

func newGoogleExchanger(cfg config.OAuth) *googleExchanger {
	return &googleExchanger{cfg: cfg}
}

func (g *googleExchanger) init(ctx context.Context) error {
	g.once.Do(func() {
		provider, err := oidc.NewProvider(ctx, googleIssuerURL)
		if err != nil {
			g.initErr = fmt.Errorf("error discovering google oidc provider: %w", err)
			return
		}

		g.oauthConfig = &oauth2.Config{
			ClientID:     g.cfg.GoogleClientID,
			ClientSecret: g.cfg.GoogleClientSecret,
			RedirectURL:  g.cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		}
		g.verifier = provider.Verifier(&oidc.Config{ClientID: g.cfg.GoogleClientID})
	})
	return g.initErr
}

// AuthCodeURL builds the Google consent URL for the given state.
func (g *googleExchanger) AuthCodeURL(ctx context.Context, state string) (string, error) {
	if err := g.init(ctx); err != nil {
		return "", err
	}
	return g.oauthConfig.AuthCodeURL(state), nil
}

// Exchange trades the authorization code for a verified id token and returns
// the identity claims it carries.
func (g *googleExchanger) Exchange(ctx context.Context, code string) (OAuthIdentity, error) {
	if err := g.init(ctx); err != nil {
		return OAuthIdentity{}, err
	}

	token, err := g.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return OAuthIdentity{}, fmt.Errorf("error exchanging authorization code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return OAuthIdentity{}, errors.New("token response carries no id_token")
	}

	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return OAuthIdentity{}, fmt.Errorf("error verifying id token: %w", err)
	}

	var claims struct {
		Subject   string `json:"sub"`
		Email     string `json:"email"`
		Name      string `json:"name"`
		AvatarURL string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return OAuthIdentity{}, fmt.Errorf("error decoding id token claims: %w", err)
	}
	if claims.Subject == "" || claims.Email == "" {
		return OAuthIdentity{}, errors.New("id token is missing subject or email")
	}

	return OAuthIdentity{
		Subject:   claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		AvatarURL: claims.AvatarURL,
	}, nil
}
