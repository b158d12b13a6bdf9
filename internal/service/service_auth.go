package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/script-writer/internal/config"
	"github.com/MKhiriev/script-writer/internal/logger"
	"github.com/MKhiriev/script-writer/internal/store"
	"github.com/MKhiriev/script-writer/internal/utils"
	"github.com/MKhiriev/script-writer/models"
)

const minPasswordLength = 6

// authService is the password-based implementation of [AuthService].
type authService struct {
	users  store.UserRepository
	cfg    config.Auth
	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] backed by the given user
// repository and token settings.
func NewAuthService(users store.UserRepository, cfg config.Auth, log *logger.Logger) AuthService {
	log.Debug().Msg("creating auth service")
	return &authService{
		users:  users,
		cfg:    cfg,
		logger: log,
	}
}

// Register creates a new password account.
//
// Validation: email and password must be present and the password must be at
// least 6 characters, otherwise [ErrInvalidDataProvided]. A duplicate email
// surfaces as [store.ErrEmailAlreadyExists].
func (s *authService) Register(ctx context.Context, creds models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	email := strings.TrimSpace(creds.Email)
	if email == "" || creds.Password == "" {
		return models.User{}, fmt.Errorf("%w: email and password are required", ErrInvalidDataProvided)
	}
	if len(creds.Password) < minPasswordLength {
		return models.User{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidDataProvided, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("error hashing password")
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	hashString := string(hash)
	user, err := s.users.CreateUser(ctx, models.User{
		Email:        email,
		PasswordHash: &hashString,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return models.User{}, store.ErrEmailAlreadyExists
		}

		log.Err(err).Str("func", "*authService.Register").Msg("error creating user")
		return models.User{}, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login authenticates an account by email and password. An unknown email, an
// account that has no password (OAuth-only), and a wrong password all map to
// the same [ErrInvalidCredentials].
func (s *authService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	if creds.Email == "" || creds.Password == "" {
		return models.User{}, fmt.Errorf("%w: email and password are required", ErrInvalidDataProvided)
	}

	user, err := s.users.FindUserByEmail(ctx, strings.TrimSpace(creds.Email))
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrInvalidCredentials
		}

		log.Err(err).Str("func", "*authService.Login").Msg("error finding user")
		return models.User{}, fmt.Errorf("error finding user: %w", err)
	}

	if !user.HasPassword() {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(creds.Password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// CreateToken issues a signed session token for the user.
func (s *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.GenerateJWTToken(s.cfg.TokenIssuer, user.UserID, user.Email, s.cfg.TokenDuration, s.cfg.TokenSignKey)
	if err != nil {
		log.Err(err).Str("func", "*authService.CreateToken").Msg("error generating token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a presented token string. Any validation failure —
// bad signature, wrong issuer, or an expiry in the past — maps to
// [ErrTokenIsExpiredOrInvalid].
func (s *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.cfg.TokenSignKey, s.cfg.TokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.ParseToken").Msg("token rejected")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)
	}

	return token, nil
}
