package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/script-writer/internal/config"
	"github.com/MKhiriev/script-writer/internal/logger"
	"github.com/MKhiriev/script-writer/internal/store"
	"github.com/MKhiriev/script-writer/models"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn               func(ctx context.Context, user models.User) (models.User, error)
	findByEmailFn          func(ctx context.Context, email string) (models.User, error)
	findBySubjectOrEmailFn func(ctx context.Context, subject, email string) (models.User, error)
	attachFn               func(ctx context.Context, userID int64, subject, name, avatarURL string) error
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *mockUserRepository) FindUserByOAuthSubjectOrEmail(ctx context.Context, subject, email string) (models.User, error) {
	if m.findBySubjectOrEmailFn != nil {
		return m.findBySubjectOrEmailFn(ctx, subject, email)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *mockUserRepository) AttachOAuthIdentity(ctx context.Context, userID int64, subject, name, avatarURL string) error {
	if m.attachFn != nil {
		return m.attachFn(ctx, userID, subject, name, avatarURL)
	}
	return nil
}

func testAuthConfig() config.Auth {
	return config.Auth{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "script-writer-test",
		TokenDuration: time.Hour,
	}
}

func hashOf(t *testing.T, password string) *string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	s := string(hash)
	return &s
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestAuthService_Register_HashesPassword(t *testing.T) {
	var created models.User
	repo := &mockUserRepository{
		createFn: func(_ context.Context, user models.User) (models.User, error) {
			created = user
			user.UserID = 1
			return user, nil
		},
	}
	svc := NewAuthService(repo, testAuthConfig(), logger.Nop())

	user, err := svc.Register(context.Background(), models.Credentials{
		Email:    "john@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.UserID)

	require.NotNil(t, created.PasswordHash)
	assert.NotEqual(t, "secret-password", *created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*created.PasswordHash), []byte("secret-password")))
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := NewAuthService(&mockUserRepository{}, testAuthConfig(), logger.Nop())

	tests := []struct {
		name  string
		creds models.Credentials
	}{
		{"missing email", models.Credentials{Password: "secret-password"}},
		{"missing password", models.Credentials{Email: "john@example.com"}},
		{"short password", models.Credentials{Email: "john@example.com", Password: "12345"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.creds)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{
		createFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}
	svc := NewAuthService(repo, testAuthConfig(), logger.Nop())

	_, err := svc.Register(context.Background(), models.Credentials{
		Email:    "john@example.com",
		Password: "secret-password",
	})
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	repo := &mockUserRepository{
		findByEmailFn: func(_ context.Context, email string) (models.User, error) {
			return models.User{UserID: 5, Email: email, PasswordHash: hashOf(t, "secret-password")}, nil
		},
	}
	svc := NewAuthService(repo, testAuthConfig(), logger.Nop())

	user, err := svc.Login(context.Background(), models.Credentials{
		Email:    "john@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.UserID)
}

func TestAuthService_Login_UnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	unknownRepo := &mockUserRepository{
		findByEmailFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}
	wrongPassRepo := &mockUserRepository{
		findByEmailFn: func(_ context.Context, email string) (models.User, error) {
			return models.User{UserID: 5, Email: email, PasswordHash: hashOf(t, "other-password")}, nil
		},
	}

	creds := models.Credentials{Email: "john@example.com", Password: "secret-password"}

	_, errUnknown := NewAuthService(unknownRepo, testAuthConfig(), logger.Nop()).Login(context.Background(), creds)
	_, errWrongPass := NewAuthService(wrongPassRepo, testAuthConfig(), logger.Nop()).Login(context.Background(), creds)

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestAuthService_Login_OAuthOnlyAccountHasNoPassword(t *testing.T) {
	subject := "google-sub-1"
	repo := &mockUserRepository{
		findByEmailFn: func(_ context.Context, email string) (models.User, error) {
			return models.User{UserID: 5, Email: email, OAuthSubject: &subject}, nil
		},
	}
	svc := NewAuthService(repo, testAuthConfig(), logger.Nop())

	_, err := svc.Login(context.Background(), models.Credentials{
		Email:    "jane@example.com",
		Password: "secret-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// ── Tokens ───────────────────────────────────────────────────────────────────

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := NewAuthService(&mockUserRepository{}, testAuthConfig(), logger.Nop())
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: 9, Email: "john@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(9), parsed.UserID)
	assert.Equal(t, "john@example.com", parsed.Email)
}

func TestAuthService_ParseToken_RejectsExpired(t *testing.T) {
	cfg := testAuthConfig()
	cfg.TokenDuration = -time.Hour
	expiredIssuer := NewAuthService(&mockUserRepository{}, cfg, logger.Nop())

	token, err := expiredIssuer.CreateToken(context.Background(), models.User{UserID: 9, Email: "john@example.com"})
	require.NoError(t, err)

	svc := NewAuthService(&mockUserRepository{}, testAuthConfig(), logger.Nop())
	_, err = svc.ParseToken(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseToken_RejectsWrongIssuer(t *testing.T) {
	otherCfg := testAuthConfig()
	otherCfg.TokenIssuer = "someone-else"
	otherIssuer := NewAuthService(&mockUserRepository{}, otherCfg, logger.Nop())

	token, err := otherIssuer.CreateToken(context.Background(), models.User{UserID: 9})
	require.NoError(t, err)

	svc := NewAuthService(&mockUserRepository{}, testAuthConfig(), logger.Nop())
	_, err = svc.ParseToken(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseToken_RejectsGarbage(t *testing.T) {
	svc := NewAuthService(&mockUserRepository{}, testAuthConfig(), logger.Nop())

	_, err := svc.ParseToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_CreateToken_FailsWithoutSignKey(t *testing.T) {
	cfg := testAuthConfig()
	cfg.TokenSignKey = ""
	svc := NewAuthService(&mockUserRepository{}, cfg, logger.Nop())

	_, err := svc.CreateToken(context.Background(), models.User{UserID: 9})
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

var _ store.UserRepository = (*mockUserRepository)(nil)

func TestAuthService_Login_Validation(t *testing.T) {
	svc := NewAuthService(&mockUserRepository{}, testAuthConfig(), logger.Nop())

	_, err := svc.Login(context.Background(), models.Credentials{})
	assert.True(t, errors.Is(err, ErrInvalidDataProvided))
}
