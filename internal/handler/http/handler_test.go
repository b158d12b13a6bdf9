package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/script-writer/internal/logger"
	"github.com/MKhiriev/script-writer/internal/service"
	"github.com/MKhiriev/script-writer/models"
)

// ─────────────────────────────────────────────
// Fakes: service layer
// ─────────────────────────────────────────────

type fakeAuthService struct {
	registerFn    func(ctx context.Context, creds models.Credentials) (models.User, error)
	loginFn       func(ctx context.Context, creds models.Credentials) (models.User, error)
	createTokenFn func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
}

func (f *fakeAuthService) Register(ctx context.Context, creds models.Credentials) (models.User, error) {
	if f.registerFn != nil {
		return f.registerFn(ctx, creds)
	}
	return models.User{UserID: 1, Email: creds.Email}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, creds)
	}
	return models.User{UserID: 1, Email: creds.Email}, nil
}

func (f *fakeAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if f.createTokenFn != nil {
		return f.createTokenFn(ctx, user)
	}
	return models.Token{SignedString: "signed-token", UserID: user.UserID}, nil
}

func (f *fakeAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if f.parseTokenFn != nil {
		return f.parseTokenFn(ctx, tokenString)
	}
	return models.Token{}, service.ErrTokenIsExpiredOrInvalid
}

type fakeOAuthService struct {
	enabled     bool
	authCodeURL string
	resolveFn   func(ctx context.Context, code string) (models.User, error)
}

func (f *fakeOAuthService) Enabled() bool { return f.enabled }

func (f *fakeOAuthService) AuthCodeURL(_ context.Context) (string, error) {
	if !f.enabled {
		return "", service.ErrOAuthNotConfigured
	}
	return f.authCodeURL, nil
}

func (f *fakeOAuthService) ResolveIdentity(ctx context.Context, code string) (models.User, error) {
	if !f.enabled {
		return models.User{}, service.ErrOAuthNotConfigured
	}
	if f.resolveFn != nil {
		return f.resolveFn(ctx, code)
	}
	return models.User{UserID: 1}, nil
}

type fakeScriptService struct {
	listFn     func(ctx context.Context, userID int64) ([]models.Script, error)
	upsertFn   func(ctx context.Context, userID int64, script models.Script) (models.Script, error)
	deleteFn   func(ctx context.Context, userID int64, scriptID string) error
	bulkSyncFn func(ctx context.Context, userID int64, scripts []models.Script) models.SyncResult
}

func (f *fakeScriptService) ListForUser(ctx context.Context, userID int64) ([]models.Script, error) {
	if f.listFn != nil {
		return f.listFn(ctx, userID)
	}
	return []models.Script{}, nil
}

func (f *fakeScriptService) Upsert(ctx context.Context, userID int64, script models.Script) (models.Script, error) {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, userID, script)
	}
	script.OwnerID = userID
	return script, nil
}

func (f *fakeScriptService) Delete(ctx context.Context, userID int64, scriptID string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, userID, scriptID)
	}
	return nil
}

func (f *fakeScriptService) BulkSync(ctx context.Context, userID int64, scripts []models.Script) models.SyncResult {
	if f.bulkSyncFn != nil {
		return f.bulkSyncFn(ctx, userID, scripts)
	}
	return models.SyncResult{Synced: len(scripts)}
}

var (
	_ service.AuthService   = (*fakeAuthService)(nil)
	_ service.OAuthService  = (*fakeOAuthService)(nil)
	_ service.ScriptService = (*fakeScriptService)(nil)
)

// newTestRouter assembles a full router over the given fakes. Nil fakes are
// replaced with defaults so tests only spell out what they care about.
func newTestRouter(auth *fakeAuthService, oauth *fakeOAuthService, scripts *fakeScriptService) http.Handler {
	if auth == nil {
		auth = &fakeAuthService{}
	}
	if oauth == nil {
		oauth = &fakeOAuthService{}
	}
	if scripts == nil {
		scripts = &fakeScriptService{}
	}

	h := NewHandler(&service.Services{
		AuthService:   auth,
		OAuthService:  oauth,
		ScriptService: scripts,
	}, logger.Nop())

	return h.Init()
}

// authedParseToken is a ParseToken stub that accepts the fixed test token and
// yields the identity of user 7.
func authedParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if tokenString != "valid-token" {
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}
	return models.Token{
		UserID:      7,
		TokenClaims: models.TokenClaims{Email: "john@example.com"},
	}, nil
}
