package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/script-writer/internal/logger"
	"github.com/MKhiriev/script-writer/models"
)

// selectBuilder shortens the squirrel type in where-clause closures.
type selectBuilder = sq.SelectBuilder

// userRepository is the SQL-backed implementation of [UserRepository].
// It handles account creation and lookup against the "users" table and is
// shared by the PostgreSQL and SQLite backends; queries are built with
// squirrel so the placeholder format follows the driver.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new account record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// Error handling:
//   - unique constraint violation (duplicate email or OAuth subject) →
//     [ErrEmailAlreadyExists];
//   - any other driver-level error → wrapped as [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Insert(user.TableName()).
		Columns("email", "password_hash", "oauth_subject", "name", "avatar_url").
		Values(user.Email, user.PasswordHash, user.OAuthSubject, user.Name, user.AvatarURL).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building insert query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&user.UserID, &user.CreatedAt); err != nil {
		if r.db.errorClassificator.IsUniqueViolation(err) {
			return models.User{}, ErrEmailAlreadyExists
		}

		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return user, nil
}

// FindUserByEmail retrieves an account record by its unique email.
//
// Returns [ErrNoUserWasFound] when the result set is empty; any other
// driver-level error is wrapped as [ErrExecutingQuery].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByEmail", func(b selectBuilder) selectBuilder {
		return b.Where("email = ?", email)
	})
}

// FindUserByOAuthSubjectOrEmail retrieves an account matched by the identity
// provider's subject id or, failing that, by email. A single row is enough:
// both columns are unique, and a subject/email pair always belongs to the
// same person once linked.
func (r *userRepository) FindUserByOAuthSubjectOrEmail(ctx context.Context, subject, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByOAuthSubjectOrEmail", func(b selectBuilder) selectBuilder {
		return b.Where("oauth_subject = ? OR email = ?", subject, email)
	})
}

// AttachOAuthIdentity backfills the OAuth subject, display name and avatar
// on an existing account.
func (r *userRepository) AttachOAuthIdentity(ctx context.Context, userID int64, subject, name, avatarURL string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Update(models.User{}.TableName()).
		Set("oauth_subject", subject).
		Set("name", name).
		Set("avatar_url", avatarURL).
		Where("id = ?", userID).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.AttachOAuthIdentity").Msg("error building update query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*userRepository.AttachOAuthIdentity").Msg("error updating user identity")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *userRepository) findOne(ctx context.Context, caller string, where func(selectBuilder) selectBuilder) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := where(r.db.Builder().
		Select("id", "email", "password_hash", "oauth_subject", "name", "avatar_url", "created_at").
		From(models.User{}.TableName())).
		Limit(1).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", caller).Msg("error building select query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&foundUser.UserID, &foundUser.Email, &foundUser.PasswordHash,
		&foundUser.OAuthSubject, &foundUser.Name, &foundUser.AvatarURL, &foundUser.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", caller).Msg("error scanning user row")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return foundUser, nil
}
