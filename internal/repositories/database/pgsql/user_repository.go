package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	"github.com/SscSPs/fintrack_app/internal/models"
	"github.com/SscSPs/fintrack_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `
	user_id, username, email, name, password_hash, auth_provider, provider_user_id, email_verified,
	two_factor_enabled, two_factor_secret, backup_code_hashes,
	refresh_token_hash, refresh_token_expiry_time, created_at, last_updated_at
`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` = $1;`
	var m models.User
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&m.UserID,
		&m.Username,
		&m.Email,
		&m.Name,
		&m.PasswordHash,
		&m.AuthProvider,
		&m.ProviderUserID,
		&m.EmailVerified,
		&m.TwoFactorEnabled,
		&m.TwoFactorSecret,
		&m.BackupCodeHashes,
		&m.RefreshTokenHash,
		&m.RefreshTokenExpiryTime,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by %s: %w", where, err)
	}
	if m.BackupCodeHashes == nil {
		m.BackupCodeHashes = []string{}
	}
	d := mapping.ToDomainUser(m)
	return &d, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, "user_id", userID)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "username", username)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email", email)
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (
			user_id, username, email, name, password_hash, auth_provider, provider_user_id, email_verified,
			two_factor_enabled, two_factor_secret, backup_code_hashes, created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Username,
		m.Email,
		m.Name,
		m.PasswordHash,
		m.AuthProvider,
		m.ProviderUserID,
		m.EmailVerified,
		m.TwoFactorEnabled,
		m.TwoFactorSecret,
		m.BackupCodeHashes,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username or email already taken", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user %s: %w", m.UserID, err)
	}
	return nil
}

// UpdateTwoFactor replaces the user's 2FA state. A nil secret clears it.
func (r *PgxUserRepository) UpdateTwoFactor(ctx context.Context, userID string, enabled bool, secret *string, backupCodeHashes []string) error {
	if backupCodeHashes == nil {
		backupCodeHashes = []string{}
	}
	query := `
		UPDATE users
		SET two_factor_enabled = $1, two_factor_secret = $2, backup_code_hashes = $3, last_updated_at = $4
		WHERE user_id = $5;
	`
	return r.execForUser(ctx, query, enabled, mapping.ToNullString(secret), backupCodeHashes, time.Now(), userID)
}

// ConsumeBackupCode removes one backup code hash. The ANY guard makes concurrent
// uses of the same code race on the row lock; only the first sees a match.
func (r *PgxUserRepository) ConsumeBackupCode(ctx context.Context, userID string, backupCodeHash string) error {
	query := `
		UPDATE users
		SET backup_code_hashes = array_remove(backup_code_hashes, $1), last_updated_at = $2
		WHERE user_id = $3 AND $1 = ANY(backup_code_hashes);
	`
	return r.execForUser(ctx, query, backupCodeHash, time.Now(), userID)
}

// UpdateRefreshToken stores a refresh token hash; an empty hash clears both columns.
func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiry *time.Time) error {
	var hash sql.NullString
	var exp sql.NullTime
	if tokenHash != "" {
		hash = sql.NullString{String: tokenHash, Valid: true}
		if expiry != nil {
			exp = sql.NullTime{Time: *expiry, Valid: true}
		}
	}
	query := `
		UPDATE users
		SET refresh_token_hash = $1, refresh_token_expiry_time = $2, last_updated_at = $3
		WHERE user_id = $4;
	`
	return r.execForUser(ctx, query, hash, exp, time.Now(), userID)
}

func (r *PgxUserRepository) LinkProvider(ctx context.Context, userID string, provider domain.AuthProvider, providerUserID string, emailVerified bool) error {
	query := `
		UPDATE users
		SET auth_provider = $1, provider_user_id = $2, email_verified = email_verified OR $3, last_updated_at = $4
		WHERE user_id = $5;
	`
	return r.execForUser(ctx, query, string(provider), providerUserID, emailVerified, time.Now(), userID)
}

func (r *PgxUserRepository) execForUser(ctx context.Context, query string, args ...any) error {
	cmdTag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
