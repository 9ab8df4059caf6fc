package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	"github.com/SscSPs/fintrack_app/internal/models"
	"github.com/SscSPs/fintrack_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const profileColumns = `profile_id, user_id, name, profile_type, photo_url, is_active, created_at, last_updated_at`

type PgxProfileRepository struct {
	BaseRepository
}

func newPgxProfileRepository(pool *pgxpool.Pool) *PgxProfileRepository {
	return &PgxProfileRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProfileRepositoryFacade = (*PgxProfileRepository)(nil)

func scanProfile(row pgx.Row) (models.Profile, error) {
	var m models.Profile
	err := row.Scan(
		&m.ProfileID,
		&m.UserID,
		&m.Name,
		&m.ProfileType,
		&m.PhotoURL,
		&m.IsActive,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func (r *PgxProfileRepository) SaveProfile(ctx context.Context, profile domain.Profile) error {
	m := mapping.ToModelProfile(profile)
	query := `
		INSERT INTO profiles (profile_id, user_id, name, profile_type, photo_url, is_active, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query, m.ProfileID, m.UserID, m.Name, m.ProfileType, m.PhotoURL, m.IsActive, m.CreatedAt, m.LastUpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: profile with ID %s already exists", apperrors.ErrDuplicate, m.ProfileID)
		}
		return fmt.Errorf("failed to save profile %s: %w", m.ProfileID, err)
	}
	return nil
}

func (r *PgxProfileRepository) FindProfileByID(ctx context.Context, userID string, profileID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE profile_id = $1 AND user_id = $2;`
	m, err := scanProfile(r.Pool.QueryRow(ctx, query, profileID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find profile %s: %w", profileID, err)
	}
	d := mapping.ToDomainProfile(m)
	return &d, nil
}

func (r *PgxProfileRepository) ListProfiles(ctx context.Context, userID string) ([]domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1 ORDER BY created_at, name;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []domain.Profile{}
	for rows.Next() {
		m, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		profiles = append(profiles, mapping.ToDomainProfile(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}
	return profiles, nil
}

func (r *PgxProfileRepository) UpdateProfile(ctx context.Context, profile domain.Profile) error {
	m := mapping.ToModelProfile(profile)
	query := `
		UPDATE profiles
		SET name = $1, profile_type = $2, photo_url = $3, is_active = $4, last_updated_at = $5
		WHERE profile_id = $6 AND user_id = $7;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, m.Name, m.ProfileType, m.PhotoURL, m.IsActive, m.LastUpdatedAt, m.ProfileID, m.UserID)
	if err != nil {
		return fmt.Errorf("failed to update profile %s: %w", m.ProfileID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
