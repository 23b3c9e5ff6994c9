package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-service/internal/domain"
)

// ProfileRepository encapsulates profile persistence.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	Upsert(ctx context.Context, profile *domain.Profile) error
	GetByOwner(ctx context.Context, ownerID string) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository instantiates repository.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	const query = `
        INSERT INTO user_profiles (owner_id, full_name, phone, company)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		profile.OwnerID,
		profile.FullName,
		profile.Phone,
		profile.Company,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	const query = `
        INSERT INTO user_profiles (owner_id, full_name, phone, company)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (owner_id) DO UPDATE
            SET full_name=EXCLUDED.full_name, phone=EXCLUDED.phone,
                company=EXCLUDED.company, updated_at=NOW()
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		profile.OwnerID,
		profile.FullName,
		profile.Phone,
		profile.Company,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) GetByOwner(ctx context.Context, ownerID string) (*domain.Profile, error) {
	const query = `
        SELECT id, owner_id, full_name, phone, company, created_at, updated_at
        FROM user_profiles WHERE owner_id=$1`

	var profile domain.Profile
	if err := r.pool.QueryRow(ctx, query, ownerID).Scan(
		&profile.ID,
		&profile.OwnerID,
		&profile.FullName,
		&profile.Phone,
		&profile.Company,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]domain.Profile, error) {
	const query = `
        SELECT id, owner_id, full_name, phone, company, created_at, updated_at
        FROM user_profiles ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Profile
	for rows.Next() {
		var profile domain.Profile
		if err := rows.Scan(
			&profile.ID,
			&profile.OwnerID,
			&profile.FullName,
			&profile.Phone,
			&profile.Company,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, profile)
	}
	return result, rows.Err()
}
