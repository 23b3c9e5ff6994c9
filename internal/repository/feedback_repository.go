package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-service/internal/domain"
)

// FeedbackFilter narrows listing queries. A nil OwnerID lists all rows.
type FeedbackFilter struct {
	OwnerID *string
}

// FeedbackRepository encapsulates feedback persistence. Records are
// immutable after creation; Delete is idempotent.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
	GetByID(ctx context.Context, id string) (*domain.Feedback, error)
	List(ctx context.Context, filter FeedbackFilter) ([]domain.Feedback, error)
	Delete(ctx context.Context, id string) error
}

type feedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository instantiates repository.
func NewFeedbackRepository(pool *pgxpool.Pool) FeedbackRepository {
	return &feedbackRepository{pool: pool}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	const query = `
        INSERT INTO feedback (owner_id, title, message, rating)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		feedback.OwnerID,
		feedback.Title,
		feedback.Message,
		feedback.Rating,
	).Scan(&feedback.ID, &feedback.CreatedAt)
}

func (r *feedbackRepository) GetByID(ctx context.Context, id string) (*domain.Feedback, error) {
	const query = `
        SELECT id, owner_id, title, message, rating, created_at
        FROM feedback WHERE id=$1`

	var feedback domain.Feedback
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&feedback.ID,
		&feedback.OwnerID,
		&feedback.Title,
		&feedback.Message,
		&feedback.Rating,
		&feedback.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepository) List(ctx context.Context, filter FeedbackFilter) ([]domain.Feedback, error) {
	const base = `
        SELECT id, owner_id, title, message, rating, created_at
        FROM feedback`

	var rows pgx.Rows
	var err error
	if filter.OwnerID != nil {
		rows, err = r.pool.Query(ctx, base+` WHERE owner_id=$1 ORDER BY created_at DESC`, *filter.OwnerID)
	} else {
		rows, err = r.pool.Query(ctx, base+` ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Feedback
	for rows.Next() {
		var feedback domain.Feedback
		if err := rows.Scan(
			&feedback.ID,
			&feedback.OwnerID,
			&feedback.Title,
			&feedback.Message,
			&feedback.Rating,
			&feedback.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, feedback)
	}
	return result, rows.Err()
}

func (r *feedbackRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM feedback WHERE id=$1`, id)
	return err
}
