package studio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, s *Studio) error
	GetByID(ctx context.Context, id string) (*Studio, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Studio, error)
	Update(ctx context.Context, s *Studio) error

	GetOperatingHours(ctx context.Context, studioID string) ([]OperatingHours, error)
	ReplaceOperatingHours(ctx context.Context, studioID string, hours []OperatingHours) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const studioColumns = `id, owner_id, cancellation_policy_id, name, description, address, active, created_at, updated_at`

func (r *pgxRepository) Create(ctx context.Context, s *Studio) error {
	const query = `
		INSERT INTO public.studios (owner_id, cancellation_policy_id, name, description, address, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query, s.OwnerID, s.CancellationPolicyID, s.Name, s.Description, s.Address, s.Active).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create studio failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Studio, error) {
	query := `SELECT ` + studioColumns + ` FROM public.studios WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)

	var s Studio
	if err := row.Scan(&s.ID, &s.OwnerID, &s.CancellationPolicyID, &s.Name, &s.Description, &s.Address, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get studio failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Studio, error) {
	query := `SELECT ` + studioColumns + ` FROM public.studios WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list studios failed: %w", err)
	}
	defer rows.Close()

	var result []*Studio
	for rows.Next() {
		var s Studio
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.CancellationPolicyID, &s.Name, &s.Description, &s.Address, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan studio failed: %w", err)
		}
		result = append(result, &s)
	}
	return result, nil
}

func (r *pgxRepository) Update(ctx context.Context, s *Studio) error {
	const query = `
		UPDATE public.studios
		SET cancellation_policy_id = $1, name = $2, description = $3, address = $4, active = $5, updated_at = now()
		WHERE id = $6
	`
	ct, err := r.pool.Exec(ctx, query, s.CancellationPolicyID, s.Name, s.Description, s.Address, s.Active, s.ID)
	if err != nil {
		return fmt.Errorf("update studio failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) GetOperatingHours(ctx context.Context, studioID string) ([]OperatingHours, error) {
	const query = `
		SELECT id, studio_id, day_of_week, open_time, close_time, is_open
		FROM public.studio_operating_hours
		WHERE studio_id = $1
		ORDER BY day_of_week
	`
	rows, err := r.pool.Query(ctx, query, studioID)
	if err != nil {
		return nil, fmt.Errorf("get operating hours failed: %w", err)
	}
	defer rows.Close()

	var result []OperatingHours
	for rows.Next() {
		var oh OperatingHours
		var dow int16
		if err := rows.Scan(&oh.ID, &oh.StudioID, &dow, &oh.OpenTime, &oh.CloseTime, &oh.IsOpen); err != nil {
			return nil, fmt.Errorf("scan operating hours failed: %w", err)
		}
		oh.DayOfWeek = time.Weekday(dow)
		result = append(result, oh)
	}
	return result, nil
}

// ReplaceOperatingHours swaps the full weekly schedule in one transaction so
// readers never observe a half-written week.
func (r *pgxRepository) ReplaceOperatingHours(ctx context.Context, studioID string, hours []OperatingHours) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace operating hours: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM public.studio_operating_hours WHERE studio_id = $1`, studioID); err != nil {
		return fmt.Errorf("clear operating hours failed: %w", err)
	}

	const insert = `
		INSERT INTO public.studio_operating_hours (studio_id, day_of_week, open_time, close_time, is_open)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, oh := range hours {
		if _, err := tx.Exec(ctx, insert, studioID, int16(oh.DayOfWeek), oh.OpenTime, oh.CloseTime, oh.IsOpen); err != nil {
			return fmt.Errorf("insert operating hours failed: %w", err)
		}
	}

	return tx.Commit(ctx)
}
