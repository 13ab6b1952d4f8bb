package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, p *CancellationPolicy) error
	GetByID(ctx context.Context, id string) (*CancellationPolicy, error)
	List(ctx context.Context) ([]*CancellationPolicy, error)
	Update(ctx context.Context, p *CancellationPolicy) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, p *CancellationPolicy) error {
	const query = `
		INSERT INTO public.cancellation_policies (name, description, hours_before_event, refund_percentage, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, p.Name, p.Description, p.HoursBeforeEvent, p.RefundPercentage, p.Active).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("create cancellation policy failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*CancellationPolicy, error) {
	const query = `
		SELECT id, name, description, hours_before_event, refund_percentage, active, created_at
		FROM public.cancellation_policies
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var p CancellationPolicy
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.HoursBeforeEvent, &p.RefundPercentage, &p.Active, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get cancellation policy failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) List(ctx context.Context) ([]*CancellationPolicy, error) {
	const query = `
		SELECT id, name, description, hours_before_event, refund_percentage, active, created_at
		FROM public.cancellation_policies
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list cancellation policies failed: %w", err)
	}
	defer rows.Close()

	var result []*CancellationPolicy
	for rows.Next() {
		var p CancellationPolicy
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.HoursBeforeEvent, &p.RefundPercentage, &p.Active, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cancellation policy failed: %w", err)
		}
		result = append(result, &p)
	}
	return result, nil
}

func (r *pgxRepository) Update(ctx context.Context, p *CancellationPolicy) error {
	const query = `
		UPDATE public.cancellation_policies
		SET name = $1, description = $2, hours_before_event = $3, refund_percentage = $4, active = $5
		WHERE id = $6
	`
	ct, err := r.pool.Exec(ctx, query, p.Name, p.Description, p.HoursBeforeEvent, p.RefundPercentage, p.Active, p.ID)
	if err != nil {
		return fmt.Errorf("update cancellation policy failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.cancellation_policies WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete cancellation policy failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
