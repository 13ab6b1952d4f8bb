package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, rm *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	ListByStudio(ctx context.Context, studioID string) ([]*Room, error)
	Update(ctx context.Context, rm *Room) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const roomColumns = `id, studio_id, name, description, hourly_rate, capacity, room_type, active, created_at, updated_at`

func (r *pgxRepository) Create(ctx context.Context, rm *Room) error {
	const query = `
		INSERT INTO public.rooms (studio_id, name, description, hourly_rate, capacity, room_type, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query, rm.StudioID, rm.Name, rm.Description, rm.HourlyRate, rm.Capacity, rm.RoomType, rm.Active).
		Scan(&rm.ID, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create room failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	query := `SELECT ` + roomColumns + ` FROM public.rooms WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)

	var rm Room
	if err := row.Scan(&rm.ID, &rm.StudioID, &rm.Name, &rm.Description, &rm.HourlyRate, &rm.Capacity, &rm.RoomType, &rm.Active, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room failed: %w", err)
	}
	return &rm, nil
}

func (r *pgxRepository) ListByStudio(ctx context.Context, studioID string) ([]*Room, error) {
	query := `SELECT ` + roomColumns + ` FROM public.rooms WHERE studio_id = $1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, studioID)
	if err != nil {
		return nil, fmt.Errorf("list rooms failed: %w", err)
	}
	defer rows.Close()

	var result []*Room
	for rows.Next() {
		var rm Room
		if err := rows.Scan(&rm.ID, &rm.StudioID, &rm.Name, &rm.Description, &rm.HourlyRate, &rm.Capacity, &rm.RoomType, &rm.Active, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan room failed: %w", err)
		}
		result = append(result, &rm)
	}
	return result, nil
}

func (r *pgxRepository) Update(ctx context.Context, rm *Room) error {
	const query = `
		UPDATE public.rooms
		SET name = $1, description = $2, hourly_rate = $3, capacity = $4, room_type = $5, active = $6, updated_at = now()
		WHERE id = $7
	`
	ct, err := r.pool.Exec(ctx, query, rm.Name, rm.Description, rm.HourlyRate, rm.Capacity, rm.RoomType, rm.Active, rm.ID)
	if err != nil {
		return fmt.Errorf("update room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.rooms WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
