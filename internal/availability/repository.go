package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, ex *Exception) error
	GetByID(ctx context.Context, id string) (*Exception, error)
	ListByRoom(ctx context.Context, roomID string) ([]*Exception, error)
	// ListOverlapping returns exceptions whose window overlaps [start, end),
	// ordered by created_at ascending so the newest overlapping exception
	// can be applied last.
	ListOverlapping(ctx context.Context, roomID string, start, end time.Time) ([]*Exception, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const exceptionColumns = `id, room_id, start_time, end_time, available, reason, created_at`

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func (r *pgxRepository) Create(ctx context.Context, ex *Exception) error {
	const query = `
		INSERT INTO public.availability_exceptions (room_id, start_time, end_time, available, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, ex.RoomID, ex.Window.Start, ex.Window.End, ex.Available, ex.Reason).
		Scan(&ex.ID, &ex.CreatedAt)
	if err != nil {
		return fmt.Errorf("create availability exception failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Exception, error) {
	query := `SELECT ` + exceptionColumns + ` FROM public.availability_exceptions WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)

	ex, err := scanException(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get availability exception failed: %w", err)
	}
	return ex, nil
}

func (r *pgxRepository) ListByRoom(ctx context.Context, roomID string) ([]*Exception, error) {
	sql, args, err := psql.Select(exceptionColumns).
		From("public.availability_exceptions").
		Where(squirrel.Eq{"room_id": roomID}).
		OrderBy("start_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list exceptions query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list availability exceptions failed: %w", err)
	}
	defer rows.Close()
	return collectExceptions(rows)
}

func (r *pgxRepository) ListOverlapping(ctx context.Context, roomID string, start, end time.Time) ([]*Exception, error) {
	sql, args, err := psql.Select(exceptionColumns).
		From("public.availability_exceptions").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list overlapping exceptions query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list overlapping exceptions failed: %w", err)
	}
	defer rows.Close()
	return collectExceptions(rows)
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.availability_exceptions WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete availability exception failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanException(row pgx.Row) (*Exception, error) {
	var ex Exception
	if err := row.Scan(&ex.ID, &ex.RoomID, &ex.Window.Start, &ex.Window.End, &ex.Available, &ex.Reason, &ex.CreatedAt); err != nil {
		return nil, err
	}
	return &ex, nil
}

func collectExceptions(rows pgx.Rows) ([]*Exception, error) {
	var result []*Exception
	for rows.Next() {
		ex, err := scanException(rows)
		if err != nil {
			return nil, fmt.Errorf("scan availability exception failed: %w", err)
		}
		result = append(result, ex)
	}
	return result, nil
}
