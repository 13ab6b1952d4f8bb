package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Filter struct {
	CustomerID string
	RoomID     string
	StudioID   string
	Status     Status
	Page       int
	PageSize   int
}

// SweepStats counts the rows each bulk time-derived transition touched.
type SweepStats struct {
	AutoConfirmed int64
	Started       int64
	Completed     int64
}

type Repository interface {
	Create(ctx context.Context, res *Reservation) error
	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)

	// ListActiveInWindow returns reservations in an active status whose
	// interval overlaps [start, end), ordered by start_time.
	ListActiveInWindow(ctx context.Context, roomID string, start, end time.Time) ([]*Reservation, error)

	// ListPendingByRoom returns PENDING reservations still awaiting owner
	// review, i.e. created after the auto-confirm cutoff.
	ListPendingByRoom(ctx context.Context, roomID string, createdAfter time.Time) ([]*Reservation, error)
	ListPendingByStudio(ctx context.Context, studioID string, createdAfter time.Time) ([]*Reservation, error)

	// UpdateStatus moves a reservation from one status to another. It
	// reports ErrInvalidTransition when the stored status no longer
	// matches from.
	UpdateStatus(ctx context.Context, id string, from, to Status) error
	Finalize(ctx context.Context, id string, from []Status, to Status, reason *string, cancelledAt *time.Time) error

	Sweep(ctx context.Context, now time.Time) (SweepStats, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const reservationColumns = `id, room_id, customer_id, start_time, end_time, total_price, status, notes, artist_name, instruments, created_at, updated_at, cancelled_at, cancel_reason`

func (r *pgxRepository) Create(ctx context.Context, res *Reservation) error {
	const query = `
		INSERT INTO public.reservations (room_id, customer_id, start_time, end_time, total_price, status, notes, artist_name, instruments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		res.RoomID, res.CustomerID, res.Window.Start, res.Window.End,
		res.TotalPrice, res.Status, res.Notes, res.ArtistName, res.Instruments,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			// The no-overlap constraint fired under a race the lock did
			// not cover. The colliding row is unknown here; report the
			// requested window.
			return &ConflictError{Conflict: res.Window}
		}
		return fmt.Errorf("create reservation failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM public.reservations WHERE id = $1`
	res, err := scanReservation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation failed: %w", err)
	}
	return res, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"r.id", "r.room_id", "r.customer_id", "r.start_time", "r.end_time",
		"r.total_price", "r.status", "r.notes", "r.artist_name", "r.instruments",
		"r.created_at", "r.updated_at", "r.cancelled_at", "r.cancel_reason",
		"count(*) OVER() as total_count",
	).
		From("public.reservations r").
		Join("public.rooms rm ON r.room_id = rm.id")

	if filter.CustomerID != "" {
		query = query.Where(squirrel.Eq{"r.customer_id": filter.CustomerID})
	}
	if filter.RoomID != "" {
		query = query.Where(squirrel.Eq{"r.room_id": filter.RoomID})
	}
	if filter.StudioID != "" {
		query = query.Where(squirrel.Eq{"rm.studio_id": filter.StudioID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"r.status": filter.Status})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("r.start_time DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var reservations []*Reservation
	var total int

	for rows.Next() {
		var res Reservation
		if err := rows.Scan(
			&res.ID, &res.RoomID, &res.CustomerID, &res.Window.Start, &res.Window.End,
			&res.TotalPrice, &res.Status, &res.Notes, &res.ArtistName, &res.Instruments,
			&res.CreatedAt, &res.UpdatedAt, &res.CancelledAt, &res.CancelReason, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan reservation failed: %w", err)
		}
		reservations = append(reservations, &res)
	}

	return reservations, total, nil
}

func (r *pgxRepository) ListActiveInWindow(ctx context.Context, roomID string, start, end time.Time) ([]*Reservation, error) {
	// Hits idx_reservations_room_status_start.
	query := `
		SELECT ` + reservationColumns + `
		FROM public.reservations
		WHERE room_id = $1
		  AND status = ANY($2)
		  AND start_time < $4 AND end_time > $3
		ORDER BY start_time
	`
	rows, err := r.pool.Query(ctx, query, roomID, statusStrings(ActiveStatuses), start, end)
	if err != nil {
		return nil, fmt.Errorf("list active reservations failed: %w", err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r *pgxRepository) ListPendingByRoom(ctx context.Context, roomID string, createdAfter time.Time) ([]*Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM public.reservations
		WHERE room_id = $1 AND status = $2 AND created_at > $3
		ORDER BY start_time
	`
	rows, err := r.pool.Query(ctx, query, roomID, StatusPending, createdAfter)
	if err != nil {
		return nil, fmt.Errorf("list pending reservations failed: %w", err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r *pgxRepository) ListPendingByStudio(ctx context.Context, studioID string, createdAfter time.Time) ([]*Reservation, error) {
	query := `
		SELECT r.id, r.room_id, r.customer_id, r.start_time, r.end_time, r.total_price, r.status,
		       r.notes, r.artist_name, r.instruments, r.created_at, r.updated_at, r.cancelled_at, r.cancel_reason
		FROM public.reservations r
		JOIN public.rooms rm ON r.room_id = rm.id
		WHERE rm.studio_id = $1 AND r.status = $2 AND r.created_at > $3
		ORDER BY r.start_time
	`
	rows, err := r.pool.Query(ctx, query, studioID, StatusPending, createdAfter)
	if err != nil {
		return nil, fmt.Errorf("list pending reservations failed: %w", err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	const query = `
		UPDATE public.reservations
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`
	ct, err := r.pool.Exec(ctx, query, to, id, from)
	if err != nil {
		return fmt.Errorf("update reservation status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrInvalidTransition
	}
	return nil
}

// Finalize moves a reservation into a terminal state, recording when and why.
func (r *pgxRepository) Finalize(ctx context.Context, id string, from []Status, to Status, reason *string, cancelledAt *time.Time) error {
	const query = `
		UPDATE public.reservations
		SET status = $1, cancelled_at = $2, cancel_reason = $3, updated_at = now()
		WHERE id = $4 AND status = ANY($5)
	`
	ct, err := r.pool.Exec(ctx, query, to, cancelledAt, reason, id, statusStrings(from))
	if err != nil {
		return fmt.Errorf("finalize reservation failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrInvalidTransition
	}
	return nil
}

// Sweep applies the time-derived transitions in bulk. Each statement is
// conditional on stored status and timestamps, so repeated or concurrent
// sweeps are harmless.
func (r *pgxRepository) Sweep(ctx context.Context, now time.Time) (SweepStats, error) {
	var stats SweepStats

	ct, err := r.pool.Exec(ctx, `
		UPDATE public.reservations
		SET status = $1, updated_at = now()
		WHERE status = $2 AND created_at <= $3
	`, StatusConfirmed, StatusPending, now.Add(-AutoConfirmAfter))
	if err != nil {
		return stats, fmt.Errorf("sweep auto-confirm failed: %w", err)
	}
	stats.AutoConfirmed = ct.RowsAffected()

	ct, err = r.pool.Exec(ctx, `
		UPDATE public.reservations
		SET status = $1, updated_at = now()
		WHERE status = ANY($2) AND end_time <= $3
	`, StatusCompleted, statusStrings([]Status{StatusConfirmed, StatusInProgress}), now)
	if err != nil {
		return stats, fmt.Errorf("sweep complete failed: %w", err)
	}
	stats.Completed = ct.RowsAffected()

	ct, err = r.pool.Exec(ctx, `
		UPDATE public.reservations
		SET status = $1, updated_at = now()
		WHERE status = $2 AND start_time <= $3 AND end_time > $3
	`, StatusInProgress, StatusConfirmed, now)
	if err != nil {
		return stats, fmt.Errorf("sweep start failed: %w", err)
	}
	stats.Started = ct.RowsAffected()

	return stats, nil
}

func statusStrings(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func scanReservation(row pgx.Row) (*Reservation, error) {
	var res Reservation
	if err := row.Scan(
		&res.ID, &res.RoomID, &res.CustomerID, &res.Window.Start, &res.Window.End,
		&res.TotalPrice, &res.Status, &res.Notes, &res.ArtistName, &res.Instruments,
		&res.CreatedAt, &res.UpdatedAt, &res.CancelledAt, &res.CancelReason,
	); err != nil {
		return nil, err
	}
	return &res, nil
}

func collectReservations(rows pgx.Rows) ([]*Reservation, error) {
	var result []*Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation failed: %w", err)
		}
		result = append(result, res)
	}
	return result, nil
}
