package reservation

import (
	"context"
	"time"

	"github.com/slapp/studio-booking-backend/internal/availability"
	"github.com/slapp/studio-booking-backend/internal/interval"
	"github.com/slapp/studio-booking-backend/internal/pkg/lock"
	"github.com/slapp/studio-booking-backend/internal/policy"
	"github.com/slapp/studio-booking-backend/internal/room"
	"github.com/slapp/studio-booking-backend/internal/studio"
)

type ProposeRequest struct {
	RoomID      string
	CustomerID  string
	Start       time.Time
	End         time.Time
	Notes       *string
	ArtistName  *string
	Instruments *string
}

// CancelResult carries the cancelled reservation and the refund percentage
// computed from the studio's cancellation policy. Refund execution is the
// caller's concern.
type CancelResult struct {
	Reservation      *Reservation
	RefundPercentage int
}

type Service interface {
	// Resolve returns the ordered, disjoint bookable sub-intervals of the
	// query window: open per the availability ledger, minus active
	// reservations. An inactive room resolves to nothing.
	Resolve(ctx context.Context, roomID string, window interval.Interval) ([]interval.Interval, error)

	// Propose validates and commits a reservation request. The check and
	// insert are serialized per room, so two concurrent proposals for
	// overlapping windows cannot both succeed.
	Propose(ctx context.Context, req ProposeRequest) (*Reservation, error)

	GetByID(ctx context.Context, id string, actorID string) (*Reservation, error)

	// List returns reservations visible to the actor: their own by default,
	// or a whole studio's when filter.StudioID names a studio they own.
	List(ctx context.Context, actorID string, filter Filter) ([]*Reservation, int, error)

	Approve(ctx context.Context, id string, actorID string) (*Reservation, error)
	Reject(ctx context.Context, id string, actorID string, reason *string) (*Reservation, error)
	Cancel(ctx context.Context, id string, actorID string, reason *string) (*CancelResult, error)

	ListPendingByRoom(ctx context.Context, roomID string, actorID string) ([]*Reservation, error)
	ListPendingByStudio(ctx context.Context, studioID string, actorID string) ([]*Reservation, error)

	// Sweep applies pending time-derived transitions in bulk.
	Sweep(ctx context.Context) (SweepStats, error)
}

type service struct {
	repo     Repository
	rooms    room.Service
	studios  studio.Service
	policies policy.Service
	ledger   availability.Ledger
	locker   lock.Locker
	now      func() time.Time
}

func NewService(repo Repository, rooms room.Service, studios studio.Service, policies policy.Service, ledger availability.Ledger, locker lock.Locker) Service {
	return &service{
		repo:     repo,
		rooms:    rooms,
		studios:  studios,
		policies: policies,
		ledger:   ledger,
		locker:   locker,
		now:      time.Now,
	}
}

func lockKey(roomID string) string {
	return "room:" + roomID
}

func (s *service) Resolve(ctx context.Context, roomID string, window interval.Interval) ([]interval.Interval, error) {
	rm, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !rm.Active {
		return nil, nil
	}

	open, err := s.ledger.OpenIntervalsWithin(ctx, roomID, window)
	if err != nil {
		return nil, err
	}

	active, err := s.repo.ListActiveInWindow(ctx, roomID, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	busy := make([]interval.Interval, len(active))
	for i, res := range active {
		busy[i] = res.Window
	}

	var slots []interval.Interval
	for _, openIv := range open {
		slots = append(slots, interval.Subtract(openIv, busy)...)
	}
	return slots, nil
}

func (s *service) Propose(ctx context.Context, req ProposeRequest) (*Reservation, error) {
	window, err := interval.New(req.Start, req.End)
	if err != nil {
		return nil, ErrInvalidInterval
	}

	now := s.now()
	if window.Start.Before(now) {
		return nil, ErrInvalidWindow
	}
	if window.Duration()%time.Hour != 0 {
		return nil, ErrInvalidWindow
	}

	rm, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if !rm.Active {
		return nil, ErrRoomInactive
	}

	unlock, err := s.locker.Acquire(ctx, lockKey(rm.ID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	open, err := s.ledger.OpenIntervalsWithin(ctx, rm.ID, window)
	if err != nil {
		return nil, err
	}
	if closed := interval.Subtract(window, open); len(closed) > 0 {
		return nil, &ConflictError{Conflict: closed[0]}
	}

	active, err := s.repo.ListActiveInWindow(ctx, rm.ID, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	if len(active) > 0 {
		conflict, _ := active[0].Window.Clamp(window)
		return nil, &ConflictError{Conflict: conflict}
	}

	hours := int(window.Duration() / time.Hour)
	res := &Reservation{
		RoomID:      rm.ID,
		CustomerID:  req.CustomerID,
		Window:      window,
		TotalPrice:  rm.HourlyRate * float64(hours),
		Status:      StatusPending,
		Notes:       req.Notes,
		ArtistName:  req.ArtistName,
		Instruments: req.Instruments,
	}
	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// ownerOf resolves the owner of the studio a room belongs to.
func (s *service) ownerOf(ctx context.Context, roomID string) (string, error) {
	rm, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return "", err
	}
	st, err := s.studios.GetByID(ctx, rm.StudioID)
	if err != nil {
		return "", err
	}
	return st.OwnerID, nil
}

func (s *service) GetByID(ctx context.Context, id string, actorID string) (*Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if res.CustomerID != actorID {
		ownerID, err := s.ownerOf(ctx, res.RoomID)
		if err != nil {
			return nil, err
		}
		if ownerID != actorID {
			return nil, ErrForbidden
		}
	}

	s.applyDerived(ctx, res)
	return res, nil
}

// applyDerived promotes the stored status to the effective one and persists
// the promotion best-effort. A lost race with the sweeper is fine; both
// write the same result.
func (s *service) applyDerived(ctx context.Context, res *Reservation) {
	eff := res.EffectiveStatus(s.now())
	if eff == res.Status {
		return
	}
	_ = s.repo.UpdateStatus(ctx, res.ID, res.Status, eff)
	res.Status = eff
}

func (s *service) List(ctx context.Context, actorID string, filter Filter) ([]*Reservation, int, error) {
	if filter.StudioID != "" {
		st, err := s.studios.GetByID(ctx, filter.StudioID)
		if err != nil {
			return nil, 0, err
		}
		if st.OwnerID != actorID {
			return nil, 0, ErrForbidden
		}
	} else {
		filter.CustomerID = actorID
	}

	reservations, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	now := s.now()
	for _, res := range reservations {
		res.Status = res.EffectiveStatus(now)
	}
	return reservations, total, nil
}

func (s *service) Approve(ctx context.Context, id string, actorID string) (*Reservation, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ownerID, err := s.ownerOf(ctx, existing.RoomID)
	if err != nil {
		return nil, err
	}
	if ownerID != actorID {
		return nil, ErrForbidden
	}

	unlock, err := s.locker.Acquire(ctx, lockKey(existing.RoomID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if eff := res.EffectiveStatus(s.now()); eff != StatusPending {
		return nil, ErrInvalidTransition.WithDetail("reservation is " + string(eff))
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusPending, StatusConfirmed); err != nil {
		return nil, err
	}
	res.Status = StatusConfirmed
	return res, nil
}

func (s *service) Reject(ctx context.Context, id string, actorID string, reason *string) (*Reservation, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ownerID, err := s.ownerOf(ctx, existing.RoomID)
	if err != nil {
		return nil, err
	}
	if ownerID != actorID {
		return nil, ErrForbidden
	}

	unlock, err := s.locker.Acquire(ctx, lockKey(existing.RoomID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if eff := res.EffectiveStatus(s.now()); eff != StatusPending {
		return nil, ErrInvalidTransition.WithDetail("reservation is " + string(eff))
	}
	if err := s.repo.Finalize(ctx, id, []Status{StatusPending}, StatusRejected, reason, nil); err != nil {
		return nil, err
	}
	res.Status = StatusRejected
	res.CancelReason = reason
	return res, nil
}

func (s *service) Cancel(ctx context.Context, id string, actorID string, reason *string) (*CancelResult, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.CustomerID != actorID {
		return nil, ErrForbidden
	}

	unlock, err := s.locker.Acquire(ctx, lockKey(existing.RoomID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	eff := res.EffectiveStatus(now)
	if eff != StatusPending && eff != StatusConfirmed {
		return nil, ErrInvalidTransition.WithDetail("reservation is " + string(eff))
	}
	if !now.Before(res.Window.Start) {
		return nil, ErrInvalidTransition.WithDetail("reservation already started")
	}

	refund, err := s.refundFor(ctx, res, now)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Finalize(ctx, id, []Status{StatusPending, StatusConfirmed}, StatusCancelled, reason, &now); err != nil {
		return nil, err
	}
	res.Status = StatusCancelled
	res.CancelledAt = &now
	res.CancelReason = reason
	return &CancelResult{Reservation: res, RefundPercentage: refund}, nil
}

// refundFor computes the refund percentage from the studio's cancellation
// policy. A studio without a policy refunds nothing.
func (s *service) refundFor(ctx context.Context, res *Reservation, now time.Time) (int, error) {
	rm, err := s.rooms.GetByID(ctx, res.RoomID)
	if err != nil {
		return 0, err
	}
	st, err := s.studios.GetByID(ctx, rm.StudioID)
	if err != nil {
		return 0, err
	}
	if st.CancellationPolicyID == nil {
		return 0, nil
	}
	pol, err := s.policies.GetByID(ctx, *st.CancellationPolicyID)
	if err != nil {
		return 0, err
	}
	return pol.RefundFor(res.Window.Start.Sub(now).Hours()), nil
}

func (s *service) ListPendingByRoom(ctx context.Context, roomID string, actorID string) ([]*Reservation, error) {
	ownerID, err := s.ownerOf(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if ownerID != actorID {
		return nil, ErrForbidden
	}
	return s.repo.ListPendingByRoom(ctx, roomID, s.now().Add(-AutoConfirmAfter))
}

func (s *service) ListPendingByStudio(ctx context.Context, studioID string, actorID string) ([]*Reservation, error) {
	st, err := s.studios.GetByID(ctx, studioID)
	if err != nil {
		return nil, err
	}
	if st.OwnerID != actorID {
		return nil, ErrForbidden
	}
	return s.repo.ListPendingByStudio(ctx, studioID, s.now().Add(-AutoConfirmAfter))
}

func (s *service) Sweep(ctx context.Context) (SweepStats, error) {
	return s.repo.Sweep(ctx, s.now())
}
