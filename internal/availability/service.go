package availability

import (
	"context"
	"time"

	"github.com/slapp/studio-booking-backend/internal/interval"
	"github.com/slapp/studio-booking-backend/internal/room"
	"github.com/slapp/studio-booking-backend/internal/studio"
)

type CreateRequest struct {
	RoomID    string
	Start     time.Time
	End       time.Time
	Available bool
	Reason    *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, actorID string) (*Exception, error)
	ListByRoom(ctx context.Context, roomID string) ([]*Exception, error)
	Delete(ctx context.Context, id string, actorID string) error
}

type service struct {
	repo    Repository
	rooms   room.Service
	studios studio.Service
}

func NewService(repo Repository, rooms room.Service, studios studio.Service) Service {
	return &service{
		repo:    repo,
		rooms:   rooms,
		studios: studios,
	}
}

func (s *service) requireOwner(ctx context.Context, roomID, actorID string) error {
	rm, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return ErrInvalidRoom
	}
	st, err := s.studios.GetByID(ctx, rm.StudioID)
	if err != nil {
		return ErrInvalidRoom
	}
	if st.OwnerID != actorID {
		return ErrNotOwner
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest, actorID string) (*Exception, error) {
	window, err := interval.New(req.Start, req.End)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, req.RoomID, actorID); err != nil {
		return nil, err
	}

	ex := &Exception{
		RoomID:    req.RoomID,
		Window:    window,
		Available: req.Available,
		Reason:    req.Reason,
	}
	if err := s.repo.Create(ctx, ex); err != nil {
		return nil, err
	}
	return ex, nil
}

func (s *service) ListByRoom(ctx context.Context, roomID string) ([]*Exception, error) {
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		return nil, ErrInvalidRoom
	}
	return s.repo.ListByRoom(ctx, roomID)
}

func (s *service) Delete(ctx context.Context, id string, actorID string) error {
	ex, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireOwner(ctx, ex.RoomID, actorID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
