package room

import (
	"context"
	"strings"

	"github.com/slapp/studio-booking-backend/internal/studio"
)

type CreateRequest struct {
	StudioID    string
	Name        string
	Description *string
	HourlyRate  float64
	Capacity    *int
	RoomType    string
}

type UpdateRequest struct {
	Name        *string
	Description *string
	HourlyRate  *float64
	Capacity    *int
	RoomType    *string
	Active      *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, actorID string) (*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	ListByStudio(ctx context.Context, studioID string) ([]*Room, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string) (*Room, error)
	Delete(ctx context.Context, id string, actorID string) error
}

type service struct {
	repo          Repository
	studioService studio.Service
}

func NewService(repo Repository, studioService studio.Service) Service {
	return &service{
		repo:          repo,
		studioService: studioService,
	}
}

// requireOwner loads the room's studio and checks the actor owns it.
func (s *service) requireOwner(ctx context.Context, studioID, actorID string) error {
	st, err := s.studioService.GetByID(ctx, studioID)
	if err != nil {
		return ErrInvalidStudio
	}
	if st.OwnerID != actorID {
		return ErrNotOwner
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest, actorID string) (*Room, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.HourlyRate <= 0 {
		return nil, ErrInvalidRate
	}

	rt := RoomType(req.RoomType)
	validType := false
	for _, t := range ValidRoomTypes {
		if rt == t {
			validType = true
			break
		}
	}
	if !validType {
		return nil, ErrInvalidRoomType
	}

	if err := s.requireOwner(ctx, req.StudioID, actorID); err != nil {
		return nil, err
	}

	rm := &Room{
		StudioID:    req.StudioID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		HourlyRate:  req.HourlyRate,
		Capacity:    req.Capacity,
		RoomType:    rt,
		Active:      true,
	}

	if err := s.repo.Create(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByStudio(ctx context.Context, studioID string) ([]*Room, error) {
	return s.repo.ListByStudio(ctx, studioID)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorID string) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, rm.StudioID, actorID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		rm.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		rm.Description = req.Description
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate <= 0 {
			return nil, ErrInvalidRate
		}
		rm.HourlyRate = *req.HourlyRate
	}
	if req.Capacity != nil {
		rm.Capacity = req.Capacity
	}
	if req.RoomType != nil {
		rt := RoomType(*req.RoomType)
		validType := false
		for _, t := range ValidRoomTypes {
			if rt == t {
				validType = true
				break
			}
		}
		if !validType {
			return nil, ErrInvalidRoomType
		}
		rm.RoomType = rt
	}
	if req.Active != nil {
		rm.Active = *req.Active
	}

	if err := s.repo.Update(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *service) Delete(ctx context.Context, id string, actorID string) error {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireOwner(ctx, rm.StudioID, actorID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
