package studio

import (
	"context"
	"strings"
	"time"
)

type CreateRequest struct {
	OwnerID              string
	Name                 string
	Description          *string
	Address              *string
	CancellationPolicyID *string
}

type UpdateRequest struct {
	Name                 *string
	Description          *string
	Address              *string
	Active               *bool
	CancellationPolicyID *string
}

// HoursEntry is one weekday of a schedule update.
type HoursEntry struct {
	DayOfWeek time.Weekday
	OpenTime  string
	CloseTime string
	IsOpen    bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Studio, error)
	GetByID(ctx context.Context, id string) (*Studio, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Studio, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string) (*Studio, error)

	GetOperatingHours(ctx context.Context, studioID string) ([]OperatingHours, error)
	SetOperatingHours(ctx context.Context, studioID string, entries []HoursEntry, actorID string) ([]OperatingHours, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Studio, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	st := &Studio{
		OwnerID:              req.OwnerID,
		CancellationPolicyID: req.CancellationPolicyID,
		Name:                 strings.TrimSpace(req.Name),
		Description:          req.Description,
		Address:              req.Address,
		Active:               true,
	}

	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Studio, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByOwner(ctx context.Context, ownerID string) ([]*Studio, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorID string) (*Studio, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st.OwnerID != actorID {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		st.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		st.Description = req.Description
	}
	if req.Address != nil {
		st.Address = req.Address
	}
	if req.Active != nil {
		st.Active = *req.Active
	}
	if req.CancellationPolicyID != nil {
		st.CancellationPolicyID = req.CancellationPolicyID
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) GetOperatingHours(ctx context.Context, studioID string) ([]OperatingHours, error) {
	if _, err := s.repo.GetByID(ctx, studioID); err != nil {
		return nil, err
	}
	return s.repo.GetOperatingHours(ctx, studioID)
}

func (s *service) SetOperatingHours(ctx context.Context, studioID string, entries []HoursEntry, actorID string) ([]OperatingHours, error) {
	st, err := s.repo.GetByID(ctx, studioID)
	if err != nil {
		return nil, err
	}
	if st.OwnerID != actorID {
		return nil, ErrNotOwner
	}

	seen := make(map[time.Weekday]bool, len(entries))
	hours := make([]OperatingHours, 0, len(entries))
	for _, e := range entries {
		if e.DayOfWeek < time.Sunday || e.DayOfWeek > time.Saturday || seen[e.DayOfWeek] {
			return nil, ErrInvalidWeekday
		}
		seen[e.DayOfWeek] = true

		if e.IsOpen {
			if !ValidClock(e.OpenTime) || !ValidClock(e.CloseTime) || e.OpenTime >= e.CloseTime {
				return nil, ErrInvalidClock
			}
		}

		hours = append(hours, OperatingHours{
			StudioID:  studioID,
			DayOfWeek: e.DayOfWeek,
			OpenTime:  e.OpenTime,
			CloseTime: e.CloseTime,
			IsOpen:    e.IsOpen,
		})
	}

	if err := s.repo.ReplaceOperatingHours(ctx, studioID, hours); err != nil {
		return nil, err
	}
	return s.repo.GetOperatingHours(ctx, studioID)
}
