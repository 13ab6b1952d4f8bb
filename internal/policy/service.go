package policy

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name             string
	Description      *string
	HoursBeforeEvent int
	RefundPercentage int
	Active           bool
}

type UpdateRequest struct {
	Name             *string
	Description      *string
	HoursBeforeEvent *int
	RefundPercentage *int
	Active           *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*CancellationPolicy, error)
	GetByID(ctx context.Context, id string) (*CancellationPolicy, error)
	List(ctx context.Context) ([]*CancellationPolicy, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*CancellationPolicy, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*CancellationPolicy, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.RefundPercentage < 0 || req.RefundPercentage > 100 {
		return nil, ErrInvalidRefund
	}
	if req.HoursBeforeEvent < 0 {
		return nil, ErrInvalidHours
	}

	p := &CancellationPolicy{
		Name:             req.Name,
		Description:      req.Description,
		HoursBeforeEvent: req.HoursBeforeEvent,
		RefundPercentage: req.RefundPercentage,
		Active:           req.Active,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*CancellationPolicy, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*CancellationPolicy, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*CancellationPolicy, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.HoursBeforeEvent != nil {
		if *req.HoursBeforeEvent < 0 {
			return nil, ErrInvalidHours
		}
		p.HoursBeforeEvent = *req.HoursBeforeEvent
	}
	if req.RefundPercentage != nil {
		if *req.RefundPercentage < 0 || *req.RefundPercentage > 100 {
			return nil, ErrInvalidRefund
		}
		p.RefundPercentage = *req.RefundPercentage
	}
	if req.Active != nil {
		p.Active = *req.Active
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
