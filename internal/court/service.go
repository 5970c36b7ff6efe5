package court

import (
	"context"
	"errors"
)

var (
	ErrCourtNotFound = errors.New("court not found")
)

type Service interface {
	CreateCourt(ctx context.Context, req CreateCourtRequest) (*Court, error)
	GetCourtByID(ctx context.Context, id int) (*Court, error)
	ListCourts(ctx context.Context, onlyAvailable bool) ([]Court, error)
	UpdateStatus(ctx context.Context, id int, req UpdateCourtStatusRequest) (*Court, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCourt(ctx context.Context, req CreateCourtRequest) (*Court, error) {
	return s.repo.Create(ctx, req.Name, req.MaxCapacity)
}

func (s *service) GetCourtByID(ctx context.Context, id int) (*Court, error) {
	court, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrCourtNotFound
	}
	return court, nil
}

func (s *service) ListCourts(ctx context.Context, onlyAvailable bool) ([]Court, error) {
	if onlyAvailable {
		return s.repo.ListAvailable(ctx)
	}
	return s.repo.ListAll(ctx)
}

func (s *service) UpdateStatus(ctx context.Context, id int, req UpdateCourtStatusRequest) (*Court, error) {
	court, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return nil, ErrCourtNotFound
	}
	return court, nil
}
