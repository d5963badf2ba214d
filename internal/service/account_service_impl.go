package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/repository"
)

type accountService struct {
	accounts repository.AccountRepo
}

func NewAccountService(accounts repository.AccountRepo) AccountService {
	return &accountService{accounts: accounts}
}

func (s *accountService) Create(ctx context.Context, name, email string) (*domain.Account, error) {
	a := &domain.Account{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		CreatedAt: time.Now().UTC(),
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *accountService) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return s.accounts.GetByID(ctx, id)
}

func (s *accountService) List(ctx context.Context) ([]*domain.Account, error) {
	return s.accounts.List(ctx)
}
