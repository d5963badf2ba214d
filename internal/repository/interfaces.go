package repository

import (
	"context"

	"github.com/alexanderramin/waypoint/internal/domain"
)

type AccountRepo interface {
	Create(ctx context.Context, a *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
}

// CurriculumRepo stores generated curricula with their source profile.
type CurriculumRepo interface {
	Save(ctx context.Context, c *domain.Curriculum) error
	GetByID(ctx context.Context, id string) (*domain.Curriculum, error)
	// ListByOwner returns the owner's curricula, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Curriculum, error)
	Delete(ctx context.Context, id string) error
}
