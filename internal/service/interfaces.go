package service

import (
	"context"

	"github.com/alexanderramin/waypoint/internal/domain"
)

type AccountService interface {
	Create(ctx context.Context, name, email string) (*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
}

// RoadmapService turns learning profiles into stored curricula.
type RoadmapService interface {
	// GenerateCurriculum validates the profile, confirms the owner exists,
	// runs generation with fallback, and stores the result. It fails only
	// on preconditions or storage errors; generation problems resolve to a
	// fallback curriculum.
	GenerateCurriculum(ctx context.Context, profile domain.LearningProfile) (*domain.Curriculum, error)
	GetByID(ctx context.Context, id string) (*domain.Curriculum, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Curriculum, error)
}
