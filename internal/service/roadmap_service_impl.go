package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/waypoint/internal/db"
	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/intelligence"
	"github.com/alexanderramin/waypoint/internal/repository"
)

type roadmapService struct {
	accounts  repository.AccountRepo
	curricula repository.CurriculumRepo
	engine    intelligence.CurriculumService
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewRoadmapService(
	accounts repository.AccountRepo,
	curricula repository.CurriculumRepo,
	engine intelligence.CurriculumService,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) RoadmapService {
	return &roadmapService{
		accounts:  accounts,
		curricula: curricula,
		engine:    engine,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *roadmapService) GenerateCurriculum(ctx context.Context, profile domain.LearningProfile) (curriculum *domain.Curriculum, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"owner": profile.OwnerID,
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "generate-curriculum",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err = profile.Validate(); err != nil {
		return nil, err
	}
	if _, err = s.accounts.GetByID(ctx, profile.OwnerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = fmt.Errorf("%w: %s", ErrOwnerNotFound, profile.OwnerID)
			return nil, err
		}
		return nil, fmt.Errorf("looking up owner: %w", err)
	}

	snapshot := profile.Clone()
	result := s.engine.Generate(ctx, snapshot)

	fields["provenance"] = string(result.Provenance)
	fields["domain"] = string(result.Domain)
	if result.Failure != nil {
		fields["failure"] = string(result.Failure.Kind)
	}
	if result.Rejection != "" {
		fields["rejection"] = string(result.Rejection)
	}
	curriculaGenerated.WithLabelValues(string(result.Provenance), string(result.Domain)).Inc()

	now := time.Now().UTC()
	curriculum = &domain.Curriculum{
		ID:         uuid.New().String(),
		Profile:    snapshot,
		Text:       result.Text,
		Provenance: result.Provenance,
		Domain:     string(result.Domain),
		Model:      result.Model,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteCurriculumRepo(tx).Save(ctx, curriculum)
	})
	if err != nil {
		err = fmt.Errorf("saving curriculum: %w", err)
		return nil, err
	}
	fields["curriculum"] = curriculum.ID
	return curriculum, nil
}

func (s *roadmapService) GetByID(ctx context.Context, id string) (*domain.Curriculum, error) {
	return s.curricula.GetByID(ctx, id)
}

func (s *roadmapService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Curriculum, error) {
	return s.curricula.ListByOwner(ctx, ownerID)
}
