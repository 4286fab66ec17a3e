package repo

import (
	"context"

	"github.com/ghana-siga/siga-igov/internal/domain"
)

// EntityRepo is the typed query surface over the entity registry and its
// related tables.
type EntityRepo interface {
	// ListAll returns every entity sorted by name ascending.
	ListAll(ctx context.Context) ([]*domain.Entity, error)
	// Count returns the number of entity rows.
	Count(ctx context.Context) (int, error)
	// DeleteAll removes every entity (cascading to related rows).
	DeleteAll(ctx context.Context) error
	// InsertBatch inserts one batch of entities, returning how many rows landed.
	InsertBatch(ctx context.Context, entities []*domain.Entity) (int, error)
	// GetDetail loads one entity with its bounded related collections.
	// Returns a kratos NotFound error when no row matches.
	GetDetail(ctx context.Context, id string) (*domain.EntityDetail, error)
	// CountByCategory/CountBySector/CountByStatus are the dashboard group-bys.
	CountByCategory(ctx context.Context) ([]domain.GroupCount, error)
	CountBySector(ctx context.Context) ([]domain.GroupCount, error)
	CountByStatus(ctx context.Context) ([]domain.GroupCount, error)
	// SampleWithRisk returns up to n entities joined with their latest overall
	// risk score, used to build agent insight context.
	SampleWithRisk(ctx context.Context, n int) ([]domain.EntityRiskSample, error)
}
