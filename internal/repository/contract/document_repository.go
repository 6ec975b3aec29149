package contract

import (
	"context"

	"contract-qa-be/internal/entity"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	Update(ctx context.Context, document *entity.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindById(ctx context.Context, tenantId string, id uuid.UUID) (*entity.Document, error)
	FindAllByTenant(ctx context.Context, tenantId string) ([]*entity.Document, error)
	// FindByIdGlobal skips the tenant filter; used only by the indexing
	// worker which receives document ids from the internal bus.
	FindByIdGlobal(ctx context.Context, id uuid.UUID) (*entity.Document, error)
}
