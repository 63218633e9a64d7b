package usecase

import (
	"context"

	"github.com/tu-usuario/inventory-stores/internal/application/dto"
	"github.com/tu-usuario/inventory-stores/internal/domain"
	"github.com/tu-usuario/inventory-stores/internal/domain/entity"
	"github.com/tu-usuario/inventory-stores/internal/domain/repository"
)

// StoreUseCase operaciones de tiendas.
type StoreUseCase struct {
	storeRepo repository.StoreRepository
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(storeRepo repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{storeRepo: storeRepo}
}

// Create crea una tienda.
func (uc *StoreUseCase) Create(ctx context.Context, in dto.CreateStoreRequest) (*entity.Store, error) {
	if in.Name == "" || in.Location == "" {
		return nil, domain.NewValidation("name y location son requeridos", nil)
	}
	store := &entity.Store{Name: in.Name, Location: in.Location}
	if err := uc.storeRepo.Create(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// GetByID obtiene una tienda por ID.
func (uc *StoreUseCase) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	store, err := uc.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.NewStoreNotFound(id)
	}
	return store, nil
}

// GetAll lista todas las tiendas.
func (uc *StoreUseCase) GetAll(ctx context.Context) ([]*entity.Store, error) {
	return uc.storeRepo.FindAll(ctx)
}
