package services

import (
	"context"
	"log"
	"time"

	"superinv/internal/caching"
	"superinv/internal/models"
	"superinv/internal/repositories"

	"github.com/google/uuid"
)

const itemCacheTTL = 5 * time.Minute

type InventoryService interface {
	Upsert(ctx context.Context, item *models.InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	Update(ctx context.Context, item *models.InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.InventoryItem, error)
}

type inventoryService struct {
	inventoryRepo repositories.InventoryRepository
	cacheService  caching.CacheService
}

func NewInventoryService(inventoryRepo repositories.InventoryRepository, cacheService caching.CacheService) InventoryService {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		cacheService:  cacheService,
	}
}

// Upsert inserts or merges by product_name: quantity adds, the other
// fields overwrite. item is refreshed with the stored row, so the caller
// sees the merged quantity and the existing id when a row already existed.
func (s *inventoryService) Upsert(ctx context.Context, item *models.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	if err := s.inventoryRepo.Upsert(ctx, item); err != nil {
		return err
	}

	s.invalidate(ctx, item.ID)
	return nil
}

func (s *inventoryService) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	cached, err := s.cacheService.GetItem(ctx, id)
	if err == nil && cached != nil {
		return cached, nil
	}

	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cacheService.SetItem(ctx, item, itemCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache inventory item %s: %v", id.String(), cacheErr)
	}
	return item, nil
}

func (s *inventoryService) Update(ctx context.Context, item *models.InventoryItem) error {
	if err := s.inventoryRepo.Update(ctx, item); err != nil {
		return err
	}

	s.invalidate(ctx, item.ID)
	return nil
}

func (s *inventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.inventoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *inventoryService) List(ctx context.Context, limit, offset int) ([]*models.InventoryItem, error) {
	return s.inventoryRepo.List(ctx, limit, offset)
}

// invalidate drops the cache entry; a stale miss just falls back to the
// database, so cache failures are only logged.
func (s *inventoryService) invalidate(ctx context.Context, id uuid.UUID) {
	if cacheErr := s.cacheService.DeleteItem(ctx, id); cacheErr != nil {
		log.Printf("Failed to invalidate cache for inventory item %s: %v", id.String(), cacheErr)
	}
}
