package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/catalog"
	"github.com/menudash/backend/internal/domain/shared"
)

// ItemService handles complement item operations
type ItemService struct {
	complementRepo catalog.ComplementRepository
	itemRepo       catalog.ComplementItemRepository
	eventPublisher shared.EventPublisher
}

// NewItemService creates a new ItemService
func NewItemService(
	complementRepo catalog.ComplementRepository,
	itemRepo catalog.ComplementItemRepository,
) *ItemService {
	return &ItemService{
		complementRepo: complementRepo,
		itemRepo:       itemRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ItemService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateItems appends items to a complement in a single batch (createItem).
// New items are ordered after the existing ones, in request order.
func (s *ItemService) CreateItems(ctx context.Context, req CreateItemsRequest) ([]ComplementItemResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "At least one item is required")
	}

	complement, err := s.complementRepo.FindByID(ctx, req.ComplementID)
	if err != nil {
		return nil, err
	}

	created := make([]*catalog.ComplementItem, 0, len(req.Items))
	for _, in := range req.Items {
		item, err := complement.AddItem(in.Name, priceOf(in.Price))
		if err != nil {
			return nil, err
		}
		created = append(created, item)
	}

	if err := s.itemRepo.CreateBatch(ctx, created); err != nil {
		return nil, shared.RewrapRequestError(err)
	}
	publishEvents(ctx, s.eventPublisher, catalog.NewComplementItemsCreatedEvent(complement, created))

	responses := make([]ComplementItemResponse, len(created))
	for i, item := range created {
		responses[i] = ToComplementItemResponse(item)
	}
	return responses, nil
}

// EditItem updates an item's name and/or price (editItem)
func (s *ItemService) EditItem(ctx context.Context, id uuid.UUID, req EditItemRequest) (*ComplementItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, price := item.Name, item.Price
	if req.Name != nil {
		name = *req.Name
	}
	if req.Price != nil {
		price = *req.Price
	}
	if err := item.Update(name, price); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, shared.RewrapRequestError(err)
	}
	if complement, err := s.complementRepo.FindByID(ctx, item.ComplementID); err == nil {
		publishEvents(ctx, s.eventPublisher, catalog.NewComplementItemUpdatedEvent(complement, item))
	}

	response := ToComplementItemResponse(item)
	return &response, nil
}

// DeleteItem removes an item from its complement
func (s *ItemService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return shared.RewrapRequestError(err)
	}
	if complement, err := s.complementRepo.FindByID(ctx, item.ComplementID); err == nil {
		publishEvents(ctx, s.eventPublisher, catalog.NewComplementItemDeletedEvent(complement, id))
	}
	return nil
}
