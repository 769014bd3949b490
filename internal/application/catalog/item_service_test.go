package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/catalog"
	"github.com/menudash/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestItemService_CreateItems_AppendsInOrder(t *testing.T) {
	complementRepo := new(MockComplementRepository)
	itemRepo := new(MockComplementItemRepository)
	service := NewItemService(complementRepo, itemRepo)
	publisher := &recordingPublisher{}
	service.SetEventPublisher(publisher)

	complement := newTestComplement(t, uuid.New(), "Bacon")
	last := complement.Items[0].CreatedAt

	complementRepo.On("FindByID", mock.Anything, complement.ID).Return(complement, nil)
	itemRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(items []*catalog.ComplementItem) bool {
		return len(items) == 2 && items[0].Name == "Cheese" && items[1].Name == "Egg"
	})).Return(nil).Once()

	result, err := service.CreateItems(context.Background(), CreateItemsRequest{
		ComplementID: complement.ID,
		Items: []ItemInput{
			{Name: "Cheese", Price: pricePtr("2.00")},
			{Name: "Egg", Price: pricePtr("1,50")},
		},
	})

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, complement.ID, result[0].ComplementID)
	assert.True(t, result[0].CreatedAt.After(last))
	assert.True(t, result[1].CreatedAt.After(result[0].CreatedAt))
	assert.Equal(t, "1.50", result[1].Price.String())
	assert.Equal(t, []string{catalog.EventTypeComplementItemsCreated}, publisher.types())
	itemRepo.AssertExpectations(t)
}

func TestItemService_CreateItems_Empty(t *testing.T) {
	complementRepo := new(MockComplementRepository)
	service := NewItemService(complementRepo, new(MockComplementItemRepository))

	_, err := service.CreateItems(context.Background(), CreateItemsRequest{ComplementID: uuid.New()})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	complementRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestItemService_CreateItems_UnknownComplement(t *testing.T) {
	complementRepo := new(MockComplementRepository)
	itemRepo := new(MockComplementItemRepository)
	service := NewItemService(complementRepo, itemRepo)
	id := uuid.New()

	complementRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	_, err := service.CreateItems(context.Background(), CreateItemsRequest{
		ComplementID: id,
		Items:        []ItemInput{{Name: "Cheese", Price: pricePtr("2")}},
	})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	itemRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestItemService_CreateItems_ForeignKeyViolation(t *testing.T) {
	complementRepo := new(MockComplementRepository)
	itemRepo := new(MockComplementItemRepository)
	service := NewItemService(complementRepo, itemRepo)
	complement := newTestComplement(t, uuid.New())

	complementRepo.On("FindByID", mock.Anything, complement.ID).Return(complement, nil)
	itemRepo.On("CreateBatch", mock.Anything, mock.Anything).
		Return(shared.NewRequestError(shared.RequestErrorForeignKey, assert.AnError))

	_, err := service.CreateItems(context.Background(), CreateItemsRequest{
		ComplementID: complement.ID,
		Items:        []ItemInput{{Name: "Cheese", Price: pricePtr("2")}},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeRequestFailed, domainErr.Code)
}

func TestItemService_EditItem(t *testing.T) {
	complementRepo := new(MockComplementRepository)
	itemRepo := new(MockComplementItemRepository)
	service := NewItemService(complementRepo, itemRepo)
	publisher := &recordingPublisher{}
	service.SetEventPublisher(publisher)

	complement := newTestComplement(t, uuid.New(), "Bacon")
	item := complement.Items[0]

	itemRepo.On("FindByID", mock.Anything, item.ID).Return(&item, nil)
	itemRepo.On("Save", mock.Anything, &item).Return(nil)
	complementRepo.On("FindByID", mock.Anything, complement.ID).Return(complement, nil)

	result, err := service.EditItem(context.Background(), item.ID, EditItemRequest{Price: pricePtr("4.25")})

	require.NoError(t, err)
	assert.Equal(t, "Bacon", result.Name)
	assert.Equal(t, "4.25", result.Price.String())
	assert.Equal(t, []string{catalog.EventTypeComplementItemUpdated}, publisher.types())
}

func TestItemService_EditItem_NotFound(t *testing.T) {
	itemRepo := new(MockComplementItemRepository)
	service := NewItemService(new(MockComplementRepository), itemRepo)
	id := uuid.New()

	itemRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	name := "Cheese"
	_, err := service.EditItem(context.Background(), id, EditItemRequest{Name: &name})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestItemService_DeleteItem(t *testing.T) {
	complementRepo := new(MockComplementRepository)
	itemRepo := new(MockComplementItemRepository)
	service := NewItemService(complementRepo, itemRepo)
	publisher := &recordingPublisher{}
	service.SetEventPublisher(publisher)

	complement := newTestComplement(t, uuid.New(), "Bacon")
	item := complement.Items[0]

	itemRepo.On("FindByID", mock.Anything, item.ID).Return(&item, nil)
	itemRepo.On("Delete", mock.Anything, item.ID).Return(nil)
	complementRepo.On("FindByID", mock.Anything, complement.ID).Return(complement, nil)

	require.NoError(t, service.DeleteItem(context.Background(), item.ID))
	assert.Equal(t, []string{catalog.EventTypeComplementItemDeleted}, publisher.types())
}
