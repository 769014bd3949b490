package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/catalog"
	"github.com/menudash/backend/internal/domain/shared"
	"github.com/menudash/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pricePtr(s string) *valueobject.Price {
	p := valueobject.MustParsePrice(s)
	return &p
}

func newTestComplement(t *testing.T, companyID uuid.UUID, items ...string) *catalog.Complement {
	t.Helper()
	complement, err := catalog.NewComplement(companyID, "Extras", false, 2)
	require.NoError(t, err)
	for _, name := range items {
		_, err := complement.AddItem(name, valueobject.MustParsePrice("1.00"))
		require.NoError(t, err)
	}
	complement.ClearDomainEvents()
	return complement
}

func newTestProduct(t *testing.T, companyID uuid.UUID, name string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(companyID, name, valueobject.MustParsePrice("25.90"))
	require.NoError(t, err)
	product.ClearDomainEvents()
	return product
}

func TestComplementService_Create_WithItemsAndProducts(t *testing.T) {
	complementRepo := new(MockComplementRepository)
	productRepo := new(MockProductRepository)
	service := NewComplementService(complementRepo, productRepo)
	publisher := &recordingPublisher{}
	service.SetEventPublisher(publisher)

	ctx := context.Background()
	companyID := uuid.New()
	burger := newTestProduct(t, companyID, "Burger")

	complementRepo.On("Create", ctx, mock.MatchedBy(func(c *catalog.Complement) bool {
		return c.Name == "Sauces" && len(c.Items) == 2
	})).Return(nil)
	productRepo.On("FindByID", ctx, burger.ID).Return(burger, nil).Once()
	productRepo.On("Save", ctx, burger).Return(nil).Once()

	result, err := service.Create(ctx, CreateComplementRequest{
		CompanyID: companyID,
		Name:      "Sauces",
		Required:  true,
		MaxAmount: 1,
		Items: []ItemInput{
			{Name: "Ketchup", Price: pricePtr("0.50")},
			{Name: "Mustard"},
		},
		ProductIDs: []uuid.UUID{burger.ID, burger.ID, uuid.Nil},
	})

	require.NoError(t, err)
	assert.True(t, result.Required)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "Ketchup", result.Items[0].Name)
	assert.Equal(t, "0.50", result.Items[0].Price.String())
	assert.True(t, result.Items[1].Price.IsZero())
	assert.True(t, result.Items[0].CreatedAt.Before(result.Items[1].CreatedAt))
	assert.Equal(t, []uuid.UUID{burger.ID}, result.ProductIDs)
	assert.True(t, burger.HasComplement(result.ID))
	assert.Equal(t, []string{catalog.EventTypeComplementCreated, catalog.EventTypeProductComplementsAttached}, publisher.types())
	complementRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestComplementService_Create_NegativeMaxAmount(t *testing.T) {
	complementRepo := new(MockComplementRepository)
	service := NewComplementService(complementRepo, new(MockProductRepository))

	_, err := service.Create(context.Background(), CreateComplementRequest{
		CompanyID: uuid.New(),
		Name:      "Sauces",
		MaxAmount: -1,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_MAX_AMOUNT", domainErr.Code)
	complementRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestComplementService_GetByID_UsesCache(t *testing.T) {
	complementRepo := new(MockComplementRepository)
	service := NewComplementService(complementRepo, new(MockProductRepository))
	cache := newMapCache()
	service.SetCache(cache)

	complement := newTestComplement(t, uuid.New(), "Bacon", "Cheese")
	complementRepo.On("FindByID", mock.Anything, complement.ID).Return(complement, nil).Once()

	first, err := service.GetByID(context.Background(), complement.ID)
	require.NoError(t, err)
	second, err := service.GetByID(context.Background(), complement.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, []string{"Bacon", "Cheese"}, []string{first.Items[0].Name, first.Items[1].Name})
	assert.NotNil(t, first.ProductIDs)
	complementRepo.AssertExpectations(t)
}

func TestComplementService_GetByID_NotFound(t *testing.T) {
	complementRepo := new(MockComplementRepository)
	service := NewComplementService(complementRepo, new(MockProductRepository))
	cache := newMapCache()
	service.SetCache(cache)
	id := uuid.New()

	complementRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	_, err := service.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Empty(t, cache.entries)
}

func TestComplementService_Edit_PartialUpdate(t *testing.T) {
	complementRepo := new(MockComplementRepository)
	service := NewComplementService(complementRepo, new(MockProductRepository))
	publisher := &recordingPublisher{}
	service.SetEventPublisher(publisher)

	complement := newTestComplement(t, uuid.New(), "Bacon")
	complementRepo.On("FindByID", mock.Anything, complement.ID).Return(complement, nil)
	complementRepo.On("Save", mock.Anything, complement).Return(nil)

	required := true
	result, err := service.Edit(context.Background(), complement.ID, EditComplementRequest{Required: &required})

	require.NoError(t, err)
	assert.Equal(t, "Extras", result.Name)
	assert.Equal(t, 2, result.MaxAmount)
	assert.True(t, result.Required)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, []string{catalog.EventTypeComplementUpdated}, publisher.types())
}

func TestComplementService_Edit_RewrapsRequestError(t *testing.T) {
	complementRepo := new(MockComplementRepository)
	service := NewComplementService(complementRepo, new(MockProductRepository))

	complement := newTestComplement(t, uuid.New())
	complementRepo.On("FindByID", mock.Anything, complement.ID).Return(complement, nil)
	complementRepo.On("Save", mock.Anything, complement).
		Return(shared.NewRequestError(shared.RequestErrorCheckConstraint, assert.AnError))

	name := "Toppings"
	_, err := service.Edit(context.Background(), complement.ID, EditComplementRequest{Name: &name})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeRequestFailed, domainErr.Code)
	assert.Equal(t, assert.AnError.Error(), domainErr.Message)
}

func TestComplementService_List_RequiredFilter(t *testing.T) {
	complementRepo := new(MockComplementRepository)
	service := NewComplementService(complementRepo, new(MockProductRepository))
	companyID := uuid.New()

	withRequired := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["required"] == true
	})
	complementRepo.On("FindAllForCompany", mock.Anything, companyID, withRequired).
		Return([]catalog.Complement{*newTestComplement(t, companyID)}, nil)
	complementRepo.On("CountForCompany", mock.Anything, companyID, withRequired).Return(int64(1), nil)

	required := true
	result, total, err := service.List(context.Background(), companyID, ListFilter{}, &required)

	require.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, int64(1), total)
}

func TestComplementService_Delete(t *testing.T) {
	complementRepo := new(MockComplementRepository)
	service := NewComplementService(complementRepo, new(MockProductRepository))
	publisher := &recordingPublisher{}
	service.SetEventPublisher(publisher)

	complement := newTestComplement(t, uuid.New(), "Bacon")
	complementRepo.On("FindByID", mock.Anything, complement.ID).Return(complement, nil)
	complementRepo.On("Delete", mock.Anything, complement.ID).Return(nil)

	require.NoError(t, service.Delete(context.Background(), complement.ID))
	assert.Equal(t, []string{catalog.EventTypeComplementDeleted}, publisher.types())
}
