package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/catalog"
	"github.com/menudash/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCategory(t *testing.T, companyID uuid.UUID, name string) *catalog.Category {
	t.Helper()
	category, err := catalog.NewCategory(companyID, name)
	require.NoError(t, err)
	category.ClearDomainEvents()
	return category
}

func TestCategoryService_Create_Success(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	service := NewCategoryService(categoryRepo, new(MockProductRepository))
	publisher := &recordingPublisher{}
	service.SetEventPublisher(publisher)

	ctx := context.Background()
	companyID := uuid.New()

	categoryRepo.On("FindByName", ctx, companyID, "Drinks").Return(nil, shared.ErrNotFound)
	categoryRepo.On("Save", ctx, mock.MatchedBy(func(c *catalog.Category) bool {
		return c.CompanyID == companyID && c.Name == "Drinks"
	})).Return(nil)

	result, err := service.Create(ctx, CreateCategoryRequest{CompanyID: companyID, Name: "  Drinks "})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, result.ID)
	assert.Equal(t, companyID, result.CompanyID)
	assert.Equal(t, "Drinks", result.Name)
	assert.Equal(t, []string{catalog.EventTypeCategoryCreated}, publisher.types())
	categoryRepo.AssertExpectations(t)
}

func TestCategoryService_Create_Duplicate(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	service := NewCategoryService(categoryRepo, new(MockProductRepository))

	ctx := context.Background()
	companyID := uuid.New()
	existing := newTestCategory(t, companyID, "Drinks")

	categoryRepo.On("FindByName", ctx, companyID, "Drinks").Return(existing, nil)

	result, err := service.Create(ctx, CreateCategoryRequest{CompanyID: companyID, Name: "Drinks"})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	assert.Equal(t, "Category already exists", domainErr.Message)
	categoryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCategoryService_Create_RewrapsRequestErrors(t *testing.T) {
	storeErr := errors.New(`duplicate key value violates unique constraint "idx_product_categories_company_name"`)

	tests := []struct {
		name  string
		setup func(repo *MockCategoryRepository, companyID uuid.UUID)
	}{
		{
			name: "lookup fails",
			setup: func(repo *MockCategoryRepository, companyID uuid.UUID) {
				repo.On("FindByName", mock.Anything, companyID, "Drinks").
					Return(nil, shared.NewRequestError(shared.RequestErrorInvalidData, storeErr))
			},
		},
		{
			name: "insert fails",
			setup: func(repo *MockCategoryRepository, companyID uuid.UUID) {
				repo.On("FindByName", mock.Anything, companyID, "Drinks").Return(nil, shared.ErrNotFound)
				repo.On("Save", mock.Anything, mock.Anything).
					Return(shared.NewRequestError(shared.RequestErrorDuplicatedKey, storeErr))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categoryRepo := new(MockCategoryRepository)
			service := NewCategoryService(categoryRepo, new(MockProductRepository))
			companyID := uuid.New()
			tt.setup(categoryRepo, companyID)

			result, err := service.Create(context.Background(), CreateCategoryRequest{CompanyID: companyID, Name: "Drinks"})

			assert.Nil(t, result)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, shared.CodeRequestFailed, domainErr.Code)
			assert.Equal(t, storeErr.Error(), domainErr.Message)
		})
	}
}

func TestCategoryService_Create_PropagatesUnknownErrors(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	service := NewCategoryService(categoryRepo, new(MockProductRepository))
	companyID := uuid.New()
	connErr := errors.New("connection refused")

	categoryRepo.On("FindByName", mock.Anything, companyID, "Drinks").Return(nil, shared.ErrNotFound)
	categoryRepo.On("Save", mock.Anything, mock.Anything).Return(connErr)

	_, err := service.Create(context.Background(), CreateCategoryRequest{CompanyID: companyID, Name: "Drinks"})

	assert.Same(t, connErr, err)
}

func TestCategoryService_Create_InvalidName(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	service := NewCategoryService(categoryRepo, new(MockProductRepository))
	companyID := uuid.New()

	categoryRepo.On("FindByName", mock.Anything, companyID, "").Return(nil, shared.ErrNotFound)

	_, err := service.Create(context.Background(), CreateCategoryRequest{CompanyID: companyID, Name: "   "})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_NAME", domainErr.Code)
}

func TestCategoryService_GetByID_IncludesProductCount(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	productRepo := new(MockProductRepository)
	service := NewCategoryService(categoryRepo, productRepo)
	category := newTestCategory(t, uuid.New(), "Burgers")

	categoryRepo.On("FindByID", mock.Anything, category.ID).Return(category, nil)
	productRepo.On("CountByCategory", mock.Anything, category.ID).Return(int64(7), nil)

	result, err := service.GetByID(context.Background(), category.ID)

	require.NoError(t, err)
	require.NotNil(t, result.ProductCount)
	assert.Equal(t, int64(7), *result.ProductCount)
}

func TestCategoryService_List_Defaults(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	service := NewCategoryService(categoryRepo, new(MockProductRepository))
	companyID := uuid.New()
	categories := []catalog.Category{*newTestCategory(t, companyID, "A"), *newTestCategory(t, companyID, "B")}

	isDefault := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.OrderBy == "name" && f.OrderDir == "asc"
	})
	categoryRepo.On("FindAllForCompany", mock.Anything, companyID, isDefault).Return(categories, nil)
	categoryRepo.On("CountForCompany", mock.Anything, companyID, isDefault).Return(int64(2), nil)

	result, total, err := service.List(context.Background(), companyID, ListFilter{})

	require.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, int64(2), total)
}

func TestCategoryService_Edit(t *testing.T) {
	companyID := uuid.New()

	t.Run("name taken by another category", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		service := NewCategoryService(categoryRepo, new(MockProductRepository))
		category := newTestCategory(t, companyID, "Burgers")
		other := newTestCategory(t, companyID, "Drinks")

		categoryRepo.On("FindByID", mock.Anything, category.ID).Return(category, nil)
		categoryRepo.On("FindByName", mock.Anything, companyID, "Drinks").Return(other, nil)

		_, err := service.Edit(context.Background(), category.ID, EditCategoryRequest{Name: "Drinks"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("same name skips the lookup", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		service := NewCategoryService(categoryRepo, new(MockProductRepository))
		category := newTestCategory(t, companyID, "Burgers")

		categoryRepo.On("FindByID", mock.Anything, category.ID).Return(category, nil)
		categoryRepo.On("Save", mock.Anything, category).Return(nil)

		result, err := service.Edit(context.Background(), category.ID, EditCategoryRequest{Name: "Burgers"})

		require.NoError(t, err)
		assert.Equal(t, "Burgers", result.Name)
		categoryRepo.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	service := NewCategoryService(categoryRepo, new(MockProductRepository))
	publisher := &recordingPublisher{}
	service.SetEventPublisher(publisher)
	category := newTestCategory(t, uuid.New(), "Burgers")

	categoryRepo.On("FindByID", mock.Anything, category.ID).Return(category, nil)
	categoryRepo.On("Delete", mock.Anything, category.ID).Return(nil)

	require.NoError(t, service.Delete(context.Background(), category.ID))
	assert.Equal(t, []string{catalog.EventTypeCategoryDeleted}, publisher.types())
}

func TestCategoryService_Delete_NotFound(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	service := NewCategoryService(categoryRepo, new(MockProductRepository))
	id := uuid.New()

	categoryRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	err := service.Delete(context.Background(), id)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	categoryRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
