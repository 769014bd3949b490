package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/catalog"
	"github.com/menudash/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockCompanyRepository is a mock implementation of CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Company, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAllByOwner(ctx context.Context, ownerID string, filter shared.Filter) ([]catalog.Company, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]catalog.Company), args.Error(1)
}

func (m *MockCompanyRepository) CountByOwner(ctx context.Context, ownerID string, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompanyRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, company *catalog.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, companyID uuid.UUID, name string) (*catalog.Category, error) {
	args := m.Called(ctx, companyID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]catalog.Category, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllByOwner(ctx context.Context, ownerID string, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) CountByOwner(ctx context.Context, ownerID string, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockComplementRepository is a mock implementation of ComplementRepository
type MockComplementRepository struct {
	mock.Mock
}

func (m *MockComplementRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Complement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Complement), args.Error(1)
}

func (m *MockComplementRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]catalog.Complement, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).([]catalog.Complement), args.Error(1)
}

func (m *MockComplementRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockComplementRepository) Create(ctx context.Context, complement *catalog.Complement) error {
	args := m.Called(ctx, complement)
	return args.Error(0)
}

func (m *MockComplementRepository) Save(ctx context.Context, complement *catalog.Complement) error {
	args := m.Called(ctx, complement)
	return args.Error(0)
}

func (m *MockComplementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockComplementItemRepository is a mock implementation of ComplementItemRepository
type MockComplementItemRepository struct {
	mock.Mock
}

func (m *MockComplementItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ComplementItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ComplementItem), args.Error(1)
}

func (m *MockComplementItemRepository) FindByComplement(ctx context.Context, complementID uuid.UUID) ([]catalog.ComplementItem, error) {
	args := m.Called(ctx, complementID)
	return args.Get(0).([]catalog.ComplementItem), args.Error(1)
}

func (m *MockComplementItemRepository) CreateBatch(ctx context.Context, items []*catalog.ComplementItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockComplementItemRepository) Save(ctx context.Context, item *catalog.ComplementItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockComplementItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockObjectStorage is a mock implementation of ObjectStorageService
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

// recordingPublisher collects published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

// mapCache is an in-memory ComplementCache
type mapCache struct {
	entries map[uuid.UUID]*catalog.Complement
	hits    int
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[uuid.UUID]*catalog.Complement)}
}

func (c *mapCache) Get(_ context.Context, id uuid.UUID) (*catalog.Complement, bool) {
	complement, ok := c.entries[id]
	if ok {
		c.hits++
	}
	return complement, ok
}

func (c *mapCache) Set(_ context.Context, complement *catalog.Complement) {
	c.entries[complement.ID] = complement
}

func (c *mapCache) Delete(_ context.Context, ids ...uuid.UUID) {
	for _, id := range ids {
		delete(c.entries, id)
	}
}
