package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/catalog"
	"github.com/menudash/backend/internal/domain/shared"
)

// ObjectStorageService defines the object storage operations used for product images.
// It is implemented by the infrastructure layer (S3, MinIO, R2).
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading an object
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a URL for reading an object
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error
}

// ComplementCache caches complement reads (getComplementsById).
// Entries are dropped by the cache invalidation event handler.
type ComplementCache interface {
	Get(ctx context.Context, id uuid.UUID) (*catalog.Complement, bool)
	Set(ctx context.Context, complement *catalog.Complement)
	Delete(ctx context.Context, ids ...uuid.UUID)
}

// eventSource is an aggregate with pending domain events
type eventSource interface {
	GetDomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}

// publishDomainEvents publishes and clears the aggregate's pending events
func publishDomainEvents(ctx context.Context, publisher shared.EventPublisher, aggregate eventSource) {
	if publisher == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Publish errors are logged by the event bus, not propagated
	_ = publisher.Publish(ctx, events...)
	aggregate.ClearDomainEvents()
}

// publishEvents publishes events that are not attached to an aggregate
func publishEvents(ctx context.Context, publisher shared.EventPublisher, events ...shared.DomainEvent) {
	if publisher == nil || len(events) == 0 {
		return
	}
	_ = publisher.Publish(ctx, events...)
}
