package broker

import (
	"context"

	"github.com/databroker-go/databroker/internal/domain"
)

// The five per-operation handler contracts. Generic GORM-backed
// implementations exist for each; record-specific overrides can be placed in
// a Registry and take precedence when a Broker is constructed.
//
// Handlers return a non-nil error only for a malformed or missing request
// (domain.ErrInvalidRequest). Storage failures are logged and reported
// through the result envelope's success flag.

// ListHandler serves windowed, sorted, filtered list queries.
type ListHandler[T domain.Record] interface {
	HandleList(ctx context.Context, req *domain.ListRequest) (*domain.ListResult[T], error)
}

// ItemHandler serves single-record queries by UID.
type ItemHandler[T domain.Record] interface {
	HandleItem(ctx context.Context, req *domain.ItemRequest) (*domain.ItemResult[T], error)
}

// CreateHandler persists a new record. The generated UID is written back to
// the record; the envelope itself carries status only.
type CreateHandler[T domain.Record] interface {
	HandleCreate(ctx context.Context, record *T) (*domain.Result, error)
}

// UpdateHandler saves changes to the record identified by the record's UID.
type UpdateHandler[T domain.Record] interface {
	HandleUpdate(ctx context.Context, record *T) (*domain.Result, error)
}

// DeleteHandler removes the record identified by the request UID.
type DeleteHandler[T domain.Record] interface {
	HandleDelete(ctx context.Context, req *domain.ItemRequest) (*domain.Result, error)
}
