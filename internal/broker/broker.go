package broker

import (
	"context"
	"log/slog"

	"github.com/databroker-go/databroker/internal/domain"
)

// Broker is the facade aggregating the five per-operation handlers for one
// record type. Queries (List, Get) return data envelopes; commands (Create,
// Update, Delete) return status envelopes only.
type Broker[T domain.Record] struct {
	list   ListHandler[T]
	item   ItemHandler[T]
	create CreateHandler[T]
	update UpdateHandler[T]
	delete DeleteHandler[T]
}

// New wires a Broker for T. Record-specific handlers and strategies found in
// reg take precedence; everything else falls back to the generic GORM-backed
// implementations. reg may be nil, in which case only the generic
// implementations are used.
func New[T domain.Record](factory SessionFactory, reg *Registry, logger *slog.Logger) *Broker[T] {
	if factory == nil {
		panic("broker: session factory must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	sorter := SorterFor[T](reg)
	filterer := FiltererFor[T](reg)

	return &Broker[T]{
		list:   resolveListHandler(reg, NewListHandler[T](factory, sorter, filterer, logger)),
		item:   resolveItemHandler(reg, NewItemHandler[T](factory, logger)),
		create: resolveCreateHandler(reg, NewCreateHandler[T](factory, logger)),
		update: resolveUpdateHandler(reg, NewUpdateHandler[T](factory, logger)),
		delete: resolveDeleteHandler[T](reg, NewDeleteHandler[T](factory, logger)),
	}
}

// List returns the window of records selected by req, along with the total
// count of records matching its filters.
func (b *Broker[T]) List(ctx context.Context, req *domain.ListRequest) (*domain.ListResult[T], error) {
	return b.list.HandleList(ctx, req)
}

// Get returns the single record identified by req.UID.
func (b *Broker[T]) Get(ctx context.Context, req *domain.ItemRequest) (*domain.ItemResult[T], error) {
	return b.item.HandleItem(ctx, req)
}

// Create persists record. On success the record carries its generated UID.
func (b *Broker[T]) Create(ctx context.Context, record *T) (*domain.Result, error) {
	return b.create.HandleCreate(ctx, record)
}

// Update saves record, identified by its UID.
func (b *Broker[T]) Update(ctx context.Context, record *T) (*domain.Result, error) {
	return b.update.HandleUpdate(ctx, record)
}

// Delete removes the record identified by req.UID.
func (b *Broker[T]) Delete(ctx context.Context, req *domain.ItemRequest) (*domain.Result, error) {
	return b.delete.HandleDelete(ctx, req)
}
