package broker

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/databroker-go/databroker/internal/domain"
)

// Paginate returns a GORM scope that applies the request's offset window.
// A PageSize of 0 applies no LIMIT.
func Paginate(req domain.ListRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if req.StartIndex > 0 {
			db = db.Offset(req.StartIndex)
		}
		if req.PageSize > 0 {
			db = db.Limit(req.PageSize)
		}
		return db
	}
}

// listHandler is the generic list implementation: count matching records,
// then fetch the requested window with the sort and filter strategies
// applied. Everything is delegated to the GORM query builder.
type listHandler[T domain.Record] struct {
	factory  SessionFactory
	sorter   Sorter
	filterer Filterer
	logger   *slog.Logger
}

// NewListHandler creates the generic GORM-backed list handler for T.
// A nil sorter or filterer falls back to the reflection-based column
// strategies; a nil logger falls back to slog.Default().
func NewListHandler[T domain.Record](factory SessionFactory, sorter Sorter, filterer Filterer, logger *slog.Logger) ListHandler[T] {
	if factory == nil {
		panic("broker: session factory must not be nil")
	}
	if sorter == nil {
		sorter = NewColumnSorter[T]()
	}
	if filterer == nil {
		filterer = NewColumnFilterer[T]()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &listHandler[T]{factory: factory, sorter: sorter, filterer: filterer, logger: logger}
}

func (h *listHandler[T]) HandleList(ctx context.Context, req *domain.ListRequest) (*domain.ListResult[T], error) {
	if req == nil {
		return nil, domain.ErrInvalidRequest
	}
	r := req.Normalized()

	base := h.factory.Session(ctx).Model(new(T))
	base = h.filterer.ApplyFilters(base, r.Filters)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return &domain.ListResult[T]{Result: h.fail(ctx, "list count", err)}, nil
	}

	var items []T
	query := h.sorter.ApplySort(base, r.SortField, r.SortDescending)
	if err := query.Scopes(Paginate(r)).Find(&items).Error; err != nil {
		return &domain.ListResult[T]{Result: h.fail(ctx, "list find", err)}, nil
	}

	if items == nil {
		items = []T{}
	}
	return &domain.ListResult[T]{
		Result:     domain.OK(),
		Items:      items,
		TotalCount: total,
	}, nil
}

func (h *listHandler[T]) fail(ctx context.Context, op string, err error) domain.Result {
	appErr := mapError(err)
	h.logger.ErrorContext(ctx, op+" failed",
		slog.String("record", recordName[T]()),
		slog.Any("error", err),
	)
	return domain.Fail(appErr)
}
