package broker

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/databroker-go/databroker/internal/domain"
)

// itemHandler is the generic single-record query implementation.
type itemHandler[T domain.Record] struct {
	factory SessionFactory
	logger  *slog.Logger
}

// NewItemHandler creates the generic GORM-backed item handler for T.
func NewItemHandler[T domain.Record](factory SessionFactory, logger *slog.Logger) ItemHandler[T] {
	if factory == nil {
		panic("broker: session factory must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &itemHandler[T]{factory: factory, logger: logger}
}

func (h *itemHandler[T]) HandleItem(ctx context.Context, req *domain.ItemRequest) (*domain.ItemResult[T], error) {
	if req == nil || req.UID == "" {
		return nil, domain.ErrInvalidRequest
	}

	var item T
	err := h.factory.Session(ctx).Where("uid = ?", req.UID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.ItemResult[T]{Result: domain.Fail(domain.ErrNotFound)}, nil
		}
		h.logger.ErrorContext(ctx, "item query failed",
			slog.String("record", recordName[T]()),
			slog.String("uid", req.UID),
			slog.Any("error", err),
		)
		return &domain.ItemResult[T]{Result: domain.Fail(mapError(err))}, nil
	}

	return &domain.ItemResult[T]{Result: domain.OK(), Item: &item}, nil
}
