package broker

import (
	"context"
	"log/slog"

	"github.com/databroker-go/databroker/internal/domain"
)

// deleteHandler is the generic delete implementation: one DELETE by UID,
// RowsAffected interpreted as success/failure.
type deleteHandler[T domain.Record] struct {
	factory SessionFactory
	logger  *slog.Logger
}

// NewDeleteHandler creates the generic GORM-backed delete handler for T.
func NewDeleteHandler[T domain.Record](factory SessionFactory, logger *slog.Logger) DeleteHandler[T] {
	if factory == nil {
		panic("broker: session factory must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &deleteHandler[T]{factory: factory, logger: logger}
}

func (h *deleteHandler[T]) HandleDelete(ctx context.Context, req *domain.ItemRequest) (*domain.Result, error) {
	if req == nil || req.UID == "" {
		return nil, domain.ErrInvalidRequest
	}

	res := h.factory.Session(ctx).Where("uid = ?", req.UID).Delete(new(T))
	if res.Error != nil {
		appErr := mapError(res.Error)
		h.logger.ErrorContext(ctx, "delete failed",
			slog.String("record", recordName[T]()),
			slog.String("uid", req.UID),
			slog.Any("error", res.Error),
		)
		result := domain.Fail(appErr)
		return &result, nil
	}
	if res.RowsAffected == 0 {
		result := domain.Fail(domain.ErrNotFound)
		return &result, nil
	}

	result := domain.OK()
	return &result, nil
}
