package broker

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/databroker-go/databroker/internal/domain"
	"github.com/databroker-go/databroker/internal/pkg"
)

// createHandler is the generic create implementation: one INSERT inside a
// unit-of-work transaction, RowsAffected interpreted as success/failure.
type createHandler[T domain.Record] struct {
	factory SessionFactory
	logger  *slog.Logger
}

// NewCreateHandler creates the generic GORM-backed create handler for T.
func NewCreateHandler[T domain.Record](factory SessionFactory, logger *slog.Logger) CreateHandler[T] {
	if factory == nil {
		panic("broker: session factory must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &createHandler[T]{factory: factory, logger: logger}
}

func (h *createHandler[T]) HandleCreate(ctx context.Context, record *T) (*domain.Result, error) {
	if record == nil {
		return nil, domain.ErrInvalidRequest
	}

	var affected int64
	err := pkg.WithTx(h.factory.Session(ctx), func(tx *gorm.DB) error {
		res := tx.Create(record)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		appErr := mapError(err)
		h.logger.ErrorContext(ctx, "create failed",
			slog.String("record", recordName[T]()),
			slog.Any("error", err),
		)
		result := domain.Fail(appErr)
		return &result, nil
	}
	if affected == 0 {
		result := domain.Fail(domain.NewAppError(domain.CodeInternal, "no rows affected", nil))
		return &result, nil
	}

	result := domain.OK()
	return &result, nil
}
