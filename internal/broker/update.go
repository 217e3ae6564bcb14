package broker

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/databroker-go/databroker/internal/domain"
	"github.com/databroker-go/databroker/internal/pkg"
)

// updateHandler is the generic update implementation: all columns of the
// record identified by its UID are written inside a unit-of-work
// transaction. Zero rows affected means the record does not exist.
type updateHandler[T domain.Record] struct {
	factory SessionFactory
	logger  *slog.Logger
}

// NewUpdateHandler creates the generic GORM-backed update handler for T.
func NewUpdateHandler[T domain.Record](factory SessionFactory, logger *slog.Logger) UpdateHandler[T] {
	if factory == nil {
		panic("broker: session factory must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &updateHandler[T]{factory: factory, logger: logger}
}

func (h *updateHandler[T]) HandleUpdate(ctx context.Context, record *T) (*domain.Result, error) {
	if record == nil {
		return nil, domain.ErrInvalidRequest
	}
	uid := (*record).RecordUID()
	if uid == "" {
		return nil, domain.ErrInvalidRequest
	}

	var affected int64
	err := pkg.WithTx(h.factory.Session(ctx), func(tx *gorm.DB) error {
		// Select("*") also writes zero-valued fields; identity and creation
		// time stay untouched.
		res := tx.Model(record).
			Where("uid = ?", uid).
			Select("*").
			Omit("id", "uid", "created_at").
			Updates(record)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		appErr := mapError(err)
		h.logger.ErrorContext(ctx, "update failed",
			slog.String("record", recordName[T]()),
			slog.String("uid", uid),
			slog.Any("error", err),
		)
		result := domain.Fail(appErr)
		return &result, nil
	}
	if affected == 0 {
		result := domain.Fail(domain.ErrNotFound)
		return &result, nil
	}

	result := domain.OK()
	return &result, nil
}
