package broker

import (
	"context"

	"gorm.io/gorm"
)

// SessionFactory yields the unit-of-work session for a single broker
// operation. Every operation asks the factory for a fresh session, so no
// statement state is shared across calls; connection pooling stays with the
// underlying sql.DB.
type SessionFactory interface {
	Session(ctx context.Context) *gorm.DB
}

type gormFactory struct {
	db *gorm.DB
}

// NewSessionFactory creates a SessionFactory backed by the given GORM database.
func NewSessionFactory(db *gorm.DB) SessionFactory {
	if db == nil {
		panic("broker: database must not be nil")
	}
	return &gormFactory{db: db}
}

func (f *gormFactory) Session(ctx context.Context) *gorm.DB {
	return f.db.Session(&gorm.Session{NewDB: true}).WithContext(ctx)
}
