package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseRecord is the common base struct for all broker-managed records.
// The numeric ID is the storage primary key; UID is the externally visible
// identity and carries a unique index. It replaces gorm.Model to avoid the
// implicit soft delete behavior of DeletedAt.
type BaseRecord struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UID       string    `gorm:"size:36;uniqueIndex;not null" json:"uid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a fresh UID when the record does not carry one.
func (r *BaseRecord) BeforeCreate(tx *gorm.DB) error {
	if r.UID == "" {
		r.UID = uuid.NewString()
	}
	return nil
}

// RecordUID returns the record's external identity.
func (r BaseRecord) RecordUID() string {
	return r.UID
}

// Record is satisfied by any struct embedding BaseRecord. Broker operations
// are defined over Record types.
type Record interface {
	RecordUID() string
}
