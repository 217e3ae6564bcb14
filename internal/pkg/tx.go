package pkg

import "gorm.io/gorm"

// WithTx runs fn inside a transaction on db. The transaction commits when
// fn returns nil and rolls back when fn returns an error or panics; a
// panic is re-raised after the rollback.
func WithTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	tx := db.Begin()
	if err := tx.Error; err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
