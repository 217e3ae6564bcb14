package domain

// Contact is an address-book record managed through the generic broker.
type Contact struct {
	BaseRecord
	Name    string `gorm:"size:100;not null" json:"name"`
	Email   string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone   string `gorm:"size:40" json:"phone"`
	Company string `gorm:"size:100" json:"company"`
}
