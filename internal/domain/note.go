package domain

// Note is a free-text record managed through the generic broker. The note
// module overrides the broker's default list handler and filter strategy for
// this type.
type Note struct {
	BaseRecord
	Title    string `gorm:"size:200;not null" json:"title"`
	Body     string `gorm:"type:text" json:"body"`
	Archived bool   `gorm:"not null;default:false" json:"archived"`
}
