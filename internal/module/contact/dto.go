package contact

// CreateContactRequest represents the input for creating a new contact.
type CreateContactRequest struct {
	Name    string `json:"name" form:"name" binding:"required,min=2,max=100"`
	Email   string `json:"email" form:"email" binding:"required,email"`
	Phone   string `json:"phone" form:"phone" binding:"omitempty,max=40"`
	Company string `json:"company" form:"company" binding:"omitempty,max=100"`
}

// UpdateContactRequest represents the input for updating an existing contact.
type UpdateContactRequest struct {
	Name    string `json:"name" form:"name" binding:"required,min=2,max=100"`
	Email   string `json:"email" form:"email" binding:"required,email"`
	Phone   string `json:"phone" form:"phone" binding:"omitempty,max=40"`
	Company string `json:"company" form:"company" binding:"omitempty,max=100"`
}
