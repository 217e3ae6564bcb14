package note

// CreateNoteRequest represents the input for creating a new note.
type CreateNoteRequest struct {
	Title string `json:"title" form:"title" binding:"required,min=1,max=200"`
	Body  string `json:"body" form:"body"`
}

// UpdateNoteRequest represents the input for updating an existing note.
type UpdateNoteRequest struct {
	Title    string `json:"title" form:"title" binding:"required,min=1,max=200"`
	Body     string `json:"body" form:"body"`
	Archived bool   `json:"archived" form:"archived"`
}
