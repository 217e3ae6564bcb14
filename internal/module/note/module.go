package note

import "github.com/gin-gonic/gin"

// Module implements the app.Module interface for the note record.
type Module struct {
	handler *Handler
}

// NewModule creates a new note Module. Panics if h is nil.
func NewModule(h *Handler) *Module {
	if h == nil {
		panic("note.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// RegisterRoutes registers note API routes.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/notes", m.handler.Create)
	api.GET("/notes/:uid", m.handler.Get)
	api.GET("/notes", m.handler.List)
	api.PUT("/notes/:uid", m.handler.Update)
	api.DELETE("/notes/:uid", m.handler.Delete)
}
