package contact

import "github.com/gin-gonic/gin"

// Module implements the app.Module interface for the contact record.
type Module struct {
	handler *Handler
}

// NewModule creates a new contact Module. Panics if h is nil.
func NewModule(h *Handler) *Module {
	if h == nil {
		panic("contact.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// RegisterRoutes registers contact API routes.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/contacts", m.handler.Create)
	api.GET("/contacts/:uid", m.handler.Get)
	api.GET("/contacts", m.handler.List)
	api.PUT("/contacts/:uid", m.handler.Update)
	api.DELETE("/contacts/:uid", m.handler.Delete)
}
