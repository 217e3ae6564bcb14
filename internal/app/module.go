package app

import "github.com/gin-gonic/gin"

// Module defines the contract for a self-registering record module.
// Each module registers its own API routes.
type Module interface {
	RegisterRoutes(api *gin.RouterGroup)
}
