package http

import "github.com/gin-gonic/gin"

// Register attaches collection routes to the given router group.
func (h *Handler[T]) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}
