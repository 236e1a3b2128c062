package http

import "github.com/portfolio-admin/admin-backend/internal/auth/service"

type Handler struct {
	gate         *service.Gate
	cookieSecure bool
}

func New(gate *service.Gate, cookieSecure bool) *Handler {
	return &Handler{
		gate:         gate,
		cookieSecure: cookieSecure,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
