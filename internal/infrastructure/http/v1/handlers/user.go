package handlers

import (
	"github.com/gin-gonic/gin"

	"todoroki/internal/domain/user"
	"todoroki/internal/infrastructure/http/v1/dto"
)

// UserHandler serves user endpoints.
type UserHandler struct {
	BaseHandler
	users *user.Service
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users *user.Service) *UserHandler {
	return &UserHandler{users: users}
}

// Create handles POST /users. Registers the calling client under its
// verified email.
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.users.Register(c.Request.Context(), req.Name)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, created.ID)
}

// Me handles GET /users/me.
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.users.Me(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, u)
}
