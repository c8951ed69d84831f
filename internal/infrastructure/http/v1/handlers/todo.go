package handlers

import (
	"github.com/gin-gonic/gin"

	"todoroki/internal/core/entity"
	"todoroki/internal/domain/label"
	"todoroki/internal/domain/todo"
	"todoroki/internal/infrastructure/http/v1/dto"
)

// TodoHandler serves todo endpoints.
type TodoHandler struct {
	BaseHandler
	todos  *todo.Service
	labels *label.Service
}

// NewTodoHandler creates a new todo handler.
func NewTodoHandler(todos *todo.Service, labels *label.Service) *TodoHandler {
	return &TodoHandler{todos: todos, labels: labels}
}

// Create handles POST /todos.
func (h *TodoHandler) Create(c *gin.Context) {
	var req dto.CreateTodoRequest
	if !h.BindJSON(c, &req) {
		return
	}

	labelIDs, ok := h.ParseIDs(c, req.LabelIDs)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	labels, err := h.labels.Resolve(ctx, labelIDs)
	if err != nil {
		h.Error(c, err)
		return
	}

	schedules, err := req.ToSchedules()
	if err != nil {
		h.Error(c, err)
		return
	}

	t := entity.NewTodo(req.Name, req.Description, req.Publishment(), labels, schedules, req.DeadlinedAt)
	created, err := h.todos.Create(ctx, t)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, created.ID)
}

// List handles GET /todos.
func (h *TodoHandler) List(c *gin.Context) {
	views, err := h.todos.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	if views == nil {
		views = []todo.View{}
	}
	h.OK(c, views)
}

// Get handles GET /todos/:id.
func (h *TodoHandler) Get(c *gin.Context) {
	todoID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	view, err := h.todos.Get(c.Request.Context(), todoID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, view)
}

// Update handles PATCH /todos/:id.
func (h *TodoHandler) Update(c *gin.Context) {
	todoID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTodoRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cmd, err := req.ToCommand(todoID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.todos.Update(c.Request.Context(), cmd); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Delete handles DELETE /todos/:id.
func (h *TodoHandler) Delete(c *gin.Context) {
	todoID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.todos.Delete(c.Request.Context(), todoID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
