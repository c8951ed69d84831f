package handlers

import (
	"github.com/gin-gonic/gin"

	"todoroki/internal/domain/doit"
	"todoroki/internal/domain/label"
	"todoroki/internal/infrastructure/http/v1/dto"
)

// DoitHandler serves doit endpoints.
type DoitHandler struct {
	BaseHandler
	doits  *doit.Service
	labels *label.Service
}

// NewDoitHandler creates a new doit handler.
func NewDoitHandler(doits *doit.Service, labels *label.Service) *DoitHandler {
	return &DoitHandler{doits: doits, labels: labels}
}

// Create handles POST /doits.
func (h *DoitHandler) Create(c *gin.Context) {
	var req dto.CreateDoitRequest
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

	created, err := h.doits.Create(ctx, doit.CreateCommand{
		Name:        req.Name,
		Description: req.Description,
		Publishment: req.Publishment(),
		Labels:      labels,
		DeadlinedAt: req.DeadlinedAt,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, created.ID)
}

// List handles GET /doits.
func (h *DoitHandler) List(c *gin.Context) {
	views, err := h.doits.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	if views == nil {
		views = []doit.View{}
	}
	h.OK(c, views)
}

// Get handles GET /doits/:id.
func (h *DoitHandler) Get(c *gin.Context) {
	doitID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	view, err := h.doits.Get(c.Request.Context(), doitID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, view)
}

// Update handles PATCH /doits/:id.
func (h *DoitHandler) Update(c *gin.Context) {
	doitID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDoitRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cmd, err := req.ToCommand(doitID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.doits.Update(c.Request.Context(), cmd); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Delete handles DELETE /doits/:id.
func (h *DoitHandler) Delete(c *gin.Context) {
	doitID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.doits.Delete(c.Request.Context(), doitID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
