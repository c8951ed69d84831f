package handlers

import (
	"github.com/gin-gonic/gin"

	"todoroki/internal/core/entity"
	"todoroki/internal/domain/label"
	"todoroki/internal/infrastructure/http/v1/dto"
)

// LabelHandler serves label endpoints.
type LabelHandler struct {
	BaseHandler
	labels *label.Service
}

// NewLabelHandler creates a new label handler.
func NewLabelHandler(labels *label.Service) *LabelHandler {
	return &LabelHandler{labels: labels}
}

// Create handles POST /labels.
func (h *LabelHandler) Create(c *gin.Context) {
	var req dto.CreateLabelRequest
	if !h.BindJSON(c, &req) {
		return
	}

	l, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	created, err := h.labels.Create(c.Request.Context(), l)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, created.ID)
}

// List handles GET /labels.
func (h *LabelHandler) List(c *gin.Context) {
	labels, err := h.labels.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	if labels == nil {
		labels = []entity.Label{}
	}
	h.OK(c, labels)
}

// Get handles GET /labels/:id.
func (h *LabelHandler) Get(c *gin.Context) {
	labelID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	l, err := h.labels.Get(c.Request.Context(), labelID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, l)
}

// Delete handles DELETE /labels/:id.
func (h *LabelHandler) Delete(c *gin.Context) {
	labelID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.labels.Delete(c.Request.Context(), labelID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
