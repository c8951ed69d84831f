// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todoroki/internal/core/apperror"
	"todoroki/internal/core/id"
	"todoroki/internal/infrastructure/http/v1/dto"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// BindJSON binds and validates JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// ParseID parses a UUID path parameter.
func (h *BaseHandler) ParseID(c *gin.Context, param string) (id.ID, bool) {
	raw := c.Param(param)
	parsed, err := id.Parse(raw)
	if err != nil {
		h.Error(c, apperror.NewInvalidUUID(raw))
		return id.Nil(), false
	}
	return parsed, true
}

// ParseIDs parses a list of UUID strings from a request body.
func (h *BaseHandler) ParseIDs(c *gin.Context, raw []string) ([]id.ID, bool) {
	ids := make([]id.ID, 0, len(raw))
	for _, s := range raw {
		parsed, err := id.Parse(s)
		if err != nil {
			h.Error(c, apperror.NewInvalidUUID(s))
			return nil, false
		}
		ids = append(ids, parsed)
	}
	return ids, true
}

// Error registers error on Gin context and aborts request. The JSON response
// is produced by middleware.ErrorHandler (single source of truth).
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// Created sends 201 response with ID.
func (h *BaseHandler) Created(c *gin.Context, i id.ID) {
	c.JSON(http.StatusCreated, dto.NewIDResponse(i))
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// NoContent sends 204 response.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
