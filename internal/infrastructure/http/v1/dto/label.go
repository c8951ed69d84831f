package dto

import (
	"todoroki/internal/core/entity"
)

// CreateLabelRequest for creating labels. Color is "#rrggbb" hex notation.
type CreateLabelRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Color       *string `json:"color"`
}

// ToEntity converts and validates the request.
func (r CreateLabelRequest) ToEntity() (entity.Label, error) {
	var color *entity.Color
	if r.Color != nil {
		c, err := entity.ParseColor(*r.Color)
		if err != nil {
			return entity.Label{}, err
		}
		color = &c
	}
	return entity.NewLabel(r.Name, r.Description, color), nil
}
