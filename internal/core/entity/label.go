package entity

import (
	"fmt"
	"time"

	"todoroki/internal/core/apperror"
	"todoroki/internal/core/id"
)

// Label categorizes todos and doits.
type Label struct {
	ID          id.ID     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Color       *Color    `db:"color" json:"color,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// NewLabel creates a label with a fresh id and timestamps.
func NewLabel(name, description string, color *Color) Label {
	now := time.Now().UTC()
	return Label{
		ID:          id.New(),
		Name:        name,
		Description: description,
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Color is an RGB display color.
type Color struct {
	Red   uint8 `json:"red"`
	Green uint8 `json:"green"`
	Blue  uint8 `json:"blue"`
}

// ParseColor parses "#rrggbb" hex notation.
func ParseColor(s string) (Color, error) {
	var c Color
	if len(s) != 7 || s[0] != '#' {
		return c, apperror.NewInvalidColor(s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.Red, &c.Green, &c.Blue); err != nil {
		return c, apperror.NewInvalidColor(s)
	}
	return c, nil
}

// Hex returns the "#rrggbb" representation.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.Red, c.Green, c.Blue)
}
