package doit

import (
	"time"

	"todoroki/internal/core/entity"
	"todoroki/internal/core/id"
	"todoroki/internal/core/security"
)

const privatePlaceholder = "[見せられないよ]"

// View is the client-facing shape of a doit.
type View struct {
	ID              id.ID          `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	IsPublic        bool           `json:"isPublic"`
	AlternativeName *string        `json:"alternativeName,omitempty"`
	Labels          []entity.Label `json:"labels"`
	AffectsTo       *id.ID         `json:"affectsTo,omitempty"`
	DeadlinedAt     *time.Time     `json:"deadlinedAt,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	CreatedBy       id.ID          `json:"createdBy"`
}

// NewView builds the view a given caller is allowed to see.
//
// Same shape as the todo view builder, with one difference: the read-private
// permission carries the doit itself, so the engine can let the author see
// their own private doit regardless of role.
func NewView(d entity.Doit, cc security.ContextedClient) (*View, error) {
	useAlt := false
	if d.Publishment.Public {
		if err := cc.Require(security.ReadDoit{}); err != nil {
			return nil, err
		}
	} else {
		useAlt = cc.Require(security.ReadPrivateDoit{Doit: d}) != nil
	}

	name, description := d.Name, d.Description
	if useAlt {
		name = privatePlaceholder
		if d.Publishment.AlternativeName != nil {
			name = *d.Publishment.AlternativeName
		}
		description = privatePlaceholder
	}

	return &View{
		ID:              d.ID,
		Name:            name,
		Description:     description,
		IsPublic:        d.Publishment.Public,
		AlternativeName: d.Publishment.AlternativeName,
		Labels:          d.Labels,
		AffectsTo:       d.AffectsTo,
		DeadlinedAt:     d.DeadlinedAt,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
		CreatedBy:       d.CreatedBy,
	}, nil
}
