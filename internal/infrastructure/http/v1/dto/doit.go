package dto

import (
	"time"

	"todoroki/internal/core/apperror"
	"todoroki/internal/core/entity"
	"todoroki/internal/core/id"
)

// CreateDoitRequest for creating doits.
type CreateDoitRequest struct {
	Name            string     `json:"name" binding:"required"`
	Description     string     `json:"description"`
	IsPublic        bool       `json:"isPublic"`
	AlternativeName *string    `json:"alternativeName"`
	LabelIDs        []string   `json:"labelIds"`
	DeadlinedAt     *time.Time `json:"deadlinedAt"`
}

// Publishment builds the publishment value.
func (r CreateDoitRequest) Publishment() entity.Publishment {
	if r.IsPublic {
		return entity.PublicPublishment()
	}
	return entity.PrivatePublishment(r.AlternativeName)
}

// UpdateDoitRequest for partial doit updates.
type UpdateDoitRequest struct {
	Name            *string    `json:"name"`
	Description     *string    `json:"description"`
	IsPublic        *bool      `json:"isPublic"`
	AlternativeName *string    `json:"alternativeName"`
	AffectsTo       *string    `json:"affectsTo"`
	DeadlinedAt     *time.Time `json:"deadlinedAt"`
	ClearDeadline   bool       `json:"clearDeadline"`
}

// ToCommand converts the request to a domain update command.
func (r UpdateDoitRequest) ToCommand(doitID id.ID) (entity.UpdateDoitCommand, error) {
	cmd := entity.UpdateDoitCommand{
		ID:            doitID,
		Name:          r.Name,
		Description:   r.Description,
		DeadlinedAt:   r.DeadlinedAt,
		ClearDeadline: r.ClearDeadline,
	}
	if r.IsPublic != nil {
		p := entity.PrivatePublishment(r.AlternativeName)
		if *r.IsPublic {
			p = entity.PublicPublishment()
		}
		cmd.Publishment = &p
	}
	if r.AffectsTo != nil {
		affectsTo, err := id.Parse(*r.AffectsTo)
		if err != nil {
			return entity.UpdateDoitCommand{}, apperror.NewInvalidUUID(*r.AffectsTo)
		}
		cmd.AffectsTo = &affectsTo
	}
	return cmd, nil
}
