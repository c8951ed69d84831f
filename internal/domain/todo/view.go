package todo

import (
	"time"

	"todoroki/internal/core/entity"
	"todoroki/internal/core/id"
	"todoroki/internal/core/security"
)

// privatePlaceholder replaces the name and description of a private todo for
// callers without read-private access.
const privatePlaceholder = "[見せられないよ]"

// View is the client-facing shape of a todo. Redaction happens here and
// nowhere else: handlers must never expose entity.Todo directly.
type View struct {
	ID              id.ID             `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	IsPublic        bool              `json:"isPublic"`
	AlternativeName *string           `json:"alternativeName,omitempty"`
	Labels          []entity.Label    `json:"labels"`
	Schedules       []entity.Schedule `json:"schedules"`
	StartedAt       *time.Time        `json:"startedAt,omitempty"`
	DeadlinedAt     *time.Time        `json:"deadlinedAt,omitempty"`
	EndedAt         *time.Time        `json:"endedAt,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// NewView builds the view a given caller is allowed to see.
//
// A public todo requires todo:read and fails hard without it. A private todo
// is never an error to look at: without todo:read-private the name falls back
// to the alternative name or the placeholder, and the description to the
// placeholder. Labels, schedules and timestamps stay visible either way.
func NewView(t entity.Todo, cc security.ContextedClient) (*View, error) {
	useAlt := false
	if t.Publishment.Public {
		if err := cc.Require(security.ReadTodo{}); err != nil {
			return nil, err
		}
	} else {
		useAlt = cc.Require(security.ReadPrivateTodo{}) != nil
	}

	name, description := t.Name, t.Description
	if useAlt {
		name = privatePlaceholder
		if t.Publishment.AlternativeName != nil {
			name = *t.Publishment.AlternativeName
		}
		description = privatePlaceholder
	}

	return &View{
		ID:              t.ID,
		Name:            name,
		Description:     description,
		IsPublic:        t.Publishment.Public,
		AlternativeName: t.Publishment.AlternativeName,
		Labels:          t.Labels,
		Schedules:       t.Schedules,
		StartedAt:       t.StartedAt,
		DeadlinedAt:     t.DeadlinedAt,
		EndedAt:         t.EndedAt,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}, nil
}
