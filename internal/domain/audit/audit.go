// Package audit defines the audit trail contract used by the domain services.
package audit

import (
	"context"
	"encoding/json"

	"todoroki/internal/core/id"
)

// Action represents the type of audited operation.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Entry is a single audit record. Actor fields are filled from the request
// context by the recorder when left empty.
type Entry struct {
	EntityType string
	EntityID   id.ID
	Action     Action
	ActorID    string
	ActorEmail string
	Changes    json.RawMessage
}

// Recorder persists audit entries. Implementations must not fail the calling
// operation: a failed write is logged and swallowed.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

// NopRecorder discards every entry. Used in tests and in environments where
// the audit table is not provisioned.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Entry) {}

// MarshalChanges encodes a field-change map for an Entry, dropping the
// payload on marshal failure rather than failing the operation.
func MarshalChanges(changes map[string]any) json.RawMessage {
	raw, err := json.Marshal(changes)
	if err != nil {
		return nil
	}
	return raw
}
