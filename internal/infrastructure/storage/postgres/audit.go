package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	corecontext "todoroki/internal/core/context"
	"todoroki/internal/core/id"
	"todoroki/internal/domain/audit"
	"todoroki/pkg/logger"
)

const auditTable = "sys_audit"

// Compression algorithms recorded alongside the payload.
const (
	compressionNone = "none"
	compressionZstd = "zstd"
)

// AuditRecorder implements audit.Recorder on the sys_audit table. Large
// change payloads are zstd-compressed. A failed write never fails the calling
// operation; it is logged and dropped.
type AuditRecorder struct {
	tx                *TxManager
	encoder           *zstd.Encoder
	compressThreshold int
}

// NewAuditRecorder creates an audit recorder.
func NewAuditRecorder(tx *TxManager) (*AuditRecorder, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	return &AuditRecorder{
		tx:                tx,
		encoder:           encoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// Record inserts one audit entry, enriching the actor from the request
// context when the entry does not carry one.
func (r *AuditRecorder) Record(ctx context.Context, entry audit.Entry) {
	if entry.ActorID == "" {
		if cc, ok := corecontext.GetClient(ctx); ok {
			if userID, ok := cc.UserID(); ok {
				entry.ActorID = userID.String()
			}
			if email, ok := cc.Email(); ok && entry.ActorEmail == "" {
				entry.ActorEmail = email
			}
		}
	}

	changes := []byte(entry.Changes)
	var compressed []byte
	algo := compressionNone
	if len(changes) > r.compressThreshold {
		compressed = r.encoder.EncodeAll(changes, nil)
		changes = nil
		algo = compressionZstd
	}

	sql := `
		INSERT INTO ` + auditTable + ` (
			id, entity_type, entity_id, action, actor_id, actor_email,
			changes, changes_compressed, compression_algo, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	querier := r.tx.GetQuerier(ctx)
	_, err := querier.Exec(ctx, sql,
		id.New(), entry.EntityType, entry.EntityID, string(entry.Action),
		entry.ActorID, entry.ActorEmail,
		changes, compressed, algo, time.Now().UTC(),
	)
	if err != nil {
		logger.Error(ctx, "audit write failed",
			"entity_type", entry.EntityType,
			"entity_id", entry.EntityID.String(),
			"action", string(entry.Action),
			"error", err,
		)
	}
}
