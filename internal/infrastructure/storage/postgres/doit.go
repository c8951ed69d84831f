package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"todoroki/internal/core/apperror"
	"todoroki/internal/core/entity"
	"todoroki/internal/core/id"
)

const (
	doitTable      = "doits"
	doitLabelTable = "doit_labels"
)

var doitColumns = []string{
	"id", "name", "description", "is_public", "alternative_name",
	"affects_to", "deadlined_at", "created_at", "updated_at", "created_by",
}

type doitRow struct {
	ID              id.ID      `db:"id"`
	Name            string     `db:"name"`
	Description     string     `db:"description"`
	IsPublic        bool       `db:"is_public"`
	AlternativeName *string    `db:"alternative_name"`
	AffectsTo       *id.ID     `db:"affects_to"`
	DeadlinedAt     *time.Time `db:"deadlined_at"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
	CreatedBy       id.ID      `db:"created_by"`
}

func (row doitRow) toEntity(labels []entity.Label) entity.Doit {
	publishment := entity.PublicPublishment()
	if !row.IsPublic {
		publishment = entity.PrivatePublishment(row.AlternativeName)
	}

	return entity.Doit{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Publishment: publishment,
		Labels:      labels,
		AffectsTo:   row.AffectsTo,
		DeadlinedAt: row.DeadlinedAt,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
		CreatedBy:   row.CreatedBy,
	}
}

// DoitRepo implements doit.Repository.
type DoitRepo struct {
	tx *TxManager
}

// NewDoitRepo creates a new doit repository.
func NewDoitRepo(tx *TxManager) *DoitRepo {
	return &DoitRepo{tx: tx}
}

// Create inserts a doit and its label associations in one transaction.
func (r *DoitRepo) Create(ctx context.Context, d entity.Doit) error {
	return r.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		sql, args, err := builder.
			Insert(doitTable).
			Columns(doitColumns...).
			Values(
				d.ID, d.Name, d.Description, d.Publishment.Public, d.Publishment.AlternativeName,
				d.AffectsTo, d.DeadlinedAt, d.CreatedAt, d.UpdatedAt, d.CreatedBy,
			).
			ToSql()
		if err != nil {
			return fmt.Errorf("build query: %w", err)
		}
		if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("insert doit: %w", err)
		}

		return r.insertLabels(ctx, d.ID, d.Labels)
	})
}

// GetByID returns a doit by id.
func (r *DoitRepo) GetByID(ctx context.Context, doitID id.ID) (*entity.Doit, error) {
	sql, args, err := builder.
		Select(doitColumns...).
		From(doitTable).
		Where(squirrel.Eq{"id": doitID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row doitRow
	if err := pgxscan.Get(ctx, r.tx.GetQuerier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("doit", doitID.String())
		}
		return nil, fmt.Errorf("get doit: %w", err)
	}

	labels, err := r.loadLabels(ctx, []id.ID{doitID})
	if err != nil {
		return nil, err
	}

	d := row.toEntity(labels[doitID])
	return &d, nil
}

// List returns all doits ordered by creation time.
func (r *DoitRepo) List(ctx context.Context) ([]entity.Doit, error) {
	sql, args, err := builder.
		Select(doitColumns...).
		From(doitTable).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []doitRow
	if err := pgxscan.Select(ctx, r.tx.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list doits: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]id.ID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	labels, err := r.loadLabels(ctx, ids)
	if err != nil {
		return nil, err
	}

	doits := make([]entity.Doit, 0, len(rows))
	for _, row := range rows {
		doits = append(doits, row.toEntity(labels[row.ID]))
	}
	return doits, nil
}

// Update applies the non-nil fields of the command. CreatedBy is immutable.
func (r *DoitRepo) Update(ctx context.Context, cmd entity.UpdateDoitCommand) error {
	q := builder.
		Update(doitTable).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": cmd.ID})

	if cmd.Name != nil {
		q = q.Set("name", *cmd.Name)
	}
	if cmd.Description != nil {
		q = q.Set("description", *cmd.Description)
	}
	if cmd.Publishment != nil {
		q = q.Set("is_public", cmd.Publishment.Public).
			Set("alternative_name", cmd.Publishment.AlternativeName)
	}
	if cmd.AffectsTo != nil {
		q = q.Set("affects_to", *cmd.AffectsTo)
	}
	if cmd.ClearDeadline {
		q = q.Set("deadlined_at", nil)
	} else if cmd.DeadlinedAt != nil {
		q = q.Set("deadlined_at", *cmd.DeadlinedAt)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update doit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("doit", cmd.ID.String())
	}
	return nil
}

// Delete removes a doit.
func (r *DoitRepo) Delete(ctx context.Context, doitID id.ID) error {
	sql, args, err := builder.
		Delete(doitTable).
		Where(squirrel.Eq{"id": doitID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete doit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("doit", doitID.String())
	}
	return nil
}

func (r *DoitRepo) insertLabels(ctx context.Context, doitID id.ID, labels []entity.Label) error {
	if len(labels) == 0 {
		return nil
	}

	q := builder.Insert(doitLabelTable).Columns("doit_id", "label_id")
	for _, l := range labels {
		q = q.Values(doitID, l.ID)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert doit labels: %w", err)
	}
	return nil
}

type doitLabelRow struct {
	DoitID id.ID `db:"doit_id"`
	labelRow
}

func (r *DoitRepo) loadLabels(ctx context.Context, doitIDs []id.ID) (map[id.ID][]entity.Label, error) {
	sql, args, err := builder.
		Select(
			"dl.doit_id",
			"l.id", "l.name", "l.description", "l.color", "l.created_at", "l.updated_at",
		).
		From(doitLabelTable + " dl").
		Join(labelTable + " l ON l.id = dl.label_id").
		Where(squirrel.Eq{"dl.doit_id": doitIDs}).
		OrderBy("l.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []doitLabelRow
	if err := pgxscan.Select(ctx, r.tx.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("load doit labels: %w", err)
	}

	out := make(map[id.ID][]entity.Label, len(doitIDs))
	for _, row := range rows {
		l, err := row.labelRow.toEntity()
		if err != nil {
			return nil, err
		}
		out[row.DoitID] = append(out[row.DoitID], l)
	}
	return out, nil
}
