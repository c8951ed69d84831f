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

const labelTable = "labels"

var labelColumns = []string{"id", "name", "description", "color", "created_at", "updated_at"}

// labelRow is the storage shape of a label. Color travels as "#rrggbb" text.
type labelRow struct {
	ID          id.ID     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Color       *string   `db:"color"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (row labelRow) toEntity() (entity.Label, error) {
	l := entity.Label{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.Color != nil {
		color, err := entity.ParseColor(*row.Color)
		if err != nil {
			return entity.Label{}, fmt.Errorf("stored color %q: %w", *row.Color, err)
		}
		l.Color = &color
	}
	return l, nil
}

// LabelRepo implements label.Repository.
type LabelRepo struct {
	tx *TxManager
}

// NewLabelRepo creates a new label repository.
func NewLabelRepo(tx *TxManager) *LabelRepo {
	return &LabelRepo{tx: tx}
}

// Create inserts a label.
func (r *LabelRepo) Create(ctx context.Context, l entity.Label) error {
	var color *string
	if l.Color != nil {
		hex := l.Color.Hex()
		color = &hex
	}

	sql, args, err := builder.
		Insert(labelTable).
		Columns(labelColumns...).
		Values(l.ID, l.Name, l.Description, color, l.CreatedAt, l.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert label: %w", err)
	}
	return nil
}

// GetByID returns a label by id.
func (r *LabelRepo) GetByID(ctx context.Context, labelID id.ID) (*entity.Label, error) {
	sql, args, err := builder.
		Select(labelColumns...).
		From(labelTable).
		Where(squirrel.Eq{"id": labelID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row labelRow
	if err := pgxscan.Get(ctx, r.tx.GetQuerier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("label", labelID.String())
		}
		return nil, fmt.Errorf("get label: %w", err)
	}

	l, err := row.toEntity()
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns all labels ordered by name.
func (r *LabelRepo) List(ctx context.Context) ([]entity.Label, error) {
	sql, args, err := builder.
		Select(labelColumns...).
		From(labelTable).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []labelRow
	if err := pgxscan.Select(ctx, r.tx.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}

	labels := make([]entity.Label, 0, len(rows))
	for _, row := range rows {
		l, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, nil
}

// Delete removes a label. Join rows disappear via ON DELETE CASCADE.
func (r *LabelRepo) Delete(ctx context.Context, labelID id.ID) error {
	sql, args, err := builder.
		Delete(labelTable).
		Where(squirrel.Eq{"id": labelID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete label: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("label", labelID.String())
	}
	return nil
}
