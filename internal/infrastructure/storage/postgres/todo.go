package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"todoroki/internal/core/apperror"
	"todoroki/internal/core/entity"
	"todoroki/internal/core/id"
)

const (
	todoTable      = "todos"
	todoLabelTable = "todo_labels"
)

var todoColumns = []string{
	"id", "name", "description", "is_public", "alternative_name",
	"schedules", "started_at", "deadlined_at", "ended_at",
	"created_at", "updated_at", "deleted_at",
}

// todoRow is the storage shape of a todo. Schedules are a JSONB document;
// labels live in a join table and are attached separately.
type todoRow struct {
	ID              id.ID      `db:"id"`
	Name            string     `db:"name"`
	Description     string     `db:"description"`
	IsPublic        bool       `db:"is_public"`
	AlternativeName *string    `db:"alternative_name"`
	Schedules       []byte     `db:"schedules"`
	StartedAt       *time.Time `db:"started_at"`
	DeadlinedAt     *time.Time `db:"deadlined_at"`
	EndedAt         *time.Time `db:"ended_at"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
	DeletedAt       *time.Time `db:"deleted_at"`
}

func (row todoRow) toEntity(labels []entity.Label) (entity.Todo, error) {
	var schedules []entity.Schedule
	if len(row.Schedules) > 0 {
		if err := json.Unmarshal(row.Schedules, &schedules); err != nil {
			return entity.Todo{}, fmt.Errorf("decode schedules: %w", err)
		}
	}

	publishment := entity.PublicPublishment()
	if !row.IsPublic {
		publishment = entity.PrivatePublishment(row.AlternativeName)
	}

	return entity.Todo{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Publishment: publishment,
		Labels:      labels,
		Schedules:   schedules,
		StartedAt:   row.StartedAt,
		DeadlinedAt: row.DeadlinedAt,
		EndedAt:     row.EndedAt,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
		DeletedAt:   row.DeletedAt,
	}, nil
}

// TodoRepo implements todo.Repository.
type TodoRepo struct {
	tx *TxManager
}

// NewTodoRepo creates a new todo repository.
func NewTodoRepo(tx *TxManager) *TodoRepo {
	return &TodoRepo{tx: tx}
}

// Create inserts a todo and its label associations in one transaction.
func (r *TodoRepo) Create(ctx context.Context, t entity.Todo) error {
	schedules, err := json.Marshal(t.Schedules)
	if err != nil {
		return fmt.Errorf("encode schedules: %w", err)
	}

	return r.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		sql, args, err := builder.
			Insert(todoTable).
			Columns(todoColumns...).
			Values(
				t.ID, t.Name, t.Description, t.Publishment.Public, t.Publishment.AlternativeName,
				schedules, t.StartedAt, t.DeadlinedAt, t.EndedAt,
				t.CreatedAt, t.UpdatedAt, nil,
			).
			ToSql()
		if err != nil {
			return fmt.Errorf("build query: %w", err)
		}
		if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("insert todo: %w", err)
		}

		return r.insertLabels(ctx, t.ID, t.Labels)
	})
}

// GetByID returns a live todo by id.
func (r *TodoRepo) GetByID(ctx context.Context, todoID id.ID) (*entity.Todo, error) {
	sql, args, err := builder.
		Select(todoColumns...).
		From(todoTable).
		Where(squirrel.Eq{"id": todoID}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row todoRow
	if err := pgxscan.Get(ctx, r.tx.GetQuerier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("todo", todoID.String())
		}
		return nil, fmt.Errorf("get todo: %w", err)
	}

	labels, err := r.loadLabels(ctx, []id.ID{todoID})
	if err != nil {
		return nil, err
	}

	t, err := row.toEntity(labels[todoID])
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns all live todos ordered by creation time.
func (r *TodoRepo) List(ctx context.Context) ([]entity.Todo, error) {
	sql, args, err := builder.
		Select(todoColumns...).
		From(todoTable).
		Where("deleted_at IS NULL").
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []todoRow
	if err := pgxscan.Select(ctx, r.tx.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
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

	todos := make([]entity.Todo, 0, len(rows))
	for _, row := range rows {
		t, err := row.toEntity(labels[row.ID])
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, nil
}

// Update applies the non-nil fields of the command to a live todo.
func (r *TodoRepo) Update(ctx context.Context, cmd entity.UpdateTodoCommand) error {
	q := builder.
		Update(todoTable).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": cmd.ID}).
		Where("deleted_at IS NULL")

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
	if cmd.ClearDeadline {
		q = q.Set("deadlined_at", nil)
	} else if cmd.DeadlinedAt != nil {
		q = q.Set("deadlined_at", *cmd.DeadlinedAt)
	}
	if cmd.Status != nil {
		switch *cmd.Status {
		case entity.ProgressCompleted:
			q = q.Set("ended_at", time.Now().UTC())
		case entity.ProgressOnProgress:
			q = q.Set("ended_at", nil)
		}
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("todo", cmd.ID.String())
	}
	return nil
}

// Delete soft-deletes a todo. The row stays for the audit trail.
func (r *TodoRepo) Delete(ctx context.Context, todoID id.ID) error {
	sql, args, err := builder.
		Update(todoTable).
		Set("deleted_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": todoID}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("todo", todoID.String())
	}
	return nil
}

func (r *TodoRepo) insertLabels(ctx context.Context, todoID id.ID, labels []entity.Label) error {
	if len(labels) == 0 {
		return nil
	}

	q := builder.Insert(todoLabelTable).Columns("todo_id", "label_id")
	for _, l := range labels {
		q = q.Values(todoID, l.ID)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := r.tx.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert todo labels: %w", err)
	}
	return nil
}

type todoLabelRow struct {
	TodoID id.ID `db:"todo_id"`
	labelRow
}

func (r *TodoRepo) loadLabels(ctx context.Context, todoIDs []id.ID) (map[id.ID][]entity.Label, error) {
	sql, args, err := builder.
		Select(
			"tl.todo_id",
			"l.id", "l.name", "l.description", "l.color", "l.created_at", "l.updated_at",
		).
		From(todoLabelTable + " tl").
		Join(labelTable + " l ON l.id = tl.label_id").
		Where(squirrel.Eq{"tl.todo_id": todoIDs}).
		OrderBy("l.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []todoLabelRow
	if err := pgxscan.Select(ctx, r.tx.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("load todo labels: %w", err)
	}

	out := make(map[id.ID][]entity.Label, len(todoIDs))
	for _, row := range rows {
		l, err := row.labelRow.toEntity()
		if err != nil {
			return nil, err
		}
		out[row.TodoID] = append(out[row.TodoID], l)
	}
	return out, nil
}
