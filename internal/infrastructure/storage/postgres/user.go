package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"todoroki/internal/core/apperror"
	"todoroki/internal/core/entity"
	"todoroki/internal/core/id"
)

const userTable = "users"

// pgUniqueViolation is the SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var userColumns = []string{"id", "role", "name", "email", "created_at", "updated_at"}

// UserRepo implements user.Repository.
type UserRepo struct {
	tx *TxManager
}

// NewUserRepo creates a new user repository.
func NewUserRepo(tx *TxManager) *UserRepo {
	return &UserRepo{tx: tx}
}

// Create inserts a user. A duplicate email maps to user/already-exists.
func (r *UserRepo) Create(ctx context.Context, u entity.User) error {
	sql, args, err := builder.
		Insert(userTable).
		Columns(userColumns...).
		Values(u.ID, u.Role, u.Name, u.Email, u.CreatedAt, u.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.tx.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.NewAlreadyExists(u.Email)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID returns a user by id.
func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*entity.User, error) {
	return r.getBy(ctx, squirrel.Eq{"id": userID}, userID.String())
}

// GetByEmail returns a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, squirrel.Eq{"email": email}, email)
}

func (r *UserRepo) getBy(ctx context.Context, cond squirrel.Eq, ref string) (*entity.User, error) {
	sql, args, err := builder.
		Select(userColumns...).
		From(userTable).
		Where(cond).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var u entity.User
	if err := pgxscan.Get(ctx, r.tx.GetQuerier(ctx), &u, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", ref)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
