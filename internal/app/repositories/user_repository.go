package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/db"
	"github.com/gradnexus/campusconnect/internal/pkg/apperrors"
	"github.com/gradnexus/campusconnect/internal/pkg/dberrors"
	"github.com/gradnexus/campusconnect/internal/pkg/helpers"
	"github.com/gradnexus/campusconnect/internal/pkg/logger"
)

var userColumns = []string{
	"id", "username", "email", "password_hash", "first_name", "last_name", "role",
	"phone", "college", "degree", "batch_year", "bio", "image", "created_at", "updated_at",
}

// UserRepository handles user database operations
type UserRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database *db.PostgresDB) *UserRepository {
	return &UserRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role,
		&u.Phone, &u.College, &u.Degree, &u.BatchYear, &u.Bio, &u.Image, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts user and fills its id and timestamps.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Insert("users").
		Columns("username", "email", "password_hash", "first_name", "last_name", "role",
			"phone", "college", "degree", "batch_year", "bio", "image").
		Values(user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Role,
			user.Phone, user.College, user.Degree, user.BatchYear, user.Bio, user.Image).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	err = r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err := duplicateUserError(err); err != nil {
			return err
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// duplicateUserError maps a unique violation on username or email to its conflict error.
func duplicateUserError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "users_username_key"):
		return apperrors.ErrUsernameTaken
	case dberrors.IsDuplicateConstraintError(err, "users_email_key"):
		return apperrors.ErrEmailTaken
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).From("users").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByUsername retrieves a user by its login name.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"username": username})
}

// ListByRole returns every user with role, newest first.
func (r *UserRepository) ListByRole(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"role": role}).
		OrderBy("id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update writes the set fields of upd to the user row. Unset fields are untouched.
func (r *UserRepository) Update(ctx context.Context, id int64, upd models.UserUpdate) error {
	if upd.IsEmpty() {
		return nil
	}

	b := r.sb.Update("users")
	b = helpers.SetPatch(b, "first_name", upd.FirstName)
	b = helpers.SetPatch(b, "last_name", upd.LastName)
	b = helpers.SetPatch(b, "email", upd.Email)
	b = helpers.SetPatch(b, "phone", upd.Phone)
	b = helpers.SetPatch(b, "college", upd.College)
	b = helpers.SetPatch(b, "degree", upd.Degree)
	b = helpers.SetPatch(b, "batch_year", upd.BatchYear)
	b = helpers.SetPatch(b, "bio", upd.Bio)
	b = helpers.SetPatch(b, "image", upd.Image)

	sql, args, err := b.Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update user SQL")
		return fmt.Errorf("failed to build update user query: %w", err)
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if err := duplicateUserError(err); err != nil {
			return err
		}
		return fmt.Errorf("error updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Delete removes the user; the schema cascades to every row referencing it.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("users").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete user query: %w", err)
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
