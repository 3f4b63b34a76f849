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
)

// MentorshipTypeRepository handles the shared mentorship type catalogue
type MentorshipTypeRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewMentorshipTypeRepository creates a new MentorshipTypeRepository
func NewMentorshipTypeRepository(database *db.PostgresDB) *MentorshipTypeRepository {
	return &MentorshipTypeRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// List returns every mentorship type ordered by name.
func (r *MentorshipTypeRepository) List(ctx context.Context) ([]models.MentorshipType, error) {
	return r.list(ctx, nil)
}

// GetByIDs returns the types among ids that exist, ordered by name.
func (r *MentorshipTypeRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.MentorshipType, error) {
	if len(ids) == 0 {
		return []models.MentorshipType{}, nil
	}
	return r.list(ctx, squirrel.Eq{"id": ids})
}

func (r *MentorshipTypeRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]models.MentorshipType, error) {
	q := r.sb.Select("id", "name").From("mentorship_types").OrderBy("name")
	if where != nil {
		q = q.Where(where)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list mentorship types query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing mentorship types: %w", err)
	}
	defer rows.Close()

	types := []models.MentorshipType{}
	for rows.Next() {
		var t models.MentorshipType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("error scanning mentorship type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// GetByID retrieves a mentorship type by ID
func (r *MentorshipTypeRepository) GetByID(ctx context.Context, id int64) (*models.MentorshipType, error) {
	sql, args, err := r.sb.Select("id", "name").From("mentorship_types").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get mentorship type query: %w", err)
	}

	var t models.MentorshipType
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&t.ID, &t.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMentorshipTypeNotFound
		}
		return nil, fmt.Errorf("error retrieving mentorship type: %w", err)
	}
	return &t, nil
}

// EnsureExists inserts the named types that are missing and reports how many were added.
func (r *MentorshipTypeRepository) EnsureExists(ctx context.Context, names []string) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}

	ins := r.sb.Insert("mentorship_types").Columns("name")
	for _, name := range names {
		ins = ins.Values(name)
	}
	sql, args, err := ins.Suffix("ON CONFLICT (name) DO NOTHING").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build seed mentorship types query: %w", err)
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error seeding mentorship types: %w", err)
	}
	return tag.RowsAffected(), nil
}
