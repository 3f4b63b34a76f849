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

var profileColumns = []string{
	"id", "user_id", "current_company", "job_title", "industry", "years_of_experience",
	"linkedin_url", "willing_to_mentor",
}

// AlumniProfileRepository handles alumni profiles and their offered mentorship types
type AlumniProfileRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewAlumniProfileRepository creates a new AlumniProfileRepository
func NewAlumniProfileRepository(database *db.PostgresDB) *AlumniProfileRepository {
	return &AlumniProfileRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanProfile(row pgx.Row) (*models.AlumniProfile, error) {
	var p models.AlumniProfile
	err := row.Scan(&p.ID, &p.UserID, &p.CurrentCompany, &p.JobTitle, &p.Industry,
		&p.YearsOfExperience, &p.LinkedInURL, &p.WillingToMentor)
	if err != nil {
		return nil, err
	}
	p.AvailableFor = []models.MentorshipType{}
	return &p, nil
}

// Create inserts the profile of an alumni user.
func (r *AlumniProfileRepository) Create(ctx context.Context, profile *models.AlumniProfile) error {
	sql, args, err := r.sb.Insert("alumni_profiles").
		Columns("user_id", "current_company", "job_title", "industry", "years_of_experience",
			"linkedin_url", "willing_to_mentor").
		Values(profile.UserID, profile.CurrentCompany, profile.JobTitle, profile.Industry,
			profile.YearsOfExperience, profile.LinkedInURL, profile.WillingToMentor).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create alumni profile SQL")
		return fmt.Errorf("failed to build create alumni profile query: %w", err)
	}

	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&profile.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "alumni_profiles_user_id_key") {
			return apperrors.NewConflictError("alumni profile already exists")
		}
		return fmt.Errorf("error creating alumni profile: %w", err)
	}
	return nil
}

// GetByUserID loads the profile of userID together with its available_for set.
func (r *AlumniProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.AlumniProfile, error) {
	sql, args, err := r.sb.Select(profileColumns...).
		From("alumni_profiles").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get alumni profile query: %w", err)
	}

	profile, err := scanProfile(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving alumni profile: %w", err)
	}

	types, err := r.availableFor(ctx, []int64{profile.ID})
	if err != nil {
		return nil, err
	}
	if t, ok := types[profile.ID]; ok {
		profile.AvailableFor = t
	}
	return profile, nil
}

// ListByUserIDs loads the profiles of the given users, keyed by user id.
func (r *AlumniProfileRepository) ListByUserIDs(ctx context.Context, userIDs []int64) (map[int64]*models.AlumniProfile, error) {
	out := make(map[int64]*models.AlumniProfile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	sql, args, err := r.sb.Select(profileColumns...).
		From("alumni_profiles").
		Where(squirrel.Eq{"user_id": userIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list alumni profiles query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing alumni profiles: %w", err)
	}
	defer rows.Close()

	profileIDs := make([]int64, 0, len(userIDs))
	byProfile := make(map[int64]*models.AlumniProfile, len(userIDs))
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning alumni profile: %w", err)
		}
		out[p.UserID] = p
		byProfile[p.ID] = p
		profileIDs = append(profileIDs, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	types, err := r.availableFor(ctx, profileIDs)
	if err != nil {
		return nil, err
	}
	for id, t := range types {
		byProfile[id].AvailableFor = t
	}
	return out, nil
}

func (r *AlumniProfileRepository) availableFor(ctx context.Context, profileIDs []int64) (map[int64][]models.MentorshipType, error) {
	out := make(map[int64][]models.MentorshipType)
	if len(profileIDs) == 0 {
		return out, nil
	}

	sql, args, err := r.sb.Select("apmt.alumni_profile_id", "mt.id", "mt.name").
		From("alumni_profile_mentorship_types apmt").
		Join("mentorship_types mt ON mt.id = apmt.mentorship_type_id").
		Where(squirrel.Eq{"apmt.alumni_profile_id": profileIDs}).
		OrderBy("mt.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build available_for query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error loading available_for: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var profileID int64
		var t models.MentorshipType
		if err := rows.Scan(&profileID, &t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("error scanning mentorship type: %w", err)
		}
		out[profileID] = append(out[profileID], t)
	}
	return out, rows.Err()
}

// Update writes the set fields of upd to the profile of userID. When upd.AvailableFor
// is set, the offered mentorship types are replaced as a whole.
func (r *AlumniProfileRepository) Update(ctx context.Context, userID int64, upd models.AlumniProfileUpdate) error {
	var profileID int64

	if upd.HasColumns() {
		b := r.sb.Update("alumni_profiles")
		b = helpers.SetPatch(b, "job_title", upd.JobTitle)
		b = helpers.SetPatch(b, "current_company", upd.CurrentCompany)
		b = helpers.SetPatch(b, "industry", upd.Industry)
		b = helpers.SetPatch(b, "years_of_experience", upd.YearsOfExperience)
		b = helpers.SetPatch(b, "linkedin_url", upd.LinkedInURL)
		b = helpers.SetPatch(b, "willing_to_mentor", upd.WillingToMentor)

		sql, args, err := b.Where(squirrel.Eq{"user_id": userID}).Suffix("RETURNING id").ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building update alumni profile SQL")
			return fmt.Errorf("failed to build update alumni profile query: %w", err)
		}
		if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&profileID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrProfileNotFound
			}
			return fmt.Errorf("error updating alumni profile: %w", err)
		}
	}

	if !upd.AvailableFor.Set {
		return nil
	}

	if profileID == 0 {
		sql, args, err := r.sb.Select("id").From("alumni_profiles").Where(squirrel.Eq{"user_id": userID}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build get alumni profile id query: %w", err)
		}
		if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&profileID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrProfileNotFound
			}
			return fmt.Errorf("error retrieving alumni profile id: %w", err)
		}
	}

	return r.replaceAvailableFor(ctx, profileID, helpers.Deref(upd.AvailableFor.Value))
}

func (r *AlumniProfileRepository) replaceAvailableFor(ctx context.Context, profileID int64, typeIDs []int64) error {
	sql, args, err := r.sb.Delete("alumni_profile_mentorship_types").
		Where(squirrel.Eq{"alumni_profile_id": profileID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build clear available_for query: %w", err)
	}
	if _, err := r.db.Conn(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error clearing available_for: %w", err)
	}

	if len(typeIDs) == 0 {
		return nil
	}

	ins := r.sb.Insert("alumni_profile_mentorship_types").
		Columns("alumni_profile_id", "mentorship_type_id")
	for _, id := range typeIDs {
		ins = ins.Values(profileID, id)
	}
	sql, args, err = ins.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set available_for query: %w", err)
	}
	if _, err := r.db.Conn(ctx).Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewValidationError("Validation failed", map[string]string{
				"available_for": "Invalid mentorship type id.",
			})
		}
		return fmt.Errorf("error setting available_for: %w", err)
	}
	return nil
}
