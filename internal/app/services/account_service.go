package services

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/gradnexus/campusconnect/internal/app/models"
	"github.com/gradnexus/campusconnect/internal/app/models/dto"
	"github.com/gradnexus/campusconnect/internal/pkg/apperrors"
	pkgauth "github.com/gradnexus/campusconnect/internal/pkg/auth"
	"github.com/gradnexus/campusconnect/internal/pkg/validation"
)

// AccountService handles signup and the caller's own profile.
type AccountService interface {
	Signup(ctx context.Context, payload dto.SignupPayload) (*models.User, string, error)
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, user models.UserUpdate, alumni models.AlumniProfileUpdate) (*models.User, error)
	DeleteAccount(ctx context.Context, userID int64) error
}

type accountServiceImpl struct {
	tx       Transactor
	users    UserStore
	profiles AlumniProfileStore
	types    MentorshipTypeStore
	tokens   AuthService
	hasher   *pkgauth.PasswordHasher
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(
	tx Transactor,
	users UserStore,
	profiles AlumniProfileStore,
	types MentorshipTypeStore,
	tokens AuthService,
	hasher *pkgauth.PasswordHasher,
	logger zerolog.Logger,
) AccountService {
	return &accountServiceImpl{
		tx:       tx,
		users:    users,
		profiles: profiles,
		types:    types,
		tokens:   tokens,
		hasher:   hasher,
		validate: validation.New(),
		logger:   logger,
	}
}

func (s *accountServiceImpl) validateSignup(payload dto.SignupPayload) error {
	fields := map[string]string{}
	if err := s.validate.Struct(payload); err != nil {
		fields = validation.FieldErrors(err)
		if fields == nil {
			return err
		}
	}

	common := payload.Common()
	if common.Password != common.ConfirmPassword {
		fields["confirm_password"] = "Passwords do not match."
		details := make(map[string]interface{}, len(fields))
		for k, v := range fields {
			details[k] = v
		}
		return (&apperrors.CustomError{Err: apperrors.ErrPasswordMismatch, Message: "Validation failed"}).WithDetails(details)
	}

	if len(fields) > 0 {
		return apperrors.NewValidationError("Validation failed", fields)
	}
	return nil
}

// Signup creates the user and, for alumni, its profile in one transaction, then
// issues the user's token.
func (s *accountServiceImpl) Signup(ctx context.Context, payload dto.SignupPayload) (*models.User, string, error) {
	if err := s.validateSignup(payload); err != nil {
		return nil, "", err
	}

	common := payload.Common()
	hash, err := s.hasher.Hash(common.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Username:     common.Username,
		Email:        common.Email,
		PasswordHash: hash,
		FirstName:    common.FirstName,
		LastName:     common.LastName,
		Role:         payload.Role(),
		Phone:        common.Phone,
		College:      common.College,
		Degree:       common.Degree,
		BatchYear:    common.BatchYear,
		Bio:          common.Bio,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.users.Create(ctx, user); err != nil {
			return err
		}

		alumni, ok := payload.(*dto.AlumniSignup)
		if !ok {
			return nil
		}
		profile := &models.AlumniProfile{
			UserID:          user.ID,
			JobTitle:        &alumni.JobTitle,
			CurrentCompany:  &alumni.CurrentCompany,
			WillingToMentor: alumni.WillingToMentor,
		}
		if err := s.profiles.Create(ctx, profile); err != nil {
			return err
		}
		profile.AvailableFor = []models.MentorshipType{}
		user.AlumniProfile = profile
		return nil
	})
	if err != nil {
		user.AlumniProfile = nil
		return nil, "", err
	}

	token, err := s.tokens.IssueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User signed up")
	return user, token, nil
}

// GetProfile returns the user with its alumni profile attached when it has one.
func (s *accountServiceImpl) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsAlumni() {
		return user, nil
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		user.AlumniProfile = profile
	case errors.Is(err, apperrors.ErrProfileNotFound):
	default:
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies both halves of a profile update in one transaction. The
// alumni half is ignored for students and for alumni without a profile.
func (s *accountServiceImpl) UpdateProfile(ctx context.Context, userID int64, userUpd models.UserUpdate, alumniUpd models.AlumniProfileUpdate) (*models.User, error) {
	if alumniUpd.AvailableFor.Set && alumniUpd.AvailableFor.Value != nil {
		ids := uniqueIDs(*alumniUpd.AvailableFor.Value)
		found, err := s.types.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		if len(found) != len(ids) {
			return nil, apperrors.NewValidationError("Validation failed", map[string]string{
				"available_for": "Invalid pk - object does not exist.",
			})
		}
		alumniUpd.AvailableFor = models.SetTo(ids)
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := s.users.Update(ctx, userID, userUpd); err != nil {
			return err
		}

		if !user.IsAlumni() || alumniUpd.IsEmpty() {
			return nil
		}
		err = s.profiles.Update(ctx, userID, alumniUpd)
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			s.logger.Warn().Int64("userID", userID).Msg("Alumni without profile, skipping alumni fields")
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

// DeleteAccount removes the user and, through the schema, everything it owns.
func (s *accountServiceImpl) DeleteAccount(ctx context.Context, userID int64) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Int64("userID", userID).Msg("Account deleted")
	return nil
}
