package seed

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gradnexus/campusconnect/internal/app/services"
)

// CreateDefaultData inserts the default mentorship types that are missing. It is safe
// to run on every start.
func CreateDefaultData(ctx context.Context, types services.MentorshipTypeService, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default mentorship types...")

	added, err := types.EnsureDefaults(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default mentorship types")
		return err
	}

	if added > 0 {
		lgr.Info().Int64("added", added).Msg("Default mentorship types created")
	} else {
		lgr.Debug().Msg("Default mentorship types already present")
	}
	return nil
}
