package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rossw/tvrx/internal/models"
	"github.com/rossw/tvrx/internal/recstate"
	"github.com/rossw/tvrx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Rate submits a rating for one show on behalf of a profile.
func (r *Runner) Rate(ctx context.Context, cmd *cli.Command) error {
	showID := cmd.StringArg("id")
	if showID == "" {
		return fmt.Errorf("%w: show id", shared.ErrMissingArgument)
	}

	value := int(cmd.Int("value"))
	if value < models.RatingBad || value > models.RatingVeryGood {
		return fmt.Errorf("%w: rating must be %d..%d", shared.ErrInvalidFlag, models.RatingBad, models.RatingVeryGood)
	}

	profileName := cmd.String("for")
	if profileName == "" {
		profileName = r.config.Recommendations.Profile
	}
	profile, err := recstate.ParseProfile(profileName)
	if err != nil {
		return err
	}

	token, err := r.token(ctx)
	if err != nil {
		return err
	}

	rating := models.Rating{
		ProfileID:  r.profileID(ctx, token, profile),
		ShowID:     showID,
		Primary:    value,
		NuanceTags: cmd.StringSlice("tag"),
		Note:       cmd.String("note"),
	}

	r.logger.Info("submitting rating", "show", showID, "value", value)

	if err := r.gateway.PostRating(ctx, rating, token); err != nil {
		return err
	}

	return r.writePlain("✓ Rated %s\n", showID)
}

// Onboard submits an onboarding preference payload read from a JSON file.
func (r *Runner) Onboard(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("file")

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read payload file: %w", err)
	}

	var payload models.OnboardingPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	token, err := r.token(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("submitting onboarding preferences", "profile_id", payload.ProfileID)

	if err := r.gateway.PostOnboarding(ctx, payload, token); err != nil {
		return err
	}

	return r.writePlain("✓ Onboarding preferences saved for profile %d\n", payload.ProfileID)
}
