package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rossw/tvrx/internal/models"
	"github.com/rossw/tvrx/internal/shared"
	"github.com/urfave/cli/v3"
)

// ProfilesList lists household profiles with their content boundaries.
func (r *Runner) ProfilesList(ctx context.Context, cmd *cli.Command) error {
	token, err := r.token(ctx)
	if err != nil {
		return err
	}

	profiles, err := r.gateway.Profiles(ctx, token)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(profiles, true)
	}

	for _, profile := range profiles {
		line := fmt.Sprintf("%-3d %s", profile.ID, profile.Name)
		if profile.AgeLimit != nil {
			line += fmt.Sprintf(" (age limit %d)", *profile.AgeLimit)
		}
		r.writePlain("%s\n", line)

		var banned []string
		for key, on := range profile.Boundaries {
			if on {
				banned = append(banned, key)
			}
		}
		if len(banned) > 0 {
			r.writePlain("    banned: %s\n", strings.Join(banned, ", "))
		}
	}
	return nil
}

// ProfilesBan adds a content boundary ban to one profile, preserving its
// other boundaries and age limit.
func (r *Runner) ProfilesBan(ctx context.Context, cmd *cli.Command) error {
	name := cmd.String("profile")
	key := cmd.String("key")

	token, err := r.token(ctx)
	if err != nil {
		return err
	}

	profiles, err := r.gateway.Profiles(ctx, token)
	if err != nil {
		return err
	}

	var target *models.Profile
	for i := range profiles {
		if strings.EqualFold(profiles[i].Name, name) {
			target = &profiles[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("%w: %s", shared.ErrProfileNotFound, name)
	}

	boundaries := make(map[string]bool, len(target.Boundaries)+1)
	for k, v := range target.Boundaries {
		boundaries[k] = v
	}
	boundaries[key] = true

	update := models.ProfileUpdate{
		Name:       target.Name,
		AgeLimit:   target.AgeLimit,
		Boundaries: boundaries,
	}

	r.logger.Info("updating boundaries", "profile", target.Name, "ban", key)

	if err := r.gateway.PostProfiles(ctx, []models.ProfileUpdate{update}, token); err != nil {
		return err
	}

	return r.writePlain("✓ %s banned for %s\n", key, target.Name)
}
