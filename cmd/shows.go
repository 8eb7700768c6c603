package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rossw/tvrx/internal/repositories"
	"github.com/rossw/tvrx/internal/shared"
	"github.com/urfave/cli/v3"
)

// ShowsList lists catalog shows, optionally caching them locally.
func (r *Runner) ShowsList(ctx context.Context, cmd *cli.Command) error {
	limit := int(cmd.Int("limit"))

	r.logger.Info("listing shows", "limit", limit)

	shows, err := r.gateway.Shows(ctx, limit)
	if err != nil {
		return err
	}

	if cmd.Bool("save") {
		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		if err := shared.RunMigrations(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		if err := repositories.NewShowCacheRepository(db).PutAll(shows); err != nil {
			r.logger.Warn("show caching failed", "error", err)
		} else {
			r.logger.Info("shows cached", "count", len(shows))
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(shows, true)
	}

	for _, show := range shows {
		line := show.Title
		if show.YearStart != nil {
			line += fmt.Sprintf(" (%d)", *show.YearStart)
		}
		r.writePlain("%-14s %s\n", show.ID, line)
	}
	return nil
}

// ShowsGet prints one show's details and streaming availability.
func (r *Runner) ShowsGet(ctx context.Context, cmd *cli.Command) error {
	showID := cmd.StringArg("id")
	if showID == "" {
		return fmt.Errorf("%w: show id", shared.ErrMissingArgument)
	}

	detail, err := r.gateway.Show(ctx, showID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(detail, true)
	}

	title := detail.Title
	if detail.YearStart != nil {
		title += fmt.Sprintf(" (%d)", *detail.YearStart)
	}
	r.writePlain("%s\n", title)

	if len(detail.Warnings) > 0 {
		r.writePlain("Warnings: %s\n", strings.Join(detail.Warnings, ", "))
	}
	if len(detail.Flags) > 0 {
		r.writePlain("Flags: %s\n", strings.Join(detail.Flags, ", "))
	}

	r.writePlainln("Availability:")
	if len(detail.Availability) == 0 {
		r.writePlain("  not currently streaming\n")
	}
	for _, offer := range detail.Availability {
		line := fmt.Sprintf("  %s (%s)", offer.Platform, offer.OfferType)
		if offer.Quality != nil {
			line += fmt.Sprintf(" %s", *offer.Quality)
		}
		if offer.LeavingAt != nil {
			line += fmt.Sprintf(" — leaving %s", *offer.LeavingAt)
		}
		r.writePlain("%s\n", line)
	}
	return nil
}
