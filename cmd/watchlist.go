package main

import (
	"context"
	"fmt"

	"github.com/rossw/tvrx/internal/recstate"
	"github.com/rossw/tvrx/internal/shared"
	"github.com/urfave/cli/v3"
)

// watchlistStore loads the watchlist for the profile selected by flags.
func (r *Runner) watchlistStore(ctx context.Context, cmd *cli.Command) (*recstate.WatchlistStore, string, error) {
	profileName := cmd.String("for")
	if profileName == "" {
		profileName = r.config.Recommendations.Profile
	}
	profile, err := recstate.ParseProfile(profileName)
	if err != nil {
		return nil, "", err
	}

	token, err := r.token(ctx)
	if err != nil {
		return nil, "", err
	}

	store := recstate.NewWatchlistStore(r.gateway)
	if err := store.Load(ctx, r.profileID(ctx, token, profile), token); err != nil {
		return nil, "", err
	}
	return store, token, nil
}

// WatchlistList prints the watchlist membership for a profile.
func (r *Runner) WatchlistList(ctx context.Context, cmd *cli.Command) error {
	store, _, err := r.watchlistStore(ctx, cmd)
	if err != nil {
		return err
	}

	ids := store.ShowIDs()
	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"profile_id": store.ProfileID(), "show_ids": ids}, true)
	}

	if len(ids) == 0 {
		return r.writePlain("Watchlist is empty\n")
	}
	for _, id := range ids {
		r.writePlain("%s\n", id)
	}
	return nil
}

// WatchlistAdd adds a show to the watchlist.
func (r *Runner) WatchlistAdd(ctx context.Context, cmd *cli.Command) error {
	showID := cmd.StringArg("id")
	if showID == "" {
		return fmt.Errorf("%w: show id", shared.ErrMissingArgument)
	}

	store, token, err := r.watchlistStore(ctx, cmd)
	if err != nil {
		return err
	}

	if store.Has(showID) {
		return r.writePlain("%s is already on the watchlist\n", showID)
	}

	if err := store.Add(ctx, showID, token); err != nil {
		return err
	}
	return r.writePlain("✓ Added %s (%d shows on the list)\n", showID, store.Len())
}

// WatchlistRemove removes a show from the watchlist.
func (r *Runner) WatchlistRemove(ctx context.Context, cmd *cli.Command) error {
	showID := cmd.StringArg("id")
	if showID == "" {
		return fmt.Errorf("%w: show id", shared.ErrMissingArgument)
	}

	store, token, err := r.watchlistStore(ctx, cmd)
	if err != nil {
		return err
	}

	if !store.Has(showID) {
		return r.writePlain("%s is not on the watchlist\n", showID)
	}

	if err := store.Remove(ctx, showID, token); err != nil {
		return err
	}
	return r.writePlain("✓ Removed %s (%d shows on the list)\n", showID, store.Len())
}
