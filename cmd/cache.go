package main

import (
	"context"
	"fmt"

	"github.com/rossw/tvrx/internal/repositories"
	"github.com/rossw/tvrx/internal/shared"
	"github.com/urfave/cli/v3"
)

// openDatabase opens the configured sqlite database with migrations applied.
func (r *Runner) openDatabase() (closeFn func(), repoDB *repositories.ShowCacheRepository, snapDB *repositories.RecSnapshotRepository, err error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return func() { db.Close() },
		repositories.NewShowCacheRepository(db),
		repositories.NewRecSnapshotRepository(db),
		nil
}

// CacheShowsList lists locally cached shows.
func (r *Runner) CacheShowsList(ctx context.Context, cmd *cli.Command) error {
	closeFn, showRepo, _, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer closeFn()

	shows, err := showRepo.List()
	if err != nil {
		return err
	}

	if len(shows) == 0 {
		return r.writePlain("Show cache is empty; run 'tvrx shows list --save'\n")
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

// CacheShowsClear drops all cached shows.
func (r *Runner) CacheShowsClear(ctx context.Context, cmd *cli.Command) error {
	closeFn, showRepo, _, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer closeFn()

	n, err := showRepo.Clear()
	if err != nil {
		return err
	}

	r.logger.Info("show cache cleared", "rows", n)
	return r.writePlain("✓ Cleared %d cached shows\n", n)
}

// CacheSnapshots lists saved recommendation snapshots.
func (r *Runner) CacheSnapshots(ctx context.Context, cmd *cli.Command) error {
	closeFn, _, snapRepo, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer closeFn()

	snaps, err := snapRepo.List()
	if err != nil {
		return err
	}

	if len(snaps) == 0 {
		return r.writePlain("No saved snapshots; run 'tvrx recs list --save'\n")
	}

	for _, snap := range snaps {
		r.writePlain("%-8s %-14s %3d shows  %s\n", snap.Profile, snap.Intent, len(snap.Items), snap.FetchedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
