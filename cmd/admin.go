package main

import (
	"context"
	"time"

	"github.com/rossw/tvrx/internal/models"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"
)

const defaultWatchInterval = 5 * time.Second

// AdminStatus prints the server's ingest/sync status. With --watch it polls
// the endpoint on an interval, rate limited so a tiny --interval cannot
// hammer the server.
func (r *Runner) AdminStatus(ctx context.Context, cmd *cli.Command) error {
	token, err := r.token(ctx)
	if err != nil {
		return err
	}

	if !cmd.Bool("watch") {
		status, err := r.gateway.AdminStatus(ctx, token)
		if err != nil {
			return err
		}
		return r.writeJSON(status, true)
	}

	interval := cmd.Duration("interval")
	if interval < time.Second {
		interval = time.Second
	}
	count := int(cmd.Int("count"))

	r.logger.Info("watching admin status", "interval", interval)

	limiter := rate.NewLimiter(rate.Every(interval), 1)
	for polls := 0; count == 0 || polls < count; polls++ {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}

		status, err := r.gateway.AdminStatus(ctx, token)
		if err != nil {
			r.logger.Error("status poll failed", "error", err)
			continue
		}

		r.writePlain("--- %s ---\n", time.Now().Format("15:04:05"))
		if err := r.writeJSON(status, true); err != nil {
			return err
		}
	}
	return nil
}

// AdminQueue prints the pending ingest queue.
func (r *Runner) AdminQueue(ctx context.Context, cmd *cli.Command) error {
	token, err := r.token(ctx)
	if err != nil {
		return err
	}

	queue, err := r.gateway.AdminQueue(ctx, token)
	if err != nil {
		return err
	}
	return r.writeJSON(queue, true)
}

// AdminSync triggers a data sync from an upstream source.
func (r *Runner) AdminSync(ctx context.Context, cmd *cli.Command) error {
	token, err := r.token(ctx)
	if err != nil {
		return err
	}

	req := models.SyncRequest{
		Source: cmd.String("source"),
		DryRun: cmd.Bool("dry-run"),
	}

	r.logger.Info("triggering sync", "source", req.Source, "dry_run", req.DryRun)

	result, err := r.gateway.AdminSync(ctx, req, token)
	if err != nil {
		return err
	}
	return r.writeJSON(result, true)
}

// AdminRebuildEmbeddings rebuilds the recommendation embedding index.
func (r *Runner) AdminRebuildEmbeddings(ctx context.Context, cmd *cli.Command) error {
	token, err := r.token(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("rebuilding embeddings")

	result, err := r.gateway.AdminRebuildEmbeddings(ctx, token)
	if err != nil {
		return err
	}
	return r.writeJSON(result, true)
}
