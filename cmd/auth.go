package main

import (
	"context"
	"fmt"

	"github.com/rossw/tvrx/internal/services"
	"github.com/rossw/tvrx/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin acquires a session token, trying the primary login first and
// falling back to a magic link token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if email := cmd.String("email"); email != "" {
		r.session = services.NewSessionManager(r.gateway, email)
	}

	r.logger.Info("acquiring session", "email", r.session.Email())

	token, err := r.session.Acquire(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("authentication successful")
	return r.writePlain("✓ Signed in as %s (token %s...)\n", r.session.Email(), token[:min(8, len(token))])
}

// AuthStatus checks service health by calling the /healthz endpoint.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("checking service health")

	health, err := r.gateway.Health(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	if !health.OK {
		return fmt.Errorf("%w: service reports unhealthy", shared.ErrServiceUnavailable)
	}

	r.writePlain("✓ Service is healthy\n")
	if health.Debug {
		r.writePlain("Debug endpoints: enabled\n")
	}
	if health.FamilyCoverageMinFit != nil {
		r.writePlain("Family coverage threshold: %.2f\n", *health.FamilyCoverageMinFit)
	}
	return nil
}
