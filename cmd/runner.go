package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/rossw/tvrx/internal/recstate"
	"github.com/rossw/tvrx/internal/services"
	"github.com/rossw/tvrx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	gateway services.Gateway
	session *services.SessionManager
	logger  *log.Logger
	output  io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Gateway services.Gateway
	Session *services.SessionManager
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Gateway == nil {
		opts.Gateway = services.NewClient(opts.Config.API.BaseURL, nil)
	}
	if opts.Session == nil {
		opts.Session = services.NewSessionManager(opts.Gateway, opts.Config.Session.Email)
	}

	return &Runner{
		config:  opts.Config,
		gateway: opts.Gateway,
		session: opts.Session,
		logger:  opts.Logger,
		output:  opts.Output,
	}
}

// SetLogger swaps the runner's logger, used when the TUI redirects logs to a file.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, recsCommand, showsCommand, profilesCommand,
		rateCommand, onboardCommand, watchlistCommand, adminCommand, cacheCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// token acquires (or reuses) the session token, logging in first if needed.
func (r *Runner) token(ctx context.Context) (string, error) {
	token, err := r.session.Acquire(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	return token, nil
}

// queryFromFlags builds the recommendation query context from command flags,
// falling back to configured defaults.
func (r *Runner) queryFromFlags(cmd *cli.Command) (recstate.QueryContext, error) {
	q := recstate.DefaultQuery()

	profileName := cmd.String("for")
	if profileName == "" {
		profileName = r.config.Recommendations.Profile
	}
	if profileName != "" {
		profile, err := recstate.ParseProfile(profileName)
		if err != nil {
			return q, err
		}
		q.Profile = profile
	}

	intentName := cmd.String("intent")
	if intentName == "" {
		intentName = r.config.Recommendations.Intent
	}
	if intentName != "" {
		intent, err := recstate.ParseIntent(intentName)
		if err != nil {
			return q, err
		}
		q.Intent = intent
	}

	q.AnchorID = cmd.String("like")

	if cmd.IsSet("seed") {
		seed := int(cmd.Int("seed"))
		q.Seed = &seed
	} else if r.config.Recommendations.Seed != nil {
		q.Seed = r.config.Recommendations.Seed
	}

	return q, nil
}

// profileID resolves the active profile to a server profile id.
func (r *Runner) profileID(ctx context.Context, token string, profile recstate.Profile) int {
	profiles, err := r.gateway.Profiles(ctx, token)
	if err != nil {
		r.logger.Warn("profile listing failed, assuming id 1", "error", err)
	}
	return recstate.ResolveProfileID(profiles, profile)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
