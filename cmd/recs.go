package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rossw/tvrx/internal/formatter"
	"github.com/rossw/tvrx/internal/models"
	"github.com/rossw/tvrx/internal/recstate"
	"github.com/rossw/tvrx/internal/repositories"
	"github.com/rossw/tvrx/internal/shared"
	"github.com/rossw/tvrx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// RecsList fetches the recommendation batch for the requested query context
// and prints or exports it.
func (r *Runner) RecsList(ctx context.Context, cmd *cli.Command) error {
	query, err := r.queryFromFlags(cmd)
	if err != nil {
		return err
	}

	token, err := r.token(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("fetching recommendations", "profile", query.Profile, "intent", query.Intent)

	items, err := r.gateway.Recommendations(ctx, query.Query(), token)
	if err != nil {
		return err
	}

	if cmd.Bool("save") {
		if err := r.saveSnapshot(query, items); err != nil {
			r.logger.Warn("snapshot save failed", "error", err)
		} else {
			r.logger.Info("batch saved to snapshot cache")
		}
	}

	if format := cmd.String("export"); format != "" {
		return r.exportBatch(query, items, format, cmd.String("output"))
	}

	if cmd.Bool("json") {
		return r.writeJSON(items, cmd.Bool("pretty"))
	}

	return r.printBatch(query, items)
}

// RecsDebug fetches the scoring breakdown rows from the debug endpoint.
// Only reachable when the server reports debug mode on its health payload.
func (r *Runner) RecsDebug(ctx context.Context, cmd *cli.Command) error {
	query, err := r.queryFromFlags(cmd)
	if err != nil {
		return err
	}

	health, err := r.gateway.Health(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	if !health.Debug {
		return fmt.Errorf("%w: server debug mode is off", shared.ErrDebugDisabled)
	}

	token, err := r.token(ctx)
	if err != nil {
		return err
	}

	rows, err := r.gateway.DebugRecommendations(ctx, query.Query(), token)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(rows, cmd.Bool("pretty"))
	}

	r.writePlain("%-14s %-30s %s\n", "ID", "TITLE", "SCORES")
	for _, row := range rows {
		scores := make([]string, len(row.Scores))
		for i, score := range row.Scores {
			scores[i] = fmt.Sprintf("%.3f", score)
		}
		r.writePlain("%-14s %-30s %s\n", row.ID, truncate(row.Title, 30), strings.Join(scores, " "))
	}
	return nil
}

// RecsCoverage fetches the family batch and reports per-member coverage.
func (r *Runner) RecsCoverage(ctx context.Context, cmd *cli.Command) error {
	query, err := r.queryFromFlags(cmd)
	if err != nil {
		return err
	}
	query.Profile = recstate.ProfileFamily

	token, err := r.token(ctx)
	if err != nil {
		return err
	}

	threshold := r.config.Recommendations.CoverageThreshold
	if threshold == 0 {
		threshold = recstate.DefaultCoverageThreshold
	}
	if health, err := r.gateway.Health(ctx); err == nil && health.FamilyCoverageMinFit != nil {
		threshold = *health.FamilyCoverageMinFit
	}
	if cmd.IsSet("threshold") {
		threshold = cmd.Float("threshold")
	}

	items, err := r.gateway.Recommendations(ctx, query.Query(), token)
	if err != nil {
		return err
	}

	cov := recstate.ComputeCoverage(items, threshold)

	r.writePlain("Coverage (threshold %.2f, %d shows)\n", threshold, len(items))
	for _, member := range recstate.FamilyMembers {
		mark := "✗"
		if cov.PerMember[member] {
			mark = "✓"
		}
		r.writePlain("  %s %-5s best fit %.2f\n", mark, member, cov.MaxFit[member])
	}

	// Strong pick and threshold coverage are independent signals; both are
	// always reported.
	if recstate.HasStrongPick(items) {
		r.writePlainln("✓ Strong family pick available")
	} else {
		r.writePlainln("✗ No standout family pick")
	}
	if cov.Covered() {
		r.writePlainln("✓ Something for everyone tonight")
	} else {
		r.writePlainln("✗ Coverage gap; consider a different intent")
	}
	return nil
}

// RecsLast prints the last saved batch from the local snapshot cache.
func (r *Runner) RecsLast(ctx context.Context, cmd *cli.Command) error {
	query, err := r.queryFromFlags(cmd)
	if err != nil {
		return err
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := repositories.NewRecSnapshotRepository(db)
	snap, err := repo.Get(string(query.Profile), string(query.Intent))
	if err != nil {
		return err
	}

	r.writePlain("Saved %s\n", snap.FetchedAt.Format("2006-01-02 15:04"))
	return r.printBatch(query, snap.Items)
}

// RecsExportAll exports batches for every requested profile/intent pair to a
// directory using the concurrent export engine.
func (r *Runner) RecsExportAll(ctx context.Context, cmd *cli.Command) error {
	pairs, err := exportPairs(cmd.StringSlice("profile"), cmd.StringSlice("intent"))
	if err != nil {
		return err
	}

	token, err := r.token(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("starting bulk export", "batches", len(pairs), "format", cmd.String("format"))

	prog := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})
	go func() {
		for update := range prog {
			r.writePlain("%s\n", update.Message)
		}
		close(done)
	}()

	engine := tasks.NewExportEngine(r.gateway)
	result, err := engine.BulkExport(ctx, prog, token, pairs, tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	})
	close(prog)
	<-done
	if err != nil {
		return err
	}

	r.writePlain("\n✓ Exported %d/%d batches to %s\n", result.SuccessfulExports, result.TotalBatches, result.OutputDirectory)
	if result.FailedExports > 0 {
		r.writePlain("✗ %d batches failed; see %s\n", result.FailedExports, result.ManifestPath)
	}
	return nil
}

// exportPairs expands profile and intent selections into the full cross
// product, defaulting to every known profile and intent.
func exportPairs(profiles, intents []string) ([]tasks.BatchPair, error) {
	selectedProfiles := make([]recstate.Profile, 0, len(recstate.Profiles))
	if len(profiles) == 0 {
		selectedProfiles = recstate.Profiles
	} else {
		for _, raw := range profiles {
			p, err := recstate.ParseProfile(raw)
			if err != nil {
				return nil, err
			}
			selectedProfiles = append(selectedProfiles, p)
		}
	}

	selectedIntents := make([]recstate.Intent, 0, len(recstate.Intents))
	if len(intents) == 0 {
		selectedIntents = recstate.Intents
	} else {
		for _, raw := range intents {
			i, err := recstate.ParseIntent(raw)
			if err != nil {
				return nil, err
			}
			selectedIntents = append(selectedIntents, i)
		}
	}

	pairs := make([]tasks.BatchPair, 0, len(selectedProfiles)*len(selectedIntents))
	for _, p := range selectedProfiles {
		for _, i := range selectedIntents {
			pairs = append(pairs, tasks.BatchPair{Profile: string(p), Intent: string(i)})
		}
	}
	return pairs, nil
}

func (r *Runner) printBatch(query recstate.QueryContext, items []models.RecommendationItem) error {
	r.writePlain("Recommendations for %s (%s)\n\n", query.Profile, query.Intent)
	for i, item := range items {
		line := fmt.Sprintf("%d. %s", i+1, item.Title)
		if item.Year != nil {
			line += fmt.Sprintf(" (%d)", *item.Year)
		}
		line += fmt.Sprintf(" — %s %.0f%%", item.Prediction.Label, item.Prediction.Confidence*100)
		r.writePlain("%s\n", line)

		if badges := item.Badges(); len(badges) > 0 {
			r.writePlain("   [%s]\n", strings.Join(badges, ", "))
		}
		if item.Rationale != "" {
			r.writePlain("   %s\n", item.Rationale)
		}
	}
	return nil
}

func (r *Runner) exportBatch(query recstate.QueryContext, items []models.RecommendationItem, format, output string) error {
	export := &formatter.BatchExport{
		Profile: string(query.Profile),
		Intent:  string(query.Intent),
		Items:   items,
	}

	switch format {
	case "csv":
		result, err := formatter.WriteCSVExport(export, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Exported to %s\n", result.ItemsFile)
	case "markdown", "md":
		path, err := formatter.WriteMarkdownExport(export, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Exported to %s\n", path)
	case "text", "txt":
		path, err := formatter.WriteTextExport(export, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Exported to %s\n", path)
	default:
		return fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, format)
	}
}

func (r *Runner) saveSnapshot(query recstate.QueryContext, items []models.RecommendationItem) error {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return repositories.NewRecSnapshotRepository(db).Save(string(query.Profile), string(query.Intent), items)
}

// truncate shortens s to n runes. Counting runes keeps multi-byte titles
// valid UTF-8.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
