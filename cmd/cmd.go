// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// queryFlags are shared by every command that issues a recommendation fetch.
func queryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "for",
			Aliases: []string{"f"},
			Usage:   "Profile to fetch for (ross, wife, son, family)",
		},
		&cli.StringFlag{
			Name:    "intent",
			Aliases: []string{"i"},
			Usage:   "Intent (default, short_tonight, weekend_binge, comfort, surprise)",
		},
		&cli.StringFlag{
			Name:  "like",
			Usage: "Anchor show ID for more-like-this",
		},
		&cli.IntFlag{
			Name:  "seed",
			Usage: "Deterministic ordering seed, forwarded verbatim",
		},
	}
}

// recsCommand handles recommendation fetching and export
func recsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "recs",
		Aliases: []string{"recommendations"},
		Usage:   "Fetch recommendations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Fetch and display the current batch",
				Flags: append(queryFlags(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.StringFlag{
						Name:  "export",
						Usage: "Export format (text, markdown, csv)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path for --export",
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Save batch to the local snapshot cache",
					},
				),
				Action: r.RecsList,
			},
			{
				Name:  "debug",
				Usage: "Fetch the scoring breakdown table (requires server debug mode)",
				Flags: append(queryFlags(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				),
				Action: r.RecsDebug,
			},
			{
				Name:  "coverage",
				Usage: "Fetch the family batch and report per-member coverage",
				Flags: append(queryFlags(),
					&cli.FloatFlag{
						Name:  "threshold",
						Usage: "Minimum fit score counting as covered (default from server health)",
					},
				),
				Action: r.RecsCoverage,
			},
			{
				Name:   "last",
				Usage:  "Show the last saved batch from the local snapshot cache",
				Flags:  queryFlags(),
				Action: r.RecsLast,
			},
			{
				Name:  "export-all",
				Usage: "Export batches for every profile/intent pair to a directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format (json, csv, markdown, txt)",
						Value: "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory (default tvrx_export_{epoch})",
					},
					&cli.StringSliceFlag{
						Name:  "profile",
						Usage: "Profile to include (repeatable, default all)",
					},
					&cli.StringSliceFlag{
						Name:  "intent",
						Usage: "Intent to include (repeatable, default all)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent export workers",
						Value: 5,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Fetch requests per second",
						Value: 5,
					},
				},
				Action: r.RecsExportAll,
			},
		},
	}
}

// showsCommand handles catalog browsing
func showsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "shows",
		Usage: "Browse the show catalog",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List catalog shows",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of shows to return",
						Value: 50,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Cache results in the local database",
					},
				},
				Action: r.ShowsList,
			},
			{
				Name:  "get",
				Usage: "Show details and streaming availability for one show",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ShowsGet,
			},
		},
	}
}

// profilesCommand handles household profile management
func profilesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profiles",
		Usage: "Manage household profiles",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List profiles with their content boundaries",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ProfilesList,
			},
			{
				Name:  "ban",
				Usage: "Add a content boundary ban to a profile",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "profile",
						Aliases:  []string{"p"},
						Usage:    "Profile name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "key",
						Usage:    "Boundary key to ban (e.g. gore, jump_scares)",
						Required: true,
					},
				},
				Action: r.ProfilesBan,
			},
		},
	}
}

// rateCommand submits show feedback
func rateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "rate",
		Usage: "Rate a show (0=bad, 1=acceptable, 2=very good)",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "for",
				Aliases: []string{"f"},
				Usage:   "Profile the rating belongs to",
			},
			&cli.IntFlag{
				Name:     "value",
				Aliases:  []string{"v"},
				Usage:    "Primary rating value",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:  "tag",
				Usage: "Nuance tag (repeatable)",
			},
			&cli.StringFlag{
				Name:  "note",
				Usage: "Free-form note",
			},
		},
		Action: r.Rate,
	}
}

// onboardCommand submits an onboarding preference payload
func onboardCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "onboard",
		Usage: "Submit onboarding preferences from a JSON file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Usage:    "Path to the onboarding payload JSON",
				Required: true,
			},
		},
		Action: r.Onboard,
	}
}

// watchlistCommand manages the per-profile watchlist
func watchlistCommand(r *Runner) *cli.Command {
	profileFlag := &cli.StringFlag{
		Name:    "for",
		Aliases: []string{"f"},
		Usage:   "Profile whose watchlist to use",
	}

	return &cli.Command{
		Name:    "watchlist",
		Aliases: []string{"wl"},
		Usage:   "Manage the watchlist",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List watchlist show IDs",
				Flags: []cli.Flag{
					profileFlag,
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.WatchlistList,
			},
			{
				Name:  "add",
				Usage: "Add a show to the watchlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{profileFlag},
				Action: r.WatchlistAdd,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove a show from the watchlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{profileFlag},
				Action: r.WatchlistRemove,
			},
		},
	}
}

// adminCommand exposes server maintenance operations
func adminCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Server maintenance operations",
		Commands: []*cli.Command{
			{
				Name:  "status",
				Usage: "Show ingest/sync status",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "watch",
						Usage: "Poll the status endpoint until interrupted",
					},
					&cli.DurationFlag{
						Name:  "interval",
						Usage: "Polling interval for --watch",
						Value: defaultWatchInterval,
					},
					&cli.IntFlag{
						Name:  "count",
						Usage: "Stop --watch after N polls (0 = until interrupted)",
					},
				},
				Action: r.AdminStatus,
			},
			{
				Name:   "queue",
				Usage:  "Show the pending ingest queue",
				Action: r.AdminQueue,
			},
			{
				Name:  "sync",
				Usage: "Trigger a data sync from an upstream source",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "source",
						Usage:    "Upstream source to sync from",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Report what would change without applying",
					},
				},
				Action: r.AdminSync,
			},
			{
				Name:   "rebuild-embeddings",
				Usage:  "Rebuild the recommendation embedding index",
				Action: r.AdminRebuildEmbeddings,
			},
		},
	}
}

// authCommand handles session operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Acquire a session token (falls back to a magic link token)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "email",
						Aliases: []string{"e"},
						Usage:   "Login email (defaults to config)",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Check service health (calls /healthz)",
				Action: r.AuthStatus,
			},
		},
	}
}

// cacheCommand manages the local sqlite cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the local cache",
		Commands: []*cli.Command{
			{
				Name:  "shows",
				Usage: "Cached show operations",
				Commands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List locally cached shows",
						Action: r.CacheShowsList,
					},
					{
						Name:  "clear",
						Usage: "Drop all cached shows",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:    "config",
								Aliases: []string{"c"},
								Usage:   "Path to configuration file",
								Value:   "config.toml",
							},
						},
						Action: r.CacheShowsClear,
					},
				},
			},
			{
				Name:   "snapshots",
				Usage:  "List saved recommendation snapshots",
				Action: r.CacheSnapshots,
			},
		},
	}
}

// setupCommand handles setup operations for the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize config and database",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive recommendation browser",
		Action:  r.TUI,
	}
}
