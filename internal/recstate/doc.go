// Package recstate implements the client-side recommendation state machine.
//
// The package owns everything stateful between the network boundary
// (services) and the presentation layer (cmd, ui):
//
//   - [Orchestrator] : query context + fetch lifecycle (Idle -> Loading -> Ready | Error)
//     with generation-tagged fetches so only the response for the latest
//     issued query is ever committed (last-request-wins).
//   - [WatchlistStore] : per-profile membership set, commit-on-success /
//     no-op-on-failure mutations.
//   - [ComputeCoverage] / [HasStrongPick] : pure derived computations over a
//     recommendation batch for the family view.
//   - [Notifier] : single-slot transient notification with sequence-numbered
//     fade and clear transitions.
//
// All types are single-goroutine by design: the TUI update loop or a CLI
// command is the only writer. Network calls happen outside the package; the
// orchestrator hands out [FetchTicket] values and consumes completions.
package recstate
