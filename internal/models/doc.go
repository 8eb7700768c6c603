// Package models defines the wire-format data model shared with the recommendation service.
//
// Types mirror the service's JSON schema exactly and carry no behavior beyond
// small accessors. Two categories:
//
// 1. Recommendation payloads:
//   - [RecommendationItem] : One ranked recommendation with prediction, warnings, flags and per-member fit
//   - [Prediction] : Server verdict (BAD / ACCEPTABLE / VERY GOOD) with confidence and novelty
//   - [FitScore] : Per-household-member suitability score in [0,1]
//   - [DebugRow] : Raw ranked score row from the debug endpoint
//
// 2. Account and catalogue payloads:
//   - [Profile] : Household member profile with age limit and content boundaries
//   - [ShowSummary] / [ShowDetail] : Catalogue entries, detail adds availability offers
//   - [WatchlistArgs] / [WatchlistOut] : Watchlist mutation arguments and membership snapshot
//   - [Rating], [OnboardingPayload] : Outbound feedback payloads
//
// Derived state (coverage, watchlist membership, query context) lives in the
// recstate package, not here.
package models
