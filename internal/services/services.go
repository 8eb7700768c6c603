package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/rossw/tvrx/internal/models"
)

// RecQuery holds the four recommendation query parameters. Seed, when
// non-nil, must be forwarded verbatim so identical queries yield identical
// server-side orderings.
type RecQuery struct {
	For    string // profile: ross, wife, son, family
	Intent string // default, short_tonight, weekend_binge, comfort, surprise
	LikeID string // optional anchor show id for "more like this"
	Seed   *int   // optional deterministic ordering seed
}

// Values encodes the query as URL parameters in the service's wire format.
func (q RecQuery) Values() url.Values {
	v := url.Values{}
	v.Set("for", q.For)
	intent := q.Intent
	if intent == "" {
		intent = "default"
	}
	v.Set("intent", intent)
	if q.LikeID != "" {
		v.Set("like_id", q.LikeID)
	}
	if q.Seed != nil {
		v.Set("seed", strconv.Itoa(*q.Seed))
	}
	return v
}

// Gateway defines the interface for the remote recommendation service.
// One method per endpoint; every consumer depends on this interface so the
// transport can be replaced with a test double without touching other
// components.
type Gateway interface {
	// Login performs the primary login call, returning a bearer token.
	Login(ctx context.Context, email string) (string, error)

	// Magic performs the magic-link fallback login, returning a bearer token.
	Magic(ctx context.Context, email string) (string, error)

	// Health reports service health, the debug flag, and the optional
	// server-side coverage threshold.
	Health(ctx context.Context) (*models.Health, error)

	// Shows lists catalogue summaries up to limit.
	Shows(ctx context.Context, limit int) ([]models.ShowSummary, error)

	// Show retrieves one catalogue entry with availability offers.
	Show(ctx context.Context, id string) (*models.ShowDetail, error)

	// Profiles lists the household profiles with their boundaries.
	Profiles(ctx context.Context, token string) ([]models.Profile, error)

	// Recommendations fetches the ordered recommendation batch for a query.
	Recommendations(ctx context.Context, q RecQuery, token string) ([]models.RecommendationItem, error)

	// DebugRecommendations fetches raw ranked score rows. Only reachable when
	// the server reports debug=true on Health.
	DebugRecommendations(ctx context.Context, q RecQuery, token string) ([]models.DebugRow, error)

	// PostProfiles upserts profile records (name, age limit, boundaries).
	PostProfiles(ctx context.Context, updates []models.ProfileUpdate, token string) error

	// PostRating submits a rating for a show.
	PostRating(ctx context.Context, rating models.Rating, token string) error

	// PostOnboarding submits onboarding preferences for a profile.
	PostOnboarding(ctx context.Context, payload models.OnboardingPayload, token string) error

	// Watchlist retrieves the membership snapshot for a profile.
	Watchlist(ctx context.Context, profileID int, token string) (*models.WatchlistOut, error)

	// WatchlistAdd adds a show to a profile's watchlist.
	WatchlistAdd(ctx context.Context, args models.WatchlistArgs, token string) error

	// WatchlistRemove removes a show from a profile's watchlist.
	WatchlistRemove(ctx context.Context, args models.WatchlistArgs, token string) error

	// AdminStatus reports backend sync status (pass-through).
	AdminStatus(ctx context.Context, token string) (map[string]any, error)

	// AdminQueue reports the backend job queue (pass-through).
	AdminQueue(ctx context.Context, token string) (map[string]any, error)

	// AdminSync triggers a data sync from an upstream source (pass-through).
	AdminSync(ctx context.Context, req models.SyncRequest, token string) (map[string]any, error)

	// AdminRebuildEmbeddings triggers an embeddings rebuild (pass-through).
	AdminRebuildEmbeddings(ctx context.Context, token string) (map[string]any, error)
}
