package models

// Prediction labels returned by the recommendation service.
const (
	PredictionBad        = "BAD"
	PredictionAcceptable = "ACCEPTABLE"
	PredictionVeryGood   = "VERY GOOD"
)

// Rating primary values accepted by the ratings endpoint.
const (
	RatingBad        = 0
	RatingAcceptable = 1
	RatingVeryGood   = 2
)

// MagicLinkRequest is the body for both login endpoints.
type MagicLinkRequest struct {
	Email string `json:"email"`
}

// MagicLinkResponse carries the bearer token issued for a session.
type MagicLinkResponse struct {
	Token string `json:"token"`
}

// Health is the service health payload. Debug gates the debug endpoints;
// FamilyCoverageMinFit, when present, overrides the client's coverage threshold.
type Health struct {
	OK                   bool     `json:"ok"`
	Debug                bool     `json:"debug,omitempty"`
	FamilyCoverageMinFit *float64 `json:"family_coverage_min_fit,omitempty"`
}

// Prediction is the server's per-item verdict.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"c"`
	Novelty    float64 `json:"n"`
}

// WhereToWatch is a streaming offer attached to a recommendation.
type WhereToWatch struct {
	Platform  string `json:"platform"`
	OfferType string `json:"offer_type"`
}

// Availability is the optional freshness descriptor for an item's offers.
type Availability struct {
	Provider         *string `json:"provider,omitempty"`
	Type             *string `json:"type,omitempty"`
	AsOf             *string `json:"as_of,omitempty"`
	Stale            bool    `json:"stale,omitempty"`
	SeasonConsistent bool    `json:"season_consistent,omitempty"`
}

// FitScore is a per-household-member suitability score in [0,1].
type FitScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// RecommendationItem is one entry of a recommendation batch.
type RecommendationItem struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Year           *int           `json:"year,omitempty"`
	WhereToWatch   []WhereToWatch `json:"where_to_watch"`
	Rationale      string         `json:"rationale"`
	Warnings       []string       `json:"warnings"`
	Flags          []string       `json:"flags"`
	Prediction     Prediction     `json:"prediction"`
	SimilarBecause []string       `json:"similar_because,omitempty"`
	Genres         []string       `json:"genres,omitempty"`
	Creators       []string       `json:"creators,omitempty"`
	AURating       string         `json:"au_rating,omitempty"`
	AgeRating      int            `json:"age_rating,omitempty"`
	FitByProfile   []FitScore     `json:"fit_by_profile,omitempty"`
	Availability   *Availability  `json:"availability,omitempty"`
	FamilyStrong   bool           `json:"family_strong,omitempty"`
}

// Badges returns the item's warning and flag labels in display order.
// Warnings always precede flags.
func (r RecommendationItem) Badges() []string {
	badges := make([]string, 0, len(r.Warnings)+len(r.Flags))
	badges = append(badges, r.Warnings...)
	badges = append(badges, r.Flags...)
	return badges
}

// DebugRow is a ranked score row from the debug recommendations endpoint.
type DebugRow struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Scores []float64 `json:"scores"`
}

// ShowSummary is a catalogue listing entry.
type ShowSummary struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	YearStart *int     `json:"year_start,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
	Flags     []string `json:"flags,omitempty"`
}

// ShowOffer is a streaming offer on a show detail page.
type ShowOffer struct {
	Platform  string  `json:"platform"`
	OfferType string  `json:"offer_type"`
	Quality   *string `json:"quality,omitempty"`
	LeavingAt *string `json:"leaving_at,omitempty"`
}

// ShowDetail extends ShowSummary with availability offers.
type ShowDetail struct {
	ShowSummary
	Availability []ShowOffer `json:"availability"`
}

// Profile is a household member profile with content boundaries.
type Profile struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	AgeLimit   *int            `json:"age_limit,omitempty"`
	Boundaries map[string]bool `json:"boundaries"`
}

// ProfileUpdate is the upsert payload for POST /profiles.
type ProfileUpdate struct {
	Name       string          `json:"name"`
	AgeLimit   *int            `json:"age_limit,omitempty"`
	Boundaries map[string]bool `json:"boundaries"`
}

// WatchlistArgs identifies one (profile, show) watchlist entry.
type WatchlistArgs struct {
	ProfileID int    `json:"profile_id"`
	ShowID    string `json:"show_id"`
}

// WatchlistOut is the server's watchlist membership snapshot.
type WatchlistOut struct {
	ShowIDs []string `json:"show_ids"`
}

// Rating is the feedback payload for POST /ratings.
type Rating struct {
	ProfileID  int      `json:"profile_id"`
	ShowID     string   `json:"show_id"`
	Primary    int      `json:"primary"`
	NuanceTags []string `json:"nuance_tags,omitempty"`
	Note       string   `json:"note,omitempty"`
}

// Mood holds the five onboarding mood axes.
type Mood struct {
	Tone       int `json:"tone"`
	Pacing     int `json:"pacing"`
	Complexity int `json:"complexity"`
	Humor      int `json:"humor"`
	Optimism   int `json:"optimism"`
}

// Constraints holds onboarding viewing constraints.
type Constraints struct {
	EpLengthMax       *int `json:"ep_length_max,omitempty"`
	SeasonsMax        *int `json:"seasons_max,omitempty"`
	AvoidDNF          bool `json:"avoid_dnf,omitempty"`
	AvoidCliffhangers bool `json:"avoid_cliffhangers,omitempty"`
}

// OnboardingPayload is the preference submission for POST /onboarding.
type OnboardingPayload struct {
	ProfileID       int             `json:"profile_id"`
	Loves           []string        `json:"loves"`
	Dislikes        []string        `json:"dislikes"`
	CreatorsLike    []string        `json:"creators_like"`
	CreatorsDislike []string        `json:"creators_dislike"`
	Mood            Mood            `json:"mood"`
	Constraints     Constraints     `json:"constraints"`
	Boundaries      map[string]bool `json:"boundaries"`
}

// SyncRequest triggers an admin data sync from an upstream source.
type SyncRequest struct {
	Source string `json:"source"`
	DryRun bool   `json:"dry_run"`
}
