package recstate

import (
	"fmt"
	"strings"

	"github.com/rossw/tvrx/internal/models"
	"github.com/rossw/tvrx/internal/services"
	"github.com/rossw/tvrx/internal/shared"
)

// Profile selects whose recommendations to fetch: one household member or
// the family aggregate.
type Profile string

const (
	ProfileRoss   Profile = "ross"
	ProfileWife   Profile = "wife"
	ProfileSon    Profile = "son"
	ProfileFamily Profile = "family"
)

// Profiles lists all selectable profiles in display order.
var Profiles = []Profile{ProfileRoss, ProfileWife, ProfileSon, ProfileFamily}

// ParseProfile validates a profile name from a flag or config value.
func ParseProfile(s string) (Profile, error) {
	p := Profile(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Profiles {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown profile %q", shared.ErrInvalidArgument, s)
}

// MemberName returns the server-side member name for a single-member
// profile ("Ross", "Wife", "Son"), or "" for the family aggregate.
func (p Profile) MemberName() string {
	switch p {
	case ProfileRoss:
		return "Ross"
	case ProfileWife:
		return "Wife"
	case ProfileSon:
		return "Son"
	}
	return ""
}

// Intent is a recommendation mode modifier.
type Intent string

const (
	IntentDefault      Intent = "default"
	IntentShortTonight Intent = "short_tonight"
	IntentWeekendBinge Intent = "weekend_binge"
	IntentComfort      Intent = "comfort"
	IntentSurprise     Intent = "surprise"
)

// Intents lists all intents in display order.
var Intents = []Intent{IntentDefault, IntentShortTonight, IntentWeekendBinge, IntentComfort, IntentSurprise}

// ParseIntent validates an intent name from a flag or config value.
func ParseIntent(s string) (Intent, error) {
	i := Intent(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Intents {
		if i == known {
			return i, nil
		}
	}
	return "", fmt.Errorf("%w: unknown intent %q", shared.ErrInvalidArgument, s)
}

// QueryContext is the full set of recommendation query parameters. Any
// change to any field invalidates the current batch.
type QueryContext struct {
	Profile  Profile
	Intent   Intent
	AnchorID string // anchor show id for "more like this", "" when unset
	Seed     *int   // deterministic ordering seed, nil when unset
}

// DefaultQuery is the query used for the initial fetch after session
// acquisition. An externally supplied seed may be attached by the caller.
func DefaultQuery() QueryContext {
	return QueryContext{Profile: ProfileRoss, Intent: IntentDefault}
}

// Query converts the context to the gateway's wire query. The seed pointer
// is passed through untouched; the gateway encodes it verbatim.
func (q QueryContext) Query() services.RecQuery {
	return services.RecQuery{
		For:    string(q.Profile),
		Intent: string(q.Intent),
		LikeID: q.AnchorID,
		Seed:   q.Seed,
	}
}

// Equal compares two contexts, comparing seeds by value.
func (q QueryContext) Equal(other QueryContext) bool {
	if q.Profile != other.Profile || q.Intent != other.Intent || q.AnchorID != other.AnchorID {
		return false
	}
	if (q.Seed == nil) != (other.Seed == nil) {
		return false
	}
	return q.Seed == nil || *q.Seed == *other.Seed
}

// ResolveProfileID maps the active profile to a server profile id by
// case-insensitive name match, falling back to the first listed profile,
// then to id 1 when no profiles are known.
func ResolveProfileID(profiles []models.Profile, p Profile) int {
	for _, prof := range profiles {
		if strings.EqualFold(prof.Name, string(p)) {
			return prof.ID
		}
	}
	if len(profiles) > 0 {
		return profiles[0].ID
	}
	return 1
}
