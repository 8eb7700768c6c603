package recstate

import (
	"github.com/rossw/tvrx/internal/models"
)

// State is the orchestrator's fetch lifecycle state.
type State int

const (
	StateIdle State = iota // no session yet, nothing fetched
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	}
	return "unknown"
}

// FetchTicket identifies one issued fetch: the generation that must match on
// completion and the query context to execute. Tickets make the
// last-request-wins rule structural: a completion whose generation is no
// longer current is discarded.
type FetchTicket struct {
	Gen   int
	Query QueryContext
}

// Orchestrator owns the current query context and recommendation batch.
//
// Single-writer: all methods must be called from one goroutine (the TUI
// update loop or a CLI command). Network calls happen outside; callers run
// the ticket's query and report back via Resolve.
type Orchestrator struct {
	state State
	query QueryContext
	gen   int
	batch []models.RecommendationItem
	err   error
}

// NewOrchestrator creates an orchestrator in the Idle state with the given
// initial query context.
func NewOrchestrator(initial QueryContext) *Orchestrator {
	return &Orchestrator{state: StateIdle, query: initial}
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State { return o.state }

// Query returns the current query context.
func (o *Orchestrator) Query() QueryContext { return o.query }

// Batch returns the last committed recommendation batch. During Loading and
// Error this is the last good batch, retained for display.
func (o *Orchestrator) Batch() []models.RecommendationItem { return o.batch }

// Err returns the error recorded by the last failed fetch, nil otherwise.
func (o *Orchestrator) Err() error { return o.err }

// issue moves to Loading and hands out a ticket for the current query.
func (o *Orchestrator) issue() FetchTicket {
	o.gen++
	o.state = StateLoading
	return FetchTicket{Gen: o.gen, Query: o.query}
}

// Start begins the initial fetch after session acquisition.
func (o *Orchestrator) Start() FetchTicket {
	return o.issue()
}

// Invalidate re-fetches the current query context unchanged. Used after
// side-effecting mutations (rating, watchlist change, boundary ban), since
// the server may now consider different items eligible.
func (o *Orchestrator) Invalidate() FetchTicket {
	return o.issue()
}

// SetProfile switches the active profile. Returns false without issuing a
// fetch when the profile is unchanged.
func (o *Orchestrator) SetProfile(p Profile) (FetchTicket, bool) {
	if o.query.Profile == p {
		return FetchTicket{}, false
	}
	o.query.Profile = p
	return o.issue(), true
}

// SetIntent switches the recommendation intent.
func (o *Orchestrator) SetIntent(i Intent) (FetchTicket, bool) {
	if o.query.Intent == i {
		return FetchTicket{}, false
	}
	o.query.Intent = i
	return o.issue(), true
}

// SetAnchor anchors the query to a show for "more like this".
func (o *Orchestrator) SetAnchor(showID string) (FetchTicket, bool) {
	if o.query.AnchorID == showID {
		return FetchTicket{}, false
	}
	o.query.AnchorID = showID
	return o.issue(), true
}

// ClearAnchor removes the anchor. A first-class transition: it invalidates
// exactly like any other query change.
func (o *Orchestrator) ClearAnchor() (FetchTicket, bool) {
	if o.query.AnchorID == "" {
		return FetchTicket{}, false
	}
	o.query.AnchorID = ""
	return o.issue(), true
}

// SetSeed replaces the deterministic ordering seed. Pass nil to clear.
func (o *Orchestrator) SetSeed(seed *int) (FetchTicket, bool) {
	same := (o.query.Seed == nil && seed == nil) ||
		(o.query.Seed != nil && seed != nil && *o.query.Seed == *seed)
	if same {
		return FetchTicket{}, false
	}
	o.query.Seed = seed
	return o.issue(), true
}

// Resolve commits a completed fetch. Returns false when the ticket's
// generation has been superseded; the completion is then discarded silently
// and no state changes. On failure the previous batch is retained as last
// good data and the state moves to Error.
func (o *Orchestrator) Resolve(t FetchTicket, items []models.RecommendationItem, err error) bool {
	if t.Gen != o.gen {
		return false
	}

	if err != nil {
		o.state = StateError
		o.err = err
		return true
	}

	o.batch = items
	o.err = nil
	o.state = StateReady
	return true
}
