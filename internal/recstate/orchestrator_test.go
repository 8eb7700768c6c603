package recstate

import (
	"errors"
	"testing"

	"github.com/rossw/tvrx/internal/models"
)

func batchOf(titles ...string) []models.RecommendationItem {
	items := make([]models.RecommendationItem, len(titles))
	for i, title := range titles {
		items[i] = models.RecommendationItem{ID: "tt" + title, Title: title}
	}
	return items
}

func TestOrchestrator(t *testing.T) {
	t.Run("Starts Idle With Default Query", func(t *testing.T) {
		o := NewOrchestrator(DefaultQuery())

		if o.State() != StateIdle {
			t.Errorf("expected idle, got %s", o.State())
		}
		if o.Query().Profile != ProfileRoss || o.Query().Intent != IntentDefault {
			t.Errorf("unexpected default query: %+v", o.Query())
		}
		if o.Query().AnchorID != "" || o.Query().Seed != nil {
			t.Errorf("expected no anchor and no seed, got %+v", o.Query())
		}
	})

	t.Run("Start Issues Initial Fetch", func(t *testing.T) {
		o := NewOrchestrator(DefaultQuery())
		ticket := o.Start()

		if o.State() != StateLoading {
			t.Errorf("expected loading, got %s", o.State())
		}
		if !ticket.Query.Equal(o.Query()) {
			t.Errorf("ticket query should match current query")
		}

		if !o.Resolve(ticket, batchOf("Severance"), nil) {
			t.Fatal("expected resolve to commit")
		}
		if o.State() != StateReady {
			t.Errorf("expected ready, got %s", o.State())
		}
		if len(o.Batch()) != 1 || o.Batch()[0].Title != "Severance" {
			t.Errorf("unexpected batch: %v", o.Batch())
		}
	})

	t.Run("Parameter Changes Invalidate", func(t *testing.T) {
		o := NewOrchestrator(DefaultQuery())
		o.Resolve(o.Start(), batchOf("A"), nil)

		ticket, changed := o.SetProfile(ProfileFamily)
		if !changed {
			t.Fatal("expected profile change to issue a fetch")
		}
		if o.State() != StateLoading {
			t.Errorf("expected loading after profile change, got %s", o.State())
		}
		if ticket.Query.Profile != ProfileFamily {
			t.Errorf("ticket should carry the new profile")
		}

		if _, changed := o.SetProfile(ProfileFamily); changed {
			t.Error("unchanged profile should not issue a fetch")
		}

		if _, changed := o.SetIntent(IntentComfort); !changed {
			t.Error("intent change should issue a fetch")
		}
		if _, changed := o.SetAnchor("tt42"); !changed {
			t.Error("anchor change should issue a fetch")
		}
	})

	t.Run("Clearing Anchor Is A First-Class Transition", func(t *testing.T) {
		o := NewOrchestrator(DefaultQuery())
		o.Resolve(o.Start(), batchOf("A"), nil)
		anchorTicket, _ := o.SetAnchor("tt42")
		o.Resolve(anchorTicket, batchOf("B"), nil)

		ticket, changed := o.ClearAnchor()
		if !changed {
			t.Fatal("clearing a set anchor must issue a fetch")
		}
		if ticket.Query.AnchorID != "" {
			t.Error("ticket should carry the cleared anchor")
		}
		if o.State() != StateLoading {
			t.Errorf("expected loading, got %s", o.State())
		}

		if _, changed := o.ClearAnchor(); changed {
			t.Error("clearing an unset anchor should be a no-op")
		}
	})

	t.Run("Seed Changes Invalidate And Forward Verbatim", func(t *testing.T) {
		o := NewOrchestrator(DefaultQuery())
		o.Resolve(o.Start(), batchOf("A"), nil)

		seed := 222
		ticket, changed := o.SetSeed(&seed)
		if !changed {
			t.Fatal("expected seed change to issue a fetch")
		}
		if ticket.Query.Seed == nil || *ticket.Query.Seed != 222 {
			t.Fatalf("expected seed 222 on ticket, got %v", ticket.Query.Seed)
		}
		o.Resolve(ticket, batchOf("B"), nil)

		next := 333
		ticket, _ = o.SetSeed(&next)
		if got := ticket.Query.Query().Values().Get("seed"); got != "333" {
			t.Errorf("expected outbound seed=333, got %s", got)
		}

		same := 333
		if _, changed := o.SetSeed(&same); changed {
			t.Error("equal seed value should not issue a fetch")
		}

		if _, changed := o.SetSeed(nil); !changed {
			t.Error("clearing the seed should issue a fetch")
		}
	})

	t.Run("Stale Response Is Discarded", func(t *testing.T) {
		// Query A's fetch is still in flight when the query changes to B.
		// B resolves first; A's late completion must not overwrite it.
		o := NewOrchestrator(DefaultQuery())
		ticketA := o.Start()
		ticketB, _ := o.SetIntent(IntentSurprise)

		if !o.Resolve(ticketB, batchOf("FromB"), nil) {
			t.Fatal("expected B to commit")
		}
		if o.Resolve(ticketA, batchOf("FromA"), nil) {
			t.Fatal("expected A's late completion to be discarded")
		}

		if o.State() != StateReady {
			t.Errorf("expected ready, got %s", o.State())
		}
		if o.Batch()[0].Title != "FromB" {
			t.Errorf("expected batch from B, got %s", o.Batch()[0].Title)
		}
	})

	t.Run("Stale Error Is Discarded Too", func(t *testing.T) {
		o := NewOrchestrator(DefaultQuery())
		ticketA := o.Start()
		ticketB, _ := o.SetProfile(ProfileWife)

		o.Resolve(ticketB, batchOf("Good"), nil)
		if o.Resolve(ticketA, nil, errors.New("get recommendations failed")) {
			t.Fatal("stale error should be discarded")
		}
		if o.State() != StateReady || o.Err() != nil {
			t.Errorf("stale error must not flip state: %s %v", o.State(), o.Err())
		}
	})

	t.Run("Failed Fetch Retains Last Good Batch", func(t *testing.T) {
		o := NewOrchestrator(DefaultQuery())
		o.Resolve(o.Start(), batchOf("LastGood"), nil)

		ticket, _ := o.SetIntent(IntentComfort)
		fetchErr := errors.New("get recommendations failed")
		if !o.Resolve(ticket, nil, fetchErr) {
			t.Fatal("current-generation error should commit")
		}

		if o.State() != StateError {
			t.Errorf("expected error state, got %s", o.State())
		}
		if !errors.Is(o.Err(), fetchErr) {
			t.Errorf("expected recorded error, got %v", o.Err())
		}
		if len(o.Batch()) != 1 || o.Batch()[0].Title != "LastGood" {
			t.Errorf("expected last good batch retained, got %v", o.Batch())
		}
	})

	t.Run("Successful Fetch Clears Error", func(t *testing.T) {
		o := NewOrchestrator(DefaultQuery())
		o.Resolve(o.Start(), nil, errors.New("boom"))

		ticket := o.Invalidate()
		o.Resolve(ticket, batchOf("Recovered"), nil)

		if o.State() != StateReady || o.Err() != nil {
			t.Errorf("expected recovery, got %s %v", o.State(), o.Err())
		}
	})

	t.Run("Invalidate Refetches Unchanged Query", func(t *testing.T) {
		o := NewOrchestrator(DefaultQuery())
		o.Resolve(o.Start(), batchOf("A"), nil)
		before := o.Query()

		ticket := o.Invalidate()
		if !ticket.Query.Equal(before) {
			t.Error("invalidate must not change the query")
		}
		if o.State() != StateLoading {
			t.Errorf("expected loading, got %s", o.State())
		}
	})

	t.Run("Batch Replaced Wholesale", func(t *testing.T) {
		o := NewOrchestrator(DefaultQuery())
		o.Resolve(o.Start(), batchOf("A", "B", "C"), nil)
		o.Resolve(o.Invalidate(), batchOf("D"), nil)

		if len(o.Batch()) != 1 || o.Batch()[0].Title != "D" {
			t.Errorf("expected wholesale replacement, got %v", o.Batch())
		}
	})
}


func TestResolveProfileID(t *testing.T) {
	profiles := []models.Profile{
		{ID: 7, Name: "Ross"},
		{ID: 8, Name: "Wife"},
		{ID: 9, Name: "Son"},
	}

	if got := ResolveProfileID(profiles, ProfileWife); got != 8 {
		t.Errorf("expected 8, got %d", got)
	}
	if got := ResolveProfileID(profiles, ProfileFamily); got != 7 {
		t.Errorf("expected fallback to first profile, got %d", got)
	}
	if got := ResolveProfileID(nil, ProfileRoss); got != 1 {
		t.Errorf("expected fallback id 1, got %d", got)
	}
}

func TestParseProfileAndIntent(t *testing.T) {
	if p, err := ParseProfile(" Family "); err != nil || p != ProfileFamily {
		t.Errorf("expected family, got %v %v", p, err)
	}
	if _, err := ParseProfile("cousin"); err == nil {
		t.Error("expected error for unknown profile")
	}
	if i, err := ParseIntent("weekend_binge"); err != nil || i != IntentWeekendBinge {
		t.Errorf("expected weekend_binge, got %v %v", i, err)
	}
	if _, err := ParseIntent("speedrun"); err == nil {
		t.Error("expected error for unknown intent")
	}
}
