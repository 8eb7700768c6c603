package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRecommendationItemBadges(t *testing.T) {
	t.Run("Warnings Before Flags", func(t *testing.T) {
		item := RecommendationItem{
			Warnings: []string{"violence", "language"},
			Flags:    []string{"cliffhanger", "slow_start"},
		}

		got := item.Badges()
		want := []string{"violence", "language", "cliffhanger", "slow_start"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("Only Flags", func(t *testing.T) {
		item := RecommendationItem{Flags: []string{"dnf_risk"}}
		if got := item.Badges(); len(got) != 1 || got[0] != "dnf_risk" {
			t.Errorf("expected [dnf_risk], got %v", got)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if got := (RecommendationItem{}).Badges(); len(got) != 0 {
			t.Errorf("expected no badges, got %v", got)
		}
	})
}

func TestRecommendationItemDecode(t *testing.T) {
	payload := `{
		"id": "tt0903747",
		"title": "Breaking Bad",
		"year": 2008,
		"where_to_watch": [{"platform": "stan", "offer_type": "stream"}],
		"rationale": "Matches your taste for slow-burn drama",
		"warnings": ["violence"],
		"flags": ["bleak"],
		"prediction": {"label": "VERY GOOD", "c": 0.91, "n": 0.2},
		"fit_by_profile": [{"name": "Ross", "score": 0.88}, {"name": "Wife", "score": 0.41}],
		"family_strong": true
	}`

	var item RecommendationItem
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		t.Fatalf("failed to decode item: %v", err)
	}

	if item.Prediction.Label != PredictionVeryGood {
		t.Errorf("expected label VERY GOOD, got %s", item.Prediction.Label)
	}
	if item.Prediction.Confidence != 0.91 {
		t.Errorf("expected confidence 0.91, got %f", item.Prediction.Confidence)
	}
	if item.Year == nil || *item.Year != 2008 {
		t.Errorf("expected year 2008, got %v", item.Year)
	}
	if len(item.FitByProfile) != 2 || item.FitByProfile[0].Name != "Ross" {
		t.Errorf("unexpected fit_by_profile: %v", item.FitByProfile)
	}
	if !item.FamilyStrong {
		t.Error("expected family_strong true")
	}
}

func TestHealthDecode(t *testing.T) {
	var h Health
	if err := json.Unmarshal([]byte(`{"ok": true, "debug": true, "family_coverage_min_fit": 0.6}`), &h); err != nil {
		t.Fatalf("failed to decode health: %v", err)
	}
	if !h.Debug {
		t.Error("expected debug true")
	}
	if h.FamilyCoverageMinFit == nil || *h.FamilyCoverageMinFit != 0.6 {
		t.Errorf("expected family_coverage_min_fit 0.6, got %v", h.FamilyCoverageMinFit)
	}

	var plain Health
	if err := json.Unmarshal([]byte(`{"ok": true}`), &plain); err != nil {
		t.Fatalf("failed to decode health: %v", err)
	}
	if plain.FamilyCoverageMinFit != nil {
		t.Error("expected absent threshold to stay nil")
	}
}
