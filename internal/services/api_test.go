package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rossw/tvrx/internal/models"
	"github.com/rossw/tvrx/internal/shared"
)

func TestRecQueryValues(t *testing.T) {
	t.Run("Defaults Intent", func(t *testing.T) {
		v := RecQuery{For: "ross"}.Values()
		if v.Get("intent") != "default" {
			t.Errorf("expected intent default, got %s", v.Get("intent"))
		}
	})

	t.Run("Seed Round Trips Verbatim", func(t *testing.T) {
		seed := 333
		v := RecQuery{For: "family", Intent: "comfort", Seed: &seed}.Values()
		if v.Get("seed") != "333" {
			t.Errorf("expected seed=333, got %s", v.Get("seed"))
		}
	})

	t.Run("Nil Seed Omitted", func(t *testing.T) {
		v := RecQuery{For: "ross", Intent: "default"}.Values()
		if v.Has("seed") {
			t.Error("expected no seed parameter for nil seed")
		}
	})

	t.Run("Anchor Included When Set", func(t *testing.T) {
		v := RecQuery{For: "son", Intent: "default", LikeID: "tt123"}.Values()
		if v.Get("like_id") != "tt123" {
			t.Errorf("expected like_id=tt123, got %s", v.Get("like_id"))
		}
	})
}

func TestClient(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Empty BaseURL", func(t *testing.T) {
			c := NewClient("", nil)
			if c.baseURL != "http://localhost:8000" {
				t.Errorf("expected default baseURL http://localhost:8000, got %s", c.baseURL)
			}
			if c.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
		})

		t.Run("With Custom Client", func(t *testing.T) {
			custom := &http.Client{}
			c := NewClient("http://example.com", custom)
			if c.httpClient != custom {
				t.Error("expected custom client to be used")
			}
		})
	})

	t.Run("Login", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			var req models.MagicLinkRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.Email != "demo@local.test" {
				t.Errorf("expected email demo@local.test, got %s", req.Email)
			}
			json.NewEncoder(w).Encode(models.MagicLinkResponse{Token: "tok-1"})
		}))
		defer server.Close()

		c := NewClient(server.URL, nil)
		token, err := c.Login(context.Background(), "demo@local.test")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if token != "tok-1" {
			t.Errorf("expected token tok-1, got %s", token)
		}
	})

	t.Run("Recommendations", func(t *testing.T) {
		t.Run("Sends All Query Parameters And Bearer Token", func(t *testing.T) {
			var gotQuery map[string]string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/recommendations" {
					t.Errorf("expected path /recommendations, got %s", r.URL.Path)
				}
				if auth := r.Header.Get("Authorization"); auth != "Bearer tok-1" {
					t.Errorf("expected bearer token, got %q", auth)
				}
				q := r.URL.Query()
				gotQuery = map[string]string{
					"for": q.Get("for"), "intent": q.Get("intent"),
					"like_id": q.Get("like_id"), "seed": q.Get("seed"),
				}
				json.NewEncoder(w).Encode([]models.RecommendationItem{{ID: "tt1", Title: "Severance"}})
			}))
			defer server.Close()

			seed := 333
			c := NewClient(server.URL, nil)
			items, err := c.Recommendations(context.Background(), RecQuery{
				For: "family", Intent: "weekend_binge", LikeID: "tt9", Seed: &seed,
			}, "tok-1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(items) != 1 || items[0].Title != "Severance" {
				t.Errorf("unexpected items: %v", items)
			}
			want := map[string]string{"for": "family", "intent": "weekend_binge", "like_id": "tt9", "seed": "333"}
			for k, v := range want {
				if gotQuery[k] != v {
					t.Errorf("expected %s=%s, got %s", k, v, gotQuery[k])
				}
			}
		})

		t.Run("Non-Success Status Fails With Operation Name", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			}))
			defer server.Close()

			c := NewClient(server.URL, nil)
			_, err := c.Recommendations(context.Background(), RecQuery{For: "ross"}, "tok-1")
			if err == nil {
				t.Fatal("expected error for 502 response")
			}
			if !strings.Contains(err.Error(), "get recommendations failed") {
				t.Errorf("expected operation name in error, got %v", err)
			}
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})
	})

	t.Run("Watchlist", func(t *testing.T) {
		t.Run("Get Decodes Membership", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("profile_id") != "2" {
					t.Errorf("expected profile_id=2, got %s", r.URL.Query().Get("profile_id"))
				}
				json.NewEncoder(w).Encode(models.WatchlistOut{ShowIDs: []string{"tt1", "tt2"}})
			}))
			defer server.Close()

			c := NewClient(server.URL, nil)
			out, err := c.Watchlist(context.Background(), 2, "tok-1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(out.ShowIDs) != 2 {
				t.Errorf("expected 2 ids, got %v", out.ShowIDs)
			}
		})

		t.Run("Remove Issues DELETE With Query Args", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodDelete {
					t.Errorf("expected DELETE, got %s", r.Method)
				}
				q := r.URL.Query()
				if q.Get("profile_id") != "2" || q.Get("show_id") != "tt1" {
					t.Errorf("unexpected query: %v", q)
				}
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			c := NewClient(server.URL, nil)
			err := c.WatchlistRemove(context.Background(), models.WatchlistArgs{ProfileID: 2, ShowID: "tt1"}, "tok-1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("Add Failure Carries Operation Name", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer server.Close()

			c := NewClient(server.URL, nil)
			err := c.WatchlistAdd(context.Background(), models.WatchlistArgs{ProfileID: 1, ShowID: "tt1"}, "tok-1")
			if err == nil || !strings.Contains(err.Error(), "post watchlist failed") {
				t.Errorf("expected 'post watchlist failed', got %v", err)
			}
		})
	})

	t.Run("AdminSync Posts Source And DryRun", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req models.SyncRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.Source != "justwatch" || !req.DryRun {
				t.Errorf("unexpected sync request: %+v", req)
			}
			json.NewEncoder(w).Encode(map[string]any{"queued": true})
		}))
		defer server.Close()

		c := NewClient(server.URL, nil)
		out, err := c.AdminSync(context.Background(), models.SyncRequest{Source: "justwatch", DryRun: true}, "tok-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out["queued"] != true {
			t.Errorf("unexpected response: %v", out)
		}
	})

	t.Run("Transport Error", func(t *testing.T) {
		c := NewClient("http://127.0.0.1:1", nil)
		_, err := c.Health(context.Background())
		if err == nil {
			t.Error("expected transport error")
		}
	})
}
