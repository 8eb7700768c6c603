// Typed HTTP implementation of [Gateway] for the recommendation service.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rossw/tvrx/internal/models"
	"github.com/rossw/tvrx/internal/shared"
)

// Client implements [Gateway] over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Gateway = (*Client)(nil)

// NewClient creates a new gateway client for the recommendation service.
func NewClient(baseURL string, client *http.Client) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// do performs one request against the service. op names the operation for
// error reporting ("get recommendations" -> "get recommendations failed").
// A non-2xx response is the only failure mode beyond transport errors;
// response bodies are decoded into result with no further validation.
func (c *Client) do(ctx context.Context, method, path, token string, body, result any, op string) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s failed: encode request: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s failed: create request: %w", op, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s failed: %w: status %d", op, shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%s failed: decode response: %w", op, err)
		}
	}

	return nil
}

// Login performs the primary login call.
func (c *Client) Login(ctx context.Context, email string) (string, error) {
	var out models.MagicLinkResponse
	req := models.MagicLinkRequest{Email: email}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", req, &out, "auth/login"); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Magic performs the magic-link fallback login.
func (c *Client) Magic(ctx context.Context, email string) (string, error) {
	var out models.MagicLinkResponse
	req := models.MagicLinkRequest{Email: email}
	if err := c.do(ctx, http.MethodPost, "/auth/magic", "", req, &out, "auth/magic"); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Health retrieves the service health payload.
func (c *Client) Health(ctx context.Context) (*models.Health, error) {
	var out models.Health
	if err := c.do(ctx, http.MethodGet, "/healthz", "", nil, &out, "health"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Shows lists catalogue summaries.
func (c *Client) Shows(ctx context.Context, limit int) ([]models.ShowSummary, error) {
	if limit <= 0 {
		limit = 60
	}
	var out []models.ShowSummary
	path := fmt.Sprintf("/shows?limit=%d", limit)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out, "get shows"); err != nil {
		return nil, err
	}
	return out, nil
}

// Show retrieves one catalogue entry with availability.
func (c *Client) Show(ctx context.Context, id string) (*models.ShowDetail, error) {
	var out models.ShowDetail
	path := "/shows/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out, "get show"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profiles lists household profiles.
func (c *Client) Profiles(ctx context.Context, token string) ([]models.Profile, error) {
	var out []models.Profile
	if err := c.do(ctx, http.MethodGet, "/me/profiles", token, nil, &out, "get profiles"); err != nil {
		return nil, err
	}
	return out, nil
}

// Recommendations fetches the ordered batch for a query. The seed, when set,
// round-trips unchanged as the seed query parameter.
func (c *Client) Recommendations(ctx context.Context, q RecQuery, token string) ([]models.RecommendationItem, error) {
	var out []models.RecommendationItem
	path := "/recommendations?" + q.Values().Encode()
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out, "get recommendations"); err != nil {
		return nil, err
	}
	return out, nil
}

// DebugRecommendations fetches ranked score rows.
func (c *Client) DebugRecommendations(ctx context.Context, q RecQuery, token string) ([]models.DebugRow, error) {
	v := url.Values{}
	v.Set("for", q.For)
	intent := q.Intent
	if intent == "" {
		intent = "default"
	}
	v.Set("intent", intent)

	var out []models.DebugRow
	path := "/debug/recommendations?" + v.Encode()
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out, "debug recs"); err != nil {
		return nil, err
	}
	return out, nil
}

// PostProfiles upserts profile records.
func (c *Client) PostProfiles(ctx context.Context, updates []models.ProfileUpdate, token string) error {
	return c.do(ctx, http.MethodPost, "/profiles", token, updates, nil, "post profiles")
}

// PostRating submits a rating.
func (c *Client) PostRating(ctx context.Context, rating models.Rating, token string) error {
	return c.do(ctx, http.MethodPost, "/ratings", token, rating, nil, "post rating")
}

// PostOnboarding submits onboarding preferences.
func (c *Client) PostOnboarding(ctx context.Context, payload models.OnboardingPayload, token string) error {
	return c.do(ctx, http.MethodPost, "/onboarding", token, payload, nil, "post onboarding")
}

// Watchlist retrieves the membership snapshot for a profile.
func (c *Client) Watchlist(ctx context.Context, profileID int, token string) (*models.WatchlistOut, error) {
	v := url.Values{}
	v.Set("profile_id", fmt.Sprintf("%d", profileID))

	var out models.WatchlistOut
	path := "/watchlist?" + v.Encode()
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out, "get watchlist"); err != nil {
		return nil, err
	}
	return &out, nil
}

// WatchlistAdd adds a show to a profile's watchlist.
func (c *Client) WatchlistAdd(ctx context.Context, args models.WatchlistArgs, token string) error {
	return c.do(ctx, http.MethodPost, "/watchlist", token, args, nil, "post watchlist")
}

// WatchlistRemove removes a show from a profile's watchlist.
func (c *Client) WatchlistRemove(ctx context.Context, args models.WatchlistArgs, token string) error {
	v := url.Values{}
	v.Set("profile_id", fmt.Sprintf("%d", args.ProfileID))
	v.Set("show_id", args.ShowID)
	path := "/watchlist?" + v.Encode()
	return c.do(ctx, http.MethodDelete, path, token, nil, nil, "delete watchlist")
}

// AdminStatus reports backend sync status.
func (c *Client) AdminStatus(ctx context.Context, token string) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, "/admin/status", token, nil, &out, "admin status"); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminQueue reports the backend job queue.
func (c *Client) AdminQueue(ctx context.Context, token string) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, "/admin/queue", token, nil, &out, "admin queue"); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminSync triggers a data sync from justwatch or serializd.
func (c *Client) AdminSync(ctx context.Context, req models.SyncRequest, token string) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodPost, "/admin/sync", token, req, &out, "admin sync"); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminRebuildEmbeddings triggers an embeddings rebuild.
func (c *Client) AdminRebuildEmbeddings(ctx context.Context, token string) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodPost, "/admin/embeddings/rebuild", token, nil, &out, "embeddings rebuild"); err != nil {
		return nil, err
	}
	return out, nil
}
