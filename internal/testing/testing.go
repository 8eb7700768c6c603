// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/rossw/tvrx/internal/models"
	"github.com/rossw/tvrx/internal/services"
)

// MockGateway is a scriptable test double for [services.Gateway]. Each
// operation returns the configured value/error pair; calls are recorded by
// operation name and the most recent arguments are retained for assertions.
type MockGateway struct {
	LoginToken string
	LoginErr   error
	MagicToken string
	MagicErr   error

	HealthOut *models.Health
	HealthErr error

	ShowsOut []models.ShowSummary
	ShowsErr error
	ShowOut  *models.ShowDetail
	ShowErr  error

	ProfilesOut []models.Profile
	ProfilesErr error

	RecsOut []models.RecommendationItem
	RecsErr error
	// RecsFn, when set, overrides RecsOut/RecsErr per query.
	RecsFn func(q services.RecQuery) ([]models.RecommendationItem, error)

	DebugOut []models.DebugRow
	DebugErr error

	WatchlistSnapshot *models.WatchlistOut
	WatchlistErr      error
	AddErr            error
	RemoveErr         error

	RatingErr       error
	OnboardingErr   error
	PostProfilesErr error

	AdminOut map[string]any
	AdminErr error

	Calls      []string
	LastQuery  services.RecQuery
	LastRating models.Rating
	LastArgs   models.WatchlistArgs
}

var _ services.Gateway = (*MockGateway)(nil)

func (m *MockGateway) record(op string) { m.Calls = append(m.Calls, op) }

func (m *MockGateway) Login(ctx context.Context, email string) (string, error) {
	m.record("login")
	return m.LoginToken, m.LoginErr
}

func (m *MockGateway) Magic(ctx context.Context, email string) (string, error) {
	m.record("magic")
	return m.MagicToken, m.MagicErr
}

func (m *MockGateway) Health(ctx context.Context) (*models.Health, error) {
	m.record("health")
	return m.HealthOut, m.HealthErr
}

func (m *MockGateway) Shows(ctx context.Context, limit int) ([]models.ShowSummary, error) {
	m.record("shows")
	return m.ShowsOut, m.ShowsErr
}

func (m *MockGateway) Show(ctx context.Context, id string) (*models.ShowDetail, error) {
	m.record("show")
	return m.ShowOut, m.ShowErr
}

func (m *MockGateway) Profiles(ctx context.Context, token string) ([]models.Profile, error) {
	m.record("profiles")
	return m.ProfilesOut, m.ProfilesErr
}

func (m *MockGateway) Recommendations(ctx context.Context, q services.RecQuery, token string) ([]models.RecommendationItem, error) {
	m.record("recommendations")
	m.LastQuery = q
	if m.RecsFn != nil {
		return m.RecsFn(q)
	}
	return m.RecsOut, m.RecsErr
}

func (m *MockGateway) DebugRecommendations(ctx context.Context, q services.RecQuery, token string) ([]models.DebugRow, error) {
	m.record("debug")
	m.LastQuery = q
	return m.DebugOut, m.DebugErr
}

func (m *MockGateway) PostProfiles(ctx context.Context, updates []models.ProfileUpdate, token string) error {
	m.record("post profiles")
	return m.PostProfilesErr
}

func (m *MockGateway) PostRating(ctx context.Context, rating models.Rating, token string) error {
	m.record("post rating")
	m.LastRating = rating
	return m.RatingErr
}

func (m *MockGateway) PostOnboarding(ctx context.Context, payload models.OnboardingPayload, token string) error {
	m.record("post onboarding")
	return m.OnboardingErr
}

func (m *MockGateway) Watchlist(ctx context.Context, profileID int, token string) (*models.WatchlistOut, error) {
	m.record("get watchlist")
	return m.WatchlistSnapshot, m.WatchlistErr
}

func (m *MockGateway) WatchlistAdd(ctx context.Context, args models.WatchlistArgs, token string) error {
	m.record("add watchlist")
	m.LastArgs = args
	return m.AddErr
}

func (m *MockGateway) WatchlistRemove(ctx context.Context, args models.WatchlistArgs, token string) error {
	m.record("remove watchlist")
	m.LastArgs = args
	return m.RemoveErr
}

func (m *MockGateway) AdminStatus(ctx context.Context, token string) (map[string]any, error) {
	m.record("admin status")
	return m.AdminOut, m.AdminErr
}

func (m *MockGateway) AdminQueue(ctx context.Context, token string) (map[string]any, error) {
	m.record("admin queue")
	return m.AdminOut, m.AdminErr
}

func (m *MockGateway) AdminSync(ctx context.Context, req models.SyncRequest, token string) (map[string]any, error) {
	m.record("admin sync")
	return m.AdminOut, m.AdminErr
}

func (m *MockGateway) AdminRebuildEmbeddings(ctx context.Context, token string) (map[string]any, error) {
	m.record("admin rebuild")
	return m.AdminOut, m.AdminErr
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
