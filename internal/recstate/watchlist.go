package recstate

import (
	"context"
	"sort"
	"sync"

	"github.com/rossw/tvrx/internal/models"
	"github.com/rossw/tvrx/internal/services"
)

// WatchlistStore holds the watchlist membership set for one profile.
//
// Mutations commit locally only after the remote call succeeds; a failed
// call leaves the set untouched, so the set never diverges from server state
// once an operation has settled.
//
// Safe for concurrent use: the TUI mutates it from command goroutines while
// the render loop reads membership.
type WatchlistStore struct {
	gateway services.Gateway

	mu        sync.RWMutex
	profileID int
	ids       map[string]struct{}
}

// NewWatchlistStore creates an empty store bound to the gateway.
func NewWatchlistStore(gateway services.Gateway) *WatchlistStore {
	return &WatchlistStore{gateway: gateway, ids: map[string]struct{}{}}
}

// Load replaces the whole set from the server for the given profile. Any
// previous set (including one for a different profile) is dropped, never
// merged. On failure the previous set is kept.
func (s *WatchlistStore) Load(ctx context.Context, profileID int, token string) error {
	out, err := s.gateway.Watchlist(ctx, profileID, token)
	if err != nil {
		return err
	}

	ids := make(map[string]struct{}, len(out.ShowIDs))
	for _, id := range out.ShowIDs {
		ids[id] = struct{}{}
	}

	s.mu.Lock()
	s.profileID = profileID
	s.ids = ids
	s.mu.Unlock()
	return nil
}

// Add issues the remote add and inserts locally only on success.
func (s *WatchlistStore) Add(ctx context.Context, showID, token string) error {
	args := models.WatchlistArgs{ProfileID: s.ProfileID(), ShowID: showID}
	if err := s.gateway.WatchlistAdd(ctx, args, token); err != nil {
		return err
	}

	s.mu.Lock()
	s.ids[showID] = struct{}{}
	s.mu.Unlock()
	return nil
}

// Remove issues the remote delete and removes locally only on success.
func (s *WatchlistStore) Remove(ctx context.Context, showID, token string) error {
	args := models.WatchlistArgs{ProfileID: s.ProfileID(), ShowID: showID}
	if err := s.gateway.WatchlistRemove(ctx, args, token); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.ids, showID)
	s.mu.Unlock()
	return nil
}

// Has reports whether the show is on the watchlist.
func (s *WatchlistStore) Has(showID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[showID]
	return ok
}

// Len returns the membership count.
func (s *WatchlistStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// ProfileID returns the profile the set was last loaded for.
func (s *WatchlistStore) ProfileID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profileID
}

// ShowIDs returns the membership as a sorted slice.
func (s *WatchlistStore) ShowIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
