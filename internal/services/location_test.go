package services

import (
	"context"
	"sort"
	"testing"

	"tracker78-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLocationStore struct {
	locations []*models.Location
}

func (f *fakeLocationStore) Create(ctx context.Context, loc *models.Location) error {
	f.locations = append(f.locations, loc)
	return nil
}

func (f *fakeLocationStore) LatestByUser(ctx context.Context, userID string) (*models.Location, error) {
	for i := len(f.locations) - 1; i >= 0; i-- {
		if f.locations[i].UserID == userID {
			return f.locations[i], nil
		}
	}
	return nil, errFakeNotFound
}

func (f *fakeLocationStore) LatestByCircle(ctx context.Context, circleID string) ([]*models.Location, error) {
	latest := make(map[string]*models.Location)
	for _, loc := range f.locations {
		if loc.CircleID != nil && *loc.CircleID == circleID {
			latest[loc.UserID] = loc
		}
	}
	var out []*models.Location
	for _, loc := range latest {
		out = append(out, loc)
	}
	return out, nil
}

func (f *fakeLocationStore) LatestByUsers(ctx context.Context, userIDs []string) ([]*models.Location, error) {
	var out []*models.Location
	for _, id := range userIDs {
		if loc, err := f.LatestByUser(ctx, id); err == nil {
			out = append(out, loc)
		}
	}
	return out, nil
}

type fakeGeoCache struct {
	latest map[string]*models.Location
	online map[string]bool
}

func newFakeGeoCache() *fakeGeoCache {
	return &fakeGeoCache{
		latest: make(map[string]*models.Location),
		online: make(map[string]bool),
	}
}

func (f *fakeGeoCache) SetLatest(ctx context.Context, loc *models.Location) error {
	f.latest[loc.UserID] = loc
	return nil
}

func (f *fakeGeoCache) Latest(ctx context.Context, userID string) (*models.Location, error) {
	return f.latest[userID], nil
}

func (f *fakeGeoCache) Touch(ctx context.Context, userID string) error {
	f.online[userID] = true
	return nil
}

type fakeShareStore struct {
	// owner -> viewers
	grants map[string]map[string]bool
}

func newFakeShareStore() *fakeShareStore {
	return &fakeShareStore{grants: make(map[string]map[string]bool)}
}

func (f *fakeShareStore) Set(ctx context.Context, ownerID, friendID string, enabled bool) error {
	if f.grants[ownerID] == nil {
		f.grants[ownerID] = make(map[string]bool)
	}
	f.grants[ownerID][friendID] = enabled
	return nil
}

func (f *fakeShareStore) ListForFriend(ctx context.Context, friendID string) ([]*models.LocationShare, error) {
	var out []*models.LocationShare
	for owner, viewers := range f.grants {
		if viewers[friendID] {
			out = append(out, &models.LocationShare{OwnerID: owner, FriendID: friendID, Enabled: true})
		}
	}
	return out, nil
}

func (f *fakeShareStore) ViewerIDs(ctx context.Context, ownerID string) ([]string, error) {
	var out []string
	for viewer, enabled := range f.grants[ownerID] {
		if enabled {
			out = append(out, viewer)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeShareStore) OwnerIDs(ctx context.Context, friendID string) ([]string, error) {
	var out []string
	for owner, viewers := range f.grants {
		if viewers[friendID] {
			out = append(out, owner)
		}
	}
	sort.Strings(out)
	return out, nil
}

type fakeBroadcaster struct {
	viewerIDs []string
	locations []*models.Location
}

func (f *fakeBroadcaster) BroadcastLocation(viewerIDs []string, loc *models.Location) {
	f.viewerIDs = append(f.viewerIDs, viewerIDs...)
	f.locations = append(f.locations, loc)
}

func locationFixtures(t *testing.T) (*LocationService, *SharingService, *fakeGeoCache, *fakeBroadcaster, *fakeUserStore) {
	t.Helper()
	users := newFakeUserStore()
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &models.User{ID: "mover", Email: "mover@example.com", Name: "Mover"}))
	require.NoError(t, users.Create(ctx, &models.User{ID: "watcher", Email: "watcher@example.com", Name: "Watcher"}))

	cache := newFakeGeoCache()
	hub := &fakeBroadcaster{}
	sharing := NewSharingService(newFakeShareStore(), users)
	circles := NewCircleService(newFakeCircleStore(), users)
	svc := NewLocationService(&fakeLocationStore{}, cache, circles, sharing, hub)
	return svc, sharing, cache, hub, users
}

func TestUpdate_PersistsCachesAndBroadcasts(t *testing.T) {
	ctx := context.Background()
	svc, sharing, cache, hub, _ := locationFixtures(t)

	require.NoError(t, sharing.Enable(ctx, "mover", "watcher"))

	loc, err := svc.Update(ctx, "mover", nil, 5.6, -0.18)
	require.NoError(t, err)
	assert.NotEmpty(t, loc.ID)

	assert.Equal(t, loc, cache.latest["mover"])
	assert.True(t, cache.online["mover"])

	require.Len(t, hub.locations, 1)
	assert.Equal(t, []string{"watcher"}, hub.viewerIDs)
}

func TestUpdate_NoGrantsNoBroadcast(t *testing.T) {
	ctx := context.Background()
	svc, _, _, hub, _ := locationFixtures(t)

	_, err := svc.Update(ctx, "mover", nil, 5.6, -0.18)
	require.NoError(t, err)
	assert.Empty(t, hub.locations)
}

func TestUpdate_RejectsOutOfRange(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _ := locationFixtures(t)

	_, err := svc.Update(ctx, "mover", nil, 91, 0)
	assert.Error(t, err)
	_, err = svc.Update(ctx, "mover", nil, 0, -181)
	assert.Error(t, err)
}

func TestLatest_CacheFirst(t *testing.T) {
	ctx := context.Background()
	svc, _, cache, _, _ := locationFixtures(t)

	_, err := svc.Update(ctx, "mover", nil, 5.6, -0.18)
	require.NoError(t, err)

	// Poison the store path by serving a distinct value from cache.
	cached := &models.Location{ID: "cached", UserID: "mover", Latitude: 1, Longitude: 1}
	cache.latest["mover"] = cached

	loc, err := svc.Latest(ctx, "mover")
	require.NoError(t, err)
	assert.Equal(t, "cached", loc.ID)
}

func TestLatest_FallsBackToStore(t *testing.T) {
	ctx := context.Background()
	svc, _, cache, _, _ := locationFixtures(t)

	first, err := svc.Update(ctx, "mover", nil, 5.6, -0.18)
	require.NoError(t, err)

	delete(cache.latest, "mover")

	loc, err := svc.Latest(ctx, "mover")
	require.NoError(t, err)
	assert.Equal(t, first.ID, loc.ID)
}

func TestLatest_UnknownUser(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _ := locationFixtures(t)

	_, err := svc.Latest(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFriendsLatest_OnlySharers(t *testing.T) {
	ctx := context.Background()
	svc, sharing, _, _, _ := locationFixtures(t)

	_, err := svc.Update(ctx, "mover", nil, 5.6, -0.18)
	require.NoError(t, err)

	// Nothing shared with the watcher yet.
	locs, err := svc.FriendsLatest(ctx, "watcher")
	require.NoError(t, err)
	assert.Empty(t, locs)

	require.NoError(t, sharing.Enable(ctx, "mover", "watcher"))

	locs, err = svc.FriendsLatest(ctx, "watcher")
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, "mover", locs[0].UserID)

	// Revoking the grant hides the location again.
	require.NoError(t, sharing.Disable(ctx, "mover", "watcher"))
	locs, err = svc.FriendsLatest(ctx, "watcher")
	require.NoError(t, err)
	assert.Empty(t, locs)
}

func TestCircleLatest_PrefersCircleTaggedReports(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _ := locationFixtures(t)

	circle, err := svc.circles.CreateCircle(ctx, "mover", "Family", "")
	require.NoError(t, err)
	_, err = svc.circles.JoinByCode(ctx, "watcher", circle.JoinCode)
	require.NoError(t, err)

	// The mover reports against the circle, then again without a tag; the
	// watcher only ever reports untagged.
	tagged, err := svc.Update(ctx, "mover", &circle.ID, 5.6, -0.18)
	require.NoError(t, err)
	_, err = svc.Update(ctx, "mover", nil, 6.7, -1.2)
	require.NoError(t, err)
	untagged, err := svc.Update(ctx, "watcher", nil, 5.5, -0.2)
	require.NoError(t, err)

	locs, err := svc.CircleLatest(ctx, circle.ID, "mover")
	require.NoError(t, err)
	require.Len(t, locs, 2)

	byUser := make(map[string]string, len(locs))
	for _, loc := range locs {
		byUser[loc.UserID] = loc.ID
	}
	assert.Equal(t, tagged.ID, byUser["mover"])
	assert.Equal(t, untagged.ID, byUser["watcher"])
}

func TestCircleLatest_RequiresMembership(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _ := locationFixtures(t)

	circle, err := svc.circles.CreateCircle(ctx, "mover", "Family", "")
	require.NoError(t, err)

	_, err = svc.Update(ctx, "mover", &circle.ID, 5.6, -0.18)
	require.NoError(t, err)

	locs, err := svc.CircleLatest(ctx, circle.ID, "mover")
	require.NoError(t, err)
	require.Len(t, locs, 1)

	_, err = svc.CircleLatest(ctx, circle.ID, "watcher")
	assert.ErrorIs(t, err, ErrNotMember)
}
