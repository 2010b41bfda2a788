package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/anonto42/heritage-feed/backend/internal/models"
	"github.com/anonto42/heritage-feed/backend/internal/repositories"
	"github.com/anonto42/heritage-feed/backend/internal/testutil"
)

// memoryCounts is an in-process CounterCache used to observe invalidation.
type memoryCounts struct {
	mu   sync.Mutex
	vals map[string]int64
	gens map[string]int64
}

func newMemoryCounts() *memoryCounts {
	return &memoryCounts{vals: map[string]int64{}, gens: map[string]int64{}}
}

func (m *memoryCounts) Get(_ context.Context, key string) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vals[key]
	return v, ok, nil
}

func (m *memoryCounts) Generation(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gens[key], nil
}

func (m *memoryCounts) Fill(_ context.Context, key string, count, generation int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gens[key] == generation {
		m.vals[key] = count
	}
	return nil
}

func (m *memoryCounts) Invalidate(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.vals, k)
		m.gens[k]++
	}
	return nil
}

func (m *memoryCounts) has(key string) bool {
	_, ok, _ := m.Get(context.Background(), key)
	return ok
}

// activityLog records activities in memory.
type activityLog struct {
	mu      sync.Mutex
	entries []models.Activity
}

func (a *activityLog) Record(_ context.Context, activity *models.Activity) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, *activity)
	return nil
}

func (a *activityLog) ListByRecipient(_ context.Context, recipientID uint, _, _ int64) ([]models.Activity, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []models.Activity
	for _, e := range a.entries {
		if e.RecipientID == recipientID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (a *activityLog) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

type fixture struct {
	store      *repositories.Store
	counts     *memoryCounts
	activities *activityLog

	profiles   ProfileService
	graph      GraphService
	engagement EngagementService
	timeline   TimelineService
	content    ContentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:      repositories.NewStore(testutil.NewDB(t)),
		counts:     newMemoryCounts(),
		activities: &activityLog{},
	}
	f.profiles = NewProfileService(f.store, f.counts)
	f.graph = NewGraphService(f.store, f.counts, f.activities)
	f.engagement = NewEngagementService(f.store, f.counts, f.activities)
	f.timeline = NewTimelineService(f.store)
	f.content = NewContentService(f.store, f.counts)
	return f
}

func (f *fixture) profile(t *testing.T, username string) *models.Profile {
	t.Helper()
	p, err := f.profiles.Create(context.Background(), &models.CreateProfileRequest{
		Username: username,
		Country:  "Senegal",
	})
	require.NoError(t, err)
	return p
}

// post creates a post and pins its timestamp so ordering is deterministic.
func (f *fixture) post(t *testing.T, owner uint, name string, at time.Time) *models.Post {
	t.Helper()
	ctx := context.Background()
	p, err := f.content.CreatePost(ctx, &models.CreatePostRequest{
		ProfileID:    owner,
		PostName:     name,
		PostLocation: "Dakar",
	})
	require.NoError(t, err)

	p.Timestamp = at
	require.NoError(t, f.store.Posts().Update(ctx, p))
	return p
}

func ids(posts []models.Post) []uint {
	out := make([]uint, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}
