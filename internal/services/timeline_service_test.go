package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonto42/heritage-feed/backend/internal/errs"
	"github.com/anonto42/heritage-feed/backend/internal/models"
	"github.com/anonto42/heritage-feed/backend/internal/repositories"
)

func TestTimelineFollowScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.profile(t, "a")
	b := f.profile(t, "b")

	sunset := f.post(t, a.ID, "sunset", t0)
	require.NoError(t, f.graph.Follow(ctx, b.ID, a.ID))

	feed, err := f.timeline.Timeline(ctx, b.ID, models.Page{})
	require.NoError(t, err)
	assert.Equal(t, []uint{sunset.ID}, ids(feed))

	storm := f.post(t, a.ID, "storm", t0.Add(time.Hour))
	feed, err = f.timeline.Timeline(ctx, b.ID, models.Page{})
	require.NoError(t, err)
	assert.Equal(t, []uint{storm.ID, sunset.ID}, ids(feed))

	own, err := f.timeline.MyPosts(ctx, b.ID, models.Page{})
	require.NoError(t, err)
	assert.Empty(t, own)
}

func TestTimelineUnionWithSelfFollow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.profile(t, "p")
	q := f.profile(t, "q")
	r := f.profile(t, "r")
	other := f.profile(t, "other")

	mine := f.post(t, p.ID, "mine", t0.Add(2*time.Hour))
	fromQ := f.post(t, q.ID, "from-q", t0.Add(3*time.Hour))
	fromR := f.post(t, r.ID, "from-r", t0)
	f.post(t, other.ID, "unrelated", t0.Add(5*time.Hour))

	require.NoError(t, f.graph.Follow(ctx, p.ID, q.ID))
	require.NoError(t, f.graph.Follow(ctx, p.ID, r.ID))
	require.NoError(t, f.graph.Follow(ctx, p.ID, p.ID))

	feed, err := f.timeline.Timeline(ctx, p.ID, models.Page{})
	require.NoError(t, err)
	assert.Equal(t, []uint{fromQ.ID, mine.ID, fromR.ID}, ids(feed))

	own, err := f.timeline.MyPosts(ctx, p.ID, models.Page{})
	require.NoError(t, err)
	assert.Equal(t, []uint{mine.ID}, ids(own))
}

func TestTimelineIsNotTransitive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.profile(t, "a")
	b := f.profile(t, "b")
	c := f.profile(t, "c")
	f.post(t, c.ID, "two-hops", t0)

	require.NoError(t, f.graph.Follow(ctx, a.ID, b.ID))
	require.NoError(t, f.graph.Follow(ctx, b.ID, c.ID))

	feed, err := f.timeline.Timeline(ctx, a.ID, models.Page{})
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestTimelineUnknownProfile(t *testing.T) {
	f := newFixture(t)
	_, err := f.timeline.Timeline(context.Background(), 404, models.Page{})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestTimelineConcurrentReaders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.profile(t, "a")
	first := f.post(t, a.ID, "first", t0)
	second := f.post(t, a.ID, "second", t0.Add(time.Minute))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			feed, err := f.timeline.Timeline(ctx, a.ID, models.Page{})
			if assert.NoError(t, err) {
				assert.Equal(t, []uint{second.ID, first.ID}, ids(feed))
			}
		}()
	}
	wg.Wait()
}

func TestDedupePostsKeepsFirst(t *testing.T) {
	posts := []models.Post{{ID: 3}, {ID: 2}, {ID: 3}, {ID: 1}, {ID: 2}}
	assert.Equal(t, []uint{3, 2, 1}, ids(dedupePosts(posts)))
}

func TestTimelineCancelledReaderDoesNotFailOthers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.profile(t, "a")
	dawn := f.post(t, a.ID, "dawn", t0)

	// Hold the only connection so concurrent readers queue on one shared load.
	held := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- f.store.Transaction(ctx, func(*repositories.Store) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	type result struct {
		posts []models.Post
		err   error
	}
	cancelCtx, cancel := context.WithCancel(ctx)
	cancelled := make(chan error, 1)
	live := make(chan result, 1)
	go func() {
		_, err := f.timeline.Timeline(cancelCtx, a.ID, models.Page{})
		cancelled <- err
	}()
	go func() {
		posts, err := f.timeline.Timeline(ctx, a.ID, models.Page{})
		live <- result{posts, err}
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-cancelled, context.Canceled)

	close(release)
	require.NoError(t, <-txDone)

	res := <-live
	require.NoError(t, res.err)
	assert.Equal(t, []uint{dawn.ID}, ids(res.posts))
}
