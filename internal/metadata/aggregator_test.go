package metadata_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/flickstream/flickstream/internal/metadata"
	"github.com/flickstream/flickstream/internal/metadata/mocks"
)

// gatedFetcher holds back the response for gated ids until their channel is closed,
// ignoring cancellation so the late arrival actually happens.
type gatedFetcher struct {
	gates map[int]chan struct{}
}

func (f *gatedFetcher) Aggregate(_ context.Context, id int) (*metadata.Composite, error) {
	if gate, ok := f.gates[id]; ok {
		<-gate
	}
	return &metadata.Composite{Movie: metadata.Movie{ID: id}}, nil
}

type snapshotRecorder struct {
	mu    sync.Mutex
	snaps []metadata.Snapshot
}

func (r *snapshotRecorder) record(s metadata.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, s)
}

func (r *snapshotRecorder) all() []metadata.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]metadata.Snapshot(nil), r.snaps...)
}

func TestAggregator_StaleResponseDiscarded(t *testing.T) {
	fetcher := &gatedFetcher{gates: map[int]chan struct{}{1: make(chan struct{})}}
	rec := &snapshotRecorder{}
	agg := metadata.NewAggregator(fetcher, zerolog.Nop(), rec.record)

	firstDone := make(chan error, 1)
	go func() {
		_, err := agg.Fetch(context.Background(), 1)
		firstDone <- err
	}()

	require.Eventually(t, func() bool {
		return agg.State().EntityID == 1
	}, time.Second, time.Millisecond)

	composite, err := agg.Fetch(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, composite.Movie.ID)

	close(fetcher.gates[1])
	assert.ErrorIs(t, <-firstDone, metadata.ErrSuperseded)

	state := agg.State()
	assert.Equal(t, 2, state.EntityID)
	assert.Equal(t, metadata.StatusReady, state.Status)
	assert.Equal(t, 2, state.Composite.Movie.ID)

	for _, snap := range rec.all() {
		if snap.EntityID == 1 {
			assert.NotEqual(t, metadata.StatusReady, snap.Status, "superseded fetch must not publish a result")
		}
	}
	snaps := rec.all()
	require.Len(t, snaps, 3)
	assert.Equal(t, metadata.StatusLoading, snaps[0].Status)
	assert.Equal(t, metadata.StatusLoading, snaps[1].Status)
	assert.Equal(t, metadata.StatusReady, snaps[2].Status)
}

func TestAggregator_DetailFailurePublishesFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockCompositeFetcher(ctrl)
	fetcher.EXPECT().Aggregate(gomock.Any(), 603).
		Return(nil, errors.Join(metadata.ErrMovieUnavailable, errors.New("status 404")))

	rec := &snapshotRecorder{}
	agg := metadata.NewAggregator(fetcher, zerolog.Nop(), rec.record)

	_, err := agg.Fetch(context.Background(), 603)
	assert.ErrorIs(t, err, metadata.ErrMovieUnavailable)

	state := agg.State()
	assert.Equal(t, metadata.StatusFailed, state.Status)
	assert.Equal(t, "could not load this movie", state.Error)
	assert.Nil(t, state.Composite)
	assert.Len(t, rec.all(), 2)
}

func TestAggregator_RefetchSameID(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockCompositeFetcher(ctrl)
	fetcher.EXPECT().Aggregate(gomock.Any(), 603).
		Return(&metadata.Composite{Movie: metadata.Movie{ID: 603}}, nil).Times(2)

	agg := metadata.NewAggregator(fetcher, zerolog.Nop(), nil)

	_, err := agg.Fetch(context.Background(), 603)
	require.NoError(t, err)
	first := agg.State()

	_, err = agg.Fetch(context.Background(), 603)
	require.NoError(t, err)
	second := agg.State()

	assert.Equal(t, first.Composite, second.Composite)
	assert.Greater(t, second.Generation, first.Generation)
}

func TestAggregator_CancelDropsInFlight(t *testing.T) {
	fetcher := &gatedFetcher{gates: map[int]chan struct{}{5: make(chan struct{})}}
	agg := metadata.NewAggregator(fetcher, zerolog.Nop(), nil)

	done := make(chan error, 1)
	go func() {
		_, err := agg.Fetch(context.Background(), 5)
		done <- err
	}()

	require.Eventually(t, func() bool {
		return agg.State().Status == metadata.StatusLoading
	}, time.Second, time.Millisecond)

	agg.Cancel()
	close(fetcher.gates[5])

	assert.ErrorIs(t, <-done, metadata.ErrSuperseded)
	assert.Equal(t, metadata.StatusLoading, agg.State().Status)
}

func TestAggregator_InitialState(t *testing.T) {
	agg := metadata.NewAggregator(&gatedFetcher{}, zerolog.Nop(), nil)
	assert.Equal(t, metadata.StatusIdle, agg.State().Status)
}

func TestAggregator_BeginOrdersGenerations(t *testing.T) {
	rec := &snapshotRecorder{}
	agg := metadata.NewAggregator(&gatedFetcher{}, zerolog.Nop(), rec.record)

	first := agg.Begin(context.Background(), 1)
	second := agg.Begin(context.Background(), 2)
	require.Less(t, first.Generation(), second.Generation())

	// The later request finishes first, then the earlier one arrives late.
	composite, err := second.Run()
	require.NoError(t, err)
	assert.Equal(t, 2, composite.Movie.ID)

	_, err = first.Run()
	assert.ErrorIs(t, err, metadata.ErrSuperseded)

	state := agg.State()
	assert.Equal(t, 2, state.EntityID)
	assert.Equal(t, metadata.StatusReady, state.Status)

	snaps := rec.all()
	require.Len(t, snaps, 3)
	assert.Equal(t, metadata.StatusLoading, snaps[0].Status)
	assert.Equal(t, 1, snaps[0].EntityID)
	assert.Equal(t, metadata.StatusLoading, snaps[1].Status)
	assert.Equal(t, 2, snaps[1].EntityID)
	assert.Equal(t, 2, snaps[2].EntityID)
}

func TestAggregator_BeginCancelsEarlierContext(t *testing.T) {
	var seen context.Context
	fetcher := fetcherFunc(func(ctx context.Context, id int) (*metadata.Composite, error) {
		seen = ctx
		return &metadata.Composite{Movie: metadata.Movie{ID: id}}, nil
	})
	agg := metadata.NewAggregator(fetcher, zerolog.Nop(), nil)

	first := agg.Begin(context.Background(), 1)
	agg.Begin(context.Background(), 2)

	_, err := first.Run()
	assert.ErrorIs(t, err, metadata.ErrSuperseded)
	require.NotNil(t, seen)
	assert.ErrorIs(t, seen.Err(), context.Canceled)
}

type fetcherFunc func(ctx context.Context, id int) (*metadata.Composite, error)

func (f fetcherFunc) Aggregate(ctx context.Context, id int) (*metadata.Composite, error) {
	return f(ctx, id)
}
