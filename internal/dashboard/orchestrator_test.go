package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/SanOuhi99/RECT-v3-sub000/internal/common/errors"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/common/logger"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

type stubSource struct {
	mu         sync.Mutex
	records    []models.PropertyRecord
	stats      *models.Stats
	recordsErr error
	statsErr   error
	delay      time.Duration
	calls      int32
}

func (s *stubSource) ListProperties(ctx context.Context) ([]models.PropertyRecord, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records, s.recordsErr
}

func (s *stubSource) FetchStats(ctx context.Context) (*models.Stats, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats, s.statsErr
}

func (s *stubSource) setErrors(recordsErr, statsErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordsErr = recordsErr
	s.statsErr = statsErr
}

func newStubSource() *stubSource {
	return &stubSource{
		records: []models.PropertyRecord{{ID: "p1", Address: "1 Main St", State: "TX"}},
		stats:   &models.Stats{TotalMatches: 1},
	}
}

// ==========================
// Lifecycle Tests
// ==========================

func TestOrchestrator_Load_Success(t *testing.T) {
	source := newStubSource()
	o := NewOrchestrator(source, logger.NewTestLogger(t))
	require.Equal(t, StateInitial, o.State())

	o.Load(context.Background())

	assert.Equal(t, StateReady, o.State())
	require.Len(t, o.Records(), 1)
	require.NotNil(t, o.Stats())
	assert.Equal(t, 1, o.Stats().TotalMatches)
	assert.Empty(t, o.Err())
}

func TestOrchestrator_Load_RecordsFailure(t *testing.T) {
	source := newStubSource()
	source.setErrors(apperrors.NewHTTP(500, "database unavailable"), nil)

	o := NewOrchestrator(source, logger.NewTestLogger(t))
	o.Load(context.Background())

	assert.Equal(t, StateError, o.State())
	assert.Contains(t, o.Err(), "database unavailable")
	assert.False(t, o.AuthExpired())
}

func TestOrchestrator_Load_StatsFailureAlsoFails(t *testing.T) {
	source := newStubSource()
	source.setErrors(nil, apperrors.NewHTTP(500, "stats unavailable"))

	o := NewOrchestrator(source, logger.NewTestLogger(t))
	o.Load(context.Background())

	assert.Equal(t, StateError, o.State())
}

func TestOrchestrator_Load_AuthExpirySignalsRedirect(t *testing.T) {
	source := newStubSource()
	source.setErrors(apperrors.NewAuthExpired("user"), nil)

	o := NewOrchestrator(source, logger.NewTestLogger(t))
	o.Load(context.Background())

	assert.Equal(t, StateError, o.State())
	assert.True(t, o.AuthExpired())
}

func TestOrchestrator_Retry_RecoversFromError(t *testing.T) {
	source := newStubSource()
	source.setErrors(apperrors.NewNetwork(assert.AnError), nil)

	o := NewOrchestrator(source, logger.NewTestLogger(t))
	ctx := context.Background()
	o.Load(ctx)
	require.Equal(t, StateError, o.State())

	source.setErrors(nil, nil)
	o.Retry(ctx)

	assert.Equal(t, StateReady, o.State())
	assert.Empty(t, o.Err())
}

func TestOrchestrator_Refresh_KeepsDataOnFailure(t *testing.T) {
	source := newStubSource()
	o := NewOrchestrator(source, logger.NewTestLogger(t))
	ctx := context.Background()
	o.Load(ctx)
	require.Equal(t, StateReady, o.State())

	source.setErrors(apperrors.NewNetwork(assert.AnError), nil)
	o.Refresh(ctx)

	assert.Equal(t, StateError, o.State())
	// The last good data survives for the retry affordance.
	assert.Len(t, o.Records(), 1)
}

// ==========================
// Overlap and Timer Tests
// ==========================

func TestOrchestrator_NoOverlappingRefreshes(t *testing.T) {
	source := newStubSource()
	source.delay = 100 * time.Millisecond

	o := NewOrchestrator(source, logger.NewTestLogger(t))
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		o.Load(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	o.Refresh(ctx) // returns immediately, cycle already in flight
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&source.calls))
	assert.Equal(t, StateReady, o.State())
}

func TestOrchestrator_TimedRefresh(t *testing.T) {
	source := newStubSource()
	o := NewOrchestrator(source, logger.NewTestLogger(t))
	ctx := context.Background()

	o.Load(ctx)
	o.Start(ctx, 20*time.Millisecond)
	defer o.Stop()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&source.calls) >= 3
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, StateReady, o.State())
}

func TestOrchestrator_StopTearsDownTimer(t *testing.T) {
	source := newStubSource()
	o := NewOrchestrator(source, logger.NewTestLogger(t))
	ctx := context.Background()

	o.Load(ctx)
	o.Start(ctx, 10*time.Millisecond)
	o.Stop()

	settled := atomic.LoadInt32(&source.calls)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, atomic.LoadInt32(&source.calls))
}

func TestOrchestrator_StopWithoutStartIsSafe(t *testing.T) {
	o := NewOrchestrator(newStubSource(), logger.NewTestLogger(t))
	o.Stop()
	o.Stop()
}
