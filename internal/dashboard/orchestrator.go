// Package dashboard drives the property dashboard lifecycle: the
// initial parallel load of records and stats, manual and timed
// refreshes, and the error/retry path. It owns no HTTP details; data
// arrives through a DataSource backed by a session manager.
package dashboard

import (
	"context"
	"sync"
	"time"

	cerrors "github.com/SanOuhi99/RECT-v3-sub000/internal/common/errors"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/common/logger"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/common/metrics"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/models"
)

// State is the dashboard lifecycle phase.
type State string

const (
	StateInitial    State = "initial"
	StateLoading    State = "loading"
	StateReady      State = "ready"
	StateRefreshing State = "refreshing"
	StateError      State = "error"
)

// DataSource supplies the two datasets the dashboard renders. A
// *session.UserManager satisfies it.
type DataSource interface {
	ListProperties(ctx context.Context) ([]models.PropertyRecord, error)
	FetchStats(ctx context.Context) (*models.Stats, error)
}

// Orchestrator holds dashboard state and coordinates loads so that at
// most one fetch cycle is in flight at a time.
type Orchestrator struct {
	source DataSource
	log    logger.Logger

	mu          sync.Mutex
	state       State
	records     []models.PropertyRecord
	stats       *models.Stats
	errMessage  string
	authExpired bool
	inFlight    bool

	timerMu sync.Mutex
	stop    chan struct{}
	done    chan struct{}
}

func NewOrchestrator(source DataSource, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		source: source,
		log:    log.WithFields(map[string]interface{}{"component": "dashboard"}),
		state:  StateInitial,
	}
}

// Load performs the initial blocking fetch. The loading state clears
// only after both the records and stats requests settle.
func (o *Orchestrator) Load(ctx context.Context) {
	if !o.begin(StateLoading) {
		return
	}
	o.run(ctx)
}

// Refresh re-fetches without blanking the current view. It is a no-op
// while another fetch cycle is in flight, so a timer tick cannot
// overlap a manual refresh.
func (o *Orchestrator) Refresh(ctx context.Context) {
	if !o.begin(StateRefreshing) {
		return
	}
	o.run(ctx)
}

// Retry re-enters the loading path after an error.
func (o *Orchestrator) Retry(ctx context.Context) {
	o.Load(ctx)
}

// begin claims the in-flight slot and moves to next. Returns false when
// a cycle is already running.
func (o *Orchestrator) begin(next State) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inFlight {
		return false
	}
	o.inFlight = true
	o.state = next
	o.errMessage = ""
	o.authExpired = false
	return true
}

func (o *Orchestrator) run(ctx context.Context) {
	start := time.Now()

	var (
		wg         sync.WaitGroup
		records    []models.PropertyRecord
		stats      *models.Stats
		recordsErr error
		statsErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		records, recordsErr = o.source.ListProperties(ctx)
	}()
	go func() {
		defer wg.Done()
		stats, statsErr = o.source.FetchStats(ctx)
	}()
	wg.Wait()

	metrics.DashboardRefreshDuration.Observe(time.Since(start).Seconds())

	o.mu.Lock()
	defer o.mu.Unlock()
	o.inFlight = false

	err := recordsErr
	if err == nil {
		err = statsErr
	}
	if err != nil {
		o.state = StateError
		o.errMessage = err.Error()
		o.authExpired = cerrors.IsAuthExpired(err)
		o.log.Warn("Dashboard fetch failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	o.records = records
	o.stats = stats
	o.state = StateReady
}

// Start launches the timed refresh loop. Calling Start while a loop is
// running restarts it with the new interval.
func (o *Orchestrator) Start(ctx context.Context, interval time.Duration) {
	o.Stop()

	o.timerMu.Lock()
	stop := make(chan struct{})
	done := make(chan struct{})
	o.stop = stop
	o.done = done
	o.timerMu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				o.Refresh(ctx)
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop tears down the refresh loop and waits for it to exit. Safe to
// call when no loop is running.
func (o *Orchestrator) Stop() {
	o.timerMu.Lock()
	stop, done := o.stop, o.done
	o.stop, o.done = nil, nil
	o.timerMu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) Records() []models.PropertyRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.records
}

func (o *Orchestrator) Stats() *models.Stats {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stats
}

// Err returns the displayable message from the last failed cycle, empty
// when the dashboard is healthy.
func (o *Orchestrator) Err() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.errMessage
}

// AuthExpired reports whether the last failure was a session expiry, in
// which case the caller should route to the login screen.
func (o *Orchestrator) AuthExpired() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.authExpired
}
