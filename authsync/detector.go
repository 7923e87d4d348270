package authsync

import (
	"sync"
	"time"

	"knowbase-core/kv"
	"knowbase-core/metrics"
	"knowbase-core/utils"
)

// DefaultInterval is the polling cadence when none is configured
const DefaultInterval = 2 * time.Second

// Detector polls the watched keys and publishes when their values change.
// Polling is deliberate: storage mutations do not reliably cross the
// page/extension isolation boundary as events, so the detector trades a
// propagation latency bounded by the interval for reliability.
type Detector struct {
	store    kv.Store
	pub      *Publisher
	interval time.Duration
	logger   *utils.Logger
	metrics  *metrics.Metrics

	lastSeen string
	started  bool
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewDetector creates a detector polling every interval. A non-positive
// interval falls back to DefaultInterval.
func NewDetector(store kv.Store, pub *Publisher, interval time.Duration, logger *utils.Logger) *Detector {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Detector{
		store:    store,
		pub:      pub,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// AttachMetrics enables metrics reporting
func (d *Detector) AttachMetrics(m *metrics.Metrics) {
	d.metrics = m
}

// Interval returns the polling cadence
func (d *Detector) Interval() time.Duration {
	return d.interval
}

// Start publishes the current snapshot once immediately, so the subscriber
// receives current state even if nothing ever changes, then polls until Stop.
func (d *Detector) Start() {
	snap := TakeSnapshot(d.store)
	d.lastSeen = serialize(snap)
	d.pub.publishSnapshot(snap)

	d.started = true
	utils.SafeGo(d.logger, "authsync.detector", d.loop)
}

// Stop halts the polling loop and waits for it to exit. Safe to call more
// than once.
func (d *Detector) Stop() {
	d.stopOnce.Do(func() { close(d.stop) })
	if d.started {
		<-d.done
	}
}

func (d *Detector) loop() {
	defer close(d.done)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
			d.poll()
		}
	}
}

// poll recomputes the snapshot and publishes only when it differs by value
// from the last published one
func (d *Detector) poll() {
	d.metrics.IncSyncPollTicks()

	snap := TakeSnapshot(d.store)
	current := serialize(snap)
	if current == d.lastSeen {
		return
	}

	d.lastSeen = current
	d.logger.Debug("Auth snapshot changed, publishing")
	d.pub.publishSnapshot(snap)
}
