package services

import (
	"context"
	"sync"
	"time"

	"github.com/amaumene/gomovies/internal/database"
	"github.com/amaumene/gomovies/pkg/logger"
)

const (
	// Default cleanup settings
	defaultCleanupInterval = 1 * time.Hour
	defaultRetentionPeriod = 90 * 24 * time.Hour
)

// CleanupService periodically drops trending records that have not been
// searched for longer than the retention period.
type CleanupService struct {
	store           database.TrendingStore
	logger          logger.Logger
	interval        time.Duration
	retentionPeriod time.Duration
	now             func() time.Time
	mu              sync.Mutex
	running         bool
	stopChan        chan struct{}
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(store database.TrendingStore, log logger.Logger) *CleanupService {
	return &CleanupService{
		store:           store,
		logger:          log,
		interval:        defaultCleanupInterval,
		retentionPeriod: defaultRetentionPeriod,
		now:             time.Now,
	}
}

// SetRetentionPeriod sets how long an idle record is kept
func (c *CleanupService) SetRetentionPeriod(duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.retentionPeriod = duration
}

// SetInterval sets how often cleanup runs
func (c *CleanupService) SetInterval(duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interval = duration
}

// Start runs one cleanup immediately, then repeats it every interval until
// ctx is cancelled or Stop is called.
func (c *CleanupService) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return nil
	}
	c.running = true
	c.stopChan = make(chan struct{})
	stop := c.stopChan
	interval := c.interval
	c.mu.Unlock()

	c.logger.Infof("starting cleanup service with interval: %v, retention: %v", interval, c.retention())

	c.performCleanup(ctx)

	go c.cleanupLoop(ctx, interval, stop)

	return nil
}

// Stop stops the cleanup service. It may be started again afterwards.
func (c *CleanupService) Stop() {
	c.mu.Lock()
	stop := c.stopChan
	c.mu.Unlock()
	c.stopRun(stop)
}

// stopRun ends the run owning stop; a later run is left alone.
func (c *CleanupService) stopRun(stop chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || stop == nil || c.stopChan != stop {
		return
	}

	c.running = false
	close(stop)
	c.logger.Infof("cleanup service stopped")
}

func (c *CleanupService) cleanupLoop(ctx context.Context, interval time.Duration, stop chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.stopRun(stop)
			return
		case <-stop:
			return
		case <-ticker.C:
			c.performCleanup(ctx)
		}
	}
}

func (c *CleanupService) performCleanup(ctx context.Context) {
	c.logger.Debugf("starting cleanup process")

	removed, err := c.pruneStale(ctx)
	if err != nil {
		return
	}
	if removed > 0 {
		c.logger.Infof("cleanup completed: %d trending searches removed", removed)
	}
}

// CleanupNow performs an immediate cleanup and reports how many records
// were removed.
func (c *CleanupService) CleanupNow(ctx context.Context) (int, error) {
	return c.pruneStale(ctx)
}
