package services

import (
	"context"
	"time"
)

func (c *CleanupService) retention() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.retentionPeriod
}

func (c *CleanupService) cutoff() time.Time {
	return c.now().Add(-c.retention())
}

func (c *CleanupService) pruneStale(ctx context.Context) (int, error) {
	cutoff := c.cutoff()
	removed, err := c.store.Prune(ctx, cutoff)
	if err != nil {
		c.logger.Errorf("failed to prune trending searches older than %s: %v", cutoff.Format(time.RFC3339), err)
		return 0, err
	}
	if removed == 0 {
		c.logger.Debugf("no stale trending searches to clean up")
	}
	return removed, nil
}
