package metrics

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// CountFunc returns the current size of one collection
type CountFunc func(ctx context.Context) (int64, error)

// BusinessMetricsCollector refreshes the comment and post gauges periodically
type BusinessMetricsCollector struct {
	countComments CountFunc
	countPosts    CountFunc
	metrics       *Metrics
	logger        *zap.Logger
	interval      time.Duration
	done          chan struct{}
}

// NewBusinessMetricsCollector creates a new collector
func NewBusinessMetricsCollector(countComments, countPosts CountFunc, metrics *Metrics, logger *zap.Logger) *BusinessMetricsCollector {
	return &BusinessMetricsCollector{
		countComments: countComments,
		countPosts:    countPosts,
		metrics:       metrics,
		logger:        logger,
		interval:      60 * time.Second,
		done:          make(chan struct{}),
	}
}

// WithInterval sets the refresh period. Non-positive values are ignored.
func (c *BusinessMetricsCollector) WithInterval(d time.Duration) *BusinessMetricsCollector {
	if d > 0 {
		c.interval = d
	}
	return c
}

// Start begins collecting metrics
func (c *BusinessMetricsCollector) Start() {
	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		c.collect()
		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *BusinessMetricsCollector) Stop() {
	close(c.done)
}

func (c *BusinessMetricsCollector) collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection",
				zap.Any("panic", r),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if count, err := c.countComments(ctx); err != nil {
		c.logger.Error("Failed to count comments", zap.Error(err))
	} else {
		c.metrics.SetCommentsTotal(count)
	}

	if count, err := c.countPosts(ctx); err != nil {
		c.logger.Error("Failed to count posts", zap.Error(err))
	} else {
		c.metrics.SetPostsTotal(count)
	}
}
