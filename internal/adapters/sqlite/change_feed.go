package sqlite

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/helena-commits/badge-capture-stream/internal/ports/secondary"
)

// DefaultPollInterval is how often the change feed checks for new photos.
const DefaultPollInterval = time.Second

const feedBatchSize = 50

// ChangeFeed implements secondary.ChangeFeed by polling the photos table
// for rows past a seq cursor. Only rows created after Subscribe are delivered.
type ChangeFeed struct {
	repo     secondary.PhotoRepository
	interval time.Duration
	logger   *zap.Logger
}

// NewChangeFeed creates a polling change feed over repo.
func NewChangeFeed(repo secondary.PhotoRepository, interval time.Duration, logger *zap.Logger) *ChangeFeed {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &ChangeFeed{
		repo:     repo,
		interval: interval,
		logger:   logger.Named("feed"),
	}
}

// Subscribe starts delivering newly created photos to onInsert from a single
// goroutine, in seq order. The returned Unsubscribe stops the poller and
// waits for an in-flight delivery to finish.
func (f *ChangeFeed) Subscribe(ctx context.Context, onInsert secondary.InsertHandler) (secondary.Unsubscribe, error) {
	cursor, err := f.repo.MaxSeq(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed cursor: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		f.run(ctx, cursor, onInsert)
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}, nil
}

func (f *ChangeFeed) run(ctx context.Context, cursor int64, onInsert secondary.InsertHandler) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	f.logger.Debug("subscribed", zap.Int64("cursor", cursor))
	for {
		select {
		case <-ctx.Done():
			f.logger.Debug("unsubscribed", zap.Int64("cursor", cursor))
			return
		case <-ticker.C:
		}

		records, err := f.repo.ListAfterSeq(ctx, cursor, feedBatchSize)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			f.logger.Warn("poll photos failed", zap.Error(err))
			continue
		}

		for _, rec := range records {
			if ctx.Err() != nil {
				return
			}
			onInsert(ctx, rec)
			cursor = rec.Seq
		}
	}
}

var _ secondary.ChangeFeed = (*ChangeFeed)(nil)
