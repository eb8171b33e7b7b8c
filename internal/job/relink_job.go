package job

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"comment-service/internal/domain"
	"comment-service/internal/repository"
)

const (
	defaultRunTimeout = 5 * time.Minute
	// comments younger than this may still be between their insert and their link
	defaultMinAge = time.Minute
)

// RelinkRecorder receives the number of comment ids restored per run
type RelinkRecorder interface {
	AddCommentsRelinked(n int)
}

// RelinkJob restores comments that were stored but never linked into their post's list
type RelinkJob struct {
	store    repository.Store
	recorder RelinkRecorder
	logger   *zap.Logger
	timeout  time.Duration
	minAge   time.Duration
	now      func() time.Time
}

// NewRelinkJob creates a new RelinkJob instance. recorder may be nil.
func NewRelinkJob(store repository.Store, recorder RelinkRecorder, logger *zap.Logger) *RelinkJob {
	return &RelinkJob{
		store:    store,
		recorder: recorder,
		logger:   logger,
		timeout:  defaultRunTimeout,
		minAge:   defaultMinAge,
		now:      time.Now,
	}
}

// WithMinAge sets how old an unlinked comment must be before it is restored
func (j *RelinkJob) WithMinAge(d time.Duration) *RelinkJob {
	j.minAge = d
	return j
}

// Run implements cron.Job
func (j *RelinkJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if _, err := j.RunOnce(ctx); err != nil {
		j.logger.Error("Relink job failed", zap.Error(err))
	}
}

// RunOnce scans every post and returns how many comment ids were restored.
// A failure on one post is logged and the scan continues.
func (j *RelinkJob) RunOnce(ctx context.Context) (int, error) {
	j.logger.Info("Starting relink job", zap.String("backend", j.store.Backend()))

	posts, err := j.store.Posts().FindAll(ctx)
	if err != nil {
		return 0, err
	}

	relinked, failed, conflicts := 0, 0, 0
	cutoff := j.now().Add(-j.minAge)
	for _, post := range posts {
		n, err := j.relinkPost(ctx, post.ID, cutoff)
		if errors.Is(err, repository.ErrConflict) {
			conflicts++
			j.logger.Info("Post changed during relink, left for the next run",
				zap.String("post_id", post.ID.String()),
			)
			continue
		}
		if err != nil {
			failed++
			j.logger.Error("Failed to relink post",
				zap.String("post_id", post.ID.String()),
				zap.Error(err),
			)
			continue
		}
		relinked += n
	}

	if j.recorder != nil && relinked > 0 {
		j.recorder.AddCommentsRelinked(relinked)
	}

	j.logger.Info("Relink job completed",
		zap.Int("posts_scanned", len(posts)),
		zap.Int("comments_relinked", relinked),
		zap.Int("posts_failed", failed),
		zap.Int("posts_changed", conflicts),
	)
	return relinked, nil
}

func (j *RelinkJob) relinkPost(ctx context.Context, postID uuid.UUID, cutoff time.Time) (int, error) {
	var restored int
	err := j.store.WithinTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		post, err := tx.Posts().FindByID(ctx, postID)
		if err != nil {
			return err
		}
		linked, err := post.Comments()
		if err != nil {
			return err
		}
		comments, err := tx.Comments().FindByPostID(ctx, postID)
		if err != nil {
			return err
		}

		merged, n := mergeMissing(linked, comments, cutoff)
		if n == 0 {
			return nil
		}
		if err := tx.Posts().ReplaceComments(ctx, postID, linked, merged); err != nil {
			return err
		}
		restored = n
		j.logger.Warn("Restored unlinked comments",
			zap.String("post_id", postID.String()),
			zap.Int("count", n),
		)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return restored, nil
}

// mergeMissing inserts the ids of comments absent from linked, keeping the list newest first.
// comments must be ordered by date descending. Comments dated after cutoff are left out.
// Linked ids keep their relative order, and ids without a stored comment stay where they are.
func mergeMissing(linked []uuid.UUID, comments []*domain.Comment, cutoff time.Time) ([]uuid.UUID, int) {
	dates := make(map[uuid.UUID]time.Time, len(comments))
	for _, c := range comments {
		dates[c.ID] = c.CreatedAt
	}
	present := make(map[uuid.UUID]bool, len(linked))
	for _, id := range linked {
		present[id] = true
	}

	merged := append([]uuid.UUID(nil), linked...)
	added := 0
	for _, c := range comments {
		if present[c.ID] || c.CreatedAt.After(cutoff) {
			continue
		}
		pos := len(merged)
		for i, id := range merged {
			if d, ok := dates[id]; ok && d.Before(c.CreatedAt) {
				pos = i
				break
			}
		}
		merged = append(merged, uuid.Nil)
		copy(merged[pos+1:], merged[pos:])
		merged[pos] = c.ID
		present[c.ID] = true
		added++
	}
	return merged, added
}

// Scheduler runs jobs on cron schedules
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// NewScheduler creates a scheduler whose jobs skip a tick while the previous run is still going
func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger))),
		logger: logger,
	}
}

// Add registers job under a standard 5-field or descriptor spec such as "@every 10m"
func (s *Scheduler) Add(name, spec string, job cron.Job) error {
	id, err := s.cron.AddJob(spec, job)
	if err != nil {
		return err
	}
	s.logger.Info("Scheduled job",
		zap.String("job", name),
		zap.String("schedule", spec),
		zap.Int("entry_id", int(id)),
	)
	return nil
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("Timed out waiting for running jobs")
	}
}
