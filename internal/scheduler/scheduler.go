package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"crosspost/internal/models"
	"crosspost/internal/queue"
	"crosspost/internal/repository"
)

// A claim older than this is assumed to belong to a crashed scan and the
// post becomes eligible again.
const reclaimAfter = 10 * time.Minute

type Enqueuer interface {
	EnqueuePost(payload queue.PublishPostPayload, delay time.Duration) (string, error)
}

// Scheduler scans for posts whose scheduled time has arrived and hands each
// one to the job queue exactly once per claim.
type Scheduler struct {
	pr      repository.PostRepository
	client  Enqueuer
	running atomic.Bool
}

func NewScheduler(pr repository.PostRepository, client Enqueuer) *Scheduler {
	return &Scheduler{pr: pr, client: client}
}

// Run performs one scan. Invoked from cron; a tick that fires while the
// previous scan is still running is skipped so two scans never race on the
// same posts.
func (s *Scheduler) Run() {
	if !s.running.CompareAndSwap(false, true) {
		slog.Info("scheduler tick skipped, previous scan still running")
		return
	}
	defer s.running.Store(false)

	ctx := context.Background()
	now := time.Now()

	due, err := s.pr.ListDue(ctx, now, now.Add(-reclaimAfter))
	if err != nil {
		// Transient scan failure: skip the tick, due posts stay scheduled
		// and are picked up on a later one.
		slog.Info(err.Error())
		return
	}

	if len(due) > 0 {
		slog.Info("found due posts", "count", len(due))
	}

	for _, post := range due {
		s.dispatch(ctx, post, now)
	}
}

func (s *Scheduler) dispatch(ctx context.Context, post *models.Post, now time.Time) {
	claimed, err := s.pr.Claim(ctx, post.ID, now, now.Add(-reclaimAfter))
	if err != nil {
		slog.Info(err.Error())
		return
	}
	if !claimed {
		// Another tick or a manual publish got there first.
		return
	}

	_, err = s.client.EnqueuePost(queue.PublishPostPayload{
		PostID:    post.ID,
		UserID:    post.UserID,
		Platforms: post.Platforms,
		Caption:   post.Caption,
		Media:     post.Media,
	}, 0)
	if err == nil {
		slog.Info("scheduled post queued", "post_id", post.ID)
		return
	}
	if errors.Is(err, queue.ErrAlreadyQueued) {
		return
	}

	slog.Info("failed to queue scheduled post", "post_id", post.ID, "error", err.Error())

	// A post left claimed but never queued would otherwise sit in
	// scheduled forever; surface the failure on the post instead.
	if ferr := post.Fail("Failed to add to processing queue"); ferr != nil {
		slog.Info(ferr.Error())
		return
	}
	if serr := s.pr.Save(ctx, post); serr != nil {
		slog.Info(serr.Error())
	}
}
