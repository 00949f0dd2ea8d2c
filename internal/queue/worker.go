package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/hibiken/asynq"

	"crosspost/internal/models"
	"crosspost/internal/publisher"
)

// Platform calls within one job run concurrently up to this limit.
const maxParallelPublishes = 5

func (q *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal publish payload: %v: %w", err, asynq.SkipRetry)
	}

	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)

	return q.PublishPost(ctx, payload, retried >= maxRetry)
}

// PublishPost runs one publish job end to end: gate on automation settings,
// fan out to every target platform, fold the results into the post and
// persist it. The returned error drives the queue's retry policy; terminal
// conditions wrap asynq.SkipRetry. lastAttempt tells the worker that no
// retries remain, so a full failure must be written to the post now.
func (q *Queue) PublishPost(ctx context.Context, payload PublishPostPayload, lastAttempt bool) error {
	slog.Info("processing publish job", "post_id", payload.PostID, "platforms", payload.Platforms)

	settings, err := q.sr.GetByUserID(ctx, payload.UserID)
	if err != nil {
		return err
	}
	if settings == nil || !settings.IsEnabled {
		q.failPost(ctx, payload, "Automation is disabled for this user")
		return fmt.Errorf("automation is disabled for user %s: %w", payload.UserID, asynq.SkipRetry)
	}

	post, err := q.pr.GetByID(ctx, payload.PostID, payload.UserID)
	if err != nil {
		return err
	}
	if post == nil {
		return fmt.Errorf("post %s not found: %w", payload.PostID, asynq.SkipRetry)
	}

	mediaURL := ""
	if payload.Media != "" {
		mediaURL, err = q.media.ResolveURL(ctx, payload.Media)
		if err != nil {
			return fmt.Errorf("resolve media %s: %w", payload.Media, err)
		}
	}

	pubPayload := publisher.Payload{
		PostID:      payload.PostID,
		UserID:      payload.UserID,
		Caption:     payload.Caption,
		MediaURL:    mediaURL,
		BrowserType: settings.BrowserType,
		Headless:    settings.Headless,
	}

	results := q.fanOut(ctx, payload.Platforms, pubPayload)

	var total models.Analytics
	var failed []string
	var failures []string
	succeeded := 0
	for _, res := range results {
		if res.Success {
			succeeded++
			total.Add(res.Analytics)
			continue
		}
		failed = append(failed, res.Platform)
		reason := res.Err
		if reason == "" {
			reason = res.Message
		}
		failures = append(failures, fmt.Sprintf("%s: %s", res.Platform, reason))
	}

	if succeeded == 0 {
		errMsg := strings.Join(failures, "; ")
		if !lastAttempt {
			// Leave the post as is so a retry can still publish it.
			return errors.New("all platforms failed: " + errMsg)
		}
		if err := post.Fail(errMsg); err != nil {
			slog.Info(err.Error())
		} else if err := q.pr.Save(ctx, post); err != nil {
			return err
		}
		return errors.New("all platforms failed, retries exhausted: " + errMsg)
	}

	// At least one platform succeeded: the post counts as published, with
	// the failed platforms named in the error message.
	post.Analytics = total
	post.ErrorMessage = ""
	if len(failed) > 0 {
		post.ErrorMessage = "Failed on: " + strings.Join(failed, ", ")
	}
	if post.Status != models.StatusPublished {
		if err := post.Transition(models.StatusPublished); err != nil {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
	}

	if err := q.pr.Save(ctx, post); err != nil {
		// Propagate so the whole job is retried. Re-running repeats the
		// platform calls: at-least-once, not exactly-once.
		return err
	}

	slog.Info("publish job completed",
		"post_id", payload.PostID,
		"status", post.Status,
		"succeeded", succeeded,
		"failed", len(failed))
	return nil
}

func (q *Queue) fanOut(ctx context.Context, platforms []string, p publisher.Payload) []publisher.Result {
	results := make([]publisher.Result, len(platforms))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxParallelPublishes)

	for i, platform := range platforms {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(i int, platform string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			results[i] = q.registry.Publish(ctx, platform, p)
		}(i, platform)
	}

	wg.Wait()
	return results
}

// failPost records a terminal failure on the post. Best effort: the job is
// failing terminally either way, so store errors are only logged.
func (q *Queue) failPost(ctx context.Context, payload PublishPostPayload, message string) {
	post, err := q.pr.GetByID(ctx, payload.PostID, payload.UserID)
	if err != nil || post == nil {
		return
	}
	if err := post.Fail(message); err != nil {
		slog.Info(err.Error())
		return
	}
	if err := q.pr.Save(ctx, post); err != nil {
		slog.Info(err.Error())
	}
}
