package queue

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/hibiken/asynq"

	config "crosspost/configs"
)

const queueName = "default"

// ErrAlreadyQueued reports that a publish job for the same post is already
// in the queue. The task ID is derived from the post ID, so a scheduler
// tick racing a manual publish collapses into one job.
var ErrAlreadyQueued = errors.New("publish job already queued for this post")

// EnqueuePost inserts a publish job, visible for processing after delay.
func EnqueuePost(asynqClient *asynq.Client, payload PublishPostPayload, delay time.Duration, cfg config.Queue) (string, error) {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	task := asynq.NewTask(TaskTypePublishPost, taskPayload)

	info, err := asynqClient.Enqueue(task,
		asynq.TaskID("publish:"+payload.PostID),
		asynq.MaxRetry(cfg.MaxAttempts-1),
		asynq.ProcessIn(delay),
		asynq.Retention(cfg.Retention),
	)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return "", ErrAlreadyQueued
		}
		return "", err
	}

	log.Printf("Task scheduled: post=%s platforms=%v delay=%s", payload.PostID, payload.Platforms, delay)
	return info.ID, nil
}

// RetryDelay returns the backoff schedule for failed jobs: base delay,
// doubling on every retry.
func RetryDelay(base time.Duration) asynq.RetryDelayFunc {
	return func(n int, _ error, _ *asynq.Task) time.Duration {
		delay := base
		for i := 0; i < n; i++ {
			delay *= 2
		}
		return delay
	}
}

// Stats is a read-only snapshot of queue depth for dashboards.
type Stats struct {
	Waiting   int `json:"waiting"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

func GetStats(inspector *asynq.Inspector) (*Stats, error) {
	info, err := inspector.GetQueueInfo(queueName)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Waiting:   info.Pending + info.Scheduled + info.Retry,
		Active:    info.Active,
		Completed: info.Completed,
		Failed:    info.Archived,
	}, nil
}

// Client bundles the asynq client with the queue tuning so callers enqueue
// without carrying configuration around.
type Client struct {
	asynq *asynq.Client
	cfg   config.Queue
}

func NewClient(asynqClient *asynq.Client, cfg config.Queue) *Client {
	return &Client{asynq: asynqClient, cfg: cfg}
}

func (c *Client) EnqueuePost(payload PublishPostPayload, delay time.Duration) (string, error) {
	return EnqueuePost(c.asynq, payload, delay, c.cfg)
}
