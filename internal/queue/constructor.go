package queue

import (
	"context"

	"crosspost/internal/publisher"
	"crosspost/internal/repository"
)

const TaskTypePublishPost = "post:publish"

// PublishPostPayload is the durable job record. It carries everything the
// worker needs besides the Post itself, which is re-fetched on every
// attempt; the Post does not have to exist at enqueue time.
type PublishPostPayload struct {
	PostID    string   `json:"post_id"`
	UserID    string   `json:"user_id"`
	Platforms []string `json:"platforms"`
	Caption   string   `json:"caption"`
	Media     string   `json:"media,omitempty"`
}

// PlatformRegistry is the slice of publisher.Registry the worker needs.
type PlatformRegistry interface {
	Publish(ctx context.Context, platform string, p publisher.Payload) publisher.Result
}

// MediaResolver turns a stored media key into a URL publishers can fetch.
type MediaResolver interface {
	ResolveURL(ctx context.Context, key string) (string, error)
}

type Queue struct {
	pr       repository.PostRepository
	sr       repository.SettingsRepository
	registry PlatformRegistry
	media    MediaResolver
}

func NewQueue(
	pr repository.PostRepository,
	sr repository.SettingsRepository,
	registry PlatformRegistry,
	media MediaResolver) *Queue {
	return &Queue{
		pr:       pr,
		sr:       sr,
		registry: registry,
		media:    media,
	}
}
