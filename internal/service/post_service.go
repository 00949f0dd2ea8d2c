package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"crosspost/internal/models"
	"crosspost/internal/queue"
	"crosspost/internal/repository"
	"crosspost/internal/transfer"
)

const scheduledTimeLayout = "2006-01-02T15:04"

// A publish claim this old belongs to a crashed worker and may be taken over.
const claimStaleAfter = 10 * time.Minute

// PlatformChecker reports whether a platform identifier is supported.
type PlatformChecker interface {
	Supported(platform string) bool
}

type Enqueuer interface {
	EnqueuePost(payload queue.PublishPostPayload, delay time.Duration) (string, error)
}

type PostService interface {
	CreatePost(ctx context.Context, userID string, pc *transfer.PostCreation, media []byte) (string, error)
	List(ctx context.Context, userID string) ([]*models.Post, error)
	PostInfo(ctx context.Context, postID, userID string) (*models.Post, error)
	PublishNow(ctx context.Context, userID, postID string) error
	Archive(ctx context.Context, userID, postID string) error
	Remove(ctx context.Context, userID, postID string) error
}

type postService struct {
	pr        repository.PostRepository
	media     *MediaService
	platforms PlatformChecker
	client    Enqueuer
}

func NewPostService(pr repository.PostRepository, media *MediaService, platforms PlatformChecker, client Enqueuer) PostService {
	return &postService{
		pr:        pr,
		media:     media,
		platforms: platforms,
		client:    client,
	}
}

// CreatePost stores a new post. A future scheduled date makes it a
// scheduled post picked up later by the scheduler; otherwise it is
// published right away.
func (s *postService) CreatePost(ctx context.Context, userID string, pc *transfer.PostCreation, media []byte) (string, error) {
	if pc == nil {
		err := errors.New("post creation data is nil")
		slog.Error(err.Error())
		return "", err
	}
	if pc.Caption == "" {
		err := errors.New("caption cannot be empty")
		slog.Info(err.Error())
		return "", err
	}
	if len(pc.Platforms) == 0 {
		err := errors.New("no target platforms selected")
		slog.Info(err.Error())
		return "", err
	}
	for _, platform := range pc.Platforms {
		if !s.platforms.Supported(platform) {
			err := fmt.Errorf("unsupported platform: %s", platform)
			slog.Info(err.Error())
			return "", err
		}
	}

	var scheduledDate *time.Time
	if pc.ScheduledDate != "" {
		parsed, err := time.ParseInLocation(scheduledTimeLayout, pc.ScheduledDate, time.Local)
		if err != nil {
			err = fmt.Errorf("invalid scheduled time format: %w", err)
			slog.Error(err.Error())
			return "", err
		}
		scheduledDate = &parsed
	}

	mediaKey := ""
	if len(media) > 0 {
		key, err := s.media.Upload(ctx, media)
		if err != nil {
			return "", fmt.Errorf("error uploading media: %w", err)
		}
		mediaKey = key
	}

	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	post := models.Post{
		ID:        id,
		UserID:    userID,
		Caption:   pc.Caption,
		Media:     mediaKey,
		Platforms: pc.Platforms,
		Status:    models.StatusDraft,
	}

	publishNow := scheduledDate == nil || !scheduledDate.After(time.Now())
	if !publishNow {
		post.Status = models.StatusScheduled
		post.ScheduledDate = scheduledDate
	}

	if err := s.pr.Create(ctx, &post); err != nil {
		return "", fmt.Errorf("error creating post: %w", err)
	}

	if publishNow {
		if err := s.enqueue(&post); err != nil {
			return "", err
		}
	}

	return id, nil
}

// PublishNow pushes an existing draft, failed or scheduled post into the
// queue immediately. Scheduled posts are claimed first so a concurrent
// scheduler scan cannot queue them a second time.
func (s *postService) PublishNow(ctx context.Context, userID, postID string) error {
	post, err := s.loadOwned(ctx, postID, userID)
	if err != nil {
		return err
	}

	switch post.Status {
	case models.StatusDraft:
	case models.StatusFailed:
		if err := post.Transition(models.StatusDraft); err != nil {
			return err
		}
		post.ErrorMessage = ""
		if err := s.pr.Save(ctx, post); err != nil {
			return err
		}
	case models.StatusScheduled:
		now := time.Now()
		claimed, err := s.pr.Claim(ctx, postID, now, now.Add(-claimStaleAfter))
		if err != nil {
			return err
		}
		if !claimed {
			err = errors.New("post is already being published")
			slog.Info(err.Error())
			return err
		}
	default:
		err = fmt.Errorf("post in status %s cannot be published", post.Status)
		slog.Info(err.Error())
		return err
	}

	return s.enqueue(post)
}

func (s *postService) enqueue(post *models.Post) error {
	_, err := s.client.EnqueuePost(queue.PublishPostPayload{
		PostID:    post.ID,
		UserID:    post.UserID,
		Platforms: post.Platforms,
		Caption:   post.Caption,
		Media:     post.Media,
	}, 0)
	if err != nil && !errors.Is(err, queue.ErrAlreadyQueued) {
		return fmt.Errorf("error scheduling post: %w", err)
	}
	return nil
}

func (s *postService) PostInfo(ctx context.Context, postID, userID string) (*models.Post, error) {
	return s.loadOwned(ctx, postID, userID)
}

func (s *postService) List(ctx context.Context, userID string) ([]*models.Post, error) {
	posts, err := s.pr.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Error getting posts")
	}
	return posts, nil
}

func (s *postService) Archive(ctx context.Context, userID, postID string) error {
	post, err := s.loadOwned(ctx, postID, userID)
	if err != nil {
		return err
	}

	if err := post.Transition(models.StatusArchived); err != nil {
		slog.Info(err.Error())
		return err
	}

	return s.pr.Save(ctx, post)
}

func (s *postService) Remove(ctx context.Context, userID, postID string) error {
	post, err := s.loadOwned(ctx, postID, userID)
	if err != nil {
		return err
	}

	if post.Media != "" {
		if err := s.media.Remove(ctx, post.Media); err != nil {
			slog.Info(err.Error())
		}
	}

	if err := s.pr.Remove(ctx, post.ID); err != nil {
		return fmt.Errorf("Error removing post")
	}

	return nil
}

func (s *postService) loadOwned(ctx context.Context, postID, userID string) (*models.Post, error) {
	if userID == "" {
		err := errors.New("User is not valid")
		slog.Info(err.Error())
		return nil, err
	}
	if postID == "" {
		err := errors.New("post id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	post, err := s.pr.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		err = errors.New("Post doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}

	return post, nil
}
