package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosspost/internal/models"
	"crosspost/internal/queue"
	"crosspost/internal/transfer"
)

type fakePostRepo struct {
	posts   map[string]*models.Post
	created []*models.Post
	saved   []*models.Post
	claimOK bool
}

func (r *fakePostRepo) GetByID(_ context.Context, id, userID string) (*models.Post, error) {
	post, ok := r.posts[id]
	if !ok || post.UserID != userID {
		return nil, nil
	}
	return post, nil
}

func (r *fakePostRepo) Create(_ context.Context, post *models.Post) error {
	r.created = append(r.created, post)
	return nil
}

func (r *fakePostRepo) Save(_ context.Context, post *models.Post) error {
	r.saved = append(r.saved, post)
	return nil
}

func (r *fakePostRepo) Claim(context.Context, string, time.Time, time.Time) (bool, error) {
	return r.claimOK, nil
}

func (r *fakePostRepo) ListByUserID(context.Context, string) ([]*models.Post, error) {
	return nil, nil
}
func (r *fakePostRepo) ListDue(context.Context, time.Time, time.Time) ([]*models.Post, error) {
	return nil, nil
}
func (r *fakePostRepo) Remove(context.Context, string) error { return nil }

type fakeEnqueuer struct {
	payloads []queue.PublishPostPayload
}

func (e *fakeEnqueuer) EnqueuePost(payload queue.PublishPostPayload, _ time.Duration) (string, error) {
	e.payloads = append(e.payloads, payload)
	return "job-" + payload.PostID, nil
}

type allPlatforms struct{}

func (allPlatforms) Supported(platform string) bool {
	switch platform {
	case "instagram", "facebook", "twitter", "linkedin", "tiktok":
		return true
	}
	return false
}

func newTestService(repo *fakePostRepo, enq *fakeEnqueuer) PostService {
	return NewPostService(repo, nil, allPlatforms{}, enq)
}

func TestCreatePostValidation(t *testing.T) {
	repo := &fakePostRepo{}
	enq := &fakeEnqueuer{}
	s := newTestService(repo, enq)
	ctx := context.Background()

	tests := []struct {
		name string
		pc   *transfer.PostCreation
	}{
		{"nil creation", nil},
		{"empty caption", &transfer.PostCreation{Platforms: []string{"twitter"}}},
		{"no platforms", &transfer.PostCreation{Caption: "hi"}},
		{"unknown platform", &transfer.PostCreation{Caption: "hi", Platforms: []string{"myspace"}}},
		{"bad time format", &transfer.PostCreation{Caption: "hi", Platforms: []string{"twitter"}, ScheduledDate: "next tuesday"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.CreatePost(ctx, "u1", tc.pc, nil)
			require.Error(t, err)
		})
	}
	assert.Empty(t, repo.created)
	assert.Empty(t, enq.payloads)
}

func TestCreatePostScheduledForLater(t *testing.T) {
	repo := &fakePostRepo{}
	enq := &fakeEnqueuer{}
	s := newTestService(repo, enq)

	future := time.Now().Add(2 * time.Hour).Format("2006-01-02T15:04")
	id, err := s.CreatePost(context.Background(), "u1", &transfer.PostCreation{
		Caption:       "later",
		Platforms:     []string{"twitter", "linkedin"},
		ScheduledDate: future,
	}, nil)

	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.Len(t, repo.created, 1)
	post := repo.created[0]
	assert.Equal(t, models.StatusScheduled, post.Status)
	require.NotNil(t, post.ScheduledDate)
	assert.Empty(t, enq.payloads, "scheduled posts are picked up by the scheduler, not enqueued at creation")
}

func TestCreatePostImmediate(t *testing.T) {
	repo := &fakePostRepo{}
	enq := &fakeEnqueuer{}
	s := newTestService(repo, enq)

	id, err := s.CreatePost(context.Background(), "u1", &transfer.PostCreation{
		Caption:   "now",
		Platforms: []string{"twitter"},
	}, nil)

	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	post := repo.created[0]
	assert.Equal(t, models.StatusDraft, post.Status)
	assert.Nil(t, post.ScheduledDate)
	require.Len(t, enq.payloads, 1)
	assert.Equal(t, id, enq.payloads[0].PostID)
	assert.Equal(t, "now", enq.payloads[0].Caption)
}

func TestPublishNowClaimsScheduledPost(t *testing.T) {
	scheduled := time.Now().Add(time.Hour)
	post := &models.Post{ID: "p1", UserID: "u1", Caption: "hi", Platforms: []string{"twitter"},
		Status: models.StatusScheduled, ScheduledDate: &scheduled}
	repo := &fakePostRepo{posts: map[string]*models.Post{"p1": post}, claimOK: true}
	enq := &fakeEnqueuer{}
	s := newTestService(repo, enq)

	require.NoError(t, s.PublishNow(context.Background(), "u1", "p1"))
	require.Len(t, enq.payloads, 1)
}

func TestPublishNowLosesClaimRace(t *testing.T) {
	scheduled := time.Now().Add(time.Hour)
	post := &models.Post{ID: "p1", UserID: "u1", Caption: "hi", Platforms: []string{"twitter"},
		Status: models.StatusScheduled, ScheduledDate: &scheduled}
	repo := &fakePostRepo{posts: map[string]*models.Post{"p1": post}, claimOK: false}
	enq := &fakeEnqueuer{}
	s := newTestService(repo, enq)

	err := s.PublishNow(context.Background(), "u1", "p1")

	require.Error(t, err)
	assert.Empty(t, enq.payloads)
}

func TestPublishNowRestartsFailedPost(t *testing.T) {
	post := &models.Post{ID: "p1", UserID: "u1", Caption: "hi", Platforms: []string{"twitter"},
		Status: models.StatusFailed, ErrorMessage: "twitter: rate limited"}
	repo := &fakePostRepo{posts: map[string]*models.Post{"p1": post}}
	enq := &fakeEnqueuer{}
	s := newTestService(repo, enq)

	require.NoError(t, s.PublishNow(context.Background(), "u1", "p1"))
	assert.Equal(t, models.StatusDraft, post.Status)
	assert.Empty(t, post.ErrorMessage)
	require.Len(t, enq.payloads, 1)
}

func TestPublishNowRejectsArchivedPost(t *testing.T) {
	post := &models.Post{ID: "p1", UserID: "u1", Status: models.StatusArchived}
	repo := &fakePostRepo{posts: map[string]*models.Post{"p1": post}}
	enq := &fakeEnqueuer{}
	s := newTestService(repo, enq)

	require.Error(t, s.PublishNow(context.Background(), "u1", "p1"))
	assert.Empty(t, enq.payloads)
}

func TestArchivePublishedPost(t *testing.T) {
	post := &models.Post{ID: "p1", UserID: "u1", Status: models.StatusPublished}
	repo := &fakePostRepo{posts: map[string]*models.Post{"p1": post}}
	s := newTestService(repo, &fakeEnqueuer{})

	require.NoError(t, s.Archive(context.Background(), "u1", "p1"))
	assert.Equal(t, models.StatusArchived, post.Status)
	require.Len(t, repo.saved, 1)
}

func TestPostInfoUnknownPost(t *testing.T) {
	s := newTestService(&fakePostRepo{}, &fakeEnqueuer{})

	_, err := s.PostInfo(context.Background(), "missing", "u1")
	require.Error(t, err)
}
