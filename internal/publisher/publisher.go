package publisher

import (
	"context"

	"crosspost/internal/models"
)

// Payload is the per-platform publish request handed to a Publisher. One
// payload is built per job attempt and shared by every platform in the
// fan-out.
type Payload struct {
	PostID      string `json:"post_id"`
	UserID      string `json:"user_id"`
	Caption     string `json:"caption"`
	MediaURL    string `json:"media_url,omitempty"`
	BrowserType string `json:"browser_type"`
	Headless    bool   `json:"headless"`
}

// Result is the outcome of one publish attempt on one platform. Analytics
// are whatever the platform reported synchronously; metrics the platform
// did not report stay zero.
type Result struct {
	Platform  string           `json:"platform"`
	Success   bool             `json:"success"`
	Message   string           `json:"message"`
	Analytics models.Analytics `json:"analytics"`
	Err       string           `json:"error,omitempty"`
}

// Publisher posts content to a single external platform. Implementations do
// not retry; retries happen at the job level.
type Publisher interface {
	Platform() string
	Publish(ctx context.Context, p Payload) Result
}

func failure(platform, message, errMsg string) Result {
	return Result{
		Platform: platform,
		Success:  false,
		Message:  message,
		Err:      errMsg,
	}
}
