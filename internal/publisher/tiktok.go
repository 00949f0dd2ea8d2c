package publisher

import (
	"context"
	"fmt"
)

const tiktokCaptionLimit = 150

type tiktokPublisher struct {
	client *AutomationClient
}

func NewTikTokPublisher(client *AutomationClient) Publisher {
	return &tiktokPublisher{client: client}
}

func (tt *tiktokPublisher) Platform() string {
	return PlatformTikTok
}

func (tt *tiktokPublisher) Publish(ctx context.Context, p Payload) Result {
	if len([]rune(p.Caption)) > tiktokCaptionLimit {
		return failure(PlatformTikTok, "caption rejected",
			fmt.Sprintf("caption exceeds %d characters", tiktokCaptionLimit))
	}
	// TikTok is video-only.
	if p.MediaURL == "" {
		return failure(PlatformTikTok, "post rejected", "tiktok requires media")
	}
	return tt.client.Post(ctx, PlatformTikTok, p)
}
