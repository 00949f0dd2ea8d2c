package publisher

import (
	"context"
	"fmt"
)

const instagramCaptionLimit = 2200

type instagramPublisher struct {
	client *AutomationClient
}

func NewInstagramPublisher(client *AutomationClient) Publisher {
	return &instagramPublisher{client: client}
}

func (ig *instagramPublisher) Platform() string {
	return PlatformInstagram
}

func (ig *instagramPublisher) Publish(ctx context.Context, p Payload) Result {
	if len([]rune(p.Caption)) > instagramCaptionLimit {
		return failure(PlatformInstagram, "caption rejected",
			fmt.Sprintf("caption exceeds %d characters", instagramCaptionLimit))
	}
	// Instagram posts require media.
	if p.MediaURL == "" {
		return failure(PlatformInstagram, "post rejected", "instagram requires media")
	}
	return ig.client.Post(ctx, PlatformInstagram, p)
}
