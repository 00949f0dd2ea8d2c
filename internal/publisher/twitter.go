package publisher

import (
	"context"
	"fmt"
)

const twitterCaptionLimit = 280

type twitterPublisher struct {
	client *AutomationClient
}

func NewTwitterPublisher(client *AutomationClient) Publisher {
	return &twitterPublisher{client: client}
}

func (tw *twitterPublisher) Platform() string {
	return PlatformTwitter
}

func (tw *twitterPublisher) Publish(ctx context.Context, p Payload) Result {
	if len([]rune(p.Caption)) > twitterCaptionLimit {
		return failure(PlatformTwitter, "caption rejected",
			fmt.Sprintf("caption exceeds %d characters", twitterCaptionLimit))
	}
	return tw.client.Post(ctx, PlatformTwitter, p)
}
