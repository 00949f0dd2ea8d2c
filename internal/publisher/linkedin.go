package publisher

import (
	"context"
	"fmt"
)

const linkedinCaptionLimit = 3000

type linkedinPublisher struct {
	client *AutomationClient
}

func NewLinkedInPublisher(client *AutomationClient) Publisher {
	return &linkedinPublisher{client: client}
}

func (li *linkedinPublisher) Platform() string {
	return PlatformLinkedIn
}

func (li *linkedinPublisher) Publish(ctx context.Context, p Payload) Result {
	if len([]rune(p.Caption)) > linkedinCaptionLimit {
		return failure(PlatformLinkedIn, "caption rejected",
			fmt.Sprintf("caption exceeds %d characters", linkedinCaptionLimit))
	}
	return li.client.Post(ctx, PlatformLinkedIn, p)
}
