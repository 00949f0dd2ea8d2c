package publisher

import (
	"context"
	"fmt"
)

const facebookCaptionLimit = 63206

type facebookPublisher struct {
	client *AutomationClient
}

func NewFacebookPublisher(client *AutomationClient) Publisher {
	return &facebookPublisher{client: client}
}

func (fb *facebookPublisher) Platform() string {
	return PlatformFacebook
}

func (fb *facebookPublisher) Publish(ctx context.Context, p Payload) Result {
	if len([]rune(p.Caption)) > facebookCaptionLimit {
		return failure(PlatformFacebook, "caption rejected",
			fmt.Sprintf("caption exceeds %d characters", facebookCaptionLimit))
	}
	return fb.client.Post(ctx, PlatformFacebook, p)
}
