package publisher

import (
	"context"
	"fmt"
)

const (
	PlatformInstagram = "instagram"
	PlatformFacebook  = "facebook"
	PlatformTwitter   = "twitter"
	PlatformLinkedIn  = "linkedin"
	PlatformTikTok    = "tiktok"
)

// Registry dispatches publish calls over the supported platform set. Adding
// a platform means one Publisher implementation and one Register call.
type Registry struct {
	publishers map[string]Publisher
}

func NewRegistry(client *AutomationClient) *Registry {
	r := &Registry{publishers: make(map[string]Publisher)}
	r.Register(NewInstagramPublisher(client))
	r.Register(NewFacebookPublisher(client))
	r.Register(NewTwitterPublisher(client))
	r.Register(NewLinkedInPublisher(client))
	r.Register(NewTikTokPublisher(client))
	return r
}

func (r *Registry) Register(p Publisher) {
	r.publishers[p.Platform()] = p
}

func (r *Registry) Supported(platform string) bool {
	_, ok := r.publishers[platform]
	return ok
}

// Publish dispatches to the platform's publisher. An unknown platform name
// yields a failed Result so one bad entry never aborts a fan-out.
func (r *Registry) Publish(ctx context.Context, platform string, p Payload) Result {
	pub, ok := r.publishers[platform]
	if !ok {
		return failure(platform,
			fmt.Sprintf("Unsupported platform: %s", platform),
			"platform not supported")
	}
	return pub.Publish(ctx, p)
}
