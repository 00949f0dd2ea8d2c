package publisher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosspost/internal/models"
)

func TestRegistryUnsupportedPlatform(t *testing.T) {
	registry := NewRegistry(NewAutomationClient("http://localhost:0"))

	res := registry.Publish(context.Background(), "myspace", Payload{Caption: "hi"})

	assert.False(t, res.Success)
	assert.Equal(t, "myspace", res.Platform)
	assert.Equal(t, "platform not supported", res.Err)
	assert.Equal(t, "Unsupported platform: myspace", res.Message)
}

func TestRegistrySupported(t *testing.T) {
	registry := NewRegistry(NewAutomationClient("http://localhost:0"))

	for _, platform := range []string{PlatformInstagram, PlatformFacebook, PlatformTwitter, PlatformLinkedIn, PlatformTikTok} {
		assert.True(t, registry.Supported(platform), platform)
	}
	assert.False(t, registry.Supported("myspace"))
}

func TestTwitterCaptionLimit(t *testing.T) {
	pub := NewTwitterPublisher(nil)

	res := pub.Publish(context.Background(), Payload{Caption: strings.Repeat("x", 281)})

	assert.False(t, res.Success)
	assert.Contains(t, res.Err, "exceeds 280 characters")
}

func TestInstagramRequiresMedia(t *testing.T) {
	pub := NewInstagramPublisher(nil)

	res := pub.Publish(context.Background(), Payload{Caption: "no media"})

	assert.False(t, res.Success)
	assert.Equal(t, "instagram requires media", res.Err)
}

func TestAutomationClientSuccess(t *testing.T) {
	var gotPath string
	var gotPayload Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		json.NewEncoder(w).Encode(automationResponse{
			Success:   true,
			Message:   "posted",
			Analytics: &models.Analytics{Reach: 100, Likes: 10},
		})
	}))
	defer srv.Close()

	client := NewAutomationClient(srv.URL)
	res := client.Post(context.Background(), PlatformFacebook, Payload{
		PostID:      "p1",
		Caption:     "hello",
		BrowserType: models.BrowserPuppeteer,
	})

	require.True(t, res.Success)
	assert.Equal(t, "/publish/facebook", gotPath)
	assert.Equal(t, "p1", gotPayload.PostID)
	assert.Equal(t, models.Analytics{Reach: 100, Likes: 10}, res.Analytics)
}

func TestAutomationClientMissingAnalyticsAreZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(automationResponse{Success: true, Message: "posted"})
	}))
	defer srv.Close()

	res := NewAutomationClient(srv.URL).Post(context.Background(), PlatformTwitter, Payload{Caption: "hi"})

	require.True(t, res.Success)
	assert.Equal(t, models.Analytics{}, res.Analytics)
}

func TestAutomationClientFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(automationResponse{Success: false, Error: "rate limited"})
	}))
	defer srv.Close()

	res := NewAutomationClient(srv.URL).Post(context.Background(), PlatformTwitter, Payload{Caption: "hi"})

	assert.False(t, res.Success)
	assert.Equal(t, "rate limited", res.Err)
}

func TestAutomationClientUnreachable(t *testing.T) {
	res := NewAutomationClient("http://127.0.0.1:1").Post(context.Background(), PlatformLinkedIn, Payload{Caption: "hi"})

	assert.False(t, res.Success)
	assert.Equal(t, "automation service unreachable", res.Message)
	assert.NotEmpty(t, res.Err)
}
