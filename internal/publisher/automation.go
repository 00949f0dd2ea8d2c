package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"crosspost/internal/models"
)

// AutomationClient talks to the browser-automation sidecar that holds the
// platform sessions and performs the actual posting. Each platform exposes
// one endpoint; the sidecar's internals (navigation, login, DOM work) are
// opaque here.
type AutomationClient struct {
	baseURL string
	client  *http.Client
}

func NewAutomationClient(baseURL string) *AutomationClient {
	return &AutomationClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 2 * time.Minute},
	}
}

type automationResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Error     string            `json:"error"`
	Analytics *models.Analytics `json:"analytics"`
}

func (c *AutomationClient) Post(ctx context.Context, platform string, p Payload) Result {
	body, err := json.Marshal(p)
	if err != nil {
		slog.Info(err.Error())
		return failure(platform, "failed to encode publish request", err.Error())
	}

	url := fmt.Sprintf("%s/publish/%s", c.baseURL, platform)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		slog.Info(err.Error())
		return failure(platform, "failed to build publish request", err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return failure(platform, "automation service unreachable", err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Info(err.Error())
		return failure(platform, "failed to read automation response", err.Error())
	}

	var ar automationResponse
	if err := json.Unmarshal(respBody, &ar); err != nil {
		slog.Info(err.Error())
		return failure(platform, "invalid automation response", err.Error())
	}

	if resp.StatusCode != http.StatusOK || !ar.Success {
		errMsg := ar.Error
		if errMsg == "" {
			errMsg = fmt.Sprintf("automation service returned status %d", resp.StatusCode)
		}
		return failure(platform, ar.Message, errMsg)
	}

	result := Result{
		Platform: platform,
		Success:  true,
		Message:  ar.Message,
	}
	// No analytics in the response means unknown, reported as zeros.
	if ar.Analytics != nil {
		result.Analytics = *ar.Analytics
	}
	return result
}
