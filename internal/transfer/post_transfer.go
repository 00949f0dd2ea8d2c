package transfer

type PostCreation struct {
	Caption       string   `json:"caption"`
	Platforms     []string `json:"platforms"`
	ScheduledDate string   `json:"scheduled_date,omitempty"`
}

type SettingsUpdate struct {
	IsEnabled   bool   `json:"is_enabled"`
	BrowserType string `json:"browser_type"`
	Headless    bool   `json:"headless"`
}
