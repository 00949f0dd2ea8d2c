package models

import "time"

const (
	BrowserPuppeteer  = "puppeteer"
	BrowserPlaywright = "playwright"
)

type AutomationSettings struct {
	UserID      string    `db:"user_id" json:"user_id"`
	IsEnabled   bool      `db:"is_enabled" json:"is_enabled"`
	BrowserType string    `db:"browser_type" json:"browser_type"`
	Headless    bool      `db:"headless" json:"headless"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
