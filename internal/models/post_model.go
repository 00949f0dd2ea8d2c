package models

import (
	"time"

	"github.com/lib/pq"
)

type Post struct {
	ID            string         `db:"id" json:"id"`
	UserID        string         `db:"user_id" json:"user_id"`
	Caption       string         `db:"caption" json:"caption"`
	Media         string         `db:"media" json:"media,omitempty"`
	Platforms     pq.StringArray `db:"platforms" json:"platforms"`
	Status        Status         `db:"status" json:"status"`
	ScheduledDate *time.Time     `db:"scheduled_date" json:"scheduled_date,omitempty"`
	ClaimedAt     *time.Time     `db:"claimed_at" json:"-"`
	ErrorMessage  string         `db:"error_message" json:"error_message,omitempty"`
	Analytics     Analytics      `json:"analytics"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

type Analytics struct {
	Reach       int64 `db:"reach" json:"reach"`
	Likes       int64 `db:"likes" json:"likes"`
	Comments    int64 `db:"comments" json:"comments"`
	Impressions int64 `db:"impressions" json:"impressions"`
}

// Add sums another attempt's metrics into a, component-wise.
func (a *Analytics) Add(other Analytics) {
	a.Reach += other.Reach
	a.Likes += other.Likes
	a.Comments += other.Comments
	a.Impressions += other.Impressions
}
