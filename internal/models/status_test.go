package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []Status{StatusDraft, StatusScheduled, StatusPublished, StatusFailed, StatusArchived}

var allowed = map[Status][]Status{
	StatusDraft:     {StatusPublished, StatusFailed, StatusScheduled},
	StatusScheduled: {StatusPublished, StatusFailed},
	StatusPublished: {StatusArchived},
	StatusFailed:    {StatusDraft, StatusArchived},
	StatusArchived:  {},
}

func isAllowed(from, to Status) bool {
	for _, t := range allowed[from] {
		if t == to {
			return true
		}
	}
	return false
}

func TestTransitionTable(t *testing.T) {
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			t.Run(string(from)+"_to_"+string(to), func(t *testing.T) {
				post := Post{ID: "p1", Status: from}
				if to == StatusFailed {
					post.ErrorMessage = "something broke"
				}

				err := post.Transition(to)

				if isAllowed(from, to) {
					require.NoError(t, err)
					assert.Equal(t, to, post.Status)
				} else {
					require.Error(t, err)
					var invalid *InvalidTransitionError
					require.True(t, errors.As(err, &invalid))
					assert.Equal(t, from, invalid.From)
					assert.Equal(t, to, invalid.To)
					assert.Equal(t, from, post.Status, "status must be unchanged on rejected transition")
				}
			})
		}
	}
}

func TestTransitionToFailedRequiresMessage(t *testing.T) {
	post := Post{ID: "p1", Status: StatusScheduled}

	err := post.Transition(StatusFailed)

	require.Error(t, err)
	assert.Equal(t, StatusScheduled, post.Status)
}

func TestFail(t *testing.T) {
	post := Post{ID: "p1", Status: StatusScheduled}

	require.NoError(t, post.Fail("twitter: rate limited"))
	assert.Equal(t, StatusFailed, post.Status)
	assert.Equal(t, "twitter: rate limited", post.ErrorMessage)
}

func TestFailRejectsEmptyMessage(t *testing.T) {
	post := Post{ID: "p1", Status: StatusDraft}

	require.Error(t, post.Fail(""))
	assert.Equal(t, StatusDraft, post.Status)
}

func TestFailFromTerminalStatus(t *testing.T) {
	post := Post{ID: "p1", Status: StatusArchived}

	err := post.Fail("boom")

	var invalid *InvalidTransitionError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, StatusArchived, post.Status)
}

func TestAnalyticsAdd(t *testing.T) {
	total := Analytics{Reach: 100, Likes: 10}
	total.Add(Analytics{Reach: 50, Comments: 3, Impressions: 7})

	assert.Equal(t, Analytics{Reach: 150, Likes: 10, Comments: 3, Impressions: 7}, total)
}
