package models

import "fmt"

type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusPublished Status = "published"
	StatusFailed    Status = "failed"
	StatusArchived  Status = "archived"
)

// transitions is the full set of legal status moves. Archived is terminal.
var transitions = map[Status][]Status{
	StatusDraft:     {StatusPublished, StatusFailed, StatusScheduled},
	StatusScheduled: {StatusPublished, StatusFailed},
	StatusPublished: {StatusArchived},
	StatusFailed:    {StatusDraft, StatusArchived},
	StatusArchived:  {},
}

type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

func (s Status) canMoveTo(target Status) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Transition moves the post to target if the transition table allows it.
// The post is left untouched on error. Moving to failed must go through
// Fail so an error message always accompanies the status.
func (p *Post) Transition(target Status) error {
	if !p.Status.canMoveTo(target) {
		return &InvalidTransitionError{From: p.Status, To: target}
	}
	if target == StatusFailed && p.ErrorMessage == "" {
		return fmt.Errorf("transition to %s requires an error message", StatusFailed)
	}
	p.Status = target
	return nil
}

// Fail marks the post failed with the given explanation.
func (p *Post) Fail(message string) error {
	if message == "" {
		return fmt.Errorf("transition to %s requires an error message", StatusFailed)
	}
	if !p.Status.canMoveTo(StatusFailed) {
		return &InvalidTransitionError{From: p.Status, To: StatusFailed}
	}
	p.Status = StatusFailed
	p.ErrorMessage = message
	return nil
}
