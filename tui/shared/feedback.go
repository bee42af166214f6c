package shared

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FeedbackLevel controls styling and auto-clear duration.
type FeedbackLevel int

const (
	FeedbackInfo    FeedbackLevel = iota // transient, auto-clears 4s
	FeedbackSuccess                      // green styled, auto-clears 4s
	FeedbackWarning                      // yellow, auto-clears 8s
)

// FeedbackTTL returns the auto-clear duration for a given level.
func FeedbackTTL(level FeedbackLevel) time.Duration {
	switch level {
	case FeedbackWarning:
		return 8 * time.Second
	default:
		return 4 * time.Second
	}
}

// Feedback represents a user-facing status line message.
type Feedback struct {
	Level     FeedbackLevel
	Message   string
	Timestamp time.Time
}

// FeedbackMsg delivers a feedback message to the app.
type FeedbackMsg struct {
	Feedback Feedback
}

// ClearFeedbackMsg clears the feedback posted at Timestamp, if it is still
// the current one.
type ClearFeedbackMsg struct {
	Timestamp time.Time
}

// Notify posts feedback and schedules its removal.
func Notify(level FeedbackLevel, message string) tea.Cmd {
	fb := Feedback{Level: level, Message: message, Timestamp: time.Now()}
	return tea.Batch(
		func() tea.Msg { return FeedbackMsg{Feedback: fb} },
		tea.Tick(FeedbackTTL(level), func(time.Time) tea.Msg {
			return ClearFeedbackMsg{Timestamp: fb.Timestamp}
		}),
	)
}
