package timer

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// NotificationSink announces and clears the running-timer notification.
// Both operations are best effort: a failure is logged by the caller and
// never blocks a state transition.
type NotificationSink interface {
	Announce(task string) error
	Clear() error
}

// NopSink is the default sink; it does nothing. It keeps the state machine
// testable without any platform notification facility.
type NopSink struct{}

// Announce implements NotificationSink.
func (NopSink) Announce(string) error { return nil }

// Clear implements NotificationSink.
func (NopSink) Clear() error { return nil }

// DesktopSink posts a system notification when a timer starts.
type DesktopSink struct {
	AppName string
}

// Announce posts the running-timer notification.
func (s DesktopSink) Announce(task string) error {
	return beeep.Notify(s.AppName, fmt.Sprintf("Timer running for '%s'", task), "")
}

// Clear is a no-op: desktop toasts expire on their own and the platforms
// beeep covers expose no dismissal handle.
func (s DesktopSink) Clear() error { return nil }
