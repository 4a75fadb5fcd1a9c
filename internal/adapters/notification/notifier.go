// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/kezou/pacer/internal/config"
	"github.com/kezou/pacer/internal/domain"
)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg *config.NotificationConfig
}

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if n.cfg == nil || !n.cfg.Enabled {
		return nil
	}

	return beeep.Notify(title, message, "")
}

// NotifyPhaseComplete displays a notification when a focus phase runs out.
func (n *Notifier) NotifyPhaseComplete(finished domain.FocusPhase) error {
	if finished.IsBreak() {
		return n.Notify("Break over", "Back to the words. Reading resumes now.")
	}

	title := fmt.Sprintf("%s complete", domain.PhaseLabel(finished))
	return n.Notify(title, "Playback paused. Time for a break.")
}

// NotifySleepFired displays a notification when the sleep timer stops playback.
func (n *Notifier) NotifySleepFired() error {
	return n.Notify("Sleep timer", "Playback stopped. Your position is saved.")
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}
