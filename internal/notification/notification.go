// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/parleychat/parley/internal/logger"
)

// notify is the delivery function, swappable for tests.
var notify = beeep.Notify

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	logger.Log("Notification: Sending notification - title=%q, message=%q", title, message)
	// Use empty string for icon - beeep handles platform defaults
	err := notify(title, message, "")
	if err != nil {
		logger.Log("Notification: Failed to send notification: %v", err)
	}
	return err
}

// NewMessage sends a notification for a message arriving in a
// conversation the user is not currently viewing.
func NewMessage(conversationName, preview string) error {
	return Send(conversationName, preview)
}
