// Package notification sends desktop notifications through beeep
// (D-Bus or notify-send on Linux, AppleScript on macOS, WinRT on Windows).
package notification

import (
	"github.com/gen2brain/beeep"
	"github.com/rivo/uniseg"

	pErrors "github.com/zhubert/noro/internal/errors"
	"github.com/zhubert/noro/internal/logger"
)

// AppName is the title used for every notification.
const AppName = "Noro AI Chat"

// previewGraphemes caps the reply text shown in a notification body.
const previewGraphemes = 80

var notify = beeep.Notify

// SetNotifier replaces the function used to deliver notifications (tests).
func SetNotifier(fn func(title, message string, icon any) error) {
	notify = fn
}

// ResetNotifier restores beeep.Notify.
func ResetNotifier() {
	notify = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	log := logger.WithComponent("notification")
	log.Debug("sending notification", "title", title, "len", len(message))
	// Empty icon lets beeep pick the platform default
	if err := notify(title, message, ""); err != nil {
		log.Warn("notification failed", "error", err)
		return pErrors.NotificationFailed(title, err)
	}
	return nil
}

// ReplyArrived announces a bot reply, showing the start of its text.
func ReplyArrived(text string) error {
	return Send(AppName, Preview(text, previewGraphemes))
}

// Preview shortens text to at most n grapheme clusters, adding an ellipsis
// when something was cut. Clusters are never split.
func Preview(text string, n int) string {
	if n <= 0 {
		return ""
	}
	if uniseg.GraphemeClusterCount(text) <= n {
		return text
	}

	var out []byte
	count := 0
	state := -1
	rest := text
	for len(rest) > 0 && count < n-1 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		out = append(out, cluster...)
		count++
	}
	return string(out) + "…"
}
