// Package notify shows short record notifications to the user: an OS toast
// where available, otherwise a console banner.
package notify

import (
	"fmt"
	"log/slog"
)

// Notify shows a notification with the given title and message. Failures
// fall back to printing a console banner; Notify itself never errors.
func Notify(title, message string) {
	if err := showToast(title, message); err != nil {
		slog.Debug("toast notification failed, falling back to console", "error", err)
		printBanner(title, message)
	}
}

func printBanner(title, message string) {
	line := "=================================================="
	fmt.Printf("\n%s\n  %s\n  %s\n%s\n", line, title, message, line)
}
