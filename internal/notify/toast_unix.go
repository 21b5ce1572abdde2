//go:build !windows

package notify

import (
	"fmt"
	"os/exec"
)

// showToast uses notify-send where a desktop environment provides it.
func showToast(title, message string) error {
	path, err := exec.LookPath("notify-send")
	if err != nil {
		return fmt.Errorf("notify-send not available: %w", err)
	}
	return exec.Command(path, "--app-name=StarRecord", title, message).Run()
}
