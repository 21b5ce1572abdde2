//go:build windows

package notify

import (
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const toastTimeout = 10 * time.Second

// showToast displays a Windows toast via PowerShell and the WinRT toast
// API, so no extra runtime dependency is needed.
func showToast(title, message string) error {
	script := fmt.Sprintf(`
[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom, ContentType = WindowsRuntime] | Out-Null

$template = @"
<toast duration="long">
    <visual>
        <binding template="ToastGeneric">
            <text>%s</text>
            <text>%s</text>
        </binding>
    </visual>
</toast>
"@

$xml = New-Object Windows.Data.Xml.Dom.XmlDocument
$xml.LoadXml($template)
$toast = [Windows.UI.Notifications.ToastNotification]::new($xml)
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier("StarRecord").Show($toast)
`, escapeXML(title), escapeXML(message))

	cmd := exec.Command("powershell", "-NoProfile", "-Command", script)
	done := make(chan error, 1)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		return err
	case <-time.After(toastTimeout):
		_ = cmd.Process.Kill()
		return fmt.Errorf("toast timed out after %s", toastTimeout)
	}
}

func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
