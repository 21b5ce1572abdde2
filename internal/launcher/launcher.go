// Package launcher starts the game alongside the replay watcher and offers
// a daemon mode that toggles watching as the game process comes and goes.
package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"starrec/internal/watcher"
)

// pollInterval is how often the game process list is checked.
const pollInterval = 5 * time.Second

// gameProcessNames are matched case-insensitively against the process list.
var gameProcessNames = []string{"starcraft.exe", "starcraft remastered.exe", "starcraft"}

// FindGamePath probes common install locations for the game executable.
// Returns "" when none exists.
func FindGamePath() string {
	if runtime.GOOS != "windows" {
		return ""
	}
	candidates := []string{
		`C:\Program Files (x86)\StarCraft\StarCraft.exe`,
		`C:\Program Files\StarCraft\StarCraft.exe`,
		`C:\Program Files (x86)\StarCraft Remastered\StarCraft.exe`,
		`D:\StarCraft\StarCraft.exe`,
		`D:\Games\StarCraft\StarCraft.exe`,
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			slog.Info("game executable found", "path", p)
			return p
		}
	}
	return ""
}

// IsGameRunning reports whether a game process is currently alive, using
// the platform's process listing command so no extra dependency is needed.
func IsGameRunning() bool {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("tasklist", "/FO", "CSV", "/NH")
	} else {
		cmd = exec.Command("ps", "-A", "-o", "comm=")
	}

	out, err := cmd.Output()
	if err != nil {
		slog.Debug("process list failed", "error", err)
		return false
	}

	listing := strings.ToLower(string(out))
	for _, name := range gameProcessNames {
		if strings.Contains(listing, name) {
			return true
		}
	}
	return false
}

// Launch starts the game executable and returns the running process.
func Launch(gamePath string) (*exec.Cmd, error) {
	if _, err := os.Stat(gamePath); err != nil {
		return nil, fmt.Errorf("game executable not found: %w", err)
	}

	slog.Info("launching game", "path", gamePath)
	cmd := exec.Command(gamePath)
	cmd.Dir = filepath.Dir(gamePath)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("launch game: %w", err)
	}
	return cmd, nil
}

// LaunchMode starts watching replayDir, launches the game, and keeps
// watching until the game process has fully exited (the launcher process
// may return early when the game goes through a launcher shim, so the
// process list is polled afterwards). The watcher is always stopped before
// returning.
func LaunchMode(ctx context.Context, gamePath, replayDir string, onReplay func(string), settle time.Duration) error {
	rw, err := watcher.NewReplayWatcher(replayDir, onReplay, watcher.Config{SettleDelay: settle})
	if err != nil {
		return err
	}
	if err := rw.Start(); err != nil {
		return err
	}
	defer rw.Stop()

	cmd, err := Launch(gamePath)
	if err != nil {
		return err
	}

	waitDone := make(chan error, 1)
	go func() { waitDone <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-waitDone:
	}
	slog.Info("launcher process exited, polling for game process")

	for IsGameRunning() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}

	slog.Info("game exited")
	return nil
}

// DaemonMode polls for the game process and runs a replay watcher only
// while the game is alive. onStart and onStop, when non-nil, fire on each
// transition. Returns when ctx is cancelled.
func DaemonMode(ctx context.Context, replayDir string, onReplay func(string), onStart, onStop func(), settle time.Duration) error {
	slog.Info("daemon mode started", "replay_dir", replayDir)

	var rw *watcher.ReplayWatcher
	defer func() {
		if rw != nil {
			rw.Stop()
		}
	}()

	wasRunning := false
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		running := IsGameRunning()

		switch {
		case running && !wasRunning:
			slog.Info("game process detected, starting replay watcher")
			w, err := watcher.NewReplayWatcher(replayDir, onReplay, watcher.Config{SettleDelay: settle})
			if err != nil {
				return err
			}
			if err := w.Start(); err != nil {
				return err
			}
			rw = w
			if onStart != nil {
				onStart()
			}

		case !running && wasRunning:
			slog.Info("game process gone, stopping replay watcher")
			if rw != nil {
				rw.Stop()
				rw = nil
			}
			if onStop != nil {
				onStop()
			}
		}

		wasRunning = running

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
