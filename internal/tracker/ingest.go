package tracker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"starrec/internal/replay"
	"starrec/internal/store"
)

// ReplayExt is the file extension of replay files, compared
// case-insensitively.
const ReplayExt = ".rep"

// datePattern matches the date-time token replay filenames embed,
// e.g. "2026-02-07@020624".
var datePattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})@(\d{6})`)

// Ingest decodes one replay file and persists it as a game record.
// It returns nil, nil both when the file was already ingested and when
// decoding failed: neither is fatal, so a batch import keeps going.
// Storage failures are returned to the caller.
func (s *Service) Ingest(ctx context.Context, path string) (*store.Game, error) {
	replayFile := filepath.Base(path)

	exists, err := s.store.GameExists(ctx, replayFile)
	if err != nil {
		return nil, err
	}
	if exists {
		slog.Debug("replay already ingested", "file", replayFile)
		return nil, nil
	}

	sum, err := s.dec.Decode(ctx, path)
	if err != nil {
		if errors.Is(err, replay.ErrNotMatch) {
			slog.Debug("replay is not a completed match", "file", replayFile)
		} else {
			slog.Warn("replay decode failed", "file", replayFile, "error", err)
		}
		return nil, nil
	}

	myNames, err := s.MyNames(ctx)
	if err != nil {
		return nil, err
	}

	g := buildGame(sum, replayFile, myNames)

	participants := make([]store.Participant, 0, len(sum.Players))
	for _, p := range sum.Players {
		participants = append(participants, store.Participant{
			PlayerName: p.Name,
			Race:       p.Race,
			IsWinner:   p.Name == sum.Winner,
			APM:        sum.APMOf(p.ID),
		})
	}

	chat := make([]store.ChatMessage, 0, len(sum.Chat))
	for _, m := range sum.Chat {
		chat = append(chat, store.ChatMessage{
			PlayerName: m.Player,
			Message:    m.Message,
			GameTime:   m.GameTime,
			Frame:      m.Frame,
		})
	}

	gameID, err := s.store.SaveGame(ctx, g, participants, chat)
	if err != nil {
		return nil, fmt.Errorf("save game %s: %w", replayFile, err)
	}
	g.ID = gameID

	slog.Info("replay stored", "file", replayFile, "winner", g.WinnerName, "loser", g.LoserName)
	return g, nil
}

// ImportFolder ingests every replay file under dir (recursively, in
// lexicographic path order) and returns how many games were newly stored.
// Individual failures are logged and do not stop the batch.
func (s *Service) ImportFolder(ctx context.Context, dir string) (int, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsReplayFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan replay folder %s: %w", dir, err)
	}

	slog.Info("replay files found", "dir", dir, "count", len(paths))

	count := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		g, err := s.Ingest(ctx, path)
		if err != nil {
			slog.Warn("replay import failed", "file", filepath.Base(path), "error", err)
			continue
		}
		if g != nil {
			count++
		}
	}

	slog.Info("import finished", "dir", dir, "new", count)
	return count, nil
}

// IsReplayFile reports whether path has the replay file extension.
func IsReplayFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ReplayExt)
}

func buildGame(sum *replay.Summary, replayFile string, myNames map[string]bool) *store.Game {
	playedAt := ExtractPlayedAt(replayFile)
	if playedAt == "" {
		playedAt = sum.PlayedAt
	}

	myResult := store.ResultUnknown
	if len(myNames) > 0 {
		// Winner checked first: a self-play game counts as a win.
		switch {
		case myNames[sum.Winner]:
			myResult = store.ResultWin
		case myNames[sum.Loser]:
			myResult = store.ResultLoss
		}
	}

	return &store.Game{
		ReplayFile:      replayFile,
		PlayedAt:        playedAt,
		DurationSeconds: sum.DurationSeconds,
		DurationText:    sum.DurationText,
		MapName:         sum.MapName,
		MapTileset:      sum.MapTileset,
		GameType:        sum.GameType,
		WinnerName:      sum.Winner,
		LoserName:       sum.Loser,
		WinnerRace:      sum.RaceOf(sum.Winner),
		LoserRace:       sum.RaceOf(sum.Loser),
		MyResult:        myResult,
	}
}

// ExtractPlayedAt derives the play timestamp from the filename's embedded
// "YYYY-MM-DD@HHMMSS" token, formatted as "YYYY-MM-DD HH:MM:SS".
// Returns "" when the filename carries no such token.
func ExtractPlayedAt(filename string) string {
	m := datePattern.FindStringSubmatch(filename)
	if m == nil {
		return ""
	}
	t := m[2]
	return fmt.Sprintf("%s %s:%s:%s", m[1], t[0:2], t[2:4], t[4:6])
}
