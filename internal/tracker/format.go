package tracker

import (
	"fmt"
	"strings"

	"starrec/internal/store"
)

// recentGamesShown caps how many recent games FormatRecord lists.
const recentGamesShown = 5

// FormatRecord renders a multi-line, human-readable record: a summary line
// followed by the most recent games.
func FormatRecord(rec *store.Record) string {
	if rec.Total == 0 {
		return fmt.Sprintf("%s: no games on record", rec.Opponent)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "vs %s: %dW %dL (%d games)", rec.Opponent, rec.Wins, rec.Losses, rec.Total)

	for i, g := range rec.Games {
		if i >= recentGamesShown {
			break
		}
		date := "?"
		if g.PlayedAt != "" {
			date = shortDate(g.PlayedAt)
		}
		mapName := g.MapName
		if mapName == "" {
			mapName = g.MapTileset
		}
		if mapName == "" {
			mapName = "?"
		}
		fmt.Fprintf(&b, "\n  %s | %-4s | %s | %s", date, g.VsResult, mapName, g.DurationText)
	}
	return b.String()
}

// FormatRecordShort renders the one-line form used for notifications.
func FormatRecordShort(rec *store.Record) string {
	if rec.Total == 0 {
		return fmt.Sprintf("%s: first encounter", rec.Opponent)
	}

	lastPlayed := ""
	if len(rec.Games) > 0 && rec.Games[0].PlayedAt != "" {
		lastPlayed = fmt.Sprintf(" (last: %s)", shortDate(rec.Games[0].PlayedAt))
	}
	return fmt.Sprintf("vs %s: %dW %dL%s", rec.Opponent, rec.Wins, rec.Losses, lastPlayed)
}

// FormatSummaries renders the all-opponents overview as an aligned table.
func FormatSummaries(summaries []store.OpponentSummary) string {
	if len(summaries) == 0 {
		return "no games on record"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-20s %4s %4s %6s  %-10s\n", "Opponent", "W", "L", "Total", "Last game")
	b.WriteString(strings.Repeat("-", 55))
	for _, s := range summaries {
		fmt.Fprintf(&b, "\n%-20s %4d %4d %6d  %-10s",
			s.Opponent, s.Wins, s.Losses, s.Total, shortDate(s.LastPlayed))
	}
	return b.String()
}

// shortDate keeps the date part of a "YYYY-MM-DD HH:MM:SS" timestamp.
func shortDate(playedAt string) string {
	if len(playedAt) >= 10 {
		return playedAt[:10]
	}
	return playedAt
}
