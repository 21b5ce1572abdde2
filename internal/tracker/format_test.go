package tracker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"starrec/internal/store"
)

func TestFormatRecord(t *testing.T) {
	t.Parallel()

	rec := &store.Record{
		Opponent: "Bob",
		Wins:     3,
		Losses:   2,
		Total:    5,
		Games: []store.VersusGame{
			{Game: store.Game{PlayedAt: "2026-02-05 10:00:00", MapName: "Fighting Spirit", DurationText: "12:34"}, VsResult: store.ResultLoss},
			{Game: store.Game{MapTileset: "Jungle", DurationText: "08:01"}, VsResult: store.ResultWin},
		},
	}

	out := FormatRecord(rec)
	require.Contains(t, out, "vs Bob: 3W 2L (5 games)")
	require.Contains(t, out, "2026-02-05 | loss | Fighting Spirit | 12:34")
	// Missing date falls back to "?", missing map name to the tileset.
	require.Contains(t, out, "? | win  | Jungle | 08:01")
}

func TestFormatRecordCapsRecentGames(t *testing.T) {
	t.Parallel()

	rec := &store.Record{Opponent: "Bob", Wins: 8, Losses: 0, Total: 8}
	for i := 0; i < 8; i++ {
		rec.Games = append(rec.Games, store.VersusGame{
			Game:     store.Game{PlayedAt: "2026-02-01 10:00:00", MapName: "Lost Temple"},
			VsResult: store.ResultWin,
		})
	}

	out := FormatRecord(rec)
	require.Equal(t, 1+recentGamesShown, len(strings.Split(out, "\n")))
}

func TestFormatRecordNoGames(t *testing.T) {
	t.Parallel()

	out := FormatRecord(&store.Record{Opponent: "Bob"})
	require.Equal(t, "Bob: no games on record", out)

	short := FormatRecordShort(&store.Record{Opponent: "Bob"})
	require.Equal(t, "Bob: first encounter", short)
}

func TestFormatRecordShort(t *testing.T) {
	t.Parallel()

	rec := &store.Record{
		Opponent: "Bob",
		Wins:     3,
		Losses:   2,
		Total:    5,
		Games: []store.VersusGame{
			{Game: store.Game{PlayedAt: "2026-02-05 10:00:00"}, VsResult: store.ResultLoss},
		},
	}
	require.Equal(t, "vs Bob: 3W 2L (last: 2026-02-05)", FormatRecordShort(rec))
}

func TestFormatSummaries(t *testing.T) {
	t.Parallel()

	out := FormatSummaries([]store.OpponentSummary{
		{Opponent: "Bob", Wins: 3, Losses: 2, Total: 5, LastPlayed: "2026-02-05 10:00:00"},
		{Opponent: "Carol", Wins: 1, Losses: 0, Total: 1, LastPlayed: "2026-02-06 10:00:00"},
	})
	require.Contains(t, out, "Opponent")
	require.Contains(t, out, "Bob")
	require.Contains(t, out, "2026-02-05")
	require.Contains(t, out, "Carol")

	require.Equal(t, "no games on record", FormatSummaries(nil))
}
