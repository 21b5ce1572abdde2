package tracker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"starrec/internal/replay"
	"starrec/internal/store"
)

// fakeDecoder serves canned summaries keyed by replay file base name.
type fakeDecoder struct {
	summaries map[string]*replay.Summary
	calls     int
}

func (d *fakeDecoder) Decode(ctx context.Context, path string) (*replay.Summary, error) {
	d.calls++
	sum, ok := d.summaries[filepath.Base(path)]
	if !ok {
		return nil, errors.New("corrupt replay")
	}
	return sum, nil
}

func newTestService(t *testing.T, dec replay.Decoder, seedNames ...string) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "starrec.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return NewService(st, dec, seedNames), st
}

func summaryAliceVsBob() *replay.Summary {
	return &replay.Summary{
		Winner:          "Alice",
		Loser:           "Bob",
		DurationSeconds: 754,
		DurationText:    "12:34",
		GameType:        "Melee",
		MapName:         "Fighting Spirit",
		MapTileset:      "Jungle",
		Players: []replay.Participant{
			{ID: 0, Name: "Alice", Race: "Terran"},
			{ID: 1, Name: "Bob", Race: "Zerg"},
		},
		Stats: map[int]replay.PlayerStats{
			0: {APM: 185.2},
			1: {APM: 142.7},
		},
		Chat: []replay.ChatEntry{
			{Player: "Alice", Message: "gl hf", GameTime: "0:03", Frame: 72},
			{Player: "Bob", Message: "gg", GameTime: "12:30", Frame: 18000},
		},
	}
}

func TestIngestBuildsAndPersistsGame(t *testing.T) {
	t.Parallel()

	file := "2026-02-07@020624_Alice_Bob.rep"
	dec := &fakeDecoder{summaries: map[string]*replay.Summary{file: summaryAliceVsBob()}}
	svc, st := newTestService(t, dec, "Alice")
	ctx := context.Background()

	g, err := svc.Ingest(ctx, filepath.Join("/replays", file))
	require.NoError(t, err)
	require.NotNil(t, g)

	require.Equal(t, file, g.ReplayFile)
	require.Equal(t, "2026-02-07 02:06:24", g.PlayedAt)
	require.Equal(t, "Terran", g.WinnerRace)
	require.Equal(t, "Zerg", g.LoserRace)
	require.Equal(t, store.ResultWin, g.MyResult)

	np, err := st.CountGameParticipants(ctx, g.ID)
	require.NoError(t, err)
	require.Equal(t, 2, np)
	nc, err := st.CountChatMessages(ctx, g.ID)
	require.NoError(t, err)
	require.Equal(t, 2, nc)
}

func TestIngestRoundTripThroughRecordQuery(t *testing.T) {
	t.Parallel()

	file := "2026-02-07@020624_Alice_Bob.rep"
	dec := &fakeDecoder{summaries: map[string]*replay.Summary{file: summaryAliceVsBob()}}
	svc, st := newTestService(t, dec)
	ctx := context.Background()

	_, err := st.ResolveOrCreatePlayer(ctx, "Alice")
	require.NoError(t, err)
	require.NoError(t, st.SetLocalUser(ctx, "Alice", true))

	_, err = svc.Ingest(ctx, file)
	require.NoError(t, err)

	rec, err := svc.Record(ctx, "Bob")
	require.NoError(t, err)
	require.Equal(t, 1, rec.Wins)
	require.Len(t, rec.Games, 1)

	got := rec.Games[0]
	require.Equal(t, "Fighting Spirit", got.MapName)
	require.Equal(t, "12:34", got.DurationText)
	require.Equal(t, store.ResultWin, got.MyResult)
	require.Equal(t, store.ResultWin, got.VsResult)
}

func TestIngestSkipsAlreadyStoredReplay(t *testing.T) {
	t.Parallel()

	file := "2026-02-07@020624_Alice_Bob.rep"
	dec := &fakeDecoder{summaries: map[string]*replay.Summary{file: summaryAliceVsBob()}}
	svc, _ := newTestService(t, dec, "Alice")
	ctx := context.Background()

	g, err := svc.Ingest(ctx, file)
	require.NoError(t, err)
	require.NotNil(t, g)

	again, err := svc.Ingest(ctx, file)
	require.NoError(t, err)
	require.Nil(t, again)
	require.Equal(t, 1, dec.calls)
}

func TestIngestSkipsDecodeFailure(t *testing.T) {
	t.Parallel()

	dec := &fakeDecoder{summaries: map[string]*replay.Summary{}}
	svc, st := newTestService(t, dec)
	ctx := context.Background()

	g, err := svc.Ingest(ctx, "broken.rep")
	require.NoError(t, err)
	require.Nil(t, g)

	exists, err := st.GameExists(ctx, "broken.rep")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestIngestFallsBackToDecoderTimestamp(t *testing.T) {
	t.Parallel()

	sum := summaryAliceVsBob()
	sum.PlayedAt = "2026-02-08 19:30:00"
	dec := &fakeDecoder{summaries: map[string]*replay.Summary{"nodate.rep": sum}}
	svc, _ := newTestService(t, dec)

	g, err := svc.Ingest(context.Background(), "nodate.rep")
	require.NoError(t, err)
	require.Equal(t, "2026-02-08 19:30:00", g.PlayedAt)
}

func TestIngestSelfPlayClassifiedAsWin(t *testing.T) {
	t.Parallel()

	sum := summaryAliceVsBob()
	dec := &fakeDecoder{summaries: map[string]*replay.Summary{"self.rep": sum}}
	// Both names seeded as the local user.
	svc, _ := newTestService(t, dec, "Alice", "Bob")

	g, err := svc.Ingest(context.Background(), "self.rep")
	require.NoError(t, err)
	require.Equal(t, store.ResultWin, g.MyResult)
}

func TestImportFolder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "season2")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	summaries := make(map[string]*replay.Summary)
	for i, path := range []string{
		filepath.Join(dir, "2026-02-01@100000_g1.rep"),
		filepath.Join(dir, "2026-02-02@100000_g2.rep"),
		filepath.Join(sub, "2026-02-03@100000_g3.rep"),
	} {
		require.NoError(t, os.WriteFile(path, []byte("replay"), 0o600))
		sum := summaryAliceVsBob()
		sum.Loser = fmt.Sprintf("Bob%d", i)
		sum.Players[1].Name = sum.Loser
		summaries[filepath.Base(path)] = sum
	}
	// A corrupt replay and a non-replay file must not stop the batch.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "corrupt.rep"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	dec := &fakeDecoder{summaries: summaries}
	svc, _ := newTestService(t, dec, "Alice")
	ctx := context.Background()

	count, err := svc.ImportFolder(ctx, dir)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	// Re-import: everything already stored, nothing counted.
	count, err = svc.ImportFolder(ctx, dir)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestImportFolderEmpty(t *testing.T) {
	t.Parallel()

	dec := &fakeDecoder{}
	svc, _ := newTestService(t, dec)

	count, err := svc.ImportFolder(context.Background(), t.TempDir())
	require.NoError(t, err)
	require.Zero(t, count)
	require.Zero(t, dec.calls)
}

func TestMyNamesMergesSeedAndStore(t *testing.T) {
	t.Parallel()

	svc, st := newTestService(t, &fakeDecoder{}, "SeedName")
	ctx := context.Background()

	_, err := st.ResolveOrCreatePlayer(ctx, "StoredName")
	require.NoError(t, err)
	require.NoError(t, st.SetLocalUser(ctx, "StoredName", true))

	names, err := svc.MyNames(ctx)
	require.NoError(t, err)
	require.True(t, names["SeedName"])
	require.True(t, names["StoredName"])
	require.Len(t, names, 2)
}

func TestExtractPlayedAt(t *testing.T) {
	t.Parallel()

	cases := []struct {
		filename string
		want     string
	}{
		{"2026-02-07@020624_Alice_Bob.rep", "2026-02-07 02:06:24"},
		{"prefix_2026-12-31@235959.rep", "2026-12-31 23:59:59"},
		{"no_timestamp_here.rep", ""},
		{"2026-02-07@02062.rep", ""}, // truncated time token
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ExtractPlayedAt(tc.filename), "filename %q", tc.filename)
	}
}
