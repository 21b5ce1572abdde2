package tracker

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"starrec/internal/store"
)

func seedAppearances(t *testing.T, st *store.Store, wins map[string]int) {
	t.Helper()
	ctx := context.Background()
	i := 0
	for name, n := range wins {
		for j := 0; j < n; j++ {
			i++
			_, err := st.InsertGame(ctx, &store.Game{
				ReplayFile: fmt.Sprintf("seed_%s_%d.rep", name, j),
				WinnerName: name,
				LoserName:  fmt.Sprintf("filler%d", i*100+j),
			})
			require.NoError(t, err)
		}
	}
}

func TestDetectMyNamePicksDominantName(t *testing.T) {
	t.Parallel()

	svc, st := newTestService(t, &fakeDecoder{})
	ctx := context.Background()

	// Alice appears in 10 games, Bob in 4; every filler name once.
	seedAppearances(t, st, map[string]int{"Alice": 10, "Bob": 4})

	name, err := svc.DetectMyName(ctx)
	require.NoError(t, err)
	require.Equal(t, "Alice", name)

	locals, err := st.LocalUserNames(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Alice"}, locals)
}

func TestDetectMyNameRefusesOnTie(t *testing.T) {
	t.Parallel()

	svc, st := newTestService(t, &fakeDecoder{})
	ctx := context.Background()

	seedAppearances(t, st, map[string]int{"Alice": 5, "Bob": 5})

	name, err := svc.DetectMyName(ctx)
	require.NoError(t, err)
	require.Empty(t, name)

	locals, err := st.LocalUserNames(ctx)
	require.NoError(t, err)
	require.Empty(t, locals)
}

func TestDetectMyNameKeepsExistingDecision(t *testing.T) {
	t.Parallel()

	svc, st := newTestService(t, &fakeDecoder{})
	ctx := context.Background()

	// Frequency says Alice, but Carol was already marked local.
	seedAppearances(t, st, map[string]int{"Alice": 10})
	_, err := st.ResolveOrCreatePlayer(ctx, "Carol")
	require.NoError(t, err)
	require.NoError(t, st.SetLocalUser(ctx, "Carol", true))

	name, err := svc.DetectMyName(ctx)
	require.NoError(t, err)
	require.Equal(t, "Carol", name)

	locals, err := st.LocalUserNames(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Carol"}, locals)
}

func TestDetectMyNameWithNoGames(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &fakeDecoder{})

	name, err := svc.DetectMyName(context.Background())
	require.NoError(t, err)
	require.Empty(t, name)
}
