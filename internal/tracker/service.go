// Package tracker ties the replay decoder and the record store together:
// it ingests replay files into game records, infers the local user's name,
// and answers head-to-head record queries.
package tracker

import (
	"context"

	"starrec/internal/replay"
	"starrec/internal/store"
)

// RecordStore is the persistence surface the tracker needs.
// *store.Store satisfies it.
type RecordStore interface {
	ResolveOrCreatePlayer(ctx context.Context, name string) (int64, error)
	SetLocalUser(ctx context.Context, name string, isMe bool) error
	LocalUserNames(ctx context.Context) ([]string, error)
	AddAlias(ctx context.Context, playerName, altName string) error
	GameExists(ctx context.Context, replayFile string) (bool, error)
	SaveGame(ctx context.Context, g *store.Game, participants []store.Participant, chat []store.ChatMessage) (int64, error)
	RecordAgainst(ctx context.Context, opponentName string) (*store.Record, error)
	AllOpponentSummaries(ctx context.Context) ([]store.OpponentSummary, error)
	PlayerAppearanceCounts(ctx context.Context) ([]store.NameCount, error)
}

type Service struct {
	store RecordStore
	dec   replay.Decoder

	// seedNames is the config-provided overlay of local-user names. The
	// store stays the source of truth; the overlay is merged at read time
	// and never written back here.
	seedNames map[string]bool
}

func NewService(st RecordStore, dec replay.Decoder, seedNames []string) *Service {
	seed := make(map[string]bool, len(seedNames))
	for _, n := range seedNames {
		if n != "" {
			seed[n] = true
		}
	}
	return &Service{store: st, dec: dec, seedNames: seed}
}

// MyNames returns the current local-user name set: players marked local in
// the store, merged with the config seed overlay.
func (s *Service) MyNames(ctx context.Context) (map[string]bool, error) {
	names, err := s.store.LocalUserNames(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(names)+len(s.seedNames))
	for _, n := range names {
		set[n] = true
	}
	for n := range s.seedNames {
		set[n] = true
	}
	return set, nil
}

// SetMyName registers name as the local user, creating the player if it
// does not exist yet.
func (s *Service) SetMyName(ctx context.Context, name string) error {
	if _, err := s.store.ResolveOrCreatePlayer(ctx, name); err != nil {
		return err
	}
	if err := s.store.SetLocalUser(ctx, name, true); err != nil {
		return err
	}
	s.seedNames[name] = true
	return nil
}

// AddAlias registers altName as an alternate name of playerName.
func (s *Service) AddAlias(ctx context.Context, playerName, altName string) error {
	return s.store.AddAlias(ctx, playerName, altName)
}

// Record returns the head-to-head record against one opponent.
func (s *Service) Record(ctx context.Context, opponentName string) (*store.Record, error) {
	return s.store.RecordAgainst(ctx, opponentName)
}

// AllRecords returns the per-opponent summary of every recorded game.
func (s *Service) AllRecords(ctx context.Context) ([]store.OpponentSummary, error) {
	return s.store.AllOpponentSummaries(ctx)
}

// OpponentOf picks the opponent side of a game relative to the local-user
// set: the loser if the local user won, the winner if they lost, otherwise
// whichever side is non-empty (winner preferred).
func (s *Service) OpponentOf(ctx context.Context, g *store.Game) (string, error) {
	myNames, err := s.MyNames(ctx)
	if err != nil {
		return "", err
	}
	switch {
	case myNames[g.WinnerName]:
		return g.LoserName, nil
	case myNames[g.LoserName]:
		return g.WinnerName, nil
	case g.WinnerName != "":
		return g.WinnerName, nil
	default:
		return g.LoserName, nil
	}
}
