package tracker

import (
	"context"
	"log/slog"
)

// DetectMyName infers which player is the local user from the appearance
// histogram: across enough games the local user's name shows up in every
// one of their own matches and dominates the counts.
//
// If any player is already marked local the first such name is returned
// unchanged; an earlier decision is never re-inferred. With no games at
// all, or with the top two counts tied (insufficient or symmetric data),
// no guess is made and "" is returned.
func (s *Service) DetectMyName(ctx context.Context) (string, error) {
	existing, err := s.store.LocalUserNames(ctx)
	if err != nil {
		return "", err
	}
	if len(existing) > 0 {
		slog.Info("local user already registered", "names", existing)
		return existing[0], nil
	}

	counts, err := s.store.PlayerAppearanceCounts(ctx)
	if err != nil {
		return "", err
	}
	if len(counts) == 0 {
		return "", nil
	}

	best := counts[0]
	if len(counts) >= 2 && counts[1].Count >= best.Count {
		slog.Warn("local user inference ambiguous: top two appearance counts are equal",
			"first", best.Name, "second", counts[1].Name, "count", best.Count)
		return "", nil
	}

	if _, err := s.store.ResolveOrCreatePlayer(ctx, best.Name); err != nil {
		return "", err
	}
	if err := s.store.SetLocalUser(ctx, best.Name, true); err != nil {
		return "", err
	}
	s.seedNames[best.Name] = true

	slog.Info("local user inferred", "name", best.Name, "appearances", best.Count)
	return best.Name, nil
}
