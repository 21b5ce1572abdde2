package store

import (
	"context"
	"database/sql"
	"sort"
)

const gameColumns = `id, replay_file, played_at, duration_seconds, duration_text,
	map_name, map_tileset, game_type,
	winner_name, loser_name, winner_race, loser_race, my_result`

// RecordAgainst returns the head-to-head record against opponentName. The
// name is alias-resolved first; games are ordered newest first, with games
// whose played_at could not be derived (NULL) sorted last.
//
// A game where both sides are local-user names counts as a win: the winner
// branch is checked first and that ordering is deliberate.
func (s *Store) RecordAgainst(ctx context.Context, opponentName string) (*Record, error) {
	resolved, err := s.ResolveName(ctx, opponentName)
	if err != nil {
		return nil, err
	}

	// Under ORDER BY DESC SQLite sorts NULLs after non-NULL values, which
	// is the documented "nulls last" behaviour.
	rows, err := s.db.QueryContext(ctx, `SELECT `+gameColumns+` FROM games
		WHERE winner_name = ? OR loser_name = ?
		ORDER BY played_at DESC`, resolved, resolved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	myNames, err := s.localNameSet(ctx)
	if err != nil {
		return nil, err
	}

	rec := &Record{Opponent: resolved}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}

		vg := VersusGame{Game: *g, VsResult: ResultUnknown}
		switch {
		case myNames[g.WinnerName] && g.LoserName == resolved:
			rec.Wins++
			vg.VsResult = ResultWin
		case myNames[g.LoserName] && g.WinnerName == resolved:
			rec.Losses++
			vg.VsResult = ResultLoss
		}
		rec.Games = append(rec.Games, vg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rec.Total = rec.Wins + rec.Losses
	return rec, nil
}

// AllOpponentSummaries aggregates every game into per-opponent win/loss
// counts. A game contributes only when exactly one side is a local-user
// name; LastPlayed is the newest played_at seen for that opponent. Results
// are sorted by opponent name ascending.
func (s *Store) AllOpponentSummaries(ctx context.Context) ([]OpponentSummary, error) {
	myNames, err := s.localNameSet(ctx)
	if err != nil {
		return nil, err
	}
	if len(myNames) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+gameColumns+` FROM games ORDER BY played_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byOpponent := make(map[string]*OpponentSummary)
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}

		var opponent string
		var won bool
		switch {
		case myNames[g.WinnerName] && g.LoserName != "" && !myNames[g.LoserName]:
			opponent, won = g.LoserName, true
		case myNames[g.LoserName] && g.WinnerName != "" && !myNames[g.WinnerName]:
			opponent, won = g.WinnerName, false
		default:
			continue
		}

		sum := byOpponent[opponent]
		if sum == nil {
			// First hit in a newest-first scan carries the most recent date.
			sum = &OpponentSummary{Opponent: opponent, LastPlayed: g.PlayedAt}
			byOpponent[opponent] = sum
		}
		if won {
			sum.Wins++
		} else {
			sum.Losses++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]OpponentSummary, 0, len(byOpponent))
	for _, sum := range byOpponent {
		sum.Total = sum.Wins + sum.Losses
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Opponent < out[j].Opponent })
	return out, nil
}

// PlayerAppearanceCounts returns, for every name seen as a winner or loser,
// the total number of games it appears in, most frequent first (name
// ascending on ties). Feeds the local-user inference heuristic.
func (s *Store) PlayerAppearanceCounts(ctx context.Context) ([]NameCount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, SUM(cnt) AS count FROM (
			SELECT winner_name AS name, COUNT(*) AS cnt FROM games
			WHERE winner_name IS NOT NULL GROUP BY winner_name
			UNION ALL
			SELECT loser_name AS name, COUNT(*) AS cnt FROM games
			WHERE loser_name IS NOT NULL GROUP BY loser_name
		) GROUP BY name ORDER BY count DESC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []NameCount
	for rows.Next() {
		var nc NameCount
		if err := rows.Scan(&nc.Name, &nc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, nc)
	}
	return counts, rows.Err()
}

// GameByReplayFile fetches one game by its replay file identifier.
// Returns nil, nil when not found.
func (s *Store) GameByReplayFile(ctx context.Context, replayFile string) (*Game, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE replay_file = ?`, replayFile)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanGame(rows)
}

func (s *Store) localNameSet(ctx context.Context) (map[string]bool, error) {
	names, err := s.LocalUserNames(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set, nil
}

func scanGame(rows *sql.Rows) (*Game, error) {
	var g Game
	var playedAt, durationText, mapName, mapTileset, gameType sql.NullString
	var winnerName, loserName, winnerRace, loserRace, myResult sql.NullString
	var durationSeconds sql.NullFloat64

	if err := rows.Scan(
		&g.ID,
		&g.ReplayFile,
		&playedAt,
		&durationSeconds,
		&durationText,
		&mapName,
		&mapTileset,
		&gameType,
		&winnerName,
		&loserName,
		&winnerRace,
		&loserRace,
		&myResult,
	); err != nil {
		return nil, err
	}

	g.PlayedAt = playedAt.String
	g.DurationSeconds = durationSeconds.Float64
	g.DurationText = durationText.String
	g.MapName = mapName.String
	g.MapTileset = mapTileset.String
	g.GameType = gameType.String
	g.WinnerName = winnerName.String
	g.LoserName = loserName.String
	g.WinnerRace = winnerRace.String
	g.LoserRace = loserRace.String
	g.MyResult = myResult.String
	return &g, nil
}
