package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GameExists reports whether a game with the given replay file identifier
// has already been ingested.
func (s *Store) GameExists(ctx context.Context, replayFile string) (bool, error) {
	var probe int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM games WHERE replay_file = ? LIMIT 1`, replayFile).Scan(&probe)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// InsertGame stores one game row and returns its id. Inserting a
// replay_file that is already present fails with ErrDuplicateGame.
func (s *Store) InsertGame(ctx context.Context, g *Game) (int64, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = insertGameTx(ctx, tx, g)
		return err
	})
	return id, err
}

func insertGameTx(ctx context.Context, tx *sql.Tx, g *Game) (int64, error) {
	res, err := tx.ExecContext(ctx, `INSERT INTO games(
		replay_file, played_at, duration_seconds, duration_text,
		map_name, map_tileset, game_type,
		winner_name, loser_name, winner_race, loser_race, my_result
	) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ReplayFile,
		nullIfEmpty(g.PlayedAt),
		g.DurationSeconds,
		nullIfEmpty(g.DurationText),
		nullIfEmpty(g.MapName),
		nullIfEmpty(g.MapTileset),
		nullIfEmpty(g.GameType),
		nullIfEmpty(g.WinnerName),
		nullIfEmpty(g.LoserName),
		nullIfEmpty(g.WinnerRace),
		nullIfEmpty(g.LoserRace),
		nullIfEmpty(g.MyResult),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert game %s: %w", g.ReplayFile, ErrDuplicateGame)
		}
		return 0, fmt.Errorf("insert game %s: %w", g.ReplayFile, err)
	}
	return res.LastInsertId()
}

// InsertGameParticipant stores one game-player row.
func (s *Store) InsertGameParticipant(ctx context.Context, gameID, playerID int64, race string, isWinner bool, apm float64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO game_players(game_id, player_id, race, is_winner, apm) VALUES(?, ?, ?, ?, ?)`,
		gameID, playerID, nullIfEmpty(race), boolToInt(isWinner), apm)
	return err
}

// InsertChatMessage stores one chat line for a game.
func (s *Store) InsertChatMessage(ctx context.Context, gameID, playerID int64, message, gameTime string, frame int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_messages(game_id, player_id, message, game_time, frame) VALUES(?, ?, ?, ?, ?)`,
		gameID, playerID, message, gameTime, frame)
	return err
}

// SaveGame persists a game together with its participants and chat lines in
// one transaction, resolving each participant name to a canonical player.
// On any failure the whole unit is rolled back. Returns the new game id.
func (s *Store) SaveGame(ctx context.Context, g *Game, participants []Participant, chat []ChatMessage) (int64, error) {
	var gameID int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		gameID, err = insertGameTx(ctx, tx, g)
		if err != nil {
			return err
		}
		for _, p := range participants {
			playerID, err := resolveOrCreatePlayerTx(ctx, tx, p.PlayerName)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO game_players(game_id, player_id, race, is_winner, apm) VALUES(?, ?, ?, ?, ?)`,
				gameID, playerID, nullIfEmpty(p.Race), boolToInt(p.IsWinner), p.APM); err != nil {
				return err
			}
		}
		for _, m := range chat {
			playerID, err := resolveOrCreatePlayerTx(ctx, tx, m.PlayerName)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO chat_messages(game_id, player_id, message, game_time, frame) VALUES(?, ?, ?, ?, ?)`,
				gameID, playerID, m.Message, m.GameTime, m.Frame); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return gameID, nil
}

// DeleteGame removes a game; game_players and chat_messages rows cascade.
func (s *Store) DeleteGame(ctx context.Context, gameID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, gameID)
	return err
}

// CountGameParticipants returns the number of game_players rows for a game.
func (s *Store) CountGameParticipants(ctx context.Context, gameID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM game_players WHERE game_id = ?`, gameID).Scan(&n)
	return n, err
}

// CountChatMessages returns the number of chat_messages rows for a game.
func (s *Store) CountChatMessages(ctx context.Context, gameID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chat_messages WHERE game_id = ?`, gameID).Scan(&n)
	return n, err
}
