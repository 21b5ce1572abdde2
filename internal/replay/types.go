// Package replay defines the contract with the external replay decoder.
// The proprietary replay binary format is not parsed here; a Decoder
// implementation turns a replay file into a structured Summary.
package replay

// Participant is one player slot in a decoded replay.
type Participant struct {
	// ID is the decoder-assigned sequence id, used to join against Stats.
	ID   int    `json:"id"`
	Name string `json:"name"`
	Race string `json:"race"`
}

// PlayerStats holds per-player metrics keyed by Participant.ID.
type PlayerStats struct {
	APM float64 `json:"apm"`
}

// ChatEntry is one in-game chat line.
type ChatEntry struct {
	Player   string `json:"player_name"`
	Message  string `json:"message"`
	GameTime string `json:"time"`
	Frame    int    `json:"frame"`
}

// Summary is the decoder's structured view of one replay file.
type Summary struct {
	Winner          string  `json:"winner"`
	Loser           string  `json:"loser"`
	DurationSeconds float64 `json:"duration_seconds"`
	DurationText    string  `json:"duration"`
	GameType        string  `json:"game_type"`

	MapName    string `json:"map_name"`
	MapTileset string `json:"tileset"`

	// PlayedAt is the decoder's own notion of when the game was played,
	// formatted "2006-01-02 15:04:05". May be empty; the ingestion
	// pipeline prefers the filename-embedded timestamp anyway.
	PlayedAt string `json:"played_at"`

	Players []Participant       `json:"players"`
	Stats   map[int]PlayerStats `json:"player_stats"`
	Chat    []ChatEntry         `json:"chat_messages"`
}

// RaceOf returns the race of the participant with the given name,
// or "" if no participant matches.
func (s *Summary) RaceOf(name string) string {
	if name == "" {
		return ""
	}
	for _, p := range s.Players {
		if p.Name == name {
			return p.Race
		}
	}
	return ""
}

// APMOf returns the actions-per-minute metric for a participant id,
// or 0 when the decoder supplied no stats for that id.
func (s *Summary) APMOf(id int) float64 {
	if st, ok := s.Stats[id]; ok {
		return st.APM
	}
	return 0
}
