package store

// Result of a game from the local user's perspective.
const (
	ResultWin     = "win"
	ResultLoss    = "loss"
	ResultUnknown = "unknown"
)

// Game is one completed match. String fields use "" for SQL NULL.
type Game struct {
	ID              int64
	ReplayFile      string
	PlayedAt        string // "2006-01-02 15:04:05", "" when underivable
	DurationSeconds float64
	DurationText    string
	MapName         string
	MapTileset      string
	GameType        string
	WinnerName      string
	LoserName       string
	WinnerRace      string
	LoserRace       string
	MyResult        string
}

// Participant is one player's involvement in a game, keyed by name;
// the store resolves the name to a canonical player id on insert.
type Participant struct {
	PlayerName string
	Race       string
	IsWinner   bool
	APM        float64
}

// ChatMessage is one in-game chat line.
type ChatMessage struct {
	PlayerName string
	Message    string
	GameTime   string
	Frame      int
}

// VersusGame is a game annotated with its outcome against a specific
// opponent: "win", "loss", or "unknown".
type VersusGame struct {
	Game
	VsResult string
}

// Record is the head-to-head record against one opponent.
type Record struct {
	Opponent string
	Wins     int
	Losses   int
	Total    int
	Games    []VersusGame
}

// OpponentSummary is one row of the all-opponents overview.
type OpponentSummary struct {
	Opponent   string
	Wins       int
	Losses     int
	Total      int
	LastPlayed string
}

// NameCount is one row of the appearance histogram used for
// local-user inference.
type NameCount struct {
	Name  string
	Count int
}
