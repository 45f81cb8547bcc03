package entities

type RoomStatus string

const (
	RoomStatusWaiting RoomStatus = "waiting" // lobby, players joining
	RoomStatusPlaying RoomStatus = "playing"
	RoomStatusEnd     RoomStatus = "end"
)

type RoomPlayer struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
}

type RoomInfo struct {
	RoomID     string       `json:"roomID"`
	UserID     string       `json:"userID"` // creator
	MaxPlayers int          `json:"maxPlayers"`
	Status     RoomStatus   `json:"status"`
	Players    []RoomPlayer `json:"players"`
	CreatedAt  int64        `json:"createdAt"` // unix millis
}

// HasPlayer reports whether the player has joined the room.
func (r *RoomInfo) HasPlayer(playerID string) bool {
	for _, p := range r.Players {
		if p.PlayerID == playerID {
			return true
		}
	}
	return false
}

// RoomSnapshot is what gets persisted per room. State is nil until the game
// has been started once.
type RoomSnapshot struct {
	Room  RoomInfo   `json:"room"`
	State *GameState `json:"state,omitempty"`
}

type PlayerScore struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
	Points   int    `json:"points"`
	Cards    int    `json:"cards"`
	Nobles   int    `json:"nobles"`
}

// GameResult summarizes a finished game for the archive.
type GameResult struct {
	RoomID     string        `json:"roomID"`
	WinnerID   string        `json:"winnerID"`
	WinnerName string        `json:"winnerName"`
	Turns      int           `json:"turns"`
	Scores     []PlayerScore `json:"scores"`
	FinishedAt int64         `json:"finishedAt"` // unix millis
}

func NewGameResult(roomID string, state *GameState, finishedAt int64) GameResult {
	result := GameResult{
		RoomID:     roomID,
		Turns:      state.Turn,
		Scores:     make([]PlayerScore, 0, len(state.Players)),
		FinishedAt: finishedAt,
	}
	for _, p := range state.Players {
		result.Scores = append(result.Scores, PlayerScore{
			PlayerID: p.ID,
			Name:     p.Name,
			Points:   p.Points,
			Cards:    len(p.Cards),
			Nobles:   len(p.Nobles),
		})
		if state.Winner != nil && *state.Winner == p.ID {
			result.WinnerID = p.ID
			result.WinnerName = p.Name
		}
	}
	return result
}

func (r RoomInfo) Clone() RoomInfo {
	r.Players = append([]RoomPlayer(nil), r.Players...)
	return r
}
