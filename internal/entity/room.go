package entity

import "time"

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
	StatusTimedOut Status = "timed_out"
)

type Mode string

const (
	ModeOthello Mode = "othello"
	ModeReversi Mode = "reversi"
)

// ParseMode maps a requested mode string to a known mode. Anything
// unrecognized, including the empty string, falls back to othello.
func ParseMode(raw string) Mode {
	if raw == string(ModeReversi) {
		return ModeReversi
	}
	return ModeOthello
}

// MaxSeats is the number of seats in a room. Seat 1 plays black,
// seat 2 plays white.
const MaxSeats = 2

// AnonymousUser marks a seat that is occupied but not bound to a
// registered account. Such seats never produce ranking updates.
const AnonymousUser int64 = 0

type Room struct {
	ID           string          `json:"id"`
	Board        Board           `json:"board"`
	Turn         Cell            `json:"turn"`
	Winner       Cell            `json:"winner"`
	Status       Status          `json:"status"`
	Mode         Mode            `json:"mode"`
	Players      int             `json:"players"`
	Seats        [MaxSeats]int64 `json:"seats"`
	LastActivity time.Time       `json:"last_activity"`
}

// NewRoom builds a fresh room in the waiting state. Othello starts with
// the four center discs placed, reversi with an empty board; black moves
// first in both variants. The mode is fixed for the life of the room.
func NewRoom(id string, mode Mode) *Room {
	room := &Room{
		ID:           id,
		Turn:         CellBlack,
		Status:       StatusWaiting,
		Mode:         mode,
		LastActivity: time.Now().UTC(),
	}

	if mode == ModeOthello {
		room.Board[3][3] = CellWhite
		room.Board[3][4] = CellBlack
		room.Board[4][3] = CellBlack
		room.Board[4][4] = CellWhite
	}

	return room
}

func (that *Room) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Room) IsActive() bool {
	return that.Status == StatusActive
}

func (that *Room) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Room) IsTimedOut() bool {
	return that.Status == StatusTimedOut
}

// IsTerminal reports whether the room reached a state no transition
// may leave.
func (that *Room) IsTerminal() bool {
	return that.IsFinished() || that.IsTimedOut()
}

// Touch records activity. Every state-changing operation calls this;
// reads do not, so an abandoned room keeps ageing while it is polled.
func (that *Room) Touch() {
	that.LastActivity = time.Now().UTC()
}

// SeatColor returns the color bound to a seat number.
func SeatColor(seat int) Cell {
	if seat == 1 {
		return CellBlack
	}
	return CellWhite
}
