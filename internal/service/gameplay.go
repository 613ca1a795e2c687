package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/othello-backend/internal/apperror"
	"github.com/rocketscienceinc/othello-backend/internal/entity"
	"github.com/rocketscienceinc/othello-backend/internal/othello"
)

// GamePlayService drives the per-room state machine: seating, moves, turn
// advancement and end-of-game handling. All mutations are serialized
// behind one mutex, so operations on a room are totally ordered and two
// concurrent joins can never both win the second seat.
type GamePlayService interface {
	Join(ctx context.Context, roomID string, mode entity.Mode, userID int64) (*entity.Room, int, error)
	Leave(ctx context.Context, roomID string, seat int, userID int64) error
	Move(ctx context.Context, roomID string, row, col int, color entity.Cell) (*entity.Room, error)
	State(ctx context.Context, roomID string) (*entity.Room, error)

	StartReaper(ctx context.Context, interval time.Duration)
	ReapStaleRooms(ctx context.Context) error
}

type resultRecorder interface {
	RecordResult(ctx context.Context, room *entity.Room, winner entity.Cell) error
}

type gamePlayService struct {
	logger  *slog.Logger
	mu      sync.Mutex
	rooms   RoomService
	ranking resultRecorder

	timeoutAfter time.Duration
	deleteAfter  time.Duration
}

func NewGamePlayService(logger *slog.Logger, rooms RoomService, ranking resultRecorder, timeoutAfter, deleteAfter time.Duration) GamePlayService {
	return &gamePlayService{
		logger:       logger,
		rooms:        rooms,
		ranking:      ranking,
		timeoutAfter: timeoutAfter,
		deleteAfter:  deleteAfter,
	}
}

// Join seats a player in the room, creating the room on first reference.
// Seat 1 plays black, seat 2 plays white; the second join flips the room
// from waiting to active. The returned seat number is the caller's
// player id for the rest of the game.
func (that *gamePlayService) Join(ctx context.Context, roomID string, mode entity.Mode, userID int64) (*entity.Room, int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.rooms.GetOrCreate(ctx, roomID, mode)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get or create room: %w", err)
	}

	if room.Players >= entity.MaxSeats {
		return nil, 0, apperror.ErrRoomFull
	}

	seat := room.Players + 1
	room.Seats[seat-1] = userID
	room.Players = seat

	if room.Players == entity.MaxSeats && room.IsWaiting() {
		room.Status = entity.StatusActive
	}

	room.Touch()
	if err = that.rooms.Update(ctx, room); err != nil {
		return nil, 0, fmt.Errorf("failed to update room: %w", err)
	}

	return room, seat, nil
}

// Leave releases the user binding of a seat. The seat itself stays
// counted and board, turn and status are untouched: an abandoned room
// simply ages out through the reaper. Anonymous seats are a no-op.
func (that *gamePlayService) Leave(ctx context.Context, roomID string, seat int, userID int64) error {
	if seat < 1 || seat > entity.MaxSeats {
		return fmt.Errorf("%w: seat %d", apperror.ErrInvalidInput, seat)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.rooms.Get(ctx, roomID)
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}

	if room.Seats[seat-1] != userID {
		return nil
	}

	room.Seats[seat-1] = entity.AnonymousUser

	room.Touch()
	if err = that.rooms.Update(ctx, room); err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	return nil
}

// Move validates and applies one placement for the given color, then
// advances the turn: the opponent moves if they can, otherwise the mover
// moves again, and if neither side has a legal move the game finishes and
// the result is recorded against both seated users.
func (that *gamePlayService) Move(ctx context.Context, roomID string, row, col int, color entity.Cell) (*entity.Room, error) {
	if row < 0 || row >= entity.BoardSize || col < 0 || col >= entity.BoardSize {
		return nil, fmt.Errorf("%w: cell (%d,%d)", apperror.ErrInvalidInput, row, col)
	}
	if color != entity.CellBlack && color != entity.CellWhite {
		return nil, fmt.Errorf("%w: player %d", apperror.ErrInvalidInput, color)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.rooms.GetOrCreate(ctx, roomID, entity.ModeOthello)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create room: %w", err)
	}

	if !room.IsActive() {
		return nil, apperror.ErrGameNotActive
	}

	if color != room.Turn {
		return nil, apperror.ErrNotYourTurn
	}

	// Reversi starts on an empty board: until four discs are down, only
	// the central 2x2 block is playable and nothing flips.
	opening := room.Mode == entity.ModeReversi && othello.CountAllPieces(room.Board) < 4

	if opening {
		if !othello.IsOpeningSquare(row, col) || room.Board[row][col] != entity.CellEmpty {
			return nil, fmt.Errorf("%w: opening placement must be an empty center square", apperror.ErrIllegalMove)
		}
		room.Board = othello.Place(room.Board, row, col, color)
	} else {
		if !othello.IsLegalMove(room.Board, row, col, color) {
			return nil, fmt.Errorf("%w: cell (%d,%d)", apperror.ErrIllegalMove, row, col)
		}
		room.Board = othello.ApplyMove(room.Board, row, col, color)
	}

	opponent := color.Opponent()

	switch {
	case opening && othello.CountAllPieces(room.Board) < 4:
		// Flip rules do not apply yet, so the turn alternates blindly.
		room.Turn = opponent
	case othello.HasAnyLegalMove(room.Board, opponent):
		room.Turn = opponent
	case othello.HasAnyLegalMove(room.Board, color):
		// Opponent has to pass; the mover goes again.
	default:
		room.Status = entity.StatusFinished
		room.Winner = othello.DetermineWinner(room.Board)

		if err = that.ranking.RecordResult(ctx, room, room.Winner); err != nil {
			return nil, fmt.Errorf("failed to record result: %w", err)
		}
	}

	room.Touch()
	if err = that.rooms.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	return room, nil
}

// State reports the room as stored, creating it lazily on first
// reference. Reads deliberately do not refresh last_activity: polling a
// dead room must not keep it alive, or pollers would never observe the
// timed_out status.
func (that *gamePlayService) State(ctx context.Context, roomID string) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.rooms.GetOrCreate(ctx, roomID, entity.ModeOthello)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create room: %w", err)
	}

	return room, nil
}
