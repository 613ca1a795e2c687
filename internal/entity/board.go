package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

const BoardSize = 8

var ErrMalformedBoard = errors.New("malformed board")

// Cell is a single square of the board: 0 empty, 1 black, 2 white.
type Cell int

const (
	CellEmpty Cell = 0
	CellBlack Cell = 1
	CellWhite Cell = 2
)

func (that Cell) IsValid() bool {
	return that == CellEmpty || that == CellBlack || that == CellWhite
}

func (that Cell) Opponent() Cell {
	switch that {
	case CellBlack:
		return CellWhite
	case CellWhite:
		return CellBlack
	default:
		return CellEmpty
	}
}

// Board is the 8x8 grid. It is a value type: copying it copies the grid,
// which keeps move application free of aliasing surprises.
type Board [BoardSize][BoardSize]Cell

// MarshalJSON encodes the board as a flat array of 64 cell values,
// row-major. This is the one wire and storage format for boards.
func (that Board) MarshalJSON() ([]byte, error) {
	flat := make([]Cell, 0, BoardSize*BoardSize)
	for row := range that {
		flat = append(flat, that[row][:]...)
	}

	return json.Marshal(flat)
}

// UnmarshalJSON decodes the flat 64-value form back into the grid. Any
// other length or an out-of-range cell value is rejected outright.
func (that *Board) UnmarshalJSON(data []byte) error {
	var flat []Cell
	if err := json.Unmarshal(data, &flat); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedBoard, err)
	}

	if len(flat) != BoardSize*BoardSize {
		return fmt.Errorf("%w: expected %d cells, got %d", ErrMalformedBoard, BoardSize*BoardSize, len(flat))
	}

	var board Board
	for i, cell := range flat {
		if !cell.IsValid() {
			return fmt.Errorf("%w: invalid cell value %d at index %d", ErrMalformedBoard, cell, i)
		}
		board[i/BoardSize][i%BoardSize] = cell
	}

	*that = board

	return nil
}
