// Package othello implements the board rules shared by the othello and
// reversi variants: move legality, disc flipping and scoring. Everything
// here is a pure function over entity.Board values.
package othello

import (
	"github.com/rocketscienceinc/othello-backend/internal/entity"
)

// the 8 compass directions, row/col deltas.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

func inBounds(row, col int) bool {
	return row >= 0 && row < entity.BoardSize && col >= 0 && col < entity.BoardSize
}

// IsLegalMove reports whether placing player at (row, col) is legal under
// the standard rule: the target cell must be empty and at least one
// direction must hold a non-empty run of opponent discs bounded by a disc
// of the mover's own color.
func IsLegalMove(board entity.Board, row, col int, player entity.Cell) bool {
	if !inBounds(row, col) || board[row][col] != entity.CellEmpty {
		return false
	}

	opponent := player.Opponent()
	for _, dir := range directions {
		r, c := row+dir[0], col+dir[1]

		run := 0
		for inBounds(r, c) && board[r][c] == opponent {
			r += dir[0]
			c += dir[1]
			run++
		}

		if run > 0 && inBounds(r, c) && board[r][c] == player {
			return true
		}
	}

	return false
}

// HasAnyLegalMove reports whether player has at least one legal move
// anywhere on the board.
func HasAnyLegalMove(board entity.Board, player entity.Cell) bool {
	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			if IsLegalMove(board, row, col, player) {
				return true
			}
		}
	}

	return false
}

// ApplyMove places player at (row, col) and flips every bounded opponent
// run in all 8 directions. Directions without a same-color anchor are left
// untouched. The input board is not modified; the flipped board is
// returned, so a failed persist never leaves a half-applied move behind.
func ApplyMove(board entity.Board, row, col int, player entity.Cell) entity.Board {
	board[row][col] = player
	opponent := player.Opponent()

	for _, dir := range directions {
		r, c := row+dir[0], col+dir[1]

		run := 0
		for inBounds(r, c) && board[r][c] == opponent {
			r += dir[0]
			c += dir[1]
			run++
		}

		if run == 0 || !inBounds(r, c) || board[r][c] != player {
			continue
		}

		r, c = row+dir[0], col+dir[1]
		for board[r][c] == opponent {
			board[r][c] = player
			r += dir[0]
			c += dir[1]
		}
	}

	return board
}

// Place puts a disc on the board without flipping anything. Used for the
// reversi opening phase, where flipping is suppressed.
func Place(board entity.Board, row, col int, player entity.Cell) entity.Board {
	board[row][col] = player
	return board
}

// IsOpeningSquare reports whether (row, col) lies in the central 2x2
// block, the only area playable during the reversi opening phase.
func IsOpeningSquare(row, col int) bool {
	return row >= 3 && row <= 4 && col >= 3 && col <= 4
}

func CountPieces(board entity.Board, color entity.Cell) int {
	count := 0
	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			if board[row][col] == color {
				count++
			}
		}
	}

	return count
}

func CountAllPieces(board entity.Board) int {
	count := 0
	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			if board[row][col] != entity.CellEmpty {
				count++
			}
		}
	}

	return count
}

// DetermineWinner compares piece counts. It returns the winning color, or
// CellEmpty when the counts are equal (a tie).
func DetermineWinner(board entity.Board) entity.Cell {
	black := CountPieces(board, entity.CellBlack)
	white := CountPieces(board, entity.CellWhite)

	switch {
	case black > white:
		return entity.CellBlack
	case white > black:
		return entity.CellWhite
	default:
		return entity.CellEmpty
	}
}
