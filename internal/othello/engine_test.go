package othello

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/othello-backend/internal/entity"
)

func othelloStart() entity.Board {
	var board entity.Board
	board[3][3] = entity.CellWhite
	board[3][4] = entity.CellBlack
	board[4][3] = entity.CellBlack
	board[4][4] = entity.CellWhite

	return board
}

func TestIsLegalMove(t *testing.T) {
	t.Run("Legal opening move for black on the starting position", func(t *testing.T) {
		// Given: the othello starting position
		board := othelloStart()

		// When/Then: (2,3) bounds the white disc at (3,3) with black at (4,3)
		assert.True(t, IsLegalMove(board, 2, 3, entity.CellBlack))
	})

	t.Run("Occupied cell is never legal", func(t *testing.T) {
		board := othelloStart()

		assert.False(t, IsLegalMove(board, 3, 3, entity.CellBlack))
		assert.False(t, IsLegalMove(board, 3, 3, entity.CellWhite))
	})

	t.Run("Out of bounds is never legal", func(t *testing.T) {
		board := othelloStart()

		assert.False(t, IsLegalMove(board, -1, 0, entity.CellBlack))
		assert.False(t, IsLegalMove(board, 8, 0, entity.CellBlack))
		assert.False(t, IsLegalMove(board, 0, 8, entity.CellBlack))
	})

	t.Run("Cell with no bounded opponent run is illegal", func(t *testing.T) {
		board := othelloStart()

		// (0,0) touches nothing
		assert.False(t, IsLegalMove(board, 0, 0, entity.CellBlack))
	})

	t.Run("Run reaching the edge without an anchor is illegal", func(t *testing.T) {
		// Given: a white run ending at the board edge, no black disc beyond
		var board entity.Board
		board[0][1] = entity.CellWhite
		board[0][0] = entity.CellWhite

		// When: black considers (0,2), scanning left over two whites to the edge
		// Then: no anchor, not legal
		assert.False(t, IsLegalMove(board, 0, 2, entity.CellBlack))
	})
}

func TestHasAnyLegalMove(t *testing.T) {
	t.Run("Both players can move on the starting position", func(t *testing.T) {
		board := othelloStart()

		assert.True(t, HasAnyLegalMove(board, entity.CellBlack))
		assert.True(t, HasAnyLegalMove(board, entity.CellWhite))
	})

	t.Run("Nobody can move on a single-color board", func(t *testing.T) {
		// Given: a board fully covered by black
		var board entity.Board
		for row := 0; row < entity.BoardSize; row++ {
			for col := 0; col < entity.BoardSize; col++ {
				board[row][col] = entity.CellBlack
			}
		}

		assert.False(t, HasAnyLegalMove(board, entity.CellBlack))
		assert.False(t, HasAnyLegalMove(board, entity.CellWhite))
	})
}

func TestApplyMove(t *testing.T) {
	t.Run("Flips the single bounded disc on the starting position", func(t *testing.T) {
		// Given: the othello starting position
		board := othelloStart()

		// When: black plays (2,3)
		next := ApplyMove(board, 2, 3, entity.CellBlack)

		// Then: (3,3) is recolored and the counts follow
		assert.Equal(t, entity.CellBlack, next[2][3])
		assert.Equal(t, entity.CellBlack, next[3][3])
		assert.Equal(t, 4, CountPieces(next, entity.CellBlack))
		assert.Equal(t, 1, CountPieces(next, entity.CellWhite))

		// And: the input board is untouched
		assert.Equal(t, entity.CellWhite, board[3][3])
	})

	t.Run("Flips in all 8 directions independently", func(t *testing.T) {
		// Given: (3,3) surrounded by a white disc in every direction, each
		// run anchored by a black disc one step further out
		var board entity.Board
		dirs := [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
		for _, dir := range dirs {
			board[3+dir[0]][3+dir[1]] = entity.CellWhite
			board[3+2*dir[0]][3+2*dir[1]] = entity.CellBlack
		}

		require.True(t, IsLegalMove(board, 3, 3, entity.CellBlack))

		// When: black plays the center
		next := ApplyMove(board, 3, 3, entity.CellBlack)

		// Then: every white disc flipped
		assert.Equal(t, 0, CountPieces(next, entity.CellWhite))
		assert.Equal(t, 17, CountPieces(next, entity.CellBlack))
	})

	t.Run("Leaves unanchored directions untouched", func(t *testing.T) {
		// Given: a bounded run of two whites to the left of (0,3) and an
		// unanchored white run below it
		var board entity.Board
		board[0][0] = entity.CellBlack
		board[0][1] = entity.CellWhite
		board[0][2] = entity.CellWhite
		board[1][3] = entity.CellWhite
		board[2][3] = entity.CellWhite

		require.True(t, IsLegalMove(board, 0, 3, entity.CellBlack))

		// When: black plays (0,3)
		next := ApplyMove(board, 0, 3, entity.CellBlack)

		// Then: exactly the bounded run flipped, two discs
		assert.Equal(t, entity.CellBlack, next[0][1])
		assert.Equal(t, entity.CellBlack, next[0][2])

		// And: the downward run stayed white
		assert.Equal(t, entity.CellWhite, next[1][3])
		assert.Equal(t, entity.CellWhite, next[2][3])
		assert.Equal(t, 2, CountPieces(next, entity.CellWhite))
	})

	t.Run("Flipped disc count equals the sum of bounded runs", func(t *testing.T) {
		// Given: run of length 1 to the left, length 2 upward, both bounded
		var board entity.Board
		board[5][1] = entity.CellBlack
		board[5][2] = entity.CellWhite
		board[2][3] = entity.CellBlack
		board[3][3] = entity.CellWhite
		board[4][3] = entity.CellWhite

		whitesBefore := CountPieces(board, entity.CellWhite)
		require.Equal(t, 3, whitesBefore)

		// When: black plays (5,3)
		next := ApplyMove(board, 5, 3, entity.CellBlack)

		// Then: 1 + 2 discs changed color, none were removed
		assert.Equal(t, 0, CountPieces(next, entity.CellWhite))
		assert.Equal(t, CountAllPieces(board)+1, CountAllPieces(next))
	})
}

func TestPlace(t *testing.T) {
	t.Run("Places without flipping", func(t *testing.T) {
		// Given: a white disc adjacent to the target with a black anchor
		var board entity.Board
		board[3][4] = entity.CellWhite
		board[3][5] = entity.CellBlack

		// When: black is placed at (3,3) via Place
		next := Place(board, 3, 3, entity.CellBlack)

		// Then: the white disc is not flipped
		assert.Equal(t, entity.CellBlack, next[3][3])
		assert.Equal(t, entity.CellWhite, next[3][4])
	})
}

func TestIsOpeningSquare(t *testing.T) {
	assert.True(t, IsOpeningSquare(3, 3))
	assert.True(t, IsOpeningSquare(3, 4))
	assert.True(t, IsOpeningSquare(4, 3))
	assert.True(t, IsOpeningSquare(4, 4))

	assert.False(t, IsOpeningSquare(2, 3))
	assert.False(t, IsOpeningSquare(3, 5))
	assert.False(t, IsOpeningSquare(0, 0))
	assert.False(t, IsOpeningSquare(7, 7))
}

func TestDetermineWinner(t *testing.T) {
	t.Run("Black wins on strict majority", func(t *testing.T) {
		var board entity.Board
		board[0][0] = entity.CellBlack
		board[0][1] = entity.CellBlack
		board[0][2] = entity.CellWhite

		assert.Equal(t, entity.CellBlack, DetermineWinner(board))
	})

	t.Run("White wins on strict majority", func(t *testing.T) {
		var board entity.Board
		board[0][0] = entity.CellWhite
		board[0][1] = entity.CellWhite
		board[0][2] = entity.CellBlack

		assert.Equal(t, entity.CellWhite, DetermineWinner(board))
	})

	t.Run("Equal counts are a tie", func(t *testing.T) {
		var board entity.Board
		board[0][0] = entity.CellBlack
		board[0][1] = entity.CellWhite

		assert.Equal(t, entity.CellEmpty, DetermineWinner(board))
	})
}

func TestCounting(t *testing.T) {
	board := othelloStart()

	assert.Equal(t, 2, CountPieces(board, entity.CellBlack))
	assert.Equal(t, 2, CountPieces(board, entity.CellWhite))
	assert.Equal(t, 4, CountAllPieces(board))
	assert.Equal(t, 0, CountAllPieces(entity.Board{}))
}
