package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/rocketscienceinc/othello-backend/internal/apperror"
	"github.com/rocketscienceinc/othello-backend/internal/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	AddWin(ctx context.Context, id int64) error
	AddLoss(ctx context.Context, id int64) error
	AddTie(ctx context.Context, id int64) error
	TopByWins(ctx context.Context, limit int) ([]*entity.User, error)
}

type userRepository struct {
	conn *sql.DB
}

func NewUserRepository(conn *sql.DB) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

// Create inserts a new user and fills in the generated id. A duplicate
// username maps to apperror.ErrUsernameTaken.
func (that *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `INSERT INTO users (username, password_hash) VALUES (?, ?)`

	result, err := that.conn.ExecContext(ctx, query, user.Username, user.PasswordHash)

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return apperror.ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("can't save user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("can't read new user id: %w", err)
	}
	user.ID = id

	return nil
}

func (that *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT id, username, password_hash, wins, losses, ties FROM users WHERE username = ?`

	return that.scanUser(that.conn.QueryRowContext(ctx, query, username))
}

func (that *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT id, username, password_hash, wins, losses, ties FROM users WHERE id = ?`

	return that.scanUser(that.conn.QueryRowContext(ctx, query, id))
}

func (that *userRepository) AddWin(ctx context.Context, id int64) error {
	return that.bump(ctx, `UPDATE users SET wins = wins + 1 WHERE id = ?`, id)
}

func (that *userRepository) AddLoss(ctx context.Context, id int64) error {
	return that.bump(ctx, `UPDATE users SET losses = losses + 1 WHERE id = ?`, id)
}

func (that *userRepository) AddTie(ctx context.Context, id int64) error {
	return that.bump(ctx, `UPDATE users SET ties = ties + 1 WHERE id = ?`, id)
}

func (that *userRepository) TopByWins(ctx context.Context, limit int) ([]*entity.User, error) {
	query := `SELECT id, username, password_hash, wins, losses, ties FROM users ORDER BY wins DESC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("can't query rankings: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		var user entity.User
		if err = rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Wins, &user.Losses, &user.Ties); err != nil {
			return nil, fmt.Errorf("can't scan user row: %w", err)
		}
		users = append(users, &user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate rankings: %w", err)
	}

	return users, nil
}

func (that *userRepository) bump(ctx context.Context, query string, id int64) error {
	if _, err := that.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("can't update user counters: %w", err)
	}

	return nil
}

func (that *userRepository) scanUser(row *sql.Row) (*entity.User, error) {
	var user entity.User

	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Wins, &user.Losses, &user.Ties)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find user: %w", err)
	}

	return &user, nil
}
