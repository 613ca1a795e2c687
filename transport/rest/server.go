package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/othello-backend/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gamePlayService interface {
	Join(ctx context.Context, roomID string, mode entity.Mode, userID int64) (*entity.Room, int, error)
	Leave(ctx context.Context, roomID string, seat int, userID int64) error
	Move(ctx context.Context, roomID string, row, col int, color entity.Cell) (*entity.Room, error)
	State(ctx context.Context, roomID string) (*entity.Room, error)
}

type authService interface {
	Register(ctx context.Context, username, password string) (*entity.User, error)
	Login(ctx context.Context, username, password string) (*entity.User, string, error)
}

type rankingService interface {
	Rankings(ctx context.Context) ([]*entity.User, error)
	UserInfo(ctx context.Context, id int64) (*entity.User, error)
}

type Server struct {
	logger *slog.Logger

	game    gamePlayService
	auth    authService
	ranking rankingService
}

func New(logger *slog.Logger, game gamePlayService, auth authService, ranking rankingService) *Server {
	return &Server{
		logger:  logger,
		game:    game,
		auth:    auth,
		ranking: ranking,
	}
}

// Handler builds the route table for the JSON API.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", that.handlePing)
	mux.HandleFunc("GET /join", that.handleJoin)
	mux.HandleFunc("GET /leave", that.handleLeave)
	mux.HandleFunc("GET /state", that.handleState)
	mux.HandleFunc("POST /move", that.handleMove)
	mux.HandleFunc("POST /register", that.handleRegister)
	mux.HandleFunc("POST /login", that.handleLogin)
	mux.HandleFunc("GET /rankings", that.handleRankings)
	mux.HandleFunc("GET /user", that.handleUser)

	return mux
}

// Start serves the JSON API until the context is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
