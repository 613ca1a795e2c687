package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/othello-backend/internal/apperror"
	"github.com/rocketscienceinc/othello-backend/internal/entity"
)

// defaultRoomID is used when the client does not name a room.
const defaultRoomID = "1"

type joinResponse struct {
	PlayerID int    `json:"player_id"`
	RoomID   string `json:"room_id"`
	Mode     string `json:"mode"`
}

type stateResponse struct {
	Status string       `json:"status"`
	Turn   int          `json:"turn"`
	Mode   string       `json:"mode"`
	RoomID string       `json:"room_id"`
	Board  entity.Board `json:"board"`
}

type moveRequest struct {
	Row    int `json:"r"`
	Col    int `json:"c"`
	Player int `json:"player"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

type rankingEntry struct {
	Username string `json:"username"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Ties     int    `json:"ties"`
}

func (that *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	roomID := queryRoomID(r)
	mode := entity.ParseMode(r.URL.Query().Get("mode"))
	userID := queryInt64(r, "user_id")

	room, seat, err := that.game.Join(r.Context(), roomID, mode, userID)
	if err != nil {
		that.respondError(w, r, err)
		return
	}

	that.respondJSON(w, http.StatusOK, joinResponse{
		PlayerID: seat,
		RoomID:   room.ID,
		Mode:     string(room.Mode),
	})
}

func (that *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	roomID := queryRoomID(r)
	seat := int(queryInt64(r, "player_id"))
	userID := queryInt64(r, "user_id")

	if err := that.game.Leave(r.Context(), roomID, seat, userID); err != nil {
		that.respondError(w, r, err)
		return
	}

	that.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (that *Server) handleState(w http.ResponseWriter, r *http.Request) {
	room, err := that.game.State(r.Context(), queryRoomID(r))
	if err != nil {
		that.respondError(w, r, err)
		return
	}

	that.respondJSON(w, http.StatusOK, stateResponse{
		Status: string(room.Status),
		Turn:   int(room.Turn),
		Mode:   string(room.Mode),
		RoomID: room.ID,
		Board:  room.Board,
	})
}

func (that *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.respondError(w, r, apperror.ErrInvalidInput)
		return
	}

	_, err := that.game.Move(r.Context(), queryRoomID(r), req.Row, req.Col, entity.Cell(req.Player))
	if err != nil {
		that.respondError(w, r, err)
		return
	}

	that.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (that *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.respondError(w, r, apperror.ErrInvalidInput)
		return
	}

	if _, err := that.auth.Register(r.Context(), req.Username, req.Password); err != nil {
		that.respondError(w, r, err)
		return
	}

	that.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (that *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.respondError(w, r, apperror.ErrInvalidInput)
		return
	}

	user, token, err := that.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		that.respondError(w, r, err)
		return
	}

	that.respondJSON(w, http.StatusOK, loginResponse{
		UserID:   user.ID,
		Username: user.Username,
		Token:    token,
	})
}

func (that *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	users, err := that.ranking.Rankings(r.Context())
	if err != nil {
		that.respondError(w, r, err)
		return
	}

	entries := make([]rankingEntry, 0, len(users))
	for _, user := range users {
		entries = append(entries, rankingEntry{
			Username: user.Username,
			Wins:     user.Wins,
			Losses:   user.Losses,
			Ties:     user.Ties,
		})
	}

	that.respondJSON(w, http.StatusOK, entries)
}

func (that *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	userID := queryInt64(r, "user_id")
	if userID == 0 {
		that.respondError(w, r, apperror.ErrInvalidInput)
		return
	}

	user, err := that.ranking.UserInfo(r.Context(), userID)
	if err != nil {
		that.respondError(w, r, err)
		return
	}

	that.respondJSON(w, http.StatusOK, rankingEntry{
		Username: user.Username,
		Wins:     user.Wins,
		Losses:   user.Losses,
		Ties:     user.Ties,
	})
}

func (that *Server) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

func (that *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}

	that.respondJSON(w, status, map[string]string{"error": messageForError(err)})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidInput), errors.Is(err, apperror.ErrIllegalMove):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, apperror.ErrRoomFull), errors.Is(err, apperror.ErrNotYourTurn), errors.Is(err, apperror.ErrGameNotActive):
		return http.StatusForbidden
	case errors.Is(err, apperror.ErrRoomNotFound), errors.Is(err, apperror.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrUsernameTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// messageForError keeps internal detail out of client-facing errors.
func messageForError(err error) string {
	for _, sentinel := range []error{
		apperror.ErrInvalidInput,
		apperror.ErrIllegalMove,
		apperror.ErrInvalidCredentials,
		apperror.ErrRoomFull,
		apperror.ErrNotYourTurn,
		apperror.ErrGameNotActive,
		apperror.ErrRoomNotFound,
		apperror.ErrUserNotFound,
		apperror.ErrUsernameTaken,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}

	return "internal server error"
}

func queryRoomID(r *http.Request) string {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		return defaultRoomID
	}
	return roomID
}

func queryInt64(r *http.Request, key string) int64 {
	value, err := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	if err != nil {
		return 0
	}
	return value
}
