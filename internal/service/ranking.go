package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/othello-backend/internal/entity"
)

// rankingsLimit caps the leaderboard at the top entries by wins.
const rankingsLimit = 10

// RankingService keeps the cumulative win/loss/tie counters. RecordResult
// is invoked exactly once per room reaching the finished state; seats not
// bound to a registered user contribute nothing.
type RankingService interface {
	RecordResult(ctx context.Context, room *entity.Room, winner entity.Cell) error
	Rankings(ctx context.Context) ([]*entity.User, error)
	UserInfo(ctx context.Context, id int64) (*entity.User, error)
}

type rankingUserRepo interface {
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	AddWin(ctx context.Context, id int64) error
	AddLoss(ctx context.Context, id int64) error
	AddTie(ctx context.Context, id int64) error
	TopByWins(ctx context.Context, limit int) ([]*entity.User, error)
}

type rankingService struct {
	logger   *slog.Logger
	userRepo rankingUserRepo
}

func NewRankingService(logger *slog.Logger, userRepo rankingUserRepo) RankingService {
	return &rankingService{
		logger:   logger,
		userRepo: userRepo,
	}
}

func (that *rankingService) RecordResult(ctx context.Context, room *entity.Room, winner entity.Cell) error {
	log := that.logger.With("method", "RecordResult", "roomID", room.ID)

	blackUser := room.Seats[0]
	whiteUser := room.Seats[1]

	var err error
	switch winner {
	case entity.CellBlack:
		err = that.credit(ctx, blackUser, whiteUser)
	case entity.CellWhite:
		err = that.credit(ctx, whiteUser, blackUser)
	default:
		err = that.creditTie(ctx, blackUser, whiteUser)
	}

	if err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	log.Info("recorded game result", "winner", winner)

	return nil
}

func (that *rankingService) credit(ctx context.Context, winnerID, loserID int64) error {
	if winnerID != entity.AnonymousUser {
		if err := that.userRepo.AddWin(ctx, winnerID); err != nil {
			return err
		}
	}

	if loserID != entity.AnonymousUser {
		if err := that.userRepo.AddLoss(ctx, loserID); err != nil {
			return err
		}
	}

	return nil
}

func (that *rankingService) creditTie(ctx context.Context, userIDs ...int64) error {
	for _, id := range userIDs {
		if id == entity.AnonymousUser {
			continue
		}
		if err := that.userRepo.AddTie(ctx, id); err != nil {
			return err
		}
	}

	return nil
}

func (that *rankingService) Rankings(ctx context.Context) ([]*entity.User, error) {
	users, err := that.userRepo.TopByWins(ctx, rankingsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load rankings: %w", err)
	}

	return users, nil
}

func (that *rankingService) UserInfo(ctx context.Context, id int64) (*entity.User, error) {
	user, err := that.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}
