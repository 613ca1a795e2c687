package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/othello-backend/internal/apperror"
	"github.com/rocketscienceinc/othello-backend/internal/entity"
)

// RoomService is the load/store boundary for room state. It owns the
// get-or-create semantics: a room id referenced for the first time is
// materialized with the requested mode; once a room exists the requested
// mode is ignored, since mode is fixed at creation.
type RoomService interface {
	Get(ctx context.Context, id string) (*entity.Room, error)
	GetOrCreate(ctx context.Context, id string, mode entity.Mode) (*entity.Room, error)
	Update(ctx context.Context, room *entity.Room) error
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) ([]*entity.Room, error)
}

type roomRepo interface {
	CreateOrUpdate(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	DeleteByID(ctx context.Context, id string) error
	All(ctx context.Context) ([]*entity.Room, error)
}

type roomService struct {
	roomRepo roomRepo
}

func NewRoomService(roomRepo roomRepo) RoomService {
	return &roomService{
		roomRepo: roomRepo,
	}
}

func (that *roomService) Get(ctx context.Context, id string) (*entity.Room, error) {
	room, err := that.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrRoomNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return room, nil
}

func (that *roomService) GetOrCreate(ctx context.Context, id string, mode entity.Mode) (*entity.Room, error) {
	room, err := that.roomRepo.GetByID(ctx, id)
	if err == nil {
		return room, nil
	}

	if !errors.Is(err, apperror.ErrRoomNotFound) {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	room = entity.NewRoom(id, mode)
	if err = that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	return room, nil
}

func (that *roomService) Update(ctx context.Context, room *entity.Room) error {
	if err := that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	return nil
}

func (that *roomService) Delete(ctx context.Context, id string) error {
	if err := that.roomRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	return nil
}

func (that *roomService) All(ctx context.Context) ([]*entity.Room, error) {
	rooms, err := that.roomRepo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	return rooms, nil
}
