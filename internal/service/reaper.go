package service

import (
	"context"
	"time"

	"github.com/rocketscienceinc/othello-backend/internal/entity"
)

// StartReaper runs the stale-room sweep on a fixed interval until the
// context is canceled. Sweep failures are logged and retried on the next
// tick; they never take the process down.
func (that *gamePlayService) StartReaper(ctx context.Context, interval time.Duration) {
	log := that.logger.With("component", "reaper")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("reaper stopped")
			return
		case <-ticker.C:
			if err := that.ReapStaleRooms(ctx); err != nil {
				log.Error("failed to reap stale rooms", "error", err)
			}
		}
	}
}

// ReapStaleRooms performs the two sweeps over last_activity: rooms idle
// beyond the first threshold are marked timed_out, rooms idle beyond the
// second are deleted. The gap between the thresholds is the grace window
// that lets pollers observe the timed_out status before the room is gone.
// The sweep takes the same lock as every player-triggered operation.
func (that *gamePlayService) ReapStaleRooms(ctx context.Context) error {
	log := that.logger.With("method", "ReapStaleRooms")

	that.mu.Lock()
	defer that.mu.Unlock()

	rooms, err := that.rooms.All(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, room := range rooms {
		idle := now.Sub(room.LastActivity)

		switch {
		case idle > that.deleteAfter:
			if err = that.rooms.Delete(ctx, room.ID); err != nil {
				log.Error("failed to delete stale room", "roomID", room.ID, "error", err)
				continue
			}
			log.Info("deleted stale room", "roomID", room.ID)
		case idle > that.timeoutAfter && !room.IsTerminal():
			// Marking preserves last_activity so the delete sweep still
			// fires one threshold later.
			room.Status = entity.StatusTimedOut
			if err = that.rooms.Update(ctx, room); err != nil {
				log.Error("failed to mark room as timed out", "roomID", room.ID, "error", err)
				continue
			}
			log.Info("marked room as timed out", "roomID", room.ID)
		}
	}

	return nil
}
