package handler

import (
	"context"
	"strconv"

	"locationbot/internal/domain"

	"go.uber.org/zap"
)

// handleStart handles /start command
func (d *Dispatcher) handleStart(ctx context.Context, ev Event) error {
	d.logger.Info("User started bot", zap.Int64("user_id", ev.UserID))

	if err := d.states.Reset(ctx, ev.UserID); err != nil {
		return d.storageFailure(ctx, ev.UserID, "Failed to reset state", err)
	}

	return d.responder.SendText(ctx, ev.UserID, startText)
}

// handleHelp shows available commands and the current state
func (d *Dispatcher) handleHelp(ctx context.Context, ev Event) error {
	state, err := d.states.Get(ctx, ev.UserID)
	if err != nil {
		return d.storageFailure(ctx, ev.UserID, "Failed to get state", err)
	}

	text := startText + helpText

	count, err := d.places.Count(ctx, ev.UserID)
	if err != nil {
		d.metrics.StorageErrors.Inc()
		d.logger.Warn("Failed to count places", zap.Int64("user_id", ev.UserID), zap.Error(err))
	} else {
		text += placesCountText(count)
	}

	return d.responder.SendText(ctx, ev.UserID, text+stateText(state.Label()))
}

// handleAdd starts the add-place dialogue
func (d *Dispatcher) handleAdd(ctx context.Context, ev Event) error {
	if err := d.states.Set(ctx, ev.UserID, domain.StateAwaitingTitle); err != nil {
		return d.storageFailure(ctx, ev.UserID, "Failed to set state", err)
	}

	return d.responder.SendText(ctx, ev.UserID, askTitleText)
}

// handleList shows the latest places with their locations
func (d *Dispatcher) handleList(ctx context.Context, ev Event) error {
	entries, err := d.places.MostRecent(ctx, ev.UserID, d.listLimit)
	if err != nil {
		return d.storageFailure(ctx, ev.UserID, "Failed to list places", err)
	}

	if err := d.responder.SendText(ctx, ev.UserID, listHeader(len(entries))); err != nil {
		return err
	}

	for _, entry := range entries {
		if err := d.responder.SendText(ctx, ev.UserID, domain.DecodeDisplay(entry)); err != nil {
			return err
		}

		coords, ok := domain.DecodeLocation(entry)
		if !ok {
			continue
		}

		lat, lon, err := parseCoordinates(coords)
		if err != nil {
			d.logger.Warn("Stored coordinates are not numbers",
				zap.Int64("user_id", ev.UserID),
				zap.String("latitude", coords.Latitude),
				zap.String("longitude", coords.Longitude),
			)
			continue
		}

		if err := d.responder.SendLocation(ctx, ev.UserID, lat, lon); err != nil {
			return err
		}
	}

	return nil
}

// handleReset deletes all places of the user
func (d *Dispatcher) handleReset(ctx context.Context, ev Event) error {
	if err := d.places.Clear(ctx, ev.UserID); err != nil {
		return d.storageFailure(ctx, ev.UserID, "Failed to clear places", err)
	}

	d.logger.Info("User places deleted", zap.Int64("user_id", ev.UserID))

	if err := d.states.Reset(ctx, ev.UserID); err != nil {
		return d.storageFailure(ctx, ev.UserID, "Failed to reset state", err)
	}

	if err := d.responder.SendText(ctx, ev.UserID, resetDoneText); err != nil {
		return err
	}

	return d.responder.SendText(ctx, ev.UserID, startText)
}

func parseCoordinates(c domain.Coordinates) (float64, float64, error) {
	lat, err := strconv.ParseFloat(c.Latitude, 64)
	if err != nil {
		return 0, 0, err
	}
	lon, err := strconv.ParseFloat(c.Longitude, 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}
