package handler

import (
	"context"
	"errors"

	"locationbot/internal/domain"
	"locationbot/internal/service"

	"go.uber.org/zap"
)

// handleTitle stores the place title and asks for its location
func (d *Dispatcher) handleTitle(ctx context.Context, ev Event) error {
	title := cleanTitle(ev.Text)
	if title == "" {
		return d.responder.SendText(ctx, ev.UserID, askTitleText)
	}

	title, err := d.places.PushTitle(ctx, ev.UserID, title)
	if errors.Is(err, domain.ErrSeparatorInTitle) {
		return d.responder.SendText(ctx, ev.UserID, badTitleText)
	}
	if err != nil {
		return d.storageFailure(ctx, ev.UserID, "Failed to save title", err)
	}

	d.logger.Info("Place title saved",
		zap.Int64("user_id", ev.UserID),
		zap.String("title", title),
	)

	if err := d.states.Set(ctx, ev.UserID, domain.StateAwaitingAddress); err != nil {
		return d.storageFailure(ctx, ev.UserID, "Failed to set state", err)
	}

	return d.responder.SendText(ctx, ev.UserID, askLocationText(title))
}

// handleLocation finalizes the pending place with the received coordinates
func (d *Dispatcher) handleLocation(ctx context.Context, ev Event) error {
	entry, err := d.places.PushLocation(ctx, ev.UserID, ev.Location.Latitude, ev.Location.Longitude)
	if errors.Is(err, service.ErrNoPendingEntry) {
		return d.responder.SendText(ctx, ev.UserID, invalidLocationText)
	}
	if err != nil {
		return d.storageFailure(ctx, ev.UserID, "Failed to save location", err)
	}

	d.metrics.PlacesSaved.Inc()
	d.logger.Info("Place saved",
		zap.Int64("user_id", ev.UserID),
		zap.Float64("latitude", ev.Location.Latitude),
		zap.Float64("longitude", ev.Location.Longitude),
	)

	// The place is stored, so a failed state write is not reported to the user
	if err := d.states.Set(ctx, ev.UserID, domain.StateAwaitingStart); err != nil {
		d.metrics.StorageErrors.Inc()
		d.logger.Error("Failed to set state", zap.Int64("user_id", ev.UserID), zap.Error(err))
	}

	if err := d.responder.SendText(ctx, ev.UserID, placeAddedText(domain.DecodeDisplay(entry))); err != nil {
		return err
	}

	d.sendAddress(ctx, ev.UserID, ev.Location)

	return d.responder.SendText(ctx, ev.UserID, startText)
}

// sendAddress looks up and sends the street address when a geocoder is configured.
// Lookup failures are only logged.
func (d *Dispatcher) sendAddress(ctx context.Context, userID int64, loc *Location) {
	if d.geocoder == nil {
		return
	}

	address, err := d.geocoder.ReverseGeocode(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		d.metrics.GeocoderErrors.Inc()
		d.logger.Warn("Failed to resolve address",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return
	}

	if err := d.responder.SendText(ctx, userID, addressText(address)); err != nil {
		d.logger.Warn("Failed to send address", zap.Int64("user_id", userID), zap.Error(err))
	}
}
