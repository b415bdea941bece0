package handler

import (
	"context"

	"locationbot/internal/domain"
	"locationbot/internal/geocoding"
	"locationbot/internal/metrics"
	"locationbot/internal/service"

	"go.uber.org/zap"
)

// Commands recognized in any state
const (
	CommandStart = "start"
	CommandHelp  = "help"
	CommandAdd   = "add"
	CommandList  = "list"
	CommandReset = "reset"
)

// DefaultListLimit is how many entries /list shows
const DefaultListLimit = 10

// EventKind is the type of inbound message
type EventKind int

const (
	EventCommand EventKind = iota
	EventText
	EventLocation
)

func (k EventKind) String() string {
	switch k {
	case EventCommand:
		return "command"
	case EventText:
		return "text"
	case EventLocation:
		return "location"
	default:
		return "unknown"
	}
}

// Location is an inbound geolocation payload
type Location struct {
	Latitude  float64
	Longitude float64
}

// Event is a single inbound message from a user
type Event struct {
	UserID   int64
	Kind     EventKind
	Command  string // set for EventCommand, without leading slash
	Text     string // raw message text
	Location *Location
}

// Responder delivers replies to a user
type Responder interface {
	SendText(ctx context.Context, userID int64, text string) error
	SendLocation(ctx context.Context, userID int64, latitude, longitude float64) error
}

// Dispatcher routes events to handlers based on command and conversation state.
// Events of one user must be dispatched one at a time, in arrival order.
type Dispatcher struct {
	places    *service.PlaceService
	states    *service.StateTracker
	responder Responder
	geocoder  geocoding.ReverseGeocoder // optional
	metrics   *metrics.Metrics
	logger    *zap.Logger
	listLimit int
}

// DispatcherOption configures optional Dispatcher dependencies
type DispatcherOption func(*Dispatcher)

// WithGeocoder enables address lookup for saved places
func WithGeocoder(g geocoding.ReverseGeocoder) DispatcherOption {
	return func(d *Dispatcher) {
		d.geocoder = g
	}
}

// WithListLimit overrides DefaultListLimit
func WithListLimit(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.listLimit = n
		}
	}
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(
	places *service.PlaceService,
	states *service.StateTracker,
	responder Responder,
	m *metrics.Metrics,
	logger *zap.Logger,
	opts ...DispatcherOption,
) *Dispatcher {
	d := &Dispatcher{
		places:    places,
		states:    states,
		responder: responder,
		metrics:   m,
		logger:    logger,
		listLimit: DefaultListLimit,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch handles a single inbound event
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) error {
	if ev.Kind == EventCommand {
		switch ev.Command {
		case CommandStart:
			return d.handleStart(ctx, ev)
		case CommandHelp:
			return d.handleHelp(ctx, ev)
		case CommandAdd:
			return d.handleAdd(ctx, ev)
		case CommandList:
			return d.handleList(ctx, ev)
		case CommandReset:
			return d.handleReset(ctx, ev)
		}
		return d.handleUnknown(ctx, ev)
	}

	state, err := d.states.Get(ctx, ev.UserID)
	if err != nil {
		return d.storageFailure(ctx, ev.UserID, "Failed to get state", err)
	}

	switch {
	case ev.Kind == EventText && state == domain.StateAwaitingTitle:
		return d.handleTitle(ctx, ev)
	case ev.Kind == EventLocation && ev.Location != nil && state == domain.StateAwaitingAddress:
		return d.handleLocation(ctx, ev)
	}

	// Text while awaiting coordinates also ends up here
	return d.handleUnknown(ctx, ev)
}

// handleUnknown replies to anything no other handler accepted
func (d *Dispatcher) handleUnknown(ctx context.Context, ev Event) error {
	d.logger.Debug("Unrecognized message",
		zap.Int64("user_id", ev.UserID),
		zap.Stringer("kind", ev.Kind),
		zap.String("text", ev.Text),
	)
	return d.responder.SendText(ctx, ev.UserID, unknownCommandText(ev.Text))
}

// storageFailure logs a persistence error and tells the user to retry later
func (d *Dispatcher) storageFailure(ctx context.Context, userID int64, msg string, err error) error {
	d.metrics.StorageErrors.Inc()
	d.logger.Error(msg,
		zap.Int64("user_id", userID),
		zap.Error(err),
	)
	return d.responder.SendText(ctx, userID, unavailableText)
}
