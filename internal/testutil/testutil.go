package testutil

import (
	"context"
	"sync"

	"locationbot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestEntry creates an encoded entry, panicking on invalid title
func NewTestEntry(title, lat, lon string) string {
	entry, err := domain.Encode(title, lat, lon)
	if err != nil {
		panic(err)
	}
	return entry
}

// Reply is a single outbound message captured by RecordingResponder
type Reply struct {
	UserID    int64
	Text      string
	Location  bool
	Latitude  float64
	Longitude float64
}

// RecordingResponder captures everything the dispatcher sends
type RecordingResponder struct {
	mu      sync.Mutex
	Replies []Reply
	Err     error // returned by every send when set
}

func (r *RecordingResponder) SendText(_ context.Context, userID int64, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Replies = append(r.Replies, Reply{UserID: userID, Text: text})
	return nil
}

func (r *RecordingResponder) SendLocation(_ context.Context, userID int64, lat, lon float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Replies = append(r.Replies, Reply{UserID: userID, Location: true, Latitude: lat, Longitude: lon})
	return nil
}

// Texts returns text replies in order
func (r *RecordingResponder) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var texts []string
	for _, reply := range r.Replies {
		if !reply.Location {
			texts = append(texts, reply.Text)
		}
	}
	return texts
}

// Locations returns location replies in order
func (r *RecordingResponder) Locations() []Reply {
	r.mu.Lock()
	defer r.mu.Unlock()
	var locations []Reply
	for _, reply := range r.Replies {
		if reply.Location {
			locations = append(locations, reply)
		}
	}
	return locations
}

// Reset forgets captured replies
func (r *RecordingResponder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Replies = nil
}
