package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"locationbot/internal/domain"
	"locationbot/internal/repository"

	"go.uber.org/zap"
)

// ErrNoPendingEntry is returned when a location arrives but there is no title to attach it to
var ErrNoPendingEntry = errors.New("no pending place to attach location to")

// PlaceService handles per-user place lists
type PlaceService struct {
	listRepo repository.ListRepository
	logger   *zap.Logger
}

// NewPlaceService creates a new place service
func NewPlaceService(listRepo repository.ListRepository, logger *zap.Logger) *PlaceService {
	return &PlaceService{
		listRepo: listRepo,
		logger:   logger,
	}
}

// PushTitle stores title as a new pending entry.
// A pending title left at the head by an abandoned dialogue is replaced.
func (s *PlaceService) PushTitle(ctx context.Context, userID int64, title string) (string, error) {
	if err := domain.ValidateTitle(title); err != nil {
		return "", err
	}

	head, err := s.listRepo.Range(ctx, userID, 0, 1)
	if err != nil {
		return "", fmt.Errorf("failed to read head entry: %w", err)
	}
	if len(head) > 0 && domain.IsPending(head[0]) {
		if _, err := s.listRepo.PopFront(ctx, userID); err != nil && !errors.Is(err, repository.ErrEmptyList) {
			return "", fmt.Errorf("failed to drop stale title: %w", err)
		}
	}

	if err := s.listRepo.PushFront(ctx, userID, title); err != nil {
		return "", fmt.Errorf("failed to push title: %w", err)
	}
	return title, nil
}

// PushLocation attaches coordinates to the pending entry at the head of the list
// and returns the finalized entry
func (s *PlaceService) PushLocation(ctx context.Context, userID int64, latitude, longitude float64) (string, error) {
	head, err := s.listRepo.Range(ctx, userID, 0, 1)
	if err != nil {
		return "", fmt.Errorf("failed to read head entry: %w", err)
	}
	if len(head) == 0 || !domain.IsPending(head[0]) {
		return "", ErrNoPendingEntry
	}

	title, err := s.listRepo.PopFront(ctx, userID)
	if errors.Is(err, repository.ErrEmptyList) {
		return "", ErrNoPendingEntry
	}
	if err != nil {
		return "", fmt.Errorf("failed to pop pending title: %w", err)
	}

	entry, err := domain.Encode(title, formatCoordinate(latitude), formatCoordinate(longitude))
	if err != nil {
		s.restore(ctx, userID, title)
		return "", err
	}

	if err := s.listRepo.PushFront(ctx, userID, entry); err != nil {
		s.restore(ctx, userID, title)
		return "", fmt.Errorf("failed to push entry: %w", err)
	}

	return entry, nil
}

// restore puts a popped pending title back so the user can retry
func (s *PlaceService) restore(ctx context.Context, userID int64, title string) {
	if err := s.listRepo.PushFront(ctx, userID, title); err != nil {
		s.logger.Error("Failed to restore pending title",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}

// MostRecent returns up to n latest entries, newest first
func (s *PlaceService) MostRecent(ctx context.Context, userID int64, n int) ([]string, error) {
	if n <= 0 {
		return []string{}, nil
	}
	entries, err := s.listRepo.Range(ctx, userID, 0, n)
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	if entries == nil {
		entries = []string{}
	}
	return entries, nil
}

// Count returns number of stored entries
func (s *PlaceService) Count(ctx context.Context, userID int64) (int, error) {
	return s.listRepo.Length(ctx, userID)
}

// Clear removes all entries of the user
func (s *PlaceService) Clear(ctx context.Context, userID int64) error {
	if err := s.listRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	return nil
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
