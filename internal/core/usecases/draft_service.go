package usecases

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/planmytrip/backend/internal/core/domain"
	"github.com/planmytrip/backend/internal/core/ports"
)

// draftTTLSeconds bounds how long an abandoned planning session lingers.
const draftTTLSeconds = 24 * 60 * 60

// RouteDraft is the in-progress stop list of one planning session, keyed by
// an opaque draft id. It lives in the cache with a bounded TTL and is never
// process-global state; the client holds the id and hands the finished list
// to SaveRoute.
type RouteDraft struct {
	ID        string         `json:"id"`
	TripID    string         `json:"trip_id,omitempty"`
	Places    []domain.Place `json:"places"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// DraftService manages session-scoped route drafts.
type DraftService struct {
	cache ports.CacheService
}

// NewDraftService creates a new DraftService.
func NewDraftService(cache ports.CacheService) *DraftService {
	return &DraftService{cache: cache}
}

// Create starts an empty draft, optionally bound to a trip.
func (s *DraftService) Create(ctx context.Context, tripID string) (*RouteDraft, error) {
	draft := &RouteDraft{
		ID:        uuid.NewString(),
		TripID:    tripID,
		Places:    []domain.Place{},
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.store(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Get loads a draft by id.
func (s *DraftService) Get(ctx context.Context, id string) (*RouteDraft, error) {
	if id == "" {
		return nil, domain.NewValidationError("draft_id", "required")
	}
	data, err := s.cache.Get(ctx, draftKey(id))
	if err != nil {
		return nil, domain.ErrDraftNotFound
	}
	var draft RouteDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, domain.ErrDraftNotFound
	}
	return &draft, nil
}

// AddPlace appends a place to the draft's stop list.
func (s *DraftService) AddPlace(ctx context.Context, id string, place domain.Place) (*RouteDraft, error) {
	if place.Name == "" {
		return nil, domain.NewValidationError("name", "required")
	}
	if place.Coordinate.IsZero() {
		return nil, domain.NewValidationError("coordinate", "required")
	}
	draft, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if place.Category == "" {
		place.Category = domain.CategoryOther
	}
	draft.Places = append(draft.Places, place)
	if err := s.store(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// RemovePlace drops the place at index from the draft's stop list.
func (s *DraftService) RemovePlace(ctx context.Context, id string, index int) (*RouteDraft, error) {
	draft, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(draft.Places) {
		return nil, domain.NewValidationError("index", "out of range")
	}
	draft.Places = append(draft.Places[:index], draft.Places[index+1:]...)
	if err := s.store(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Delete discards a draft.
func (s *DraftService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.NewValidationError("draft_id", "required")
	}
	return s.cache.Delete(ctx, draftKey(id))
}

func (s *DraftService) store(ctx context.Context, draft *RouteDraft) error {
	draft.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, draftKey(draft.ID), data, draftTTLSeconds)
}

func draftKey(id string) string { return "draft:route:" + id }
