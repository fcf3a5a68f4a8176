package service

import (
	"context"
	"fmt"
	"time"

	"contesthub/internal/common"
	"contesthub/internal/common/security"
	"contesthub/internal/domain/model"
	"contesthub/internal/domain/repository"
)

type EventService struct {
	eventRepo repository.EventRepository
}

func NewEventService(eventRepo repository.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

// CreateEvent runs the full write pipeline: validate and normalize the
// payload, build the record, insert it.
func (s *EventService) CreateEvent(ctx context.Context, creator security.SessionClaims, req CreateEventRequest) (*model.Event, error) {
	normalized, err := ValidateEventPayload(req)
	if err != nil {
		return nil, err
	}

	event := BuildEventRecord(normalized, creator.UserID)
	if err := s.eventRepo.Insert(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}
	return event, nil
}

// UpdateEvent re-runs validation over the submitted payload and replaces
// the event's content in place, preserving identity, creator, status and
// participation state.
func (s *EventService) UpdateEvent(ctx context.Context, caller security.SessionClaims, id string, req CreateEventRequest) (*model.Event, error) {
	existing, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized, err := ValidateEventPayload(req)
	if err != nil {
		return nil, err
	}
	if normalized.EventType != existing.EventType {
		return nil, common.Errorf("event type cannot be changed: %w", common.ErrValidation)
	}

	existing.Title = normalized.Title
	existing.Description = normalized.Description
	existing.DurationMinutes = normalized.DurationMinutes
	existing.EventMode = normalized.EventMode
	existing.TopicsCovered = normalized.TopicsCovered
	existing.AllowedDepartments = normalized.AllowedDepartments
	existing.Quiz = normalized.Quiz
	existing.Contest = normalized.Contest
	existing.UpdatedAt = time.Now().UTC()

	if err := s.eventRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return existing, nil
}

// DeleteEvent removes an event. Only its creator or a super admin may do
// so.
func (s *EventService) DeleteEvent(ctx context.Context, caller security.SessionClaims, id string) error {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if event.CreatedBy != caller.UserID && !caller.IsSuper {
		return common.Errorf("only the event creator or a super admin may delete it: %w", common.ErrForbidden)
	}
	return s.eventRepo.Delete(ctx, id)
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	return s.eventRepo.FindByID(ctx, id)
}

func (s *EventService) ListEvents(ctx context.Context) ([]*model.Event, error) {
	return s.eventRepo.List(ctx)
}
