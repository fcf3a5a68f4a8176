package service

import (
	"time"

	"contesthub/internal/domain/model"

	"github.com/google/uuid"
)

const (
	defaultOrganizer = "Department of Computer Science"
	defaultRules     = "Participants must not open other tabs or applications during a strict-mode event. Submissions after the timer ends are not counted."
)

// BuildEventRecord turns a normalized payload into the persistence-ready
// record: fresh id, creator stamp, server-assigned timestamps, empty
// participation state and queue status. It performs no I/O.
func BuildEventRecord(normalized *NormalizedEvent, creatorID string) *model.Event {
	now := time.Now().UTC()
	return &model.Event{
		ID:                 uuid.NewString(),
		Title:              normalized.Title,
		Description:        normalized.Description,
		DurationMinutes:    normalized.DurationMinutes,
		Status:             model.StatusQueue,
		EventType:          normalized.EventType,
		EventMode:          normalized.EventMode,
		TopicsCovered:      normalized.TopicsCovered,
		AllowedDepartments: normalized.AllowedDepartments,
		Participants:       []string{},
		Submissions:        []model.Submission{},
		Organizer:          defaultOrganizer,
		Rules:              defaultRules,
		LeaderboardEnabled: true,
		CreatedBy:          creatorID,
		CreatedAt:          now,
		UpdatedAt:          now,
		Quiz:               normalized.Quiz,
		Contest:            normalized.Contest,
	}
}
