package service

import (
	"context"
	"time"

	"vaultguard/internal/entity"
	"vaultguard/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const recentActivityLimit = 10

type ActivityEntry struct {
	Type string `json:"type"`
	User string `json:"user"`
	Time string `json:"time"`
	File string `json:"file,omitempty"`
}

// ActivityService writes activity records best-effort: a failed write is
// logged and swallowed, never blocking the primary flow.
type ActivityService struct {
	activities repository.ActivityRepository
	log        *logrus.Logger
}

func NewActivityService(activities repository.ActivityRepository, log *logrus.Logger) *ActivityService {
	return &ActivityService{activities: activities, log: log}
}

func (s *ActivityService) Record(ctx context.Context, userID uuid.UUID, activityType entity.ActivityType, documentID *uuid.UUID, userAgent string, ipAddress *string) {
	activity := &entity.Activity{
		UserID:     userID,
		Type:       activityType,
		DocumentID: documentID,
		UserAgent:  userAgent,
		IPAddress:  ipAddress,
	}
	if err := s.activities.Log(ctx, activity); err != nil {
		if s.log != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"user_id": userID,
				"type":    activityType,
			}).Warn("activity logging failed")
		}
	}
}

func (s *ActivityService) Recent(ctx context.Context, userID uuid.UUID) ([]ActivityEntry, error) {
	activities, err := s.activities.RecentByUser(ctx, userID, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	entries := make([]ActivityEntry, 0, len(activities))
	for i := range activities {
		a := &activities[i]
		entry := ActivityEntry{
			Type: string(a.Type),
			User: a.UserAgent,
			Time: a.CreatedAt.Format(time.RFC3339),
		}
		if a.Document != nil {
			entry.File = a.Document.Name
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
