package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-account-service/internal/domain/entity"
	"github.com/oksasatya/user-account-service/pkg/helpers"
)

const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// UserEvent is the message published on the user events queue.
type UserEvent struct {
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (s *UserService) publish(ctx context.Context, eventType string, u *entity.User) {
	if s.Events == nil {
		return
	}
	evt := UserEvent{
		Type:       eventType,
		UserID:     u.ID,
		Name:       u.Name,
		Email:      u.Email,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.Events.PublishJSON(ctx, evt); err != nil {
		helpers.LogWarn(s.Logger, "publish user event failed", err, logrus.Fields{"type": eventType, "user_id": u.ID})
	}
}
