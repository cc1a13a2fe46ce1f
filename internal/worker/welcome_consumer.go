package worker

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-account-service/internal/application"
	"github.com/oksasatya/user-account-service/pkg/mailer"
)

// Outcome tells the consumer how to settle a delivery.
type Outcome int

const (
	Ack     Outcome = iota // processed or ignored
	Reject                 // unprocessable, drop without requeue
	Requeue                // transient failure, deliver again
)

// WelcomeConsumer sends a welcome mail for every user.created event.
type WelcomeConsumer struct {
	Sender  mailer.Sender
	AppName string
	Logger  *logrus.Logger
	Timeout time.Duration
}

func NewWelcomeConsumer(sender mailer.Sender, appName string, logger *logrus.Logger) *WelcomeConsumer {
	return &WelcomeConsumer{Sender: sender, AppName: appName, Logger: logger, Timeout: 15 * time.Second}
}

// Handle processes one message body.
func (w *WelcomeConsumer) Handle(ctx context.Context, body []byte) Outcome {
	var evt application.UserEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		w.Logger.WithError(err).Warn("bad user event payload")
		return Reject
	}
	if evt.Type != application.EventUserCreated {
		return Ack
	}
	if evt.Email == "" {
		w.Logger.WithField("user_id", evt.UserID).Warn("user.created without email")
		return Reject
	}

	msg, err := mailer.RenderWelcome(mailer.WelcomeData{Name: evt.Name, Email: evt.Email, AppName: w.AppName})
	if err != nil {
		w.Logger.WithError(err).WithField("user_id", evt.UserID).Error("render welcome mail failed")
		return Reject
	}

	c, cancel := context.WithTimeout(ctx, w.Timeout)
	defer cancel()
	if err := w.Sender.Send(c, msg); err != nil {
		w.Logger.WithError(err).WithField("user_id", evt.UserID).Warn("send welcome mail failed")
		return Requeue
	}
	w.Logger.WithField("user_id", evt.UserID).Info("welcome mail sent")
	return Ack
}

// Run settles deliveries until msgs is closed or ctx is done.
func (w *WelcomeConsumer) Run(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			switch w.Handle(ctx, msg.Body) {
			case Ack:
				_ = msg.Ack(false)
			case Reject:
				_ = msg.Nack(false, false)
			case Requeue:
				_ = msg.Nack(false, true)
			}
		}
	}
}
