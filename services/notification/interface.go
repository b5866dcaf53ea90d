package notification

import (
	"context"
	"fmt"

	"mentora/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService dispatches best-effort pushes to clients and
// mentors. It is never in the reservation's critical path: callers fire
// after the state transition commits and log failures instead of
// propagating them.
type NotificationService interface {
	SendPush(ctx context.Context, recipientID, role, title, body string, data map[string]string) error
}

// FCMNotificationService is the production implementation. Devices
// subscribe to a per-recipient topic ("<role>-<id>") at sign-in, so no
// token bookkeeping is needed here.
type FCMNotificationService struct {
	Logger *zap.Logger
}

func (s *FCMNotificationService) SendPush(ctx context.Context, recipientID, role, title, body string, data map[string]string) error {
	if data == nil {
		data = map[string]string{}
	}
	data["role"] = role

	msg := &messaging.Message{
		Topic: fmt.Sprintf("%s-%s", role, recipientID),
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	response, err := utils.FCMClient.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendPush: failed to send FCM message: %w", err)
	}

	s.Logger.Debug("push dispatched",
		zap.String("recipient", recipientID),
		zap.String("role", role),
		zap.String("response", response),
	)
	return nil
}
