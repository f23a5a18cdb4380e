package service

import (
	"context"

	"github.com/arfandy/journal-backend/internal/apperr"
	"github.com/arfandy/journal-backend/internal/logging"
	"github.com/arfandy/journal-backend/internal/notify"
	"github.com/arfandy/journal-backend/internal/transport"
	"github.com/arfandy/journal-backend/internal/validate"
)

type NotificationService struct {
	Sender   *notify.Sender
	Validate *validate.Validator
}

// Send validates the request and forwards it to the push sender once; there
// is no retry on failure.
func (s *NotificationService) Send(ctx context.Context, req transport.SendNotificationRequest) (string, error) {
	l := logging.FromContext(ctx).With("svc", "notification.send")

	if err := s.Validate.Struct(req); err != nil {
		return "", err
	}
	if !s.Sender.Configured() {
		l.Error("send_failed", "status", 500, "reason", "push endpoint not configured")
		return "", apperr.Config("Push sender is not configured")
	}

	deliveryID, err := s.Sender.Send(ctx, req.Title, req.Body, req.Token)
	if err != nil {
		l.Error("send_failed", "status", 500, "error", err)
		return "", apperr.Unexpected(err)
	}

	l.Info("send_success", "delivery_id", deliveryID)
	return deliveryID, nil
}
