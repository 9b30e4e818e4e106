package notification

import (
	"context"
	"fmt"

	accountRepo "bookline/database/repository/account"

	"firebase.google.com/go/v4/messaging"
)

// NotificationService delivers push notifications to marketplace parties.
type NotificationService interface {
	SendPush(ctx context.Context, accountID, title, body string, data map[string]string) error
}

// FCMNotificationService sends pushes through Firebase Cloud Messaging,
// resolving each recipient's token via the account repository.
type FCMNotificationService struct {
	Accounts accountRepo.AccountRepository
	Client   *messaging.Client
}

func (s *FCMNotificationService) SendPush(ctx context.Context, accountID, title, body string, data map[string]string) error {
	account, err := s.Accounts.GetByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("SendPush: could not find account %s: %w", accountID, err)
	}
	if account.FCMToken == "" {
		return fmt.Errorf("SendPush: account %s has no FCM token", accountID)
	}

	msg := &messaging.Message{
		Token: account.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := s.Client.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendPush: failed to send FCM message: %w", err)
	}
	return nil
}
