// README: Push notifications to travelers through Firebase Cloud Messaging.
package notification

import (
	"context"
	"errors"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"

	"courier/internal/logger"
	"courier/internal/modules/order"
	"courier/internal/modules/traveler"
)

var ErrNoDeviceToken = errors.New("traveler has no device token")

// MessageSender is the subset of *messaging.Client used here.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCM delivers assignment notices to a traveler's device.
type FCM struct {
	client MessageSender
	log    *zap.Logger
}

func NewFCM(client MessageSender, log *zap.Logger) *FCM {
	return &FCM{client: client, log: logger.OrNop(log)}
}

// NotifyTravelerAssigned sends a data + notification message. The device token
// comes from the traveler record.
func (f *FCM) NotifyTravelerAssigned(ctx context.Context, t traveler.Traveler, o order.Order) error {
	if t.DeviceToken == "" {
		return fmt.Errorf("order %s: %w", o.ID, ErrNoDeviceToken)
	}
	id, err := f.client.Send(ctx, assignmentMessage(t.DeviceToken, o))
	if err != nil {
		return fmt.Errorf("sending FCM for order %s: %w", o.ID, err)
	}
	f.log.Info("fcm sent",
		zap.String("order_id", string(o.ID)),
		zap.String("traveler_id", string(t.ID)),
		zap.String("message_id", id))
	return nil
}

func assignmentMessage(token string, o order.Order) *messaging.Message {
	return &messaging.Message{
		Token: token,
		Data: map[string]string{
			"type":             "order_assigned",
			"order_id":         string(o.ID),
			"product_name":     o.OrderInfo.ProductName,
			"origin_city":      o.OrderInfo.OriginCity,
			"destination_city": o.OrderInfo.DestinationCity,
		},
		Notification: &messaging.Notification{
			Title: "New delivery assigned",
			Body:  fmt.Sprintf("%s to %s", o.OrderInfo.ProductName, o.OrderInfo.DestinationCity),
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}
}

// Nop drops every notification.
type Nop struct{}

func (Nop) NotifyTravelerAssigned(context.Context, traveler.Traveler, order.Order) error {
	return nil
}
