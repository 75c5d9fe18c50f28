package ocpi

import (
	"context"
	"fmt"
	"roamsync/delivery"
	"roamsync/ocpi/client"
	"roamsync/ocpi/types"
	"roamsync/subscription"
)

const (
	locationsEndpoint = "/locations"
	cdrsEndpoint      = "/cdrs"
	cancelEndpoint    = "/subscriptions/%s/cancel"
)

// PushSender delivers projected entities to one receiver's inbox.
type PushSender struct {
	client         *client.Client
	subscriptionId types.SubscriptionId
}

func NewPushSender(endpoint, token string, subscriptionId types.SubscriptionId) *PushSender {
	return &PushSender{
		client:         client.New(endpoint, token),
		subscriptionId: subscriptionId,
	}
}

func (s *PushSender) Send(ctx context.Context, update delivery.Update) error {
	switch update.Kind {
	case delivery.UpdateLocation:
		return s.client.Put(ctx, locationsEndpoint, update.Payload)
	case delivery.UpdateCdr:
		return s.client.Post(ctx, cdrsEndpoint, update.Payload)
	}
	return fmt.Errorf("unknown update kind: %s", update.Kind)
}

func (s *PushSender) SendCancel(ctx context.Context, cancellation subscription.Cancellation) error {
	return s.client.Post(ctx, fmt.Sprintf(cancelEndpoint, s.subscriptionId), cancellation)
}
