package delivery

import (
	"context"
	"roamsync/subscription"
)

type UpdateKind string

const (
	UpdateLocation UpdateKind = "location"
	UpdateCdr      UpdateKind = "cdr"
)

// Update is one projected entity queued for delivery to a receiver's
// inbox.
type Update struct {
	Id      string      `json:"id"`
	Kind    UpdateKind  `json:"kind"`
	Payload interface{} `json:"payload"`
}

// Sender pushes updates and cancellations to one receiver endpoint.
type Sender interface {
	Send(ctx context.Context, update Update) error
	SendCancel(ctx context.Context, cancellation subscription.Cancellation) error
}
