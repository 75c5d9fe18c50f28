package subscription

type CancelReason string

const (
	ReasonQueueOverflow     CancelReason = "QUEUE_OVERFLOW"
	ReasonDataNoLongerAvail CancelReason = "DATA_NO_LONGER_AVAILABLE"
	ReasonOther             CancelReason = "OTHER"
)

// Cancellation terminates a subscription; there are no further
// deliveries after it has been issued.
type Cancellation struct {
	Reason CancelReason `json:"reason"`
}

type RenegotiationStatus string

const (
	RenegotiationAccepted RenegotiationStatus = "ACCEPTED"
	RenegotiationRejected RenegotiationStatus = "REJECTED"
)
