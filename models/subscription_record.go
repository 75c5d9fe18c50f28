package models

// SubscriptionRecord is the persisted form of one negotiated
// subscription, enough to rebuild its agreement and delivery engine
// after a restart.
type SubscriptionRecord struct {
	Id                   string `json:"subscription_id" bson:"subscription_id"`
	Endpoint             string `json:"endpoint" bson:"endpoint"`
	Token                string `json:"token" bson:"token"`
	RetryIntervalSeconds int64  `json:"retry_interval_seconds" bson:"retry_interval_seconds"`
	MaxQueueSize         uint   `json:"max_queue_size" bson:"max_queue_size"`
	ParallelismLimit     *uint  `json:"parallelism_limit,omitempty" bson:"parallelism_limit,omitempty"`
	Phase                string `json:"phase" bson:"phase"`
	CancelReason         string `json:"cancel_reason,omitempty" bson:"cancel_reason,omitempty"`
}
