package models

// AlertSubscriber is an operator receiving telegram alerts.
type AlertSubscriber struct {
	UserID   int    `json:"user_id" bson:"user_id"`
	ChatID   int64  `json:"chat_id" bson:"chat_id"`
	Username string `json:"username" bson:"username"`
}
