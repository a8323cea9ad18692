package model

import "time"

// Message directions
const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

// Message statuses
const (
	MessageStatusPending   = "pending"
	MessageStatusSent      = "sent"
	MessageStatusDelivered = "delivered"
	MessageStatusFailed    = "failed"
)

// Message is a single message within a thread
type Message struct {
	Base
	ThreadID          string     `json:"thread_id" gorm:"index;not null;index:ix_message_thread_id_sent_at,priority:1"`
	OrgID             string     `json:"org_id" gorm:"index;not null"`
	Direction         string     `json:"direction" gorm:"not null"`
	Channel           string     `json:"channel" gorm:"not null"`
	Body              *string    `json:"body,omitempty" gorm:"type:text"`
	Attachments       JSONMap    `json:"attachments,omitempty" gorm:"type:text"`
	SentAt            *time.Time `json:"sent_at,omitempty" gorm:"index;index:ix_message_thread_id_sent_at,priority:2"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
	ReadAt            *time.Time `json:"read_at,omitempty"`
	ProviderMessageID *string    `json:"provider_message_id,omitempty" gorm:"index"`
	Status            string     `json:"status" gorm:"default:pending"`
}

// TableName overrides the default table name
func (Message) TableName() string {
	return "message"
}
