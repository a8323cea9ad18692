package model

import "time"

// Thread statuses
const (
	ThreadStatusOpen   = "open"
	ThreadStatusClosed = "closed"
)

// Thread is a conversation with a contact on a single channel, optionally
// tied to a deal. last_message_at is refreshed when a message lands in it.
type Thread struct {
	Base
	OrgID         string     `json:"org_id" gorm:"index;not null;index:ix_thread_org_id_deal_id,priority:1"`
	ContactID     *string    `json:"contact_id,omitempty" gorm:"index"`
	DealID        *string    `json:"deal_id,omitempty" gorm:"index;index:ix_thread_org_id_deal_id,priority:2"`
	Subject       *string    `json:"subject,omitempty"`
	Channel       string     `json:"channel" gorm:"index;not null"`
	Status        string     `json:"status" gorm:"default:open"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
}

// TableName overrides the default table name
func (Thread) TableName() string {
	return "thread"
}
