package model

// Contact is a CRM contact: a person reachable over one or more channels
type Contact struct {
	Base
	OrgID      string     `json:"org_id" gorm:"index;not null"`
	Name       string     `json:"name" gorm:"not null"`
	Emails     StringList `json:"emails" gorm:"type:text;not null"`
	Phones     StringList `json:"phones" gorm:"type:text;not null"`
	TelegramID *string    `json:"telegram_id,omitempty" gorm:"index"`
	Tags       StringList `json:"tags" gorm:"type:text;not null"`
}

// TableName overrides the default table name
func (Contact) TableName() string {
	return "contact"
}
