package model

// Org is the tenant root. Every other entity carries an org_id reference
// back to one of these rows.
type Org struct {
	Base
	Name string `json:"name" gorm:"index;not null"`
}

// TableName overrides the default table name
func (Org) TableName() string {
	return "org"
}
