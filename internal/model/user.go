package model

// User is an agent or admin belonging to a tenant. The password hash is
// never serialized in responses.
type User struct {
	Base
	OrgID        string `json:"org_id" gorm:"index;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	Name         string `json:"name" gorm:"not null"`
	IsAdmin      bool   `json:"is_admin" gorm:"default:false"`
	PasswordHash string `json:"-"`
}

// TableName overrides the default table name
func (User) TableName() string {
	return "app_user"
}
