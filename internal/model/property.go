package model

// Property listing statuses (informal enum)
const (
	PropertyStatusActive  = "active"
	PropertyStatusPending = "pending"
	PropertyStatusSold    = "sold"
	PropertyStatusOff     = "off"
)

// Property is a real-estate listing owned by a tenant. Dom is the
// days-on-market metric.
type Property struct {
	Base
	OrgID        string   `json:"org_id" gorm:"index;not null"`
	MlsID        *string  `json:"mls_id,omitempty" gorm:"index"`
	Street       string   `json:"street" gorm:"index;not null"`
	City         string   `json:"city" gorm:"index;not null"`
	State        string   `json:"state" gorm:"index;not null"`
	PostalCode   string   `json:"postal_code" gorm:"index;not null"`
	Lat          *float64 `json:"lat,omitempty" gorm:"index:ix_property_geo,priority:1"`
	Lon          *float64 `json:"lon,omitempty" gorm:"index:ix_property_geo,priority:2"`
	Price        *int64   `json:"price,omitempty"`
	Beds         *float64 `json:"beds,omitempty"`
	Baths        *float64 `json:"baths,omitempty"`
	Sqft         *int     `json:"sqft,omitempty"`
	LotSqft      *int     `json:"lot_sqft,omitempty"`
	YearBuilt    *int     `json:"year_built,omitempty"`
	PropertyType *string  `json:"property_type,omitempty"`
	Status       *string  `json:"status,omitempty"`
	Dom          *int     `json:"dom,omitempty"`
}

// TableName overrides the default table name
func (Property) TableName() string {
	return "property"
}
