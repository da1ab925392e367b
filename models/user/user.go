package user

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Profile mirrors the authenticated user supplied by the external identity
// provider. Ownership of quotes and shipments is scoped by this record.
type Profile struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid          string  `gorm:"type:varchar(255);not null;unique" json:"uuid"`
	FullName      string  `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone         *string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Email         *string `gorm:"type:varchar(255);unique" json:"email,omitempty"`
	EmailVerified bool    `gorm:"type:bool;default:false" json:"email_verified"`

	Permissions StringSlice `gorm:"type:json" json:"permissions"` // JSON column holding permission strings

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// StringSlice is a custom type to handle JSON serialization for PostgreSQL
type StringSlice []string

// Scan implements the Scanner interface for database deserialization
func (ss *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*ss = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, ss)
}

// Value implements the driver Valuer interface for database serialization
func (ss StringSlice) Value() (driver.Value, error) {
	if ss == nil {
		return nil, nil
	}
	return json.Marshal(ss)
}
