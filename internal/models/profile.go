package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Profile is the optional one-to-one extension of a User. It is created
// lazily on the first profile update.
type Profile struct {
	ID        uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID        `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Bio       string           `gorm:"type:text" json:"bio"`
	Location  string           `gorm:"size:255" json:"location"`
	AvatarURL string           `gorm:"size:255" json:"avatar_url"`
	Interests JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"interests"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
}
