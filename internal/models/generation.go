package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Generation outcomes
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
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

// Generation is one journaled call to the text generation service
type Generation struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time        `gorm:"index" json:"created_at"`
	RequestID    string           `gorm:"size:64" json:"request_id,omitempty"`
	Provider     string           `gorm:"size:32;not null" json:"provider"`
	Language     string           `gorm:"type:text" json:"language"`
	Cuisine      string           `gorm:"type:text" json:"cuisine"`
	Ingredients  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Restrictions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"restrictions"`
	Prompt       string           `gorm:"type:text" json:"prompt"`
	Outcome      string           `gorm:"size:16;not null" json:"outcome"`
	Error        string           `gorm:"type:text" json:"error,omitempty"`
	DurationMS   int64            `json:"duration_ms"`
}

func (Generation) TableName() string {
	return "generations"
}
