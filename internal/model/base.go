package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// BaseModel handles ID (UUID) and standard Audit Trails.
// Deletes are hard deletes, so there is no DeletedAt column.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Audit User Tracking
	CreatedBy string `json:"created_by"`
	UpdatedBy string `json:"updated_by"`
}

// BeforeCreate assigns a UUID unless the caller already chose one
func (base *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	return
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
