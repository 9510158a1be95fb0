package model

import (
	"time"

	"github.com/google/uuid"
)

// LiveSellingEvent is a promotion whose single ads fee is shared by every
// order that references it. The event does not store its orders.
type LiveSellingEvent struct {
	BaseModel
	EventDate time.Time `gorm:"type:date;not null" json:"event_date"`
	AdsFee    float64   `gorm:"default:0" json:"ads_fee"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
}

// TableName specifies the table name for GORM
func (LiveSellingEvent) TableName() string {
	return "live_selling_events"
}

// LiveSellingEventResponse for API responses
type LiveSellingEventResponse struct {
	ID        uuid.UUID `json:"event_id"`
	EventDate string    `json:"event_date"`
	AdsFee    float64   `json:"ads_fee"`
	Notes     string    `json:"notes,omitempty"`
}

func (e *LiveSellingEvent) ToResponse() LiveSellingEventResponse {
	return LiveSellingEventResponse{
		ID:        e.ID,
		EventDate: e.EventDate.Format(DateLayout),
		AdsFee:    e.AdsFee,
		Notes:     e.Notes,
	}
}
