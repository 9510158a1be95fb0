package model

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	BaseModel
	Name              string     `gorm:"type:varchar(255);not null" json:"name"`
	PurchasePrice     float64    `gorm:"not null" json:"purchase_price"`
	ShippingFee       float64    `gorm:"default:0" json:"shipping_fee"`
	PurchaseDate      *time.Time `gorm:"type:date" json:"purchase_date"`
	RegistrationDate  *time.Time `gorm:"type:date" json:"registration_date"`
	StartQuantity     int        `gorm:"not null" json:"start_quantity"`
	RemainingQuantity int        `gorm:"not null" json:"remaining_quantity"`
	SupplierID        *int       `json:"supplier_id,omitempty"`
}

// ProductResponse for API responses
type ProductResponse struct {
	ID                uuid.UUID `json:"product_id"`
	Name              string    `json:"name"`
	PurchasePrice     float64   `json:"purchase_price"`
	ShippingFee       float64   `json:"shipping_fee"`
	PurchaseDate      *string   `json:"purchase_date"`
	RegistrationDate  *string   `json:"registration_date"`
	StartQuantity     int       `json:"start_quantity"`
	RemainingQuantity int       `json:"remaining_quantity"`
	SupplierID        *int      `json:"supplier_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	CreatedBy         string    `json:"created_by"`
}

func (p *Product) ToResponse() ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		PurchasePrice:     p.PurchasePrice,
		ShippingFee:       p.ShippingFee,
		PurchaseDate:      formatDate(p.PurchaseDate),
		RegistrationDate:  formatDate(p.RegistrationDate),
		StartQuantity:     p.StartQuantity,
		RemainingQuantity: p.RemainingQuantity,
		SupplierID:        p.SupplierID,
		CreatedAt:         p.CreatedAt,
		CreatedBy:         p.CreatedBy,
	}
}
