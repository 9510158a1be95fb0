package service

import (
	"fmt"
	"time"

	"product-tracker/internal/model"

	"github.com/google/uuid"
)

type CreateProductRequest struct {
	Name             string   `json:"name" validate:"required"`
	PurchasePrice    *float64 `json:"purchase_price" validate:"required,gte=0"`
	ShippingFee      float64  `json:"shipping_fee" validate:"gte=0"`
	PurchaseDate     string   `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	RegistrationDate string   `json:"registration_date" validate:"omitempty,datetime=2006-01-02"`
	StartQuantity    int      `json:"start_quantity" validate:"gte=0"`
	SupplierID       *int     `json:"supplier_id"`
}

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"gt=0"`
}

type CreateOrderRequest struct {
	Products           []OrderItemRequest `json:"products" validate:"required,min=1,dive"`
	SalesChannel       string             `json:"sales_channel" validate:"required"`
	ShopeeFee          float64            `json:"shopee_fee" validate:"gte=0"`
	ShippingFee        float64            `json:"shipping_fee" validate:"gte=0"`
	SellerCoupon       float64            `json:"seller_coupon" validate:"gte=0"`
	Revenue            *float64           `json:"revenue" validate:"required"`
	SoldDate           string             `json:"sold_date" validate:"omitempty,datetime=2006-01-02"`
	Status             string             `json:"status" validate:"omitempty,oneof=pending shipped delivered cancelled"`
	LiveSellingEventID string             `json:"live_selling_event_id" validate:"omitempty,uuid"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending shipped delivered cancelled"`
}

type CreateEventRequest struct {
	AdsFee    *float64 `json:"ads_fee" validate:"required,gte=0"`
	EventDate string   `json:"event_date" validate:"omitempty,datetime=2006-01-02"`
	Notes     string   `json:"notes"`
}

// today returns the calendar date of now, at midnight UTC
func today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseDate reads a YYYY-MM-DD value, falling back to today when empty
func parseDate(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return today(now), nil
	}
	t, err := time.Parse(model.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date '%s'", ErrValidation, value)
	}
	return t, nil
}

func parseOptionalID(value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id '%s'", ErrValidation, value)
	}
	return &id, nil
}
