package model

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

const (
	ChannelShopee      = "shopee"
	ChannelLiveSelling = "live_selling"
)

// Order is a sale. TotalCost, AdsFee and Profit are always produced by the
// allocation engine, never taken from the client.
type Order struct {
	BaseModel
	Items        []OrderItem `gorm:"foreignKey:OrderID" json:"products"`
	SalesChannel string      `gorm:"type:varchar(50);not null" json:"sales_channel"`
	ShopeeFee    float64     `gorm:"default:0" json:"shopee_fee"`
	ShippingFee  float64     `gorm:"default:0" json:"shipping_fee"`
	SellerCoupon float64     `gorm:"default:0" json:"seller_coupon"`
	Revenue      float64     `gorm:"not null" json:"revenue"`
	AdsFee       float64     `gorm:"default:0" json:"ads_fee"`
	TotalCost    float64     `gorm:"default:0" json:"total_cost"`
	Profit       float64     `gorm:"default:0" json:"profit"`
	SoldDate     *time.Time  `gorm:"type:date;index" json:"sold_date"`
	Status       OrderStatus `gorm:"type:varchar(20);not null;default:pending" json:"status"`

	LiveSellingEventID *uuid.UUID `gorm:"type:uuid;index" json:"live_selling_event_id,omitempty"`
}

// OrderItem is one line of an order
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
}

type OrderItemResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// OrderResponse for API responses
type OrderResponse struct {
	ID                 uuid.UUID           `json:"order_id"`
	Products           []OrderItemResponse `json:"products"`
	SalesChannel       string              `json:"sales_channel"`
	ShopeeFee          float64             `json:"shopee_fee"`
	ShippingFee        float64             `json:"shipping_fee"`
	SellerCoupon       float64             `json:"seller_coupon"`
	Revenue            float64             `json:"revenue"`
	AdsFee             float64             `json:"ads_fee"`
	TotalCost          float64             `json:"total_cost"`
	Profit             float64             `json:"profit"`
	SoldDate           *string             `json:"sold_date"`
	Status             OrderStatus         `json:"status"`
	LiveSellingEventID *uuid.UUID          `json:"live_selling_event_id"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

func (o *Order) ToResponse() OrderResponse {
	products := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		products[i] = OrderItemResponse{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return OrderResponse{
		ID:                 o.ID,
		Products:           products,
		SalesChannel:       o.SalesChannel,
		ShopeeFee:          o.ShopeeFee,
		ShippingFee:        o.ShippingFee,
		SellerCoupon:       o.SellerCoupon,
		Revenue:            o.Revenue,
		AdsFee:             o.AdsFee,
		TotalCost:          o.TotalCost,
		Profit:             o.Profit,
		SoldDate:           formatDate(o.SoldDate),
		Status:             o.Status,
		LiveSellingEventID: o.LiveSellingEventID,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

// OrderResponses converts a slice of orders
func OrderResponses(orders []Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = orders[i].ToResponse()
	}
	return out
}
