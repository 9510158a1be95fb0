package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Password(t *testing.T) {
	var u User
	require.NoError(t, u.SetPassword("FernJ0101"))

	assert.NotEqual(t, "FernJ0101", u.Password)
	assert.True(t, u.CheckPassword("FernJ0101"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestOrder_ToResponse(t *testing.T) {
	sold := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	eventID := uuid.New()
	productID := uuid.New()
	o := Order{
		Items:              []OrderItem{{ProductID: productID, Quantity: 2}},
		SalesChannel:       ChannelLiveSelling,
		Revenue:            100,
		AdsFee:             30,
		TotalCost:          54,
		Profit:             46,
		SoldDate:           &sold,
		Status:             OrderShipped,
		LiveSellingEventID: &eventID,
	}
	o.ID = uuid.New()

	resp := o.ToResponse()

	assert.Equal(t, o.ID, resp.ID)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, productID, resp.Products[0].ProductID)
	assert.Equal(t, 2, resp.Products[0].Quantity)
	require.NotNil(t, resp.SoldDate)
	assert.Equal(t, "2026-03-14", *resp.SoldDate)
	assert.Equal(t, &eventID, resp.LiveSellingEventID)
	assert.Equal(t, 46.0, resp.Profit)
}

func TestProduct_ToResponse_NilDates(t *testing.T) {
	p := Product{Name: "Mug", StartQuantity: 5, RemainingQuantity: 5}

	resp := p.ToResponse()

	assert.Nil(t, resp.PurchaseDate)
	assert.Nil(t, resp.RegistrationDate)
	assert.Equal(t, 5, resp.RemainingQuantity)
}

func TestLiveSellingEvent_ToResponse(t *testing.T) {
	e := LiveSellingEvent{EventDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), AdsFee: 90, Notes: "evening live"}

	resp := e.ToResponse()

	assert.Equal(t, "2026-10-01", resp.EventDate)
	assert.Equal(t, 90.0, resp.AdsFee)
}
