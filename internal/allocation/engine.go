// Package allocation computes landed cost, profit and the equal split of a
// live-selling event's advertising fee across the orders linked to it.
package allocation

import "github.com/google/uuid"

// ProductCost holds the cost fields of a product that feed the order cost.
type ProductCost struct {
	PurchasePrice float64
	ShippingFee   float64
}

// ProductLookup maps a product id to its current cost fields.
type ProductLookup map[uuid.UUID]ProductCost

// LineItem is a (product, quantity) pair inside an order.
type LineItem struct {
	ProductID uuid.UUID
	Quantity  int
}

// Fees are the per-order money fields entered by the seller.
type Fees struct {
	ShopeeFee    float64
	ShippingFee  float64
	SellerCoupon float64
	Revenue      float64
	EventLinked  bool
}

// Result is the cost breakdown of a single order.
type Result struct {
	ProductCost float64
	AdsFee      float64
	TotalCost   float64
	Profit      float64

	// Line items whose product was not in the lookup. They add nothing to the cost.
	MissingProducts []uuid.UUID
}

// LineCost returns the landed cost of one line item.
// The shipping fee is spread per unit and multiplied back, so the float result
// matches the stored figures exactly; quantity <= 0 drops the shipping term.
func LineCost(p ProductCost, quantity int) float64 {
	var shippingPerUnit float64
	if quantity > 0 {
		shippingPerUnit = p.ShippingFee / float64(quantity)
	}
	return p.PurchasePrice*float64(quantity) + shippingPerUnit*float64(quantity)
}

// Calculate computes total cost and profit for an order.
// adsShare is only charged when the order is linked to an event. The seller
// coupon is added to the cost here, while SnapshotCost subtracts it.
func Calculate(items []LineItem, lookup ProductLookup, fees Fees, adsShare float64) Result {
	var res Result
	for _, item := range items {
		p, ok := lookup[item.ProductID]
		if !ok {
			res.MissingProducts = append(res.MissingProducts, item.ProductID)
			continue
		}
		res.ProductCost += LineCost(p, item.Quantity)
	}

	if fees.EventLinked {
		res.AdsFee = adsShare
	}

	res.TotalCost = res.ProductCost +
		fees.ShopeeFee +
		fees.ShippingFee +
		fees.SellerCoupon +
		res.AdsFee
	res.Profit = fees.Revenue - res.TotalCost
	return res
}

// Share splits an event's ads fee equally over its linked orders.
func Share(adsFee float64, linkedOrders int) float64 {
	if linkedOrders < 1 {
		linkedOrders = 1
	}
	return adsFee / float64(linkedOrders)
}

// SnapshotCost is the cost formula used by the analytics aggregate.
// It counts purchase price only (no product shipping fee) and subtracts the
// seller coupon, unlike Calculate.
func SnapshotCost(items []LineItem, lookup ProductLookup, fees Fees, adsShare float64) float64 {
	var productCost float64
	for _, item := range items {
		if p, ok := lookup[item.ProductID]; ok {
			productCost += p.PurchasePrice * float64(item.Quantity)
		}
	}
	return fees.ShopeeFee + adsShare + fees.ShippingFee + productCost - fees.SellerCoupon
}
