package models

// LineItem is a client-submitted checkout line.
type LineItem struct {
	ID       uint    `json:"_id"`
	Name     string  `json:"name"`
	Image    string  `json:"image,omitempty"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// CheckoutSession stands in for a payment-gateway session. It is returned to
// the client and handed back when the purchase is confirmed.
type CheckoutSession struct {
	ID         string     `json:"id"`
	LineItems  []LineItem `json:"line_items"`
	Total      float64    `json:"total"`
	UserID     uint       `json:"userId"`
	CouponCode string     `json:"couponCode"`
	Products   []LineItem `json:"products"`
}
