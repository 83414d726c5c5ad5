package orders

import (
	"time"

	"github.com/bonappetit-bakery/bakery-backend/pkg/enums"
)

// OrderItemInput is one requested line item. The unit price is never taken
// from the client; it is resolved server side at placement time.
type OrderItemInput struct {
	BreadNo  int64 `json:"breadNo" validate:"required,gt=0"`
	Quantity int   `json:"quantity" validate:"required,gt=0"`
}

// PlaceOrderInput is the guest checkout payload.
type PlaceOrderInput struct {
	Name             string           `json:"name" validate:"required,max=100"`
	MobileNumber     string           `json:"mobileNumber" validate:"required,max=20"`
	Address          string           `json:"address" validate:"required,max=255"`
	AddressDetail    string           `json:"addressDetail" validate:"max=255"`
	Zipcode          string           `json:"zipcode" validate:"required,max=10"`
	Message          string           `json:"message" validate:"max=500"`
	RecipientName    string           `json:"recipientName" validate:"required,max=100"`
	RecipientMobile  string           `json:"recipientMobile" validate:"required,max=20"`
	OrderItems       []OrderItemInput `json:"orderItems" validate:"required,min=1,dive"`
	DeliveryMethodNo int64            `json:"deliveryMethodNo" validate:"required,gt=0"`
	OrderPw          string           `json:"orderPw" validate:"required,min=4,max=72"`
	TotalPrice       int64            `json:"totalPrice" validate:"gte=0"`
}

// PlacedOrder is returned once the placement transaction commits. It carries
// the generated order number plus an echo of the accepted request so the
// client can render a confirmation without a follow-up read. The order
// password is never echoed.
type PlacedOrder struct {
	OrderNo          int64             `json:"orderNo"`
	OrderNumber      string            `json:"orderNumber"`
	OrderStatus      enums.OrderStatus `json:"orderStatus"`
	Name             string            `json:"name"`
	MobileNumber     string            `json:"mobileNumber"`
	Address          string            `json:"address"`
	AddressDetail    string            `json:"addressDetail"`
	Zipcode          string            `json:"zipcode"`
	Message          string            `json:"message"`
	RecipientName    string            `json:"recipientName"`
	RecipientMobile  string            `json:"recipientMobile"`
	OrderItems       []OrderItemInput  `json:"orderItems"`
	DeliveryMethodNo int64             `json:"deliveryMethodNo"`
	TotalPrice       int64             `json:"totalPrice"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// PriceMismatchDetails is attached to the price mismatch error so the client
// can see the server side breakdown without re-querying.
type PriceMismatchDetails struct {
	ExpectedTotal  int64 `json:"expectedTotal"`
	ReceivedTotal  int64 `json:"receivedTotal"`
	OriginalPrice  int64 `json:"originalPrice"`
	DiscountAmount int64 `json:"discountAmount"`
	DeliveryFee    int64 `json:"deliveryFee"`
}
