package enums

// Code groups mirrored from the common_code table. Display names for these
// groups are resolved through the common-code snapshot, never hardcoded.
type CodeGroup string

const (
	CodeGroupBreadStatus     CodeGroup = "bread_status"
	CodeGroupOrderStatus     CodeGroup = "order_status"
	CodeGroupDeliveryType    CodeGroup = "delivery_type"
	CodeGroupImageTargetType CodeGroup = "image_target_type"
	CodeGroupDiscountType    CodeGroup = "discount_type"
)

// OrderStatus is the order lifecycle code persisted on orders.
type OrderStatus string

// OrderStatusReceived is the status every freshly placed order starts in.
const OrderStatusReceived OrderStatus = "10"

// DiscountType classifies promotional discounts.
type DiscountType string

// DiscountTypePeriod marks discounts bounded by a from/to window.
const DiscountTypePeriod DiscountType = "10"

// ImageTargetType identifies which owning entity an image row belongs to.
type ImageTargetType string

// ImageTargetTypeBread marks product (bread) photos.
const ImageTargetTypeBread ImageTargetType = "10"

func (t ImageTargetType) IsValid() bool {
	switch t {
	case ImageTargetTypeBread:
		return true
	}
	return false
}
