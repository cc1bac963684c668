package request

// OrderItemOptionRequest is one selected option on a submitted order line
type OrderItemOptionRequest struct {
	OptionID        string  `json:"option_id"`
	GroupName       string  `json:"group_name"`
	Name            string  `json:"name"`
	PriceAdjustment float64 `json:"price_adjustment"`
}

// OrderItemRequest is one line of an order submission
type OrderItemRequest struct {
	MenuItemID string                   `json:"menu_item_id"`
	Name       string                   `json:"name"`
	Quantity   int                      `json:"quantity" binding:"required,gt=0"`
	UnitPrice  float64                  `json:"unit_price"`
	Options    []OrderItemOptionRequest `json:"options"`
	Notes      string                   `json:"notes"`
}

// SubmitOrderRequest represents an order submission. table_id and sale_id
// are mutually exclusive; with neither, a standalone takeaway sale opens.
type SubmitOrderRequest struct {
	TableID      string             `json:"table_id"`
	SaleID       string             `json:"sale_id"`
	OrderType    string             `json:"order_type"`
	CustomerName string             `json:"customer_name"`
	Notes        string             `json:"notes"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PaySaleRequest represents the checkout request body
type PaySaleRequest struct {
	PaymentMethod string `json:"payment_method"`
}
