package request

// MenuCategoryRequest represents menu category create/update request bodies
type MenuCategoryRequest struct {
	Name      string `json:"name"`
	SortOrder *int   `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

// MenuItemRequest represents menu item create/update request bodies
type MenuItemRequest struct {
	CategoryID string  `json:"category_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	IsActive   *bool   `json:"is_active"`
}

// OptionGroupRequest represents option group create/update request bodies
type OptionGroupRequest struct {
	MenuItemID  string `json:"menu_item_id"`
	Name        string `json:"name"`
	IsRequired  *bool  `json:"is_required"`
	MultiSelect *bool  `json:"multi_select"`
}

// MenuOptionRequest represents menu option create/update request bodies
type MenuOptionRequest struct {
	GroupID         string  `json:"group_id"`
	Name            string  `json:"name"`
	PriceAdjustment float64 `json:"price_adjustment"`
}
