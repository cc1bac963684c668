package request

// CreateTableRequest represents the table creation request body
type CreateTableRequest struct {
	Name     string `json:"name" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

// UpdateTableRequest represents the table update request body
type UpdateTableRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

// MoveSaleRequest represents the table move request body
type MoveSaleRequest struct {
	ToTableID string `json:"to_table_id" binding:"required,uuid"`
}
