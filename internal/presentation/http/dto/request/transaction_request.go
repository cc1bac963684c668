package request

import "time"

// TransactionRequest represents ledger entry create/update request bodies
type TransactionRequest struct {
	CategoryID  string    `json:"category_id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// CategoryRequest represents ledger category create/update request bodies
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type"`
}
