package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TransactionType classifies a ledger transaction
type TransactionType int

const (
	TransactionTypeIncome  TransactionType = 0
	TransactionTypeExpense TransactionType = 1
)

func (t TransactionType) String() string {
	return [...]string{"income", "expense"}[t]
}

func (t TransactionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = TransactionType(i)
		return nil
	}
	switch str {
	case "income":
		*t = TransactionTypeIncome
	case "expense":
		*t = TransactionTypeExpense
	}
	return nil
}

func (t TransactionType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *TransactionType) Scan(value interface{}) error {
	if value == nil {
		*t = TransactionTypeIncome
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = TransactionType(v)
	case int:
		*t = TransactionType(v)
	}
	return nil
}
