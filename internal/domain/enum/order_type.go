package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderType distinguishes dine-in sales (bound to a table) from takeaway
type OrderType int

const (
	OrderTypeDineIn   OrderType = 0
	OrderTypeTakeAway OrderType = 1
)

func (t OrderType) String() string {
	return [...]string{"dine_in", "take_away"}[t]
}

func (t OrderType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *OrderType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = OrderType(i)
		return nil
	}
	switch str {
	case "dine_in":
		*t = OrderTypeDineIn
	case "take_away":
		*t = OrderTypeTakeAway
	}
	return nil
}

func (t OrderType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *OrderType) Scan(value interface{}) error {
	if value == nil {
		*t = OrderTypeTakeAway
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = OrderType(v)
	case int:
		*t = OrderType(v)
	}
	return nil
}
