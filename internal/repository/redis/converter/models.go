package converter

import "time"

// ProductRedisModel — JSON-представление товара в кэше.
type ProductRedisModel struct {
	Model       string     `json:"model"`
	Category    string     `json:"category"`
	Price       int64      `json:"price"`
	ArrivalDate *time.Time `json:"arrival_date,omitempty"`
	Details     *string    `json:"details,omitempty"`
	Quantity    int        `json:"quantity"`
}
