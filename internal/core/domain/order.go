package domain

import "time"

// MenuItem is a pizza that can be ordered.
type MenuItem struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}

// OrderItem is one line of a diner order.
type OrderItem struct {
	ID          int64   `json:"id,omitempty"`
	MenuID      int64   `json:"menuId"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Order is a diner's purchase at a single store.
type Order struct {
	ID          int64       `json:"id"`
	DinerID     int64       `json:"-"`
	FranchiseID int64       `json:"franchiseId"`
	StoreID     int64       `json:"storeId"`
	Date        time.Time   `json:"date"`
	Items       []OrderItem `json:"items"`
}

// Total returns the summed price of all items.
func (o *Order) Total() float64 {
	var sum float64
	for _, it := range o.Items {
		sum += it.Price
	}
	return sum
}

// OrderPage is one page of a diner's order history.
type OrderPage struct {
	DinerID int64   `json:"dinerId"`
	Orders  []Order `json:"orders"`
	Page    int     `json:"page"`
}
