package orders

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
	Brand       string          `json:"brand,omitempty"`
	Category    string          `json:"category,omitempty"`
	Price       decimal.Decimal `json:"price"`
	InStock     *bool           `json:"inStock,omitempty"`
}

// OrderItem is one product line of a customer's cart or order. Customer
// views key it by "id", distributor views by "itemId".
type OrderItem struct {
	ID           int64           `json:"id,omitempty"`
	ItemID       int64           `json:"itemId,omitempty"`
	ProductID    int64           `json:"productId,omitempty"`
	ItemName     string          `json:"itemName,omitempty"`
	ProductName  string          `json:"productName,omitempty"`
	ProductImage string          `json:"productImage,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Status       string          `json:"status,omitempty"`
	CustomerName string          `json:"customerName,omitempty"`
	Address      string          `json:"address,omitempty"`
	DeliveryTime *Date           `json:"deliveryTime,omitempty"`
	RequestDate  *Date           `json:"requestDate,omitempty"`
}

func (it OrderItem) Key() int64 {
	if it.ItemID != 0 {
		return it.ItemID
	}
	return it.ID
}

// Name falls back to the product name when the backend leaves itemName empty.
func (it OrderItem) Name() string {
	if it.ItemName != "" {
		return it.ItemName
	}
	return it.ProductName
}

func (it OrderItem) Total() decimal.Decimal {
	return LineTotal(it.Price, it.Quantity)
}

// Order is what PlaceOrder creates: every confirmed item of a customer plus
// the delivery address.
type Order struct {
	CustomerID int64   `json:"customerId"`
	Address    string  `json:"address"`
	ItemIDs    []int64 `json:"itemIds,omitempty"`
	Message    string  `json:"message,omitempty"`
}

type Quotation struct {
	QuotationID           int64           `json:"quotationId"`
	OrderItemID           int64           `json:"orderItemId"`
	DistributorID         int64           `json:"distributorId,omitempty"`
	ItemName              string          `json:"itemName,omitempty"`
	ProductImage          string          `json:"productImage,omitempty"`
	Price                 decimal.Decimal `json:"price"`
	Quantity              int             `json:"quantity"`
	AvailabilityStock     int             `json:"availabilityStock"`
	EstimatedDeliveryTime *Date           `json:"estimatedDeliveryTime,omitempty"`
	Status                string          `json:"status"`
}

func (q Quotation) Total() decimal.Decimal {
	return LineTotal(q.Price, q.Quantity)
}
