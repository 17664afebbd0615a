package gateway

import (
	"context"
	"net/http"

	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/orders"
)

type AddToCartRequest struct {
	UserID    int64 `json:"userId"`
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// AddToCartResponse is decoded loosely; older backends return only a message.
type AddToCartResponse struct {
	Message     string `json:"message,omitempty"`
	ID          int64  `json:"id,omitempty"`
	OrderItemID int64  `json:"orderItemId,omitempty"`
}

func (r *AddToCartResponse) setMessage(s string) { r.Message = s }

func (r AddToCartResponse) ItemID() int64 {
	if r.OrderItemID != 0 {
		return r.OrderItemID
	}
	return r.ID
}

type BookingRequest struct {
	CustomerID int64  `json:"customerId"`
	Address    string `json:"address"`
}

func (c *Client) AddToCart(ctx context.Context, req AddToCartRequest) (AddToCartResponse, error) {
	var out AddToCartResponse
	err := c.do(ctx, "add to cart", http.MethodPost, "/orderItems/addToCart", nil, req, &out)
	return out, err
}

func (c *Client) Cart(ctx context.Context, userID int64) ([]orders.OrderItem, error) {
	var out []orders.OrderItem
	err := c.list(ctx, "cart", "/orderItems/cart/"+pathID(userID), nil, &out)
	return out, err
}

func (c *Client) DeleteFromCart(ctx context.Context, itemID int64) error {
	return c.do(ctx, "delete from cart", http.MethodDelete, "/orderItems/deleteFromCart/"+pathID(itemID), nil, nil, nil)
}

// ConfirmedOrderItems lists every confirmed item awaiting a distributor quote.
func (c *Client) ConfirmedOrderItems(ctx context.Context) ([]orders.OrderItem, error) {
	var out []orders.OrderItem
	err := c.list(ctx, "confirmed order items", "/orderItems/confirmedOrderItems", nil, &out)
	return out, err
}

// ConfirmedItems lists one customer's placed items.
func (c *Client) ConfirmedItems(ctx context.Context, userID int64) ([]orders.OrderItem, error) {
	var out []orders.OrderItem
	err := c.list(ctx, "confirmed items", "/orderItems/confirmedItems/"+pathID(userID), nil, &out)
	return out, err
}

// DistributorOrderItems lists the items approved for a distributor.
func (c *Client) DistributorOrderItems(ctx context.Context, distributorID int64) ([]orders.OrderItem, error) {
	var out []orders.OrderItem
	err := c.list(ctx, "distributor order items", "/orderItems/distributorOrderItems/"+pathID(distributorID), nil, &out)
	return out, err
}

func (c *Client) MakeBooking(ctx context.Context, req BookingRequest) (MessageResponse, error) {
	var out MessageResponse
	err := c.do(ctx, "make booking", http.MethodPost, "/order/makeBooking", nil, req, &out)
	return out, err
}
