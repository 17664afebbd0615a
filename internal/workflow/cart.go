package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/gateway"
	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/orders"
)

// Drafts stores cart quantity edits that have not been sent anywhere. The
// backend has no quantity-update endpoint, so edits live here until the
// order is placed or the item is removed.
type Drafts interface {
	Quantities(ctx context.Context) (map[int64]int, error)
	SetQuantity(ctx context.Context, itemID int64, qty int) error
	Drop(ctx context.Context, itemID int64) error
	Reset(ctx context.Context) error
}

type MemoryDrafts struct {
	mu  sync.Mutex
	qty map[int64]int
}

func NewMemoryDrafts() *MemoryDrafts {
	return &MemoryDrafts{qty: map[int64]int{}}
}

func (d *MemoryDrafts) Quantities(context.Context) (map[int64]int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[int64]int, len(d.qty))
	for k, v := range d.qty {
		out[k] = v
	}
	return out, nil
}

func (d *MemoryDrafts) SetQuantity(_ context.Context, itemID int64, qty int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.qty[itemID] = qty
	return nil
}

func (d *MemoryDrafts) Drop(_ context.Context, itemID int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.qty, itemID)
	return nil
}

func (d *MemoryDrafts) Reset(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.qty = map[int64]int{}
	return nil
}

// CartView is the cart screen: server lines with local edits applied.
type CartView struct {
	Items  []orders.OrderItem `json:"items"`
	Totals orders.Totals      `json:"totals"`
}

func (v *CartView) recompute() { v.Totals = orders.Summarize(v.Items) }

var ErrUnknownItem = errors.New("order item not in view")

// CartAddition is what AddToCart reports back.
type CartAddition struct {
	ItemID    int64  `json:"itemId,omitempty"`
	ProductID int64  `json:"productId"`
	Quantity  int    `json:"quantity"`
	Message   string `json:"message"`
}

// AddToCart puts quantity units of a product in the user's cart. The cart
// is not merged locally; the next Cart call re-fetches it.
func (w *Workflow) AddToCart(ctx context.Context, productID int64, quantity int) (CartAddition, error) {
	id, err := w.identity()
	if err != nil {
		return CartAddition{}, err
	}
	if err := orders.ValidateQuantity(quantity).Err(); err != nil {
		return CartAddition{}, err
	}

	resp, err := w.api.AddToCart(ctx, gateway.AddToCartRequest{
		UserID:    id.UserID,
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		return CartAddition{}, w.fail("add to cart", err, "user_id", id.UserID, "product_id", productID)
	}

	out := CartAddition{ItemID: resp.ItemID(), ProductID: productID, Quantity: quantity, Message: resp.Message}
	if out.Message == "" {
		out.Message = fmt.Sprintf("Added %d item(s) to cart!", quantity)
	}
	if out.ItemID != 0 {
		w.board.Observe(out.ItemID, id.UserID, orders.StageInCart)
	}
	corr := out.ItemID
	if corr == 0 {
		corr = id.UserID
	}
	w.emit(orders.EventItemAddedToCart, corr, orders.ItemAddedToCartPayload{
		UserID: id.UserID, ProductID: productID, OrderItemID: out.ItemID, Qty: quantity,
	})
	return out, nil
}

// Cart fetches the user's cart and applies pending quantity edits.
func (w *Workflow) Cart(ctx context.Context) (CartView, error) {
	id, err := w.identity()
	if err != nil {
		return CartView{}, err
	}
	items, err := w.api.Cart(ctx, id.UserID)
	if err != nil {
		return CartView{Items: []orders.OrderItem{}}, w.fail("load cart", err, "user_id", id.UserID)
	}
	w.observe(items, id.UserID, orders.StageInCart)

	drafts, err := w.drafts.Quantities(ctx)
	if err != nil {
		w.log.Warn("cart drafts unavailable", "error", err)
		drafts = nil
	}
	view := CartView{Items: make([]orders.OrderItem, 0, len(items))}
	for _, it := range items {
		if q, ok := drafts[it.Key()]; ok {
			it.Quantity = orders.ClampQuantity(q)
		}
		view.Items = append(view.Items, it)
	}
	view.recompute()
	return view, nil
}

// AdjustQuantity changes one line of view by delta, clamped to [1, 99].
// The edit is recorded as a draft before the view changes, so a failed
// write leaves the view as it was.
func (w *Workflow) AdjustQuantity(ctx context.Context, view *CartView, itemID int64, delta int) (int, error) {
	for i := range view.Items {
		if view.Items[i].Key() != itemID {
			continue
		}
		q := orders.AdjustQuantity(view.Items[i].Quantity, delta)
		if err := w.drafts.SetQuantity(ctx, itemID, q); err != nil {
			return view.Items[i].Quantity, fmt.Errorf("save cart draft: %w", err)
		}
		view.Items[i].Quantity = q
		view.recompute()
		return q, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownItem, itemID)
}

// RemoveFromCart deletes an item from the user's cart.
func (w *Workflow) RemoveFromCart(ctx context.Context, itemID int64) error {
	id, err := w.identity()
	if err != nil {
		return err
	}
	if err := w.api.DeleteFromCart(ctx, itemID); err != nil {
		return w.fail("remove from cart", err, "item_id", itemID)
	}
	if err := w.drafts.Drop(ctx, itemID); err != nil {
		w.log.Warn("drop cart draft", "item_id", itemID, "error", err)
	}
	w.board.Forget(itemID)
	w.emit(orders.EventItemRemovedFromCart, itemID, orders.ItemRemovedFromCartPayload{
		UserID: id.UserID, OrderItemID: itemID,
	})
	return nil
}

// PlaceOrder books every cart item of the user to address. The returned
// Order.Message is the backend's confirmation, meant to be shown verbatim.
func (w *Workflow) PlaceOrder(ctx context.Context, address string) (orders.Order, error) {
	id, err := w.identity()
	if err != nil {
		return orders.Order{}, err
	}
	if err := orders.ValidateAddress(address).Err(); err != nil {
		return orders.Order{}, err
	}

	resp, err := w.api.MakeBooking(ctx, gateway.BookingRequest{CustomerID: id.UserID, Address: address})
	if err != nil {
		return orders.Order{}, w.fail("place order", err, "user_id", id.UserID)
	}

	moved := w.board.AdvanceOwned(id.UserID, orders.StageInCart, orders.StageConfirmed)
	if err := w.drafts.Reset(ctx); err != nil {
		w.log.Warn("reset cart drafts", "error", err)
	}
	w.emit(orders.EventOrderPlaced, id.UserID, orders.OrderPlacedPayload{
		CustomerID: id.UserID, Address: address, Items: moved,
	})
	return orders.Order{CustomerID: id.UserID, Address: address, ItemIDs: moved, Message: resp.Message}, nil
}

// MyOrders lists the customer's placed items, filtered by status and name.
func (w *Workflow) MyOrders(ctx context.Context, f orders.Filter) ([]orders.OrderItem, error) {
	id, err := w.identity()
	if err != nil {
		return nil, err
	}
	if f, err = itemFilter(f); err != nil {
		return nil, err
	}
	items, err := w.api.ConfirmedItems(ctx, id.UserID)
	if err != nil {
		return []orders.OrderItem{}, w.fail("load my orders", err, "user_id", id.UserID)
	}
	w.observe(items, id.UserID, orders.StageConfirmed)
	return orders.FilterItems(items, f), nil
}
