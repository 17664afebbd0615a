package workflow

import (
	"context"
	"strings"

	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/gateway"
	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/orders"
)

// ListConfirmedOrders is the distributor's "new orders" list. An empty list
// with a nil error means there is simply nothing to quote.
func (w *Workflow) ListConfirmedOrders(ctx context.Context) ([]orders.OrderItem, error) {
	items, err := w.api.ConfirmedOrderItems(ctx)
	if err != nil {
		return []orders.OrderItem{}, w.fail("load confirmed orders", err)
	}
	if items == nil {
		items = []orders.OrderItem{}
	}
	// being listed here is what notifies distributors
	w.observe(items, 0, orders.StageQuotePending)
	return items, nil
}

// ListRequestedOrders is ListConfirmedOrders narrowed by the search box and
// status dropdown.
func (w *Workflow) ListRequestedOrders(ctx context.Context, f orders.Filter) ([]orders.OrderItem, error) {
	f, err := itemFilter(f)
	if err != nil {
		return nil, err
	}
	items, err := w.ListConfirmedOrders(ctx)
	if err != nil {
		return items, err
	}
	return orders.FilterItems(items, f), nil
}

func itemFilter(f orders.Filter) (orders.Filter, error) {
	status, err := orders.ParseItemStatusFilter(f.Status)
	if err != nil {
		return f, orders.FieldErrors{"status": "Choose an order status or all"}
	}
	f.Status = status
	return f, nil
}

// ListApprovedOrders lists the items whose quotation from this distributor
// was accepted.
func (w *Workflow) ListApprovedOrders(ctx context.Context) ([]orders.OrderItem, error) {
	id, err := w.identity()
	if err != nil {
		return nil, err
	}
	items, err := w.api.DistributorOrderItems(ctx, id.UserID)
	if err != nil {
		return []orders.OrderItem{}, w.fail("load approved orders", err, "distributor_id", id.UserID)
	}
	if items == nil {
		items = []orders.OrderItem{}
	}
	w.observe(items, 0, orders.StageAccepted)
	return items, nil
}

// SendQuotation submits the logged-in distributor's offer for one order
// item. Every invalid field is reported together and nothing is sent until
// all of them pass.
func (w *Workflow) SendQuotation(ctx context.Context, itemID int64, form orders.QuotationForm) (string, error) {
	id, err := w.identity()
	if err != nil {
		return "", err
	}
	draft, err := form.Validate(w.now())
	if err != nil {
		return "", err
	}
	draft.OrderItemID = itemID
	draft.DistributorID = id.UserID

	if err := w.ensureQuotable(ctx, itemID); err != nil {
		return "", err
	}

	resp, err := w.api.SendQuotation(ctx, gateway.NewQuotationRequest(draft))
	if err != nil {
		return "", w.fail("send quotation", err, "item_id", itemID, "distributor_id", id.UserID)
	}
	// other distributors may have quoted it already; that is not a conflict
	w.board.Observe(itemID, 0, orders.StageQuoted)
	w.emit(orders.EventQuotationSent, itemID, orders.QuotationSentPayload{
		OrderItemID:           itemID,
		DistributorID:         id.UserID,
		Price:                 orders.FormatMoney(draft.Price),
		AvailabilityStock:     draft.AvailabilityStock,
		EstimatedDeliveryTime: draft.EstimatedDeliveryTime.Format(orders.DateLayout),
	})
	if resp.Message == "" {
		resp.Message = "Quotation sent."
	}
	return resp.Message, nil
}

// ensureQuotable refuses items that are not confirmed, or that the customer
// already accepted or rejected. An item this process has never seen is looked
// up in the confirmed list first.
func (w *Workflow) ensureQuotable(ctx context.Context, itemID int64) error {
	s, ok := w.board.Stage(itemID)
	if !ok {
		if _, err := w.ListConfirmedOrders(ctx); err != nil {
			return err
		}
		s, _ = w.board.Stage(itemID)
	}
	if !s.Quotable() {
		return &orders.TransitionError{ItemID: itemID, From: s, To: orders.StageQuoted}
	}
	return nil
}

// ListQuotations fetches the distributor's quotations once and filters them
// locally. The fetched slice is never modified.
func (w *Workflow) ListQuotations(ctx context.Context, f orders.Filter) ([]orders.Quotation, error) {
	id, err := w.identity()
	if err != nil {
		return nil, err
	}
	status, err := orders.ParseStatusFilter(f.Status)
	if err != nil {
		return nil, orders.FieldErrors{"status": "Choose pending, accepted, rejected or all"}
	}
	f.Status = status

	qs, err := w.api.QuotationsByDistributor(ctx, id.UserID)
	if err != nil {
		return []orders.Quotation{}, w.fail("load quotations", err, "distributor_id", id.UserID)
	}
	return orders.FilterQuotations(qs, f), nil
}

func (w *Workflow) Products(ctx context.Context) ([]orders.Product, error) {
	ps, err := w.api.Products(ctx)
	if err != nil {
		return []orders.Product{}, w.fail("load products", err)
	}
	return ps, nil
}

func (w *Workflow) Product(ctx context.Context, id int64) (orders.Product, error) {
	p, err := w.api.Product(ctx, id)
	if err != nil {
		return orders.Product{}, w.fail("load product", err, "product_id", id)
	}
	return p, nil
}

// SearchProducts falls back to the full catalog for a blank query.
func (w *Workflow) SearchProducts(ctx context.Context, name string) ([]orders.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return w.Products(ctx)
	}
	ps, err := w.api.SearchProducts(ctx, name)
	if err != nil {
		return []orders.Product{}, w.fail("search products", err, "name", name)
	}
	return ps, nil
}
