package gateway

import (
	"context"
	"net/http"

	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/orders"
)

type QuotationRequest struct {
	Price                 float64 `json:"price"`
	EstimatedDeliveryTime string  `json:"estimatedDeliveryTime"`
	AvailabilityStock     int     `json:"availabilityStock"`
	DistributorID         int64   `json:"distributorId"`
	OrderItemID           int64   `json:"orderItemId"`
}

func NewQuotationRequest(d orders.QuotationDraft) QuotationRequest {
	return QuotationRequest{
		Price:                 d.Price.InexactFloat64(),
		EstimatedDeliveryTime: d.EstimatedDeliveryTime.Format(orders.DateLayout),
		AvailabilityStock:     d.AvailabilityStock,
		DistributorID:         d.DistributorID,
		OrderItemID:           d.OrderItemID,
	}
}

func (c *Client) SendQuotation(ctx context.Context, req QuotationRequest) (MessageResponse, error) {
	var out MessageResponse
	err := c.do(ctx, "send quotation", http.MethodPost, "/quotation/sendQuotation", nil, req, &out)
	return out, err
}

func (c *Client) QuotationsByDistributor(ctx context.Context, distributorID int64) ([]orders.Quotation, error) {
	var out []orders.Quotation
	err := c.list(ctx, "quotations", "/quotation/byDistributor/"+pathID(distributorID), nil, &out)
	return out, err
}
