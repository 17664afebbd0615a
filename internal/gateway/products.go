package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/orders"
)

func (c *Client) Products(ctx context.Context) ([]orders.Product, error) {
	var out []orders.Product
	err := c.list(ctx, "products", "/product/getAllProducts", nil, &out)
	return out, err
}

func (c *Client) Product(ctx context.Context, id int64) (orders.Product, error) {
	var out orders.Product
	err := c.do(ctx, "product", http.MethodGet, "/product/getById/"+pathID(id), nil, nil, &out)
	return out, err
}

func (c *Client) SearchProducts(ctx context.Context, name string) ([]orders.Product, error) {
	var out []orders.Product
	err := c.list(ctx, "search products", "/product/search", url.Values{"name": {name}}, &out)
	return out, err
}
