package api

import (
	"net/url"

	"weblarek/internal/domain"
	applog "weblarek/internal/log"
)

type ProductAPI interface {
	ProductList() ([]domain.Product, error)
	Product(id string) (domain.Product, error)
}

type ProductClient struct {
	c *Client
}

func NewProductClient(c *Client) *ProductClient { return &ProductClient{c: c} }

// ProductList returns the whole catalog. Callers decide on a fallback.
func (p *ProductClient) ProductList() ([]domain.Product, error) {
	var resp domain.ProductList
	if err := p.c.get("/product", &resp); err != nil {
		applog.Error(nil, "api.product.list.fail", err, nil)
		return nil, err
	}
	if resp.Items == nil {
		resp.Items = []domain.Product{}
	}
	return resp.Items, nil
}

func (p *ProductClient) Product(id string) (domain.Product, error) {
	var out domain.Product
	if err := p.c.get("/product/"+url.PathEscape(id), &out); err != nil {
		applog.Error(nil, "api.product.get.fail", err, map[string]any{"id": id})
		return domain.Product{}, err
	}
	return out, nil
}
