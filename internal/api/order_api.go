package api

import (
	"weblarek/internal/domain"
	applog "weblarek/internal/log"
)

type OrderAPI interface {
	MakeOrder(info domain.OrderInfo) (domain.Order, error)
}

type OrderClient struct {
	c *Client
}

func NewOrderClient(c *Client) *OrderClient { return &OrderClient{c: c} }

// MakeOrder posts the flattened order. Failures are logged and returned.
func (o *OrderClient) MakeOrder(info domain.OrderInfo) (domain.Order, error) {
	var out domain.Order
	if err := o.c.post("/order", info.Request(), &out); err != nil {
		applog.Error(nil, "api.order.create.fail", err, map[string]any{
			"items": len(info.Items),
			"total": info.Total,
		})
		return domain.Order{}, err
	}
	applog.Audit(nil, "api.order.create", map[string]any{"order_id": out.ID, "total": out.Total})
	return out, nil
}
