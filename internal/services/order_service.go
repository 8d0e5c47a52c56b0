package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"weblarek/internal/domain"
	applog "weblarek/internal/log"
	"weblarek/internal/notify"
	"weblarek/internal/repos"
	"weblarek/internal/validate"
)

// PaymentMethods is the closed set of payment values the API accepts.
var PaymentMethods = []string{"card", "cash"}

// ValidationError is a rejected order; Message is safe to show to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

type OrderService struct {
	Prods  *repos.ProductRepo
	Orders *repos.OrderRepo
	Events notify.Publisher
}

func NewOrderService(prods *repos.ProductRepo, orders *repos.OrderRepo, events notify.Publisher) *OrderService {
	if events == nil {
		events = notify.Noop{}
	}
	return &OrderService{Prods: prods, Orders: orders, Events: events}
}

// Place checks the request against the catalog, stores it and announces it.
// The client's total must equal the server-side sum.
func (s *OrderService) Place(req domain.OrderRequest) (domain.Order, error) {
	switch {
	case !validate.OneOf(req.Payment, PaymentMethods):
		return domain.Order{}, invalid("Не указан способ оплаты")
	case !validate.Present(req.Address):
		return domain.Order{}, invalid("Не указан адрес")
	case !validate.Present(req.Email):
		return domain.Order{}, invalid("Не указан email")
	case !validate.Present(req.Phone):
		return domain.Order{}, invalid("Не указан телефон")
	case len(req.Items) == 0:
		return domain.Order{}, invalid("Не указаны товары")
	}

	seen := make(map[string]bool, len(req.Items))
	for _, id := range req.Items {
		if seen[id] {
			return domain.Order{}, invalid("Товар %s указан дважды", id)
		}
		seen[id] = true
	}

	prods, err := s.Prods.GetMany(req.Items)
	if err != nil {
		return domain.Order{}, err
	}
	prices := make(map[string]int64, len(req.Items))
	var total int64
	for _, id := range req.Items {
		p, ok := prods[id]
		if !ok {
			return domain.Order{}, invalid("Товар с id %s не найден", id)
		}
		if !p.ForSale() {
			return domain.Order{}, invalid("Товар с id %s не продаётся", id)
		}
		prices[id] = p.Amount()
		total += p.Amount()
	}
	if total != req.Total {
		return domain.Order{}, invalid("Неверная сумма заказа")
	}

	orderID := uuid.NewString()
	if err := s.Orders.Create(orderID, req, prices); err != nil {
		return domain.Order{}, err
	}

	ev := notify.OrderCreated{
		OrderID:   orderID,
		Total:     total,
		Items:     append([]string(nil), req.Items...),
		Payment:   req.Payment,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	// the order is stored; a lost notification is logged, not returned
	if err := s.Events.PublishOrderCreated(ev); err != nil {
		applog.Error(nil, "order.notify.fail", err, map[string]any{"order_id": orderID})
	}
	return domain.Order{ID: orderID, Total: total}, nil
}
