package basket

import "weblarek/internal/domain"

// Basket keeps one entry per product id in insertion order.
// It is not safe for concurrent use; the owning storefront serializes access.
type Basket struct {
	order []string
	items map[string]domain.Product
}

func New() *Basket {
	return &Basket{items: map[string]domain.Product{}}
}

// Add inserts p, or replaces the stored product with the same id in place.
func (b *Basket) Add(p domain.Product) {
	if _, ok := b.items[p.ID]; !ok {
		b.order = append(b.order, p.ID)
	}
	b.items[p.ID] = p
}

func (b *Basket) Remove(id string) {
	if _, ok := b.items[id]; !ok {
		return
	}
	delete(b.items, id)
	for i, v := range b.order {
		if v == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

func (b *Basket) Has(id string) bool {
	_, ok := b.items[id]
	return ok
}

func (b *Basket) Len() int { return len(b.order) }

// Items returns a snapshot; mutating it does not touch the basket.
func (b *Basket) Items() []domain.Product {
	out := make([]domain.Product, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.items[id])
	}
	return out
}

func (b *Basket) IDs() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

func (b *Basket) Total() int64 {
	return Sum(b.Items())
}

func (b *Basket) Clear() {
	b.order = nil
	clear(b.items)
}

// Sum adds up product prices, counting unpriced products as zero.
func Sum(items []domain.Product) int64 {
	var total int64
	for _, p := range items {
		total += p.Amount()
	}
	return total
}
