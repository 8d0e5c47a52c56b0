package repos

import (
	"github.com/jmoiron/sqlx"

	"weblarek/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type OrderRow struct {
	ID        string `db:"id"`
	Payment   string `db:"payment"`
	Address   string `db:"address"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	Total     int64  `db:"total"`
	CreatedAt string `db:"created_at"`
}

type OrderItemRow struct {
	ProductID string `db:"product_id"`
	Title     string `db:"title"`
	Price     int64  `db:"price"`
}

// Create stores the order header and its lines in one transaction.
func (r *OrderRepo) Create(id string, req domain.OrderRequest, prices map[string]int64) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders(id, payment, address, email, phone, total, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, id, req.Payment, req.Address, req.Email, req.Phone, req.Total); err != nil {
		return err
	}
	for i, pid := range req.Items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, position, price)
		  VALUES(?, ?, ?, ?)
		`, id, pid, i, prices[pid]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *OrderRepo) Get(id string) (OrderRow, []OrderItemRow, error) {
	var o OrderRow
	if err := r.db.Get(&o, `
	  SELECT id, payment, address, email, phone, total, created_at
	  FROM orders
	  WHERE id = ?
	`, id); err != nil {
		return OrderRow{}, nil, err
	}

	items := []OrderItemRow{}
	if err := r.db.Select(&items, `
	  SELECT oi.product_id, p.title, oi.price
	  FROM order_items oi
	  JOIN products p ON p.id = oi.product_id
	  WHERE oi.order_id = ?
	  ORDER BY oi.position
	`, id); err != nil {
		return OrderRow{}, nil, err
	}
	return o, items, nil
}

func (r *OrderRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders`)
	return n, err
}
