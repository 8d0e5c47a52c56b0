package domain

// Category is one of the closed set of catalog categories the API returns.
type Category string

const (
	CategorySoftSkill  Category = "софт-скил"
	CategoryHardSkill  Category = "хард-скил"
	CategoryButton     Category = "кнопка"
	CategoryAdditional Category = "дополнительное"
	CategoryOther      Category = "другое"
)

var Categories = []Category{
	CategorySoftSkill,
	CategoryHardSkill,
	CategoryButton,
	CategoryAdditional,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

type Product struct {
	ID          string   `json:"id" db:"id"`
	Title       string   `json:"title" db:"title"`
	Description string   `json:"description" db:"description"`
	Image       string   `json:"image" db:"image"`
	Category    Category `json:"category" db:"category"`
	Price       *int64   `json:"price" db:"price"` // nil: not for sale
}

// ForSale reports whether the product has a positive price.
func (p Product) ForSale() bool { return p.Price != nil && *p.Price > 0 }

// Amount is the price used in totals; unpriced products count as zero.
func (p Product) Amount() int64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}

// Price is a helper for building products with a price.
func Price(v int64) *int64 { return &v }

type ProductList struct {
	Total int       `json:"total"`
	Items []Product `json:"items"`
}

type OrderData struct {
	Payment string `json:"payment"`
	Address string `json:"address"`
}

type ContactData struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// OrderInfo is assembled once at submission from the checkout state and the basket.
type OrderInfo struct {
	Order   OrderData
	Contact ContactData
	Total   int64
	Items   []string
}

// Request flattens the info into the body POST /order expects.
func (i OrderInfo) Request() OrderRequest {
	items := make([]string, len(i.Items))
	copy(items, i.Items)
	return OrderRequest{
		Payment: i.Order.Payment,
		Address: i.Order.Address,
		Email:   i.Contact.Email,
		Phone:   i.Contact.Phone,
		Total:   i.Total,
		Items:   items,
	}
}

type OrderRequest struct {
	Payment string   `json:"payment"`
	Address string   `json:"address"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Total   int64    `json:"total"`
	Items   []string `json:"items"`
}

type Order struct {
	ID    string `json:"id"`
	Total int64  `json:"total"`
}

// APIError is the body of every non-2xx API response.
type APIError struct {
	Error string `json:"error"`
}
