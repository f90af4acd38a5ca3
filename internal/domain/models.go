package domain

import (
	"strconv"
	"time"
)

type User struct {
	ID       int
	Username string
	Password string // bcrypt hash, never the plaintext
}

type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       strconv.Itoa(u.ID),
		Username: u.Username,
	}
}

type MenuItem struct {
	ID        int
	Name      string
	Price     float64
	Image     string
	Category  string
	Available bool
}

type MenuItemView struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Category  string  `json:"category"`
	Available bool    `json:"available"`
}

func (m *MenuItem) View() MenuItemView {
	return MenuItemView{
		ID:        strconv.Itoa(m.ID),
		Name:      m.Name,
		Price:     m.Price,
		Image:     m.Image,
		Category:  m.Category,
		Available: m.Available,
	}
}

type Order struct {
	ID          int
	UserID      int
	ServiceType string
	Subtotal    float64
	Tax         float64
	Discount    float64
	Total       float64
	Status      string
	CreatedAt   time.Time
	Items       []OrderItem
}

// OrderItem is one line of an order. Price is the snapshot captured when the
// line was written, not the menu item's current price. Name is resolved from
// the menu catalog on reads.
type OrderItem struct {
	MenuItemID int
	Name       string
	Quantity   int
	Price      float64
}

// OrderLine is the wire shape of one order line. ID carries the menu item
// identifier as a string.
type OrderLine struct {
	ID       string  `json:"id"`
	Name     string  `json:"name,omitempty"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type OrderView struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	ServiceType string      `json:"serviceType"`
	Items       []OrderLine `json:"items"`
	Subtotal    float64     `json:"subtotal"`
	Tax         float64     `json:"tax"`
	Discount    float64     `json:"discount"`
	Total       float64     `json:"total"`
	Status      string      `json:"status"`
	CreatedAt   string      `json:"createdAt"`
}

func (o *Order) View() OrderView {
	items := make([]OrderLine, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderLine{
			ID:       strconv.Itoa(item.MenuItemID),
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}
	return OrderView{
		ID:          strconv.Itoa(o.ID),
		UserID:      strconv.Itoa(o.UserID),
		ServiceType: o.ServiceType,
		Items:       items,
		Subtotal:    o.Subtotal,
		Tax:         o.Tax,
		Discount:    o.Discount,
		Total:       o.Total,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type CreateOrderRequest struct {
	ServiceType string      `json:"serviceType"`
	Items       []OrderLine `json:"items"`
	Subtotal    float64     `json:"subtotal"`
	Tax         float64     `json:"tax"`
	Discount    float64     `json:"discount"`
	Total       *float64    `json:"total"`
}

// OrderPatch carries a partial order update. Nil fields are left untouched;
// a non-nil Items replaces the whole line set.
type OrderPatch struct {
	ServiceType *string      `json:"serviceType"`
	Subtotal    *float64     `json:"subtotal"`
	Tax         *float64     `json:"tax"`
	Discount    *float64     `json:"discount"`
	Total       *float64     `json:"total"`
	Status      *string      `json:"status"`
	Items       *[]OrderLine `json:"items"`
}

type CreateMenuItemRequest struct {
	Name      string   `json:"name"`
	Price     *float64 `json:"price"`
	Image     string   `json:"image"`
	Category  string   `json:"category"`
	Available *bool    `json:"available"`
}

type MenuItemPatch struct {
	Name      *string  `json:"name"`
	Price     *float64 `json:"price"`
	Image     *string  `json:"image"`
	Category  *string  `json:"category"`
	Available *bool    `json:"available"`
}

type Person struct {
	ID          int
	Name        string
	PhoneNumber string
	Place       string
	DateVisited time.Time
}

type PersonView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Place       string `json:"place"`
	DateVisited string `json:"dateVisited"`
}

func (p *Person) View() PersonView {
	return PersonView{
		ID:          strconv.Itoa(p.ID),
		Name:        p.Name,
		PhoneNumber: p.PhoneNumber,
		Place:       p.Place,
		DateVisited: p.DateVisited.UTC().Format(time.RFC3339),
	}
}

type CreatePersonRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Place       string `json:"place"`
}

// OrderEvent is published to Kafka after an order commit.
type OrderEvent struct {
	Type      string    `json:"type"`
	OrderID   int       `json:"order_id"`
	UserID    int       `json:"user_id"`
	Total     float64   `json:"total"`
	Timestamp time.Time `json:"timestamp"`
}
