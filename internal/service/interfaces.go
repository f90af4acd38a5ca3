package service

import (
	"context"

	"cafe-pos/internal/domain"
)

type UserRepository interface {
	GetUserByUsername(username string) (*domain.User, error)
	GetUserByID(id int) (*domain.User, error)
}

type OrderRepository interface {
	CreateOrder(order *domain.Order) error
	GetOrder(orderID int) (*domain.Order, error)
	ListOrders(userID int) ([]domain.Order, error)
	UpdateOrder(order *domain.Order, replaceItems bool) error
}

type MenuRepository interface {
	CreateMenuItem(item *domain.MenuItem) error
	ListMenuItems() ([]domain.MenuItem, error)
	ListMenuItemsByCategory(category string) ([]domain.MenuItem, error)
	GetMenuItem(id int) (*domain.MenuItem, error)
	UpdateMenuItem(item *domain.MenuItem) error
	DeleteMenuItem(id int) (int64, error)
	ListCategories() ([]string, error)
}

type PersonRepository interface {
	CreatePerson(person *domain.Person) error
	ListPersons() ([]domain.Person, error)
	SearchPersons(query string) ([]domain.Person, error)
}

type MenuCache interface {
	MenuKey() string
	CategoryKey(category string) string
	Get(ctx context.Context, key string) ([]domain.MenuItem, error)
	Set(ctx context.Context, key string, items []domain.MenuItem) error
	Invalidate(ctx context.Context) error
}

type OrderPublisher interface {
	PublishOrder(ctx context.Context, event domain.OrderEvent) error
}

type AuthInterface interface {
	Login(username, password string) (string, *domain.User, error)
	Verify(token string) (*domain.User, error)
}

type OrderInterface interface {
	Create(ctx context.Context, user *domain.User, req *domain.CreateOrderRequest) (*domain.OrderView, error)
	Get(user *domain.User, orderID int) (*domain.OrderView, error)
	List(user *domain.User) ([]domain.OrderView, error)
	Update(ctx context.Context, user *domain.User, orderID int, patch *domain.OrderPatch) (*domain.OrderView, error)
	ReceiptQR(user *domain.User, orderID int) ([]byte, error)
}

type MenuInterface interface {
	List(ctx context.Context) ([]domain.MenuItemView, error)
	ListByCategory(ctx context.Context, category string) ([]domain.MenuItemView, error)
	Create(ctx context.Context, req *domain.CreateMenuItemRequest) (*domain.MenuItemView, error)
	Update(ctx context.Context, id int, patch *domain.MenuItemPatch) (*domain.MenuItemView, error)
	Delete(ctx context.Context, id int) error
	Categories() ([]string, error)
	AddCategory(name string) error
}

type PersonInterface interface {
	Create(req *domain.CreatePersonRequest) (*domain.PersonView, error)
	List() ([]domain.PersonView, error)
	Search(query string) ([]domain.PersonView, error)
}
