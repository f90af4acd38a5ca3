package service

import (
	"context"
	"log"
	"strconv"
	"time"

	"cafe-pos/internal/domain"
)

// OrderService is the order ledger: it creates and mutates orders together
// with their line items and enforces per-user ownership on every read and
// update. All multi-row writes go through one storage transaction.
type OrderService struct {
	repo      OrderRepository
	publisher OrderPublisher
	qrEncoder QRGenerator
}

func NewOrderService(repo OrderRepository, publisher OrderPublisher, qr QRGenerator) *OrderService {
	return &OrderService{repo: repo, publisher: publisher, qrEncoder: qr}
}

// Create allocates a new order owned by user. Status is forced to "pending"
// regardless of caller input, and the order plus all its lines become visible
// atomically or not at all. The returned view echoes the caller's line
// representation rather than re-reading the lines from storage.
func (s *OrderService) Create(ctx context.Context, user *domain.User, req *domain.CreateOrderRequest) (*domain.OrderView, error) {
	if req.ServiceType == "" || req.Items == nil || req.Total == nil {
		return nil, domain.ErrValidation
	}

	order := &domain.Order{
		UserID:      user.ID,
		ServiceType: req.ServiceType,
		Subtotal:    req.Subtotal,
		Tax:         req.Tax,
		Discount:    req.Discount,
		Total:       *req.Total,
		Status:      "pending",
		CreatedAt:   time.Now().UTC(),
	}

	lines := make([]domain.OrderLine, 0, len(req.Items))
	for _, line := range req.Items {
		menuItemID, err := strconv.Atoi(line.ID)
		if err != nil {
			return nil, domain.ErrValidation
		}
		if line.Quantity < 1 {
			line.Quantity = 1
		}
		order.Items = append(order.Items, domain.OrderItem{
			MenuItemID: menuItemID,
			Quantity:   line.Quantity,
			Price:      line.Price,
		})
		lines = append(lines, line)
	}

	if err := s.repo.CreateOrder(order); err != nil {
		return nil, err
	}

	s.publish(ctx, "order_created", order)

	view := order.View()
	view.Items = lines
	return &view, nil
}

// Get returns the order expanded with its lines. Ownership is strict
// equality on the owning user id.
func (s *OrderService) Get(user *domain.User, orderID int) (*domain.OrderView, error) {
	order, err := s.repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != user.ID {
		return nil, domain.ErrForbidden
	}
	view := order.View()
	return &view, nil
}

// List returns only the orders owned by user, in id order.
func (s *OrderService) List(user *domain.User) ([]domain.OrderView, error) {
	orders, err := s.repo.ListOrders(user.ID)
	if err != nil {
		return nil, err
	}
	views := []domain.OrderView{}
	for i := range orders {
		views = append(views, orders[i].View())
	}
	return views, nil
}

// Update overwrites the scalar fields present in patch and, when patch
// carries items, replaces the entire line set. Scalar updates and the
// replacement are one atomic unit. Status transitions are not validated:
// whatever string the caller supplies is stored as-is.
func (s *OrderService) Update(ctx context.Context, user *domain.User, orderID int, patch *domain.OrderPatch) (*domain.OrderView, error) {
	order, err := s.repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != user.ID {
		return nil, domain.ErrForbidden
	}

	if patch.ServiceType != nil {
		order.ServiceType = *patch.ServiceType
	}
	if patch.Subtotal != nil {
		order.Subtotal = *patch.Subtotal
	}
	if patch.Tax != nil {
		order.Tax = *patch.Tax
	}
	if patch.Discount != nil {
		order.Discount = *patch.Discount
	}
	if patch.Total != nil {
		order.Total = *patch.Total
	}
	if patch.Status != nil {
		order.Status = *patch.Status
	}

	replaceItems := patch.Items != nil
	if replaceItems {
		order.Items = nil
		for _, line := range *patch.Items {
			menuItemID, err := strconv.Atoi(line.ID)
			if err != nil {
				return nil, domain.ErrValidation
			}
			if line.Quantity < 1 {
				line.Quantity = 1
			}
			order.Items = append(order.Items, domain.OrderItem{
				MenuItemID: menuItemID,
				Quantity:   line.Quantity,
				Price:      line.Price,
			})
		}
	}

	if err := s.repo.UpdateOrder(order, replaceItems); err != nil {
		return nil, err
	}

	// Re-read so the response carries the live menu item names.
	updated, err := s.repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "order_updated", updated)

	view := updated.View()
	return &view, nil
}

// ReceiptQR returns a PNG QR code linking to the order's receipt page,
// subject to the same ownership rule as Get.
func (s *OrderService) ReceiptQR(user *domain.User, orderID int) ([]byte, error) {
	order, err := s.repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != user.ID {
		return nil, domain.ErrForbidden
	}
	return s.qrEncoder.Generate(order.ID)
}

// publish emits an order lifecycle event after commit. Publishing is
// best-effort: a nil publisher is skipped and failures are only logged.
func (s *OrderService) publish(ctx context.Context, eventType string, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	event := domain.OrderEvent{
		Type:      eventType,
		OrderID:   order.ID,
		UserID:    order.UserID,
		Total:     order.Total,
		Timestamp: time.Now().UTC(),
	}
	if err := s.publisher.PublishOrder(ctx, event); err != nil {
		log.Printf("Warning: failed to publish %s event for order %d: %v", eventType, order.ID, err)
	}
}

var _ OrderInterface = (*OrderService)(nil)
