package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/restaurant-backend/internal/errs"
	"github.com/deppfellow/restaurant-backend/internal/lib/events"
	"github.com/deppfellow/restaurant-backend/internal/lib/job"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStore interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, restaurantID uuid.UUID, filter model.OrderFilter) ([]model.Order, error)
	UpdateStatus(ctx context.Context, restaurantID, id uuid.UUID, from, to model.OrderStatus, changedBy string) (*model.Order, error)
}

type OrderService struct {
	orders  OrderStore
	menu    MenuItemReader
	zones   ZoneLister
	tables  TableReader
	effects sideEffects
}

func NewOrderService(orders OrderStore, menu MenuItemReader, zones ZoneLister, tables TableReader, effects sideEffects) *OrderService {
	return &OrderService{
		orders:  orders,
		menu:    menu,
		zones:   zones,
		tables:  tables,
		effects: effects,
	}
}

func errOrderNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("Order not found", true, errs.Code(errs.CodeOrderNotFound))
}

// Create prices the order from the current menu, applies delivery or
// table rules for its type and stores it as pending.
func (s *OrderService) Create(ctx context.Context, restaurant *model.Restaurant, p *model.CreateOrderPayload) (*model.Order, error) {
	if !restaurant.AcceptingOrders {
		return nil, errRule(errs.CodeOrdersClosed, "This restaurant is not accepting orders right now")
	}
	if !restaurant.OrderTypeEnabled(p.Type) {
		return nil, errRule(errs.CodeOrderTypeDisabled, fmt.Sprintf("%s orders are not available", p.Type))
	}

	order := &model.Order{
		RestaurantID:  restaurant.ID,
		Type:          p.Type,
		Status:        model.OrderStatusPending,
		CustomerName:  p.CustomerName,
		CustomerEmail: p.CustomerEmail,
		CustomerPhone: p.CustomerPhone,
		Notes:         p.Notes,
		DeliveryFee:   decimal.Zero,
	}

	items, subtotal, err := s.priceLines(ctx, restaurant.ID, p.Items)
	if err != nil {
		return nil, err
	}
	order.Items = items
	order.Subtotal = subtotal

	switch p.Type {
	case model.OrderTypeDelivery:
		zone, err := s.deliveryZone(ctx, restaurant.ID, p.PostalCode)
		if err != nil {
			return nil, err
		}
		if subtotal.LessThan(zone.MinimumOrder) {
			return nil, errRule(errs.CodeMinimumOrderNotMet,
				fmt.Sprintf("The minimum order for delivery to this area is %s %s", zone.MinimumOrder.StringFixed(2), restaurant.Currency))
		}
		order.DeliveryAddress = p.DeliveryAddress
		order.PostalCode = model.NormalizePostalCode(p.PostalCode)
		order.DeliveryZoneID = &zone.ID
		order.DeliveryFee = zone.DeliveryFee

	case model.OrderTypeDineIn:
		table, err := s.tables.Get(ctx, restaurant.ID, *p.TableID)
		if errors.Is(err, model.ErrNotFound) || (err == nil && !table.Active) {
			return nil, errRule(errs.CodeTableNotFound, "The selected table is not available")
		}
		if err != nil {
			return nil, err
		}
		order.TableID = &table.ID
	}

	order.Total = order.Subtotal.Add(order.DeliveryFee)

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.effects.publish(ctx, events.OrderCreated, order.RestaurantID, order.ID, order)
	task, err := job.NewPushNotifyTask(job.PushNotifyPayload{
		RestaurantID: order.RestaurantID,
		Message: model.PushMessage{
			Title: fmt.Sprintf("New %s order #%d", orderTypeLabel(order.Type), order.OrderNumber),
			Body:  fmt.Sprintf("%s · %s %s", order.CustomerName, order.Total.StringFixed(2), restaurant.Currency),
			URL:   "/admin/orders/" + order.ID.String(),
			Tag:   "order-" + order.ID.String(),
		},
	})
	s.effects.enqueue(ctx, task, err)

	return order, nil
}

// priceLines snapshots name and price of every ordered item.
func (s *OrderService) priceLines(ctx context.Context, restaurantID uuid.UUID, lines []model.OrderLinePayload) ([]model.OrderItem, decimal.Decimal, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.MenuItemID)
	}

	menuItems, err := s.menu.GetItems(ctx, restaurantID, ids)
	if err != nil {
		return nil, decimal.Zero, err
	}
	byID := make(map[uuid.UUID]model.MenuItem, len(menuItems))
	for _, item := range menuItems {
		byID[item.ID] = item
	}

	var fieldErrors []errs.FieldError
	items := make([]model.OrderItem, 0, len(lines))
	subtotal := decimal.Zero

	for i, line := range lines {
		menuItem, ok := byID[line.MenuItemID]
		if !ok || !menuItem.Available {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: fmt.Sprintf("items[%d].menu_item_id", i),
				Error: "is not available",
			})
			continue
		}

		menuItemID := menuItem.ID
		lineTotal := menuItem.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, model.OrderItem{
			MenuItemID: &menuItemID,
			Name:       menuItem.Name,
			UnitPrice:  menuItem.Price,
			Quantity:   line.Quantity,
			LineTotal:  lineTotal,
			Notes:      line.Notes,
		})
		subtotal = subtotal.Add(lineTotal)
	}

	if len(fieldErrors) > 0 {
		return nil, decimal.Zero, errs.NewBadRequestError("Some items are no longer available", true,
			errs.Code(errs.CodeMenuItemUnavailable), fieldErrors, nil)
	}
	return items, subtotal, nil
}

func (s *OrderService) deliveryZone(ctx context.Context, restaurantID uuid.UUID, postalCode string) (*model.DeliveryZone, error) {
	zones, err := s.zones.List(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	zone, ok := model.MatchZone(zones, postalCode)
	if !ok {
		return nil, errRule(errs.CodeDeliveryZoneNotFound, "We do not deliver to this postal code")
	}
	return zone, nil
}

func orderTypeLabel(t model.OrderType) string {
	switch t {
	case model.OrderTypeDelivery:
		return "delivery"
	case model.OrderTypeDineIn:
		return "dine-in"
	default:
		return "pickup"
	}
}

// Track is the customer's view of their order.
func (s *OrderService) Track(ctx context.Context, restaurantID, id uuid.UUID) (*model.OrderTracking, error) {
	order, err := s.Get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	tracking := order.Tracking()
	return &tracking, nil
}

func (s *OrderService) Get(ctx context.Context, restaurantID, id uuid.UUID) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, restaurantID, id)
	if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrInvalidID) {
		return nil, errOrderNotFound()
	}
	return order, err
}

func (s *OrderService) List(ctx context.Context, restaurantID uuid.UUID, filter model.OrderFilter) ([]model.Order, error) {
	orders, err := s.orders.List(ctx, restaurantID, filter)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// UpdateStatus moves an order along its status machine on behalf of an
// admin. A concurrent change by another admin surfaces as 409.
func (s *OrderService) UpdateStatus(ctx context.Context, ac model.AdminContext, p *model.UpdateOrderStatusPayload) (*model.Order, error) {
	current, err := s.Get(ctx, ac.RestaurantID, p.ID)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransition(p.Status, current.Type) {
		return nil, errRule(errs.CodeOrderInvalidTransition,
			fmt.Sprintf("Cannot change order from %s to %s", current.Status, p.Status))
	}

	updated, err := s.orders.UpdateStatus(ctx, ac.RestaurantID, p.ID, current.Status, p.Status, ac.UserID)
	if errors.Is(err, model.ErrInvalidTransition) {
		return nil, errs.NewConflictError("The order was updated by someone else, refresh and try again", true,
			errs.Code(errs.CodeOrderInvalidTransition))
	}
	if err != nil {
		return nil, err
	}

	s.effects.publish(ctx, events.OrderStatusChanged, updated.RestaurantID, updated.ID, map[string]any{
		"order_number": updated.OrderNumber,
		"from":         current.Status,
		"to":           updated.Status,
		"changed_by":   ac.UserID,
	})

	return updated, nil
}
