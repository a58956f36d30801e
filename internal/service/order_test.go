package service

import (
	"context"
	"net/http"
	"slices"
	"testing"

	"github.com/deppfellow/restaurant-backend/internal/errs"
	"github.com/deppfellow/restaurant-backend/internal/lib/events"
	"github.com/deppfellow/restaurant-backend/internal/lib/job"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type orderFixture struct {
	svc        *OrderService
	restaurant *model.Restaurant
	orders     *fakeOrders
	events     *recordingPublisher
	jobs       *recordingEnqueuer
	pizza      model.MenuItem
	soldOut    model.MenuItem
	table      model.Table
}

func newOrderFixture() *orderFixture {
	restaurant := testRestaurant()
	effects, pub, jobs := testEffects()

	pizza := model.MenuItem{ID: uuid.New(), RestaurantID: restaurant.ID, Name: "Margherita", Price: decimal.RequireFromString("9.50"), Available: true}
	soldOut := model.MenuItem{ID: uuid.New(), RestaurantID: restaurant.ID, Name: "Tiramisu", Price: decimal.RequireFromString("5.00")}
	table := model.Table{ID: uuid.New(), RestaurantID: restaurant.ID, Label: "T1", Seats: 4, Active: true}

	zones := &fakeZones{zones: []model.DeliveryZone{{
		ID:           uuid.New(),
		RestaurantID: restaurant.ID,
		Name:         "Mitte",
		PostalCodes:  []string{"101*"},
		DeliveryFee:  decimal.RequireFromString("2.50"),
		MinimumOrder: decimal.RequireFromString("15.00"),
		Active:       true,
	}}}

	f := &orderFixture{
		restaurant: restaurant,
		orders:     newFakeOrders(),
		events:     pub,
		jobs:       jobs,
		pizza:      pizza,
		soldOut:    soldOut,
		table:      table,
	}
	f.svc = NewOrderService(f.orders, &fakeMenu{items: []model.MenuItem{pizza, soldOut}}, zones,
		&fakeTables{tables: map[uuid.UUID]model.Table{table.ID: table}}, effects)
	return f
}

func TestOrderCreateDeliveryTotals(t *testing.T) {
	f := newOrderFixture()

	order, err := f.svc.Create(context.Background(), f.restaurant, &model.CreateOrderPayload{
		Type:            model.OrderTypeDelivery,
		CustomerName:    "Ada",
		CustomerPhone:   "+49 151 000",
		DeliveryAddress: "Torstr. 1",
		PostalCode:      "10115",
		Items:           []model.OrderLinePayload{{MenuItemID: f.pizza.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !order.Subtotal.Equal(decimal.RequireFromString("19.00")) {
		t.Fatalf("expected subtotal 19.00, got %s", order.Subtotal)
	}
	if !order.Total.Equal(decimal.RequireFromString("21.50")) {
		t.Fatalf("expected total 21.50, got %s", order.Total)
	}
	if order.Status != model.OrderStatusPending || order.DeliveryZoneID == nil {
		t.Fatalf("unexpected order %+v", order)
	}
	if len(order.Items) != 1 || order.Items[0].Name != "Margherita" {
		t.Fatalf("expected item snapshot, got %+v", order.Items)
	}
	if got := f.events.types(); !slices.Equal(got, []events.Type{events.OrderCreated}) {
		t.Fatalf("unexpected events %v", got)
	}
	if got := f.jobs.taskTypes(); !slices.Equal(got, []string{job.TaskPushNotify}) {
		t.Fatalf("unexpected tasks %v", got)
	}
}

func TestOrderCreateRejections(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(f *orderFixture, p *model.CreateOrderPayload)
		wantCode string
	}{
		{
			name:     "orders closed",
			mutate:   func(f *orderFixture, _ *model.CreateOrderPayload) { f.restaurant.AcceptingOrders = false },
			wantCode: errs.CodeOrdersClosed,
		},
		{
			name:     "type disabled",
			mutate:   func(f *orderFixture, _ *model.CreateOrderPayload) { f.restaurant.PickupEnabled = false },
			wantCode: errs.CodeOrderTypeDisabled,
		},
		{
			name: "unavailable item",
			mutate: func(f *orderFixture, p *model.CreateOrderPayload) {
				p.Items = append(p.Items, model.OrderLinePayload{MenuItemID: f.soldOut.ID, Quantity: 1})
			},
			wantCode: errs.CodeMenuItemUnavailable,
		},
		{
			name: "no delivery zone",
			mutate: func(_ *orderFixture, p *model.CreateOrderPayload) {
				p.Type = model.OrderTypeDelivery
				p.DeliveryAddress = "Somewhere"
				p.PostalCode = "20095"
			},
			wantCode: errs.CodeDeliveryZoneNotFound,
		},
		{
			name: "below minimum",
			mutate: func(_ *orderFixture, p *model.CreateOrderPayload) {
				p.Type = model.OrderTypeDelivery
				p.DeliveryAddress = "Torstr. 1"
				p.PostalCode = "10115"
				p.Items[0].Quantity = 1
			},
			wantCode: errs.CodeMinimumOrderNotMet,
		},
		{
			name: "unknown table",
			mutate: func(_ *orderFixture, p *model.CreateOrderPayload) {
				missing := uuid.New()
				p.Type = model.OrderTypeDineIn
				p.TableID = &missing
			},
			wantCode: errs.CodeTableNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newOrderFixture()
			p := &model.CreateOrderPayload{
				Type:          model.OrderTypePickup,
				CustomerName:  "Ada",
				CustomerPhone: "+49 151 000",
				Items:         []model.OrderLinePayload{{MenuItemID: f.pizza.ID, Quantity: 1}},
			}
			tc.mutate(f, p)

			_, err := f.svc.Create(context.Background(), f.restaurant, p)
			assertHTTPError(t, err, http.StatusBadRequest, tc.wantCode)
			if len(f.orders.saved) != 0 || len(f.events.types()) != 0 {
				t.Fatalf("expected no order and no events on rejection")
			}
		})
	}
}

func TestOrderUnavailableItemReportsField(t *testing.T) {
	f := newOrderFixture()
	_, err := f.svc.Create(context.Background(), f.restaurant, &model.CreateOrderPayload{
		Type:          model.OrderTypePickup,
		CustomerName:  "Ada",
		CustomerPhone: "+49 151 000",
		Items: []model.OrderLinePayload{
			{MenuItemID: f.pizza.ID, Quantity: 1},
			{MenuItemID: uuid.New(), Quantity: 1},
		},
	})
	httpErr := assertHTTPError(t, err, http.StatusBadRequest, errs.CodeMenuItemUnavailable)
	if len(httpErr.Errors) != 1 || httpErr.Errors[0].Field != "items[1].menu_item_id" {
		t.Fatalf("unexpected field errors %+v", httpErr.Errors)
	}
}

func TestOrderUpdateStatus(t *testing.T) {
	f := newOrderFixture()
	ac := model.AdminContext{UserID: "user_1", RestaurantID: f.restaurant.ID, Role: model.RoleStaff}

	order, err := f.svc.Create(context.Background(), f.restaurant, &model.CreateOrderPayload{
		Type:          model.OrderTypePickup,
		CustomerName:  "Ada",
		CustomerPhone: "+49 151 000",
		Items:         []model.OrderLinePayload{{MenuItemID: f.pizza.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := f.svc.UpdateStatus(context.Background(), ac, &model.UpdateOrderStatusPayload{ID: order.ID, Status: model.OrderStatusAccepted})
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if updated.Status != model.OrderStatusAccepted {
		t.Fatalf("expected accepted, got %s", updated.Status)
	}
	if got := f.events.types(); !slices.Equal(got, []events.Type{events.OrderCreated, events.OrderStatusChanged}) {
		t.Fatalf("unexpected events %v", got)
	}

	_, err = f.svc.UpdateStatus(context.Background(), ac, &model.UpdateOrderStatusPayload{ID: order.ID, Status: model.OrderStatusCompleted})
	assertHTTPError(t, err, http.StatusBadRequest, errs.CodeOrderInvalidTransition)

	f.orders.raceOnce = true
	_, err = f.svc.UpdateStatus(context.Background(), ac, &model.UpdateOrderStatusPayload{ID: order.ID, Status: model.OrderStatusPreparing})
	assertHTTPError(t, err, http.StatusConflict, errs.CodeOrderInvalidTransition)

	_, err = f.svc.Track(context.Background(), uuid.New(), order.ID)
	assertHTTPError(t, err, http.StatusNotFound, errs.CodeOrderNotFound)
}
