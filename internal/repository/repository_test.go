package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/deppfellow/restaurant-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestAdminRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := &AdminRepository{store{pool}}

	t.Run("ListMemberships orders by assignment time", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		first := testutil.InsertRestaurant(t, ctx, pool, "first")
		second := testutil.InsertRestaurant(t, ctx, pool, "second")
		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		testutil.InsertAdmin(t, ctx, pool, second, "user_1", model.RoleStaff, base.Add(time.Hour))
		testutil.InsertAdmin(t, ctx, pool, first, "user_1", model.RoleOwner, base)

		memberships, err := repo.ListMemberships(ctx, "user_1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(memberships) != 2 || memberships[0].RestaurantID != first || memberships[0].RestaurantSlug != "first" {
			t.Fatalf("unexpected memberships: %+v", memberships)
		}

		m, err := repo.GetMembership(ctx, "user_1", second)
		if err != nil || m.Role != model.RoleStaff {
			t.Fatalf("expected staff membership, got %+v, %v", m, err)
		}

		_, err = repo.GetMembership(ctx, "user_2", second)
		if !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestOrderRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := &OrderRepository{store{pool}}

	t.Run("Create stores lines and UpdateStatus guards the current status", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		restaurantID := testutil.InsertRestaurant(t, ctx, pool, "bistro")

		order := &model.Order{
			RestaurantID: restaurantID,
			Type:         model.OrderTypePickup,
			Status:       model.OrderStatusPending,
			CustomerName: "Ada",
			Subtotal:     decimal.RequireFromString("21.00"),
			DeliveryFee:  decimal.Zero,
			Total:        decimal.RequireFromString("21.00"),
			Items: []model.OrderItem{
				{Name: "Pasta", UnitPrice: decimal.RequireFromString("10.50"), Quantity: 2, LineTotal: decimal.RequireFromString("21.00")},
			},
		}
		if err := repo.Create(ctx, order); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if order.ID == uuid.Nil || order.OrderNumber == 0 || order.Items[0].ID == uuid.Nil {
			t.Fatalf("expected generated ids, got %+v", order)
		}

		got, err := repo.GetByID(ctx, restaurantID, order.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got.Items) != 1 || !got.Total.Equal(order.Total) {
			t.Fatalf("unexpected order: %+v", got)
		}

		updated, err := repo.UpdateStatus(ctx, restaurantID, order.ID, model.OrderStatusPending, model.OrderStatusAccepted, "user_1")
		if err != nil || updated.Status != model.OrderStatusAccepted {
			t.Fatalf("expected accepted order, got %+v, %v", updated, err)
		}

		_, err = repo.UpdateStatus(ctx, restaurantID, order.ID, model.OrderStatusPending, model.OrderStatusCancelled, "user_1")
		if !errors.Is(err, model.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}

		_, err = repo.GetByID(ctx, uuid.New(), order.ID)
		if !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("expected other tenant lookup to miss, got %v", err)
		}
	})
}

func TestTableRepositorySaveLayout(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := &TableRepository{store{pool}}
	ctx := context.Background()
	testutil.TruncateAll(t, ctx, pool)
	restaurantID := testutil.InsertRestaurant(t, ctx, pool, "layout")

	table := func(label string) model.Table {
		return model.Table{Label: label, Seats: 4, Shape: model.TableShapeSquare, Width: 1, Height: 1, Active: true}
	}

	saved, err := repo.SaveLayout(ctx, restaurantID, []model.Table{table("A"), table("B")})
	if err != nil || len(saved) != 2 {
		t.Fatalf("expected two tables, got %+v, %v", saved, err)
	}

	// Swap labels and add a third table.
	a, b := saved[0], saved[1]
	a.Label, b.Label = "B", "A"
	saved, err = repo.SaveLayout(ctx, restaurantID, []model.Table{a, b, table("C")})
	if err != nil {
		t.Fatalf("expected label swap to succeed, got %v", err)
	}
	if len(saved) != 3 {
		t.Fatalf("expected three tables, got %d", len(saved))
	}

	saved, err = repo.SaveLayout(ctx, restaurantID, []model.Table{saved[2]})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	all, err := repo.List(ctx, restaurantID)
	if err != nil || len(all) != 1 || all[0].Label != "C" {
		t.Fatalf("expected only C to remain, got %+v, %v", all, err)
	}

	_, err = repo.SaveLayout(ctx, restaurantID, []model.Table{table("X"), table("X")})
	if !errors.Is(err, model.ErrDuplicateLabel) {
		t.Fatalf("expected ErrDuplicateLabel, got %v", err)
	}
}

func TestNoticeRepositoryDeactivateExpired(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := &NoticeRepository{store{pool}}
	ctx := context.Background()
	testutil.TruncateAll(t, ctx, pool)
	restaurantID := testutil.InsertRestaurant(t, ctx, pool, "notice")

	now := time.Now().UTC()
	ended := now.Add(-time.Minute)
	_, err := repo.Upsert(ctx, &model.Notice{
		RestaurantID: restaurantID,
		Message:      "Closed for the holidays",
		Variant:      model.NoticeVariantInfo,
		Active:       true,
		EndsAt:       &ended,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	n, err := repo.DeactivateExpired(ctx, now)
	if err != nil || n != 1 {
		t.Fatalf("expected one notice deactivated, got %d, %v", n, err)
	}

	notice, err := repo.Get(ctx, restaurantID)
	if err != nil || notice.Active {
		t.Fatalf("expected inactive notice, got %+v, %v", notice, err)
	}
}
