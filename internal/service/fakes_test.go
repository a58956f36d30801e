package service

import (
	"context"
	"sync"
	"time"

	"github.com/deppfellow/restaurant-backend/internal/clock"
	"github.com/deppfellow/restaurant-backend/internal/lib/events"
	"github.com/deppfellow/restaurant-backend/internal/lib/push"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// 2026-03-02 is a Monday.
var testNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type recordingEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (q *recordingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

func (q *recordingEnqueuer) taskTypes() []string {
	out := make([]string, 0, len(q.tasks))
	for _, t := range q.tasks {
		out = append(out, t.Type())
	}
	return out
}

func testEffects() (sideEffects, *recordingPublisher, *recordingEnqueuer) {
	pub := &recordingPublisher{}
	jobs := &recordingEnqueuer{}
	logger := zerolog.Nop()
	return sideEffects{events: pub, jobs: jobs, logger: &logger, clock: clock.NewFixed(testNow)}, pub, jobs
}

type fakeRestaurants struct {
	byID map[uuid.UUID]*model.Restaurant
}

func newFakeRestaurants(rs ...*model.Restaurant) *fakeRestaurants {
	f := &fakeRestaurants{byID: map[uuid.UUID]*model.Restaurant{}}
	for _, r := range rs {
		f.byID[r.ID] = r
	}
	return f
}

func (f *fakeRestaurants) GetBySlug(_ context.Context, slug string) (*model.Restaurant, error) {
	for _, r := range f.byID {
		if r.Slug == slug {
			copied := *r
			return &copied, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeRestaurants) GetByID(_ context.Context, id uuid.UUID) (*model.Restaurant, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

type fakeTables struct {
	tables map[uuid.UUID]model.Table
}

func (f *fakeTables) Get(_ context.Context, restaurantID, id uuid.UUID) (*model.Table, error) {
	t, ok := f.tables[id]
	if !ok || t.RestaurantID != restaurantID {
		return nil, model.ErrNotFound
	}
	return &t, nil
}

type fakeReservations struct {
	saved     map[uuid.UUID]*model.Reservation
	raceOnce  bool
	noShows   []model.Reservation
	cutoff    time.Time
	lastQuery model.ReservationFilter
}

func newFakeReservations() *fakeReservations {
	return &fakeReservations{saved: map[uuid.UUID]*model.Reservation{}}
}

func (f *fakeReservations) Create(_ context.Context, res *model.Reservation) error {
	res.ID = uuid.New()
	res.CreatedAt = testNow
	res.UpdatedAt = testNow
	copied := *res
	f.saved[res.ID] = &copied
	return nil
}

func (f *fakeReservations) GetByID(_ context.Context, restaurantID, id uuid.UUID) (*model.Reservation, error) {
	res, ok := f.saved[id]
	if !ok || res.RestaurantID != restaurantID {
		return nil, model.ErrNotFound
	}
	copied := *res
	return &copied, nil
}

func (f *fakeReservations) List(_ context.Context, restaurantID uuid.UUID, filter model.ReservationFilter) ([]model.Reservation, error) {
	f.lastQuery = filter
	var out []model.Reservation
	for _, res := range f.saved {
		if res.RestaurantID == restaurantID {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (f *fakeReservations) UpdateStatus(_ context.Context, restaurantID, id uuid.UUID, from, to model.ReservationStatus, tableID *uuid.UUID) (*model.Reservation, error) {
	res, ok := f.saved[id]
	if !ok || res.RestaurantID != restaurantID {
		return nil, model.ErrNotFound
	}
	if f.raceOnce || res.Status != from {
		f.raceOnce = false
		return nil, model.ErrInvalidTransition
	}
	res.Status = to
	if tableID != nil {
		res.TableID = tableID
	}
	copied := *res
	return &copied, nil
}

func (f *fakeReservations) MarkNoShows(_ context.Context, cutoff time.Time) ([]model.Reservation, error) {
	f.cutoff = cutoff
	return f.noShows, nil
}

type fakeMenu struct {
	items []model.MenuItem
}

func (f *fakeMenu) GetItems(_ context.Context, restaurantID uuid.UUID, ids []uuid.UUID) ([]model.MenuItem, error) {
	want := map[uuid.UUID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []model.MenuItem
	for _, item := range f.items {
		if item.RestaurantID == restaurantID && want[item.ID] {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeZones struct {
	zones []model.DeliveryZone
}

func (f *fakeZones) List(_ context.Context, _ uuid.UUID) ([]model.DeliveryZone, error) {
	return f.zones, nil
}

type fakeOrders struct {
	saved    map[uuid.UUID]*model.Order
	next     int64
	raceOnce bool
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{saved: map[uuid.UUID]*model.Order{}}
}

func (f *fakeOrders) Create(_ context.Context, order *model.Order) error {
	f.next++
	order.ID = uuid.New()
	order.OrderNumber = f.next
	order.CreatedAt = testNow
	copied := *order
	f.saved[order.ID] = &copied
	return nil
}

func (f *fakeOrders) GetByID(_ context.Context, restaurantID, id uuid.UUID) (*model.Order, error) {
	order, ok := f.saved[id]
	if !ok || order.RestaurantID != restaurantID {
		return nil, model.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrders) List(_ context.Context, restaurantID uuid.UUID, _ model.OrderFilter) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.saved {
		if o.RestaurantID == restaurantID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, restaurantID, id uuid.UUID, from, to model.OrderStatus, _ string) (*model.Order, error) {
	order, ok := f.saved[id]
	if !ok || order.RestaurantID != restaurantID {
		return nil, model.ErrNotFound
	}
	if f.raceOnce || order.Status != from {
		f.raceOnce = false
		return nil, model.ErrInvalidTransition
	}
	order.Status = to
	copied := *order
	return &copied, nil
}

type fakeSubscriptions struct {
	subs    []model.PushSubscription
	deleted []uuid.UUID
}

func (f *fakeSubscriptions) Upsert(_ context.Context, sub *model.PushSubscription) (*model.PushSubscription, error) {
	sub.ID = uuid.New()
	f.subs = append(f.subs, *sub)
	return sub, nil
}

func (f *fakeSubscriptions) DeleteForUser(_ context.Context, userID, endpoint string) error {
	for i, s := range f.subs {
		if s.UserID == userID && s.Endpoint == endpoint {
			f.subs = append(f.subs[:i], f.subs[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

func (f *fakeSubscriptions) DeleteByID(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeSubscriptions) ListByRestaurant(_ context.Context, restaurantID uuid.UUID, userID string) ([]model.PushSubscription, error) {
	var out []model.PushSubscription
	for _, s := range f.subs {
		if s.RestaurantID == restaurantID && (userID == "" || s.UserID == userID) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeSender struct {
	results map[string]error
	sent    []string
}

func (f *fakeSender) Send(_ context.Context, sub push.Subscription, _ []byte) error {
	f.sent = append(f.sent, sub.Endpoint)
	return f.results[sub.Endpoint]
}
