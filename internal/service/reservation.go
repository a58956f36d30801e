package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/restaurant-backend/internal/errs"
	"github.com/deppfellow/restaurant-backend/internal/lib/email"
	"github.com/deppfellow/restaurant-backend/internal/lib/events"
	"github.com/deppfellow/restaurant-backend/internal/lib/job"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
)

type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*model.Reservation, error)
	List(ctx context.Context, restaurantID uuid.UUID, filter model.ReservationFilter) ([]model.Reservation, error)
	UpdateStatus(ctx context.Context, restaurantID, id uuid.UUID, from, to model.ReservationStatus, tableID *uuid.UUID) (*model.Reservation, error)
}

type ReservationService struct {
	reservations ReservationStore
	restaurants  RestaurantReader
	tables       TableReader
	effects      sideEffects
}

func NewReservationService(reservations ReservationStore, restaurants RestaurantReader, tables TableReader, effects sideEffects) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		restaurants:  restaurants,
		tables:       tables,
		effects:      effects,
	}
}

func errReservationNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("Reservation not found", true, errs.Code(errs.CodeReservationNotFound))
}

// Create books a table request for a guest. The time must be in the
// future and inside opening hours in the restaurant's time zone.
func (s *ReservationService) Create(ctx context.Context, restaurant *model.Restaurant, p *model.CreateReservationPayload) (*model.Reservation, error) {
	if !restaurant.AcceptingReservations {
		return nil, errRule(errs.CodeReservationsClosed, "This restaurant is not accepting reservations right now")
	}
	if restaurant.MaxPartySize > 0 && p.PartySize > restaurant.MaxPartySize {
		return nil, errBadField("party_size", fmt.Sprintf("must not exceed %d", restaurant.MaxPartySize))
	}

	reservedAt := p.ReservedAt.UTC()
	if !reservedAt.After(s.effects.clock.Now()) {
		return nil, errBadField("reserved_at", "must be in the future")
	}
	if !restaurant.OpeningHours.IsOpenAt(reservedAt.In(restaurant.Location())) {
		return nil, errRule(errs.CodeReservationOutsideHours, "The restaurant is closed at the requested time")
	}

	duration := p.DurationMinutes
	if duration == 0 {
		duration = model.DefaultReservationDuration
	}

	res := &model.Reservation{
		RestaurantID:    restaurant.ID,
		CustomerName:    p.CustomerName,
		CustomerEmail:   p.CustomerEmail,
		CustomerPhone:   p.CustomerPhone,
		PartySize:       p.PartySize,
		ReservedAt:      reservedAt,
		DurationMinutes: duration,
		Status:          model.ReservationStatusPending,
		Notes:           p.Notes,
	}

	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, err
	}

	s.effects.publish(ctx, events.ReservationCreated, res.RestaurantID, res.ID, res)

	task, err := job.NewPushNotifyTask(job.PushNotifyPayload{
		RestaurantID: res.RestaurantID,
		Message: model.PushMessage{
			Title: fmt.Sprintf("New reservation for %d", res.PartySize),
			Body:  fmt.Sprintf("%s · %s", res.CustomerName, formatReservationTime(restaurant, res)),
			URL:   "/admin/reservations/" + res.ID.String(),
			Tag:   "reservation-" + res.ID.String(),
		},
	})
	s.effects.enqueue(ctx, task, err)

	s.sendEmail(ctx, restaurant, res, email.TemplateReservationReceived)

	return res, nil
}

func (s *ReservationService) sendEmail(ctx context.Context, restaurant *model.Restaurant, res *model.Reservation, tmpl email.Template) {
	if res.CustomerEmail == "" {
		return
	}
	task, err := job.NewReservationEmailTask(job.ReservationEmailPayload{
		To:       res.CustomerEmail,
		Template: tmpl,
		Data: email.ReservationData{
			GuestName:       res.CustomerName,
			RestaurantName:  restaurant.Name,
			RestaurantPhone: restaurant.Phone,
			ReservedAt:      formatReservationTime(restaurant, res),
			PartySize:       res.PartySize,
			Reference:       reservationReference(res.ID),
		},
	})
	s.effects.enqueue(ctx, task, err)
}

func formatReservationTime(restaurant *model.Restaurant, res *model.Reservation) string {
	return res.ReservedAt.In(restaurant.Location()).Format("Monday, 2 January 2006 at 15:04")
}

// reservationReference is the short code guests quote on the phone.
func reservationReference(id uuid.UUID) string {
	return strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

func (s *ReservationService) Get(ctx context.Context, restaurantID, id uuid.UUID) (*model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, restaurantID, id)
	if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrInvalidID) {
		return nil, errReservationNotFound()
	}
	return res, err
}

// List returns reservations, filtered to one local calendar day when the
// payload carries a date.
func (s *ReservationService) List(ctx context.Context, restaurantID uuid.UUID, p *model.ListReservationsPayload) ([]model.Reservation, error) {
	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, errRestaurantNotFound()
	}
	if err != nil {
		return nil, err
	}

	list, err := s.reservations.List(ctx, restaurantID, p.Filter(restaurant.Location()))
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.Reservation{}
	}
	return list, nil
}

// UpdateStatus applies an admin transition, optionally assigning a table
// that must belong to the restaurant and seat the whole party.
func (s *ReservationService) UpdateStatus(ctx context.Context, ac model.AdminContext, p *model.UpdateReservationStatusPayload) (*model.Reservation, error) {
	current, err := s.Get(ctx, ac.RestaurantID, p.ID)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransition(p.Status) {
		return nil, errRule(errs.CodeReservationInvalidTransition,
			fmt.Sprintf("Cannot change reservation from %s to %s", current.Status, p.Status))
	}

	if p.TableID != nil {
		table, err := s.tables.Get(ctx, ac.RestaurantID, *p.TableID)
		if errors.Is(err, model.ErrNotFound) || (err == nil && !table.Active) {
			return nil, errRule(errs.CodeTableNotFound, "The selected table is not available")
		}
		if err != nil {
			return nil, err
		}
		if table.Seats < current.PartySize {
			return nil, errRule(errs.CodeTableTooSmall,
				fmt.Sprintf("Table %s seats %d but the party is %d", table.Label, table.Seats, current.PartySize))
		}
	}

	updated, err := s.reservations.UpdateStatus(ctx, ac.RestaurantID, p.ID, current.Status, p.Status, p.TableID)
	if errors.Is(err, model.ErrInvalidTransition) {
		return nil, errs.NewConflictError("The reservation was updated by someone else, refresh and try again", true,
			errs.Code(errs.CodeReservationInvalidTransition))
	}
	if err != nil {
		return nil, err
	}

	s.effects.publish(ctx, events.ReservationStatusChanged, updated.RestaurantID, updated.ID, map[string]any{
		"from":       current.Status,
		"to":         updated.Status,
		"table_id":   updated.TableID,
		"changed_by": ac.UserID,
	})

	var tmpl email.Template
	switch updated.Status {
	case model.ReservationStatusConfirmed:
		tmpl = email.TemplateReservationConfirmed
	case model.ReservationStatusCancelled:
		tmpl = email.TemplateReservationCancelled
	}
	if tmpl != "" && updated.CustomerEmail != "" {
		restaurant, err := s.restaurants.GetByID(ctx, ac.RestaurantID)
		if err != nil {
			s.effects.logger.Error().Err(err).Str("reservation_id", updated.ID.String()).Msg("failed to load restaurant for reservation email")
		} else {
			s.sendEmail(ctx, restaurant, updated, tmpl)
		}
	}

	return updated, nil
}
