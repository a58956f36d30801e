package service

import (
	"context"
	"errors"

	"github.com/deppfellow/restaurant-backend/internal/errs"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
)

type MembershipStore interface {
	GetMembership(ctx context.Context, userID string, restaurantID uuid.UUID) (*model.Membership, error)
	ListMemberships(ctx context.Context, userID string) ([]model.Membership, error)
}

// AdminContextService decides which restaurant an admin request acts on.
type AdminContextService struct {
	memberships MembershipStore
}

func NewAdminContextService(memberships MembershipStore) *AdminContextService {
	return &AdminContextService{memberships: memberships}
}

// Resolution is the outcome of Resolve. RewriteCookie is set when the
// restaurant cookie was missing, malformed or pointed at a restaurant the
// user no longer administers.
type Resolution struct {
	Context       model.AdminContext
	Membership    model.Membership
	RewriteCookie bool
}

func errNoRestaurant() *errs.HTTPError {
	return errs.NewForbiddenError("No restaurant assigned", true, errs.Code(errs.CodeNoRestaurantAssigned))
}

// Resolve prefers the restaurant named by the cookie and otherwise falls
// back to the user's oldest membership.
func (s *AdminContextService) Resolve(ctx context.Context, userID, cookieRestaurantID string) (*Resolution, error) {
	if userID == "" {
		return nil, errs.NewUnauthorizedError("Unauthorized", false)
	}

	if restaurantID, err := uuid.Parse(cookieRestaurantID); err == nil {
		membership, err := s.memberships.GetMembership(ctx, userID, restaurantID)
		switch {
		case err == nil:
			return resolution(*membership, false), nil
		case !errors.Is(err, model.ErrNotFound):
			return nil, err
		}
	}

	memberships, err := s.memberships.ListMemberships(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, errNoRestaurant()
	}

	return resolution(memberships[0], true), nil
}

func resolution(m model.Membership, rewrite bool) *Resolution {
	return &Resolution{
		Context: model.AdminContext{
			UserID:       m.UserID,
			RestaurantID: m.RestaurantID,
			Role:         m.Role,
		},
		Membership:    m,
		RewriteCookie: rewrite,
	}
}

// Switch checks that the user administers restaurantID.
func (s *AdminContextService) Switch(ctx context.Context, userID string, restaurantID uuid.UUID) (*model.Membership, error) {
	membership, err := s.memberships.GetMembership(ctx, userID, restaurantID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, errs.NewForbiddenError("You are not a member of this restaurant", true, errs.Code(errs.CodeNotRestaurantMember))
	}
	if err != nil {
		return nil, err
	}
	return membership, nil
}

func (s *AdminContextService) List(ctx context.Context, userID string) ([]model.Membership, error) {
	memberships, err := s.memberships.ListMemberships(ctx, userID)
	if err != nil {
		return nil, err
	}
	if memberships == nil {
		memberships = []model.Membership{}
	}
	return memberships, nil
}
