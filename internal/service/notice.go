package service

import (
	"context"
	"errors"

	"github.com/deppfellow/restaurant-backend/internal/clock"
	"github.com/deppfellow/restaurant-backend/internal/errs"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
)

type NoticeStore interface {
	Get(ctx context.Context, restaurantID uuid.UUID) (*model.Notice, error)
	Upsert(ctx context.Context, n *model.Notice) (*model.Notice, error)
	Delete(ctx context.Context, restaurantID uuid.UUID) error
}

type NoticeService struct {
	notices NoticeStore
	clock   clock.Clock
}

func NewNoticeService(notices NoticeStore, clk clock.Clock) *NoticeService {
	return &NoticeService{notices: notices, clock: clk}
}

func errNoticeNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("Notice not found", true, errs.Code(errs.CodeNoticeNotFound))
}

// Visible returns the notice customers should see now, or nil.
func (s *NoticeService) Visible(ctx context.Context, restaurantID uuid.UUID) (*model.Notice, error) {
	notice, err := s.notices.Get(ctx, restaurantID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !notice.VisibleAt(s.clock.Now()) {
		return nil, nil
	}
	return notice, nil
}

func (s *NoticeService) Get(ctx context.Context, restaurantID uuid.UUID) (*model.Notice, error) {
	notice, err := s.notices.Get(ctx, restaurantID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, errNoticeNotFound()
	}
	return notice, err
}

func (s *NoticeService) Upsert(ctx context.Context, restaurantID uuid.UUID, p *model.NoticePayload) (*model.Notice, error) {
	return s.notices.Upsert(ctx, p.Notice(restaurantID))
}

func (s *NoticeService) Delete(ctx context.Context, restaurantID uuid.UUID) error {
	err := s.notices.Delete(ctx, restaurantID)
	if errors.Is(err, model.ErrNotFound) {
		return errNoticeNotFound()
	}
	return err
}
