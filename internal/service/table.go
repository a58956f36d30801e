package service

import (
	"context"
	"errors"

	"github.com/deppfellow/restaurant-backend/internal/errs"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
)

type TableReader interface {
	Get(ctx context.Context, restaurantID, id uuid.UUID) (*model.Table, error)
}

type TableStore interface {
	TableReader
	List(ctx context.Context, restaurantID uuid.UUID) ([]model.Table, error)
	SaveLayout(ctx context.Context, restaurantID uuid.UUID, tables []model.Table) ([]model.Table, error)
	Delete(ctx context.Context, restaurantID, id uuid.UUID) error
}

type TableService struct {
	tables TableStore
}

func NewTableService(tables TableStore) *TableService {
	return &TableService{tables: tables}
}

func errTableNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("Table not found", true, errs.Code(errs.CodeTableNotFound))
}

func (s *TableService) List(ctx context.Context, restaurantID uuid.UUID) ([]model.Table, error) {
	tables, err := s.tables.List(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if tables == nil {
		tables = []model.Table{}
	}
	return tables, nil
}

// SaveLayout replaces the whole floor plan in one transaction.
func (s *TableService) SaveLayout(ctx context.Context, restaurantID uuid.UUID, p *model.TableLayoutPayload) ([]model.Table, error) {
	layout := p.Layout(restaurantID)
	if err := model.CheckLabels(layout); err != nil {
		return nil, errRule(errs.CodeDuplicateTableLabel, "Table labels must be unique")
	}

	saved, err := s.tables.SaveLayout(ctx, restaurantID, layout)
	switch {
	case errors.Is(err, model.ErrDuplicateLabel):
		return nil, errRule(errs.CodeDuplicateTableLabel, "Table labels must be unique")
	case errors.Is(err, model.ErrNotFound):
		return nil, errs.NewBadRequestError("Layout references a table that does not exist", true, errs.Code(errs.CodeTableNotFound), nil, nil)
	case err != nil:
		return nil, err
	}
	return saved, nil
}

func (s *TableService) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	err := s.tables.Delete(ctx, restaurantID, id)
	if errors.Is(err, model.ErrNotFound) {
		return errTableNotFound()
	}
	return err
}
