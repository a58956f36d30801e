package handler

import (
	"github.com/deppfellow/restaurant-backend/internal/errs"
	"github.com/deppfellow/restaurant-backend/internal/lib/email"
	"github.com/deppfellow/restaurant-backend/internal/server"
	"github.com/deppfellow/restaurant-backend/internal/validation"
	"github.com/labstack/echo/v4"
)

// EmailHandler renders transactional templates with sample data. Only
// mounted outside production.
type EmailHandler struct {
	Handler
}

func NewEmailHandler(s *server.Server) *EmailHandler {
	return &EmailHandler{Handler: NewHandler(s)}
}

type EmailPreviewPayload struct {
	Template string `param:"template" validate:"required"`
}

func (p *EmailPreviewPayload) Validate() error {
	return validation.Struct(p)
}

func (h *EmailHandler) Preview(c echo.Context, payload *EmailPreviewPayload) (string, error) {
	page, err := email.Preview(email.Template(payload.Template))
	if err != nil {
		return "", errs.NewNotFoundError("Unknown email template", true, nil)
	}
	return page, nil
}
