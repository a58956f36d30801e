package middleware

import (
	"context"

	"github.com/deppfellow/restaurant-backend/internal/errs"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/deppfellow/restaurant-backend/internal/server"
	"github.com/deppfellow/restaurant-backend/internal/service"
	"github.com/labstack/echo/v4"
)

const AdminContextKey = "admin_context"

type AdminResolver interface {
	Resolve(ctx context.Context, userID, cookieRestaurantID string) (*service.Resolution, error)
}

// AdminMiddleware turns an authenticated user into an admin context for
// one restaurant. It must run after RequireAuth.
type AdminMiddleware struct {
	server *server.Server
	admins AdminResolver
}

func NewAdminMiddleware(s *server.Server, admins AdminResolver) *AdminMiddleware {
	return &AdminMiddleware{server: s, admins: admins}
}

func (m *AdminMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		res, err := m.admins.Resolve(c.Request().Context(), GetUserID(c), cookieValue(c, RestaurantIDCookie))
		if err != nil {
			return err
		}

		if res.RewriteCookie {
			SetTenantCookies(c, m.server.Config, res.Membership.RestaurantID, res.Membership.RestaurantSlug)
		}

		c.Set(AdminContextKey, res.Context)
		setLogger(c, GetLogger(c).With().
			Str("user_id", res.Context.UserID).
			Str("restaurant_id", res.Context.RestaurantID.String()).
			Str("role", string(res.Context.Role)).
			Logger())

		return next(c)
	}
}

// RequireRole rejects admins below min. staff < manager < owner.
func RequireRole(min model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ac, ok := GetAdminContext(c)
			if !ok {
				return errs.NewUnauthorizedError("Unauthorized", false)
			}
			if !ac.Role.AtLeast(min) {
				return errs.NewForbiddenError("Your role does not allow this action", true, errs.Code(errs.CodeInsufficientRole))
			}
			return next(c)
		}
	}
}

func GetAdminContext(c echo.Context) (model.AdminContext, bool) {
	ac, ok := c.Get(AdminContextKey).(model.AdminContext)
	return ac, ok
}
