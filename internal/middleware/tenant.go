package middleware

import (
	"context"

	"github.com/deppfellow/restaurant-backend/internal/errs"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/deppfellow/restaurant-backend/internal/server"
	"github.com/labstack/echo/v4"
)

const RestaurantKey = "restaurant"

type RestaurantResolver interface {
	BySlug(ctx context.Context, slug string) (*model.Restaurant, error)
}

// TenantMiddleware resolves the :slug path parameter of storefront routes.
type TenantMiddleware struct {
	server  *server.Server
	tenants RestaurantResolver
}

func NewTenantMiddleware(s *server.Server, tenants RestaurantResolver) *TenantMiddleware {
	return &TenantMiddleware{server: s, tenants: tenants}
}

func (m *TenantMiddleware) ResolveRestaurant(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		restaurant, err := m.tenants.BySlug(c.Request().Context(), c.Param("slug"))
		if err != nil {
			return err
		}

		if cookieValue(c, RestaurantSlugCookie) != restaurant.Slug || cookieValue(c, RestaurantIDCookie) != restaurant.ID.String() {
			SetTenantCookies(c, m.server.Config, restaurant.ID, restaurant.Slug)
		}

		c.Set(RestaurantKey, restaurant)
		return next(c)
	}
}

// GetRestaurant returns the restaurant resolved by ResolveRestaurant. Route
// handlers mounted without it get a 404.
func GetRestaurant(c echo.Context) (*model.Restaurant, error) {
	restaurant, ok := c.Get(RestaurantKey).(*model.Restaurant)
	if !ok || restaurant == nil {
		return nil, errs.NewNotFoundError("Restaurant not found", true, errs.Code(errs.CodeRestaurantNotFound))
	}
	return restaurant, nil
}
