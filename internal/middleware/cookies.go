package middleware

import (
	"net/http"
	"time"

	"github.com/deppfellow/restaurant-backend/internal/config"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	RestaurantIDCookie   = "restaurant_id"
	RestaurantSlugCookie = "restaurant_slug"
	TenantCookieMaxAge   = 30 * 24 * time.Hour
)

// SetTenantCookies records the restaurant the browser is working with.
func SetTenantCookies(c echo.Context, cfg *config.Config, restaurantID uuid.UUID, slug string) {
	for name, value := range map[string]string{
		RestaurantIDCookie:   restaurantID.String(),
		RestaurantSlugCookie: slug,
	} {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    value,
			Path:     "/",
			Domain:   cfg.Auth.CookieDomain,
			MaxAge:   int(TenantCookieMaxAge.Seconds()),
			HttpOnly: true,
			Secure:   cfg.Primary.IsProduction(),
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func cookieValue(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
