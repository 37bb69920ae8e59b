package middleware

import (
	"net/http"

	"refurbstore/internal/session"

	"github.com/labstack/echo/v4"
)

const (
	CtxCartSessionKey = "cart_session" // string

	cartCookieName = "cart_session"
	cartCookieAge  = 24 * 60 * 60
)

// CartSession resolves the guest's cart session from a cookie, minting a
// new session when the cookie is missing or expired server-side.
func CartSession(carts *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var id string

			if cookie, err := c.Cookie(cartCookieName); err == nil && carts.Has(cookie.Value) {
				id = cookie.Value
			} else {
				id = carts.NewSession()
				c.SetCookie(&http.Cookie{
					Name:     cartCookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   cartCookieAge,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(CtxCartSessionKey, id)
			return next(c)
		}
	}
}
