package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/rapidxcel-logistics/internal/application/session"
)

// Cookies del dashboard.
const (
	SessionCookie = "rx_sid"
	TokenCookie   = "rx_token"
)

const localSession = "session"

// SessionMiddleware asegura un id de sesión opaco (cookie rx_sid) y deja el
// Store de esa sesión en c.Locals.
func SessionMiddleware(sessions *session.Manager, cookieSecure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(SessionCookie)
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    sid,
				Path:     "/",
				HTTPOnly: true,
				Secure:   cookieSecure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(localSession, sessions.Open(sid))
		return c.Next()
	}
}

// StoreOf devuelve el Store de la request (después de SessionMiddleware).
func StoreOf(c *fiber.Ctx) *session.Store {
	s, _ := c.Locals(localSession).(*session.Store)
	return s
}

func setTokenCookie(c *fiber.Ctx, token string, expires time.Time, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearTokenCookie(c *fiber.Ctx, secure bool) {
	setTokenCookie(c, "", time.Unix(0, 0), secure)
}
