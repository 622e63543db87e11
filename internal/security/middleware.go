package security

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adikemitra/adike-go/internal/datastore"
)

// Context keys populated by the middleware for downstream handlers.
const (
	CtxUser = "auth_user"
)

// LoginRequired redirects anonymous requests to the login page.
func (sm *SessionManager) LoginRequired(ds datastore.Interface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := sm.UserID(c)
			if !ok {
				sm.AddFlash(c, "Please login to access this page.", "warning")
				return c.Redirect(http.StatusFound, "/login")
			}

			user, err := ds.GetUser(userID)
			if err != nil {
				// Stale session referencing a deleted account.
				_ = sm.Logout(c)
				sm.AddFlash(c, "Please login to access this page.", "warning")
				return c.Redirect(http.StatusFound, "/login")
			}

			c.Set(CtxUser, user)
			return next(c)
		}
	}
}

// AdminRequired allows only Developer accounts through. Must run after
// LoginRequired.
func (sm *SessionManager) AdminRequired() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(CtxUser).(datastore.User)
			if !ok {
				return c.Redirect(http.StatusFound, "/login")
			}
			if user.UserType != datastore.UserTypeDeveloper {
				sm.AddFlash(c, "Access denied. Admin privileges required.", "danger")
				return c.Redirect(http.StatusFound, "/dashboard")
			}
			return next(c)
		}
	}
}

// CurrentUser returns the user LoginRequired stored on the context.
func CurrentUser(c echo.Context) (datastore.User, bool) {
	user, ok := c.Get(CtxUser).(datastore.User)
	return user, ok
}
