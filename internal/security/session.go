package security

import (
	"crypto/sha256"
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	"github.com/adikemitra/adike-go/internal/conf"
	"github.com/adikemitra/adike-go/internal/logging"
)

const sessionName = "adike_session"

// Session value keys.
const (
	keyUserID   = "user_id"
	keyUserName = "user_name"
	keyUserType = "user_type"
)

// Flash carries a one-shot notification between requests.
type Flash struct {
	Message  string
	Category string
}

func init() {
	// Flashes are gob-encoded into the session cookie.
	gob.Register(Flash{})
}

// SessionManager wraps the cookie store with the login/logout operations
// the handlers need.
type SessionManager struct {
	store *sessions.CookieStore
}

// NewSessionManager builds a cookie-backed session store. Keys are
// derived from the configured session secret so sessions survive
// restarts.
func NewSessionManager(settings *conf.Settings) *SessionManager {
	authKey := createSessionKey(settings.Security.SessionSecret)
	encKey := createSessionKey(settings.Security.SessionSecret + "encryption")

	store := sessions.NewCookieStore(authKey, encKey)

	// SessionDuration is configured in minutes, cookie MaxAge in seconds.
	maxAge := settings.Security.SessionDuration * 60
	if maxAge <= 0 {
		maxAge = 7 * 86400
	}
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   settings.Security.RedirectToHTTPS,
		SameSite: http.SameSiteLaxMode,
	}

	logging.ForService("security").Debug("session store configured",
		"max_age_seconds", maxAge,
		"secure", settings.Security.RedirectToHTTPS)

	return &SessionManager{store: store}
}

// createSessionKey creates a key of the proper length for AES encryption
// from a seed string. AES requires keys of exactly 16, 24, or 32 bytes.
func createSessionKey(seed string) []byte {
	hasher := sha256.New()
	hasher.Write([]byte(seed))
	return hasher.Sum(nil)
}

func (sm *SessionManager) session(c echo.Context) *sessions.Session {
	// Get never fails for cookie stores, a bad cookie yields a fresh
	// session instead.
	s, _ := sm.store.Get(c.Request(), sessionName)
	return s
}

// Login records the authenticated user in the session.
func (sm *SessionManager) Login(c echo.Context, userID uint, name, userType string) error {
	s := sm.session(c)
	s.Values[keyUserID] = userID
	s.Values[keyUserName] = name
	s.Values[keyUserType] = userType
	return s.Save(c.Request(), c.Response())
}

// Logout clears the session.
func (sm *SessionManager) Logout(c echo.Context) error {
	s := sm.session(c)
	s.Values = map[any]any{}
	s.Options.MaxAge = -1
	return s.Save(c.Request(), c.Response())
}

// UserID returns the logged-in user's ID, or false when anonymous.
func (sm *SessionManager) UserID(c echo.Context) (uint, bool) {
	id, ok := sm.session(c).Values[keyUserID].(uint)
	return id, ok
}

// UserName returns the logged-in user's display name.
func (sm *SessionManager) UserName(c echo.Context) string {
	name, _ := sm.session(c).Values[keyUserName].(string)
	return name
}

// UserType returns the logged-in user's role.
func (sm *SessionManager) UserType(c echo.Context) string {
	userType, _ := sm.session(c).Values[keyUserType].(string)
	return userType
}

// AddFlash queues a notification for the next rendered page.
func (sm *SessionManager) AddFlash(c echo.Context, message, category string) {
	s := sm.session(c)
	s.AddFlash(Flash{Message: message, Category: category})
	_ = s.Save(c.Request(), c.Response())
}

// Flashes drains and returns the queued notifications.
func (sm *SessionManager) Flashes(c echo.Context) []Flash {
	s := sm.session(c)
	raw := s.Flashes()
	if len(raw) > 0 {
		_ = s.Save(c.Request(), c.Response())
	}
	flashes := make([]Flash, 0, len(raw))
	for _, f := range raw {
		if flash, ok := f.(Flash); ok {
			flashes = append(flashes, flash)
		}
	}
	return flashes
}
