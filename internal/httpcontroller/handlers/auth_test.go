package handlers

import (
	"math/rand"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/adikemitra/adike-go/internal/conf"
	"github.com/adikemitra/adike-go/internal/datastore"
	"github.com/adikemitra/adike-go/internal/security"
)

func newTestHandlers(t *testing.T) (*Handlers, *echo.Echo) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&datastore.User{},
		&datastore.DiseaseDetection{},
		&datastore.SystemSetting{},
	))

	ds := &datastore.SQLiteStore{DataStore: datastore.DataStore{DB: db}}

	settings := &conf.Settings{}
	settings.Security.SessionSecret = "test-secret"
	sessions := security.NewSessionManager(settings)

	h := New(settings, ds, sessions, nil, nil, nil, nil, nil, nil,
		rand.New(rand.NewSource(1)))
	return h, echo.New()
}

func postForm(e *echo.Echo, path string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func registrationForm() url.Values {
	return url.Values{
		"phone":            {"9876543210"},
		"name":             {"Ravi"},
		"email":            {"ravi@example.com"},
		"location":         {"Sirsi"},
		"farm_size":        {"2 acres"},
		"user_type":        {datastore.UserTypeFarmer},
		"password":         {"secret123"},
		"confirm_password": {"secret123"},
	}
}

func TestRegisterCreatesUser(t *testing.T) {
	h, e := newTestHandlers(t)

	c, rec := postForm(e, "/register", registrationForm())
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	user, err := h.DS.GetUserByPhone("9876543210")
	require.NoError(t, err)
	assert.Equal(t, "Ravi", user.Name)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.True(t, security.CheckPassword(user.PasswordHash, "secret123"))
}

func TestRegisterRejectsDuplicatePhone(t *testing.T) {
	h, e := newTestHandlers(t)

	c, _ := postForm(e, "/register", registrationForm())
	require.NoError(t, h.Register(c))

	c, rec := postForm(e, "/register", registrationForm())
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/register", rec.Header().Get("Location"))
}

func TestRegisterRejectsShortPhone(t *testing.T) {
	h, e := newTestHandlers(t)

	form := registrationForm()
	form.Set("phone", "12345")
	c, rec := postForm(e, "/register", form)
	require.NoError(t, h.Register(c))

	assert.Equal(t, "/register", rec.Header().Get("Location"))

	_, err := h.DS.GetUserByPhone("12345")
	assert.Error(t, err)
}

func TestLoginRedirectsByUserType(t *testing.T) {
	tests := []struct {
		name     string
		userType string
		want     string
	}{
		{"farmer goes to dashboard", datastore.UserTypeFarmer, "/dashboard"},
		{"developer goes to admin", datastore.UserTypeDeveloper, "/admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, e := newTestHandlers(t)

			hash, err := security.HashPassword("secret123")
			require.NoError(t, err)
			require.NoError(t, h.DS.CreateUser(&datastore.User{
				Phone:        "9876543210",
				Name:         "Ravi",
				UserType:     tt.userType,
				PasswordHash: hash,
			}))

			c, rec := postForm(e, "/login", url.Values{
				"phone":    {"9876543210"},
				"password": {"secret123"},
			})
			require.NoError(t, h.Login(c))

			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Location"))
		})
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	h, e := newTestHandlers(t)

	hash, err := security.HashPassword("secret123")
	require.NoError(t, err)
	require.NoError(t, h.DS.CreateUser(&datastore.User{
		Phone:        "9876543210",
		Name:         "Ravi",
		UserType:     datastore.UserTypeFarmer,
		PasswordHash: hash,
	}))

	c, rec := postForm(e, "/login", url.Values{
		"phone":    {"9876543210"},
		"password": {"wrong"},
	})
	require.NoError(t, h.Login(c))

	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestLoginUnknownPhone(t *testing.T) {
	h, e := newTestHandlers(t)

	c, rec := postForm(e, "/login", url.Values{
		"phone":    {"0000000000"},
		"password": {"whatever"},
	})
	require.NoError(t, h.Login(c))

	assert.Equal(t, "/login", rec.Header().Get("Location"))
}
