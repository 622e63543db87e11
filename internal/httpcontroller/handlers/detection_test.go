package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adikemitra/adike-go/internal/datastore"
	"github.com/adikemitra/adike-go/internal/security"
)

func getAsUser(e *echo.Echo, user datastore.User, path, paramName, paramValue string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(security.CtxUser, user)
	c.SetParamNames(paramName)
	c.SetParamValues(paramValue)
	return c, rec
}

func TestDetectionResultMissingRecord(t *testing.T) {
	h, e := newTestHandlers(t)
	user := datastore.User{ID: 1, UserType: datastore.UserTypeFarmer}

	c, rec := getAsUser(e, user, "/detection-result/999", "id", "999")
	require.NoError(t, h.DetectionResult(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteDetectionMissingRecord(t *testing.T) {
	h, e := newTestHandlers(t)
	user := datastore.User{ID: 1, UserType: datastore.UserTypeFarmer}

	c, rec := getAsUser(e, user, "/delete-detection/999", "id", "999")
	require.NoError(t, h.DeleteDetection(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDownloadReportMissingRecord(t *testing.T) {
	h, e := newTestHandlers(t)
	user := datastore.User{ID: 1, UserType: datastore.UserTypeFarmer}

	c, rec := getAsUser(e, user, "/download-detection-pdf/999", "id", "999")
	require.NoError(t, h.DownloadReport(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
