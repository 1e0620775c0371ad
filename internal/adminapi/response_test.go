package adminapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// The envelope code field is a string in every response so clients never
// have to branch on its JSON type.
func TestOkEnvelopeCodeIsString(t *testing.T) {
	c, rec := newTestContext(t)
	require.NoError(t, ok(c, map[string]interface{}{"hello": "world"}))

	body := decodeBody(t, rec)
	assert.Equal(t, "OK", body["code"])
}

func TestPagedEnvelopeCodeIsString(t *testing.T) {
	c, rec := newTestContext(t)
	require.NoError(t, paged(c, []int{1, 2}, 2, 1, 20))

	body := decodeBody(t, rec)
	assert.Equal(t, "OK", body["code"])
	assert.EqualValues(t, 2, body["total"])
}

func TestFailEnvelopeCodeIsString(t *testing.T) {
	c, rec := newTestContext(t)
	require.NoError(t, fail(c, http.StatusNotFound, "NOT_FOUND", "missing", nil))

	body := decodeBody(t, rec)
	assert.Equal(t, "NOT_FOUND", body["code"])
	assert.Equal(t, "missing", body["message"])
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
