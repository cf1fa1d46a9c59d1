package httputil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@x.com"}`))
		var dest struct {
			Email string `json:"email"`
		}
		require.NoError(t, ParseJSON(req, &dest))
		assert.Equal(t, "a@x.com", dest.Email)
	})

	t.Run("invalid body writes 400", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{broken`))
		w := httptest.NewRecorder()
		var dest map[string]interface{}
		ok := ParseJSONOrError(w, req, &dest)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestParsePathString(t *testing.T) {
	router := mux.NewRouter()
	var got string
	var ok bool
	router.HandleFunc("/trips/{id}", func(w http.ResponseWriter, r *http.Request) {
		got, ok = ParsePathStringOrError(w, r, "id")
	})

	req := httptest.NewRequest("GET", "/trips/t-42", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, ok)
	assert.Equal(t, "t-42", got)
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest("GET", "/?limit=25", nil)
	val, err := ParseQueryInt(req, "limit", 10)
	require.NoError(t, err)
	assert.Equal(t, 25, val)

	val, err = ParseQueryInt(req, "offset", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, val)

	req = httptest.NewRequest("GET", "/?limit=abc", nil)
	_, err = ParseQueryInt(req, "limit", 10)
	assert.Error(t, err)
}

func TestRequireNonEmpty(t *testing.T) {
	w := httptest.NewRecorder()
	assert.True(t, RequireNonEmpty(w, "value", "field"))

	w = httptest.NewRecorder()
	assert.False(t, RequireNonEmpty(w, "", "email"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email is required")
}
