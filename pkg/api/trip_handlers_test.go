package api

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rutamundo/backend/pkg/auth"
	"github.com/rutamundo/backend/pkg/store"
)

func tripManagerToken(t *testing.T, ts *testServer) string {
	return ts.tokenFor(t, auth.Identity{
		ID:          "admin-1",
		Permissions: []auth.PermissionKey{auth.PermissionManageTrips},
	})
}

func mockTripRows(trips ...store.Trip) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "destination", "summary", "travel_date", "images", "registered_at"})
	for _, tr := range trips {
		rows.AddRow(tr.ID, tr.Destination, tr.Summary, tr.TravelDate, "[]", time.Now().UTC())
	}
	return rows
}

func TestTrips_PublicReads(t *testing.T) {
	ts := newTestServer(t)

	ts.mock.ExpectQuery("SELECT (.+) FROM trips ORDER BY registered_at").
		WillReturnRows(mockTripRows(store.Trip{ID: "t-1", Destination: "Cartagena"}))
	ts.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM trips`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	ts.mock.ExpectQuery("SELECT (.+) FROM trips WHERE id").
		WillReturnRows(mockTripRows(store.Trip{ID: "t-1", Destination: "Cartagena"}))

	// No token on any of these.
	rec := ts.request(t, http.MethodGet, "/trips", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]store.Trip](t, rec), 1)

	rec = ts.request(t, http.MethodGet, "/trips/count", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), decodeBody[CountResponse](t, rec).Count)

	rec = ts.request(t, http.MethodGet, "/trips/t-1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cartagena", decodeBody[store.Trip](t, rec).Destination)
}

func TestTrips_MutationsGated(t *testing.T) {
	ts := newTestServer(t)

	body := TripRequest{Destination: "Cartagena", TravelDate: "2026-01-15"}

	t.Run("anonymous is 401", func(t *testing.T) {
		rec := ts.request(t, http.MethodPost, "/trips", "", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong permission is 403", func(t *testing.T) {
		token := ts.tokenFor(t, auth.Identity{
			ID:          "u-1",
			Permissions: []auth.PermissionKey{auth.PermissionViewUser, auth.PermissionManageNews},
		})
		rec := ts.request(t, http.MethodPost, "/trips", token, body)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestTrips_Create(t *testing.T) {
	ts := newTestServer(t)
	token := tripManagerToken(t, ts)

	ts.mock.ExpectExec("INSERT INTO trips").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := ts.request(t, http.MethodPost, "/trips", token, TripRequest{
		Destination: "Cartagena",
		Summary:     "Old town and beaches",
		TravelDate:  "2026-01-15",
		Images:      []string{"cartagena.jpg"},
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	trip := decodeBody[store.Trip](t, rec)
	assert.NotEmpty(t, trip.ID)
	assert.Equal(t, "Cartagena", trip.Destination)
}

func TestTrips_CreateValidation(t *testing.T) {
	ts := newTestServer(t)
	token := tripManagerToken(t, ts)

	rec := ts.request(t, http.MethodPost, "/trips", token, TripRequest{Summary: "no destination"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrips_Patch(t *testing.T) {
	ts := newTestServer(t)
	token := tripManagerToken(t, ts)

	ts.mock.ExpectQuery("SELECT (.+) FROM trips WHERE id").
		WillReturnRows(mockTripRows(store.Trip{ID: "t-1", Destination: "Cartagena", TravelDate: "2026-01-15"}))
	ts.mock.ExpectExec("UPDATE trips").
		WillReturnResult(sqlmock.NewResult(0, 1))

	summary := "Updated summary"
	rec := ts.request(t, http.MethodPatch, "/trips/t-1", token, TripPatchRequest{Summary: &summary})

	require.Equal(t, http.StatusOK, rec.Code)
	trip := decodeBody[store.Trip](t, rec)
	assert.Equal(t, "Updated summary", trip.Summary)
	assert.Equal(t, "Cartagena", trip.Destination, "unset fields keep their values")
}

func TestTrips_Replace(t *testing.T) {
	ts := newTestServer(t)
	token := tripManagerToken(t, ts)

	ts.mock.ExpectExec("UPDATE trips").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := ts.request(t, http.MethodPut, "/trips/t-1", token, TripRequest{
		Destination: "Medellin",
		TravelDate:  "2026-02-01",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Medellin", decodeBody[store.Trip](t, rec).Destination)
}

func TestTrips_Delete(t *testing.T) {
	ts := newTestServer(t)
	token := tripManagerToken(t, ts)

	t.Run("success", func(t *testing.T) {
		ts.mock.ExpectExec("DELETE FROM trips").
			WithArgs("t-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		rec := ts.request(t, http.MethodDelete, "/trips/t-1", token, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing is 404", func(t *testing.T) {
		ts.mock.ExpectExec("DELETE FROM trips").
			WithArgs("t-missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		rec := ts.request(t, http.MethodDelete, "/trips/t-missing", token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestTrips_GetMissing(t *testing.T) {
	ts := newTestServer(t)

	ts.mock.ExpectQuery("SELECT (.+) FROM trips WHERE id").
		WillReturnError(sql.ErrNoRows)

	rec := ts.request(t, http.MethodGet, "/trips/t-missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
