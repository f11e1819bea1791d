// ABOUTME: HTTP tests for the run and mood API.
// ABOUTME: Drives the gin engine through httptest against a temp SQLite store.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/moodrun/internal/models"
	"github.com/harperreed/moodrun/internal/storage"
	"github.com/harperreed/moodrun/internal/tracker"
)

const morningRun = `{"name":"Morning Run","date":"2025-01-15T09:30","distance":5.0,"total_time":"00:45:00"}`

func TestCreateRunComputesPace(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodPost, "/api/runs", morningRun)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Message string  `json:"message"`
		Run     runJSON `json:"run"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "Run added successfully", body.Message)
	assert.Equal(t, int64(1), body.Run.ID)
	assert.Equal(t, "Morning Run", body.Run.Name)
	assert.Equal(t, "2025-01-15T09:30:00", body.Run.Date)
	assert.Equal(t, 5.0, body.Run.Distance)
	assert.Equal(t, "00:45:00", body.Run.TotalTime)
	assert.Equal(t, "00:09:00", body.Run.Pace)
}

func TestCreateRunRejections(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "free-text time",
			body: `{"name":"r","date":"2025-01-15T09:30","distance":5,"total_time":"45 minutes"}`,
			want: models.MsgInvalidTimeFormat,
		},
		{
			name: "day-first date",
			body: `{"name":"r","date":"15-01-2025 09:30","distance":5,"total_time":"00:45:00"}`,
			want: models.MsgInvalidDateTimeFormat,
		},
		{
			name: "zero distance",
			body: `{"name":"r","date":"2025-01-15T09:30","distance":0,"total_time":"00:45:00"}`,
			want: models.MsgInvalidDistance,
		},
		{
			name: "missing name",
			body: `{"date":"2025-01-15T09:30","distance":5,"total_time":"00:45:00"}`,
			want: "Missing required field: name",
		},
		{
			name: "null total time",
			body: `{"name":"r","date":"2025-01-15T09:30","distance":5,"total_time":null}`,
			want: "Missing required field: total_time",
		},
		{
			name: "string distance",
			body: `{"name":"r","date":"2025-01-15T09:30","distance":"five","total_time":"00:45:00"}`,
			want: "distance must be a number",
		},
		{
			name: "malformed json",
			body: `{"name":`,
			want: "Invalid JSON body",
		},
		{
			name: "empty body",
			body: ``,
			want: "Invalid JSON body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t)
			rec := doRequest(t, h, http.MethodPost, "/api/runs", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, errorMessage(t, rec))
		})
	}
}

func TestDeleteRunRemovesFromList(t *testing.T) {
	h := newTestHandler(t)

	var ids []int64
	for i := 0; i < 3; i++ {
		rec := doRequest(t, h, http.MethodPost, "/api/runs", morningRun)
		require.Equal(t, http.StatusCreated, rec.Code)
		var body struct {
			Run runJSON `json:"run"`
		}
		decodeBody(t, rec, &body)
		ids = append(ids, body.Run.ID)
	}

	for _, id := range ids {
		rec := doRequest(t, h, http.MethodDelete, "/api/runs/"+itoa(id), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Run deleted successfully"}`, rec.Body.String())

		for _, r := range listRuns(t, h) {
			assert.NotEqual(t, id, r.ID)
		}
	}
	assert.Empty(t, listRuns(t, h))
}

func TestRunNotFound(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodDelete, "/api/runs/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Run not found", errorMessage(t, rec))

	rec = doRequest(t, h, http.MethodGet, "/api/runs/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Run not found", errorMessage(t, rec))
}

func TestInvalidID(t *testing.T) {
	h := newTestHandler(t)

	for _, path := range []string{"/api/runs/abc", "/api/mood/1.5"} {
		rec := doRequest(t, h, http.MethodDelete, path, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Equal(t, "Invalid id", errorMessage(t, rec), path)
	}
}

func TestGetRun(t *testing.T) {
	h := newTestHandler(t)
	require.Equal(t, http.StatusCreated, doRequest(t, h, http.MethodPost, "/api/runs", morningRun).Code)

	rec := doRequest(t, h, http.MethodGet, "/api/runs/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Run runJSON `json:"run"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "Morning Run", body.Run.Name)
}

func TestMoodListAndCreate(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/api/mood", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"moods":[]}`, rec.Body.String())

	payload := `{"positivity_level":7,"stress_level":3,"energy_level":6,"calmness_level":8,"motivation_level":5,"date":"2025-01-15T21:00"}`
	rec = doRequest(t, h, http.MethodPost, "/api/mood", payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Message string   `json:"message"`
		Mood    moodJSON `json:"mood"`
	}
	decodeBody(t, rec, &created)
	assert.Equal(t, "Mood added successfully", created.Message)

	rec = doRequest(t, h, http.MethodGet, "/api/mood", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Moods []moodJSON `json:"moods"`
	}
	decodeBody(t, rec, &list)
	require.Len(t, list.Moods, 1)

	m := list.Moods[0]
	assert.Equal(t, created.Mood, m)
	assert.Equal(t, "2025-01-15T21:00:00", m.Date)
	assert.Equal(t, 7, m.PositivityLevel)
	assert.Equal(t, 3, m.StressLevel)
	assert.Equal(t, 6, m.EnergyLevel)
	assert.Equal(t, 8, m.CalmnessLevel)
	assert.Equal(t, 5, m.MotivationLevel)
}

func TestCreateMoodRejections(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "missing level",
			body: `{"positivity_level":7,"stress_level":3,"energy_level":6,"calmness_level":8}`,
			want: "Missing required field: motivation_level",
		},
		{
			name: "out of range",
			body: `{"positivity_level":7,"stress_level":30,"energy_level":6,"calmness_level":8,"motivation_level":5}`,
			want: "stress_level must be between 1 and 10",
		},
		{
			name: "fractional",
			body: `{"positivity_level":7.5,"stress_level":3,"energy_level":6,"calmness_level":8,"motivation_level":5}`,
			want: "positivity_level must be an integer",
		},
		{
			name: "bad date",
			body: `{"positivity_level":7,"stress_level":3,"energy_level":6,"calmness_level":8,"motivation_level":5,"date":"tomorrow"}`,
			want: models.MsgInvalidDateTimeFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t)
			rec := doRequest(t, h, http.MethodPost, "/api/mood", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, errorMessage(t, rec))
		})
	}
}

func TestDeleteMissingMood(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodDelete, "/api/mood/12345", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Mood not found"}`, rec.Body.String())
}

func TestRecentsEmpty(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/api/recents", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"latest_run":null,"latest_mood":null}`, rec.Body.String())
}

func TestRecentsPicksLatestDate(t *testing.T) {
	h := newTestHandler(t)

	for _, date := range []string{"2025-01-20T07:00", "2025-01-10T07:00"} {
		body := `{"name":"` + date + `","date":"` + date + `","distance":4,"total_time":"00:30:00"}`
		require.Equal(t, http.StatusCreated, doRequest(t, h, http.MethodPost, "/api/runs", body).Code)
	}
	mood := `{"positivity_level":2,"stress_level":2,"energy_level":2,"calmness_level":2,"motivation_level":2,"date":"2025-01-01T10:00"}`
	require.Equal(t, http.StatusCreated, doRequest(t, h, http.MethodPost, "/api/mood", mood).Code)

	rec := doRequest(t, h, http.MethodGet, "/api/recents", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body recentsJSON
	decodeBody(t, rec, &body)
	require.NotNil(t, body.LatestRun)
	require.NotNil(t, body.LatestMood)
	assert.Equal(t, "2025-01-20T07:00:00", body.LatestRun.Date)
	assert.Equal(t, "00:07:30", body.LatestRun.Pace)
	assert.Equal(t, 2, body.LatestMood.PositivityLevel)
}

func TestListingIsIdempotent(t *testing.T) {
	h := newTestHandler(t)
	require.Equal(t, http.StatusCreated, doRequest(t, h, http.MethodPost, "/api/runs", morningRun).Code)
	mood := `{"positivity_level":5,"stress_level":5,"energy_level":5,"calmness_level":5,"motivation_level":5}`
	require.Equal(t, http.StatusCreated, doRequest(t, h, http.MethodPost, "/api/mood", mood).Code)

	for _, path := range []string{"/api/runs", "/api/mood"} {
		first := doRequest(t, h, http.MethodGet, path, "")
		second := doRequest(t, h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, first.Body.String(), second.Body.String(), path)
	}
}

func TestHelloAndHealth(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello from backend!"}`, rec.Body.String())

	rec = doRequest(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", errorMessage(t, rec))
}

func TestRequestIDHeader(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/api/runs", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/runs", nil)
	req.Header.Set("Origin", DefaultAllowedOrigin)
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, DefaultAllowedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestStoreFailureIsGeneric500(t *testing.T) {
	svc := tracker.NewService(brokenRepo{})
	h := New(Config{Service: svc}).Handler()

	rec := doRequest(t, h, http.MethodGet, "/api/runs", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", errorMessage(t, rec))
	assert.NotContains(t, rec.Body.String(), "disk")

	rec = doRequest(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", models.MissingField("name"), http.StatusBadRequest, "Missing required field: name"},
		{"not found", &tracker.NotFoundError{Entity: tracker.EntityMood}, http.StatusNotFound, "Mood not found"},
		{"bare storage not found", storage.ErrNotFound, http.StatusInternalServerError, msgInternal},
		{"other", errors.New("boom"), http.StatusInternalServerError, msgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := statusFor(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.msg, msg)
		})
	}
}

// Helpers

// brokenRepo fails every call it implements; others panic via the nil embed.
type brokenRepo struct {
	storage.Repository
}

var errDisk = errors.New("disk unavailable")

func (brokenRepo) ListRuns(context.Context) ([]*models.Run, error) { return nil, errDisk }
func (brokenRepo) Ping(context.Context) error                      { return errDisk }

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "moodrun.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return New(Config{Service: tracker.NewService(db)}).Handler()
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	decodeBody(t, rec, &body)
	return body.Error
}

func listRuns(t *testing.T, h http.Handler) []runJSON {
	t.Helper()
	rec := doRequest(t, h, http.MethodGet, "/api/runs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Runs []runJSON `json:"runs"`
	}
	decodeBody(t, rec, &body)
	return body.Runs
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
