package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"carelog/config"
	"carelog/internal/app"
	"carelog/internal/handlers/middleware"
	. "carelog/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *fiber.App {
	t.Helper()
	application, err := app.NewWithConfig(config.Config{
		GeneralVersion:   "test",
		Environment:      "test",
		ServerPort:       8288,
		CorsAllowOrigins: "*",
		DatabaseDbPath:   filepath.Join(t.TempDir(), "handlers.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	server, err := NewServer(application)
	require.NoError(t, err)
	return server
}

func do(t *testing.T, server *fiber.App, method, path, userID, body string) (int, map[string]json.RawMessage) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}

	resp, err := server.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload := map[string]json.RawMessage{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &payload), "body: %s", raw)
	return resp.StatusCode, payload
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)

	status, body := do(t, server, http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, `"ok"`, string(body["status"]))
	assert.Equal(t, `"test"`, string(body["version"]))
}

func TestRequireUser(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name   string
		userID string
		status int
	}{
		{name: "missing header", userID: "", status: http.StatusBadRequest},
		{name: "too long", userID: strings.Repeat("x", 51), status: http.StatusBadRequest},
		{name: "valid", userID: "u1", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := do(t, server, http.MethodGet, "/api/settings", tt.userID, "")
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestSettingsEndpoints(t *testing.T) {
	server := newTestServer(t)

	status, body := do(t, server, http.MethodGet, "/api/settings", "u1", "")
	require.Equal(t, http.StatusOK, status)
	settings := decode[Settings](t, body["settings"])
	require.Len(t, settings.Metrics, 3)
	require.Len(t, settings.EventTypes, 7)

	status, body = do(t, server, http.MethodPost, "/api/settings/metrics", "u1",
		`{"name":"Nausea","icon":"🤢","minValue":0,"maxValue":10,"defaultValue":0}`)
	require.Equal(t, http.StatusCreated, status)
	metric := decode[Metric](t, body["metric"])
	assert.NotEmpty(t, metric.ID)
	assert.Equal(t, 3, metric.SortOrder)

	status, _ = do(t, server, http.MethodPost, "/api/settings/metrics", "u1",
		`{"name":"Broken","minValue":10,"maxValue":1,"defaultValue":5}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, server, http.MethodPut, "/api/settings/metrics/"+metric.ID, "u1",
		`{"name":"Queasy","icon":"🤢","minValue":0,"maxValue":5,"defaultValue":1}`)
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, server, http.MethodDelete, "/api/settings/event-types/"+settings.EventTypes[0].ID, "u1", "")
	assert.Equal(t, http.StatusOK, status)

	status, body = do(t, server, http.MethodGet, "/api/settings", "u1", "")
	require.Equal(t, http.StatusOK, status)
	settings = decode[Settings](t, body["settings"])
	require.Len(t, settings.Metrics, 4)
	assert.Equal(t, "Queasy", settings.Metrics[3].Name)
	assert.Len(t, settings.EventTypes, 6)
}

func TestDayEndpoints(t *testing.T) {
	server := newTestServer(t)

	status, body := do(t, server, http.MethodGet, "/api/days/2024-03-15", "u1", "")
	require.Equal(t, http.StatusOK, status)
	day := decode[DayAggregate](t, body["day"])
	assert.Equal(t, "2024-03-15", day.Date)
	assert.Nil(t, day.Mood)
	assert.Equal(t, `{"date":"2024-03-15","mood":null,"metricValues":{},"notes":"","events":[],"questions":[]}`, string(body["day"]))

	status, _ = do(t, server, http.MethodPatch, "/api/days/2024-03-15", "u1", `{"mood":2,"metricValues":{"a":1}}`)
	require.Equal(t, http.StatusOK, status)

	status, body = do(t, server, http.MethodPatch, "/api/days/2024-03-15", "u1", `{"metricValues":{"b":2},"admissionDate":"2024-03-10"}`)
	require.Equal(t, http.StatusOK, status)
	day = decode[DayAggregate](t, body["day"])
	assert.Equal(t, MetricValues{"a": 1, "b": 2}, day.MetricValues)
	require.NotNil(t, day.Mood)
	assert.Equal(t, 2, *day.Mood)

	status, body = do(t, server, http.MethodPatch, "/api/days/2024-03-15", "u1", `{"mood":null}`)
	require.Equal(t, http.StatusOK, status)
	day = decode[DayAggregate](t, body["day"])
	assert.Nil(t, day.Mood)

	status, _ = do(t, server, http.MethodPatch, "/api/days/2024-03-15", "u1", `{"mood":9}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, server, http.MethodPatch, "/api/days/2024-03-15", "u1", `{"mood":`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, server, http.MethodGet, "/api/days/2024-3-15", "u1", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = do(t, server, http.MethodGet, "/api/days?limit=10", "u1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"2024-03-15"}, decode[[]string](t, body["dates"]))

	status, _ = do(t, server, http.MethodGet, "/api/days?limit=400", "u1", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestEventAndQuestionEndpoints(t *testing.T) {
	server := newTestServer(t)

	status, _ := do(t, server, http.MethodPost, "/api/days/2024-03-15/events", "u1", `{"id":"e1","time":"08:00","type":"Obs done"}`)
	require.Equal(t, http.StatusCreated, status)
	status, body := do(t, server, http.MethodPost, "/api/days/2024-03-15/events", "u1", `{"id":"e2","time":"09:00","type":"Bloods","note":"fasting"}`)
	require.Equal(t, http.StatusCreated, status)

	day := decode[DayAggregate](t, body["day"])
	require.Len(t, day.Events, 2)
	assert.Equal(t, "e2", day.Events[0].ID)
	assert.Equal(t, "e1", day.Events[1].ID)

	status, _ = do(t, server, http.MethodPost, "/api/days/2024-03-15/events", "u1", `{"time":"8:00","type":"Meal"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, server, http.MethodDelete, "/api/events/e1", "u1", "")
	assert.Equal(t, http.StatusOK, status)
	status, _ = do(t, server, http.MethodDelete, "/api/events/e1", "u1", "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, server, http.MethodPost, "/api/days/2024-03-15/questions", "u1", `{"id":"q1","text":"When is the scan?"}`)
	require.Equal(t, http.StatusCreated, status)

	status, _ = do(t, server, http.MethodPatch, "/api/questions/q1", "u1", `{"answered":true}`)
	assert.Equal(t, http.StatusOK, status)

	for _, body := range []string{`{}`, `{"answered":null}`} {
		status, _ = do(t, server, http.MethodPatch, "/api/questions/q1", "u1", body)
		assert.Equal(t, http.StatusBadRequest, status, "body %s", body)
	}

	status, body = do(t, server, http.MethodGet, "/api/days/2024-03-15", "u1", "")
	require.Equal(t, http.StatusOK, status)
	day = decode[DayAggregate](t, body["day"])
	assert.Equal(t, []string{"e2"}, []string{day.Events[0].ID})
	require.Len(t, day.Questions, 1)
	assert.True(t, day.Questions[0].Answered)

	status, body = do(t, server, http.MethodGet, "/api/days/2024-03-15/summary", "u1", "")
	require.Equal(t, http.StatusOK, status)
	text := decode[string](t, body["summary"])
	assert.True(t, strings.HasPrefix(text, "Friday 15 March 2024\n\nHow I'm doing:\nPain: 0/10"))
	assert.Contains(t, text, "Events:\n09:00 — Bloods (fasting)")
	assert.Contains(t, text, "Answered questions:\n• When is the scan?")

	status, _ = do(t, server, http.MethodDelete, "/api/questions/q1", "u1", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestContactEndpoints(t *testing.T) {
	server := newTestServer(t)

	status, body := do(t, server, http.MethodPost, "/api/contacts", "u1", `{"name":"Dr Patel","role":"Consultant","phone":"0123"}`)
	require.Equal(t, http.StatusCreated, status)
	contact := decode[Contact](t, body["contact"])

	status, _ = do(t, server, http.MethodPut, "/api/contacts/"+contact.ID, "u1", `{"name":"Dr Patel","role":"Consultant","phone":"0123","notes":"rounds 9am"}`)
	assert.Equal(t, http.StatusOK, status)

	status, body = do(t, server, http.MethodGet, "/api/contacts", "u1", "")
	require.Equal(t, http.StatusOK, status)
	contacts := decode[[]Contact](t, body["contacts"])
	require.Len(t, contacts, 1)
	assert.Equal(t, "rounds 9am", contacts[0].Notes)

	status, body = do(t, server, http.MethodGet, "/api/contacts", "u2", "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]Contact](t, body["contacts"]))

	status, _ = do(t, server, http.MethodPost, "/api/contacts", "u1", `{"role":"No name"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, server, http.MethodDelete, "/api/contacts/"+contact.ID, "u1", "")
	assert.Equal(t, http.StatusOK, status)
}
