package adminclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dating-admin/pkg/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestListPageSendsFilterState(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		writeJSON(w, http.StatusOK, models.ListResponse[models.User]{
			Items:      []models.User{{ID: uuid.New(), FullName: "Inès Martin"}},
			Pagination: models.NewPagination(21, 2, 10),
		})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Token: "tok"})
	page, err := ListPage[models.User](context.Background(), c, Users, FilterState{
		Page: 2, PageSize: 10, SortField: "email", SortOrder: models.SortAsc, SearchText: "ines", StatusFilter: "verified",
	})
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "/api/v1/users", got.URL.Path)
	assert.Equal(t, "Bearer tok", got.Header.Get("Authorization"))
	q := got.URL.Query()
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "10", q.Get("limit"))
	assert.Equal(t, "email", q.Get("sort"))
	assert.Equal(t, "asc", q.Get("order"))
	assert.Equal(t, "ines", q.Get("search"))
	assert.Equal(t, "verified", q.Get("status"))

	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(21), page.Total)
	assert.Equal(t, 3, page.PageCount)
}

func TestListPageOmitsEmptyFilters(t *testing.T) {
	var query map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		writeJSON(w, http.StatusOK, models.ListResponse[models.Match]{Pagination: models.NewPagination(0, 1, 10)})
	}))
	defer srv.Close()

	_, err := ListPage[models.Match](context.Background(), New(Config{BaseURL: srv.URL}), Matches, FilterState{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.NotContains(t, query, "search")
	assert.NotContains(t, query, "status")
}

func TestAPIErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":      "not_found",
			"message":    "user 42 not found",
			"request_id": "req-1",
		})
	}))
	defer srv.Close()

	_, err := New(Config{BaseURL: srv.URL}).VerifyUser(context.Background(), "42", true)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "not_found", apiErr.Code)
	assert.Equal(t, "req-1", apiErr.RequestID)
	assert.Equal(t, "user 42 not found", ErrorMessage(err))
}

func TestAPIErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := New(Config{BaseURL: srv.URL}).Delete(context.Background(), Reports, "9")
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusBadGateway))
	assert.Equal(t, "request failed with status 502", err.Error())
}

func TestLoginStoresToken(t *testing.T) {
	var lastAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			var body models.LoginRequest
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.Password != "s3cret!" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized", "message": "invalid credentials"})
				return
			}
			writeJSON(w, http.StatusOK, models.LoginResponse{Token: "fresh-token"})
		case "/api/v1/dashboard/stats":
			lastAuth = r.Header.Get("Authorization")
			writeJSON(w, http.StatusOK, models.DashboardStats{Users: 12})
		}
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})

	_, err := c.Login(context.Background(), "ops@example.com", "wrong")
	assert.Equal(t, "invalid credentials", ErrorMessage(err))

	resp, err := c.Login(context.Background(), "ops@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", resp.Token)

	stats, err := c.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.Users)
	assert.Equal(t, "Bearer fresh-token", lastAuth)
}

func TestUserMutationsHitItemRoutes(t *testing.T) {
	var method, path string
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		body = nil
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, models.User{FullName: "Zoé"})
	}))
	defer srv.Close()
	c := New(Config{BaseURL: srv.URL})

	user, err := c.BanUser(context.Background(), "u1", true, "spam")
	require.NoError(t, err)
	assert.Equal(t, "Zoé", user.FullName)
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/api/v1/users/u1/ban", path)
	assert.Equal(t, map[string]any{"banned": true, "reason": "spam"}, body)

	_, err = UpdateReportStatus[models.SafetyReport](context.Background(), c, SafetyReports, "s1", models.ReportDismissed, "")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/safety-reports/s1/status", path)
	assert.Equal(t, "dismissed", body["status"])
}

func TestLookupResource(t *testing.T) {
	res, err := LookupResource("safety")
	require.NoError(t, err)
	assert.Equal(t, SafetyReports.Path, res.Path)

	_, err = LookupResource("payments")
	assert.Error(t, err)

	assert.Contains(t, Users.SortFields(), "lastActiveAt")
}
