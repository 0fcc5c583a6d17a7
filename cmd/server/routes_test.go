package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/coursecatalog/internal/db"
	"github.com/Nixie-Tech-LLC/coursecatalog/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/coursecatalog/internal/mqtt"
	"github.com/Nixie-Tech-LLC/coursecatalog/internal/redis"
)

type credentials struct {
	email    string
	password string
}

func setupRouter(t *testing.T) (*gin.Engine, db.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := db.NewMemoryStore()
	r := gin.New()
	r.Use(middleware.Recovery())
	RegisterRoutes(r, Services{Store: store, Cache: redis.Noop{}, Events: mqtt.Noop{}})
	return r, store
}

func send(t *testing.T, r *gin.Engine, method, path string, body any, creds *credentials) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if creds != nil {
		req.SetBasicAuth(creds.email, creds.password)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine, first string, creds credentials) int {
	t.Helper()

	w := send(t, r, http.MethodPost, "/api/users", map[string]string{
		"firstName":    first,
		"lastName":     "Example",
		"emailAddress": creds.email,
		"password":     creds.password,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = send(t, r, http.MethodGet, "/api/users", nil, &creds)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var users []struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 1)
	return users[0].ID
}

func TestOwnershipScenario(t *testing.T) {
	r, store := setupRouter(t)

	a := credentials{email: "a@x.com", password: "pw1"}
	b := credentials{email: "b@x.com", password: "pw2"}
	aID := registerUser(t, r, "A", a)
	registerUser(t, r, "B", b)

	stored, err := store.GetUserByEmail(context.Background(), a.email)
	require.NoError(t, err)
	assert.NotEqual(t, a.password, stored.Password)
	assert.True(t, middleware.CheckPassword(stored.Password, a.password))

	w := send(t, r, http.MethodPost, "/api/courses", map[string]any{
		"title":       "C1",
		"description": "first course",
		"userId":      aID,
	}, &a)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	location := w.Header().Get("Location")
	require.Regexp(t, `^/api/courses/\d+$`, location)

	w = send(t, r, http.MethodDelete, location, nil, &b)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, http.StatusOK, send(t, r, http.MethodGet, location, nil, nil).Code)

	w = send(t, r, http.MethodDelete, location, nil, &a)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = send(t, r, http.MethodGet, location, nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"The requested course does not exist"}`, w.Body.String())
}

func TestProtectedRoutesDenyAnonymousCallers(t *testing.T) {
	r, _ := setupRouter(t)
	registerUser(t, r, "A", credentials{email: "a@x.com", password: "pw1"})

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/users"},
		{http.MethodPost, "/api/courses"},
		{http.MethodPut, "/api/courses/1"},
		{http.MethodDelete, "/api/courses/1"},
	}

	for _, route := range routes {
		for _, creds := range []*credentials{nil, {email: "a@x.com", password: "bad"}, {email: "z@x.com", password: "pw1"}} {
			w := send(t, r, route.method, route.path, nil, creds)
			assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
			assert.JSONEq(t, `{"message":"Access Denied"}`, w.Body.String())
		}
	}
}

func TestRegistrationAndCourseValidation(t *testing.T) {
	r, _ := setupRouter(t)
	a := credentials{email: "a@x.com", password: "pw1"}
	registerUser(t, r, "A", a)

	w := send(t, r, http.MethodPost, "/api/users", map[string]string{
		"firstName":    "Again",
		"lastName":     "Example",
		"emailAddress": a.email,
		"password":     "other",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"The given email is already paired to a user."}`, w.Body.String())

	w = send(t, r, http.MethodPost, "/api/courses", map[string]string{"description": "d"}, &a)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors":["The Title field is required"]}`, w.Body.String())

	w = send(t, r, http.MethodPost, "/api/courses", map[string]string{"title": "t"}, &a)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors":["The Description field is required"]}`, w.Body.String())
}

func TestListCoursesShowsOwnerPublicFields(t *testing.T) {
	r, _ := setupRouter(t)

	w := send(t, r, http.MethodGet, "/api/courses", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"No courses exist"}`, w.Body.String())

	a := credentials{email: "a@x.com", password: "pw1"}
	registerUser(t, r, "A", a)
	for i := 1; i <= 2; i++ {
		w = send(t, r, http.MethodPost, "/api/courses", map[string]string{
			"title":       fmt.Sprintf("Course %d", i),
			"description": "d",
		}, &a)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = send(t, r, http.MethodGet, "/api/courses", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Courses []struct {
			Title string         `json:"title"`
			User  map[string]any `json:"user"`
		} `json:"courses"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Courses, 2)
	assert.Equal(t, "Course 1", body.Courses[0].Title)
	for _, c := range body.Courses {
		assert.Len(t, c.User, 3)
		assert.Equal(t, "A", c.User["firstName"])
		assert.Equal(t, "Example", c.User["lastName"])
		assert.Equal(t, a.email, c.User["emailAddress"])
	}
}

func TestHealth(t *testing.T) {
	r, _ := setupRouter(t)

	w := send(t, r, http.MethodGet, "/api/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestPreflightExposesLocation(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/courses", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
