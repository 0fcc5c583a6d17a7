package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/coursecatalog/internal/db"
	"github.com/Nixie-Tech-LLC/coursecatalog/internal/model"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := db.NewMemoryStore()
	hashed, err := HashPassword("pw1")
	require.NoError(t, err)
	_, err = store.CreateUser(context.Background(), &model.User{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		EmailAddress: "a@x.com",
		Password:     hashed,
	})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/protected", BasicAuth(store), func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": user.EmailAddress})
	})
	return r
}

func TestBasicAuth(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name       string
		setAuth    func(req *http.Request)
		wantStatus int
	}{
		{"missing header", func(req *http.Request) {}, http.StatusUnauthorized},
		{"not basic", func(req *http.Request) { req.Header.Set("Authorization", "Bearer abc") }, http.StatusUnauthorized},
		{"malformed base64", func(req *http.Request) { req.Header.Set("Authorization", "Basic !!!") }, http.StatusUnauthorized},
		{"unknown user", func(req *http.Request) { req.SetBasicAuth("b@x.com", "pw1") }, http.StatusUnauthorized},
		{"email is case sensitive", func(req *http.Request) { req.SetBasicAuth("A@X.COM", "pw1") }, http.StatusUnauthorized},
		{"wrong password", func(req *http.Request) { req.SetBasicAuth("a@x.com", "nope") }, http.StatusUnauthorized},
		{"valid credentials", func(req *http.Request) { req.SetBasicAuth("a@x.com", "pw1") }, http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			tc.setAuth(req)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"message":"Access Denied"}`, w.Body.String())
			} else {
				assert.JSONEq(t, `{"email":"a@x.com"}`, w.Body.String())
			}
		})
	}
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hashed, err := HashPassword("secret")
	require.NoError(t, err)

	assert.NotEqual(t, "secret", hashed)
	assert.True(t, CheckPassword(hashed, "secret"))
	assert.False(t, CheckPassword(hashed, "Secret"))
}

func TestHashPasswordLongerThanBcryptLimit(t *testing.T) {
	long := strings.Repeat("p", 80)

	hashed, err := HashPassword(long)
	require.NoError(t, err)

	assert.True(t, CheckPassword(hashed, long))
	assert.True(t, CheckPassword(hashed, long[:72]))
	assert.False(t, CheckPassword(hashed, long[:71]))
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Something went wrong, please try again"}`, w.Body.String())
}
