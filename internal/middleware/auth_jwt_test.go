package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"takeout/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// =====================
// helper
// =====================

func mustMakeJWT(t *testing.T, secret string, sub int64, role string, signingMethod jwt.SigningMethod) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(signingMethod, claims)

	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}
	return s
}

func runAuthJWT(t *testing.T, cfg config.Config, authz string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var passed echo.Context
	next := func(c echo.Context) error {
		passed = c
		return c.NoContent(http.StatusOK)
	}

	err := AuthJWT(cfg)(next)(c)
	assert.NoError(t, err)

	return rec, passed
}

func TestAuthJWT_ValidTokenSetsContext(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	token := mustMakeJWT(t, "test-secret", 42, "CUSTOMER", jwt.SigningMethodHS256)

	rec, passed := runAuthJWT(t, cfg, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, passed)
	assert.Equal(t, int64(42), passed.Get(CtxUserIDKey))
	assert.Equal(t, "CUSTOMER", passed.Get(CtxUserRoleKey))
}

func TestAuthJWT_MissingHeaderRejected(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}

	rec, passed := runAuthJWT(t, cfg, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, passed)
}

func TestAuthJWT_WrongSecretRejected(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	token := mustMakeJWT(t, "another-secret", 42, "CUSTOMER", jwt.SigningMethodHS256)

	rec, passed := runAuthJWT(t, cfg, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, passed)
}

func TestAuthJWT_NonBearerRejected(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	token := mustMakeJWT(t, "test-secret", 42, "CUSTOMER", jwt.SigningMethodHS256)

	rec, passed := runAuthJWT(t, cfg, "Basic "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, passed)
}

func TestRoleGuard_AllowsListedRoles(t *testing.T) {
	e := echo.New()

	cases := []struct {
		role string
		want int
	}{
		{"ADMIN", http.StatusOK},
		{"EMPLOYEE", http.StatusOK},
		{"CUSTOMER", http.StatusForbidden},
		{"", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if tc.role != "" {
			c.Set(CtxUserRoleKey, tc.role)
		}

		next := func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		}

		err := RoleGuard("EMPLOYEE", "ADMIN")(next)(c)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, rec.Code, "role %q", tc.role)
	}
}
