package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"localmart/pkg/config"
	"localmart/pkg/logger"
	"localmart/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMiddleware(t *testing.T) Middleware {
	t.Helper()
	t.Setenv("SECRET_KEY", "test-secret")
	gin.SetMode(gin.TestMode)

	return NewMiddleware(Params{
		Logger: logger.New("error"),
		Config: config.NewConfig(),
	})
}

func runRequest(t *testing.T, handler gin.HandlerFunc, authHeader string) *gin.Context {
	t.Helper()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/shop", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	handler(c)
	return c
}

func TestOptionalAuthSetsIdentityFromBearerToken(t *testing.T) {
	m := newTestMiddleware(t)

	token, err := utils.GenerateJWT("u1", "customer")
	require.NoError(t, err)

	c := runRequest(t, m.OptionalAuth(), "Bearer "+token)

	assert.False(t, c.IsAborted())
	assert.Equal(t, "u1", c.GetString("user_id"))
	assert.Equal(t, "customer", c.GetString("user_type"))
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	m := newTestMiddleware(t)

	c := runRequest(t, m.OptionalAuth(), "")

	assert.False(t, c.IsAborted())
	assert.Empty(t, c.GetString("user_id"))
}

func TestOptionalAuthIgnoresGarbageToken(t *testing.T) {
	m := newTestMiddleware(t)

	c := runRequest(t, m.OptionalAuth(), "Bearer not-a-jwt")

	assert.False(t, c.IsAborted())
	assert.Empty(t, c.GetString("user_id"))
}

func TestCheckAuthRejectsMissingToken(t *testing.T) {
	m := newTestMiddleware(t)

	c := runRequest(t, m.CheckAuth(), "")

	assert.True(t, c.IsAborted())
	assert.Empty(t, c.GetString("user_id"))
}
