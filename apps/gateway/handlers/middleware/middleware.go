package middleware

import (
	"strings"

	"localmart/internal/responses"
	"localmart/internal/structs"
	"localmart/pkg/config"
	"localmart/pkg/logger"
	"localmart/pkg/reply"
	"localmart/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var (
	Module = fx.Provide(NewMiddleware)
)

type (
	Middleware interface {
		CheckAuth() gin.HandlerFunc
		OptionalAuth() gin.HandlerFunc
		VendorOnly() gin.HandlerFunc
		Ctx() gin.HandlerFunc
	}

	Params struct {
		fx.In

		Logger logger.Logger
		Config config.IConfig
	}

	mw struct {
		logger logger.Logger
		config config.IConfig
	}
)

func NewMiddleware(params Params) Middleware {
	return &mw{
		logger: params.Logger,
		config: params.Config,
	}
}

// CheckAuth validates the bearer token and stores the caller's identity
// on the gin context under user_id and user_type.
func (m *mw) CheckAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			response structs.Response
			ctx      = c.Request.Context()
		)

		authToken := c.GetHeader("Authorization")
		if utils.StrEmpty(authToken) {
			m.logger.Warn(ctx, " empty auth token")
			response = responses.Unauthorized

			c.Abort()
			reply.Json(c.Writer, responses.UnauthorizedCode, &response)
			return
		}
		authToken = strings.TrimPrefix(authToken, "Bearer ")

		claims, err := utils.ParseJWT(authToken)
		if err != nil {
			response = responses.Unauthorized

			c.Abort()
			reply.Json(c.Writer, responses.UnauthorizedCode, &response)
			return
		}

		userID, ok := claims["id"].(string)
		if !ok || userID == "" {
			response = responses.Unauthorized

			c.Abort()
			reply.Json(c.Writer, responses.UnauthorizedCode, &response)
			return
		}
		userType, _ := claims["user_type"].(string)

		c.Set("user_id", userID)
		c.Set("user_type", userType)

		c.Next()
	}
}

// OptionalAuth picks up the caller's identity when a valid bearer token is
// present but lets anonymous requests through. Public read endpoints use it
// to personalize responses (favourite marks) for logged-in callers.
func (m *mw) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authToken := c.GetHeader("Authorization")
		if utils.StrEmpty(authToken) {
			c.Next()
			return
		}
		authToken = strings.TrimPrefix(authToken, "Bearer ")

		claims, err := utils.ParseJWT(authToken)
		if err != nil {
			c.Next()
			return
		}
		if userID, ok := claims["id"].(string); ok && userID != "" {
			c.Set("user_id", userID)
			userType, _ := claims["user_type"].(string)
			c.Set("user_type", userType)
		}
		c.Next()
	}
}

// VendorOnly allows only vendor accounts through. Must run after CheckAuth.
func (m *mw) VendorOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		var response structs.Response

		if c.GetString("user_type") != structs.UserTypeVendor {
			response = responses.Forbidden

			c.Abort()
			reply.Json(c.Writer, responses.ForbiddenCode, &response)
			return
		}
		c.Next()
	}
}

func (m *mw) Ctx() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := m.logger.Context(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
