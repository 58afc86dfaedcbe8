package user

import (
	"errors"
	"net/http"

	user "localmart/internal/control/user"
	"localmart/internal/responses"
	"localmart/internal/structs"
	"localmart/pkg/logger"
	"localmart/pkg/reply"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	Module = fx.Provide(New)
)

type (
	Handler interface {
		SignUp(c *gin.Context)
		Login(c *gin.Context)
		GetMe(c *gin.Context)
	}
	Params struct {
		fx.In
		Logger      logger.Logger
		UserService user.Service
	}

	handler struct {
		logger      logger.Logger
		userService user.Service
	}
)

func New(p Params) Handler {
	return &handler{
		logger:      p.Logger,
		userService: p.UserService,
	}
}

func (h *handler) SignUp(c *gin.Context) {
	var (
		response structs.Response
		request  structs.SignUpRequest
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	if err := c.ShouldBindJSON(&request); err != nil {
		h.logger.Warn(ctx, " error parse request", zap.Error(err))
		response = responses.BadRequest
		return
	}

	respond, err := h.userService.SignUp(ctx, request)
	if err != nil {
		if errors.Is(err, structs.ErrUniqueViolation) {
			response = responses.Conflict
			response.Message = "email already registered"
			return
		}
		if errors.Is(err, structs.ErrBadRequest) {
			response = responses.BadRequest
			return
		}
		h.logger.Error(ctx, " err on h.userService.SignUp", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = respond
}

func (h *handler) Login(c *gin.Context) {
	var (
		response structs.Response
		request  structs.LoginRequest
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	if err := c.ShouldBindJSON(&request); err != nil {
		h.logger.Warn(ctx, " error parse request", zap.Error(err))
		response = responses.BadRequest
		return
	}

	respond, err := h.userService.Login(ctx, request)
	if err != nil {
		if errors.Is(err, structs.ErrInvalidPassword) {
			response = responses.Unauthorized
			response.Message = "invalid email or password"
			return
		}
		h.logger.Error(ctx, " err on h.userService.Login", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = respond
}

func (h *handler) GetMe(c *gin.Context) {
	var (
		response structs.Response
		userID   = c.GetString("user_id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	respond, err := h.userService.GetMe(ctx, userID)
	if err != nil {
		if errors.Is(err, structs.ErrNotFound) {
			response = responses.NotFound
			return
		}
		h.logger.Error(ctx, " err on h.userService.GetMe", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = respond
}
