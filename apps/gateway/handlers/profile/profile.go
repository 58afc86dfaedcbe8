package profile

import (
	"errors"
	"net/http"

	profile "localmart/internal/profile"
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
		GetMyProfile(c *gin.Context)
		PatchMyProfile(c *gin.Context)
	}
	Params struct {
		fx.In
		Logger         logger.Logger
		ProfileService profile.Service
	}

	handler struct {
		logger         logger.Logger
		profileService profile.Service
	}
)

func New(p Params) Handler {
	return &handler{
		logger:         p.Logger,
		profileService: p.ProfileService,
	}
}

func (h *handler) GetMyProfile(c *gin.Context) {
	var (
		response structs.Response
		userID   = c.GetString("user_id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	respond, err := h.profileService.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, structs.ErrNotFound) {
			response = responses.NotFound
			return
		}
		h.logger.Error(ctx, " err on h.profileService.GetByUserID", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = respond
}

func (h *handler) PatchMyProfile(c *gin.Context) {
	var (
		response structs.Response
		request  structs.PatchProfile
		userID   = c.GetString("user_id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	if err := c.ShouldBindJSON(&request); err != nil {
		h.logger.Warn(ctx, " error parse request", zap.Error(err))
		response = responses.BadRequest
		return
	}
	request.UserID = userID

	respond, err := h.profileService.Patch(ctx, request)
	if err != nil {
		if errors.Is(err, structs.ErrNotFound) {
			response = responses.NotFound
			return
		}
		h.logger.Error(ctx, " err on h.profileService.Patch", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = respond
}
