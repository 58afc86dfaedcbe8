package nearby

import (
	"net/http"

	nearby "localmart/internal/nearby"
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
		SearchNearby(c *gin.Context)
	}
	Params struct {
		fx.In
		Logger        logger.Logger
		NearbyService nearby.Service
	}

	handler struct {
		logger        logger.Logger
		nearbyService nearby.Service
	}
)

func New(p Params) Handler {
	return &handler{
		logger:        p.Logger,
		nearbyService: p.NearbyService,
	}
}

func (h *handler) SearchNearby(c *gin.Context) {
	var (
		response structs.Response
		request  structs.NearbyRequest
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	if err := c.ShouldBindJSON(&request); err != nil {
		h.logger.Warn(ctx, " error parse request", zap.Error(err))
		response = responses.BadRequest
		return
	}

	respond, err := h.nearbyService.Search(ctx, request)
	if err != nil {
		h.logger.Error(ctx, " err on h.nearbyService.Search", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = respond
}
