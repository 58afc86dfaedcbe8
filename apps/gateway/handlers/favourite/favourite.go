package favourite

import (
	"errors"
	"net/http"

	favourite "localmart/internal/favourite"
	"localmart/internal/geo"
	"localmart/internal/responses"
	"localmart/internal/structs"
	"localmart/pkg/logger"
	"localmart/pkg/reply"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	Module = fx.Provide(New)
)

type (
	Handler interface {
		ToggleFavourite(c *gin.Context)
		GetListFavourite(c *gin.Context)
	}
	Params struct {
		fx.In
		Logger           logger.Logger
		FavouriteService favourite.Service
	}

	handler struct {
		logger           logger.Logger
		favouriteService favourite.Service
	}
)

func New(p Params) Handler {
	return &handler{
		logger:           p.Logger,
		favouriteService: p.FavouriteService,
	}
}

func (h *handler) ToggleFavourite(c *gin.Context) {
	var (
		response structs.Response
		request  structs.ToggleFavourite
		userID   = c.GetString("user_id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	if err := c.ShouldBindJSON(&request); err != nil {
		h.logger.Warn(ctx, " error parse request", zap.Error(err))
		response = responses.BadRequest
		return
	}

	respond, err := h.favouriteService.Toggle(ctx, userID, request.ShopID)
	if err != nil {
		if errors.Is(err, structs.ErrNotFound) {
			response = responses.NotFound
			return
		}
		h.logger.Error(ctx, " err on h.favouriteService.Toggle", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = respond
}

// GetListFavourite accepts optional lat/lon query params. When both are
// present the favourites come back nearest first with distances filled in.
func (h *handler) GetListFavourite(c *gin.Context) {
	var (
		response structs.Response
		userID   = c.GetString("user_id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	var origin *geo.Coordinates
	if c.Query("lat") != "" && c.Query("lon") != "" {
		origin = &geo.Coordinates{
			Latitude:  cast.ToFloat64(c.Query("lat")),
			Longitude: cast.ToFloat64(c.Query("lon")),
		}
	}

	respond, err := h.favouriteService.GetList(ctx, userID, origin)
	if err != nil {
		h.logger.Error(ctx, " err on h.favouriteService.GetList", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = respond
}
