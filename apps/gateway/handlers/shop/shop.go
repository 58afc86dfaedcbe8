package shop

import (
	"errors"
	"net/http"

	"localmart/internal/geo"
	"localmart/internal/responses"
	shop "localmart/internal/shop"
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
		CreateShop(c *gin.Context)
		GetListShop(c *gin.Context)
		GetByIDShop(c *gin.Context)
		GetMyShop(c *gin.Context)
		PatchShop(c *gin.Context)
		DeleteShop(c *gin.Context)
	}
	Params struct {
		fx.In
		Logger      logger.Logger
		ShopService shop.Service
	}

	handler struct {
		logger      logger.Logger
		shopService shop.Service
	}
)

func New(p Params) Handler {
	return &handler{
		logger:      p.Logger,
		shopService: p.ShopService,
	}
}

func (h *handler) CreateShop(c *gin.Context) {
	var (
		response structs.Response
		request  structs.CreateShop
		userID   = c.GetString("user_id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	if err := c.ShouldBindJSON(&request); err != nil {
		h.logger.Warn(ctx, " error parse request", zap.Error(err))
		response = responses.BadRequest
		return
	}

	respond, err := h.shopService.Create(ctx, userID, request)
	if err != nil {
		if errors.Is(err, structs.ErrUniqueViolation) {
			response = responses.Conflict
			return
		}
		h.logger.Error(ctx, " err on h.shopService.Create", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = respond
}

// GetListShop accepts optional lat/lon query params. When both are
// present the list comes back nearest first with distances filled in.
func (h *handler) GetListShop(c *gin.Context) {
	var (
		response structs.Response
		userID   = c.GetString("user_id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	request := structs.GetListShopRequest{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Offset:   cast.ToInt64(c.Query("offset")),
		Limit:    cast.ToInt64(c.Query("limit")),
	}
	if c.Query("lat") != "" && c.Query("lon") != "" {
		request.Origin = &geo.Coordinates{
			Latitude:  cast.ToFloat64(c.Query("lat")),
			Longitude: cast.ToFloat64(c.Query("lon")),
		}
	}

	respond, err := h.shopService.GetList(ctx, userID, request)
	if err != nil {
		h.logger.Error(ctx, " err on h.shopService.GetList", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = respond
}

func (h *handler) GetByIDShop(c *gin.Context) {
	var (
		response structs.Response
		id       = c.Param("id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	respond, err := h.shopService.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, structs.ErrNotFound) {
			response = responses.NotFound
			return
		}
		h.logger.Error(ctx, " err on h.shopService.GetByID", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = respond
}

func (h *handler) GetMyShop(c *gin.Context) {
	var (
		response structs.Response
		userID   = c.GetString("user_id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	respond, err := h.shopService.GetMine(ctx, userID)
	if err != nil {
		if errors.Is(err, structs.ErrNotFound) {
			response = responses.NotFound
			return
		}
		h.logger.Error(ctx, " err on h.shopService.GetMine", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = respond
}

func (h *handler) PatchShop(c *gin.Context) {
	var (
		response structs.Response
		request  structs.PatchShop
		userID   = c.GetString("user_id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	if err := c.ShouldBindJSON(&request); err != nil {
		h.logger.Warn(ctx, " error parse request", zap.Error(err))
		response = responses.BadRequest
		return
	}
	request.ID = c.Param("id")

	err := h.shopService.Patch(ctx, userID, request)
	if err != nil {
		if errors.Is(err, structs.ErrForbidden) {
			response = responses.Forbidden
			return
		}
		if errors.Is(err, structs.ErrNotFound) || errors.Is(err, structs.ErrNoRowsAffected) {
			response = responses.NotFound
			return
		}
		h.logger.Error(ctx, " err on h.shopService.Patch", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
}

func (h *handler) DeleteShop(c *gin.Context) {
	var (
		response structs.Response
		id       = c.Param("id")
		userID   = c.GetString("user_id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	err := h.shopService.Delete(ctx, userID, id)
	if err != nil {
		if errors.Is(err, structs.ErrForbidden) {
			response = responses.Forbidden
			return
		}
		if errors.Is(err, structs.ErrNotFound) {
			response = responses.NotFound
			return
		}
		h.logger.Error(ctx, " err on h.shopService.Delete", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
}
