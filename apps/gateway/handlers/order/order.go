package order

import (
	"errors"
	"net/http"

	order "localmart/internal/order"
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
		Checkout(c *gin.Context)
		GetByIDOrder(c *gin.Context)
		GetMyOrders(c *gin.Context)
		GetShopOrders(c *gin.Context)
		PatchOrderStatus(c *gin.Context)
		PickupQR(c *gin.Context)
	}
	Params struct {
		fx.In
		Logger       logger.Logger
		OrderService order.Service
	}

	handler struct {
		logger       logger.Logger
		orderService order.Service
	}
)

func New(p Params) Handler {
	return &handler{
		logger:       p.Logger,
		orderService: p.OrderService,
	}
}

func (h *handler) Checkout(c *gin.Context) {
	var (
		response structs.Response
		request  structs.CreateOrder
		userID   = c.GetString("user_id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	if err := c.ShouldBindJSON(&request); err != nil {
		h.logger.Warn(ctx, " error parse request", zap.Error(err))
		response = responses.BadRequest
		return
	}

	respond, err := h.orderService.Checkout(ctx, userID, request)
	if err != nil {
		if errors.Is(err, structs.ErrBadRequest) || errors.Is(err, structs.ErrCartEmpty) {
			response = responses.BadRequest
			response.Message = err.Error()
			return
		}
		h.logger.Error(ctx, " err on h.orderService.Checkout", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = respond
}

func (h *handler) GetByIDOrder(c *gin.Context) {
	var (
		response structs.Response
		id       = c.Param("id")
		userID   = c.GetString("user_id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	respond, err := h.orderService.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, structs.ErrNotFound) {
			response = responses.NotFound
			return
		}
		if errors.Is(err, structs.ErrForbidden) {
			response = responses.Forbidden
			return
		}
		h.logger.Error(ctx, " err on h.orderService.GetByID", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = respond
}

func (h *handler) GetMyOrders(c *gin.Context) {
	var (
		response structs.Response
		userID   = c.GetString("user_id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	request := structs.GetListOrderRequest{
		Status: c.Query("status"),
		Offset: cast.ToInt64(c.Query("offset")),
		Limit:  cast.ToInt64(c.Query("limit")),
	}

	respond, err := h.orderService.GetListMine(ctx, userID, request)
	if err != nil {
		h.logger.Error(ctx, " err on h.orderService.GetListMine", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = respond
}

func (h *handler) GetShopOrders(c *gin.Context) {
	var (
		response structs.Response
		userID   = c.GetString("user_id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	request := structs.GetListOrderRequest{
		Status: c.Query("status"),
		Offset: cast.ToInt64(c.Query("offset")),
		Limit:  cast.ToInt64(c.Query("limit")),
	}

	respond, err := h.orderService.GetListForShop(ctx, userID, request)
	if err != nil {
		if errors.Is(err, structs.ErrForbidden) {
			response = responses.Forbidden
			return
		}
		h.logger.Error(ctx, " err on h.orderService.GetListForShop", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = respond
}

func (h *handler) PatchOrderStatus(c *gin.Context) {
	var (
		response structs.Response
		request  structs.UpdateOrderStatus
		userID   = c.GetString("user_id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	if err := c.ShouldBindJSON(&request); err != nil {
		h.logger.Warn(ctx, " error parse request", zap.Error(err))
		response = responses.BadRequest
		return
	}
	request.OrderID = c.Param("id")

	respond, err := h.orderService.UpdateStatus(ctx, userID, request)
	if err != nil {
		if errors.Is(err, structs.ErrBadRequest) || errors.Is(err, structs.ErrInvalidTransition) {
			response = responses.BadRequest
			response.Message = err.Error()
			return
		}
		if errors.Is(err, structs.ErrNotFound) {
			response = responses.NotFound
			return
		}
		if errors.Is(err, structs.ErrForbidden) {
			response = responses.Forbidden
			return
		}
		h.logger.Error(ctx, " err on h.orderService.UpdateStatus", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = respond
}

// PickupQR streams the pickup code as a PNG, not the usual json envelope.
func (h *handler) PickupQR(c *gin.Context) {
	var (
		id     = c.Param("id")
		userID = c.GetString("user_id")
		ctx    = c.Request.Context()
	)

	png, err := h.orderService.PickupQR(ctx, userID, id)
	if err != nil {
		var response structs.Response
		switch {
		case errors.Is(err, structs.ErrNotFound):
			response = responses.NotFound
		case errors.Is(err, structs.ErrForbidden):
			response = responses.Forbidden
		case errors.Is(err, structs.ErrBadRequest):
			response = responses.BadRequest
		default:
			h.logger.Error(ctx, " err on h.orderService.PickupQR", zap.Error(err))
			response = responses.InternalErr
		}
		reply.Json(c.Writer, http.StatusOK, &response)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
