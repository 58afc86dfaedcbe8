package cart

import (
	"errors"
	"net/http"

	"localmart/internal/cart"
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
		GetCart(c *gin.Context)
		AddItem(c *gin.Context)
		PatchItem(c *gin.Context)
		RemoveItem(c *gin.Context)
		ClearCart(c *gin.Context)
	}

	Params struct {
		fx.In
		Logger      logger.Logger
		CartService cart.Service
	}

	handler struct {
		logger      logger.Logger
		cartService cart.Service
	}
)

func New(p Params) Handler {
	return &handler{
		logger:      p.Logger,
		cartService: p.CartService,
	}
}

func (h *handler) GetCart(c *gin.Context) {
	var (
		response structs.Response
		userID   = c.GetString("user_id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	info, err := h.cartService.Get(ctx, userID)
	if err != nil {
		h.logger.Error(ctx, " err on h.cartService.Get", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = info
}

func (h *handler) AddItem(c *gin.Context) {
	var (
		response structs.Response
		request  structs.AddCartItem
		userID   = c.GetString("user_id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	if err := c.ShouldBindJSON(&request); err != nil {
		h.logger.Warn(ctx, " error parse request", zap.Error(err))
		response = responses.BadRequest
		return
	}

	info, err := h.cartService.AddItem(ctx, userID, request)
	if err != nil {
		if errors.Is(err, structs.ErrCrossShopConflict) {
			response = responses.Conflict
			response.Payload = info
			return
		}
		if errors.Is(err, structs.ErrNotFound) {
			response = responses.NotFound
			return
		}
		h.logger.Error(ctx, " err on h.cartService.AddItem", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = info
}

func (h *handler) PatchItem(c *gin.Context) {
	var (
		response structs.Response
		request  structs.PatchCartItem
		userID   = c.GetString("user_id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	if err := c.ShouldBindJSON(&request); err != nil {
		h.logger.Warn(ctx, " error parse request", zap.Error(err))
		response = responses.BadRequest
		return
	}

	info, err := h.cartService.SetQuantity(ctx, userID, request)
	if err != nil {
		h.logger.Error(ctx, " err on h.cartService.SetQuantity", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = info
}

func (h *handler) RemoveItem(c *gin.Context) {
	var (
		response  structs.Response
		productID = c.Param("id")
		userID    = c.GetString("user_id")
		ctx       = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	info, err := h.cartService.RemoveItem(ctx, userID, productID)
	if err != nil {
		h.logger.Error(ctx, " err on h.cartService.RemoveItem", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = info
}

func (h *handler) ClearCart(c *gin.Context) {
	var (
		response structs.Response
		userID   = c.GetString("user_id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	if err := h.cartService.Clear(ctx, userID); err != nil {
		h.logger.Error(ctx, " err on h.cartService.Clear", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
}
