package product

import (
	"errors"
	"net/http"

	product "localmart/internal/product"
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
		CreateProduct(c *gin.Context)
		GetListProduct(c *gin.Context)
		GetByIDProduct(c *gin.Context)
		PatchProduct(c *gin.Context)
		DeleteProduct(c *gin.Context)
	}
	Params struct {
		fx.In
		Logger         logger.Logger
		ProductService product.Service
	}

	handler struct {
		logger         logger.Logger
		productService product.Service
	}
)

func New(p Params) Handler {
	return &handler{
		logger:         p.Logger,
		productService: p.ProductService,
	}
}

func (h *handler) CreateProduct(c *gin.Context) {
	var (
		response structs.Response
		request  structs.CreateProduct
		userID   = c.GetString("user_id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	if err := c.ShouldBindJSON(&request); err != nil {
		h.logger.Warn(ctx, " error parse request", zap.Error(err))
		response = responses.BadRequest
		return
	}

	respond, err := h.productService.Create(ctx, userID, request)
	if err != nil {
		if errors.Is(err, structs.ErrForbidden) {
			response = responses.Forbidden
			return
		}
		if errors.Is(err, structs.ErrNotFound) {
			response = responses.NotFound
			return
		}
		h.logger.Error(ctx, " err on h.productService.Create", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = respond
}

func (h *handler) GetListProduct(c *gin.Context) {
	var (
		response structs.Response
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	request := structs.GetListProductRequest{
		ShopID: c.Query("shop_id"),
		Search: c.Query("search"),
		Offset: cast.ToInt64(c.Query("offset")),
		Limit:  cast.ToInt64(c.Query("limit")),
	}

	respond, err := h.productService.GetList(ctx, request)
	if err != nil {
		h.logger.Error(ctx, " err on h.productService.GetList", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = respond
}

func (h *handler) GetByIDProduct(c *gin.Context) {
	var (
		response structs.Response
		id       = c.Param("id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	respond, err := h.productService.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, structs.ErrNotFound) {
			response = responses.NotFound
			return
		}
		h.logger.Error(ctx, " err on h.productService.GetByID", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = respond
}

func (h *handler) PatchProduct(c *gin.Context) {
	var (
		response structs.Response
		request  structs.PatchProduct
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

	err := h.productService.Patch(ctx, userID, request)
	if err != nil {
		if errors.Is(err, structs.ErrForbidden) {
			response = responses.Forbidden
			return
		}
		if errors.Is(err, structs.ErrNotFound) || errors.Is(err, structs.ErrNoRowsAffected) {
			response = responses.NotFound
			return
		}
		h.logger.Error(ctx, " err on h.productService.Patch", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
}

func (h *handler) DeleteProduct(c *gin.Context) {
	var (
		response structs.Response
		id       = c.Param("id")
		userID   = c.GetString("user_id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	err := h.productService.Delete(ctx, userID, id)
	if err != nil {
		if errors.Is(err, structs.ErrForbidden) {
			response = responses.Forbidden
			return
		}
		if errors.Is(err, structs.ErrNotFound) {
			response = responses.NotFound
			return
		}
		h.logger.Error(ctx, " err on h.productService.Delete", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
}
