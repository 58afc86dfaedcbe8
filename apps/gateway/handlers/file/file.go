package file

import (
	"net/http"

	file "localmart/internal/file"
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
		UploadImage(c *gin.Context)
		DeleteImage(c *gin.Context)
	}
	Params struct {
		fx.In
		Logger      logger.Logger
		FileService file.Service
	}

	handler struct {
		logger      logger.Logger
		fileService file.Service
	}
)

func New(p Params) Handler {
	return &handler{
		logger:      p.Logger,
		fileService: p.FileService,
	}
}

func (h *handler) UploadImage(c *gin.Context) {
	var (
		response structs.Response
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.logger.Warn(ctx, " error parse multipart file", zap.Error(err))
		response = responses.BadRequest
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.logger.Error(ctx, " err on fileHeader.Open", zap.Error(err))
		response = responses.InternalErr
		return
	}
	defer src.Close()

	respond, err := h.fileService.Upload(ctx, src, fileHeader.Filename)
	if err != nil {
		h.logger.Error(ctx, " err on h.fileService.Upload", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = respond
}

func (h *handler) DeleteImage(c *gin.Context) {
	var (
		response structs.Response
		fileName = c.Param("name")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	if err := h.fileService.Remove(ctx, fileName); err != nil {
		h.logger.Error(ctx, " err on h.fileService.Remove", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
}
