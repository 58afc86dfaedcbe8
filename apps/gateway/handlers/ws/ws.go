package ws

import (
	"errors"
	"net/http"

	rtws "localmart/internal/ws"
	"localmart/internal/structs"
	"localmart/pkg/logger"
	shopRepo "localmart/pkg/repository/postgres/shop_repo"
	"localmart/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	Module = fx.Provide(New)
)

type (
	Handler interface {
		OrdersWS(c *gin.Context)
		ShopOrdersWS(c *gin.Context)
	}

	Params struct {
		fx.In
		Hub      *rtws.Hub
		ShopRepo shopRepo.Repo
		Logger   logger.Logger
	}

	handler struct {
		hub      *rtws.Hub
		shopRepo shopRepo.Repo
		logger   logger.Logger
	}
)

func New(p Params) Handler {
	return &handler{
		hub:      p.Hub,
		shopRepo: p.ShopRepo,
		logger:   p.Logger,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// authUserID reads the token from the query string. Browser websocket
// clients cannot set an Authorization header on the upgrade request.
func (h *handler) authUserID(c *gin.Context) (string, bool) {
	token := c.Query("token")
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token is required"})
		return "", false
	}
	claims, err := utils.ParseJWT(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return "", false
	}
	userID, ok := claims["id"].(string)
	if !ok || userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return "", false
	}
	return userID, true
}

// GET /api/v1/ws/orders?token=...
func (h *handler) OrdersWS(c *gin.Context) {
	userID, ok := h.authUserID(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error(c.Request.Context(), "connection websocket err", zap.Error(err))
		return
	}

	client := rtws.NewCustomerClient(userID, conn, h.hub)
	h.hub.RegisterUser(userID, client)
	client.Run()
}

// GET /api/v1/ws/shop/orders?token=...
func (h *handler) ShopOrdersWS(c *gin.Context) {
	userID, ok := h.authUserID(c)
	if !ok {
		return
	}

	shop, err := h.shopRepo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, structs.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "no shop for this account"})
			return
		}
		h.logger.Error(c.Request.Context(), "->shopRepo.GetByUserID", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error(c.Request.Context(), "connection websocket err", zap.Error(err))
		return
	}

	client := rtws.NewVendorClient(shop.ID, conn, h.hub)
	h.hub.RegisterShop(shop.ID, client)
	client.Run()
}
