package notify

import (
	"context"
	"fmt"
	"strings"

	"localmart/internal/structs"
	"localmart/pkg/config"
	"localmart/pkg/logger"
	profileRepo "localmart/pkg/repository/postgres/profile_repo"
	shopRepo "localmart/pkg/repository/postgres/shop_repo"
	"localmart/pkg/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	Module = fx.Provide(New)
)

type (
	Params struct {
		fx.In
		Logger      logger.Logger
		Config      config.IConfig
		ShopRepo    shopRepo.Repo
		ProfileRepo profileRepo.Repo
	}

	// Service pushes order events to the shop owner's linked telegram
	// chat. Vendors without a linked chat are skipped silently.
	Service interface {
		OrderCreated(ctx context.Context, order structs.Order)
		OrderStatusChanged(ctx context.Context, order structs.Order)
	}

	service struct {
		logger      logger.Logger
		bot         *tgbotapi.BotAPI
		shopRepo    shopRepo.Repo
		profileRepo profileRepo.Repo
	}
)

func New(p Params) Service {
	s := &service{
		logger:      p.Logger,
		shopRepo:    p.ShopRepo,
		profileRepo: p.ProfileRepo,
	}

	token := p.Config.GetString("bot_token_localmart")
	if token == "" {
		p.Logger.Warn(context.Background(), "telegram bot token is not set, order notifications disabled")
		return s
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		p.Logger.Error(context.Background(), "failed to initialize telegram bot", zap.Error(err))
		return s
	}
	s.bot = bot
	return s
}

func (s *service) vendorChatID(ctx context.Context, shopID string) (int64, bool) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		s.logger.Error(ctx, "->shopRepo.GetByID", zap.Error(err))
		return 0, false
	}
	if shop.UserID == "" {
		return 0, false
	}
	profile, err := s.profileRepo.GetByUserID(ctx, shop.UserID)
	if err != nil {
		s.logger.Error(ctx, "->profileRepo.GetByUserID", zap.Error(err))
		return 0, false
	}
	if profile.TelegramChatID == 0 {
		return 0, false
	}
	return profile.TelegramChatID, true
}

func (s *service) OrderCreated(ctx context.Context, order structs.Order) {
	if s.bot == nil {
		return
	}
	chatID, ok := s.vendorChatID(ctx, order.ShopID)
	if !ok {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🛒 Новый заказ #%s\n\n", shortID(order.ID))
	for i, item := range order.Items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Name)
		fmt.Fprintf(&b, "%d x %s = %s\n\n",
			item.Quantity,
			utils.FCurrency(float64(item.Price)),
			utils.FCurrency(float64(item.Quantity*item.Price)),
		)
	}
	if order.DeliveryType == structs.DeliveryTypeDelivery {
		fmt.Fprintf(&b, "🚚 Доставка: %s\n", utils.FCurrency(float64(order.DeliveryFee)))
		if order.DeliveryAddress != "" {
			fmt.Fprintf(&b, "📍 Адрес: %s\n", order.DeliveryAddress)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("🚶 Самовывоз\n\n")
	}
	fmt.Fprintf(&b, "💰 Итого: %s", utils.FCurrency(float64(order.TotalAmount)))

	if _, err := s.bot.Send(tgbotapi.NewMessage(chatID, b.String())); err != nil {
		s.logger.Error(ctx, "failed to send order notification", zap.Error(err))
	}
}

func (s *service) OrderStatusChanged(ctx context.Context, order structs.Order) {
	if s.bot == nil {
		return
	}
	chatID, ok := s.vendorChatID(ctx, order.ShopID)
	if !ok {
		return
	}

	text := fmt.Sprintf("📦 Заказ #%s: %s", shortID(order.ID), order.Status)
	if _, err := s.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		s.logger.Error(ctx, "failed to send status notification", zap.Error(err))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
