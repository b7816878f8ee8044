package service

import (
	"fmt"
	"time"

	"odigyan_backend/internal/config"
	"odigyan_backend/internal/model"
	"odigyan_backend/pkg/logger"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

// TelegramService 向官方频道推送新课程/公告。未配置 bot token 时为空实现。
type TelegramService struct {
	bot     *tele.Bot
	channel *tele.Chat
	cfg     *config.TelegramConfig
}

func NewTelegramService(cfg *config.TelegramConfig) *TelegramService {
	s := &TelegramService{cfg: cfg}
	if !cfg.Enabled || cfg.BotToken == "" {
		return s
	}

	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Log.Warn("telegram bot init failed, notifications disabled", zap.Error(err))
		return s
	}

	s.bot = bot
	s.channel = &tele.Chat{ID: cfg.ChannelID}
	return s
}

func (s *TelegramService) Enabled() bool {
	return s.bot != nil
}

// ChannelLink 频道邀请链接，前端"加入频道"入口使用
func (s *TelegramService) ChannelLink() string {
	return s.cfg.ChannelLink
}

// AnnounceCourse 新课程发布时向频道推送
func (s *TelegramService) AnnounceCourse(course *model.Course) error {
	if s.bot == nil {
		return nil
	}
	msg := fmt.Sprintf("📚 New course available: %s\n\n%s", course.Name, course.Description)
	_, err := s.bot.Send(s.channel, msg)
	return err
}

// AnnounceBanner 新公告横幅推送
func (s *TelegramService) AnnounceBanner(banner *model.Banner) error {
	if s.bot == nil {
		return nil
	}
	msg := fmt.Sprintf("📢 %s\n\n%s", banner.Title, banner.Description)
	_, err := s.bot.Send(s.channel, msg)
	return err
}
