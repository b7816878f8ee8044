package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"odigyan_backend/internal/config"
	"odigyan_backend/internal/model"
	"odigyan_backend/internal/repository"
	"odigyan_backend/internal/util"
	"odigyan_backend/pkg/logger"

	"go.uber.org/zap"
)

type BannerService struct {
	Repo     *repository.BannerRepository
	Storage  *StorageService
	Telegram *TelegramService
	Cfg      *config.Config
}

func NewBannerService(repo *repository.BannerRepository, storage *StorageService, tg *TelegramService, cfg *config.Config) *BannerService {
	return &BannerService{Repo: repo, Storage: storage, Telegram: tg, Cfg: cfg}
}

type BannerRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	ImageURL    string `json:"imageUrl"`
	Order       int    `json:"order"`
}

func (s *BannerService) Create(req BannerRequest) (*model.Banner, error) {
	banner := &model.Banner{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    true,
		Order:       req.Order,
	}
	if err := s.Repo.Create(banner); err != nil {
		return nil, err
	}

	if s.Telegram != nil {
		if err := s.Telegram.AnnounceBanner(banner); err != nil {
			logger.Log.Warn("banner announcement failed", zap.Error(err))
		}
	}
	return banner, nil
}

// UpdateRequest 更新轮播图，IsActive 用指针区分"未提交"和"置为 false"
type BannerUpdateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	ImageURL    string `json:"imageUrl"`
	IsActive    *bool  `json:"isActive"`
	Order       int    `json:"order"`
}

func (s *BannerService) Update(id string, req BannerUpdateRequest) (*model.Banner, error) {
	banner, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	banner.Title = req.Title
	banner.Description = req.Description
	if req.ImageURL != "" {
		banner.ImageURL = req.ImageURL
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}
	banner.Order = req.Order

	if err := s.Repo.Update(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

func (s *BannerService) ListActive() ([]model.Banner, error) {
	return s.Repo.ListActive()
}

func (s *BannerService) ListAll() ([]model.Banner, error) {
	return s.Repo.ListAll()
}

func (s *BannerService) Delete(id string) error {
	return s.Repo.Delete(id)
}

// UploadImage 校验并保存轮播图/站点Logo图片，返回可访问的URL
func (s *BannerService) UploadImage(ctx context.Context, filename string, reader io.ReadSeeker, size int64) (string, error) {
	if size > s.Cfg.Upload.MaxFileSize {
		return "", fmt.Errorf("file too large: %d bytes (max %d)", size, s.Cfg.Upload.MaxFileSize)
	}

	mimeType, err := util.ValidateMimeType(reader, []string{util.MimeImage})
	if err != nil {
		return "", err
	}
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("banners/%d%s", time.Now().UnixNano(), filepath.Ext(filename))
	return s.Storage.Upload(ctx, objectName, reader, size, mimeType)
}
