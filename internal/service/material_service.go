package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"odigyan_backend/internal/config"
	"odigyan_backend/internal/model"
	"odigyan_backend/internal/repository"
	"odigyan_backend/internal/util"
	"odigyan_backend/pkg/logger"

	"go.uber.org/zap"
)

type MaterialService struct {
	Repo       *repository.MaterialRepository
	CourseRepo *repository.CourseRepository
	Storage    *StorageService
	Cfg        *config.Config
}

func NewMaterialService(repo *repository.MaterialRepository, courseRepo *repository.CourseRepository, storage *StorageService, cfg *config.Config) *MaterialService {
	return &MaterialService{Repo: repo, CourseRepo: courseRepo, Storage: storage, Cfg: cfg}
}

func (s *MaterialService) Get(id string) (*model.Material, error) {
	return s.Repo.FindByID(id)
}

func (s *MaterialService) ListByCourse(courseID string) ([]model.Material, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, util.ErrCourseNotFound
	}
	return s.Repo.ListByCourse(courseID)
}

// Upload 保存课程资料。视频文件会探测时长并生成封面缩略图。
func (s *MaterialService) Upload(ctx context.Context, courseID, title string, fileHeader *multipart.FileHeader) (*model.Material, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, util.ErrCourseNotFound
	}

	if fileHeader.Size > s.Cfg.Upload.MaxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", fileHeader.Size, s.Cfg.Upload.MaxFileSize)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	mimeType, err := util.ValidateMimeType(file, []string{util.MimeImage, util.MimeVideo, util.MimePDF})
	if err != nil {
		return nil, err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	material := &model.Material{
		CourseID: courseID,
		Title:    title,
		Size:     fileHeader.Size,
	}

	switch {
	case util.IsVideo(mimeType):
		material.FileType = "video"
	case util.IsPDF(mimeType):
		material.FileType = "pdf"
	default:
		material.FileType = "image"
	}

	ext := filepath.Ext(fileHeader.Filename)
	objectName := fmt.Sprintf("materials/%s/%d%s", courseID, time.Now().UnixNano(), ext)

	// 视频先落临时文件，便于 ffmpeg 探测和截帧
	if material.FileType == "video" {
		tmp, err := os.CreateTemp("", "odigyan-video-*"+ext)
		if err != nil {
			return nil, err
		}
		defer os.Remove(tmp.Name())

		if _, err := io.Copy(tmp, file); err != nil {
			tmp.Close()
			return nil, err
		}
		tmp.Close()

		if info, err := util.GetVideoInfo(tmp.Name()); err == nil {
			material.Duration = info.Duration
		} else {
			logger.Log.Warn("video probe failed", zap.Error(err))
		}

		thumbPath := tmp.Name() + ".jpg"
		if err := util.GenerateThumbnail(tmp.Name(), thumbPath, "00:00:01"); err == nil {
			defer os.Remove(thumbPath)
			thumbObject := fmt.Sprintf("materials/%s/thumbs/%d.jpg", courseID, time.Now().UnixNano())
			if thumbURL, err := s.Storage.UploadFile(ctx, thumbObject, thumbPath, "image/jpeg"); err == nil {
				material.ThumbnailURL = thumbURL
			}
		} else {
			logger.Log.Warn("thumbnail generation failed", zap.Error(err))
		}

		fileURL, err := s.Storage.UploadFile(ctx, objectName, tmp.Name(), mimeType)
		if err != nil {
			return nil, err
		}
		material.FileURL = fileURL
	} else {
		fileURL, err := s.Storage.Upload(ctx, objectName, file, fileHeader.Size, mimeType)
		if err != nil {
			return nil, err
		}
		material.FileURL = fileURL
	}

	if err := s.Repo.Create(material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *MaterialService) Delete(id string) error {
	return s.Repo.Delete(id)
}
