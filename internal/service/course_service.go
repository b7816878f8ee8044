package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"odigyan_backend/internal/model"
	"odigyan_backend/internal/repository"
	"odigyan_backend/internal/util"
	"odigyan_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	courseCacheKey = "odigyan:courses:published"
	courseCacheTTL = 5 * time.Minute
)

type CourseService struct {
	Repo     *repository.CourseRepository
	Redis    *redis.Client
	Telegram *TelegramService
}

func NewCourseService(repo *repository.CourseRepository, rdb *redis.Client, tg *TelegramService) *CourseService {
	return &CourseService{Repo: repo, Redis: rdb, Telegram: tg}
}

// ListPublished 课程列表走 Redis 缓存，管理端写操作时失效
func (s *CourseService) ListPublished(ctx context.Context) ([]model.Course, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, courseCacheKey).Result()
		if err == nil {
			var courses []model.Course
			if json.Unmarshal([]byte(cached), &courses) == nil {
				return courses, nil
			}
		}
	}

	courses, err := s.Repo.ListPublished()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(courses); err == nil {
			s.Redis.Set(ctx, courseCacheKey, data, courseCacheTTL)
		}
	}
	return courses, nil
}

type CourseRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	IsPublished *bool  `json:"isPublished"`
}

func (s *CourseService) Create(ctx context.Context, req CourseRequest) (*model.Course, error) {
	course := &model.Course{
		Name:        req.Name,
		Description: req.Description,
		IsPublished: true,
	}
	if req.IsPublished != nil {
		course.IsPublished = *req.IsPublished
	}

	if err := s.Repo.Create(course); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)

	if course.IsPublished && s.Telegram != nil {
		if err := s.Telegram.AnnounceCourse(course); err != nil {
			logger.Log.Warn("course announcement failed", zap.Error(err))
		}
	}
	return course, nil
}

func (s *CourseService) Update(ctx context.Context, id string, req CourseRequest) (*model.Course, error) {
	course, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	course.Name = req.Name
	course.Description = req.Description
	if req.IsPublished != nil {
		course.IsPublished = *req.IsPublished
	}

	if err := s.Repo.Update(course); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return course, nil
}

func (s *CourseService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *CourseService) Get(id string) (*model.Course, error) {
	course, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

// Enroll 选课，重复选课返回 ErrAlreadyEnrolled
func (s *CourseService) Enroll(userID uint, courseID string) (*model.Enrollment, error) {
	course, err := s.Repo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if !course.IsPublished {
		return nil, util.ErrCourseNotFound
	}

	if _, err := s.Repo.FindEnrollment(userID, courseID); err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	e := &model.Enrollment{UserID: userID, CourseID: courseID}
	if err := s.Repo.CreateEnrollment(e); err != nil {
		return nil, err
	}
	e.Course = course
	return e, nil
}

// ListAll 管理端课程列表，含未发布课程
func (s *CourseService) ListAll(page, limit int) ([]model.Course, int64, error) {
	return s.Repo.ListAll(page, limit)
}

// UpdateProgress 记录学习进度，0-100 之外的值被钳制
func (s *CourseService) UpdateProgress(userID uint, courseID string, progress int) error {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	if _, err := s.Repo.FindEnrollment(userID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotEnrolled
		}
		return err
	}
	return s.Repo.UpdateEnrollmentProgress(userID, courseID, progress)
}

func (s *CourseService) EnrolledCourses(userID uint) ([]model.Enrollment, error) {
	return s.Repo.ListEnrollments(userID)
}

func (s *CourseService) IsEnrolled(userID uint, courseID string) (bool, error) {
	_, err := s.Repo.FindEnrollment(userID, courseID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func (s *CourseService) invalidateCache(ctx context.Context) {
	if s.Redis != nil {
		s.Redis.Del(ctx, courseCacheKey)
	}
}
