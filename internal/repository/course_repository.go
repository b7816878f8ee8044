package repository

import (
	"odigyan_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("id = ?", id).First(&course).Error
	return &course, err
}

func (r *CourseRepository) ListPublished() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("is_published = ?", true).Order("created_at desc").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) ListAll(page, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64
	query := r.DB.Model(&model.Course{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.Course{}).Error
}

// Enrollment related methods

func (r *CourseRepository) CreateEnrollment(e *model.Enrollment) error {
	return r.DB.Create(e).Error
}

func (r *CourseRepository) FindEnrollment(userID uint, courseID string) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *CourseRepository) ListEnrollments(userID uint) ([]model.Enrollment, error) {
	var es []model.Enrollment
	err := r.DB.Preload("Course").Where("user_id = ?", userID).Order("created_at desc").Find(&es).Error
	return es, err
}

func (r *CourseRepository) UpdateEnrollmentProgress(userID uint, courseID string, progress int) error {
	return r.DB.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Update("progress", progress).Error
}
