package repository

import (
	"odigyan_backend/internal/model"

	"gorm.io/gorm"
)

type TestResultRepository struct {
	DB *gorm.DB
}

func NewTestResultRepository(db *gorm.DB) *TestResultRepository {
	return &TestResultRepository{DB: db}
}

func (r *TestResultRepository) Create(result *model.TestResult) error {
	return r.DB.Create(result).Error
}

func (r *TestResultRepository) ListByUser(userID uint) ([]model.TestResult, error) {
	var results []model.TestResult
	err := r.DB.Where("user_id = ?", userID).Order("completed_at desc").Find(&results).Error
	return results, err
}

func (r *TestResultRepository) ListByCourse(courseID string, page, limit int) ([]model.TestResult, int64, error) {
	var results []model.TestResult
	var total int64

	query := r.DB.Model(&model.TestResult{}).Where("course_id = ?", courseID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("completed_at desc").Offset(offset).Limit(limit).Find(&results).Error
	return results, total, err
}

func (r *TestResultRepository) BestScore(userID uint, courseID string) (int, error) {
	var best int
	err := r.DB.Model(&model.TestResult{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Select("COALESCE(MAX(score), 0)").
		Scan(&best).Error
	return best, err
}
