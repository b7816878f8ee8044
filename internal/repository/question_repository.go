package repository

import (
	"odigyan_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.MockQuestion) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) FindByID(id string) (*model.MockQuestion, error) {
	var q model.MockQuestion
	err := r.DB.Where("id = ?", id).First(&q).Error
	return &q, err
}

// ListByCourse 按题序返回课程题库，limit<=0 时返回全部
func (r *QuestionRepository) ListByCourse(courseID string, limit int) ([]model.MockQuestion, error) {
	var qs []model.MockQuestion
	query := r.DB.Where("course_id = ?", courseID).Order("`order` asc, created_at asc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) CountByCourse(courseID string) (int64, error) {
	var total int64
	err := r.DB.Model(&model.MockQuestion{}).Where("course_id = ?", courseID).Count(&total).Error
	return total, err
}

func (r *QuestionRepository) Update(q *model.MockQuestion) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.MockQuestion{}).Error
}
