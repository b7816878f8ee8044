package repository

import (
	"odigyan_backend/internal/model"

	"gorm.io/gorm"
)

type MaterialRepository struct {
	DB *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{DB: db}
}

func (r *MaterialRepository) Create(m *model.Material) error {
	return r.DB.Create(m).Error
}

func (r *MaterialRepository) FindByID(id string) (*model.Material, error) {
	var m model.Material
	err := r.DB.Where("id = ?", id).First(&m).Error
	return &m, err
}

func (r *MaterialRepository) ListByCourse(courseID string) ([]model.Material, error) {
	var ms []model.Material
	err := r.DB.Where("course_id = ?", courseID).Order("created_at desc").Find(&ms).Error
	return ms, err
}

func (r *MaterialRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.Material{}).Error
}
